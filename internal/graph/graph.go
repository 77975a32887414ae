package graph

import "context"

// NodeKind is the closed set of entity labels in the staffing graph.
type NodeKind string

const (
	KindPerson        NodeKind = "Person"
	KindSkill         NodeKind = "Skill"
	KindCompany       NodeKind = "Company"
	KindUniversity    NodeKind = "University"
	KindCertification NodeKind = "Certification"
	KindLocation      NodeKind = "Location"
	KindProject       NodeKind = "Project"
	KindRFP           NodeKind = "RFP"
)

// NodeKinds lists every known label, in schema-init order.
func NodeKinds() []NodeKind {
	return []NodeKind{
		KindPerson, KindSkill, KindCompany, KindUniversity,
		KindCertification, KindLocation, KindProject, KindRFP,
	}
}

func (k NodeKind) Valid() bool {
	switch k {
	case KindPerson, KindSkill, KindCompany, KindUniversity,
		KindCertification, KindLocation, KindProject, KindRFP:
		return true
	}
	return false
}

// RelKind is the closed set of relationship types. Every kind binds fixed
// endpoint labels, so each maps to one fixed parameterized statement in the
// Neo4j backend instead of string-composed Cypher.
type RelKind string

const (
	RelHasSkill   RelKind = "HAS_SKILL"   // Person -> Skill {proficiency}
	RelWorkedAt   RelKind = "WORKED_AT"   // Person -> Company
	RelStudiedAt  RelKind = "STUDIED_AT"  // Person -> University
	RelEarned     RelKind = "EARNED"      // Person -> Certification
	RelLocatedIn  RelKind = "LOCATED_IN"  // Person -> Location
	RelRequires   RelKind = "REQUIRES"    // Project -> Skill {minimum_level, mandatory}
	RelNeeds      RelKind = "NEEDS"       // RFP -> Skill {proficiency, mandatory}
	RelAssignedTo RelKind = "ASSIGNED_TO" // Person -> Project {start_date, end_date, allocation_percentage}
	RelWorkedOn   RelKind = "WORKED_ON"   // Person -> Project {start_date, end_date}
)

// Endpoints returns the fixed (from, to) node kinds for a relationship.
// The second return is false for an unknown kind.
func (r RelKind) Endpoints() (NodeKind, NodeKind, bool) {
	switch r {
	case RelHasSkill:
		return KindPerson, KindSkill, true
	case RelWorkedAt:
		return KindPerson, KindCompany, true
	case RelStudiedAt:
		return KindPerson, KindUniversity, true
	case RelEarned:
		return KindPerson, KindCertification, true
	case RelLocatedIn:
		return KindPerson, KindLocation, true
	case RelRequires:
		return KindProject, KindSkill, true
	case RelNeeds:
		return KindRFP, KindSkill, true
	case RelAssignedTo:
		return KindPerson, KindProject, true
	case RelWorkedOn:
		return KindPerson, KindProject, true
	}
	return "", "", false
}

// Props is a flat property bag. Values are the usual graph scalar types
// (string, bool, int/int64, float64).
type Props map[string]any

func (p Props) String(key string) string {
	if v, ok := p[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func (p Props) Bool(key string) bool {
	if v, ok := p[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Int tolerates the int widths different backends hand back.
func (p Props) Int(key string) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Node is a typed entity identified by its canonical key.
type Node struct {
	Kind  NodeKind
	Key   string
	Props Props
}

// Edge is a directed, typed, property-bearing relationship. Endpoint kinds
// are implied by Rel.
type Edge struct {
	Rel     RelKind
	FromKey string
	ToKey   string
	Props   Props
}

// Reader is the read surface shared by Store and Tx.
type Reader interface {
	// GetNode returns the node or ErrNotFound.
	GetNode(ctx context.Context, kind NodeKind, key string) (*Node, error)
	// ListNodes returns all nodes of a kind ordered by key.
	ListNodes(ctx context.Context, kind NodeKind) ([]*Node, error)
	// OutEdges returns edges of rel leaving (kind, key), ordered by target key.
	OutEdges(ctx context.Context, key string, rel RelKind) ([]*Edge, error)
	// InEdges returns edges of rel arriving at (kind, key), ordered by source key.
	InEdges(ctx context.Context, key string, rel RelKind) ([]*Edge, error)
}

// Writer is the write surface shared by Store and Tx.
type Writer interface {
	// MergeNode creates the node if absent, else applies set over the existing
	// properties (last write wins per property). Safe for concurrent callers
	// on the same key: they converge to one node.
	MergeNode(ctx context.Context, kind NodeKind, key string, set Props) error
	// MergeEdge creates the (from, rel, to) edge if absent, else overwrites
	// set. At most one edge of a given rel per ordered pair. Fails with
	// ErrNotFound when either endpoint does not exist.
	MergeEdge(ctx context.Context, rel RelKind, fromKey, toKey string, set Props) error
	// DeleteNode detaches and deletes the node. Missing nodes are ErrNotFound.
	DeleteNode(ctx context.Context, kind NodeKind, key string) error
}

// Tx is the handle passed to ExecuteWrite callbacks. Reads inside the
// transaction observe the transaction's own staged writes.
type Tx interface {
	Reader
	Writer
}

// Store is the backing graph contract. Individual merges are atomic per key;
// ExecuteWrite gives all-or-nothing semantics across multiple operations.
type Store interface {
	Reader
	Writer
	// ExecuteWrite runs fn in one transaction. If fn returns an error nothing
	// is applied.
	ExecuteWrite(ctx context.Context, fn func(tx Tx) error) error
	// Counts returns the total node and relationship counts.
	Counts(ctx context.Context) (nodes int64, rels int64, err error)
	// Reset removes every node and relationship.
	Reset(ctx context.Context) error
	Close(ctx context.Context) error
}
