package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/yungbote/staffing-graph-backend/internal/graph"
	pkgerrors "github.com/yungbote/staffing-graph-backend/internal/pkg/errors"
)

// Store is an in-process graph backend with the same merge semantics as the
// Neo4j one. It backs tests and store-less local runs.
type Store struct {
	mu    sync.RWMutex
	state *state
}

type edgeKey struct {
	rel  graph.RelKind
	from string
	to   string
}

type state struct {
	nodes map[graph.NodeKind]map[string]graph.Props
	edges map[edgeKey]graph.Props
}

func newState() *state {
	nodes := make(map[graph.NodeKind]map[string]graph.Props)
	for _, k := range graph.NodeKinds() {
		nodes[k] = make(map[string]graph.Props)
	}
	return &state{nodes: nodes, edges: make(map[edgeKey]graph.Props)}
}

func (s *state) clone() *state {
	next := newState()
	for kind, byKey := range s.nodes {
		for key, props := range byKey {
			next.nodes[kind][key] = props.Clone()
		}
	}
	for k, props := range s.edges {
		next.edges[k] = props.Clone()
	}
	return next
}

func NewStore() *Store {
	return &Store{state: newState()}
}

func (s *state) mergeNode(kind graph.NodeKind, key string, set graph.Props) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown node kind %q", pkgerrors.ErrInvalidIdentifier, kind)
	}
	if key == "" {
		return fmt.Errorf("%w: empty node key", pkgerrors.ErrInvalidIdentifier)
	}
	existing, ok := s.nodes[kind][key]
	if !ok {
		existing = graph.Props{}
		s.nodes[kind][key] = existing
	}
	for k, v := range set {
		existing[k] = v
	}
	return nil
}

func (s *state) mergeEdge(rel graph.RelKind, fromKey, toKey string, set graph.Props) error {
	fromKind, toKind, ok := rel.Endpoints()
	if !ok {
		return fmt.Errorf("%w: unknown relationship kind %q", pkgerrors.ErrInvalidIdentifier, rel)
	}
	if _, ok := s.nodes[fromKind][fromKey]; !ok {
		return fmt.Errorf("%w: %s %q", pkgerrors.ErrNotFound, fromKind, fromKey)
	}
	if _, ok := s.nodes[toKind][toKey]; !ok {
		return fmt.Errorf("%w: %s %q", pkgerrors.ErrNotFound, toKind, toKey)
	}
	ek := edgeKey{rel: rel, from: fromKey, to: toKey}
	existing, ok := s.edges[ek]
	if !ok {
		existing = graph.Props{}
		s.edges[ek] = existing
	}
	for k, v := range set {
		existing[k] = v
	}
	return nil
}

func (s *state) deleteNode(kind graph.NodeKind, key string) error {
	if _, ok := s.nodes[kind][key]; !ok {
		return fmt.Errorf("%w: %s %q", pkgerrors.ErrNotFound, kind, key)
	}
	delete(s.nodes[kind], key)
	for ek := range s.edges {
		fromKind, toKind, _ := ek.rel.Endpoints()
		if (fromKind == kind && ek.from == key) || (toKind == kind && ek.to == key) {
			delete(s.edges, ek)
		}
	}
	return nil
}

func (s *state) getNode(kind graph.NodeKind, key string) (*graph.Node, error) {
	props, ok := s.nodes[kind][key]
	if !ok {
		return nil, fmt.Errorf("%w: %s %q", pkgerrors.ErrNotFound, kind, key)
	}
	return &graph.Node{Kind: kind, Key: key, Props: props.Clone()}, nil
}

func (s *state) listNodes(kind graph.NodeKind) []*graph.Node {
	keys := make([]string, 0, len(s.nodes[kind]))
	for key := range s.nodes[kind] {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]*graph.Node, 0, len(keys))
	for _, key := range keys {
		out = append(out, &graph.Node{Kind: kind, Key: key, Props: s.nodes[kind][key].Clone()})
	}
	return out
}

func (s *state) outEdges(key string, rel graph.RelKind) []*graph.Edge {
	out := make([]*graph.Edge, 0)
	for ek, props := range s.edges {
		if ek.rel == rel && ek.from == key {
			out = append(out, &graph.Edge{Rel: rel, FromKey: ek.from, ToKey: ek.to, Props: props.Clone()})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ToKey < out[j].ToKey })
	return out
}

func (s *state) inEdges(key string, rel graph.RelKind) []*graph.Edge {
	out := make([]*graph.Edge, 0)
	for ek, props := range s.edges {
		if ek.rel == rel && ek.to == key {
			out = append(out, &graph.Edge{Rel: rel, FromKey: ek.from, ToKey: ek.to, Props: props.Clone()})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FromKey < out[j].FromKey })
	return out
}

func (s *Store) MergeNode(ctx context.Context, kind graph.NodeKind, key string, set graph.Props) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.mergeNode(kind, key, set)
}

func (s *Store) MergeEdge(ctx context.Context, rel graph.RelKind, fromKey, toKey string, set graph.Props) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.mergeEdge(rel, fromKey, toKey, set)
}

func (s *Store) DeleteNode(ctx context.Context, kind graph.NodeKind, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.deleteNode(kind, key)
}

func (s *Store) GetNode(ctx context.Context, kind graph.NodeKind, key string) (*graph.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.getNode(kind, key)
}

func (s *Store) ListNodes(ctx context.Context, kind graph.NodeKind) ([]*graph.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.listNodes(kind), nil
}

func (s *Store) OutEdges(ctx context.Context, key string, rel graph.RelKind) ([]*graph.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.outEdges(key, rel), nil
}

func (s *Store) InEdges(ctx context.Context, key string, rel graph.RelKind) ([]*graph.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.inEdges(key, rel), nil
}

// tx stages every mutation on a private clone; the clone becomes the live
// state only when the callback succeeds.
type tx struct {
	staged *state
}

func (t *tx) MergeNode(ctx context.Context, kind graph.NodeKind, key string, set graph.Props) error {
	return t.staged.mergeNode(kind, key, set)
}

func (t *tx) MergeEdge(ctx context.Context, rel graph.RelKind, fromKey, toKey string, set graph.Props) error {
	return t.staged.mergeEdge(rel, fromKey, toKey, set)
}

func (t *tx) DeleteNode(ctx context.Context, kind graph.NodeKind, key string) error {
	return t.staged.deleteNode(kind, key)
}

func (t *tx) GetNode(ctx context.Context, kind graph.NodeKind, key string) (*graph.Node, error) {
	return t.staged.getNode(kind, key)
}

func (t *tx) ListNodes(ctx context.Context, kind graph.NodeKind) ([]*graph.Node, error) {
	return t.staged.listNodes(kind), nil
}

func (t *tx) OutEdges(ctx context.Context, key string, rel graph.RelKind) ([]*graph.Edge, error) {
	return t.staged.outEdges(key, rel), nil
}

func (t *tx) InEdges(ctx context.Context, key string, rel graph.RelKind) ([]*graph.Edge, error) {
	return t.staged.inEdges(key, rel), nil
}

func (s *Store) ExecuteWrite(ctx context.Context, fn func(tx graph.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	staged := s.state.clone()
	if err := fn(&tx{staged: staged}); err != nil {
		return err
	}
	s.state = staged
	return nil
}

func (s *Store) Counts(ctx context.Context) (int64, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var nodes int64
	for _, byKey := range s.state.nodes {
		nodes += int64(len(byKey))
	}
	return nodes, int64(len(s.state.edges)), nil
}

func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = newState()
	return nil
}

func (s *Store) Close(ctx context.Context) error { return nil }
