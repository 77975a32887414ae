package neo4jstore

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/staffing-graph-backend/internal/graph"
	pkgerrors "github.com/yungbote/staffing-graph-backend/internal/pkg/errors"
	"github.com/yungbote/staffing-graph-backend/internal/platform/logger"
	"github.com/yungbote/staffing-graph-backend/internal/platform/neo4jdb"
)

// Store is the Neo4j-backed graph.Store. Every operation runs inside a
// managed transaction; multi-step writes share one transaction through
// ExecuteWrite, which is what makes the RFP conversion all-or-nothing.
type Store struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func New(ctx context.Context, client *neo4jdb.Client, log *logger.Logger) (*Store, error) {
	if client == nil || client.Driver == nil {
		return nil, fmt.Errorf("neo4jstore: client required")
	}
	s := &Store{client: client, log: log.With("store", "Neo4jGraph")}
	s.initSchema(ctx)
	return s, nil
}

// initSchema creates uniqueness constraints per label. Best-effort; may fail
// for restricted users.
func (s *Store) initSchema(ctx context.Context) {
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)
	for _, stmt := range schemaConstraints {
		res, err := session.Run(ctx, stmt, nil)
		if err != nil {
			s.log.Warn("neo4j schema init failed (continuing)", "error", err)
			continue
		}
		_, _ = res.Consume(ctx)
	}
}

func (s *Store) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return s.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: s.client.Database,
	})
}

// wrapErr folds driver connectivity failures into the retryable sentinel.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if neo4j.IsConnectivityError(err) {
		return fmt.Errorf("%w: %v", pkgerrors.ErrStoreUnavailable, err)
	}
	return err
}

func mergeNode(ctx context.Context, run neo4j.ManagedTransaction, kind graph.NodeKind, key string, set graph.Props) error {
	stmt, ok := mergeNodeCypher[kind]
	if !ok {
		return fmt.Errorf("%w: unknown node kind %q", pkgerrors.ErrInvalidIdentifier, kind)
	}
	if key == "" {
		return fmt.Errorf("%w: empty node key", pkgerrors.ErrInvalidIdentifier)
	}
	props := map[string]any(set)
	if props == nil {
		props = map[string]any{}
	}
	res, err := run.Run(ctx, stmt, map[string]any{"key": key, "props": props})
	if err != nil {
		return err
	}
	_, err = res.Consume(ctx)
	return err
}

func mergeEdge(ctx context.Context, run neo4j.ManagedTransaction, rel graph.RelKind, fromKey, toKey string, set graph.Props) error {
	stmt, ok := mergeEdgeCypher[rel]
	if !ok {
		return fmt.Errorf("%w: unknown relationship kind %q", pkgerrors.ErrInvalidIdentifier, rel)
	}
	props := map[string]any(set)
	if props == nil {
		props = map[string]any{}
	}
	res, err := run.Run(ctx, stmt, map[string]any{"from": fromKey, "to": toKey, "props": props})
	if err != nil {
		return err
	}
	merged := int64(0)
	if res.Next(ctx) {
		if v, ok := res.Record().Get("merged"); ok {
			if n, ok := v.(int64); ok {
				merged = n
			}
		}
	}
	if err := res.Err(); err != nil {
		return err
	}
	if merged == 0 {
		return fmt.Errorf("%w: endpoint of %s %q->%q", pkgerrors.ErrNotFound, rel, fromKey, toKey)
	}
	return nil
}

func deleteNode(ctx context.Context, run neo4j.ManagedTransaction, kind graph.NodeKind, key string) error {
	stmt, ok := deleteNodeCypher[kind]
	if !ok {
		return fmt.Errorf("%w: unknown node kind %q", pkgerrors.ErrInvalidIdentifier, kind)
	}
	res, err := run.Run(ctx, stmt, map[string]any{"key": key})
	if err != nil {
		return err
	}
	deleted := int64(0)
	if res.Next(ctx) {
		if v, ok := res.Record().Get("deleted"); ok {
			if n, ok := v.(int64); ok {
				deleted = n
			}
		}
	}
	if err := res.Err(); err != nil {
		return err
	}
	if deleted == 0 {
		return fmt.Errorf("%w: %s %q", pkgerrors.ErrNotFound, kind, key)
	}
	return nil
}

func getNode(ctx context.Context, run neo4j.ManagedTransaction, kind graph.NodeKind, key string) (*graph.Node, error) {
	stmt, ok := getNodeCypher[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown node kind %q", pkgerrors.ErrInvalidIdentifier, kind)
	}
	res, err := run.Run(ctx, stmt, map[string]any{"key": key})
	if err != nil {
		return nil, err
	}
	if !res.Next(ctx) {
		if err := res.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s %q", pkgerrors.ErrNotFound, kind, key)
	}
	node := &graph.Node{Kind: kind, Key: key, Props: graph.Props{}}
	if v, ok := res.Record().Get("props"); ok {
		if m, ok := v.(map[string]any); ok {
			node.Props = graph.Props(m)
		}
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return node, nil
}

func listNodes(ctx context.Context, run neo4j.ManagedTransaction, kind graph.NodeKind) ([]*graph.Node, error) {
	stmt, ok := listNodesCypher[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown node kind %q", pkgerrors.ErrInvalidIdentifier, kind)
	}
	res, err := run.Run(ctx, stmt, nil)
	if err != nil {
		return nil, err
	}
	out := make([]*graph.Node, 0)
	for res.Next(ctx) {
		rec := res.Record()
		node := &graph.Node{Kind: kind, Props: graph.Props{}}
		if v, ok := rec.Get("id"); ok {
			if id, ok := v.(string); ok {
				node.Key = id
			}
		}
		if v, ok := rec.Get("props"); ok {
			if m, ok := v.(map[string]any); ok {
				node.Props = graph.Props(m)
			}
		}
		if node.Key != "" {
			out = append(out, node)
		}
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func collectEdges(ctx context.Context, run neo4j.ManagedTransaction, stmt string, key string, rel graph.RelKind, outgoing bool) ([]*graph.Edge, error) {
	res, err := run.Run(ctx, stmt, map[string]any{"key": key})
	if err != nil {
		return nil, err
	}
	out := make([]*graph.Edge, 0)
	for res.Next(ctx) {
		rec := res.Record()
		other := ""
		if v, ok := rec.Get("other"); ok {
			if s, ok := v.(string); ok {
				other = s
			}
		}
		props := graph.Props{}
		if v, ok := rec.Get("props"); ok {
			if m, ok := v.(map[string]any); ok {
				props = graph.Props(m)
			}
		}
		edge := &graph.Edge{Rel: rel, Props: props}
		if outgoing {
			edge.FromKey, edge.ToKey = key, other
		} else {
			edge.FromKey, edge.ToKey = other, key
		}
		out = append(out, edge)
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func outEdges(ctx context.Context, run neo4j.ManagedTransaction, key string, rel graph.RelKind) ([]*graph.Edge, error) {
	stmt, ok := outEdgesCypher[rel]
	if !ok {
		return nil, fmt.Errorf("%w: unknown relationship kind %q", pkgerrors.ErrInvalidIdentifier, rel)
	}
	return collectEdges(ctx, run, stmt, key, rel, true)
}

func inEdges(ctx context.Context, run neo4j.ManagedTransaction, key string, rel graph.RelKind) ([]*graph.Edge, error) {
	stmt, ok := inEdgesCypher[rel]
	if !ok {
		return nil, fmt.Errorf("%w: unknown relationship kind %q", pkgerrors.ErrInvalidIdentifier, rel)
	}
	return collectEdges(ctx, run, stmt, key, rel, false)
}

// neoTx adapts a managed transaction to graph.Tx.
type neoTx struct {
	run neo4j.ManagedTransaction
}

func (t *neoTx) MergeNode(ctx context.Context, kind graph.NodeKind, key string, set graph.Props) error {
	return mergeNode(ctx, t.run, kind, key, set)
}
func (t *neoTx) MergeEdge(ctx context.Context, rel graph.RelKind, fromKey, toKey string, set graph.Props) error {
	return mergeEdge(ctx, t.run, rel, fromKey, toKey, set)
}
func (t *neoTx) DeleteNode(ctx context.Context, kind graph.NodeKind, key string) error {
	return deleteNode(ctx, t.run, kind, key)
}
func (t *neoTx) GetNode(ctx context.Context, kind graph.NodeKind, key string) (*graph.Node, error) {
	return getNode(ctx, t.run, kind, key)
}
func (t *neoTx) ListNodes(ctx context.Context, kind graph.NodeKind) ([]*graph.Node, error) {
	return listNodes(ctx, t.run, kind)
}
func (t *neoTx) OutEdges(ctx context.Context, key string, rel graph.RelKind) ([]*graph.Edge, error) {
	return outEdges(ctx, t.run, key, rel)
}
func (t *neoTx) InEdges(ctx context.Context, key string, rel graph.RelKind) ([]*graph.Edge, error) {
	return inEdges(ctx, t.run, key, rel)
}

func (s *Store) ExecuteWrite(ctx context.Context, fn func(tx graph.Tx) error) error {
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)
	_, err := session.ExecuteWrite(ctx, func(mtx neo4j.ManagedTransaction) (any, error) {
		return nil, fn(&neoTx{run: mtx})
	})
	return wrapErr(err)
}

func (s *Store) executeRead(ctx context.Context, fn func(tx graph.Tx) error) error {
	session := s.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)
	_, err := session.ExecuteRead(ctx, func(mtx neo4j.ManagedTransaction) (any, error) {
		return nil, fn(&neoTx{run: mtx})
	})
	return wrapErr(err)
}

func (s *Store) MergeNode(ctx context.Context, kind graph.NodeKind, key string, set graph.Props) error {
	return s.ExecuteWrite(ctx, func(tx graph.Tx) error {
		return tx.MergeNode(ctx, kind, key, set)
	})
}

func (s *Store) MergeEdge(ctx context.Context, rel graph.RelKind, fromKey, toKey string, set graph.Props) error {
	return s.ExecuteWrite(ctx, func(tx graph.Tx) error {
		return tx.MergeEdge(ctx, rel, fromKey, toKey, set)
	})
}

func (s *Store) DeleteNode(ctx context.Context, kind graph.NodeKind, key string) error {
	return s.ExecuteWrite(ctx, func(tx graph.Tx) error {
		return tx.DeleteNode(ctx, kind, key)
	})
}

func (s *Store) GetNode(ctx context.Context, kind graph.NodeKind, key string) (*graph.Node, error) {
	var node *graph.Node
	err := s.executeRead(ctx, func(tx graph.Tx) error {
		var err error
		node, err = tx.GetNode(ctx, kind, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

func (s *Store) ListNodes(ctx context.Context, kind graph.NodeKind) ([]*graph.Node, error) {
	var nodes []*graph.Node
	err := s.executeRead(ctx, func(tx graph.Tx) error {
		var err error
		nodes, err = tx.ListNodes(ctx, kind)
		return err
	})
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

func (s *Store) OutEdges(ctx context.Context, key string, rel graph.RelKind) ([]*graph.Edge, error) {
	var edges []*graph.Edge
	err := s.executeRead(ctx, func(tx graph.Tx) error {
		var err error
		edges, err = tx.OutEdges(ctx, key, rel)
		return err
	})
	if err != nil {
		return nil, err
	}
	return edges, nil
}

func (s *Store) InEdges(ctx context.Context, key string, rel graph.RelKind) ([]*graph.Edge, error) {
	var edges []*graph.Edge
	err := s.executeRead(ctx, func(tx graph.Tx) error {
		var err error
		edges, err = tx.InEdges(ctx, key, rel)
		return err
	})
	if err != nil {
		return nil, err
	}
	return edges, nil
}

func (s *Store) Counts(ctx context.Context) (int64, int64, error) {
	session := s.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)
	counts, err := session.ExecuteRead(ctx, func(mtx neo4j.ManagedTransaction) (any, error) {
		var nodes, rels int64
		res, err := mtx.Run(ctx, `MATCH (n) RETURN count(n) AS c`, nil)
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			if v, ok := res.Record().Get("c"); ok {
				if n, ok := v.(int64); ok {
					nodes = n
				}
			}
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		res, err = mtx.Run(ctx, `MATCH ()-[r]->() RETURN count(r) AS c`, nil)
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			if v, ok := res.Record().Get("c"); ok {
				if n, ok := v.(int64); ok {
					rels = n
				}
			}
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return []int64{nodes, rels}, nil
	})
	if err != nil {
		return 0, 0, wrapErr(err)
	}
	pair := counts.([]int64)
	return pair[0], pair[1], nil
}

func (s *Store) Reset(ctx context.Context) error {
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)
	_, err := session.ExecuteWrite(ctx, func(mtx neo4j.ManagedTransaction) (any, error) {
		res, err := mtx.Run(ctx, `MATCH (n) DETACH DELETE n`, nil)
		if err != nil {
			return nil, err
		}
		return res.Consume(ctx)
	})
	return wrapErr(err)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}
