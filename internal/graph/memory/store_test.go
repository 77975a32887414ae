package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/yungbote/staffing-graph-backend/internal/graph"
	pkgerrors "github.com/yungbote/staffing-graph-backend/internal/pkg/errors"
)

func TestMergeNodeIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	for i := 0; i < 3; i++ {
		if err := s.MergeNode(ctx, graph.KindSkill, "Python", graph.Props{"name": "Python"}); err != nil {
			t.Fatalf("MergeNode: %v", err)
		}
	}

	nodes, _, err := s.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if nodes != 1 {
		t.Fatalf("node count = %d, want 1", nodes)
	}
}

func TestMergeNodeLastWriteWinsPerProperty(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if err := s.MergeNode(ctx, graph.KindPerson, "Ana Lima", graph.Props{"name": "Ana Lima", "email": "a@x.io"}); err != nil {
		t.Fatalf("MergeNode: %v", err)
	}
	if err := s.MergeNode(ctx, graph.KindPerson, "Ana Lima", graph.Props{"bio": "backend dev"}); err != nil {
		t.Fatalf("MergeNode: %v", err)
	}

	n, err := s.GetNode(ctx, graph.KindPerson, "Ana Lima")
	if err != nil {
		t.Fatalf("GetNode: %v", err)
	}
	if n.Props.String("email") != "a@x.io" {
		t.Errorf("email = %q, want preserved value", n.Props.String("email"))
	}
	if n.Props.String("bio") != "backend dev" {
		t.Errorf("bio = %q, want %q", n.Props.String("bio"), "backend dev")
	}
}

func TestConcurrentMergeNodeConverges(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := s.MergeNode(ctx, graph.KindSkill, "Go", graph.Props{
				"name": "Go",
				"seen": i,
			})
			if err != nil {
				t.Errorf("MergeNode: %v", err)
			}
		}(i)
	}
	wg.Wait()

	nodes, _, err := s.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if nodes != 1 {
		t.Fatalf("node count after concurrent merges = %d, want 1", nodes)
	}
}

func TestMergeEdgeRequiresEndpoints(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	err := s.MergeEdge(ctx, graph.RelHasSkill, "Nobody", "Python", graph.Props{"proficiency": "Expert"})
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("MergeEdge with missing endpoints = %v, want ErrNotFound", err)
	}

	if err := s.MergeNode(ctx, graph.KindPerson, "Ana Lima", nil); err != nil {
		t.Fatalf("MergeNode: %v", err)
	}
	err = s.MergeEdge(ctx, graph.RelHasSkill, "Ana Lima", "Python", graph.Props{"proficiency": "Expert"})
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("MergeEdge with missing target = %v, want ErrNotFound", err)
	}
}

func TestMergeEdgeNoDuplicates(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if err := s.MergeNode(ctx, graph.KindPerson, "Ana Lima", nil); err != nil {
		t.Fatalf("MergeNode: %v", err)
	}
	if err := s.MergeNode(ctx, graph.KindSkill, "Python", nil); err != nil {
		t.Fatalf("MergeNode: %v", err)
	}

	if err := s.MergeEdge(ctx, graph.RelHasSkill, "Ana Lima", "Python", graph.Props{"proficiency": "Beginner"}); err != nil {
		t.Fatalf("MergeEdge: %v", err)
	}
	if err := s.MergeEdge(ctx, graph.RelHasSkill, "Ana Lima", "Python", graph.Props{"proficiency": "Expert"}); err != nil {
		t.Fatalf("MergeEdge: %v", err)
	}

	edges, err := s.OutEdges(ctx, "Ana Lima", graph.RelHasSkill)
	if err != nil {
		t.Fatalf("OutEdges: %v", err)
	}
	if len(edges) != 1 {
		t.Fatalf("edge count = %d, want 1", len(edges))
	}
	if got := edges[0].Props.String("proficiency"); got != "Expert" {
		t.Errorf("proficiency = %q, want overwritten %q", got, "Expert")
	}
}

func TestDeleteNodeDetaches(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if err := s.MergeNode(ctx, graph.KindRFP, "RFP-001", nil); err != nil {
		t.Fatalf("MergeNode: %v", err)
	}
	if err := s.MergeNode(ctx, graph.KindSkill, "Go", nil); err != nil {
		t.Fatalf("MergeNode: %v", err)
	}
	if err := s.MergeEdge(ctx, graph.RelNeeds, "RFP-001", "Go", graph.Props{"mandatory": true}); err != nil {
		t.Fatalf("MergeEdge: %v", err)
	}

	if err := s.DeleteNode(ctx, graph.KindRFP, "RFP-001"); err != nil {
		t.Fatalf("DeleteNode: %v", err)
	}

	_, rels, err := s.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if rels != 0 {
		t.Fatalf("relationship count after delete = %d, want 0", rels)
	}
	if err := s.DeleteNode(ctx, graph.KindRFP, "RFP-001"); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("second delete = %v, want ErrNotFound", err)
	}
}

func TestExecuteWriteRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if err := s.MergeNode(ctx, graph.KindPerson, "Ana Lima", nil); err != nil {
		t.Fatalf("MergeNode: %v", err)
	}

	boom := fmt.Errorf("boom")
	err := s.ExecuteWrite(ctx, func(tx graph.Tx) error {
		if err := tx.MergeNode(ctx, graph.KindProject, "PROJ-1", graph.Props{"title": "X"}); err != nil {
			return err
		}
		if err := tx.DeleteNode(ctx, graph.KindPerson, "Ana Lima"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("ExecuteWrite error = %v, want propagated callback error", err)
	}

	if _, err := s.GetNode(ctx, graph.KindPerson, "Ana Lima"); err != nil {
		t.Errorf("person deleted despite rollback: %v", err)
	}
	if _, err := s.GetNode(ctx, graph.KindProject, "PROJ-1"); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Errorf("project survived rollback: %v", err)
	}
}

func TestExecuteWriteReadsSeeStagedWrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	err := s.ExecuteWrite(ctx, func(tx graph.Tx) error {
		if err := tx.MergeNode(ctx, graph.KindProject, "PROJ-1", graph.Props{"title": "X"}); err != nil {
			return err
		}
		n, err := tx.GetNode(ctx, graph.KindProject, "PROJ-1")
		if err != nil {
			return err
		}
		if n.Props.String("title") != "X" {
			return fmt.Errorf("staged write not visible inside tx")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("ExecuteWrite: %v", err)
	}
}

func TestResetEmptiesStore(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if err := s.MergeNode(ctx, graph.KindPerson, "Ana Lima", nil); err != nil {
		t.Fatalf("MergeNode: %v", err)
	}
	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	nodes, rels, err := s.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if nodes != 0 || rels != 0 {
		t.Fatalf("counts after reset = (%d, %d), want (0, 0)", nodes, rels)
	}
}
