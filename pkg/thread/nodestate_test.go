package thread

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestStartEditingOwnerOnly(t *testing.T) {
	comment := &Comment{ID: "c1", Content: "original", Author: Author{ID: "u1", Name: "Ada"}}

	owner := newNodeStates(signedIn("u1", "Ada"))
	if !owner.StartEditing(comment) {
		t.Fatal("owner should be able to start editing")
	}
	if owner.Mode("c1") != ModeEditing {
		t.Errorf("expected editing mode, got %v", owner.Mode("c1"))
	}
	if owner.Draft("c1") != "original" {
		t.Errorf("expected draft seeded with content, got %q", owner.Draft("c1"))
	}

	stranger := newNodeStates(signedIn("u2", "Grace"))
	if stranger.StartEditing(comment) {
		t.Error("non-owner should not be able to start editing")
	}
	if stranger.Mode("c1") != ModeViewing {
		t.Errorf("expected viewing mode, got %v", stranger.Mode("c1"))
	}

	anon := newNodeStates(anonymous())
	if anon.StartEditing(comment) {
		t.Error("anonymous visitor should not be able to start editing")
	}
}

func TestStartReplyingRequiresAuth(t *testing.T) {
	gate := anonymous()
	s := newNodeStates(gate)

	if s.StartReplying("c1") {
		t.Error("anonymous visitor should not be able to start replying")
	}
	if gate.prompts != 1 {
		t.Errorf("expected 1 authentication prompt, got %d", gate.prompts)
	}
	if s.Mode("c1") != ModeViewing {
		t.Errorf("expected viewing mode, got %v", s.Mode("c1"))
	}
}

func TestStartReplyingCancelsEditingAndDiscardsDraft(t *testing.T) {
	comment := &Comment{ID: "c1", Content: "original", Author: Author{ID: "u1", Name: "Ada"}}
	s := newNodeStates(signedIn("u1", "Ada"))

	if !s.StartEditing(comment) {
		t.Fatal("StartEditing failed")
	}
	s.SetDraft("c1", "half-finished edit")

	if !s.StartReplying("c1") {
		t.Fatal("StartReplying failed")
	}
	if s.Mode("c1") != ModeReplying {
		t.Errorf("expected replying mode, got %v", s.Mode("c1"))
	}
	if s.Draft("c1") != "" {
		t.Errorf("expected edit draft discarded, got %q", s.Draft("c1"))
	}
}

func TestCancelReturnsToViewing(t *testing.T) {
	s := newNodeStates(signedIn("u1", "Ada"))
	if !s.StartReplying("c1") {
		t.Fatal("StartReplying failed")
	}
	s.SetDraft("c1", "never mind")

	s.Cancel("c1")
	if s.Mode("c1") != ModeViewing {
		t.Errorf("expected viewing mode, got %v", s.Mode("c1"))
	}
	if s.Draft("c1") != "" {
		t.Errorf("expected draft cleared, got %q", s.Draft("c1"))
	}

	// Cancelling an untracked node is a no-op.
	s.Cancel("unknown")
}

func TestResetAllKeepsBusyFlags(t *testing.T) {
	s := newNodeStates(signedIn("u1", "Ada"))
	if !s.StartReplying("c1") {
		t.Fatal("StartReplying failed")
	}
	if !s.beginOp("c2") {
		t.Fatal("beginOp failed")
	}

	s.ResetAll()
	if s.Mode("c1") != ModeViewing {
		t.Errorf("expected viewing mode after reset, got %v", s.Mode("c1"))
	}
	if !s.Busy("c2") {
		t.Error("expected in-flight flag to survive reset")
	}
	s.endOp("c2")
	if s.Busy("c2") {
		t.Error("expected busy cleared after endOp")
	}
}

func TestConcurrentMutationReturnsPending(t *testing.T) {
	gate := signedIn("u1", "Ada")
	backend := newFakeBackend(gate)
	th := New("hello-world", gate, backend)
	if err := th.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := th.SubmitComment(context.Background(), "target"); err != nil {
		t.Fatalf("SubmitComment: %v", err)
	}
	id := th.Comments()[0].ID

	// Simulate an in-flight operation on the node.
	if !th.Nodes().beginOp(id) {
		t.Fatal("beginOp failed")
	}
	defer th.Nodes().endOp(id)

	if err := th.SaveEdit(context.Background(), id, "too eager"); !errors.Is(err, ErrPending) {
		t.Fatalf("expected ErrPending, got %v", err)
	}
	if err := th.Remove(context.Background(), id); !errors.Is(err, ErrPending) {
		t.Fatalf("expected ErrPending, got %v", err)
	}
}

func TestNodeModeString(t *testing.T) {
	cases := map[NodeMode]string{
		ModeViewing:  "viewing",
		ModeEditing:  "editing",
		ModeReplying: "replying",
	}
	for mode, want := range cases {
		if got := mode.String(); got != want {
			t.Errorf("NodeMode(%d).String() = %q, want %q", mode, got, want)
		}
	}
}

func TestNodeStatesConcurrentAccess(t *testing.T) {
	s := newNodeStates(signedIn("u1", "Ada"))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.StartReplying("c1")
				s.SetDraft("c1", "x")
				_ = s.Mode("c1")
				_ = s.Draft("c1")
				s.Cancel("c1")
			}
		}()
	}
	wg.Wait()
}
