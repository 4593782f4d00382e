// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package thread

import "sync"

// NodeMode is the interaction mode of a single comment node.
type NodeMode int

const (
	// ModeViewing is the default: no form open under the comment.
	ModeViewing NodeMode = iota
	// ModeEditing shows an edit form seeded with the comment's content.
	ModeEditing
	// ModeReplying shows an empty reply composer under the comment.
	ModeReplying
)

func (m NodeMode) String() string {
	switch m {
	case ModeEditing:
		return "editing"
	case ModeReplying:
		return "replying"
	default:
		return "viewing"
	}
}

type nodeState struct {
	mode  NodeMode
	draft string
	busy  bool
}

// NodeStates tracks per-comment interaction state in a side table keyed
// by comment id, so a full thread resync never wipes open forms or
// in-flight flags. At most one of editing/replying is active per node;
// starting one cancels the other and discards its draft.
type NodeStates struct {
	mu    sync.Mutex
	gate  AuthGate
	nodes map[string]*nodeState
}

func newNodeStates(gate AuthGate) *NodeStates {
	return &NodeStates{gate: gate, nodes: make(map[string]*nodeState)}
}

func (s *NodeStates) state(id string) *nodeState {
	st, ok := s.nodes[id]
	if !ok {
		st = &nodeState{}
		s.nodes[id] = st
	}
	return st
}

// Mode returns the node's current mode. Untracked nodes are viewing.
func (s *NodeStates) Mode(id string) NodeMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.nodes[id]; ok {
		return st.mode
	}
	return ModeViewing
}

// Draft returns the node's current draft text.
func (s *NodeStates) Draft(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.nodes[id]; ok {
		return st.draft
	}
	return ""
}

// SetDraft updates the node's draft text as the visitor types.
func (s *NodeStates) SetDraft(id, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state(id).draft = text
}

// StartEditing opens the edit form for a comment, seeding the draft
// with its current content. Only the comment's owner may edit; for
// anyone else this is a no-op returning false.
func (s *NodeStates) StartEditing(c *Comment) bool {
	p := s.gate.Principal()
	if p == nil || p.ID != c.Author.ID {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(c.ID)
	st.mode = ModeEditing
	st.draft = c.Content
	return true
}

// StartReplying opens an empty reply composer under a comment. An
// anonymous visitor gets an authentication prompt instead.
func (s *NodeStates) StartReplying(id string) bool {
	if !s.gate.IsAuthenticated() {
		s.gate.RequestAuthentication()
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(id)
	st.mode = ModeReplying
	st.draft = ""
	return true
}

// Cancel closes any open form on the node and discards its draft.
func (s *NodeStates) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.nodes[id]; ok {
		st.mode = ModeViewing
		st.draft = ""
	}
}

// Busy reports whether a mutation is in flight for the node.
func (s *NodeStates) Busy(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.nodes[id]; ok {
		return st.busy
	}
	return false
}

// beginOp marks the node busy. Returns false if an operation is
// already in flight.
func (s *NodeStates) beginOp(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(id)
	if st.busy {
		return false
	}
	st.busy = true
	return true
}

func (s *NodeStates) endOp(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.nodes[id]; ok {
		st.busy = false
	}
}

// ResetAll returns every node to viewing and clears all drafts.
// In-flight flags are left alone.
func (s *NodeStates) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.nodes {
		st.mode = ModeViewing
		st.draft = ""
	}
}
