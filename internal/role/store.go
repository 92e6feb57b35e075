package role

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

type Role string

const (
	Lead   Role = "lead"
	Member Role = "member"
)

func (r Role) Valid() bool {
	return r == Lead || r == Member
}

// Label is the name shown in the dashboard header.
func (r Role) Label() string {
	if r == Member {
		return "Member View"
	}
	return "Lead View"
}

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case Lead:
		return Lead, nil
	case Member:
		return Member, nil
	}
	return "", fmt.Errorf("unknown role %q (want lead or member)", s)
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if !Role(raw).Valid() {
		return fmt.Errorf("invalid role %q", raw)
	}
	*r = Role(raw)
	return nil
}

// State is the persisted role section.
type State struct {
	CurrentRole Role   `json:"currentRole"`
	CurrentUser string `json:"currentUser"`
}

type Store struct {
	mu        sync.RWMutex
	state     State
	listeners map[int]func()
	nextSub   int
}

func NewStore(initial State) *Store {
	if !initial.CurrentRole.Valid() {
		initial.CurrentRole = Lead
	}
	return &Store{
		state:     initial,
		listeners: make(map[int]func()),
	}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) SwitchRole(r Role) {
	if !r.Valid() {
		return
	}
	s.mu.Lock()
	s.state.CurrentRole = r
	s.mu.Unlock()
	s.notify()
}

// Toggle flips between the lead and member views and returns the new role.
func (s *Store) Toggle() Role {
	s.mu.Lock()
	if s.state.CurrentRole == Lead {
		s.state.CurrentRole = Member
	} else {
		s.state.CurrentRole = Lead
	}
	r := s.state.CurrentRole
	s.mu.Unlock()
	s.notify()
	return r
}

func (s *Store) SetCurrentUser(name string) {
	s.mu.Lock()
	s.state.CurrentUser = name
	s.mu.Unlock()
	s.notify()
}

// Replace swaps in new state without notifying subscribers.
func (s *Store) Replace(st State) {
	if !st.CurrentRole.Valid() {
		st.CurrentRole = Lead
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
}

func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}
