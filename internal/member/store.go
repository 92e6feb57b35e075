package member

import (
	"sync"
	"time"
)

// Store owns the roster. All reads return copies; all writes go through
// the mutation methods, which report whether the target was found.
type Store struct {
	mu        sync.RWMutex
	members   []*Member
	lastTask  int64
	now       func() time.Time
	listeners map[int]func()
	nextSub   int
}

func NewStore(members []Member) *Store {
	s := &Store{
		now:       time.Now,
		listeners: make(map[int]func()),
	}
	s.replace(members)
	return s
}

// SetClock overrides the time source used for task ids (for testing).
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Members() []Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]Member, 0, len(s.members))
	for _, m := range s.members {
		result = append(result, m.Clone())
	}
	return result
}

func (s *Store) Member(id int) (Member, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m := s.find(id)
	if m == nil {
		return Member{}, false
	}
	return m.Clone(), true
}

func (s *Store) SetMemberStatus(id int, status Status) bool {
	if !status.Valid() {
		return false
	}
	s.mu.Lock()
	m := s.find(id)
	if m == nil {
		s.mu.Unlock()
		return false
	}
	m.Status = status
	s.mu.Unlock()

	s.notify()
	return true
}

// AssignTask appends a fresh task at zero progress and returns its id.
// The title is not validated here; the caller owns that check.
func (s *Store) AssignTask(id int, title string, due Date) (int64, bool) {
	s.mu.Lock()
	m := s.find(id)
	if m == nil {
		s.mu.Unlock()
		return 0, false
	}
	taskID := s.nextTaskID()
	m.Tasks = append(m.Tasks, Task{
		ID:      taskID,
		Title:   title,
		DueDate: due,
	})
	s.mu.Unlock()

	s.notify()
	return taskID, true
}

// AdjustTaskProgress moves a task one step up or down. Any positive delta
// counts as one step up, any negative delta as one step down.
func (s *Store) AdjustTaskProgress(memberID int, taskID int64, delta int) bool {
	s.mu.Lock()
	m := s.find(memberID)
	if m == nil {
		s.mu.Unlock()
		return false
	}
	var task *Task
	for i := range m.Tasks {
		if m.Tasks[i].ID == taskID {
			task = &m.Tasks[i]
			break
		}
	}
	if task == nil {
		s.mu.Unlock()
		return false
	}
	switch {
	case delta > 0:
		task.setProgress(task.Progress + ProgressStep)
	case delta < 0:
		task.setProgress(task.Progress - ProgressStep)
	}
	s.mu.Unlock()

	s.notify()
	return true
}

// Replace swaps in a new roster without notifying subscribers.
func (s *Store) Replace(members []Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replace(members)
}

// Subscribe registers fn to run after every applied mutation. The returned
// func removes it.
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

func (s *Store) replace(members []Member) {
	s.members = make([]*Member, 0, len(members))
	s.lastTask = 0
	for _, m := range members {
		c := m.Clone()
		c.Normalize()
		for _, t := range c.Tasks {
			if t.ID > s.lastTask {
				s.lastTask = t.ID
			}
		}
		s.members = append(s.members, &c)
	}
}

func (s *Store) find(id int) *Member {
	for _, m := range s.members {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// nextTaskID issues a millisecond timestamp, bumped past the last issued
// id when the clock has not moved. Caller holds mu.
func (s *Store) nextTaskID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastTask {
		id = s.lastTask + 1
	}
	s.lastTask = id
	return id
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
