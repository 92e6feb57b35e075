package member

import (
	"reflect"
	"sync"
	"testing"
	"time"
)

func testRoster() []Member {
	return []Member{
		{ID: 1, Name: "Natalie Gibson", Status: StatusWorking},
		{ID: 2, Name: "Peter Piper", Status: StatusMeeting},
		{ID: 3, Name: "John Doe", Status: StatusOffline},
	}
}

func TestStore_Members_Order(t *testing.T) {
	s := NewStore(testRoster())

	got := s.Members()
	if len(got) != 3 {
		t.Fatalf("Members() returned %d members, want 3", len(got))
	}
	for i, want := range []int{1, 2, 3} {
		if got[i].ID != want {
			t.Errorf("member %d ID = %d, want %d", i, got[i].ID, want)
		}
	}
}

func TestStore_Members_ReturnsCopies(t *testing.T) {
	s := NewStore(testRoster())
	s.AssignTask(1, "Write report", Date{})

	got := s.Members()
	got[0].Status = StatusBreak
	got[0].Tasks[0].Progress = 90

	m, _ := s.Member(1)
	if m.Status != StatusWorking {
		t.Errorf("status leaked through copy: %q", m.Status)
	}
	if m.Tasks[0].Progress != 0 {
		t.Errorf("task progress leaked through copy: %d", m.Tasks[0].Progress)
	}
}

func TestStore_SetMemberStatus(t *testing.T) {
	s := NewStore(testRoster())

	if ok := s.SetMemberStatus(2, StatusBreak); !ok {
		t.Error("SetMemberStatus returned false for existing member")
	}
	m, _ := s.Member(2)
	if m.Status != StatusBreak {
		t.Errorf("status = %q, want %q", m.Status, StatusBreak)
	}
}

func TestStore_SetMemberStatus_NotFound(t *testing.T) {
	s := NewStore(testRoster())
	before := s.Members()

	if ok := s.SetMemberStatus(999, StatusWorking); ok {
		t.Error("SetMemberStatus should return false for missing member")
	}
	if after := s.Members(); !reflect.DeepEqual(before, after) {
		t.Errorf("roster changed:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestStore_SetMemberStatus_InvalidStatus(t *testing.T) {
	s := NewStore(testRoster())

	if ok := s.SetMemberStatus(1, Status("Sleeping")); ok {
		t.Error("SetMemberStatus should reject an unknown status")
	}
	m, _ := s.Member(1)
	if m.Status != StatusWorking {
		t.Errorf("status = %q, want %q", m.Status, StatusWorking)
	}
}

func TestStore_AssignTask(t *testing.T) {
	s := NewStore(testRoster())
	s.AssignTask(2, "existing", Date{})
	before := s.Members()

	due := NewDate(2025, time.January, 1)
	id, ok := s.AssignTask(1, "Write report", due)
	if !ok {
		t.Fatal("AssignTask returned false for existing member")
	}

	after := s.Members()
	if len(after[0].Tasks) != len(before[0].Tasks)+1 {
		t.Fatalf("task count = %d, want %d", len(after[0].Tasks), len(before[0].Tasks)+1)
	}
	task := after[0].Tasks[0]
	if task.ID != id {
		t.Errorf("task ID = %d, want %d", task.ID, id)
	}
	if task.Title != "Write report" {
		t.Errorf("title = %q", task.Title)
	}
	if task.DueDate.String() != "2025-01-01" {
		t.Errorf("due = %q, want 2025-01-01", task.DueDate)
	}
	if task.Progress != 0 || task.Completed {
		t.Errorf("new task = %+v, want progress 0 and not completed", task)
	}
	for i := 1; i < len(after); i++ {
		if !reflect.DeepEqual(before[i], after[i]) {
			t.Errorf("member %d changed: %+v -> %+v", after[i].ID, before[i], after[i])
		}
	}
}

func TestStore_AssignTask_NotFound(t *testing.T) {
	s := NewStore(testRoster())
	before := s.Members()

	if _, ok := s.AssignTask(42, "nobody", Date{}); ok {
		t.Error("AssignTask should return false for missing member")
	}
	if after := s.Members(); !reflect.DeepEqual(before, after) {
		t.Error("roster changed after AssignTask on missing member")
	}
}

func TestStore_AssignTask_UniqueIDsWithFrozenClock(t *testing.T) {
	s := NewStore(testRoster())
	frozen := time.UnixMilli(1_700_000_000_000)
	s.SetClock(func() time.Time { return frozen })

	seen := make(map[int64]bool)
	for i := 0; i < 5; i++ {
		id, _ := s.AssignTask(1, "t", Date{})
		if seen[id] {
			t.Fatalf("duplicate task id %d", id)
		}
		seen[id] = true
	}
	if !seen[frozen.UnixMilli()] {
		t.Errorf("first id should come from the clock (%d)", frozen.UnixMilli())
	}
}

func TestStore_AssignTask_IDsAfterReplace(t *testing.T) {
	s := NewStore([]Member{{
		ID: 1, Name: "a", Status: StatusWorking,
		Tasks: []Task{{ID: 5000, Title: "old"}},
	}})
	s.SetClock(func() time.Time { return time.UnixMilli(10) })

	id, _ := s.AssignTask(1, "new", Date{})
	if id != 5001 {
		t.Errorf("id = %d, want 5001 (past existing ids)", id)
	}
}

func TestStore_AdjustTaskProgress_Scenario(t *testing.T) {
	s := NewStore([]Member{{ID: 1, Name: "a", Status: StatusWorking}})
	taskID, _ := s.AssignTask(1, "Write report", NewDate(2025, time.January, 1))

	progress := func() Task {
		m, _ := s.Member(1)
		return m.Tasks[0]
	}

	for i := 0; i < 3; i++ {
		s.AdjustTaskProgress(1, taskID, +10)
	}
	if got := progress(); got.Progress != 30 || got.Completed {
		t.Errorf("after 3 steps = %d/%v, want 30/false", got.Progress, got.Completed)
	}

	for i := 0; i < 7; i++ {
		s.AdjustTaskProgress(1, taskID, +10)
	}
	if got := progress(); got.Progress != 100 || !got.Completed {
		t.Errorf("after 10 steps = %d/%v, want 100/true", got.Progress, got.Completed)
	}

	s.AdjustTaskProgress(1, taskID, +10)
	if got := progress(); got.Progress != 100 || !got.Completed {
		t.Errorf("after 11 steps = %d/%v, want 100/true", got.Progress, got.Completed)
	}
}

func TestStore_AdjustTaskProgress_ClampsAtZero(t *testing.T) {
	s := NewStore(testRoster())
	taskID, _ := s.AssignTask(1, "t", Date{})

	s.AdjustTaskProgress(1, taskID, -10)
	m, _ := s.Member(1)
	if m.Tasks[0].Progress != 0 {
		t.Errorf("progress = %d, want 0", m.Tasks[0].Progress)
	}
}

func TestStore_AdjustTaskProgress_CompletedTracksProgress(t *testing.T) {
	s := NewStore(testRoster())
	taskID, _ := s.AssignTask(1, "t", Date{})

	steps := []int{10, 10, -10, 10, 10, 10, 10, 10, 10, 10, 10, 10, -10, 10, 10, -10, -10, -10}
	for i, d := range steps {
		s.AdjustTaskProgress(1, taskID, d)
		m, _ := s.Member(1)
		task := m.Tasks[0]
		if task.Progress < ProgressMin || task.Progress > ProgressMax {
			t.Fatalf("step %d: progress %d out of range", i, task.Progress)
		}
		if task.Completed != (task.Progress == ProgressMax) {
			t.Fatalf("step %d: completed=%v with progress %d", i, task.Completed, task.Progress)
		}
	}
}

func TestStore_AdjustTaskProgress_NotFound(t *testing.T) {
	s := NewStore(testRoster())
	taskID, _ := s.AssignTask(1, "t", Date{})
	before := s.Members()

	if s.AdjustTaskProgress(999, taskID, 10) {
		t.Error("expected false for missing member")
	}
	if s.AdjustTaskProgress(1, taskID+1, 10) {
		t.Error("expected false for missing task")
	}
	if s.AdjustTaskProgress(2, taskID, 10) {
		t.Error("expected false for task owned by another member")
	}
	if after := s.Members(); !reflect.DeepEqual(before, after) {
		t.Error("roster changed after not-found progress updates")
	}
}

func TestStore_Subscribe(t *testing.T) {
	s := NewStore(testRoster())
	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })

	s.SetMemberStatus(1, StatusBreak)
	taskID, _ := s.AssignTask(1, "t", Date{})
	s.AdjustTaskProgress(1, taskID, 10)
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}

	s.SetMemberStatus(999, StatusBreak)
	s.AssignTask(999, "t", Date{})
	s.AdjustTaskProgress(1, 0, 10)
	if calls != 3 {
		t.Errorf("no-op mutations notified: calls = %d, want 3", calls)
	}

	s.Replace(testRoster())
	if calls != 3 {
		t.Errorf("Replace notified: calls = %d, want 3", calls)
	}

	unsubscribe()
	s.SetMemberStatus(1, StatusWorking)
	if calls != 3 {
		t.Errorf("unsubscribed listener still called: calls = %d", calls)
	}
}

func TestStore_Subscribe_CanReadStore(t *testing.T) {
	s := NewStore(testRoster())
	var seen Status
	s.Subscribe(func() {
		m, _ := s.Member(1)
		seen = m.Status
	})

	s.SetMemberStatus(1, StatusMeeting)
	if seen != StatusMeeting {
		t.Errorf("listener saw %q, want %q", seen, StatusMeeting)
	}
}

func TestStore_Replace_Normalizes(t *testing.T) {
	s := NewStore(nil)
	s.Replace([]Member{{
		ID: 1, Name: "a", Status: StatusWorking,
		Tasks: []Task{
			{ID: 1, Title: "over", Progress: 130},
			{ID: 2, Title: "under", Progress: -20, Completed: true},
		},
	}})

	m, _ := s.Member(1)
	if m.Tasks[0].Progress != 100 || !m.Tasks[0].Completed {
		t.Errorf("task 1 = %+v, want 100/completed", m.Tasks[0])
	}
	if m.Tasks[1].Progress != 0 || m.Tasks[1].Completed {
		t.Errorf("task 2 = %+v, want 0/not completed", m.Tasks[1])
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore(testRoster())
	s.Subscribe(func() { s.Members() })

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := i%3 + 1
			taskID, _ := s.AssignTask(id, "t", Date{})
			s.AdjustTaskProgress(id, taskID, 10)
			s.SetMemberStatus(id, Statuses[i%len(Statuses)])
			s.Members()
		}(i)
	}
	wg.Wait()

	total := 0
	for _, m := range s.Members() {
		total += len(m.Tasks)
	}
	if total != 100 {
		t.Errorf("total tasks = %d, want 100", total)
	}
}
