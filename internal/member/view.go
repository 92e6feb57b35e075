package member

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
)

// StatusFilter selects members by status. FilterAll keeps everyone.
type StatusFilter string

const FilterAll StatusFilter = "All"

// Filters lists the filter cycle used by the dashboard.
var Filters = []StatusFilter{
	FilterAll,
	StatusFilter(StatusWorking),
	StatusFilter(StatusMeeting),
	StatusFilter(StatusBreak),
	StatusFilter(StatusOffline),
}

func ParseStatusFilter(s string) (StatusFilter, error) {
	if s == "" || strings.EqualFold(s, string(FilterAll)) {
		return FilterAll, nil
	}
	st, err := ParseStatus(s)
	if err != nil {
		return "", err
	}
	return StatusFilter(st), nil
}

type SortKey string

const (
	SortByName  SortKey = "name"
	SortByTasks SortKey = "tasks"
)

func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(s)) {
	case "", SortByName:
		return SortByName, nil
	case SortByTasks:
		return SortByTasks, nil
	}
	return "", fmt.Errorf("unknown sort key %q (want name or tasks)", s)
}

func CountByStatus(members []Member, status Status) int {
	n := 0
	for _, m := range members {
		if m.Status == status {
			n++
		}
	}
	return n
}

// StatusCounts returns a count for every status, including empty ones.
func StatusCounts(members []Member) map[Status]int {
	counts := make(map[Status]int, len(Statuses))
	for _, st := range Statuses {
		counts[st] = 0
	}
	for _, m := range members {
		counts[m.Status]++
	}
	return counts
}

// ActiveTaskCount counts tasks that have not reached 100%.
func ActiveTaskCount(m Member) int {
	n := 0
	for _, t := range m.Tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

func FilterByStatus(members []Member, filter StatusFilter) []Member {
	if filter == FilterAll {
		return members
	}
	result := make([]Member, 0, len(members))
	for _, m := range members {
		if StatusFilter(m.Status) == filter {
			result = append(result, m)
		}
	}
	return result
}

// SortMembers returns a sorted copy. SortByName keeps the input order: the
// dashboard has always listed members in roster order under that label.
func SortMembers(members []Member, key SortKey) []Member {
	sorted := make([]Member, len(members))
	copy(sorted, members)
	if key == SortByTasks {
		sort.SliceStable(sorted, func(i, j int) bool {
			return ActiveTaskCount(sorted[i]) > ActiveTaskCount(sorted[j])
		})
	}
	return sorted
}

type memberNames []Member

func (n memberNames) String(i int) string { return n[i].Name }
func (n memberNames) Len() int            { return len(n) }

// FindByName resolves query to a member. An exact (case-insensitive) name
// wins; otherwise the best fuzzy match is returned.
func FindByName(members []Member, query string) (Member, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Member{}, false
	}
	for _, m := range members {
		if strings.EqualFold(m.Name, query) {
			return m, true
		}
	}
	matches := fuzzy.FindFrom(query, memberNames(members))
	if len(matches) == 0 {
		return Member{}, false
	}
	return members[matches[0].Index], true
}

// Resolve accepts either a numeric member id or a name.
func Resolve(members []Member, ref string) (Member, bool) {
	if id, err := strconv.Atoi(strings.TrimSpace(ref)); err == nil {
		for _, m := range members {
			if m.ID == id {
				return m, true
			}
		}
		return Member{}, false
	}
	return FindByName(members, ref)
}

// Match resolves ref for operations that change state. It accepts a numeric
// id, an exact name, or a case-insensitive prefix of a single member's name
// or of one of its words. On a miss it returns the members ref might have
// meant, for display only.
func Match(members []Member, ref string) (Member, []Member, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Member{}, nil, false
	}
	if id, err := strconv.Atoi(ref); err == nil {
		for _, m := range members {
			if m.ID == id {
				return m, nil, true
			}
		}
		return Member{}, nil, false
	}
	for _, m := range members {
		if strings.EqualFold(m.Name, ref) {
			return m, nil, true
		}
	}

	prefix := strings.ToLower(ref)
	var hits []Member
	for _, m := range members {
		if hasNamePrefix(m.Name, prefix) {
			hits = append(hits, m)
		}
	}
	if len(hits) == 1 {
		return hits[0], nil, true
	}
	if len(hits) > 1 {
		return Member{}, hits, false
	}

	var candidates []Member
	for _, match := range fuzzy.FindFrom(ref, memberNames(members)) {
		candidates = append(candidates, members[match.Index])
	}
	return Member{}, candidates, false
}

func hasNamePrefix(name, prefix string) bool {
	name = strings.ToLower(name)
	if strings.HasPrefix(name, prefix) {
		return true
	}
	for _, word := range strings.Fields(name) {
		if strings.HasPrefix(word, prefix) {
			return true
		}
	}
	return false
}
