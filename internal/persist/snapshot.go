package persist

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/simonbystrom/teampulse/internal/member"
	"github.com/simonbystrom/teampulse/internal/role"
)

// Snapshot is everything written to durable storage.
type Snapshot struct {
	Members []member.Member `json:"members"`
	Role    role.State      `json:"role"`
}

func Encode(s Snapshot) ([]byte, error) {
	if s.Members == nil {
		s.Members = []member.Member{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a stored snapshot and checks it against the data model.
// Task progress is re-clamped and completion recomputed; a missing role
// falls back to the lead view.
func Decode(data []byte) (Snapshot, error) {
	var raw struct {
		Members *[]member.Member `json:"members"`
		Role    *role.State      `json:"role"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if raw.Members == nil {
		return Snapshot{}, errors.New("snapshot has no members field")
	}

	s := Snapshot{Members: *raw.Members}
	if raw.Role != nil {
		s.Role = *raw.Role
	}
	if s.Role.CurrentRole == "" {
		s.Role.CurrentRole = role.Lead
	}

	seen := make(map[int]bool, len(s.Members))
	for i := range s.Members {
		m := &s.Members[i]
		if seen[m.ID] {
			return Snapshot{}, fmt.Errorf("duplicate member id %d", m.ID)
		}
		seen[m.ID] = true
		if !m.Status.Valid() {
			return Snapshot{}, fmt.Errorf("member %d has no status", m.ID)
		}
		m.Normalize()
	}
	return s, nil
}
