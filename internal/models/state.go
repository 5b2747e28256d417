package models

import "slices"

// UserEventState is the per-user record of saved and joined events and of
// comments left on them. Saved and Joined keep insertion order and hold no
// duplicates.
type UserEventState struct {
	Saved    []string          `json:"saved"`
	Joined   []string          `json:"joined"`
	Comments map[string]string `json:"comments"`
}

// NewUserEventState returns the empty state every user starts with.
func NewUserEventState() *UserEventState {
	return &UserEventState{
		Saved:    []string{},
		Joined:   []string{},
		Comments: map[string]string{},
	}
}

// Clone returns a deep copy. Nil collections come back empty, so records
// written by older or foreign clients are normalized on the way.
func (s *UserEventState) Clone() *UserEventState {
	c := NewUserEventState()
	if s == nil {
		return c
	}
	c.Saved = append(c.Saved, s.Saved...)
	c.Joined = append(c.Joined, s.Joined...)
	for k, v := range s.Comments {
		c.Comments[k] = v
	}
	return c
}

func (s *UserEventState) IsSaved(eventID string) bool {
	return slices.Contains(s.Saved, eventID)
}

func (s *UserEventState) IsJoined(eventID string) bool {
	return slices.Contains(s.Joined, eventID)
}

// Comment returns the comment on eventID, or "" if there is none.
func (s *UserEventState) Comment(eventID string) string {
	return s.Comments[eventID]
}
