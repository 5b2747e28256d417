package models

import "strings"

// Event is a catalog entry. Events are configuration, never persisted.
type Event struct {
	ID        string `json:"id"`
	Badge     string `json:"badge"`
	EventName string `json:"eventName"`
	Professor string `json:"professor"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Desc      string `json:"desc"`
}

// JoinedEvent is an event the user joined together with their comment, if any.
type JoinedEvent struct {
	Event
	Comment string
}

// HasComment reports whether the comment is non-blank.
func (j JoinedEvent) HasComment() bool {
	return strings.TrimSpace(j.Comment) != ""
}
