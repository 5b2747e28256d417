// Package models holds the records persisted by eventreg and the static
// event type served by the catalog. JSON field names are part of the stored
// layout and must not change.
package models

// User is a registered account. Password is kept in plain text; this is a
// demo-grade store.
type User struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Session identifies the currently authenticated user.
type Session struct {
	UserID string `json:"userId"`
}
