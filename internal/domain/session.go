package domain

import "strings"

type Session struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewSession derives the display name from the part of email before the first "@".
func NewSession(email string) Session {
	name, _, _ := strings.Cut(email, "@")
	return Session{Name: name, Email: email}
}
