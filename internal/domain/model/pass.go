package model

import "time"

// Pass is a "not interested" decision. StudentID may be empty for decisions
// recorded before the viewer identified themselves.
type Pass struct {
	ID        string
	TutorID   string
	StudentID string
	CreatedAt time.Time
}
