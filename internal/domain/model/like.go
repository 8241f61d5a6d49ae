package model

import "time"

// Like is a one-directional "interested in" relation from a student to a
// tutor. Unique per (StudentID, TutorID), enforced by the store.
type Like struct {
	ID        string
	StudentID string
	TutorID   string
	CreatedAt time.Time
}

// LikedTutor is a like joined with the tutor it points at, the shape the
// match list renders from.
type LikedTutor struct {
	LikeID    string
	Tutor     Tutor
	CreatedAt time.Time
}
