package dto

import "time"

type LikeResponse struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	TutorID   string    `json:"tutorId"`
	CreatedAt time.Time `json:"createdAt"`
}

type LikeCreateRequest struct {
	TutorID string `json:"tutorId"`
}

type LikeExpandedResponse struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"createdAt"`
	Tutor     TutorResponse `json:"tutor"`
}

type PassResponse struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId,omitempty"`
	TutorID   string    `json:"tutorId"`
	CreatedAt time.Time `json:"createdAt"`
}

type PassCreateRequest struct {
	TutorID string `json:"tutorId"`
}
