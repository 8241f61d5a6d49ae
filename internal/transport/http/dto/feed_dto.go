package dto

type FeedResponse struct {
	Tutors []TutorResponse `json:"tutors"`
	Cursor int             `json:"cursor"`
}

type SwipeRequest struct {
	TutorID   string   `json:"tutorId"`
	Action    string   `json:"action,omitempty"`
	OffsetX   *float64 `json:"offsetX,omitempty"`
	VelocityX *float64 `json:"velocityX,omitempty"`
}

type SwipeResponse struct {
	Decision string `json:"decision"`
	Cursor   int    `json:"cursor"`
	LikeID   string `json:"likeId,omitempty"`
	Created  bool   `json:"created"`
}

type FeedResetResponse struct {
	Cursor int `json:"cursor"`
}
