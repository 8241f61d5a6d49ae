package dto

type TutorResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Age      int      `json:"age,omitempty"`
	Rating   float64  `json:"rating"`
	City     string   `json:"city,omitempty"`
	Schedule string   `json:"schedule,omitempty"`
	Subjects []string `json:"subjects"`
	Bio      string   `json:"bio,omitempty"`
	Avatar   string   `json:"avatar,omitempty"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
}

type StudentResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Age       int      `json:"age,omitempty"`
	City      string   `json:"city,omitempty"`
	Interests []string `json:"interests"`
	Bio       string   `json:"bio,omitempty"`
	Avatar    string   `json:"avatar,omitempty"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
}

type UserPatchRequest struct {
	Name     *string `json:"name,omitempty"`
	Age      *int    `json:"age,omitempty"`
	City     *string `json:"city,omitempty"`
	Schedule *string `json:"schedule,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Password *string `json:"password,omitempty"`
}

type SubjectsRequest struct {
	Subjects []string `json:"subjects"`
}

type SubjectsResponse struct {
	Subjects []string `json:"subjects"`
}

type InterestsRequest struct {
	Interests []string `json:"interests"`
}

type InterestsResponse struct {
	Interests []string `json:"interests"`
}
