package dto

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Age      int    `json:"age,omitempty"`
	City     string `json:"city,omitempty"`
}

type UserResponse struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

type LoginResponse struct {
	Token        string       `json:"token"`
	ExpiresInSec int64        `json:"expiresInSec"`
	User         UserResponse `json:"user"`
}

type RegisterResponse struct {
	OK bool `json:"ok"`
}

type LogoutResponse struct {
	OK bool `json:"ok"`
}
