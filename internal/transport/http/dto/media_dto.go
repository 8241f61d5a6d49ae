package dto

type AvatarResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
