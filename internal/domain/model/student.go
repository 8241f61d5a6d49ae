package model

type Student struct {
	ID        string
	Name      string
	Age       int
	City      string
	AvatarKey string
	Bio       string
	Interests []string
	Email     string
	Phone     string
}
