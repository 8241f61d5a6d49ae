package model

type Tutor struct {
	ID        string
	Name      string
	Age       int
	Rating    float64
	City      string
	Schedule  string
	Subjects  []string
	Bio       string
	AvatarKey string
	Email     string
	Phone     string
}
