package model

import "github.com/David-1512/LearnHub/internal/domain/enums"

// User is an account record. PasswordHash never leaves the repo/service
// layer; handlers only ever see PublicUser.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Roles        []enums.Role
}

type PublicUser struct {
	ID    string
	Name  string
	Email string
	Roles []enums.Role
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Roles: append([]enums.Role(nil), u.Roles...),
	}
}

func (u User) HasRole(role enums.Role) bool {
	return enums.AnyAllowed(u.Roles, role)
}
