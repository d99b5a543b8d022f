package dto

import (
	"time"

	domainuser "wanderstay/internal/domain/user"
)

type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

func NewUserProfile(u *domainuser.User) UserProfile {
	return UserProfile{
		ID:        string(u.ID),
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func NewAuthResponse(u *domainuser.User, token string) AuthResponse {
	return AuthResponse{Token: token, User: NewUserProfile(u)}
}
