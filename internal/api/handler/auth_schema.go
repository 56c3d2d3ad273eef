package handler

import (
	"time"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

// registerRequest carries no validation tags: the registration gate must be
// checked before field rules, so AuthService.Register validates the fields.
type registerRequest struct {
	Identifier         string `json:"identifier"`
	Password           string `json:"password"`
	RegistrationSecret string `json:"registrationSecret,omitempty"`
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// userResponse is the public view of an account; the password digest is
// never part of it.
type userResponse struct {
	ID         string    `json:"id"`
	Identifier string    `json:"identifier"`
	CreatedAt  time.Time `json:"createdAt"`
}

type loginResponse struct {
	Subject   userResponse `json:"subject"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Identifier: u.Identifier,
		CreatedAt:  u.CreatedAt.UTC(),
	}
}
