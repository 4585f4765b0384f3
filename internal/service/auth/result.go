package auth

import "github.com/viamunicipal/potholes-backend/internal/domain"

// AuthResult is returned by Login and Register operations.
type AuthResult struct {
	AccessToken string
	User        *domain.User
}
