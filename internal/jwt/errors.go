package jwt

import "errors"

var (
	ErrMissingToken  = errors.New("jwt: missing token")
	ErrInvalidToken  = errors.New("jwt: invalid token")
	ErrExpiredToken  = errors.New("jwt: expired token")
	ErrTokenCreation = errors.New("jwt: token creation failed")
)
