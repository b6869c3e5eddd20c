// Package authorize contiene los DTOs de POST /authorize.
package authorize

// TokenResponse: token_type es siempre "Bearer".
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}
