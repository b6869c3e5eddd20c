// Package oauth contiene los DTOs del handshake OAuth.
package oauth

import "github.com/dropDatabas3/hellokey/internal/domain"

// CallbackResponse es el cuerpo de un callback exitoso: {"Result": {...}}.
type CallbackResponse struct {
	Result domain.ClientCredentials `json:"Result"`
}
