package jwt

import (
	"errors"
)

// MinSecretLen es el largo mínimo aceptado para el secreto HS256.
const MinSecretLen = 32

var ErrWeakSecret = errors.New("jwt: signing secret too short")

// Keys contiene el secreto HMAC. Se carga una sola vez al arranque y no muta;
// cambiarlo invalida todos los tokens emitidos.
type Keys struct {
	secret []byte
}

// NewKeys copia el secreto y valida su largo.
func NewKeys(secret string) (Keys, error) {
	if len(secret) < MinSecretLen {
		return Keys{}, ErrWeakSecret
	}
	return Keys{secret: []byte(secret)}, nil
}

func (k Keys) hmac() []byte { return k.secret }
