package validation

import (
	"fmt"
	"regexp"
)

// Tokens de scope OAuth (estilo GitHub): minúsculas, dígitos y ":_.-",
// empiezan y terminan alfanumérico, 1..64 chars. Sin espacios: el scope
// final se arma uniendo con espacio.
//
// Válidos: user:email, read:org, public_repo, admin:repo_hook
// Inválidos: "", "User", "read org", ":lead", "trail:", "a;b"
var scopeNameRe = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9:_\.-]{0,62}[a-z0-9])?$`)

// ValidScopeName reporta si name es un token de scope aceptable.
func ValidScopeName(name string) bool {
	return scopeNameRe.MatchString(name)
}

// ValidateScopes devuelve el primer scope inválido de la lista.
func ValidateScopes(scopes []string) error {
	for _, s := range scopes {
		if !ValidScopeName(s) {
			return fmt.Errorf("invalid scope %q", s)
		}
	}
	return nil
}
