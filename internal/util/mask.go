package util

import "strings"

// MaskSecret oculta todo salvo los últimos 4 caracteres.
func MaskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

// MaskToken deja ver prefijo y sufijo; útil para loguear tokens largos.
func MaskToken(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= 12 {
		return MaskSecret(s)
	}
	return s[:4] + "…" + s[len(s)-4:]
}
