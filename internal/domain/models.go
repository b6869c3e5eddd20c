// Package domain define los tipos de dominio compartidos entre paquetes.
package domain

import "strconv"

// IdentityProfile is the identity reported by the OAuth provider.
// It is fetched fresh every time it is needed and never cached.
type IdentityProfile struct {
	ExternalID  uint64 `json:"id"`
	DisplayName string `json:"name"`
	LoginHandle string `json:"login"`
}

// ClientCredentials is the API credential pair issued once per identity.
// UUID is the provider's external id, reused as the primary key.
type ClientCredentials struct {
	UUID         uint64 `json:"uuid"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// UserKey devuelve la clave de almacenamiento (id decimal) para un external id.
func UserKey(externalID uint64) string {
	return strconv.FormatUint(externalID, 10)
}

// ParseUserKey convierte una clave decimal de vuelta a external id.
func ParseUserKey(key string) (uint64, error) {
	return strconv.ParseUint(key, 10, 64)
}
