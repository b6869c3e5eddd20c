// Package audit registra eventos de seguridad (alta de credenciales, tokens
// emitidos) como líneas estructuradas con logger "audit".
package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dropDatabas3/hellokey/internal/observability/logger"
)

// Eventos conocidos.
const (
	EventCredentialsIssued = "credentials.issued"
	EventTokenMinted       = "token.minted"
)

// Log escribe un evento de auditoría. Nunca incluir secretos en fields.
func Log(ctx context.Context, event string, fields ...zap.Field) {
	base := []zap.Field{
		zap.String("event", event),
		zap.Time("ts", time.Now().UTC()),
	}
	logger.From(ctx).Named("audit").Info(event, append(base, fields...)...)
}
