package logger

import (
	"time"

	"go.uber.org/zap"
)

// =================================================================================
// HTTP
// =================================================================================

func RequestID(v string) zap.Field { return zap.String("request_id", v) }

func Method(v string) zap.Field { return zap.String("method", v) }

func Path(v string) zap.Field { return zap.String("path", v) }

func Status(v int) zap.Field { return zap.Int("status", v) }

func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }

func Bytes(v int) zap.Field { return zap.Int("bytes", v) }

func ClientIP(v string) zap.Field { return zap.String("client_ip", v) }

func UserAgent(v string) zap.Field { return zap.String("user_agent", v) }

// =================================================================================
// DOMINIO
// =================================================================================

// Provider es el identity provider de la ruta (github, ...).
func Provider(v string) zap.Field { return zap.String("provider", v) }

// UserID es la clave de almacenamiento tal como llegó en el header user_id.
func UserID(v string) zap.Field { return zap.String("user_id", v) }

// ExternalID es el id numérico estable del provider.
func ExternalID(v uint64) zap.Field { return zap.Uint64("external_id", v) }

// Login es el handle público del usuario; nunca es un secreto.
func Login(v string) zap.Field { return zap.String("login", v) }

// ClientID es el client_id emitido (público). El secret jamás se loguea.
func ClientID(v string) zap.Field { return zap.String("client_id", v) }

// Driver es el backend de almacenamiento o cache.
func Driver(v string) zap.Field { return zap.String("driver", v) }

// =================================================================================
// SISTEMA
// =================================================================================

func Component(v string) zap.Field { return zap.String("component", v) }

// Op es la operación actual (ej: "CallbackService.Complete").
func Op(v string) zap.Field { return zap.String("op", v) }

// Layer es la capa: controller, service, store.
func Layer(v string) zap.Field { return zap.String("layer", v) }

func Err(err error) zap.Field { return zap.Error(err) }

func String(key, v string) zap.Field { return zap.String(key, v) }

func Int(key string, v int) zap.Field { return zap.Int(key, v) }

func Bool(key string, v bool) zap.Field { return zap.Bool(key, v) }

func Time(key string, v time.Time) zap.Field { return zap.Time(key, v) }

func Any(key string, v any) zap.Field { return zap.Any(key, v) }
