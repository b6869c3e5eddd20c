// Package logger expone un zap.Logger singleton con scoping por request.
//
// Init se llama una vez en cmd; los middlewares inyectan un logger con
// request_id vía ToContext y el resto del código usa From(ctx):
//
//	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("callback"))
//	log.Info("credentials issued", logger.ExternalID(p.ExternalID))
//
// "dev" escribe consola con colores, "prod" JSON. Nunca loguear client_secret,
// bearer tokens ni PKCE verifiers.
package logger
