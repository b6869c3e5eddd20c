package metrics

import "time"

// Operaciones contra el identity provider.
const (
	OpExchange    = "exchange"
	OpProfile     = "profile"
	OpProfileByID = "profile_by_id"
)

// ObserveProvider registra la latencia de una llamada al provider.
// Uso: defer-friendly, start tomado antes de la llamada.
func ObserveProvider(provider, op string, start time.Time, err error) {
	if providerRequestDuration == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	providerRequestDuration.WithLabelValues(provider, op, result).Observe(time.Since(start).Seconds())
}
