package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	PatientsRegistered prometheus.Counter
	UsersRegistered    prometheus.Counter
	LoginsSucceeded    prometheus.Counter
	LoginsFailed       prometheus.Counter
	TokensRefreshed    prometheus.Counter
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		PatientsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "clinicore_patients_registered_total",
			Help: "Total number of patients registered",
		}),
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "clinicore_users_registered_total",
			Help: "Total number of users registered",
		}),
		LoginsSucceeded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "clinicore_logins_succeeded_total",
			Help: "Total number of successful authentications",
		}),
		LoginsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "clinicore_logins_failed_total",
			Help: "Total number of failed authentications",
		}),
		TokensRefreshed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "clinicore_tokens_refreshed_total",
			Help: "Total number of refresh token exchanges",
		}),
	}
}
