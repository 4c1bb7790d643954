// Package metrics defines and registers all custom Prometheus metrics for
// the FincaManager API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init via promauto; the HTTP layer exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fincamanager"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignupsTotal counts successfully created user accounts.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of user accounts created.",
	},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Herd metrics ──────────────────────────────────────────────────────────────

// AnimalsCreatedTotal counts newly registered animals.
// Label:
//   - origin: "Nacido en Finca", "Comprado" or "Transferido"
var AnimalsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "animals_created_total",
		Help:      "Total number of animals registered, by origin.",
	},
	[]string{"origin"},
)

// RecordsCreatedTotal counts husbandry records written.
// Label:
//   - type: "weighing", "health_event", "reproductive_event", "feeding",
//     "transaction", "location_entry"
var RecordsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_created_total",
		Help:      "Total number of husbandry records created, by record type.",
	},
	[]string{"type"},
)

// ── Activity feed metrics ─────────────────────────────────────────────────────

// ActivityEntriesTotal counts activity entries, labelled by outcome of the
// asynchronous write ("persisted", "failed" or "dropped").
var ActivityEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_entries_total",
		Help:      "Total number of activity feed entries processed by the recorder.",
	},
	[]string{"outcome"},
)

// ActivityQueueDepth tracks pending entries in each recorder worker channel.
// Label:
//   - worker_id: numeric worker index
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of entries pending in each recorder worker channel.",
	},
	[]string{"worker_id"},
)
