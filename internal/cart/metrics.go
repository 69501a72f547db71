package cart

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sync failures are swallowed by design (the local cart keeps working), so
// every swallowed failure must leave a countable trace.
var (
	syncFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodexpress_cart_sync_failures_total",
		Help: "Best-effort cart sync calls that did not confirm, by operation.",
	}, []string{"operation"})

	staleResponsesDiscarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foodexpress_cart_stale_responses_total",
		Help: "Server cart responses discarded because local state moved on.",
	})

	reconcilePushFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foodexpress_cart_reconcile_push_failures_total",
		Help: "Guest cart lines that failed to push during reconciliation.",
	})
)
