// Package metrics defines the custom Prometheus metrics of the art gallery
// API. Metrics are registered with the default registry on import, so the
// /metrics endpoint served by echoprometheus exposes them with the HTTP
// request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "artgallery"

// ── Artwork metrics ───────────────────────────────────────────────────────────

// ArtworksCreatedTotal counts published artworks.
// Label:
//   - category: the artwork category (e.g. "Abstract")
var ArtworksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "artworks_created_total",
		Help:      "Total number of artworks published, by category.",
	},
	[]string{"category"},
)

// LikesTotal counts accepted like and unlike mutations.
// Label:
//   - action: "like" or "unlike"
var LikesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "likes_total",
		Help:      "Total number of like and unlike mutations applied.",
	},
	[]string{"action"},
)

// CommentsTotal counts comment mutations.
// Label:
//   - action: "added" or "deleted"
var CommentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_total",
		Help:      "Total number of comments added or deleted.",
	},
	[]string{"action"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersTotal counts order placements.
// Label:
//   - result: "created" or "replayed" (idempotency key hit)
var OrdersTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_total",
		Help:      "Total number of order placements, by result.",
	},
	[]string{"result"},
)

// OrderPriceMismatchTotal counts orders whose price snapshot differed from
// the listed artwork price.
var OrderPriceMismatchTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_price_mismatch_total",
		Help:      "Total number of orders placed at a price other than the listed one.",
	},
)

// OrderTransitionsTotal counts order status changes.
// Label:
//   - status: the new status ("completed" or "cancelled")
var OrderTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_transitions_total",
		Help:      "Total number of order status transitions, by target status.",
	},
	[]string{"status"},
)

// ── Reconciler metrics ────────────────────────────────────────────────────────

// CommentDetachFailuresTotal counts comment deletions whose artwork
// reference could not be removed inline and was handed to the reconciler.
var CommentDetachFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comment_detach_failures_total",
		Help:      "Total number of comment reference detaches deferred to the reconciler.",
	},
)

// ReconcileJobsTotal counts finished reconciler jobs.
// Label:
//   - result: "succeeded", "dropped" (attempts exhausted) or "rejected" (queue full)
var ReconcileJobsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reconcile_jobs_total",
		Help:      "Total number of reconciler jobs, by outcome.",
	},
	[]string{"result"},
)

// ReconcileQueueDepth tracks the jobs waiting in each reconciler worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ReconcileQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "reconcile_queue_depth",
		Help:      "Current number of jobs pending in each reconciler worker channel.",
	},
	[]string{"worker_id"},
)

// ReconcileDuration measures one job from dequeue to its final outcome,
// retries included.
var ReconcileDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "reconcile_duration_seconds",
		Help:      "Duration of a reconciler job including retries.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
