package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Deepender31/artwork-backend/internal/api/metrics"
	"github.com/Deepender31/artwork-backend/internal/core/domain"
	"github.com/Deepender31/artwork-backend/internal/core/ports"
)

const (
	defaultWorkers     = 4
	defaultMaxAttempts = 5
	defaultBackoff     = 500 * time.Millisecond
	channelBuffer      = 256
)

// ErrQueueFull is returned by Enqueue when the job's worker has no room left.
var ErrQueueFull = errors.New("reconcile queue full")

// Detacher removes a comment reference from an artwork.
type Detacher interface {
	DetachComment(ctx context.Context, artworkID, commentID string) error
}

type Config struct {
	Workers     int
	MaxAttempts int
	Backoff     time.Duration
}

// Reconciler retries comment reference detaches that failed inline. Jobs are
// sharded on the artwork id so the jobs of one artwork run in order on a
// single worker.
type Reconciler struct {
	workers     []chan ports.DetachJob
	detacher    Detacher
	maxAttempts int
	backoff     time.Duration
	log         zerolog.Logger
	wg          sync.WaitGroup
}

func NewReconciler(cfg Config, detacher Detacher, log zerolog.Logger) *Reconciler {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = defaultBackoff
	}
	r := &Reconciler{
		workers:     make([]chan ports.DetachJob, cfg.Workers),
		detacher:    detacher,
		maxAttempts: cfg.MaxAttempts,
		backoff:     cfg.Backoff,
		log:         log,
	}
	for i := range r.workers {
		r.workers[i] = make(chan ports.DetachJob, channelBuffer)
	}
	return r
}

// Start launches the workers. They stop when ctx is cancelled; Wait blocks
// until they have.
func (r *Reconciler) Start(ctx context.Context) {
	for i, ch := range r.workers {
		r.wg.Add(1)
		go r.runWorker(ctx, i, ch)
	}
}

func (r *Reconciler) Wait() {
	r.wg.Wait()
}

// Enqueue hands a job to the worker owning its artwork. It never blocks.
func (r *Reconciler) Enqueue(job ports.DetachJob) error {
	if job.Attempt <= 0 {
		job.Attempt = 1
	}
	idx := r.shardIndex(job.ArtworkID)
	metrics.CommentDetachFailuresTotal.Inc()

	select {
	case r.workers[idx] <- job:
		metrics.ReconcileQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
		return nil
	default:
		metrics.ReconcileJobsTotal.WithLabelValues("rejected").Inc()
		return ErrQueueFull
	}
}

// shardIndex maps an artwork id deterministically to a worker index.
func (r *Reconciler) shardIndex(artworkID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(artworkID))
	return int(h.Sum32() % uint32(len(r.workers)))
}

func (r *Reconciler) runWorker(ctx context.Context, id int, ch <-chan ports.DetachJob) {
	defer r.wg.Done()
	depth := metrics.ReconcileQueueDepth.WithLabelValues(strconv.Itoa(id))

	for {
		select {
		case <-ctx.Done():
			return
		case job := <-ch:
			depth.Dec()
			r.process(ctx, id, job)
		}
	}
}

// process retries on the worker itself, so a later job for the same artwork
// never overtakes an earlier one.
func (r *Reconciler) process(ctx context.Context, workerID int, job ports.DetachJob) {
	start := time.Now()
	for {
		err := r.detacher.DetachComment(ctx, job.ArtworkID, job.CommentID)
		if err == nil || errors.Is(err, domain.ErrNotFound) {
			r.finish("succeeded", start)
			r.log.Info().
				Str("artwork_id", job.ArtworkID).
				Str("comment_id", job.CommentID).
				Int("attempt", job.Attempt).
				Msg("comment reference reconciled")
			return
		}

		if job.Attempt >= r.maxAttempts {
			r.finish("dropped", start)
			r.log.Error().Err(err).
				Str("artwork_id", job.ArtworkID).
				Str("comment_id", job.CommentID).
				Int("attempts", job.Attempt).
				Int("worker_id", workerID).
				Msg("giving up on comment reference detach")
			return
		}

		r.log.Warn().Err(err).
			Str("artwork_id", job.ArtworkID).
			Str("comment_id", job.CommentID).
			Int("attempt", job.Attempt).
			Msg("comment reference detach failed, retrying")

		select {
		case <-ctx.Done():
			return
		case <-time.After(r.backoff * time.Duration(job.Attempt)):
		}
		job.Attempt++
	}
}

func (r *Reconciler) finish(result string, start time.Time) {
	metrics.ReconcileJobsTotal.WithLabelValues(result).Inc()
	metrics.ReconcileDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}
