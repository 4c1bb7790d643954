package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mifinca/fincamanager/internal/api/metrics"
	"github.com/mifinca/fincamanager/internal/core/domain"
	"github.com/mifinca/fincamanager/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Recorder persists activity feed entries asynchronously through a fixed set
// of workers, sharded by consistent hashing on the user ID so each user's
// entries keep their order.
type Recorder struct {
	workers []chan domain.ActivityEntry
	repo    ports.ActivityRepository
	log     zerolog.Logger
}

// NewRecorder creates a Recorder with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewRecorder(numWorkers int, repo ports.ActivityRepository, log zerolog.Logger) *Recorder {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	r := &Recorder{
		workers: make([]chan domain.ActivityEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range r.workers {
		r.workers[i] = make(chan domain.ActivityEntry, channelBuffer)
	}
	return r
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (r *Recorder) Start(ctx context.Context) {
	for i, ch := range r.workers {
		go r.runWorker(ctx, i, ch)
	}
}

// Record enqueues an entry for the worker responsible for its user. Entries
// are dropped with a warning when the worker channel is full so the request
// path never blocks on the audit trail.
func (r *Recorder) Record(entry domain.ActivityEntry) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	idx := r.shardIndex(entry.UserID)
	select {
	case r.workers[idx] <- entry:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(r.workers[idx])))
	default:
		metrics.ActivityEntriesTotal.WithLabelValues("dropped").Inc()
		r.log.Warn().
			Str("user_id", entry.UserID.String()).
			Int("worker_id", idx).
			Msg("activity entry dropped, worker queue full")
	}
}

// shardIndex maps a user ID deterministically to a worker index.
func (r *Recorder) shardIndex(userID uuid.UUID) int {
	h := fnv.New32a()
	_, _ = h.Write(userID[:])
	return int(h.Sum32()) % len(r.workers)
}

func (r *Recorder) runWorker(ctx context.Context, id int, ch <-chan domain.ActivityEntry) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			metrics.ActivityQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err := r.repo.Insert(ctx, &entry); err != nil {
				metrics.ActivityEntriesTotal.WithLabelValues("failed").Inc()
				r.log.Error().Err(err).
					Str("user_id", entry.UserID.String()).
					Int("worker_id", id).
					Msg("activity entry persistence failed")
				continue
			}
			metrics.ActivityEntriesTotal.WithLabelValues("persisted").Inc()
		}
	}
}
