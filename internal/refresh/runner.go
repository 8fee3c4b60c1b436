package refresh

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/jonboulle/clockwork"
	"github.com/shenikar/coastal_hazard_system/internal/metrics"
	"github.com/shenikar/coastal_hazard_system/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	ErrQueueFull   = errors.New("refresh queue is full")
	ErrJobNotFound = errors.New("refresh job not found")
)

const maxRetainedJobs = 1000

type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Done сообщает, что задача больше не изменится
func (s Status) Done() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job - снимок состояния задачи обновления
type Job struct {
	ID             uuid.UUID  `json:"id"`
	Query          string     `json:"query"`
	Limit          int        `json:"limit"`
	Status         Status     `json:"status"`
	Fetched        int        `json:"fetched"`
	Inserted       int        `json:"inserted"`
	PlatformErrors []string   `json:"platform_errors,omitempty"`
	Error          string     `json:"error,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
}

// PostSource - источник записей со всех платформ
type PostSource interface {
	FetchAll(ctx context.Context, query string, limit int) ([]*models.Post, error)
}

// PostSink сохраняет пачку записей и возвращает число новых
type PostSink interface {
	IngestPosts(ctx context.Context, posts []*models.Post) (int, error)
}

// Scheduler - то, что нужно HTTP слою от очереди обновлений
type Scheduler interface {
	Submit(query string, limit int) (Job, error)
	Get(id uuid.UUID) (Job, error)
}

type entry struct {
	job  Job
	done chan struct{}
}

// Runner выполняет задачи обновления пулом воркеров из ограниченной очереди
type Runner struct {
	source  PostSource
	sink    PostSink
	logger  *logrus.Logger
	metrics *metrics.Metrics
	clock   clockwork.Clock
	workers int

	queue chan uuid.UUID

	mu    sync.RWMutex
	jobs  map[uuid.UUID]*entry
	order []uuid.UUID
}

func NewRunner(source PostSource, sink PostSink, logger *logrus.Logger, m *metrics.Metrics, clock clockwork.Clock, workers, queueSize int) *Runner {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Runner{
		source:  source,
		sink:    sink,
		logger:  logger,
		metrics: m,
		clock:   clock,
		workers: workers,
		queue:   make(chan uuid.UUID, queueSize),
		jobs:    make(map[uuid.UUID]*entry),
	}
}

// Start запускает воркеров; они завершаются при отмене ctx
func (r *Runner) Start(ctx context.Context) {
	r.logger.WithField("workers", r.workers).Info("Starting refresh workers...")
	for i := 0; i < r.workers; i++ {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case id := <-r.queue:
					r.run(ctx, id)
				}
			}
		}()
	}
}

// Submit ставит задачу в очередь или возвращает ErrQueueFull
func (r *Runner) Submit(query string, limit int) (Job, error) {
	e := &entry{
		job: Job{
			ID:        uuid.New(),
			Query:     query,
			Limit:     limit,
			Status:    StatusQueued,
			CreatedAt: r.clock.Now().UTC(),
		},
		done: make(chan struct{}),
	}

	r.mu.Lock()
	select {
	case r.queue <- e.job.ID:
	default:
		r.mu.Unlock()
		return Job{}, ErrQueueFull
	}
	r.jobs[e.job.ID] = e
	r.order = append(r.order, e.job.ID)
	r.evictLocked()
	snapshot := e.job
	r.mu.Unlock()

	r.logger.WithFields(logrus.Fields{
		"job_id": snapshot.ID,
		"query":  query,
		"limit":  limit,
	}).Info("Refresh job queued")
	return snapshot, nil
}

// Get возвращает копию текущего состояния задачи
func (r *Runner) Get(id uuid.UUID) (Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.jobs[id]
	if !ok {
		return Job{}, ErrJobNotFound
	}
	return snapshot(e.job), nil
}

// Wait блокируется до завершения задачи или отмены ctx
func (r *Runner) Wait(ctx context.Context, id uuid.UUID) (Job, error) {
	r.mu.RLock()
	e, ok := r.jobs[id]
	r.mu.RUnlock()
	if !ok {
		return Job{}, ErrJobNotFound
	}

	select {
	case <-e.done:
		return r.Get(id)
	case <-ctx.Done():
		return Job{}, ctx.Err()
	}
}

func (r *Runner) run(ctx context.Context, id uuid.UUID) {
	r.mu.Lock()
	e, ok := r.jobs[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	started := r.clock.Now().UTC()
	e.job.Status = StatusRunning
	e.job.StartedAt = &started
	query, limit := e.job.Query, e.job.Limit
	r.mu.Unlock()

	log := r.logger.WithField("job_id", id)
	log.Info("Refresh job started")

	posts, fetchErr := r.source.FetchAll(ctx, query, limit)
	var platformErrors []string
	var merr *multierror.Error
	if errors.As(fetchErr, &merr) {
		for _, err := range merr.Errors {
			platformErrors = append(platformErrors, err.Error())
		}
	} else if fetchErr != nil {
		platformErrors = append(platformErrors, fetchErr.Error())
	}

	inserted, ingestErr := r.sink.IngestPosts(ctx, posts)

	finished := r.clock.Now().UTC()
	r.mu.Lock()
	e.job.Fetched = len(posts)
	e.job.Inserted = inserted
	e.job.PlatformErrors = platformErrors
	e.job.FinishedAt = &finished
	if ingestErr != nil {
		e.job.Status = StatusFailed
		e.job.Error = ingestErr.Error()
	} else {
		e.job.Status = StatusCompleted
	}
	final := e.job
	r.mu.Unlock()
	close(e.done)

	r.metrics.RefreshJobs.WithLabelValues(string(final.Status)).Inc()
	entryLog := log.WithFields(logrus.Fields{
		"status":          final.Status,
		"fetched":         final.Fetched,
		"inserted":        final.Inserted,
		"platform_errors": len(final.PlatformErrors),
	})
	if ingestErr != nil {
		entryLog.WithError(ingestErr).Error("Refresh job failed")
		return
	}
	entryLog.Info("Refresh job finished")
}

// evictLocked удаляет самые старые завершенные задачи сверх лимита
func (r *Runner) evictLocked() {
	for len(r.order) > maxRetainedJobs {
		evicted := false
		for i, id := range r.order {
			if r.jobs[id].job.Status.Done() {
				delete(r.jobs, id)
				r.order = slices.Delete(r.order, i, i+1)
				evicted = true
				break
			}
		}
		if !evicted {
			return
		}
	}
}

func snapshot(j Job) Job {
	j.PlatformErrors = slices.Clone(j.PlatformErrors)
	return j
}
