package refresh

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/jonboulle/clockwork"
	"github.com/shenikar/coastal_hazard_system/internal/metrics"
	"github.com/shenikar/coastal_hazard_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	posts []*models.Post
	err   error
	block chan struct{}
}

func (f *fakeSource) FetchAll(ctx context.Context, _ string, _ int) ([]*models.Post, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.posts, f.err
}

type fakeSink struct {
	mu       sync.Mutex
	received []*models.Post
	err      error
}

func (f *fakeSink) IngestPosts(_ context.Context, posts []*models.Post) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.received = append(f.received, posts...)
	return len(posts) - 1, nil
}

func newTestRunner(source PostSource, sink PostSink, workers, queue int) (*Runner, *clockwork.FakeClock) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	return NewRunner(source, sink, logger, metrics.NewMetricsForTesting(), clock, workers, queue), clock
}

func waitCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestRunner_CompletesJob(t *testing.T) {
	source := &fakeSource{
		posts: []*models.Post{{Text: "flood"}, {Text: "cyclone"}, {Text: "tsunami"}},
		err: multierror.Append(nil,
			errors.New(`Twitter "flood": rate limited`),
			errors.New(`YouTube "flood": quota exceeded`)),
	}
	sink := &fakeSink{}
	r, _ := newTestRunner(source, sink, 1, 4)

	ctx := waitCtx(t)
	r.Start(ctx)

	job, err := r.Submit("flood", 10)
	require.NoError(t, err)
	assert.Equal(t, StatusQueued, job.Status)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), job.CreatedAt)

	done, err := r.Wait(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, done.Status)
	assert.Equal(t, 3, done.Fetched)
	assert.Equal(t, 2, done.Inserted)
	assert.Len(t, done.PlatformErrors, 2)
	assert.Contains(t, done.PlatformErrors[0], "rate limited")
	require.NotNil(t, done.StartedAt)
	require.NotNil(t, done.FinishedAt)
	assert.Empty(t, done.Error)
}

func TestRunner_FailedIngest(t *testing.T) {
	source := &fakeSource{posts: []*models.Post{{Text: "flood"}}}
	sink := &fakeSink{err: errors.New("database is down")}
	r, _ := newTestRunner(source, sink, 1, 4)

	ctx := waitCtx(t)
	r.Start(ctx)

	job, err := r.Submit("flood", 10)
	require.NoError(t, err)

	done, err := r.Wait(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, done.Status)
	assert.Equal(t, "database is down", done.Error)
}

func TestRunner_QueueFull(t *testing.T) {
	// Воркеры не запущены, поэтому очередь не разбирается
	r, _ := newTestRunner(&fakeSource{}, &fakeSink{}, 1, 1)

	_, err := r.Submit("flood", 10)
	require.NoError(t, err)

	_, err = r.Submit("tsunami", 10)
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestRunner_RunningStatusVisible(t *testing.T) {
	source := &fakeSource{block: make(chan struct{})}
	r, _ := newTestRunner(source, &fakeSink{}, 1, 2)

	ctx := waitCtx(t)
	r.Start(ctx)

	job, err := r.Submit("cyclone", 5)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		current, err := r.Get(job.ID)
		return err == nil && current.Status == StatusRunning
	}, 2*time.Second, 5*time.Millisecond)

	close(source.block)
	done, err := r.Wait(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, done.Status)
}

func TestRunner_UnknownJob(t *testing.T) {
	r, _ := newTestRunner(&fakeSource{}, &fakeSink{}, 1, 1)

	_, err := r.Get(uuid.New())
	assert.ErrorIs(t, err, ErrJobNotFound)

	_, err = r.Wait(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestRunner_WaitHonoursContext(t *testing.T) {
	r, _ := newTestRunner(&fakeSource{}, &fakeSink{}, 1, 1)
	job, err := r.Submit("flood", 10)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Wait(ctx, job.ID)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_EvictsOldFinishedJobs(t *testing.T) {
	r, _ := newTestRunner(&fakeSource{}, &fakeSink{}, 1, maxRetainedJobs+10)

	r.mu.Lock()
	for i := 0; i < maxRetainedJobs; i++ {
		id := uuid.New()
		r.jobs[id] = &entry{job: Job{ID: id, Status: StatusCompleted, Query: fmt.Sprint(i)}, done: make(chan struct{})}
		r.order = append(r.order, id)
	}
	oldest := r.order[0]
	r.mu.Unlock()

	job, err := r.Submit("flood", 10)
	require.NoError(t, err)

	_, err = r.Get(oldest)
	assert.ErrorIs(t, err, ErrJobNotFound)
	_, err = r.Get(job.ID)
	assert.NoError(t, err)
}
