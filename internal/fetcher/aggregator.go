package fetcher

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/shenikar/coastal_hazard_system/internal/metrics"
	"github.com/shenikar/coastal_hazard_system/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentFetches = 8

// Aggregator опрашивает все платформы по каждому ключевому слову.
// Ошибка одной платформы не мешает остальным.
type Aggregator struct {
	fetchers []Fetcher
	logger   *logrus.Logger
	metrics  *metrics.Metrics
	timeout  time.Duration
}

func NewAggregator(fetchers []Fetcher, logger *logrus.Logger, m *metrics.Metrics, timeout time.Duration) *Aggregator {
	return &Aggregator{
		fetchers: fetchers,
		logger:   logger,
		metrics:  m,
		timeout:  timeout,
	}
}

// SplitQuery разбивает "flood, tsunami,,cyclone" на непустые ключевые слова
func SplitQuery(query string) []string {
	keywords := make([]string, 0)
	for _, kw := range strings.Split(query, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

// FetchAll возвращает записи всех платформ, новые первыми.
// Ошибка (multierror) перечисляет отказавшие платформы и не означает пустой результат.
func (a *Aggregator) FetchAll(ctx context.Context, query string, limit int) ([]*models.Post, error) {
	keywords := SplitQuery(query)

	var (
		mu    sync.Mutex
		posts []*models.Post
		errs  *multierror.Error
	)

	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)
	for _, kw := range keywords {
		for _, f := range a.fetchers {
			g.Go(func() error {
				log := a.logger.WithFields(logrus.Fields{
					"platform": f.Platform(),
					"keyword":  kw,
				})

				fetchCtx := ctx
				if a.timeout > 0 {
					var cancel context.CancelFunc
					fetchCtx, cancel = context.WithTimeout(ctx, a.timeout)
					defer cancel()
				}

				fetched, err := f.Fetch(fetchCtx, kw, limit)
				if err != nil {
					a.metrics.FetchErrors.WithLabelValues(f.Platform()).Inc()
					log.WithError(err).Warn("Platform fetch failed")
					mu.Lock()
					errs = multierror.Append(errs, fmt.Errorf("%s %q: %w", f.Platform(), kw, err))
					mu.Unlock()
					return nil
				}

				a.metrics.PostsFetched.WithLabelValues(f.Platform()).Add(float64(len(fetched)))
				log.WithField("count", len(fetched)).Debug("Platform fetch finished")
				mu.Lock()
				posts = append(posts, fetched...)
				mu.Unlock()
				return nil
			})
		}
	}
	_ = g.Wait()

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Timestamp > posts[j].Timestamp
	})
	return posts, errs.ErrorOrNil()
}
