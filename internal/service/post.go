package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/coastal_hazard_system/internal/classifier"
	"github.com/shenikar/coastal_hazard_system/internal/geocode"
	"github.com/shenikar/coastal_hazard_system/internal/hotspot"
	"github.com/shenikar/coastal_hazard_system/internal/metrics"
	"github.com/shenikar/coastal_hazard_system/internal/models"
	"github.com/shenikar/coastal_hazard_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

// ErrEmptyText возвращается для записи без текста: классифицировать нечего
var ErrEmptyText = errors.New("text is required")

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// PostRepository определяет контракт хранилища записей и кеша горячих точек
type PostRepository interface {
	Insert(ctx context.Context, post *models.Post) (bool, error)
	ExistsByURL(ctx context.Context, url string) (bool, error)
	ExistsByTextAndTimestamp(ctx context.Context, text, timestamp string) (bool, error)
	ListPosts(ctx context.Context, filter models.PostFilter) ([]*models.Post, error)
	ListGeotagged(ctx context.Context) ([]*models.Post, error)
	ListTexts(ctx context.Context) ([]models.PostText, error)
	UpdateUrgencies(ctx context.Context, updates []models.PostText) (int, error)
	HotspotsGeneration(ctx context.Context) (int64, error)
	GetHotspotsFromCache(ctx context.Context, key string) ([]models.Hotspot, error)
	SetHotspotsCache(ctx context.Context, key string, hotspots []models.Hotspot) error
	InvalidateHotspotsCache(ctx context.Context) error
}

// Geocoder определяет координаты по названию места
type Geocoder interface {
	Geocode(ctx context.Context, address string) (geocode.Result, error)
}

// PostService определяет контракт приема, выборки и агрегации записей
type PostService interface {
	IngestPost(ctx context.Context, post *models.Post) (models.IngestResult, error)
	IngestPosts(ctx context.Context, posts []*models.Post) (int, error)
	SubmitReport(ctx context.Context, subject string, report *models.Post) (models.IngestResult, error)
	ListPosts(ctx context.Context, filter models.PostFilter) ([]*models.Post, error)
	ComputeHotspots(ctx context.Context, opts hotspot.Options) ([]models.Hotspot, error)
	RecomputeUrgency(ctx context.Context) (int, error)
}

type postService struct {
	repo       PostRepository
	logger     *logrus.Logger
	classifier *classifier.Classifier
	geocoder   Geocoder
	publisher  webhook.AlertPublisher
	clock      clockwork.Clock
	metrics    *metrics.Metrics
}

func NewPostService(
	repo PostRepository,
	logger *logrus.Logger,
	cls *classifier.Classifier,
	geocoder Geocoder,
	publisher webhook.AlertPublisher,
	clock clockwork.Clock,
	m *metrics.Metrics,
) PostService {
	return &postService{
		repo:       repo,
		logger:     logger,
		classifier: cls,
		geocoder:   geocoder,
		publisher:  publisher,
		clock:      clock,
		metrics:    m,
	}
}

// IngestPost нормализует, классифицирует и сохраняет запись, если она не дубликат
func (s *postService) IngestPost(ctx context.Context, post *models.Post) (models.IngestResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "post",
		"method":  "IngestPost",
		"source":  post.Source,
	})

	if strings.TrimSpace(post.Text) == "" {
		s.metrics.PostsIngested.WithLabelValues(post.Source, "invalid").Inc()
		log.Warn("Rejected post without text")
		return models.IngestResult{}, ErrEmptyText
	}

	s.normalize(post)

	duplicate, err := s.isDuplicate(ctx, post)
	if err != nil {
		log.WithError(err).Error("Failed to run dedup lookup")
		return models.IngestResult{}, fmt.Errorf("service: could not check duplicate: %w", err)
	}
	if duplicate {
		s.metrics.PostsIngested.WithLabelValues(post.Source, "duplicate").Inc()
		log.Debug("Duplicate post skipped")
		return models.IngestResult{Post: post, Inserted: false}, nil
	}

	// Ключ дедупликации не зависит от координат, геокодируем только новые записи
	s.enrichLocation(ctx, post, log)

	inserted, err := s.repo.Insert(ctx, post)
	if err != nil {
		log.WithError(err).Error("Failed to insert post in repository")
		return models.IngestResult{}, fmt.Errorf("service: could not insert post: %w", err)
	}
	if !inserted {
		// параллельная вставка с тем же ключом успела раньше
		s.metrics.PostsIngested.WithLabelValues(post.Source, "duplicate").Inc()
		return models.IngestResult{Post: post, Inserted: false}, nil
	}

	s.metrics.PostsIngested.WithLabelValues(post.Source, "inserted").Inc()
	log.WithFields(logrus.Fields{
		"post_id": post.ID,
		"hazard":  post.Hazard,
		"urgency": post.Urgency,
	}).Info("Post stored")

	if err := s.repo.InvalidateHotspotsCache(ctx); err != nil {
		log.WithError(err).Warn("Failed to invalidate hotspot cache")
	}
	if post.Urgency == models.UrgencyHigh {
		s.publishAlert(ctx, post, log)
	}

	return models.IngestResult{Post: post, Inserted: true}, nil
}

// IngestPosts применяет IngestPost к каждой записи по очереди.
// Записи без текста пропускаются, ошибка хранилища прерывает пакет.
func (s *postService) IngestPosts(ctx context.Context, posts []*models.Post) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "post",
		"method":  "IngestPosts",
		"total":   len(posts),
	})

	inserted := 0
	for _, post := range posts {
		if post == nil {
			continue
		}
		result, err := s.IngestPost(ctx, post)
		if err != nil {
			if errors.Is(err, ErrEmptyText) {
				continue
			}
			log.WithError(err).WithField("inserted", inserted).Error("Batch ingestion aborted")
			return inserted, err
		}
		if result.Inserted {
			inserted++
		}
	}

	log.WithField("inserted", inserted).Info("Batch ingestion finished")
	return inserted, nil
}

// SubmitReport принимает обращение гражданина. Метки всегда ставит классификатор.
func (s *postService) SubmitReport(ctx context.Context, subject string, report *models.Post) (models.IngestResult, error) {
	report.Source = models.SourceCitizen
	report.Hazard = ""
	report.Urgency = ""
	if subject != "" {
		report.Submitter = &subject
	}
	return s.IngestPost(ctx, report)
}

// ListPosts возвращает записи по фильтру с ограничением размера страницы
func (s *postService) ListPosts(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	if filter.Limit < 1 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	log := s.logger.WithFields(logrus.Fields{
		"service": "post",
		"method":  "ListPosts",
		"source":  filter.Source,
		"limit":   filter.Limit,
		"offset":  filter.Offset,
	})

	posts, err := s.repo.ListPosts(ctx, filter)
	if err != nil {
		log.WithError(err).Error("Failed to list posts from repository")
		return nil, fmt.Errorf("service: could not list posts: %w", err)
	}

	log.WithField("count", len(posts)).Debug("Posts listed")
	return posts, nil
}

// ComputeHotspots считает горячие точки по всем геопривязанным записям.
// Результат кешируется по набору параметров до следующей вставки.
// Ключ кеша включает поколение, прочитанное до выборки записей: расчет,
// начатый до вставки, пишется под старым поколением и больше не читается.
func (s *postService) ComputeHotspots(ctx context.Context, opts hotspot.Options) ([]models.Hotspot, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	log := s.logger.WithFields(logrus.Fields{
		"service": "post",
		"method":  "ComputeHotspots",
	})

	key := ""
	if generation, err := s.repo.HotspotsGeneration(ctx); err != nil {
		log.WithError(err).Warn("Failed to read hotspot cache generation, cache bypassed")
	} else {
		key = fmt.Sprintf("%d:%s", generation, opts.CacheKey())
		log = log.WithField("cache_key", key)
	}

	if key != "" {
		cached, err := s.repo.GetHotspotsFromCache(ctx, key)
		if err != nil {
			log.WithError(err).Warn("Failed to read hotspot cache")
		} else if cached != nil {
			log.Debug("Hotspots served from cache")
			return cached, nil
		}
	}

	start := s.clock.Now()
	posts, err := s.repo.ListGeotagged(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to read geotagged posts")
		return nil, fmt.Errorf("service: could not read geotagged posts: %w", err)
	}
	hotspots, err := hotspot.Compute(posts, opts)
	if err != nil {
		return nil, err
	}
	s.metrics.HotspotDuration.Observe(s.clock.Since(start).Seconds())

	if key != "" {
		if err := s.repo.SetHotspotsCache(ctx, key, hotspots); err != nil {
			log.WithError(err).Warn("Failed to store hotspots in cache")
		}
	}

	log.WithFields(logrus.Fields{
		"records": len(posts),
		"cells":   len(hotspots),
	}).Info("Hotspots computed")
	return hotspots, nil
}

// RecomputeUrgency переклассифицирует срочность всех записей.
// Остальные поля не трогаются. Возвращает число измененных записей.
func (s *postService) RecomputeUrgency(ctx context.Context) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "post",
		"method":  "RecomputeUrgency",
	})
	log.Info("Starting urgency backfill")

	texts, err := s.repo.ListTexts(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to read post texts")
		return 0, fmt.Errorf("service: could not read post texts: %w", err)
	}

	changes := make([]models.PostText, 0)
	for _, t := range texts {
		urgency := s.classifier.Urgency(t.Text)
		if urgency != t.Urgency {
			changes = append(changes, models.PostText{ID: t.ID, Text: t.Text, Urgency: urgency})
		}
	}

	updated, err := s.repo.UpdateUrgencies(ctx, changes)
	if err != nil {
		log.WithError(err).Error("Failed to update urgencies")
		return 0, fmt.Errorf("service: could not update urgencies: %w", err)
	}
	s.metrics.UrgencyUpdates.Add(float64(updated))

	if updated > 0 {
		if err := s.repo.InvalidateHotspotsCache(ctx); err != nil {
			log.WithError(err).Warn("Failed to invalidate hotspot cache")
		}
	}

	log.WithFields(logrus.Fields{
		"scanned": len(texts),
		"updated": updated,
	}).Info("Urgency backfill finished")
	return updated, nil
}

func (s *postService) normalize(post *models.Post) {
	if strings.TrimSpace(post.Timestamp) == "" {
		post.Timestamp = s.clock.Now().UTC().Format(time.RFC3339)
	}
	if post.URL != nil {
		trimmed := strings.TrimSpace(*post.URL)
		if trimmed == "" {
			post.URL = nil
		} else {
			post.URL = &trimmed
		}
	}
	if post.LocationName != nil && strings.TrimSpace(*post.LocationName) == "" {
		post.LocationName = nil
	}
	if !post.Hazard.Valid() {
		post.Hazard = s.classifier.Hazard(post.Text)
	}
	if !post.Urgency.Valid() {
		post.Urgency = s.classifier.Urgency(post.Text)
	}
}

// enrichLocation геокодирует location_name, если координат нет.
// Любая неудача оставляет координаты пустыми.
func (s *postService) enrichLocation(ctx context.Context, post *models.Post, log *logrus.Entry) {
	if _, _, ok := post.Coordinates(); ok {
		return
	}
	post.Latitude, post.Longitude = nil, nil
	if post.LocationName == nil || s.geocoder == nil {
		return
	}

	result, err := s.geocoder.Geocode(ctx, *post.LocationName)
	switch {
	case err != nil:
		s.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		log.WithError(err).Warn("Geocoding failed, storing post without coordinates")
	case !result.Found:
		s.metrics.GeocodeRequests.WithLabelValues("not_found").Inc()
	default:
		outcome := "found"
		if result.Cached {
			outcome = "cache_hit"
		}
		s.metrics.GeocodeRequests.WithLabelValues(outcome).Inc()
		lat, lon := result.Lat, result.Lon
		post.Latitude, post.Longitude = &lat, &lon
	}
}

func (s *postService) isDuplicate(ctx context.Context, post *models.Post) (bool, error) {
	if post.HasURL() {
		return s.repo.ExistsByURL(ctx, *post.URL)
	}
	return s.repo.ExistsByTextAndTimestamp(ctx, post.Text, post.Timestamp)
}

func (s *postService) publishAlert(ctx context.Context, post *models.Post, log *logrus.Entry) {
	if s.publisher == nil {
		return
	}
	event := webhook.NewAlertEvent(post, s.clock.Now().UTC())
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).Warn("Failed to publish high urgency alert")
	}
}
