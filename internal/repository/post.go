package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/coastal_hazard_system/internal/models"
	"github.com/shenikar/coastal_hazard_system/internal/service"
)

const (
	hotspotCachePrefix   = "hotspots:"
	hotspotGenerationKey = "hotspots:generation"
)

// DB - подмножество pgxpool.Pool, которое использует репозиторий
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type PostRepository struct {
	db          DB
	redisClient *redis.Client
	hotspotTTL  time.Duration
}

func NewPostRepository(db DB, redisClient *redis.Client, hotspotTTL time.Duration) service.PostRepository {
	return &PostRepository{
		db:          db,
		redisClient: redisClient,
		hotspotTTL:  hotspotTTL,
	}
}

const postColumns = `id, source, text, timestamp, url, hazard, urgency, latitude, longitude, location_name, submitter, created_at`

// Insert сохраняет запись. Уникальные индексы по url и (text, timestamp)
// отсекают дубликат даже при гонке двух вставок: тогда возвращается false.
func (r *PostRepository) Insert(ctx context.Context, post *models.Post) (bool, error) {
	query := `
		INSERT INTO posts (source, text, timestamp, url, hazard, urgency, latitude, longitude, location_name, submitter)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT DO NOTHING
		RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query,
		post.Source,
		post.Text,
		post.Timestamp,
		post.URL,
		post.Hazard,
		post.Urgency,
		post.Latitude,
		post.Longitude,
		post.LocationName,
		post.Submitter,
	).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert post: %w", err)
	}
	return true, nil
}

// ExistsByURL проверяет, сохранена ли запись с таким url
func (r *PostRepository) ExistsByURL(ctx context.Context, url string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE url = $1);`, url).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check post by url: %w", err)
	}
	return exists, nil
}

// ExistsByTextAndTimestamp проверяет запись без url с тем же текстом и временем
func (r *PostRepository) ExistsByTextAndTimestamp(ctx context.Context, text, timestamp string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM posts WHERE url IS NULL AND text = $1 AND timestamp = $2);`,
		text, timestamp,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check post by text and timestamp: %w", err)
	}
	return exists, nil
}

// ListPosts возвращает записи по фильтру, новые первыми
func (r *PostRepository) ListPosts(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	var (
		conditions []string
		args       []any
	)
	addCondition := func(column string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if filter.Source != "" {
		addCondition("source", filter.Source)
	}
	if filter.Submitter != "" {
		addCondition("submitter", filter.Submitter)
	}
	if filter.Hazard != "" {
		addCondition("hazard", filter.Hazard)
	}
	if filter.Urgency != "" {
		addCondition("urgency", filter.Urgency)
	}

	query := "SELECT " + postColumns + " FROM posts"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY timestamp DESC, created_at DESC LIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*models.Post, 0)
	for rows.Next() {
		post := &models.Post{}
		err := rows.Scan(
			&post.ID,
			&post.Source,
			&post.Text,
			&post.Timestamp,
			&post.URL,
			&post.Hazard,
			&post.Urgency,
			&post.Latitude,
			&post.Longitude,
			&post.LocationName,
			&post.Submitter,
			&post.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return posts, nil
}

// ListGeotagged читает все записи с обеими координатами одним запросом
func (r *PostRepository) ListGeotagged(ctx context.Context) ([]*models.Post, error) {
	query := `
		SELECT id, urgency, latitude, longitude
		FROM posts
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list geotagged posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*models.Post, 0)
	for rows.Next() {
		var lat, lon float64
		post := &models.Post{}
		if err := rows.Scan(&post.ID, &post.Urgency, &lat, &lon); err != nil {
			return nil, fmt.Errorf("failed to scan geotagged row: %w", err)
		}
		post.Latitude = &lat
		post.Longitude = &lon
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error geotagged iteration: %w", err)
	}
	return posts, nil
}

// ListTexts возвращает id, текст и текущую срочность всех записей
func (r *PostRepository) ListTexts(ctx context.Context) ([]models.PostText, error) {
	rows, err := r.db.Query(ctx, `SELECT id, text, urgency FROM posts ORDER BY created_at;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list post texts: %w", err)
	}
	defer rows.Close()

	texts := make([]models.PostText, 0)
	for rows.Next() {
		var t models.PostText
		if err := rows.Scan(&t.ID, &t.Text, &t.Urgency); err != nil {
			return nil, fmt.Errorf("failed to scan post text row: %w", err)
		}
		texts = append(texts, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error text iteration: %w", err)
	}
	return texts, nil
}

// UpdateUrgencies меняет только столбец urgency, одной транзакцией
func (r *PostRepository) UpdateUrgencies(ctx context.Context, updates []models.PostText) (int, error) {
	if len(updates) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin urgency update: %w", err)
	}

	updated := 0
	for _, u := range updates {
		cmdTag, err := tx.Exec(ctx, `UPDATE posts SET urgency = $1 WHERE id = $2;`, u.Urgency, u.ID)
		if err != nil {
			_ = tx.Rollback(ctx)
			return 0, fmt.Errorf("failed to update urgency for post %s: %w", u.ID, err)
		}
		updated += int(cmdTag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit urgency update: %w", err)
	}
	return updated, nil
}

// GetHotspotsFromCache возвращает nil, nil при промахе кеша
func (r *PostRepository) GetHotspotsFromCache(ctx context.Context, key string) ([]models.Hotspot, error) {
	val, err := r.redisClient.Get(ctx, hotspotCachePrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get hotspots from cache: %w", err)
	}

	hotspots := make([]models.Hotspot, 0)
	if err := json.Unmarshal(val, &hotspots); err != nil {
		return nil, fmt.Errorf("failed to unmarshal hotspots from cache: %w", err)
	}
	return hotspots, nil
}

func (r *PostRepository) SetHotspotsCache(ctx context.Context, key string, hotspots []models.Hotspot) error {
	val, err := json.Marshal(hotspots)
	if err != nil {
		return fmt.Errorf("failed to marshal hotspots for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, hotspotCachePrefix+key, val, r.hotspotTTL).Err(); err != nil {
		return fmt.Errorf("failed to set hotspots in cache: %w", err)
	}
	return nil
}

// HotspotsGeneration возвращает текущее поколение кеша горячих точек
func (r *PostRepository) HotspotsGeneration(ctx context.Context) (int64, error) {
	generation, err := r.redisClient.Get(ctx, hotspotGenerationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get hotspot cache generation: %w", err)
	}
	return generation, nil
}

// InvalidateHotspotsCache переводит кеш на новое поколение.
// Записи прошлых поколений больше не читаются и истекают по TTL.
func (r *PostRepository) InvalidateHotspotsCache(ctx context.Context) error {
	if err := r.redisClient.Incr(ctx, hotspotGenerationKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate hotspot cache: %w", err)
	}
	return nil
}
