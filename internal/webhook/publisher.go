package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/coastal_hazard_system/internal/models"
)

const (
	alertQueueKey = "hazard_alerts"
)

// AlertEvent - уведомление о новой записи с высокой срочностью
type AlertEvent struct {
	PostID       uuid.UUID      `json:"post_id"`
	Source       string         `json:"source"`
	Text         string         `json:"text"`
	Hazard       models.Hazard  `json:"hazard"`
	Urgency      models.Urgency `json:"urgency"`
	URL          *string        `json:"url,omitempty"`
	Latitude     *float64       `json:"latitude,omitempty"`
	Longitude    *float64       `json:"longitude,omitempty"`
	LocationName *string        `json:"location_name,omitempty"`
	PostedAt     string         `json:"posted_at"`
	Timestamp    time.Time      `json:"timestamp"`
}

// NewAlertEvent собирает событие из сохраненной записи
func NewAlertEvent(post *models.Post, now time.Time) AlertEvent {
	return AlertEvent{
		PostID:       post.ID,
		Source:       post.Source,
		Text:         post.Text,
		Hazard:       post.Hazard,
		Urgency:      post.Urgency,
		URL:          post.URL,
		Latitude:     post.Latitude,
		Longitude:    post.Longitude,
		LocationName: post.LocationName,
		PostedAt:     post.Timestamp,
		Timestamp:    now,
	}
}

// AlertPublisher - интерфейс для публикации уведомлений
type AlertPublisher interface {
	Publish(ctx context.Context, event AlertEvent) error
}

// RedisAlertPublisher - реализация AlertPublisher, использующая список Redis
type RedisAlertPublisher struct {
	redisClient *redis.Client
}

func NewRedisAlertPublisher(client *redis.Client) *RedisAlertPublisher {
	return &RedisAlertPublisher{
		redisClient: client,
	}
}

// Publish кладет событие в левую часть очереди, воркер забирает справа
func (p *RedisAlertPublisher) Publish(ctx context.Context, event AlertEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal alert event: %w", err)
	}

	if err := p.redisClient.LPush(ctx, alertQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish alert event to Redis: %w", err)
	}
	return nil
}
