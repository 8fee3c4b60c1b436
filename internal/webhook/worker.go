package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/coastal_hazard_system/internal/config"
	"github.com/sirupsen/logrus"
)

const signatureHeader = "X-Webhook-Signature"

// AlertWorker забирает уведомления из Redis и доставляет их на WEBHOOK_URL
type AlertWorker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	httpClient  *http.Client
	url         string
	secret      string
	maxRetries  int
	baseDelay   time.Duration
	popTimeout  time.Duration
	sleep       func(ctx context.Context, d time.Duration)
}

func NewAlertWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *AlertWorker {
	maxRetries := cfg.WebhookMaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &AlertWorker{
		redisClient: redisClient,
		logger:      logger,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
		url:        cfg.WebhookURL,
		secret:     cfg.WebhookSecret,
		maxRetries: maxRetries,
		baseDelay:  cfg.WebhookBaseDelay,
		popTimeout: 5 * time.Second,
		sleep:      sleepContext,
	}
}

// Start запускает горутину обработки очереди; остановка по отмене ctx
func (w *AlertWorker) Start(ctx context.Context) {
	w.logger.Info("Starting alert worker...")
	go func() {
		for {
			if ctx.Err() != nil {
				w.logger.Info("Stopping alert worker.")
				return
			}

			// BRPOP с таймаутом, чтобы регулярно проверять ctx
			result, err := w.redisClient.BRPop(ctx, w.popTimeout, alertQueueKey).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
					continue
				}
				w.logger.WithError(err).Error("Failed to pop alert event from Redis")
				w.sleep(ctx, w.baseDelay)
				continue
			}

			// result[0] - ключ, result[1] - значение
			payload := result[1]
			var event AlertEvent
			if err := json.Unmarshal([]byte(payload), &event); err != nil {
				w.logger.WithError(err).Error("Failed to unmarshal alert event from Redis")
				continue
			}

			w.processAlertEvent(ctx, event, payload)
		}
	}()
}

func (w *AlertWorker) processAlertEvent(ctx context.Context, event AlertEvent, rawPayload string) bool {
	log := w.logger.WithFields(logrus.Fields{
		"post_id": event.PostID,
		"hazard":  event.Hazard,
	})

	if w.url == "" {
		log.Warn("Webhook URL is not configured. Skipping alert delivery.")
		return false
	}

	delay := w.baseDelay
	for i := 0; i < w.maxRetries; i++ {
		err := w.deliver(ctx, rawPayload)
		if err == nil {
			log.Info("Alert delivered successfully.")
			return true
		}

		left := w.maxRetries - 1 - i
		if left == 0 {
			log.WithError(err).Warn("Alert delivery attempt failed")
			break
		}
		log.WithError(err).Warnf("Alert delivery failed. Retrying in %v. Retries left: %d", delay, left)
		w.sleep(ctx, delay)
		delay *= 2
	}

	log.Errorf("Failed to deliver alert after %d attempts.", w.maxRetries)
	return false
}

func (w *AlertWorker) deliver(ctx context.Context, rawPayload string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewBufferString(rawPayload))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if w.secret != "" {
		req.Header.Set(signatureHeader, generateHMACSHA256(rawPayload, w.secret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}
	return nil
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func sleepContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
