package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shenikar/coastal_hazard_system/internal/config"
	"github.com/shenikar/coastal_hazard_system/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	PlatformTwitter   = "Twitter"
	PlatformReddit    = "Reddit"
	PlatformYouTube   = "YouTube"
	PlatformInstagram = "Instagram"
)

// Fetcher - клиент одной платформы. Метки опасности не ставит: это делает сервис.
type Fetcher interface {
	Platform() string
	Fetch(ctx context.Context, query string, limit int) ([]*models.Post, error)
}

// NewFromConfig создает по одному фетчеру на платформу. Без учетных данных
// платформа читает фикстуру из FixturesDir или всегда возвращает пустой список.
func NewFromConfig(cfg config.SocialConfig, logger *logrus.Logger) []Fetcher {
	fallback := func(platform string) Fetcher {
		if cfg.FixturesDir != "" {
			return NewFixture(platform, cfg.FixturesDir)
		}
		return Empty{platform: platform}
	}

	fetchers := make([]Fetcher, 0, 4)

	if cfg.TwitterBearerToken != "" {
		fetchers = append(fetchers, NewTwitter(cfg.TwitterBearerToken, cfg.FetchTimeout))
	} else {
		fetchers = append(fetchers, fallback(PlatformTwitter))
	}

	if cfg.RedditClientID != "" && cfg.RedditClientSecret != "" {
		fetchers = append(fetchers, NewReddit(cfg.RedditClientID, cfg.RedditClientSecret, cfg.RedditUserAgent, cfg.FetchTimeout))
	} else {
		fetchers = append(fetchers, fallback(PlatformReddit))
	}

	if cfg.YouTubeAPIKey != "" {
		yt, err := NewYouTube(context.Background(), cfg.YouTubeAPIKey)
		if err != nil {
			logger.WithError(err).Warn("Failed to init YouTube client, using fallback")
			fetchers = append(fetchers, fallback(PlatformYouTube))
		} else {
			fetchers = append(fetchers, yt)
		}
	} else {
		fetchers = append(fetchers, fallback(PlatformYouTube))
	}

	if cfg.InstagramUserToken != "" {
		fetchers = append(fetchers, NewInstagram(cfg.InstagramUserToken, cfg.FetchTimeout))
	} else {
		fetchers = append(fetchers, fallback(PlatformInstagram))
	}

	for _, f := range fetchers {
		logger.WithFields(logrus.Fields{
			"platform": f.Platform(),
			"kind":     fmt.Sprintf("%T", f),
		}).Info("Social fetcher configured")
	}
	return fetchers
}

// Empty всегда возвращает пустой результат
type Empty struct {
	platform string
}

func NewEmpty(platform string) Empty { return Empty{platform: platform} }

func (e Empty) Platform() string { return e.platform }

func (e Empty) Fetch(context.Context, string, int) ([]*models.Post, error) {
	return nil, nil
}

// Fixture читает записи из <dir>/<platform>_mock.json
type Fixture struct {
	platform string
	path     string
}

func NewFixture(platform, dir string) *Fixture {
	return &Fixture{
		platform: platform,
		path:     filepath.Join(dir, strings.ToLower(platform)+"_mock.json"),
	}
}

func (f *Fixture) Platform() string { return f.platform }

func (f *Fixture) Fetch(_ context.Context, _ string, limit int) ([]*models.Post, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read fixture %s: %w", f.path, err)
	}

	posts, err := DecodePosts(data)
	if err != nil {
		return nil, fmt.Errorf("decode fixture %s: %w", f.path, err)
	}
	for _, p := range posts {
		if p.Source == "" {
			p.Source = f.platform
		}
	}
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

// DecodePosts принимает один объект или массив объектов записей.
// Элементы null в массиве отбрасываются.
func DecodePosts(data []byte) ([]*models.Post, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var decoded []*models.Post
		if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
			return nil, err
		}
		// null в массиве превращается в nil-указатель
		posts := make([]*models.Post, 0, len(decoded))
		for _, p := range decoded {
			if p != nil {
				posts = append(posts, p)
			}
		}
		return posts, nil
	}

	var post models.Post
	if err := json.Unmarshal([]byte(trimmed), &post); err != nil {
		return nil, err
	}
	return []*models.Post{&post}, nil
}

// normalizeTimestamp приводит время платформы к RFC3339 в UTC,
// чтобы строки сортировались хронологически
func normalizeTimestamp(raw string) string {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05-0700"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return raw
}

func strPtr(s string) *string {
	return &s
}
