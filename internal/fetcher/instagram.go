package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shenikar/coastal_hazard_system/internal/models"
)

// Instagram читает медиа пользователя через Graph API и фильтрует подписи по запросу.
// Поиска по ключевым словам в Graph API нет.
type Instagram struct {
	accessToken string
	httpClient  *http.Client
	baseURL     string
}

func NewInstagram(accessToken string, timeout time.Duration) *Instagram {
	return &Instagram{
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     "https://graph.facebook.com/v17.0",
	}
}

func (i *Instagram) Platform() string { return PlatformInstagram }

func (i *Instagram) Fetch(ctx context.Context, query string, limit int) ([]*models.Post, error) {
	if limit < 1 {
		limit = 10
	}
	params := url.Values{
		"fields":       {"id,caption,permalink,timestamp"},
		"limit":        {strconv.Itoa(min(limit*5, 100))},
		"access_token": {i.accessToken},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.baseURL+"/me/media?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("instagram media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("instagram API error: status %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		Data []struct {
			ID        string `json:"id"`
			Caption   string `json:"caption"`
			Permalink string `json:"permalink"`
			Timestamp string `json:"timestamp"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	posts := make([]*models.Post, 0)
	for _, m := range payload.Data {
		if len(posts) >= limit {
			break
		}
		if m.Caption == "" || !strings.Contains(strings.ToLower(m.Caption), needle) {
			continue
		}
		post := &models.Post{
			Source:    PlatformInstagram,
			Text:      m.Caption,
			Timestamp: normalizeTimestamp(m.Timestamp),
		}
		if m.Permalink != "" {
			post.URL = strPtr(m.Permalink)
		}
		posts = append(posts, post)
	}
	return posts, nil
}
