package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shenikar/coastal_hazard_system/internal/models"
	"golang.org/x/oauth2"
)

// Twitter ищет недавние твиты через API v2 с app-only bearer токеном
type Twitter struct {
	httpClient *http.Client
	baseURL    string
}

func NewTwitter(bearerToken string, timeout time.Duration) *Twitter {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: bearerToken, TokenType: "Bearer"})
	client := oauth2.NewClient(context.Background(), src)
	client.Timeout = timeout
	return &Twitter{
		httpClient: client,
		baseURL:    "https://api.twitter.com/2",
	}
}

func (t *Twitter) Platform() string { return PlatformTwitter }

func (t *Twitter) Fetch(ctx context.Context, query string, limit int) ([]*models.Post, error) {
	// API принимает max_results только в диапазоне 10..100
	maxResults := min(max(limit, 10), 100)

	params := url.Values{
		"query":        {query},
		"max_results":  {strconv.Itoa(maxResults)},
		"tweet.fields": {"created_at,geo"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/tweets/search/recent?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("twitter search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("twitter API error: status %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		Data []struct {
			ID        string `json:"id"`
			Text      string `json:"text"`
			CreatedAt string `json:"created_at"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	posts := make([]*models.Post, 0, len(payload.Data))
	for _, tw := range payload.Data {
		if limit > 0 && len(posts) >= limit {
			break
		}
		posts = append(posts, &models.Post{
			Source:    PlatformTwitter,
			Text:      tw.Text,
			Timestamp: normalizeTimestamp(tw.CreatedAt),
			URL:       strPtr("https://twitter.com/i/web/status/" + tw.ID),
		})
	}
	return posts, nil
}
