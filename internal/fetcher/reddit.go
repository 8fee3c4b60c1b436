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
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Reddit ищет по r/all через OAuth приложения (client credentials)
type Reddit struct {
	httpClient *http.Client
	baseURL    string
	siteURL    string
}

func NewReddit(clientID, clientSecret, userAgent string, timeout time.Duration) *Reddit {
	return newReddit(clientID, clientSecret, userAgent, timeout,
		"https://www.reddit.com/api/v1/access_token", "https://oauth.reddit.com")
}

func newReddit(clientID, clientSecret, userAgent string, timeout time.Duration, tokenURL, baseURL string) *Reddit {
	cc := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	// Reddit требует User-Agent и для выдачи токена, и для API
	base := &http.Client{
		Timeout:   timeout,
		Transport: userAgentTransport{userAgent: userAgent, next: http.DefaultTransport},
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)

	client := cc.Client(ctx)
	client.Timeout = timeout
	return &Reddit{
		httpClient: client,
		baseURL:    baseURL,
		siteURL:    "https://www.reddit.com",
	}
}

func (r *Reddit) Platform() string { return PlatformReddit }

func (r *Reddit) Fetch(ctx context.Context, query string, limit int) ([]*models.Post, error) {
	if limit < 1 {
		limit = 10
	}
	params := url.Values{
		"q":        {query},
		"limit":    {strconv.Itoa(min(limit, 100))},
		"sort":     {"new"},
		"raw_json": {"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/r/all/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reddit search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("reddit API error: status %d: %s", resp.StatusCode, body)
	}

	var listing struct {
		Data struct {
			Children []struct {
				Data struct {
					Title      string  `json:"title"`
					Permalink  string  `json:"permalink"`
					CreatedUTC float64 `json:"created_utc"`
				} `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	posts := make([]*models.Post, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		d := child.Data
		post := &models.Post{
			Source:    PlatformReddit,
			Text:      d.Title,
			Timestamp: time.Unix(int64(d.CreatedUTC), 0).UTC().Format(time.RFC3339),
		}
		if d.Permalink != "" {
			post.URL = strPtr(r.siteURL + "/" + strings.TrimPrefix(d.Permalink, "/"))
		}
		posts = append(posts, post)
	}
	return posts, nil
}

type userAgentTransport struct {
	userAgent string
	next      http.RoundTripper
}

func (t userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	return t.next.RoundTrip(req)
}
