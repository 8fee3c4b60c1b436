package v1

import (
	"time"

	"github.com/google/uuid"
)

// CreateReportRequest DTO для обращения гражданина
// @Description DTO для обращения гражданина. Категорию и срочность назначает классификатор.
type CreateReportRequest struct {
	Description  string   `json:"description" validate:"required,max=5000"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	LocationName *string  `json:"location_name,omitempty" validate:"omitempty,max=255"`
}

// IngestPostRequest DTO для приема записи из соцсети
// @Description DTO для приема записи из соцсети
type IngestPostRequest struct {
	Source       string   `json:"source" validate:"required,max=64"`
	Text         string   `json:"text" validate:"required,max=10000"`
	Timestamp    string   `json:"timestamp,omitempty" validate:"omitempty,max=64"`
	URL          *string  `json:"url,omitempty" validate:"omitempty,max=2048"`
	Hazard       string   `json:"hazard,omitempty" validate:"omitempty,max=32"`
	Urgency      string   `json:"urgency,omitempty" validate:"omitempty,max=16"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	LocationName *string  `json:"location_name,omitempty" validate:"omitempty,max=255"`
}

// IngestBatchRequest DTO для пакетного приема
// @Description DTO для пакетного приема записей
type IngestBatchRequest struct {
	Posts []IngestPostRequest `json:"posts" validate:"required,min=1,max=500,dive"`
}

// RefreshRequest DTO для запуска обновления из соцсетей
// @Description Пустой запрос использует запрос и лимит по умолчанию
type RefreshRequest struct {
	Query string `json:"query,omitempty" validate:"omitempty,max=512"`
	Limit int    `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
}

// ListPostsQuery - параметры строки запроса для списков
type ListPostsQuery struct {
	Source  string `form:"source" validate:"omitempty,max=64"`
	Hazard  string `form:"hazard" validate:"omitempty,max=32"`
	Urgency string `form:"urgency" validate:"omitempty,oneof=Low Medium High"`
	Limit   int    `form:"limit" validate:"omitempty,min=1,max=200"`
	Offset  int    `form:"offset" validate:"omitempty,min=0"`
}

// PostResponse DTO для ответа с записью
// @Description DTO для ответа с записью
type PostResponse struct {
	ID           uuid.UUID `json:"id"`
	Source       string    `json:"source"`
	Text         string    `json:"text"`
	Timestamp    string    `json:"timestamp"`
	URL          *string   `json:"url,omitempty"`
	Hazard       string    `json:"hazard"`
	Urgency      string    `json:"urgency"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	LocationName *string   `json:"location_name,omitempty"`
	Submitter    *string   `json:"submitter,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// IngestResponse DTO для ответа на прием записи
// @Description inserted=false означает, что запись уже была сохранена
type IngestResponse struct {
	Inserted bool          `json:"inserted"`
	Post     *PostResponse `json:"post,omitempty"`
}

// IngestBatchResponse DTO для ответа на пакетный прием
type IngestBatchResponse struct {
	Received int `json:"received"`
	Inserted int `json:"inserted"`
}

// RefreshJobResponse DTO для состояния задачи обновления
// @Description DTO для состояния задачи обновления
type RefreshJobResponse struct {
	ID             uuid.UUID  `json:"id"`
	Query          string     `json:"query"`
	Limit          int        `json:"limit"`
	Status         string     `json:"status"`
	Fetched        int        `json:"fetched"`
	Inserted       int        `json:"inserted"`
	PlatformErrors []string   `json:"platform_errors,omitempty"`
	Error          string     `json:"error,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
}

// HotspotResponse DTO для горячей точки
// @Description Ячейка сетки с суммарным весом срочности
type HotspotResponse struct {
	CellLatitude  float64 `json:"cell_latitude"`
	CellLongitude float64 `json:"cell_longitude"`
	Weight        int     `json:"weight"`
	Count         int     `json:"count"`
}

// RecomputeResponse DTO для ответа на пересчет срочности
type RecomputeResponse struct {
	Updated int `json:"updated"`
}
