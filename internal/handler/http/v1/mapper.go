package v1

import (
	"github.com/shenikar/coastal_hazard_system/internal/models"
	"github.com/shenikar/coastal_hazard_system/internal/refresh"
)

// DTOToPostModel преобразует запрос на прием в доменную модель.
// Некорректные метки потом заменит классификатор.
func DTOToPostModel(dto IngestPostRequest) *models.Post {
	return &models.Post{
		Source:       dto.Source,
		Text:         dto.Text,
		Timestamp:    dto.Timestamp,
		URL:          dto.URL,
		Hazard:       models.Hazard(dto.Hazard),
		Urgency:      models.Urgency(dto.Urgency),
		Latitude:     dto.Latitude,
		Longitude:    dto.Longitude,
		LocationName: dto.LocationName,
	}
}

func DTOsToPostModels(dtos []IngestPostRequest) []*models.Post {
	posts := make([]*models.Post, len(dtos))
	for i, dto := range dtos {
		posts[i] = DTOToPostModel(dto)
	}
	return posts
}

// ReportDTOToPostModel - обращение гражданина: текст берется из description
func ReportDTOToPostModel(dto CreateReportRequest) *models.Post {
	return &models.Post{
		Text:         dto.Description,
		Latitude:     dto.Latitude,
		Longitude:    dto.Longitude,
		LocationName: dto.LocationName,
	}
}

// ModelToPostResponse преобразует доменную модель в DTO для ответа
func ModelToPostResponse(model *models.Post) *PostResponse {
	return &PostResponse{
		ID:           model.ID,
		Source:       model.Source,
		Text:         model.Text,
		Timestamp:    model.Timestamp,
		URL:          model.URL,
		Hazard:       string(model.Hazard),
		Urgency:      string(model.Urgency),
		Latitude:     model.Latitude,
		Longitude:    model.Longitude,
		LocationName: model.LocationName,
		Submitter:    model.Submitter,
		CreatedAt:    model.CreatedAt,
	}
}

// ModelsToPostResponses преобразует слайс моделей в слайс DTO
func ModelsToPostResponses(posts []*models.Post) []*PostResponse {
	responses := make([]*PostResponse, len(posts))
	for i, post := range posts {
		responses[i] = ModelToPostResponse(post)
	}
	return responses
}

func IngestResultToResponse(result models.IngestResult) IngestResponse {
	resp := IngestResponse{Inserted: result.Inserted}
	if result.Post != nil {
		resp.Post = ModelToPostResponse(result.Post)
	}
	return resp
}

func JobToResponse(job refresh.Job) RefreshJobResponse {
	return RefreshJobResponse{
		ID:             job.ID,
		Query:          job.Query,
		Limit:          job.Limit,
		Status:         string(job.Status),
		Fetched:        job.Fetched,
		Inserted:       job.Inserted,
		PlatformErrors: job.PlatformErrors,
		Error:          job.Error,
		CreatedAt:      job.CreatedAt,
		StartedAt:      job.StartedAt,
		FinishedAt:     job.FinishedAt,
	}
}

func HotspotsToResponses(hotspots []models.Hotspot) []HotspotResponse {
	responses := make([]HotspotResponse, len(hotspots))
	for i, h := range hotspots {
		responses[i] = HotspotResponse{
			CellLatitude:  h.Latitude,
			CellLongitude: h.Longitude,
			Weight:        h.Weight,
			Count:         h.Count,
		}
	}
	return responses
}

func (q ListPostsQuery) toFilter() models.PostFilter {
	return models.PostFilter{
		Source:  q.Source,
		Hazard:  models.Hazard(q.Hazard),
		Urgency: models.Urgency(q.Urgency),
		Limit:   q.Limit,
		Offset:  q.Offset,
	}
}
