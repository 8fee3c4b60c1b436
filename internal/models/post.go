package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SourceCitizen - источник для сообщений, поданных гражданами напрямую
const SourceCitizen = "Citizen"

// Hazard - категория опасности, назначается только классификатором
type Hazard string

const (
	HazardFlood      Hazard = "Flood"
	HazardCyclone    Hazard = "Cyclone"
	HazardTsunami    Hazard = "Tsunami"
	HazardHighWave   Hazard = "High Wave"
	HazardEarthquake Hazard = "Earthquake"
	HazardOther      Hazard = "Other"
)

// Hazards возвращает закрытый набор категорий
func Hazards() []Hazard {
	return []Hazard{HazardFlood, HazardCyclone, HazardTsunami, HazardHighWave, HazardEarthquake, HazardOther}
}

func (h Hazard) Valid() bool {
	for _, known := range Hazards() {
		if h == known {
			return true
		}
	}
	return false
}

// Urgency - уровень срочности, упорядочен по серьезности
type Urgency string

const (
	UrgencyLow    Urgency = "Low"
	UrgencyMedium Urgency = "Medium"
	UrgencyHigh   Urgency = "High"
)

func Urgencies() []Urgency {
	return []Urgency{UrgencyLow, UrgencyMedium, UrgencyHigh}
}

func (u Urgency) Valid() bool {
	return u == UrgencyLow || u == UrgencyMedium || u == UrgencyHigh
}

// Severity возвращает вес срочности для горячих точек: High=3, Medium=2, остальное=1
func (u Urgency) Severity() int {
	switch u {
	case UrgencyHigh:
		return 3
	case UrgencyMedium:
		return 2
	default:
		return 1
	}
}

// Post - сообщение из соцсети или обращение гражданина
type Post struct {
	ID           uuid.UUID `json:"id"`
	Source       string    `json:"source"`
	Text         string    `json:"text"`
	Timestamp    string    `json:"timestamp"`
	URL          *string   `json:"url,omitempty"`
	Hazard       Hazard    `json:"hazard"`
	Urgency      Urgency   `json:"urgency"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	LocationName *string   `json:"location_name,omitempty"`
	Submitter    *string   `json:"submitter,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasURL сообщает, есть ли у записи непустой url (основной ключ дедупликации)
func (p *Post) HasURL() bool {
	return p.URL != nil && strings.TrimSpace(*p.URL) != ""
}

// Coordinates возвращает координаты, если заданы обе
func (p *Post) Coordinates() (lat, lon float64, ok bool) {
	if p.Latitude == nil || p.Longitude == nil {
		return 0, 0, false
	}
	return *p.Latitude, *p.Longitude, true
}

// PostText - минимальная проекция для пересчета срочности
type PostText struct {
	ID      uuid.UUID
	Text    string
	Urgency Urgency
}

// PostFilter - параметры выборки списка записей
type PostFilter struct {
	Source    string
	Submitter string
	Hazard    Hazard
	Urgency   Urgency
	Limit     int
	Offset    int
}

// IngestResult - результат приема одной записи
type IngestResult struct {
	Post     *Post
	Inserted bool
}
