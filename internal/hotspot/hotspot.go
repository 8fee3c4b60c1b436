package hotspot

import (
	"fmt"
	"math"
	"sort"

	"github.com/shenikar/coastal_hazard_system/internal/models"
)

const (
	DefaultCellSize  = 0.02
	DefaultMinWeight = 1

	// Границы размера ячейки в градусах: при меньшем размере индекс ячейки
	// не помещается в int64
	MinCellSize = 1e-6
	MaxCellSize = 180.0
)

// GridMode определяет, как координата привязывается к ячейке
type GridMode string

const (
	// GridFloor - ячейка привязана к юго-западному углу: floor(v/size)*size
	GridFloor GridMode = "floor"
	// GridNearest - ближайший узел сетки: round(v/size)*size
	GridNearest GridMode = "nearest"
)

// snapEpsilon компенсирует ошибку деления, например 0.06/0.02 = 2.9999999999999996
const snapEpsilon = 1e-9

type Options struct {
	CellSize  float64
	MinWeight int
	Mode      GridMode
}

func DefaultOptions() Options {
	return Options{CellSize: DefaultCellSize, MinWeight: DefaultMinWeight, Mode: GridFloor}
}

func (o Options) Validate() error {
	if math.IsNaN(o.CellSize) || o.CellSize < MinCellSize || o.CellSize > MaxCellSize {
		return fmt.Errorf("cell size must be between %g and %g degrees, got %v", MinCellSize, MaxCellSize, o.CellSize)
	}
	if o.Mode != GridFloor && o.Mode != GridNearest {
		return fmt.Errorf("unknown grid mode %q", o.Mode)
	}
	return nil
}

// CacheKey однозначно описывает набор опций для кеша
func (o Options) CacheKey() string {
	return fmt.Sprintf("%s:%g:%d", o.Mode, o.CellSize, o.MinWeight)
}

type cellKey struct {
	lat, lon int64
}

// Compute группирует записи с координатами по ячейкам сетки и возвращает
// ячейки с весом строго больше MinWeight, по убыванию веса.
// При равном весе порядок: по широте, затем по долготе (по возрастанию).
func Compute(posts []*models.Post, opts Options) ([]models.Hotspot, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	cells := make(map[cellKey]*models.Hotspot)
	for _, p := range posts {
		if p == nil {
			continue
		}
		lat, lon, ok := p.Coordinates()
		if !ok || !validCoordinates(lat, lon) {
			continue
		}

		key := cellKey{lat: opts.index(lat), lon: opts.index(lon)}
		cell, exists := cells[key]
		if !exists {
			cell = &models.Hotspot{
				Latitude:  float64(key.lat) * opts.CellSize,
				Longitude: float64(key.lon) * opts.CellSize,
			}
			cells[key] = cell
		}
		cell.Weight += p.Urgency.Severity()
		cell.Count++
	}

	result := make([]models.Hotspot, 0, len(cells))
	for _, cell := range cells {
		if cell.Weight > opts.MinWeight {
			result = append(result, *cell)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Weight != result[j].Weight {
			return result[i].Weight > result[j].Weight
		}
		if result[i].Latitude != result[j].Latitude {
			return result[i].Latitude < result[j].Latitude
		}
		return result[i].Longitude < result[j].Longitude
	})
	return result, nil
}

// validCoordinates отсекает записи из фикстур и импорта, не прошедшие валидацию API
func validCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func (o Options) index(v float64) int64 {
	q := v / o.CellSize
	if o.Mode == GridNearest {
		return int64(math.Round(q))
	}
	return int64(math.Floor(q + snapEpsilon))
}
