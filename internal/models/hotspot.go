package models

// Hotspot - ячейка сетки с суммарным весом срочности попавших в нее записей
type Hotspot struct {
	Latitude  float64 `json:"cell_latitude"`
	Longitude float64 `json:"cell_longitude"`
	Weight    int     `json:"weight"`
	Count     int     `json:"count"`
}
