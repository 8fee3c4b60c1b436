package classifier

import (
	"errors"
	"fmt"
	"os"

	"github.com/shenikar/coastal_hazard_system/internal/models"
	"gopkg.in/yaml.v3"
)

var ErrUnknownLabel = errors.New("unknown classifier label")

// RuleFile - формат YAML файла с правилами
//
//	hazards:
//	  - label: Cyclone
//	    keywords: [cyclone, hurricane, storm]
//	urgency:
//	  - label: High
//	    keywords: [urgent, danger]
type RuleFile struct {
	Hazards []RuleEntry `yaml:"hazards"`
	Urgency []RuleEntry `yaml:"urgency"`
}

type RuleEntry struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// LoadFile читает правила из YAML. Пустая секция оставляет правила по умолчанию.
func LoadFile(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read classifier rules: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Classifier, error) {
	var file RuleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse classifier rules: %w", err)
	}

	hazards := DefaultHazardRules
	if len(file.Hazards) > 0 {
		hazards = make([]Rule[models.Hazard], 0, len(file.Hazards))
		for _, e := range file.Hazards {
			label := models.Hazard(e.Label)
			if !label.Valid() {
				return nil, fmt.Errorf("hazard %q: %w", e.Label, ErrUnknownLabel)
			}
			hazards = append(hazards, Rule[models.Hazard]{Label: label, Keywords: e.Keywords})
		}
	}

	urgencies := DefaultUrgencyRules
	if len(file.Urgency) > 0 {
		urgencies = make([]Rule[models.Urgency], 0, len(file.Urgency))
		for _, e := range file.Urgency {
			label := models.Urgency(e.Label)
			if !label.Valid() {
				return nil, fmt.Errorf("urgency %q: %w", e.Label, ErrUnknownLabel)
			}
			urgencies = append(urgencies, Rule[models.Urgency]{Label: label, Keywords: e.Keywords})
		}
	}

	return NewWithRules(hazards, urgencies), nil
}
