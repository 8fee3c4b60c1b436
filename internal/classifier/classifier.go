package classifier

import (
	"strings"

	"github.com/shenikar/coastal_hazard_system/internal/models"
)

// Rule связывает метку с набором ключевых слов
type Rule[L ~string] struct {
	Label    L
	Keywords []string
}

// DefaultHazardRules - порядок групп важен: побеждает первая совпавшая
var DefaultHazardRules = []Rule[models.Hazard]{
	{Label: models.HazardCyclone, Keywords: []string{"cyclone", "hurricane", "storm"}},
	{Label: models.HazardFlood, Keywords: []string{"flood", "rain", "inundation"}},
	{Label: models.HazardEarthquake, Keywords: []string{"earthquake", "tremor"}},
	{Label: models.HazardTsunami, Keywords: []string{"tsunami"}},
	{Label: models.HazardHighWave, Keywords: []string{"wave", "high tide", "swell"}},
}

var DefaultUrgencyRules = []Rule[models.Urgency]{
	{Label: models.UrgencyHigh, Keywords: []string{"urgent", "danger", "emergency", "critical", "alert", "very dangerous"}},
	{Label: models.UrgencyMedium, Keywords: []string{"warning", "caution", "watch"}},
}

// Classifier присваивает категорию опасности и срочность по ключевым словам.
// Нулевое значение использует правила по умолчанию.
type Classifier struct {
	hazards   []Rule[models.Hazard]
	urgencies []Rule[models.Urgency]
}

func New() *Classifier {
	return &Classifier{
		hazards:   DefaultHazardRules,
		urgencies: DefaultUrgencyRules,
	}
}

// NewWithRules создает классификатор с собственными упорядоченными правилами
func NewWithRules(hazards []Rule[models.Hazard], urgencies []Rule[models.Urgency]) *Classifier {
	return &Classifier{
		hazards:   normalize(hazards),
		urgencies: normalize(urgencies),
	}
}

// Classify никогда не падает: для пустого текста вернет Other/Low
func (c *Classifier) Classify(text string) (models.Hazard, models.Urgency) {
	lower := strings.ToLower(text)
	return firstMatch(lower, c.hazardRules(), models.HazardOther),
		firstMatch(lower, c.urgencyRules(), models.UrgencyLow)
}

func (c *Classifier) Hazard(text string) models.Hazard {
	return firstMatch(strings.ToLower(text), c.hazardRules(), models.HazardOther)
}

func (c *Classifier) Urgency(text string) models.Urgency {
	return firstMatch(strings.ToLower(text), c.urgencyRules(), models.UrgencyLow)
}

func (c *Classifier) hazardRules() []Rule[models.Hazard] {
	if c == nil || c.hazards == nil {
		return DefaultHazardRules
	}
	return c.hazards
}

func (c *Classifier) urgencyRules() []Rule[models.Urgency] {
	if c == nil || c.urgencies == nil {
		return DefaultUrgencyRules
	}
	return c.urgencies
}

// firstMatch проходит правила по порядку и возвращает метку первого,
// чье ключевое слово встречается в тексте как подстрока.
// text должен быть уже в нижнем регистре.
func firstMatch[L ~string](text string, rules []Rule[L], fallback L) L {
	if text == "" {
		return fallback
	}
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(text, kw) {
				return rule.Label
			}
		}
	}
	return fallback
}

func normalize[L ~string](rules []Rule[L]) []Rule[L] {
	out := make([]Rule[L], 0, len(rules))
	for _, r := range rules {
		words := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				words = append(words, kw)
			}
		}
		out = append(out, Rule[L]{Label: r.Label, Keywords: words})
	}
	return out
}
