package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shenikar/coastal_hazard_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Hazards(t *testing.T) {
	c := New()
	tests := []struct {
		text string
		want models.Hazard
	}{
		{"Cyclone approaching the coast", models.HazardCyclone},
		{"HURRICANE season", models.HazardCyclone},
		{"storm surge expected", models.HazardCyclone},
		{"Streets under flood water", models.HazardFlood},
		{"heavy rain since morning", models.HazardFlood},
		{"inundation of low areas", models.HazardFlood},
		{"earthquake felt in the city", models.HazardEarthquake},
		{"small tremor reported", models.HazardEarthquake},
		{"tsunami sirens", models.HazardTsunami},
		{"huge wave hit the pier", models.HazardHighWave},
		{"high tide tonight", models.HazardHighWave},
		{"strong swell at the beach", models.HazardHighWave},
		{"nice day at the beach", models.HazardOther},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Hazard(tt.text))
		})
	}
}

func TestClassify_HazardPriority(t *testing.T) {
	c := New()

	hazard, _ := c.Classify("cyclone causing flood")
	assert.Equal(t, models.HazardCyclone, hazard)

	// flood проверяется раньше землетрясения
	hazard, _ = c.Classify("tremor after flood")
	assert.Equal(t, models.HazardFlood, hazard)

	// цунами раньше волн
	hazard, _ = c.Classify("tsunami wave")
	assert.Equal(t, models.HazardTsunami, hazard)
}

func TestClassify_UrgencyPriority(t *testing.T) {
	c := New()

	_, urgency := c.Classify("danger warning near coast")
	assert.Equal(t, models.UrgencyHigh, urgency)

	_, urgency = c.Classify("Caution: tide watch in effect")
	assert.Equal(t, models.UrgencyMedium, urgency)

	_, urgency = c.Classify("Tsunami ALERT issued")
	assert.Equal(t, models.UrgencyHigh, urgency)

	_, urgency = c.Classify("calm sea")
	assert.Equal(t, models.UrgencyLow, urgency)
}

func TestClassify_EmptyText(t *testing.T) {
	var c *Classifier

	hazard, urgency := c.Classify("")
	assert.Equal(t, models.HazardOther, hazard)
	assert.Equal(t, models.UrgencyLow, urgency)
}

func TestClassify_AlwaysReturnsClosedSet(t *testing.T) {
	c := New()
	inputs := []string{"", " ", "\x00\xff", "Ω≈ç√", "flood flood flood", "URGENT!!!", "rain\nwarning"}
	for _, in := range inputs {
		hazard, urgency := c.Classify(in)
		assert.True(t, hazard.Valid(), "hazard %q for %q", hazard, in)
		assert.True(t, urgency.Valid(), "urgency %q for %q", urgency, in)
	}
}

func TestParse_CustomRules(t *testing.T) {
	c, err := Parse([]byte(`
hazards:
  - label: Tsunami
    keywords: ["Tsunami", "seiche"]
  - label: Flood
    keywords: [flood]
urgency:
  - label: Medium
    keywords: [advisory]
`))
	require.NoError(t, err)

	hazard, urgency := c.Classify("Seiche advisory near flood plain")
	assert.Equal(t, models.HazardTsunami, hazard)
	assert.Equal(t, models.UrgencyMedium, urgency)

	// дефолтные правила заменены целиком
	_, urgency = c.Classify("danger")
	assert.Equal(t, models.UrgencyLow, urgency)
}

func TestParse_EmptySectionKeepsDefaults(t *testing.T) {
	c, err := Parse([]byte(`urgency:
  - label: High
    keywords: [sos]
`))
	require.NoError(t, err)

	hazard, urgency := c.Classify("SOS storm")
	assert.Equal(t, models.HazardCyclone, hazard)
	assert.Equal(t, models.UrgencyHigh, urgency)
}

func TestParse_UnknownLabel(t *testing.T) {
	_, err := Parse([]byte(`hazards:
  - label: Volcano
    keywords: [lava]
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownLabel)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hazards:\n  - label: Earthquake\n    keywords: [quake]\n"), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, models.HazardEarthquake, c.Hazard("Quake!"))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
