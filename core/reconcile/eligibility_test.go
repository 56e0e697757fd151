package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_Classify(t *testing.T) {
	tables := loadTables(t)
	c := NewClassifier(tables.ShinyThresholds, tables.EligibleRarities)

	tests := []struct {
		name   string
		set    string
		number int
		rarity string
		want   bool
	}{
		{"One star below threshold", "A3b", 92, "☆", true},
		{"Two stars below threshold", "A3b", 80, "☆☆", true},
		{"One star at threshold", "A3b", 93, "☆", false},
		{"One star above threshold", "A3b", 107, "☆", false},
		{"Three diamonds never", "A3b", 10, "◊◊◊", false},
		{"Three diamonds above threshold", "A3b", 100, "◊◊◊", false},
		{"Three stars not a tier", "A3b", 10, "☆☆☆", false},
		{"Crown not a tier", "A1", 286, "Crown Rare", false},
		{"Set without threshold", "A1", 280, "☆☆", true},
		{"Unknown set", "ZZ", 500, "☆", true},
		{"Empty rarity", "A1", 1, "", false},
		{"Deluxe threshold", "A4b", 376, "☆", true},
		{"Deluxe shiny", "A4b", 377, "☆", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.set, tt.number, tt.rarity))
		})
	}
}

func TestClassifier_IsPure(t *testing.T) {
	tables := loadTables(t)
	c := NewClassifier(tables.ShinyThresholds, tables.EligibleRarities)

	for i := 0; i < 3; i++ {
		assert.True(t, c.Classify("B1", 286, "☆"))
		assert.False(t, c.Classify("B1", 287, "☆"))
	}
}

func TestClassifier_ThresholdBoundaries(t *testing.T) {
	tables := loadTables(t)
	c := NewClassifier(tables.ShinyThresholds, tables.EligibleRarities)

	for code, threshold := range tables.ShinyThresholds {
		assert.True(t, c.Classify(code, threshold-1, "☆"), "%s below threshold", code)
		assert.False(t, c.Classify(code, threshold, "☆"), "%s at threshold", code)
		assert.False(t, c.Classify(code, threshold-1, "◊◊◊"), "%s diamonds", code)
	}
}
