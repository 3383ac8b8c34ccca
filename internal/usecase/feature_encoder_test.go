package usecase

import (
	"testing"

	"github.com/smartmandi/inference/internal/domain"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestPricingSchema(t *testing.T) {
	schema := PricingSchema()

	assert.Len(t, schema, 23)
	assert.Equal(t, PricingFeatureCount, len(schema))
	assert.Equal(t, []string{"days_left", "stock_level", "demand_score"}, schema[:3])
	assert.Equal(t, "category_Bakery", schema[3])
	assert.Equal(t, "category_Snacks", schema[14])
	assert.Equal(t, "season_Summer", schema[15])
	assert.Equal(t, "season_Winter", schema[16])
	assert.Equal(t, "weekday_Monday", schema[17])
	assert.Equal(t, "weekday_Wednesday", schema[22])
	assert.NotContains(t, schema, "weekday_Friday")
}

func TestEncodePricing(t *testing.T) {
	schema := PricingSchema()
	index := func(name string) int {
		for i, n := range schema {
			if n == name {
				return i
			}
		}
		t.Fatalf("column %s not in schema", name)
		return -1
	}

	tests := []struct {
		name    string
		product domain.ProductRecord
		ones    []string
		base    [3]float64
	}{
		{
			name:    "defaults",
			product: domain.ProductRecord{},
			ones:    []string{"category_Dairy", "season_Summer", "weekday_Monday"},
			base:    [3]float64{7, 100, 50},
		},
		{
			name: "explicit values",
			product: domain.ProductRecord{
				Category:    strPtr("Meat"),
				Season:      strPtr("Winter"),
				Weekday:     strPtr("Sunday"),
				DaysLeft:    intPtr(2),
				StockLevel:  intPtr(40),
				DemandScore: intPtr(90),
			},
			ones: []string{"category_Meat", "season_Winter", "weekday_Sunday"},
			base: [3]float64{2, 40, 90},
		},
		{
			name:    "friday has no column",
			product: domain.ProductRecord{Weekday: strPtr("Friday")},
			ones:    []string{"category_Dairy", "season_Summer"},
			base:    [3]float64{7, 100, 50},
		},
		{
			name:    "null labels encode as zeros",
			product: domain.ProductRecord{CategoryNull: true, SeasonNull: true, WeekdayNull: true},
			ones:    nil,
			base:    [3]float64{7, 100, 50},
		},
		{
			name: "unknown labels encode as zeros",
			product: domain.ProductRecord{
				Category: strPtr("Electronics"),
				Season:   strPtr("Monsoon"),
				Weekday:  strPtr("Funday"),
			},
			ones: nil,
			base: [3]float64{7, 100, 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vector := EncodePricing(tt.product)

			assert.Len(t, vector, PricingFeatureCount)
			assert.Equal(t, tt.base[:], []float64(vector[:3]))

			expected := make(map[int]bool)
			for _, name := range tt.ones {
				expected[index(name)] = true
			}
			for i := 3; i < len(vector); i++ {
				if expected[i] {
					assert.Equal(t, 1.0, vector[i], "column %s", schema[i])
				} else {
					assert.Equal(t, 0.0, vector[i], "column %s", schema[i])
				}
			}
		})
	}
}

func TestEncodePricingOneHotBlocks(t *testing.T) {
	product := domain.ProductRecord{Category: strPtr("Fruit"), Season: strPtr("Winter"), Weekday: strPtr("Tuesday")}
	vector := EncodePricing(product)

	blocks := []struct {
		name       string
		start, end int
	}{
		{"category", 3, 15},
		{"season", 15, 17},
		{"weekday", 17, 23},
	}
	for _, b := range blocks {
		sum := 0.0
		for _, v := range vector[b.start:b.end] {
			sum += v
		}
		if sum != 1 {
			t.Errorf("%s block sums to %v, want 1", b.name, sum)
		}
	}
}

func TestEncodePricingIsDeterministic(t *testing.T) {
	product := domain.ProductRecord{Category: strPtr("Snacks"), DemandScore: intPtr(65)}
	assert.Equal(t, EncodePricing(product), EncodePricing(product))
}
