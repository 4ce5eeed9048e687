package pricing

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/models"
)

// Yacht is one chartered vessel with its rate configuration.
type Yacht struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Rates   RateCard       `json:"rates"`
	Seasons SeasonCalendar `json:"seasons"`
}

// Catalog is the yacht rate-card configuration consulted per request.
type Catalog struct {
	yachts map[string]Yacht
}

// NewCatalog builds a catalog from the given yachts.
func NewCatalog(yachts ...Yacht) *Catalog {
	c := &Catalog{yachts: make(map[string]Yacht, len(yachts))}
	for _, y := range yachts {
		c.yachts[y.ID] = y
	}
	return c
}

// LoadCatalog reads a yacht catalog from a JSON file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var yachts []Yacht
	if err := json.Unmarshal(data, &yachts); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return NewCatalog(yachts...), nil
}

// Get returns the yacht with the given ID.
func (c *Catalog) Get(yachtID string) (Yacht, error) {
	yacht, ok := c.yachts[yachtID]
	if !ok {
		return Yacht{}, fmt.Errorf("yacht not found: %s", yachtID)
	}
	return yacht, nil
}

// DefaultCatalog returns the built-in Balearic fleet used when no catalog
// file is configured.
func DefaultCatalog() *Catalog {
	balearicSeasons := SeasonCalendar{
		HighMonths:   []time.Month{time.June, time.July, time.August, time.September},
		MediumMonths: []time.Month{time.April, time.May, time.October},
	}

	return NewCatalog(
		Yacht{
			ID:   "YCH001",
			Name: "Mar Azul",
			Rates: RateCard{
				Daily: map[models.SeasonLabel]decimal.Decimal{
					models.SeasonLow:    decimal.NewFromInt(400),
					models.SeasonMedium: decimal.NewFromInt(600),
					models.SeasonHigh:   decimal.NewFromInt(950),
				},
				FixedFees: []FixedFee{
					{Label: "Crew service", Amount: decimal.NewFromInt(200)},
					{Label: "Final cleaning", Amount: decimal.NewFromInt(100)},
				},
			},
			Seasons: balearicSeasons,
		},
		Yacht{
			ID:   "YCH002",
			Name: "Tramuntana",
			Rates: RateCard{
				Daily: map[models.SeasonLabel]decimal.Decimal{
					models.SeasonLow:    decimal.NewFromInt(650),
					models.SeasonMedium: decimal.NewFromInt(900),
					models.SeasonHigh:   decimal.NewFromInt(1400),
				},
				FixedFees: []FixedFee{
					{Label: "Crew service", Amount: decimal.NewFromInt(350)},
					{Label: "Final cleaning", Amount: decimal.NewFromInt(150)},
				},
			},
			Seasons: balearicSeasons,
		},
		Yacht{
			ID:   "YCH003",
			Name: "Es Vedra",
			Rates: RateCard{
				Daily: map[models.SeasonLabel]decimal.Decimal{
					models.SeasonLow:    decimal.NewFromInt(300),
					models.SeasonMedium: decimal.NewFromInt(450),
					models.SeasonHigh:   decimal.NewFromInt(700),
				},
			},
			Seasons: balearicSeasons,
		},
	)
}
