package domain

import (
	"fmt"

	"github.com/spf13/cast"
)

// Defaults applied when a product record omits a field
const (
	DefaultCurrentPrice = 25.0
	DefaultDemandScore  = 50
	DefaultStockLevel   = 100
	DefaultDaysLeft     = 7
	DefaultCategory     = "Dairy"
	DefaultSeason       = "Summer"
	DefaultWeekday      = "Monday"
)

// ProductRecord is one product as sent by the caller. Every field is optional;
// a nil pointer means the field was absent and its default applies.
// An explicit null label is kept apart from an absent one: it takes no
// default and matches no vocabulary entry.
type ProductRecord struct {
	ProductID    *string
	ProductName  *string
	Category     *string
	CurrentPrice *float64
	DemandScore  *int
	StockLevel   *int
	DaysLeft     *int
	Weekday      *string
	Season       *string

	CategoryNull bool
	WeekdayNull  bool
	SeasonNull   bool
}

// ParseProduct converts a loosely-typed JSON object into a ProductRecord.
// Numbers sent as strings ("80") are accepted; values that cannot be
// converted return an error.
func ParseProduct(raw map[string]interface{}) (ProductRecord, error) {
	var p ProductRecord
	var err error

	if p.ProductID, _, err = optString(raw, "product_id"); err != nil {
		return p, err
	}
	if p.ProductName, _, err = optString(raw, "product_name"); err != nil {
		return p, err
	}
	if p.Category, p.CategoryNull, err = optString(raw, "category"); err != nil {
		return p, err
	}
	if p.Weekday, p.WeekdayNull, err = optString(raw, "weekday"); err != nil {
		return p, err
	}
	if p.Season, p.SeasonNull, err = optString(raw, "season"); err != nil {
		return p, err
	}
	if p.CurrentPrice, err = optFloat(raw, "current_price"); err != nil {
		return p, err
	}
	if p.DemandScore, err = optInt(raw, "demand_score"); err != nil {
		return p, err
	}
	if p.StockLevel, err = optInt(raw, "stock_level"); err != nil {
		return p, err
	}
	if p.DaysLeft, err = optInt(raw, "days_left"); err != nil {
		return p, err
	}

	return p, nil
}

// CategoryValue returns the category, defaulting to Dairy. A null category is empty.
func (p ProductRecord) CategoryValue() string {
	if p.CategoryNull {
		return ""
	}
	if p.Category == nil {
		return DefaultCategory
	}
	return *p.Category
}

// SeasonValue returns the season, defaulting to Summer. A null season is empty.
func (p ProductRecord) SeasonValue() string {
	if p.SeasonNull {
		return ""
	}
	if p.Season == nil {
		return DefaultSeason
	}
	return *p.Season
}

// WeekdayValue returns the weekday label, defaulting to Monday. A null weekday is empty.
func (p ProductRecord) WeekdayValue() string {
	if p.WeekdayNull {
		return ""
	}
	if p.Weekday == nil {
		return DefaultWeekday
	}
	return *p.Weekday
}

// CurrentPriceValue returns the current price, defaulting to 25.0
func (p ProductRecord) CurrentPriceValue() float64 {
	if p.CurrentPrice == nil {
		return DefaultCurrentPrice
	}
	return *p.CurrentPrice
}

// DemandScoreValue returns the demand score, defaulting to 50
func (p ProductRecord) DemandScoreValue() int {
	if p.DemandScore == nil {
		return DefaultDemandScore
	}
	return *p.DemandScore
}

// StockLevelValue returns the stock level, defaulting to 100
func (p ProductRecord) StockLevelValue() int {
	if p.StockLevel == nil {
		return DefaultStockLevel
	}
	return *p.StockLevel
}

// DaysLeftValue returns the days until expiry, defaulting to 7
func (p ProductRecord) DaysLeftValue() int {
	if p.DaysLeft == nil {
		return DefaultDaysLeft
	}
	return *p.DaysLeft
}

// optString also reports whether the key was present with a null value
func optString(raw map[string]interface{}, key string) (*string, bool, error) {
	v, ok := raw[key]
	if !ok {
		return nil, false, nil
	}
	if v == nil {
		return nil, true, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return nil, false, fmt.Errorf("field %s: %w", key, err)
	}
	return &s, false, nil
}

func optFloat(raw map[string]interface{}, key string) (*float64, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", key, err)
	}
	return &f, nil
}

func optInt(raw map[string]interface{}, key string) (*int, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, nil
	}
	i, err := cast.ToIntE(v)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", key, err)
	}
	return &i, nil
}
