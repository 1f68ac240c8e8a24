// Package models defines GORM data models for Digestly.
package models

import (
	"strings"

	"gorm.io/gorm"
)

// Plan is one column of the pricing table.
// MonthlyPrice and YearlyPrice are display strings ("$9", "€90") and are
// written into the page verbatim; no currency handling happens server side.
type Plan struct {
	gorm.Model

	Slug    string `gorm:"uniqueIndex;not null" json:"slug"`
	Name    string `gorm:"not null" json:"name"`
	Tagline string `json:"tagline"`

	MonthlyPrice string `gorm:"not null" json:"monthly_price"`
	YearlyPrice  string `gorm:"not null" json:"yearly_price"`

	// Features is newline separated; one bullet per line on the page.
	Features    string `json:"features"`
	Highlighted bool   `gorm:"default:false" json:"highlighted"`
	SortOrder   int    `gorm:"index" json:"sort_order"`
}

// FeatureList splits Features into trimmed, non-empty lines.
func (p Plan) FeatureList() []string {
	var out []string
	for _, line := range strings.Split(p.Features, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// DefaultPlans seed an empty catalog.
func DefaultPlans() []Plan {
	return []Plan{
		{
			Slug:         "free",
			Name:         "Free",
			Tagline:      "One server, daily digest",
			MonthlyPrice: "$0",
			YearlyPrice:  "$0",
			Features:     "1 server\n3 channels\nDaily digest",
			SortOrder:    10,
		},
		{
			Slug:         "pro",
			Name:         "Pro",
			Tagline:      "For active communities",
			MonthlyPrice: "$9",
			YearlyPrice:  "$90",
			Features:     "3 servers\nUnlimited channels\nHourly digests\nUnanswered question tracking",
			Highlighted:  true,
			SortOrder:    20,
		},
		{
			Slug:         "team",
			Name:         "Team",
			Tagline:      "Many servers, one dashboard",
			MonthlyPrice: "$29",
			YearlyPrice:  "$290",
			Features:     "10 servers\nUnlimited channels\nCustom digest schedule\nPriority support",
			SortOrder:    30,
		},
	}
}
