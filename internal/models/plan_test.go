package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeatureList(t *testing.T) {
	p := Plan{Features: " 1 server \n\n3 channels\n  \nDaily digest\n"}
	assert.Equal(t, []string{"1 server", "3 channels", "Daily digest"}, p.FeatureList())
	assert.Nil(t, Plan{}.FeatureList())
}

func TestDefaultPlans(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range DefaultPlans() {
		assert.False(t, seen[p.Slug], "duplicate slug %s", p.Slug)
		seen[p.Slug] = true
		assert.NotEmpty(t, p.MonthlyPrice)
		assert.NotEmpty(t, p.YearlyPrice)
	}
}
