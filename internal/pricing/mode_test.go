package pricing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBillingMode(t *testing.T) {
	cases := map[string]BillingMode{
		"monthly": Monthly,
		"Month":   Monthly,
		" mo ":    Monthly,
		"yearly":  Yearly,
		"YEAR":    Yearly,
		"yr":      Yearly,
		"annual":  Yearly,
	}
	for in, want := range cases {
		got, err := ParseBillingMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseBillingMode("quarterly")
	assert.ErrorIs(t, err, ErrUnknownBillingMode)
	_, err = ParseBillingMode("")
	assert.ErrorIs(t, err, ErrUnknownBillingMode)
}

func TestModeFromChecked(t *testing.T) {
	assert.Equal(t, Monthly, ModeFromChecked(false))
	assert.Equal(t, Yearly, ModeFromChecked(true))
	assert.True(t, Yearly.Checked())
	assert.False(t, Monthly.Checked())
}

func TestBillingMode_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Mode BillingMode `json:"mode"`
	}{Yearly})
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"yearly"}`, string(b))

	var out struct {
		Mode BillingMode `json:"mode"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"mode":"monthly"}`), &out))
	assert.Equal(t, Monthly, out.Mode)
	assert.Error(t, json.Unmarshal([]byte(`{"mode":"weekly"}`), &out))
}
