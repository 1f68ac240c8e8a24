package page

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vesaa/digestly/internal/pricing"
)

const fixture = `<!DOCTYPE html>
<html><body>
<label><input type="checkbox" id="billing-toggle"> Yearly</label>
<div class="plan">
  <span class="price highlight" data-monthly="$9" data-yearly="$90">$9</span><span class="period"> /mo</span>
</div>
<div class="plan">
  <span class="price" data-monthly="$0" data-yearly="$0">$0</span><span class="period"> /mo</span>
</div>
<footer>&copy; <span id="year">2020</span></footer>
</body></html>`

func parse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func render(t *testing.T, doc *Document) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, doc.Render(&buf))
	return buf.String()
}

func clock() time.Time { return time.Date(2031, time.June, 15, 0, 0, 0, 0, time.UTC) }

func TestLookups(t *testing.T) {
	doc := parse(t, fixture)

	year := doc.ElementByID("year")
	require.NotNil(t, year)
	assert.Equal(t, "2020", year.Text())

	assert.Nil(t, doc.ElementByID("missing"))
	assert.Nil(t, doc.ToggleByID("year"), "non-input ids are not toggles")
	require.NotNil(t, doc.ToggleByID("billing-toggle"))

	prices := doc.ElementsByClass("price")
	require.Len(t, prices, 2)
	v, ok := prices[0].Attr("data-yearly")
	assert.True(t, ok)
	assert.Equal(t, "$90", v)
	_, ok = prices[0].Attr("data-weekly")
	assert.False(t, ok)

	assert.Empty(t, doc.ElementsByClass("pric"))
}

func TestCheckbox_SetCheckedNotifiesOnChange(t *testing.T) {
	doc := parse(t, fixture)
	cb := doc.Checkbox("billing-toggle")
	require.NotNil(t, cb)
	assert.Same(t, cb, doc.Checkbox("billing-toggle"))

	var calls []bool
	cb.OnChange(func(checked bool) { calls = append(calls, checked) })

	cb.SetChecked(false)
	cb.SetChecked(true)
	cb.SetChecked(true)
	cb.SetChecked(false)

	assert.Equal(t, []bool{true, false}, calls)
	assert.False(t, cb.Checked())
}

func TestController_OverDocument(t *testing.T) {
	doc := parse(t, fixture)
	c := pricing.Initialize(doc, pricing.WithClock(clock))
	assert.Equal(t, pricing.Monthly, c.Mode())

	out := render(t, doc)
	assert.Contains(t, out, `<span id="year">2031</span>`)
	assert.Contains(t, out, `data-yearly="$90">$9</span><span class="period"> /mo</span>`)

	doc.Checkbox("billing-toggle").SetChecked(true)
	assert.Equal(t, pricing.Yearly, c.Mode())

	out = render(t, doc)
	assert.Contains(t, out, `data-yearly="$90">$90</span><span class="period"> /yr</span>`)
	assert.Contains(t, out, `checked=""`)

	doc.Checkbox("billing-toggle").SetChecked(false)
	assert.Contains(t, render(t, doc), `data-yearly="$90">$9</span><span class="period"> /mo</span>`)
}

func TestController_PrecheckedToggle(t *testing.T) {
	src := strings.Replace(fixture, `id="billing-toggle"`, `id="billing-toggle" checked`, 1)
	doc := parse(t, src)
	c := pricing.Initialize(doc, pricing.WithClock(clock))

	assert.Equal(t, pricing.Yearly, c.Mode())
	assert.Equal(t, "$90", doc.ElementsByClass("price")[0].Text())
}

func TestController_NoToggleInMarkup(t *testing.T) {
	src := strings.Replace(fixture, `<input type="checkbox" id="billing-toggle">`, ``, 1)
	doc := parse(t, src)
	c := pricing.Initialize(doc, pricing.WithClock(clock))

	assert.False(t, c.HasToggle())
	for _, el := range doc.ElementsByClass("period") {
		assert.Equal(t, " /mo", el.Text())
	}
}

func TestSetText_ReplacesChildren(t *testing.T) {
	doc := parse(t, `<p id="x">a<b>b</b>c</p>`)
	el := doc.ElementByID("x")
	el.SetText("<z>")
	assert.Equal(t, "<z>", el.Text())
	assert.Contains(t, render(t, doc), `<p id="x">&lt;z&gt;</p>`)
}
