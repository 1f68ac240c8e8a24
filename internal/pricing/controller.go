package pricing

import (
	"strconv"
	"time"
)

// Attribute names carried by every price element.
const (
	AttrMonthly = "data-monthly"
	AttrYearly  = "data-yearly"
)

// Element is a node of the host document with text and string attributes.
type Element interface {
	Text() string
	SetText(string)
	Attr(name string) (string, bool)
}

// Toggle is the billing checkbox. Handlers registered with OnChange run
// synchronously whenever the checked state changes.
type Toggle interface {
	Element
	Checked() bool
	OnChange(func(checked bool))
}

// Document is the lookup surface the controller needs from its host.
// Lookups that find nothing return nil.
type Document interface {
	ElementByID(id string) Element
	ToggleByID(id string) Toggle
	ElementsByClass(class string) []Element
}

// Selectors names the elements the controller looks for.
type Selectors struct {
	YearID   string
	ToggleID string
	Price    string
	Period   string
}

// DefaultSelectors match the markup shipped in webui.
var DefaultSelectors = Selectors{
	YearID:   "year",
	ToggleID: "billing-toggle",
	Price:    "price",
	Period:   "period",
}

// DisplayState is the set of elements a render writes to.
type DisplayState struct {
	Prices  []Element
	Periods []Element
}

// Render writes the mode's price into every price element and the mode's
// label into every period element. Attribute values are copied verbatim.
// A price element without the needed attribute keeps its text.
func Render(state DisplayState, mode BillingMode) {
	attr := AttrMonthly
	if mode == Yearly {
		attr = AttrYearly
	}
	for _, el := range state.Prices {
		if v, ok := el.Attr(attr); ok {
			el.SetText(v)
		}
	}
	label := mode.Period()
	for _, el := range state.Periods {
		el.SetText(label)
	}
}

// Option configures Initialize.
type Option func(*Controller)

// WithClock replaces time.Now for the year stamp.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithSelectors overrides DefaultSelectors.
func WithSelectors(s Selectors) Option {
	return func(c *Controller) { c.sel = s }
}

// WithRenderHook registers fn to run after every render.
func WithRenderHook(fn func(BillingMode)) Option {
	return func(c *Controller) { c.hooks = append(c.hooks, fn) }
}

// Controller owns the display state of one document for its lifetime.
type Controller struct {
	state  DisplayState
	toggle Toggle
	mode   BillingMode
	now    func() time.Time
	sel    Selectors
	hooks  []func(BillingMode)
}

// Initialize stamps the year, renders once using the toggle's current state
// (Monthly when there is no toggle) and subscribes to toggle changes.
// Missing elements are skipped; Initialize never fails.
func Initialize(doc Document, opts ...Option) *Controller {
	c := &Controller{now: time.Now, sel: DefaultSelectors}
	for _, opt := range opts {
		opt(c)
	}

	if year := doc.ElementByID(c.sel.YearID); year != nil {
		year.SetText(strconv.Itoa(c.now().Year()))
	}

	c.toggle = doc.ToggleByID(c.sel.ToggleID)
	c.state = DisplayState{
		Prices:  doc.ElementsByClass(c.sel.Price),
		Periods: doc.ElementsByClass(c.sel.Period),
	}

	checked := false
	if c.toggle != nil {
		checked = c.toggle.Checked()
	}
	c.Apply(ModeFromChecked(checked))

	if c.toggle != nil {
		c.toggle.OnChange(func(checked bool) {
			c.Apply(ModeFromChecked(checked))
		})
	}
	return c
}

// Apply renders mode into the controller's display state.
func (c *Controller) Apply(mode BillingMode) {
	Render(c.state, mode)
	c.mode = mode
	for _, fn := range c.hooks {
		fn(mode)
	}
}

// Mode is the most recently rendered billing mode.
func (c *Controller) Mode() BillingMode { return c.mode }

// State exposes the elements the controller renders into.
func (c *Controller) State() DisplayState { return c.state }

// HasToggle reports whether the document carried a billing toggle.
func (c *Controller) HasToggle() bool { return c.toggle != nil }
