package server

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vesaa/digestly/internal/config"
	"github.com/vesaa/digestly/internal/models"
	"github.com/vesaa/digestly/internal/page"
	"github.com/vesaa/digestly/internal/pricing"
	"github.com/vesaa/digestly/webui"
)

var pageTmpl = template.Must(template.ParseFS(webui.FS, "web/index.html"))

// now stamps the footer year; tests pin it.
var now = time.Now

// site holds the page settings set by Configure.
var site = struct {
	Title          string
	InviteURL      string
	DefaultBilling pricing.BillingMode
}{Title: "Digestly", InviteURL: "#"}

// Configure copies the settings the handlers need out of cfg.
func Configure(cfg *config.Config) error {
	mode, err := pricing.ParseBillingMode(cfg.DefaultBilling)
	if err != nil {
		return fmt.Errorf("default_billing: %w", err)
	}
	site.Title = cfg.SiteTitle
	site.InviteURL = cfg.BotInviteURL
	site.DefaultBilling = mode

	SetJWTSecret(cfg.JWTSecret)
	SetAdminCredentials(cfg.AdminUser, cfg.AdminPass, cfg.AdminPassHash)
	return nil
}

type pageData struct {
	Title     string
	InviteURL string
	Plans     []models.Plan
}

// RenderPage writes the landing page with prices shown for mode.
//
// The template is rendered with every price in its monthly form, parsed into
// a page.Document and handed to the pricing controller by applyMode.
func RenderPage(w io.Writer, plans []models.Plan, mode pricing.BillingMode) error {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, pageData{
		Title:     site.Title,
		InviteURL: site.InviteURL,
		Plans:     plans,
	}); err != nil {
		return fmt.Errorf("executing page template: %w", err)
	}

	doc, err := page.Parse(&buf)
	if err != nil {
		return err
	}
	applyMode(doc, mode)
	return doc.Render(w)
}

// applyMode initializes the pricing controller on doc and brings it to mode.
// With a billing checkbox the mode is reached by flipping it, so the final
// text comes from the toggle's change notification as it would in a
// browser; without one the controller is rendered directly. Exactly one
// price render is counted per call.
func applyMode(doc *page.Document, mode pricing.BillingMode) pricing.BillingMode {
	ctrl := pricing.Initialize(doc, pricing.WithClock(now))
	if cb := doc.Checkbox(pricing.DefaultSelectors.ToggleID); cb != nil {
		cb.SetChecked(mode.Checked())
	} else {
		ctrl.Apply(mode)
	}
	observeRender(ctrl.Mode())
	return ctrl.Mode()
}

// billingMode resolves ?billing=. The no-JS form sends a hidden "monthly"
// followed by the checkbox's "yearly" when checked, so the last value wins.
// A bare "?" is an unchecked submit; only a request with no query at all
// falls back to the configured default.
func billingMode(c *gin.Context) (pricing.BillingMode, error) {
	vals := c.QueryArray("billing")
	if len(vals) > 0 {
		return pricing.ParseBillingMode(vals[len(vals)-1])
	}
	if c.Request.URL.ForceQuery || c.Request.URL.RawQuery != "" {
		return pricing.Monthly, nil
	}
	return site.DefaultBilling, nil
}

// handleLanding serves the landing page.
//
//	GET /?billing=monthly|yearly
func handleLanding(c *gin.Context) {
	mode, err := billingMode(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	plans, err := ListPlans()
	if err != nil {
		c.String(http.StatusInternalServerError, "loading plans failed")
		return
	}

	var buf bytes.Buffer
	if err := RenderPage(&buf, plans, mode); err != nil {
		logFor(c).WithError(err).Error("rendering landing page")
		c.String(http.StatusInternalServerError, "rendering page failed")
		return
	}
	pageViews.WithLabelValues(mode.String()).Inc()
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// planEntry is a pricing.Element backed by a plan record instead of markup.
type planEntry struct {
	text  string
	attrs map[string]string
}

func (e *planEntry) Text() string     { return e.text }
func (e *planEntry) SetText(s string) { e.text = s }
func (e *planEntry) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// PlanPrice is one row of the /api/pricing response.
type PlanPrice struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Price        string `json:"price"`
	Period       string `json:"period"`
	MonthlyPrice string `json:"monthly_price"`
	YearlyPrice  string `json:"yearly_price"`
}

// PriceTable renders plans for mode through the same pure Render the page
// controller uses.
func PriceTable(plans []models.Plan, mode pricing.BillingMode) []PlanPrice {
	prices := make([]pricing.Element, len(plans))
	periods := make([]pricing.Element, len(plans))
	for i, p := range plans {
		prices[i] = &planEntry{attrs: map[string]string{
			pricing.AttrMonthly: p.MonthlyPrice,
			pricing.AttrYearly:  p.YearlyPrice,
		}}
		periods[i] = &planEntry{}
	}
	pricing.Render(pricing.DisplayState{Prices: prices, Periods: periods}, mode)
	observeRender(mode)

	out := make([]PlanPrice, len(plans))
	for i, p := range plans {
		out[i] = PlanPrice{
			Slug:         p.Slug,
			Name:         p.Name,
			Price:        prices[i].Text(),
			Period:       periods[i].Text(),
			MonthlyPrice: p.MonthlyPrice,
			YearlyPrice:  p.YearlyPrice,
		}
	}
	return out
}
