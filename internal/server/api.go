// Package server provides the Digestly Gin HTTP surface.
//
//	Public: GET /, GET /api/pricing, GET /api/health, GET /metrics, /static/*
//	Admin (JWT): /api/admin/plans
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vesaa/digestly/internal/sysinfo"
)

// NewEngine builds the gin engine with middleware and every route.
func NewEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(), MetricsMiddleware())
	RegisterRoutes(r)
	RegisterStaticFiles(r)
	return r
}

// RegisterRoutes wires up the page and API routes on the given engine.
func RegisterRoutes(r *gin.Engine) {
	r.GET("/", handleLanding)
	r.GET("/metrics", metricsHandler())

	api := r.Group("/api")

	// ── Public endpoints ──────────────────────────────────────────────────────
	api.POST("/login", handleLogin)
	api.GET("/pricing", handlePricing)
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC(),
			"host":   sysinfo.Collect(),
		})
	})

	// ── JWT-protected endpoints ───────────────────────────────────────────────
	admin := api.Group("/admin", JWTMiddleware())
	{
		admin.GET("/plans", handleListPlans)
		admin.PUT("/plans/:slug", handleUpsertPlan)
		admin.DELETE("/plans/:slug", handleDeletePlan)
	}
}

// ── Handlers ──────────────────────────────────────────────────────────────────

// handleLogin accepts username + password and returns a signed JWT.
//
//	POST /api/login
//	Body: { "username": "admin", "password": "admin" }
func handleLogin(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		return
	}

	if !checkCredentials(body.Username, body.Password) {
		logFor(c).WithField("username", body.Username).Warn("login rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := GenerateJWT(body.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": 86400, // seconds
		"type":       "Bearer",
	})
}

// handlePricing returns the price table for one billing mode.
//
//	GET /api/pricing?billing=monthly|yearly
func handlePricing(c *gin.Context) {
	mode, err := billingMode(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	plans, err := ListPlans()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mode":   mode,
		"period": mode.Period(),
		"plans":  PriceTable(plans, mode),
	})
}

func handleListPlans(c *gin.Context) {
	plans, err := ListPlans()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": plans})
}

// handleUpsertPlan creates or replaces a plan.
//
//	PUT /api/admin/plans/:slug
//	Body: { "name": "Pro", "monthly_price": "$9", "yearly_price": "$90", ... }
func handleUpsertPlan(c *gin.Context) {
	var payload PlanPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	plan, err := UpsertPlan(c.Param("slug"), payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": plan})
}

func handleDeletePlan(c *gin.Context) {
	slug := c.Param("slug")
	if err := DeletePlan(slug); err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": slug})
}
