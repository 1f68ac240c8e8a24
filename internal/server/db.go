// Package server manages the Digestly plan catalog.
// It initializes GORM with SQLite and seeds default plans on first start.
package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vesaa/digestly/internal/config"
	"github.com/vesaa/digestly/internal/models"
)

var DB *gorm.DB

// ErrPlanNotFound is returned when a slug matches no plan.
var ErrPlanNotFound = errors.New("plan not found")

var dbLog = logrus.WithField("component", "db")

// InitDB opens the database, runs AutoMigrate and seeds an empty catalog.
func InitDB(cfg *config.Config) error {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DBPath)
	default:
		return fmt.Errorf("unsupported db_driver %q (use 'sqlite')", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	if err := db.AutoMigrate(&models.Plan{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	DB = db
	dbLog.WithField("path", cfg.DBPath).Infof("opened %s", cfg.DBDriver)
	return seedPlans()
}

// seedPlans inserts models.DefaultPlans when the catalog is empty.
func seedPlans() error {
	var n int64
	if err := DB.Model(&models.Plan{}).Count(&n).Error; err != nil {
		return fmt.Errorf("counting plans: %w", err)
	}
	if n > 0 {
		return nil
	}
	plans := models.DefaultPlans()
	if err := DB.Create(&plans).Error; err != nil {
		return fmt.Errorf("seeding plans: %w", err)
	}
	dbLog.Infof("seeded %d default plans", len(plans))
	return nil
}

// PlanPayload is the admin API body for creating or replacing a plan.
type PlanPayload struct {
	Name         string `json:"name" binding:"required"`
	Tagline      string `json:"tagline"`
	MonthlyPrice string `json:"monthly_price" binding:"required"`
	YearlyPrice  string `json:"yearly_price" binding:"required"`
	Features     string `json:"features"`
	Highlighted  bool   `json:"highlighted"`
	SortOrder    int    `json:"sort_order"`
}

// ListPlans returns the catalog in display order.
func ListPlans() ([]models.Plan, error) {
	var plans []models.Plan
	if err := DB.Order("sort_order, id").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// UpsertPlan creates or updates the plan identified by slug.
func UpsertPlan(slug string, p PlanPayload) (*models.Plan, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, errors.New("slug is required")
	}
	if strings.TrimSpace(p.Name) == "" || p.MonthlyPrice == "" || p.YearlyPrice == "" {
		return nil, errors.New("name, monthly_price and yearly_price are required")
	}

	var plan models.Plan
	result := DB.Where("slug = ?", slug).First(&plan)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		plan = models.Plan{
			Slug:         slug,
			Name:         p.Name,
			Tagline:      p.Tagline,
			MonthlyPrice: p.MonthlyPrice,
			YearlyPrice:  p.YearlyPrice,
			Features:     p.Features,
			Highlighted:  p.Highlighted,
			SortOrder:    p.SortOrder,
		}
		if err := DB.Create(&plan).Error; err != nil {
			return nil, err
		}
		dbLog.WithField("slug", slug).Info("plan created")
	case result.Error != nil:
		return nil, result.Error
	default:
		// map form so zero values (false, 0, "") are written too
		err := DB.Model(&plan).Updates(map[string]any{
			"name":          p.Name,
			"tagline":       p.Tagline,
			"monthly_price": p.MonthlyPrice,
			"yearly_price":  p.YearlyPrice,
			"features":      p.Features,
			"highlighted":   p.Highlighted,
			"sort_order":    p.SortOrder,
		}).Error
		if err != nil {
			return nil, err
		}
		dbLog.WithField("slug", slug).Info("plan updated")
	}
	return &plan, nil
}

// DeletePlan removes a plan by slug.
func DeletePlan(slug string) error {
	// hard delete: the slug index is unique, soft-deleted rows would block re-creation
	res := DB.Unscoped().Where("slug = ?", strings.ToLower(slug)).Delete(&models.Plan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	dbLog.WithField("slug", slug).Info("plan deleted")
	return nil
}
