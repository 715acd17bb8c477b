package database

import (
	"errors"
	"log/slog"

	"github.com/biostackhq/biostack/internal/models"
	"gorm.io/gorm"
)

// Theme catalog. Themes are reference data: runtime code only ever reads them,
// so seeding is idempotent on slug.
var themeCatalog = []models.Theme{
	{Name: "Classic", Slug: "classic", TemplateName: "themes/classic", ThumbnailURL: "/static/themes/classic.png"},
	{Name: "Minimal", Slug: "minimal", TemplateName: "themes/minimal", ThumbnailURL: "/static/themes/minimal.png"},
	{Name: "Midnight", Slug: "midnight", TemplateName: "themes/midnight", ThumbnailURL: "/static/themes/midnight.png"},
	{Name: "Gradient", Slug: "gradient", TemplateName: "themes/gradient", ThumbnailURL: "/static/themes/gradient.png", IsPremium: true},
	{Name: "Terminal", Slug: "terminal", TemplateName: "themes/terminal", ThumbnailURL: "/static/themes/terminal.png", IsPremium: true},
}

// SeedThemes inserts any catalog theme that is not already present.
func SeedThemes(db *gorm.DB) error {
	for _, theme := range themeCatalog {
		var existing models.Theme
		err := db.Where("slug = ?", theme.Slug).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&theme).Error; err != nil {
			return err
		}
		slog.Info("theme seeded", "slug", theme.Slug)
	}
	return nil
}
