package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/biostackhq/biostack/internal/apperr"
	"github.com/biostackhq/biostack/internal/config"
	"github.com/biostackhq/biostack/internal/dto"
	"github.com/biostackhq/biostack/internal/models"
	"github.com/biostackhq/biostack/internal/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Completeness weights, out of 100.
const (
	completenessImage   = 20
	completenessBio     = 20
	completenessSection = 30
	completenessTheme   = 10
	completenessView    = 20
)

// AnalyticsService records view/click events and aggregates them for the
// owner dashboard.
type AnalyticsService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAnalyticsService(db *gorm.DB, cfg *config.Config) *AnalyticsService {
	return &AnalyticsService{db: db, cfg: cfg}
}

// RecordView counts a profile view unless this visitor's session already
// carries a counted-view mark inside the dedup window. This is "at most one
// counted view per session per window per profile" — an approximation, not
// unique-visitor counting.
func (s *AnalyticsService) RecordView(profileID uuid.UUID, clientIP string, v session.Values) error {
	now := time.Now()
	if session.ViewedWithin(v, profileID, now, s.cfg.ViewDedupWindow) {
		return nil
	}

	view := models.ProfileView{ProfileID: profileID, IPAddress: clientIP}
	if err := s.db.Create(&view).Error; err != nil {
		return err
	}
	session.MarkViewed(v, profileID, now)
	return nil
}

// RecordClick inserts a click event unconditionally and returns the target
// URL stored in the section payload, or a placeholder when absent, for the
// redirect.
func (s *AnalyticsService) RecordClick(sectionID uuid.UUID) (string, error) {
	var section models.ProfileSection
	err := s.db.First(&section, "id = ?", sectionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("%w: section", apperr.ErrNotFound)
	}
	if err != nil {
		return "", err
	}

	click := models.LinkClick{SectionID: section.ID}
	if err := s.db.Create(&click).Error; err != nil {
		return "", err
	}

	target := section.LinkURL()
	if target == "" {
		target = "#"
	}
	return target, nil
}

// Aggregate computes the dashboard metrics for a profile over the trailing
// windowDays days (including today): totals, click-through rate, zero-filled
// per-day series, day-over-day deltas and the completeness score.
func (s *AnalyticsService) Aggregate(profileID uuid.UUID, windowDays int) (*dto.DashboardResponse, error) {
	if windowDays <= 0 {
		windowDays = 7
	}

	var profile models.Profile
	err := s.db.First(&profile, "id = ?", profileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: profile", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	var totalViews int64
	if err := s.db.Model(&models.ProfileView{}).
		Where("profile_id = ?", profileID).
		Count(&totalViews).Error; err != nil {
		return nil, err
	}

	// Clicks join through the profile's sections.
	sectionIDs := s.db.Model(&models.ProfileSection{}).Select("id").Where("profile_id = ?", profileID)
	var totalClicks int64
	if err := s.db.Model(&models.LinkClick{}).
		Where("section_id IN (?)", sectionIDs).
		Count(&totalClicks).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	windowStart := today.AddDate(0, 0, -(windowDays - 1))

	var views []models.ProfileView
	if err := s.db.Where("profile_id = ? AND created_at >= ?", profileID, windowStart).
		Find(&views).Error; err != nil {
		return nil, err
	}

	var clicks []models.LinkClick
	if err := s.db.Where("section_id IN (?) AND created_at >= ?", sectionIDs, windowStart).
		Find(&clicks).Error; err != nil {
		return nil, err
	}

	dailyViews := dailyBuckets(windowStart, windowDays)
	for _, view := range views {
		bumpBucket(dailyViews, view.CreatedAt)
	}
	dailyClicks := dailyBuckets(windowStart, windowDays)
	for _, click := range clicks {
		bumpBucket(dailyClicks, click.CreatedAt)
	}

	viewsToday, viewsYesterday := lastTwo(dailyViews)
	clicksToday, clicksYesterday := lastTwo(dailyClicks)

	var sectionCount int64
	if err := s.db.Model(&models.ProfileSection{}).
		Where("profile_id = ?", profileID).
		Count(&sectionCount).Error; err != nil {
		return nil, err
	}

	score, checks := completeness(&profile, sectionCount, totalViews)

	return &dto.DashboardResponse{
		TotalViews:       totalViews,
		TotalClicks:      totalClicks,
		ClickThroughRate: clickThroughRate(totalViews, totalClicks),
		DailyViews:       dailyViews,
		DailyClicks:      dailyClicks,
		ViewsToday:       viewsToday,
		ViewsYesterday:   viewsYesterday,
		ViewsDelta:       viewsToday - viewsYesterday,
		ClicksToday:      clicksToday,
		ClicksYesterday:  clicksYesterday,
		ClicksDelta:      clicksToday - clicksYesterday,
		Completeness:     score,
		Checks:           checks,
	}, nil
}

// clickThroughRate is clicks/views*100 rounded to one decimal; 0 when there
// are no views.
func clickThroughRate(views, clicks int64) float64 {
	if views == 0 {
		return 0
	}
	return math.Round(float64(clicks)/float64(views)*1000) / 10
}

func dailyBuckets(start time.Time, days int) []dto.DailyCount {
	buckets := make([]dto.DailyCount, days)
	for i := 0; i < days; i++ {
		buckets[i] = dto.DailyCount{Date: start.AddDate(0, 0, i).Format(dateLayout)}
	}
	return buckets
}

func bumpBucket(buckets []dto.DailyCount, at time.Time) {
	key := at.Format(dateLayout)
	for i := range buckets {
		if buckets[i].Date == key {
			buckets[i].Count++
			return
		}
	}
}

func lastTwo(buckets []dto.DailyCount) (today, yesterday int64) {
	if n := len(buckets); n >= 1 {
		today = buckets[n-1].Count
		if n >= 2 {
			yesterday = buckets[n-2].Count
		}
	}
	return
}

func completeness(profile *models.Profile, sectionCount, totalViews int64) (int, []dto.CompletenessCheck) {
	checks := []dto.CompletenessCheck{
		{Name: "profile_image", Points: completenessImage, Passed: profile.ImageURL != "", Suggestion: "Add a profile image"},
		{Name: "bio", Points: completenessBio, Passed: profile.Bio != "", Suggestion: "Write a short bio"},
		{Name: "sections", Points: completenessSection, Passed: sectionCount > 0, Suggestion: "Add your first section"},
		{Name: "theme", Points: completenessTheme, Passed: profile.ThemeID != nil, Suggestion: "Pick a theme"},
		{Name: "views", Points: completenessView, Passed: totalViews > 0, Suggestion: "Share your profile link"},
	}

	score := 0
	for i := range checks {
		if checks[i].Passed {
			score += checks[i].Points
			checks[i].Suggestion = ""
		}
	}
	return score, checks
}
