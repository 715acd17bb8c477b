package services

import (
	"errors"
	"testing"
	"time"

	"github.com/biostackhq/biostack/internal/apperr"
	"github.com/biostackhq/biostack/internal/dto"
	"github.com/biostackhq/biostack/internal/models"
	"github.com/google/uuid"
)

func TestRecordViewDedupWindow(t *testing.T) {
	db := testDB(t)
	svc := NewAnalyticsService(db, testConfig())
	user := createUser(t, db, "owner")
	profile := createProfile(t, db, user.ID, "main")

	sess := memSession{}
	for i := 0; i < 3; i++ {
		if err := svc.RecordView(profile.ID, "203.0.113.9", sess); err != nil {
			t.Fatalf("record view %d: %v", i, err)
		}
	}

	var count int64
	db.Model(&models.ProfileView{}).Where("profile_id = ?", profile.ID).Count(&count)
	if count != 1 {
		t.Errorf("view count = %d, want 1 inside the dedup window", count)
	}
}

func TestRecordViewCountsAgainAfterWindow(t *testing.T) {
	db := testDB(t)
	cfg := testConfig()
	cfg.ViewDedupWindow = 30 * time.Minute
	svc := NewAnalyticsService(db, cfg)
	user := createUser(t, db, "owner")
	profile := createProfile(t, db, user.ID, "main")

	sess := memSession{}
	if err := svc.RecordView(profile.ID, "203.0.113.9", sess); err != nil {
		t.Fatalf("first view: %v", err)
	}

	// Age the session mark past the window.
	sess["viewed_"+profile.ID.String()] = time.Now().Add(-31 * time.Minute).Unix()

	if err := svc.RecordView(profile.ID, "203.0.113.9", sess); err != nil {
		t.Fatalf("second view: %v", err)
	}

	var count int64
	db.Model(&models.ProfileView{}).Where("profile_id = ?", profile.ID).Count(&count)
	if count != 2 {
		t.Errorf("view count = %d, want 2 after the window elapsed", count)
	}
}

func TestRecordViewSeparateProfiles(t *testing.T) {
	db := testDB(t)
	svc := NewAnalyticsService(db, testConfig())
	user := createUser(t, db, "owner")
	a := createProfile(t, db, user.ID, "a")
	b := createProfile(t, db, user.ID, "b")

	sess := memSession{}
	if err := svc.RecordView(a.ID, "203.0.113.9", sess); err != nil {
		t.Fatalf("view a: %v", err)
	}
	if err := svc.RecordView(b.ID, "203.0.113.9", sess); err != nil {
		t.Fatalf("view b: %v", err)
	}

	var count int64
	db.Model(&models.ProfileView{}).Count(&count)
	if count != 2 {
		t.Errorf("total views = %d, want one per profile", count)
	}
}

func TestRecordClick(t *testing.T) {
	db := testDB(t)
	svc := NewAnalyticsService(db, testConfig())
	sections := NewSectionService(db)
	user := createUser(t, db, "owner")
	profile := createProfile(t, db, user.ID, "main")

	section, err := sections.Upsert(profile.ID, &dto.SectionRequest{
		SectionType: models.SectionLinks, Title: "Blog", URL: "https://owner.dev",
	})
	if err != nil {
		t.Fatalf("seed section: %v", err)
	}

	// Clicks are never deduplicated.
	for i := 0; i < 2; i++ {
		target, err := svc.RecordClick(section.ID)
		if err != nil {
			t.Fatalf("record click %d: %v", i, err)
		}
		if target != "https://owner.dev" {
			t.Errorf("target = %q, want the stored URL", target)
		}
	}

	var count int64
	db.Model(&models.LinkClick{}).Where("section_id = ?", section.ID).Count(&count)
	if count != 2 {
		t.Errorf("click count = %d, want 2", count)
	}
}

func TestRecordClickMissingSection(t *testing.T) {
	db := testDB(t)
	svc := NewAnalyticsService(db, testConfig())

	_, err := svc.RecordClick(uuid.New())
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestRecordClickNonLinkSectionFallsBack(t *testing.T) {
	db := testDB(t)
	svc := NewAnalyticsService(db, testConfig())
	sections := NewSectionService(db)
	user := createUser(t, db, "owner")
	profile := createProfile(t, db, user.ID, "main")

	section, err := sections.Upsert(profile.ID, &dto.SectionRequest{
		SectionType: models.SectionAbout, Content: "hi",
	})
	if err != nil {
		t.Fatalf("seed section: %v", err)
	}

	target, err := svc.RecordClick(section.ID)
	if err != nil {
		t.Fatalf("record click: %v", err)
	}
	if target != "#" {
		t.Errorf("target = %q, want # when the payload has no URL", target)
	}
}

func TestClickThroughRate(t *testing.T) {
	tests := map[string]struct {
		views, clicks int64
		want          float64
	}{
		"no views yields zero":  {views: 0, clicks: 5, want: 0},
		"thirty percent":        {views: 10, clicks: 3, want: 30.0},
		"rounds to one decimal": {views: 3, clicks: 1, want: 33.3},
		"over one hundred":      {views: 2, clicks: 5, want: 250.0},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := clickThroughRate(tc.views, tc.clicks); got != tc.want {
				t.Errorf("clickThroughRate(%d, %d) = %v, want %v", tc.views, tc.clicks, got, tc.want)
			}
		})
	}
}

func TestAggregateZeroFillsDailySeries(t *testing.T) {
	db := testDB(t)
	svc := NewAnalyticsService(db, testConfig())
	user := createUser(t, db, "owner")
	profile := createProfile(t, db, user.ID, "main")

	// One view today, one two days ago, nothing in between.
	now := time.Now()
	views := []models.ProfileView{
		{ProfileID: profile.ID, CreatedAt: now},
		{ProfileID: profile.ID, CreatedAt: now.AddDate(0, 0, -2)},
	}
	for i := range views {
		if err := db.Create(&views[i]).Error; err != nil {
			t.Fatalf("seed view: %v", err)
		}
	}

	resp, err := svc.Aggregate(profile.ID, 7)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	if len(resp.DailyViews) != 7 {
		t.Fatalf("daily series length = %d, want 7", len(resp.DailyViews))
	}
	var total int64
	for _, day := range resp.DailyViews {
		total += day.Count
	}
	if total != 2 {
		t.Errorf("bucketed views = %d, want 2", total)
	}
	if resp.DailyViews[6].Count != 1 {
		t.Errorf("today's bucket = %d, want 1", resp.DailyViews[6].Count)
	}
	if resp.DailyViews[5].Count != 0 {
		t.Errorf("yesterday's bucket = %d, want 0", resp.DailyViews[5].Count)
	}
	if resp.ViewsToday != 1 || resp.ViewsYesterday != 0 || resp.ViewsDelta != 1 {
		t.Errorf("today/yesterday/delta = %d/%d/%d, want 1/0/1",
			resp.ViewsToday, resp.ViewsYesterday, resp.ViewsDelta)
	}
}

func TestAggregateMissingProfile(t *testing.T) {
	db := testDB(t)
	svc := NewAnalyticsService(db, testConfig())

	_, err := svc.Aggregate(uuid.New(), 7)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestCompletenessScore(t *testing.T) {
	themeID := uuid.New()
	tests := map[string]struct {
		profile      models.Profile
		sectionCount int64
		totalViews   int64
		want         int
	}{
		"empty profile": {
			profile: models.Profile{},
			want:    0,
		},
		"bio and one section": {
			profile:      models.Profile{Bio: "hello"},
			sectionCount: 1,
			want:         50,
		},
		"everything": {
			profile:      models.Profile{Bio: "hello", ImageURL: "/uploads/x.png", ThemeID: &themeID},
			sectionCount: 3,
			totalViews:   12,
			want:         100,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			score, checks := completeness(&tc.profile, tc.sectionCount, tc.totalViews)
			if score != tc.want {
				t.Errorf("score = %d, want %d", score, tc.want)
			}
			for _, check := range checks {
				if check.Passed && check.Suggestion != "" {
					t.Errorf("check %q passed but kept suggestion %q", check.Name, check.Suggestion)
				}
				if !check.Passed && check.Suggestion == "" {
					t.Errorf("check %q failed without a suggestion", check.Name)
				}
			}
		})
	}
}
