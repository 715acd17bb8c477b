package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/biostackhq/biostack/internal/apperr"
	"github.com/biostackhq/biostack/internal/config"
	"github.com/biostackhq/biostack/internal/dto"
	"github.com/biostackhq/biostack/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newProfileService(db *gorm.DB, cfg *config.Config) *ProfileService {
	return NewProfileService(db, cfg, NewSubscriptionService(db))
}

func TestCreateProfileEnforcesQuota(t *testing.T) {
	db := testDB(t)
	cfg := testConfig()
	cfg.FreeProfileLimit = 2
	svc := newProfileService(db, cfg)
	user := createUser(t, db, "owner")

	for i := 0; i < 2; i++ {
		if _, err := svc.Create(user.ID, "Work", ""); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	_, err := svc.Create(user.ID, "One Too Many", "")
	if !errors.Is(err, apperr.ErrQuotaExceeded) {
		t.Fatalf("error = %v, want ErrQuotaExceeded", err)
	}
}

func TestCreateProfileProQuota(t *testing.T) {
	db := testDB(t)
	cfg := testConfig()
	cfg.FreeProfileLimit = 1
	cfg.ProProfileLimit = 3
	svc := newProfileService(db, cfg)
	user := createUser(t, db, "owner")

	sub := models.Subscription{UserID: user.ID, Plan: models.PlanPro, Status: "active"}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("seed subscription: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(user.ID, "Side Project", ""); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	if _, err := svc.Create(user.ID, "Over", ""); !errors.Is(err, apperr.ErrQuotaExceeded) {
		t.Fatalf("error = %v, want ErrQuotaExceeded", err)
	}
}

func TestCreateProfileStartsPrivate(t *testing.T) {
	db := testDB(t)
	svc := newProfileService(db, testConfig())
	user := createUser(t, db, "owner")

	profile, err := svc.Create(user.ID, "My Page", "hello")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if profile.Visibility != models.VisibilityPrivate {
		t.Errorf("visibility = %q, want PRIVATE", profile.Visibility)
	}
	if profile.Slug != "my-page" {
		t.Errorf("slug = %q, want my-page", profile.Slug)
	}
}

func TestSlugCollisionPerUserScope(t *testing.T) {
	db := testDB(t)
	svc := newProfileService(db, testConfig())
	user := createUser(t, db, "owner")

	first, _ := svc.Create(user.ID, "My Page", "")
	second, err := svc.Create(user.ID, "My Page", "")
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	third, err := svc.Create(user.ID, "My Page", "")
	if err != nil {
		t.Fatalf("third create: %v", err)
	}

	if first.Slug != "my-page" || second.Slug != "my-page-2" || third.Slug != "my-page-3" {
		t.Errorf("slugs = %q %q %q, want counter suffixes", first.Slug, second.Slug, third.Slug)
	}

	// Another user is free to reuse the same slug in per-user scope.
	other := createUser(t, db, "other")
	theirs, err := svc.Create(other.ID, "My Page", "")
	if err != nil {
		t.Fatalf("other create: %v", err)
	}
	if theirs.Slug != "my-page" {
		t.Errorf("other user's slug = %q, want my-page", theirs.Slug)
	}
}

func TestSlugCollisionGlobalScope(t *testing.T) {
	db := testDB(t)
	cfg := testConfig()
	cfg.SlugScope = config.SlugScopeGlobal
	svc := newProfileService(db, cfg)
	user := createUser(t, db, "owner")
	other := createUser(t, db, "other")

	first, _ := svc.Create(user.ID, "My Page", "")
	theirs, err := svc.Create(other.ID, "My Page", "")
	if err != nil {
		t.Fatalf("other create: %v", err)
	}

	if theirs.Slug == first.Slug {
		t.Fatalf("global scope allowed duplicate slug %q", theirs.Slug)
	}
	if !strings.HasPrefix(theirs.Slug, "my-page-") {
		t.Errorf("slug = %q, want a my-page- random suffix", theirs.Slug)
	}
}

func TestSlugFallbackForUnsluggableName(t *testing.T) {
	db := testDB(t)
	svc := newProfileService(db, testConfig())
	user := createUser(t, db, "owner")

	profile, err := svc.Create(user.ID, "!!!", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if profile.Slug != "profile" {
		t.Errorf("slug = %q, want fallback profile", profile.Slug)
	}
}

func TestSetActiveRejectsForeignProfile(t *testing.T) {
	db := testDB(t)
	svc := newProfileService(db, testConfig())
	user := createUser(t, db, "owner")
	other := createUser(t, db, "other")
	theirs := createProfile(t, db, other.ID, "theirs")

	sess := memSession{}
	err := svc.SetActive(sess, user.ID, theirs.ID)
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("error = %v, want ErrForbidden", err)
	}
	if _, bound := sess["active_profile_id"]; bound {
		t.Error("session bound a foreign profile")
	}
}

func TestGetActiveClearsStaleBinding(t *testing.T) {
	db := testDB(t)
	svc := newProfileService(db, testConfig())
	user := createUser(t, db, "owner")
	profile := createProfile(t, db, user.ID, "main")

	sess := memSession{}
	if err := svc.SetActive(sess, user.ID, profile.ID); err != nil {
		t.Fatalf("set active: %v", err)
	}

	// Simulate deletion out from under the session.
	if err := db.Delete(&models.Profile{}, "id = ?", profile.ID).Error; err != nil {
		t.Fatalf("delete profile: %v", err)
	}

	got, err := svc.GetActive(sess, user.ID)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if got != nil {
		t.Errorf("active = %+v, want nil after the profile vanished", got)
	}
	if _, bound := sess["active_profile_id"]; bound {
		t.Error("stale binding was not cleared")
	}
}

func TestDeleteActiveProfileConflicts(t *testing.T) {
	db := testDB(t)
	svc := newProfileService(db, testConfig())
	user := createUser(t, db, "owner")
	profile := createProfile(t, db, user.ID, "main")

	sess := memSession{}
	if err := svc.SetActive(sess, user.ID, profile.ID); err != nil {
		t.Fatalf("set active: %v", err)
	}

	err := svc.Delete(sess, user.ID, profile.ID)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("error = %v, want ErrConflict", err)
	}

	var count int64
	db.Model(&models.Profile{}).Where("id = ?", profile.ID).Count(&count)
	if count != 1 {
		t.Error("active profile was deleted despite the conflict")
	}
}

func TestDeleteProfileCascades(t *testing.T) {
	db := testDB(t)
	svc := newProfileService(db, testConfig())
	sections := NewSectionService(db)
	user := createUser(t, db, "owner")
	profile := createProfile(t, db, user.ID, "main")

	section, err := sections.Upsert(profile.ID, &dto.SectionRequest{
		SectionType: models.SectionLinks, Title: "GitHub", URL: "https://github.com/owner",
	})
	if err != nil {
		t.Fatalf("seed section: %v", err)
	}
	if err := db.Create(&models.LinkClick{SectionID: section.ID}).Error; err != nil {
		t.Fatalf("seed click: %v", err)
	}
	if err := db.Create(&models.ProfileView{ProfileID: profile.ID, CreatedAt: time.Now()}).Error; err != nil {
		t.Fatalf("seed view: %v", err)
	}

	if err := svc.Delete(memSession{}, user.ID, profile.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var sectionCount, clickCount, viewCount int64
	db.Model(&models.ProfileSection{}).Where("profile_id = ?", profile.ID).Count(&sectionCount)
	db.Model(&models.LinkClick{}).Where("section_id = ?", section.ID).Count(&clickCount)
	db.Model(&models.ProfileView{}).Where("profile_id = ?", profile.ID).Count(&viewCount)
	if sectionCount != 0 || clickCount != 0 || viewCount != 0 {
		t.Errorf("remaining rows = %d sections, %d clicks, %d views; want all 0", sectionCount, clickCount, viewCount)
	}
}

func TestUpdateSlugRequiresPro(t *testing.T) {
	db := testDB(t)
	svc := newProfileService(db, testConfig())
	user := createUser(t, db, "owner")
	profile := createProfile(t, db, user.ID, "main")

	_, err := svc.UpdateSlug(user.ID, profile.ID, "vanity")
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("error = %v, want ErrForbidden for a free plan", err)
	}

	sub := models.Subscription{UserID: user.ID, Plan: models.PlanPro, Status: "active"}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("seed subscription: %v", err)
	}

	updated, err := svc.UpdateSlug(user.ID, profile.ID, "Vanity URL")
	if err != nil {
		t.Fatalf("update slug: %v", err)
	}
	if updated.Slug != "vanity-url" {
		t.Errorf("slug = %q, want vanity-url (slugified)", updated.Slug)
	}
}

func TestUpdateSlugConflict(t *testing.T) {
	db := testDB(t)
	svc := newProfileService(db, testConfig())
	user := createUser(t, db, "owner")
	createProfile(t, db, user.ID, "taken")
	profile := createProfile(t, db, user.ID, "main")

	sub := models.Subscription{UserID: user.ID, Plan: models.PlanPro, Status: "active"}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("seed subscription: %v", err)
	}

	_, err := svc.UpdateSlug(user.ID, profile.ID, "taken")
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("error = %v, want ErrConflict", err)
	}
}

func TestUpdateRejectsBadVisibility(t *testing.T) {
	db := testDB(t)
	svc := newProfileService(db, testConfig())
	user := createUser(t, db, "owner")
	profile := createProfile(t, db, user.ID, "main")

	_, err := svc.Update(user.ID, profile.ID, "Name", "", "UNLISTED")
	if _, ok := apperr.AsValidation(err); !ok {
		t.Fatalf("error = %v, want validation error", err)
	}
}

func TestSetThemePremiumRequiresPro(t *testing.T) {
	db := testDB(t)
	svc := newProfileService(db, testConfig())
	user := createUser(t, db, "owner")
	profile := createProfile(t, db, user.ID, "main")

	theme := models.Theme{Name: "Gradient", Slug: "gradient", TemplateName: "themes/gradient", IsPremium: true}
	if err := db.Create(&theme).Error; err != nil {
		t.Fatalf("seed theme: %v", err)
	}

	err := svc.SetTheme(user.ID, profile.ID, theme.ID)
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("error = %v, want ErrForbidden for a premium theme on a free plan", err)
	}

	sub := models.Subscription{UserID: user.ID, Plan: models.PlanPro, Status: "active"}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("seed subscription: %v", err)
	}
	if err := svc.SetTheme(user.ID, profile.ID, theme.ID); err != nil {
		t.Fatalf("set theme as pro: %v", err)
	}
}

func TestSetThemeUnknownTheme(t *testing.T) {
	db := testDB(t)
	svc := newProfileService(db, testConfig())
	user := createUser(t, db, "owner")
	profile := createProfile(t, db, user.ID, "main")

	err := svc.SetTheme(user.ID, profile.ID, uuid.New())
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
