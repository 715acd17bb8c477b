package services

import (
	"errors"
	"testing"

	"github.com/biostackhq/biostack/internal/dto"
	"github.com/biostackhq/biostack/internal/models"
)

func registerTestUser(t *testing.T, svc *AuthService) *dto.AuthResponse {
	t.Helper()
	resp, err := svc.Register(&dto.RegisterRequest{
		Email:    "owner@example.com",
		Username: "owner",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return resp
}

func TestRegisterCreatesDependentRecords(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, testConfig())

	resp := registerTestUser(t, svc)
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("register returned empty tokens")
	}

	var detail models.UserDetail
	if err := db.Where("user_id = ?", resp.User.ID).First(&detail).Error; err != nil {
		t.Errorf("detail record missing: %v", err)
	}

	var sub models.Subscription
	if err := db.Where("user_id = ?", resp.User.ID).First(&sub).Error; err != nil {
		t.Fatalf("subscription record missing: %v", err)
	}
	if sub.Plan != models.PlanFree {
		t.Errorf("plan = %q, want FREE", sub.Plan)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, testConfig())
	registerTestUser(t, svc)

	_, err := svc.Register(&dto.RegisterRequest{
		Email:    "owner@example.com",
		Username: "someone-else",
		Password: "correct-horse",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("error = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, testConfig())
	registerTestUser(t, svc)

	_, err := svc.Register(&dto.RegisterRequest{
		Email:    "elsewhere@example.com",
		Username: "owner",
		Password: "correct-horse",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("error = %v, want ErrUsernameTaken", err)
	}
}

func TestRegisterRejectsBadUsernames(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, testConfig())

	for _, username := range []string{"ab", "Has Spaces", "UPPER", "-leading"} {
		_, err := svc.Register(&dto.RegisterRequest{
			Email:    username + "@example.com",
			Username: username,
			Password: "correct-horse",
		})
		if err == nil {
			t.Errorf("username %q accepted, want rejection", username)
		}
	}
}

func TestLogin(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, testConfig())
	registerTestUser(t, svc)

	resp, err := svc.Login(&dto.LoginRequest{Email: "owner@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.User.Username != "owner" {
		t.Errorf("username = %q", resp.User.Username)
	}

	_, err = svc.Login(&dto.LoginRequest{Email: "owner@example.com", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, testConfig())
	first := registerTestUser(t, svc)

	second, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: first.RefreshToken})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if second.RefreshToken == first.RefreshToken {
		t.Error("refresh did not rotate the token")
	}

	// The old token is revoked after rotation.
	if _, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: first.RefreshToken}); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("error = %v, want ErrInvalidToken for a rotated token", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, testConfig())
	resp := registerTestUser(t, svc)

	if err := svc.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken}); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("error = %v, want ErrInvalidToken after logout", err)
	}
}

func TestDeleteAccountCascades(t *testing.T) {
	db := testDB(t)
	cfg := testConfig()
	authSvc := NewAuthService(db, cfg)
	profileSvc := newProfileService(db, cfg)
	sectionSvc := NewSectionService(db)

	resp := registerTestUser(t, authSvc)
	profile, err := profileSvc.Create(resp.User.ID, "Main", "")
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if _, err := sectionSvc.Upsert(profile.ID, &dto.SectionRequest{
		SectionType: models.SectionAbout, Content: "hi",
	}); err != nil {
		t.Fatalf("create section: %v", err)
	}

	if err := authSvc.DeleteAccount(resp.User.ID, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}

	if err := authSvc.DeleteAccount(resp.User.ID, "correct-horse"); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	var profiles, sections, subs int64
	db.Model(&models.Profile{}).Where("user_id = ?", resp.User.ID).Count(&profiles)
	db.Model(&models.ProfileSection{}).Count(&sections)
	db.Model(&models.Subscription{}).Where("user_id = ?", resp.User.ID).Count(&subs)
	if profiles != 0 || sections != 0 || subs != 0 {
		t.Errorf("remaining rows after account deletion: %d profiles, %d sections, %d subscriptions",
			profiles, sections, subs)
	}
}

func TestUpdateDetail(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, testConfig())
	resp := registerTestUser(t, svc)

	detail, err := svc.UpdateDetail(resp.User.ID, &dto.UserDetailRequest{
		FullName: "The Owner",
		Location: "Rotterdam",
	})
	if err != nil {
		t.Fatalf("update detail: %v", err)
	}
	if detail.FullName != "The Owner" || detail.Location != "Rotterdam" {
		t.Errorf("detail = %+v, want updated fields", detail)
	}

	got, err := svc.GetDetail(resp.User.ID)
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	if got.Location != "Rotterdam" {
		t.Errorf("location = %q", got.Location)
	}
}
