package store

import (
	"context"
	"testing"

	"github.com/hkanaan/sijill/internal/kv"
	"github.com/hkanaan/sijill/internal/model"
)

func TestLoadSettingsDefaults(t *testing.T) {
	db := kv.NewTestDB(t)
	ctx := context.Background()

	s, err := LoadSettings(ctx, db)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}

	b := s.Branding()
	if b.AppName != model.DefaultAppName {
		t.Errorf("expected default app name, got %q", b.AppName)
	}
	if s.AdminUsername() != model.DefaultAdminUsername {
		t.Errorf("expected default admin username, got %q", s.AdminUsername())
	}
	if !s.Authenticate(model.DefaultAdminUsername, model.DefaultAdminPassword) {
		t.Error("expected default credentials to authenticate")
	}
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	db := kv.NewTestDB(t)
	s, _ := LoadSettings(context.Background(), db)

	if s.Authenticate("admin", "wrong") {
		t.Error("expected wrong password to fail")
	}
	if s.Authenticate("someone", model.DefaultAdminPassword) {
		t.Error("expected wrong username to fail")
	}
}

func TestUpdatePersistsEachField(t *testing.T) {
	db := kv.NewTestDB(t)
	ctx := context.Background()
	s, _ := LoadSettings(ctx, db)

	upd := SettingsUpdate{
		AppName:       "ورشة الأمل",
		ManagerName:   "سمير",
		CompanyInfo:   "هاتف: 555",
		AdminUsername: "boss",
		AdminPassword: "s3cret",
	}
	if err := s.Update(ctx, upd); err != nil {
		t.Fatalf("Update: %v", err)
	}

	// Live state updated immediately.
	if b := s.Branding(); b.AppName != "ورشة الأمل" || b.ManagerName != "سمير" {
		t.Errorf("branding not updated: %+v", b)
	}
	if !s.Authenticate("boss", "s3cret") {
		t.Error("expected new credentials to authenticate")
	}
	if s.Authenticate("admin", model.DefaultAdminPassword) {
		t.Error("expected old credentials to stop working")
	}

	// Each field landed under its own key.
	reloaded, err := LoadSettings(ctx, db)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Branding().CompanyInfo != "هاتف: 555" {
		t.Errorf("company info not persisted")
	}
	if !reloaded.Authenticate("boss", "s3cret") {
		t.Error("expected credentials to persist")
	}
}

func TestUpdateIgnoresBlankCredentials(t *testing.T) {
	db := kv.NewTestDB(t)
	ctx := context.Background()
	s, _ := LoadSettings(ctx, db)

	if err := s.Update(ctx, SettingsUpdate{AppName: "x", ManagerName: "y", CompanyInfo: "z"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !s.Authenticate(model.DefaultAdminUsername, model.DefaultAdminPassword) {
		t.Error("expected credentials to be unchanged")
	}
}

func TestSetLogo(t *testing.T) {
	db := kv.NewTestDB(t)
	ctx := context.Background()
	s, _ := LoadSettings(ctx, db)

	if err := s.SetLogo(ctx, "data:image/jpeg;base64,abcd"); err != nil {
		t.Fatalf("SetLogo: %v", err)
	}

	reloaded, _ := LoadSettings(ctx, db)
	if reloaded.Branding().AppLogo != "data:image/jpeg;base64,abcd" {
		t.Error("expected logo to persist")
	}
}
