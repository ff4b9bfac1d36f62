package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/hkanaan/sijill/internal/kv"
	"github.com/hkanaan/sijill/internal/model"
)

// Settings owns the application branding and the admin credentials. It is
// loaded once at startup and passed down explicitly; presentation code only
// sees read accessors. Every changed field is persisted under its own key.
type Settings struct {
	mu            sync.RWMutex
	db            *sql.DB
	branding      model.Branding
	adminUsername string
	adminHash     string
}

// SettingsUpdate carries the editable settings fields. Branding fields are
// applied as given; credentials are only changed when non-empty.
type SettingsUpdate struct {
	AppName       string `json:"appName"`
	ManagerName   string `json:"managerName"`
	CompanyInfo   string `json:"companyInfo"`
	AdminUsername string `json:"adminUsername"`
	AdminPassword string `json:"adminPassword"`
}

// LoadSettings reads all settings keys, falling back to built-in defaults
// for keys that have never been saved. A missing password key falls back to
// the default admin password.
func LoadSettings(ctx context.Context, db *sql.DB) (*Settings, error) {
	s := &Settings{db: db}

	var err error
	if s.branding.AppName, err = loadOr(ctx, db, kv.KeyAppName, model.DefaultAppName); err != nil {
		return nil, err
	}
	if s.branding.AppLogo, err = loadOr(ctx, db, kv.KeyAppLogo, ""); err != nil {
		return nil, err
	}
	if s.branding.ManagerName, err = loadOr(ctx, db, kv.KeyManagerName, model.DefaultManagerName); err != nil {
		return nil, err
	}
	if s.branding.CompanyInfo, err = loadOr(ctx, db, kv.KeyCompanyInfo, model.DefaultCompanyInfo); err != nil {
		return nil, err
	}
	if s.adminUsername, err = loadOr(ctx, db, kv.KeyAdminUsername, model.DefaultAdminUsername); err != nil {
		return nil, err
	}

	hash, ok, err := kv.Get(ctx, db, kv.KeyAdminPassword)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if !ok {
		fallback, err := bcrypt.GenerateFromPassword([]byte(model.DefaultAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing default password: %w", err)
		}
		hash = string(fallback)
	}
	s.adminHash = hash

	return s, nil
}

func loadOr(ctx context.Context, db *sql.DB, key, fallback string) (string, error) {
	value, ok, err := kv.Get(ctx, db, key)
	if err != nil {
		return "", fmt.Errorf("loading settings: %w", err)
	}
	if !ok {
		return fallback, nil
	}
	return value, nil
}

// Branding returns the current branding fields.
func (s *Settings) Branding() model.Branding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.branding
}

// AdminUsername returns the current admin username.
func (s *Settings) AdminUsername() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.adminUsername
}

// Authenticate checks the given credentials against the stored admin
// account. Failures carry no detail about which part was wrong.
func (s *Settings) Authenticate(username, password string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if username != s.adminUsername {
		// Burn a comparison anyway so both failure modes cost the same.
		bcrypt.CompareHashAndPassword([]byte(s.adminHash), []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(s.adminHash), []byte(password)) == nil
}

// Update applies and persists the editable settings. Branding updates take
// effect immediately in headers and reports; credential fields are ignored
// when blank.
func (s *Settings) Update(ctx context.Context, upd SettingsUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(ctx, kv.KeyAppName, upd.AppName); err != nil {
		return err
	}
	s.branding.AppName = upd.AppName

	if err := s.save(ctx, kv.KeyManagerName, upd.ManagerName); err != nil {
		return err
	}
	s.branding.ManagerName = upd.ManagerName

	if err := s.save(ctx, kv.KeyCompanyInfo, upd.CompanyInfo); err != nil {
		return err
	}
	s.branding.CompanyInfo = upd.CompanyInfo

	if upd.AdminUsername != "" {
		if err := s.save(ctx, kv.KeyAdminUsername, upd.AdminUsername); err != nil {
			return err
		}
		s.adminUsername = upd.AdminUsername
	}

	if upd.AdminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(upd.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}
		if err := s.save(ctx, kv.KeyAdminPassword, string(hash)); err != nil {
			return err
		}
		s.adminHash = string(hash)
	}

	return nil
}

// SetCredentials persists the admin username and password, used by
// first-run initialization.
func (s *Settings) SetCredentials(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(ctx, kv.KeyAdminUsername, username); err != nil {
		return err
	}
	s.adminUsername = username

	if err := s.save(ctx, kv.KeyAdminPassword, string(hash)); err != nil {
		return err
	}
	s.adminHash = string(hash)
	return nil
}

// SetLogo persists the logo data URI.
func (s *Settings) SetLogo(ctx context.Context, dataURI string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(ctx, kv.KeyAppLogo, dataURI); err != nil {
		return err
	}
	s.branding.AppLogo = dataURI
	return nil
}

// save persists one settings field. Must be called with the lock held.
func (s *Settings) save(ctx context.Context, key, value string) error {
	if err := kv.Put(ctx, s.db, key, value); err != nil {
		return fmt.Errorf("saving setting: %w", err)
	}
	return nil
}
