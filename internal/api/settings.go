package api

import (
	"log/slog"
	"net/http"

	"github.com/hkanaan/sijill/internal/imaging"
	"github.com/hkanaan/sijill/internal/model"
	"github.com/hkanaan/sijill/internal/store"
)

// maxLogoUpload caps logo uploads at 5 MB.
const maxLogoUpload = 5 << 20

// SettingsHandler handles the branding and credentials settings.
type SettingsHandler struct {
	Settings *store.Settings
}

type settingsResponse struct {
	model.Branding
	AdminUsername string `json:"adminUsername"`
}

// Get handles GET /api/settings. The password hash is never exposed.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, settingsResponse{
		Branding:      h.Settings.Branding(),
		AdminUsername: h.Settings.AdminUsername(),
	})
}

// Update handles PUT /api/settings. Branding changes take effect in
// headers and reports immediately; blank credential fields leave the
// current credentials untouched.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd store.SettingsUpdate
	if err := decodeJSON(r, &upd); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if upd.AppName == "" {
		jsonError(w, http.StatusBadRequest, "app name required")
		return
	}

	if err := h.Settings.Update(r.Context(), upd); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}

	slog.Info("settings updated")
	jsonResponse(w, http.StatusOK, settingsResponse{
		Branding:      h.Settings.Branding(),
		AdminUsername: h.Settings.AdminUsername(),
	})
}

// UploadLogo handles PUT /api/settings/logo: validates and downscales the
// image, then stores it as a data URI.
func (h *SettingsHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxLogoUpload)

	if err := r.ParseMultipartForm(maxLogoUpload); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("logo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "logo file required")
		return
	}
	defer file.Close()

	dataURI, err := imaging.ProcessLogo(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Settings.SetLogo(r.Context(), dataURI); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save logo")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"appLogo": dataURI})
}
