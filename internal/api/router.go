package api

import (
	"database/sql"
	"net/http"

	"github.com/hkanaan/sijill/internal/store"
)

// NewRouter creates the API router with all endpoints registered.
// Reading operations are open to the operator; destructive and settings
// actions additionally require an admin login.
func NewRouter(db *sql.DB, inventory *store.Inventory, settings *store.Settings, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, Settings: settings, JWTSecret: jwtSecret}
	itemsHandler := &ItemsHandler{Inventory: inventory}
	exportHandler := &ExportHandler{Inventory: inventory}
	settingsHandler := &SettingsHandler{Settings: settings}
	reportHandler := &ReportHandler{Inventory: inventory, Settings: settings}

	authMW := AuthMiddleware(jwtSecret, db)
	admin := func(h http.HandlerFunc) http.Handler {
		return authMW(RequireAdmin(h))
	}

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Day-to-day operator surface.
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("POST /api/items/scan", itemsHandler.Scan)
	mux.HandleFunc("PUT /api/items", itemsHandler.Save)
	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)
	mux.HandleFunc("GET /api/items/{id}/receipt", reportHandler.Receipt)
	mux.HandleFunc("GET /api/customers", itemsHandler.Customers)
	mux.HandleFunc("GET /api/alerts", itemsHandler.Alerts)
	mux.HandleFunc("GET /api/report", reportHandler.Report)

	// Admin-gated: destructive actions, bulk data, settings.
	mux.Handle("DELETE /api/items/{id}", admin(itemsHandler.Delete))
	mux.Handle("GET /api/export/csv", admin(exportHandler.ExportCSV))
	mux.Handle("GET /api/export/json", admin(exportHandler.ExportJSON))
	mux.Handle("POST /api/import/csv", admin(exportHandler.ImportCSV))
	mux.Handle("POST /api/import/json", admin(exportHandler.ImportJSON))
	mux.Handle("GET /api/settings", admin(settingsHandler.Get))
	mux.Handle("PUT /api/settings", admin(settingsHandler.Update))
	mux.Handle("PUT /api/settings/logo", admin(settingsHandler.UploadLogo))

	return mux
}
