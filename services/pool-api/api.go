package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// APIHandler sdružuje metody pro obsluhu HTTP požadavků.
// Drží referenci na Service (logika) a Logger.
type APIHandler struct {
	svc    *Service
	logger *slog.Logger
}

// NewAPIHandler vytváří novou instanci handleru.
func NewAPIHandler(svc *Service, logger *slog.Logger) *APIHandler {
	return &APIHandler{svc: svc, logger: logger}
}

// RegisterRoutes mapuje URL cesty na konkrétní Go funkce.
// Využíváme nový router v Go 1.22+, který podporuje metody a wildcardy.
func (h *APIHandler) RegisterRoutes(mux *http.ServeMux) {
	// Historie měření (tabulka na dashboardu)
	mux.HandleFunc("GET /api/data", h.handleGetData)

	// Prediktivní údržba (doporučení z trendů)
	mux.HandleFunc("GET /api/predictive_maintenance", h.handleGetPredictions)

	// Poslední měření z Redis cache (live dlaždice)
	mux.HandleFunc("GET /api/live", h.handleGetLive)
}

// handleGetData: GET /api/data
func (h *APIHandler) handleGetData(w http.ResponseWriter, r *http.Request) {
	// Získání kontextu z requestu (pro timeouty a cancelation)
	ctx := r.Context()

	readings, err := h.svc.GetRecentReadings(ctx)
	if err != nil {
		h.logger.Error("Chyba při získávání měření", "error", err)
		http.Error(w, "Interní chyba serveru", http.StatusInternalServerError)
		return
	}

	// Nastavení hlavičky, že vracíme JSON
	w.Header().Set("Content-Type", "application/json")

	// Serializace (Encoding) struktury do JSONu přímo do HTTP odpovědi.
	if err := json.NewEncoder(w).Encode(readings); err != nil {
		h.logger.Error("Chyba při zápisu JSON odpovědi", "error", err)
	}
}

// handleGetPredictions: GET /api/predictive_maintenance
func (h *APIHandler) handleGetPredictions(w http.ResponseWriter, r *http.Request) {
	recommendations, err := h.svc.GetMaintenanceRecommendations(r.Context())
	if err != nil {
		// Chybu úložiště NEschováváme za prázdnou mapu - klient musí vědět,
		// že doporučení teď nejsou k dispozici.
		h.logger.Error("Chyba při výpočtu doporučení", "error", err)
		http.Error(w, "Interní chyba serveru", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(recommendations)
}

// handleGetLive: GET /api/live
func (h *APIHandler) handleGetLive(w http.ResponseWriter, r *http.Request) {
	reading, err := h.svc.GetLiveReading(r.Context())
	if errors.Is(err, ErrNoLiveReading) {
		// Sonda mlčí / cache expirovala -> 404, ne 500.
		http.Error(w, "Žádné živé měření", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("Chyba při čtení live měření", "error", err)
		http.Error(w, "Interní chyba serveru", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reading)
}

// CorsMiddleware je "obalová" funkce (Middleware).
// Přidává HTTP hlavičky, které povolí prohlížeči volat toto API
// z jiného portu/domény (web-dashboard, vývojový frontend).
func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Povolíme přístup odkudkoliv (*) - v produkci zde má být konkrétní doména.
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Pokud jde o "Preflight" request (prohlížeč se ptá "můžu?"), odpovíme OK a končíme.
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		// Jinak předáme řízení dál našemu handleru.
		next.ServeHTTP(w, r)
	})
}
