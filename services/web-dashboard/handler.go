package main

import (
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
)

// WebHandler slouží jako "Controller". Připravuje data a renderuje HTML.
type WebHandler struct {
	client *APIClient
	logger *slog.Logger
	tmpl   *template.Template
}

// NewWebHandler inicializuje šablony a registruje pomocné funkce.
func NewWebHandler(client *APIClient, logger *slog.Logger) (*WebHandler, error) {

	// DEFINICE VLASTNÍCH FUNKCÍ PRO ŠABLONY (FuncMap)
	// Go šablony neumí samy dereferencovat pointery - musíme jim to naučit.
	funcMap := template.FuncMap{
		// fmtVal: *float64 -> text pro tabulku. nil = pomlčka, ne nula!
		"fmtVal": func(f *float64) string {
			if f == nil {
				return "—"
			}
			// 'f', -1: bez zbytečných nul (7.40 -> "7.4")
			return strconv.FormatFloat(*f, 'f', -1, 64)
		},
	}

	// Funcs MUSÍ přijít před ParseGlob, jinak parser fmtVal nezná.
	tmpl, err := template.New("base").Funcs(funcMap).ParseGlob(filepath.Join("templates", "*.html"))
	if err != nil {
		return nil, err
	}

	return &WebHandler{
		client: client,
		logger: logger,
		tmpl:   tmpl,
	}, nil
}

// HandleIndex: Dashboard (Přehled měření + doporučení údržby)
func (h *WebHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	readings, err := h.client.GetReadings()
	if err != nil {
		h.logger.Error("Chyba načítání měření", "error", err)
		http.Error(w, "Backend nedostupný", http.StatusBadGateway)
		return
	}

	// Doporučení a live dlaždice nejsou kritické - při chybě renderujeme
	// aspoň tabulku měření.
	recommendations, err := h.client.GetRecommendations()
	if err != nil {
		h.logger.Error("Chyba načítání doporučení", "error", err)
	}
	live, err := h.client.GetLive()
	if err != nil {
		h.logger.Error("Chyba načítání live měření", "error", err)
	}

	data := map[string]interface{}{
		"Title":           "Pool Monitor",
		"Readings":        readings,
		"Recommendations": recommendations,
		"Live":            live,
	}

	// Renderujeme layout.html; uvnitř se volá {{ template "content" . }}.
	if err := h.tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		h.logger.Error("Chyba renderování", "error", err)
	}
}
