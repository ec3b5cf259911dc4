package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// --- DATOVÉ MODELY (DTO) ---
// Tyto struktury definují formát JSON dat, která nám vrací Pool API.
// Musí přesně odpovídat tomu, co API posílá.

// ReadingDTO je jedno měření kvality vody.
// Hodnoty jsou pointery (*float64), protože kterákoliv může být null -
// sonda posílá jen to, co naměřila. Nechceme zobrazit 0, ale "—".
type ReadingDTO struct {
	Ph          *float64 `json:"ph"`
	Turbidity   *float64 `json:"turbidity"`
	Temperature *float64 `json:"temperature"`
	Timestamp   string   `json:"timestamp"`
}

// Recommendation mapuje veličinu na doporučení údržby (nebo jediný
// klíč "status", když je málo dat).
type Recommendation map[string]string

// APIClient zapouzdřuje logiku HTTP volání na backend.
// Zbytek aplikace (Handlery) díky tomu neřeší URL adresy, JSON decoding ani status kódy.
type APIClient struct {
	BaseURL    string       // Adresa API (např. http://pool-api:8080)
	httpClient *http.Client // Instance http klienta (umožňuje nastavit timeouty)
}

// NewAPIClient vytváří instanci klienta.
// Důležité: Vždy nastavujeme Timeout! Defaultní http.Client v Go nemá timeout,
// takže pokud by API neodpovídalo, Dashboard by "visel" navěky.
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second, // Pokud API neodpoví do 5s, request selže.
		},
	}
}

// getJSON je společná kostra všech volání: GET, kontrola statusu, decode.
func (c *APIClient) getJSON(path string, out any) error {
	resp, err := c.httpClient.Get(c.BaseURL + path)
	if err != nil {
		return fmt.Errorf("chyba sítě při volání API: %w", err)
	}
	// Důležité: Body musíme vždy zavřít, jinak tečou file descriptory.
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API vrátilo chybný status: %d", resp.StatusCode)
	}

	// json.Decoder čte stream přímo z Body (efektivnější než ReadAll).
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("chyba při parsování JSONu: %w", err)
	}
	return nil
}

// GetReadings zavolá GET /api/data a vrátí posledních 50 měření.
func (c *APIClient) GetReadings() ([]ReadingDTO, error) {
	var readings []ReadingDTO
	if err := c.getJSON("/api/data", &readings); err != nil {
		return nil, err
	}
	return readings, nil
}

// GetRecommendations zavolá GET /api/predictive_maintenance.
func (c *APIClient) GetRecommendations() (Recommendation, error) {
	var rec Recommendation
	if err := c.getJSON("/api/predictive_maintenance", &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// GetLive zavolá GET /api/live. 404 (sonda mlčí) vracíme jako nil bez chyby.
func (c *APIClient) GetLive() (*ReadingDTO, error) {
	resp, err := c.httpClient.Get(c.BaseURL + "/api/live")
	if err != nil {
		return nil, fmt.Errorf("chyba sítě při volání API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API vrátilo chybný status: %d", resp.StatusCode)
	}

	var reading ReadingDTO
	if err := json.NewDecoder(resp.Body).Decode(&reading); err != nil {
		return nil, fmt.Errorf("chyba při parsování JSONu: %w", err)
	}
	return &reading, nil
}
