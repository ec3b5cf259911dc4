package main

import (
	"context"
	"fmt"
)

// displayTimeFormat: Formát času pro frontend (bez zóny, lidsky čitelný).
const displayTimeFormat = "2006-01-02 15:04:05"

// recentReadingsLimit: Kolik měření vracíme v /api/data.
const recentReadingsLimit = 50

// Storage je rozhraní úložiště, přes které služba čte data.
// Repository ho implementuje; v testech stačí falešná struktura.
type Storage interface {
	QueryRecent(ctx context.Context, limit int) ([]SensorReading, error)
	LiveSnapshot(ctx context.Context) (*ReadingDTO, error)
}

// Service obsahuje business logiku nad úložištěm (formátování, predikce).
type Service struct {
	store Storage
}

// NewService je konstruktor (Dependency Injection).
func NewService(store Storage) *Service {
	return &Service{store: store}
}

// toDTO převede DB řádek na API tvar (formátovaný timestamp).
func toDTO(r SensorReading) ReadingDTO {
	return ReadingDTO{
		Ph:          r.Ph,
		Turbidity:   r.Turbidity,
		Temperature: r.Temperature,
		Timestamp:   r.Timestamp.Format(displayTimeFormat),
	}
}

// GetRecentReadings vrací posledních 50 měření pro tabulku na dashboardu.
// Chybu úložiště posíláme nahoru beze změny - API vrátí 500,
// NIKDY nevracíme tiše prázdná nebo stará data.
func (s *Service) GetRecentReadings(ctx context.Context) ([]ReadingDTO, error) {
	readings, err := s.store.QueryRecent(ctx, recentReadingsLimit)
	if err != nil {
		return nil, fmt.Errorf("načtení měření selhalo: %w", err)
	}

	dtos := make([]ReadingDTO, 0, len(readings))
	for _, r := range readings {
		dtos = append(dtos, toDTO(r))
	}
	return dtos, nil
}

// GetMaintenanceRecommendations načte okno pro predikci a spustí prediktor.
func (s *Service) GetMaintenanceRecommendations(ctx context.Context) (Recommendation, error) {
	readings, err := s.store.QueryRecent(ctx, predictionWindow)
	if err != nil {
		// Žádná "částečná" doporučení nad neúplnými daty.
		return nil, fmt.Errorf("načtení okna pro predikci selhalo: %w", err)
	}

	return PredictMaintenance(readings), nil
}

// GetLiveReading vrací poslední měření z Redis cache.
func (s *Service) GetLiveReading(ctx context.Context) (*ReadingDTO, error) {
	return s.store.LiveSnapshot(ctx)
}
