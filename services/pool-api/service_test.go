package main

import (
	"context"
	"errors"
	"testing"
)

// fakeStorage nahrazuje Repository v testech - žádný Postgres ani Redis.
type fakeStorage struct {
	readings []SensorReading
	queryErr error

	snapshot    *ReadingDTO
	snapshotErr error

	lastLimit int
}

func (f *fakeStorage) QueryRecent(ctx context.Context, limit int) ([]SensorReading, error) {
	f.lastLimit = limit
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if len(f.readings) > limit {
		return f.readings[:limit], nil
	}
	return f.readings, nil
}

func (f *fakeStorage) LiveSnapshot(ctx context.Context) (*ReadingDTO, error) {
	if f.snapshotErr != nil {
		return nil, f.snapshotErr
	}
	return f.snapshot, nil
}

func TestGetRecentReadingsFormatsTimestamps(t *testing.T) {
	store := &fakeStorage{
		readings: []SensorReading{
			reading(0, fp(7.4), fp(1.2), fp(26.5)),
			reading(1, fp(7.3), nil, nil),
		},
	}
	svc := NewService(store)

	dtos, err := svc.GetRecentReadings(context.Background())
	if err != nil {
		t.Fatalf("GetRecentReadings() chyba: %v", err)
	}

	if len(dtos) != 2 {
		t.Fatalf("počet měření = %d, chceme 2", len(dtos))
	}
	if dtos[0].Timestamp != "2026-08-30 12:00:00" {
		t.Errorf("timestamp = %q, chceme formát YYYY-MM-DD HH:MM:SS", dtos[0].Timestamp)
	}
	// NULL sloupce se propisují jako nil, ne jako 0.
	if dtos[1].Turbidity != nil || dtos[1].Temperature != nil {
		t.Errorf("NULL hodnoty mají zůstat nil: %+v", dtos[1])
	}
	// Kontrakt /api/data: max 50 měření.
	if store.lastLimit != recentReadingsLimit {
		t.Errorf("limit dotazu = %d, chceme %d", store.lastLimit, recentReadingsLimit)
	}
}

func TestGetRecentReadingsNeverExceedsLimit(t *testing.T) {
	store := &fakeStorage{}
	for i := 0; i < 120; i++ {
		store.readings = append(store.readings, reading(i, fp(7.5), nil, nil))
	}
	svc := NewService(store)

	dtos, err := svc.GetRecentReadings(context.Background())
	if err != nil {
		t.Fatalf("GetRecentReadings() chyba: %v", err)
	}
	if len(dtos) > recentReadingsLimit {
		t.Errorf("vráceno %d měření, limit je %d", len(dtos), recentReadingsLimit)
	}
	// Nejnovější první - první DTO musí mít nejčerstvější čas.
	if len(dtos) > 1 && dtos[0].Timestamp < dtos[1].Timestamp {
		t.Errorf("měření nejsou seřazená od nejnovějšího: %q < %q", dtos[0].Timestamp, dtos[1].Timestamp)
	}
}

func TestGetMaintenanceRecommendationsUsesPredictionWindow(t *testing.T) {
	store := &fakeStorage{
		readings: []SensorReading{
			reading(0, fp(7.5), fp(1.5), fp(27.0)),
			reading(1, fp(7.5), fp(1.5), fp(27.0)),
			reading(2, fp(7.5), fp(1.5), fp(27.0)),
			reading(3, fp(7.5), fp(1.5), fp(27.0)),
			reading(4, fp(7.5), fp(1.5), fp(27.0)),
		},
	}
	svc := NewService(store)

	rec, err := svc.GetMaintenanceRecommendations(context.Background())
	if err != nil {
		t.Fatalf("GetMaintenanceRecommendations() chyba: %v", err)
	}
	if store.lastLimit != predictionWindow {
		t.Errorf("okno predikce = %d, chceme %d", store.lastLimit, predictionWindow)
	}
	if rec["ph"] != msgPhStable || rec["turbidity"] != msgTurbidityStable {
		t.Errorf("nečekaná doporučení: %v", rec)
	}
}

func TestStorageErrorsPropagate(t *testing.T) {
	errDown := errors.New("DB není dostupná")
	svc := NewService(&fakeStorage{queryErr: errDown})

	if _, err := svc.GetRecentReadings(context.Background()); !errors.Is(err, errDown) {
		t.Errorf("GetRecentReadings() error = %v, chceme obalený %v", err, errDown)
	}
	if _, err := svc.GetMaintenanceRecommendations(context.Background()); !errors.Is(err, errDown) {
		t.Errorf("GetMaintenanceRecommendations() error = %v, chceme obalený %v", err, errDown)
	}
}
