package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// LastReadingKey je klíč v Redisu s posledním přijatým měřením.
// Musí odpovídat tomu, co tam zapisuje telemetry-ingestor.
const LastReadingKey = "pool:last_reading"

// ErrNoLiveReading: v Redisu žádný snapshot není (sonda mlčí déle než 24h,
// nebo stack právě nastartoval). Pro API to není chyba serveru, ale 404.
var ErrNoLiveReading = errors.New("žádné živé měření v cache")

// Repository drží spojení na databáze a obsahuje metody pro získání dat.
// Implementuje vzor "Repository" nebo "Data Access Object".
type Repository struct {
	db    *pgxpool.Pool // Pool pro SQL dotazy (historie měření)
	redis *redis.Client // Klient pro Key-Value store (live snapshot)
}

// NewRepository je konstruktor (Dependency Injection).
func NewRepository(db *pgxpool.Pool, rdb *redis.Client) *Repository {
	return &Repository{db: db, redis: rdb}
}

// QueryRecent vrací posledních (max) 'limit' měření, NEJNOVĚJŠÍ PRVNÍ.
// Pořadí je součást kontraktu - prediktor spoléhá na to, že readings[0]
// je nejčerstvější řádek.
func (r *Repository) QueryRecent(ctx context.Context, limit int) ([]SensorReading, error) {
	// Ochrana proti nesmyslnému limitu z volajícího kódu.
	if limit <= 0 {
		limit = predictionWindow
	}

	query := `
		SELECT ph, turbidity, temperature, timestamp
		FROM sensor_readings
		ORDER BY timestamp DESC
		LIMIT $1
	`

	// Query vrací iterátor (rows). Nezapomenout zavřít!
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("selhal SQL dotaz na měření: %w", err)
	}
	defer rows.Close() // Uvolnění connection zpět do poolu

	readings := make([]SensorReading, 0, limit)

	// Iterujeme přes výsledky řádek po řádku.
	// Scan umí NULL sloupce nahrát rovnou do *float64 (zůstane nil).
	for rows.Next() {
		var reading SensorReading
		if err := rows.Scan(&reading.Ph, &reading.Turbidity, &reading.Temperature, &reading.Timestamp); err != nil {
			return nil, fmt.Errorf("chyba čtení řádku: %w", err)
		}
		readings = append(readings, reading)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("chyba iterace výsledků: %w", err)
	}

	return readings, nil
}

// LiveSnapshot vrací poslední měření z Redis cache (zapsal ho ingestor).
// Rychlá cesta pro dashboard - žádný SQL dotaz.
func (r *Repository) LiveSnapshot(ctx context.Context) (*ReadingDTO, error) {
	raw, err := r.redis.Get(ctx, LastReadingKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoLiveReading
	}
	if err != nil {
		return nil, fmt.Errorf("chyba čtení z Redis: %w", err)
	}

	// Snapshot je JSON SensorReading z ingestoru (timestamp jako RFC3339).
	var snapshot SensorReading
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("poškozený snapshot v Redis: %w", err)
	}

	// Přeformátujeme na stejný tvar, jaký vrací /api/data.
	dto := toDTO(snapshot)
	return &dto, nil
}
