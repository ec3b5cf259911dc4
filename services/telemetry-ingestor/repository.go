package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// LastReadingKey je klíč v Redisu, pod kterým leží poslední přijaté měření.
// Musí odpovídat tomu, co čte pool-api (endpoint /api/live).
const LastReadingKey = "pool:last_reading"

// execer je výřez *pgxpool.Pool, který insert potřebuje.
// Díky rozhraní jde zapisovací cesta otestovat bez běžícího Postgresu.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// snapshotWriter je výřez *redis.Client pro zápis hot cache.
type snapshotWriter interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Repository zapouzdřuje práci s databázemi.
// Zbytek aplikace (main, service) neví, jak se píše SQL, jen volá metody repozitáře.
type Repository struct {
	pgPool *pgxpool.Pool // Pool spojení do Postgresu (drží ho Close)
	redis  *redis.Client // Klient pro Redis/Valkey (drží ho Close)
	logger *slog.Logger

	// Úzká rozhraní, přes která jdou samotné operace.
	// V produkci ukazují na pgPool a redis výše, v testech na fake struktury.
	db        execer
	snapshots snapshotWriter
}

// NewRepository vytvoří a ověří připojení k oběma úložištím.
func NewRepository(ctx context.Context, cfg Config, logger *slog.Logger) (*Repository, error) {
	// 1. Připojení k Postgres
	// pgxpool spravuje sadu otevřených spojení. Každé volání Exec/Query si
	// spojení z poolu půjčí a po dokončení (i při chybě) ho zase vrátí.
	// Repozitář tedy nikdy nedrží spojení napříč voláními.
	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("chyba konfigurace DB: %w", err)
	}
	// Ověření spojení (Ping)
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("DB není dostupná: %w", err)
	}

	// 2. Připojení k Redisu
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis není dostupný: %w", err)
	}

	return &Repository{
		pgPool:    pool,
		redis:     rdb,
		logger:    logger,
		db:        pool,
		snapshots: rdb,
	}, nil
}

// Close uzavře spojení při ukončení aplikace.
func (r *Repository) Close() {
	r.pgPool.Close()
	r.redis.Close()
}

// InsertReading uloží měření do obou úložišť (Cold Path & Hot Path).
func (r *Repository) InsertReading(ctx context.Context, reading SensorReading) error {

	// A. Uložení do Postgresu (Historie, "Source of Truth").
	// Sloupec timestamp neplníme - má DEFAULT now() na straně DB.
	// Pointery *float64 pgx mapuje přímo: nil -> NULL.
	query := `INSERT INTO sensor_readings (ph, turbidity, temperature) VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, query, reading.Ph, reading.Turbidity, reading.Temperature)
	if err != nil {
		return fmt.Errorf("chyba insertu do PG: %w", err)
	}

	// B. Uložení do Redisu (Aktuální stav pro dashboard).
	// Přepisujeme stále dokola poslední hodnotu, s expirací 24h
	// (aby po odmlčení sondy zmizela zavádějící "živá" data).
	//
	// Redis chyba NENÍ kritická pro integritu dat - řádek v PG už sedí.
	// Proto ji jen zalogujeme a insert považujeme za úspěšný.
	snapshot := reading
	snapshot.Timestamp = time.Now().UTC()

	payload, err := json.Marshal(snapshot)
	if err != nil {
		r.logger.Warn("Nepodařilo se serializovat snapshot pro Redis", "error", err)
		return nil
	}

	if err := r.snapshots.Set(ctx, LastReadingKey, payload, 24*time.Hour).Err(); err != nil {
		r.logger.Warn("Chyba update Redis cache", "error", err)
	}

	return nil
}
