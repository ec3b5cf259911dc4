package main

import "time"

// SensorReading je jeden řádek z tabulky sensor_readings.
// Veličiny jsou *float64 (pointer), protože každá z nich může být v DB NULL -
// sonda posílá jen to, co zrovna naměřila.
type SensorReading struct {
	Ph          *float64
	Turbidity   *float64
	Temperature *float64

	// Timestamp: Čas, kdy databáze měření přijala (server-side default).
	Timestamp time.Time
}

// ReadingDTO (Data Transfer Object) je tvar jednoho měření pro frontend.
// Oddělujeme databázový model od API modelu (decoupling).
type ReadingDTO struct {
	Ph          *float64 `json:"ph"`
	Turbidity   *float64 `json:"turbidity"`
	Temperature *float64 `json:"temperature"`

	// Timestamp: Formátovaný string "2006-01-02 15:04:05", ne time.Time.
	// Frontend ho vypisuje rovnou do tabulky bez vlastního formátování.
	Timestamp string `json:"timestamp"`
}

// Recommendation mapuje název veličiny na doporučení údržby.
// Klíče: "ph", "turbidity", "temperature" - nebo jen "status",
// pokud je v okně málo dat na jakoukoliv predikci.
type Recommendation map[string]string
