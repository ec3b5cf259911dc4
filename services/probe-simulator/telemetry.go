package main

import (
	"encoding/json"
	"math"
	"math/rand"
	"sync"
)

// TelemetryPayload je JSON, který simulátor publikuje na pool/data.
// Tvar musí odpovídat tomu, co čeká telemetry-ingestor: tři volitelná
// číselná pole. Pointer + omitempty = chybějící pole se do JSONu vůbec nedostane.
type TelemetryPayload struct {
	Ph          *float64 `json:"ph,omitempty"`
	Turbidity   *float64 `json:"turbidity,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// ProbeState drží "fyzikální" stav simulované vody.
// Hodnoty se mezi měřeními posouvají náhodnou procházkou, takže grafy
// vypadají jako skutečný bazén, ne jako bílý šum.
type ProbeState struct {
	// mu chrání rng i stavové hodnoty - úvodní měření běží
	// v goroutine souběžně s tickerem.
	mu  sync.Mutex
	rng *rand.Rand

	ph          float64
	turbidity   float64
	temperature float64

	// dropRate: Pravděpodobnost (0-1), že jednotlivé pole v měření
	// vynecháme. Procvičuje NULL cestu v celém stacku.
	dropRate float64
}

// NewProbeState vytvoří simulátor s typickými startovními hodnotami.
// rng dostává zvenčí - v testech předáme seedovaný generátor.
func NewProbeState(rng *rand.Rand) *ProbeState {
	return &ProbeState{
		rng:         rng,
		ph:          7.5,  // střed optimálního pásma
		turbidity:   1.5,  // čistá voda
		temperature: 27.0, // příjemný bazén
		dropRate:    0.1,
	}
}

// Next posune stav o jeden krok a vrátí payload k publikaci.
func (p *ProbeState) Next() TelemetryPayload {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Náhodná procházka s přitahováním ke středu (mean reversion),
	// aby hodnoty neodpluly do nesmyslů.
	p.ph += p.step(0.03) + 0.02*(7.5-p.ph)
	p.turbidity += p.step(0.15) + 0.05*(1.5-p.turbidity)
	p.temperature += p.step(0.1) + 0.01*(27.0-p.temperature)

	// Zákal nemůže být záporný.
	if p.turbidity < 0 {
		p.turbidity = 0
	}

	payload := TelemetryPayload{}
	if p.rng.Float64() >= p.dropRate {
		ph := round2(p.ph)
		payload.Ph = &ph
	}
	if p.rng.Float64() >= p.dropRate {
		turb := round2(p.turbidity)
		payload.Turbidity = &turb
	}
	if p.rng.Float64() >= p.dropRate {
		temp := round2(p.temperature)
		payload.Temperature = &temp
	}

	return payload
}

// Marshal serializuje payload pro MQTT.
func (t TelemetryPayload) Marshal() ([]byte, error) {
	return json.Marshal(t)
}

// step vrátí náhodný krok v intervalu (-scale, +scale).
func (p *ProbeState) step(scale float64) float64 {
	return (p.rng.Float64()*2 - 1) * scale
}

// round2 zaokrouhlí na 2 desetinná místa - víc skutečná sonda stejně neumí.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
