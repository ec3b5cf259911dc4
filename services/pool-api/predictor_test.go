package main

import (
	"math"
	"reflect"
	"testing"
	"time"
)

var testBase = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func fp(v float64) *float64 { return &v }

// reading vyrobí měření 'ageMinutes' minut před testBase.
func reading(ageMinutes int, ph, turbidity, temperature *float64) SensorReading {
	return SensorReading{
		Ph:          ph,
		Turbidity:   turbidity,
		Temperature: temperature,
		Timestamp:   testBase.Add(-time.Duration(ageMinutes) * time.Minute),
	}
}

// phSeries vyrobí okno (nejnovější první), kde pH jde po minutách:
// phs[0] je nejnovější hodnota, nil = sonda pH neposlala.
func phSeries(phs ...*float64) []SensorReading {
	readings := make([]SensorReading, 0, len(phs))
	for i, ph := range phs {
		readings = append(readings, reading(i, ph, nil, nil))
	}
	return readings
}

func turbiditySeries(turbs ...*float64) []SensorReading {
	readings := make([]SensorReading, 0, len(turbs))
	for i, tb := range turbs {
		readings = append(readings, reading(i, nil, tb, nil))
	}
	return readings
}

func TestPredictMaintenanceAggregateShortCircuit(t *testing.T) {
	tests := []struct {
		name     string
		readings []SensorReading
	}{
		{"empty window", nil},
		{"single reading", phSeries(fp(7.5))},
		{"four readings", phSeries(fp(7.5), fp(7.5), fp(7.5), fp(7.5))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := PredictMaintenance(tt.readings)

			want := Recommendation{"status": msgNotEnoughData}
			if !reflect.DeepEqual(rec, want) {
				t.Errorf("PredictMaintenance() = %v, chceme jen agregovaný status %v", rec, want)
			}
		})
	}
}

func TestPredictMaintenancePh(t *testing.T) {
	tests := []struct {
		name     string
		readings []SensorReading
		want     string
	}{
		{
			// Striktně rostoucí pH: 7.0 -> 7.6 za 4 minuty. Projekce o hodinu
			// dál letí vysoko nad 7.8, poslední skutečná hodnota je ještě pod.
			name:     "rising ph crossing upper threshold",
			readings: phSeries(fp(7.6), fp(7.45), fp(7.3), fp(7.15), fp(7.0)),
			want:     msgPhRise,
		},
		{
			// Konstantní řada: nulová směrnice, projekce = 7.5 -> stable.
			name:     "flat ph is stable",
			readings: phSeries(fp(7.5), fp(7.5), fp(7.5), fp(7.5), fp(7.5)),
			want:     msgPhStable,
		},
		{
			// Klesající pH: 7.9 -> 7.3. Projekce padá pod 7.2, poslední hodnota nad.
			name:     "falling ph crossing lower threshold",
			readings: phSeries(fp(7.3), fp(7.45), fp(7.6), fp(7.75), fp(7.9)),
			want:     msgPhDrop,
		},
		{
			// Už je nad 7.8 -> přechod nenastane, hlásíme stable.
			name:     "already above upper threshold",
			readings: phSeries(fp(7.9), fp(7.85), fp(7.8), fp(7.75), fp(7.7)),
			want:     msgPhStable,
		},
		{
			// Jen 3 non-null hodnoty pH v okně 5 měření.
			name: "too few non-null ph values",
			readings: phSeries(
				fp(7.5), nil, fp(7.5), nil, fp(7.5),
			),
			want: msgPhInsufficient,
		},
		{
			// Nejnovější pH je nil (sonda poslala jen teplotu): trend by křížil
			// práh, ale bez poslední skutečné hodnoty se žádný přechod nehlásí.
			name: "nil newest ph reads stable",
			readings: phSeries(
				nil, fp(7.6), fp(7.45), fp(7.3), fp(7.15), fp(7.0),
			),
			want: msgPhStable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := PredictMaintenance(tt.readings)

			if got := rec["ph"]; got != tt.want {
				t.Errorf("ph status = %q, chceme %q", got, tt.want)
			}
			// Agregovaný short-circuit tady nastat nesmí.
			if _, ok := rec["status"]; ok {
				t.Errorf("neočekávaný agregovaný status: %v", rec)
			}
		})
	}
}

func TestPredictMaintenanceTurbidity(t *testing.T) {
	tests := []struct {
		name     string
		readings []SensorReading
		want     string
	}{
		{
			// Zákal roste z 3.0 na 4.6: projekce přeletí 5.0, poslední hodnota pod.
			name:     "rising turbidity crossing threshold",
			readings: turbiditySeries(fp(4.6), fp(4.2), fp(3.8), fp(3.4), fp(3.0)),
			want:     msgTurbidityRise,
		},
		{
			// Voda je kalná UŽ TEĎ (6.0 > 5.0) - přechod nenastane, stable.
			name:     "already turbid stays stable",
			readings: turbiditySeries(fp(6.0), fp(5.6), fp(5.2), fp(4.8), fp(4.4)),
			want:     msgTurbidityStable,
		},
		{
			name:     "flat turbidity is stable",
			readings: turbiditySeries(fp(1.5), fp(1.5), fp(1.5), fp(1.5), fp(1.5)),
			want:     msgTurbidityStable,
		},
		{
			name: "too few non-null turbidity values",
			readings: turbiditySeries(
				fp(1.5), nil, nil, fp(1.5), fp(1.5),
			),
			want: msgTurbidityInsufficient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := PredictMaintenance(tt.readings)

			if got := rec["turbidity"]; got != tt.want {
				t.Errorf("turbidity status = %q, chceme %q", got, tt.want)
			}
		})
	}
}

func TestPredictMaintenanceTemperatureAlwaysMonitoring(t *testing.T) {
	readings := phSeries(fp(7.5), fp(7.5), fp(7.5), fp(7.5), fp(7.5))

	rec := PredictMaintenance(readings)
	if got := rec["temperature"]; got != msgTemperature {
		t.Errorf("temperature status = %q, chceme %q", got, msgTemperature)
	}
}

// Stejné okno dvakrát = identický výsledek (čistá funkce, žádné "teď").
func TestPredictMaintenanceIdempotent(t *testing.T) {
	readings := []SensorReading{
		reading(0, fp(7.6), fp(4.6), fp(27.0)),
		reading(1, fp(7.45), fp(4.2), fp(27.1)),
		reading(2, fp(7.3), nil, fp(27.2)),
		reading(3, fp(7.15), fp(3.4), nil),
		reading(4, fp(7.0), fp(3.0), fp(27.0)),
	}

	first := PredictMaintenance(readings)
	second := PredictMaintenance(readings)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("výsledky se liší: %v vs %v", first, second)
	}
}

func TestLinearFit(t *testing.T) {
	tests := []struct {
		name      string
		xs, ys    []float64
		evalAt    float64
		want      float64
		tolerance float64
	}{
		{
			// y = 2x + 1
			name:      "exact line",
			xs:        []float64{0, 1, 2, 3, 4},
			ys:        []float64{1, 3, 5, 7, 9},
			evalAt:    10,
			want:      21,
			tolerance: 1e-9,
		},
		{
			// Unixové sekundy: učebnicový vzorec by tady numericky umřel.
			// pH roste o 0.15 za minutu, projekce o hodinu dál od posledního bodu.
			name: "unix second timestamps keep precision",
			xs: []float64{
				1787572800, 1787572740, 1787572680, 1787572620, 1787572560,
			},
			ys:        []float64{7.6, 7.45, 7.3, 7.15, 7.0},
			evalAt:    1787572800 + 3600,
			want:      7.6 + 0.0025*3600,
			tolerance: 1e-6,
		},
		{
			// Všechny časy stejné: degenerovaný fit, přímka = průměr hodnot.
			name:      "degenerate x spread falls back to mean",
			xs:        []float64{100, 100, 100, 100, 100},
			ys:        []float64{1, 2, 3, 4, 5},
			evalAt:    200,
			want:      3,
			tolerance: 1e-9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slope, meanX, meanY := linearFit(tt.xs, tt.ys)
			got := meanY + slope*(tt.evalAt-meanX)

			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("projekce = %v, chceme %v (±%v)", got, tt.want, tt.tolerance)
			}
		})
	}
}
