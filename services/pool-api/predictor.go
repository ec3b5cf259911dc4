package main

// Prediktor údržby: přes posledních (max) 100 měření proloží přímku
// (metodou nejmenších čtverců) a podívá se, kde bude hodnota za hodinu.
// Není to žádná věda - jen lineární extrapolace. Na "za hodinu bude voda
// kalná, zapni filtraci" to ale bohatě stačí.

const (
	// predictionWindow: Kolik posledních měření vstupuje do predikce.
	predictionWindow = 100

	// minSamples: Pod tolik bodů se nemá cenu pokoušet o trend.
	minSamples = 5

	// projectionHorizon: Jak daleko do budoucnosti projektujeme (sekundy).
	projectionHorizon = 3600.0

	// Optimální pásmo pH pro bazén a limit zákalu (NTU).
	phLow          = 7.2
	phHigh         = 7.8
	turbidityLimit = 5.0
)

// Texty doporučení. Anglicky, protože je zobrazuje frontend
// a konzumuje je i firmware dávkovače.
const (
	msgNotEnoughData = "Not enough data for accurate prediction."

	msgPhDrop         = "pH is predicted to drop below optimal levels soon. Consider adding pH Increaser."
	msgPhRise         = "pH is predicted to rise above optimal levels soon. Consider adding pH Reducer."
	msgPhStable       = "pH is stable."
	msgPhInsufficient = "Insufficient data for pH prediction."

	msgTurbidityRise         = "Turbidity is predicted to increase. Consider backwashing filter or adding clarifier."
	msgTurbidityStable       = "Turbidity is stable."
	msgTurbidityInsufficient = "Insufficient data for turbidity prediction."

	msgTemperature = "Temperature monitoring is active."
)

// PredictMaintenance vyrobí doporučení údržby z okna měření.
// Vstup MUSÍ být seřazený od nejnovějšího (tak ho vrací QueryRecent).
//
// Je to čistá funkce: žádná DB, žádný čas "teď" - kotva projekce je čas
// nejnovějšího měření + 1 hodina. Dvojí zavolání nad stejným oknem
// vrátí identický výsledek.
func PredictMaintenance(readings []SensorReading) Recommendation {
	// Málo dat celkově -> jediný agregovaný status, žádné per-metrika klíče.
	if len(readings) < minSamples {
		return Recommendation{"status": msgNotEnoughData}
	}

	rec := Recommendation{}

	// Kotva projekce: čas NEJNOVĚJŠÍHO měření celkově (ne nejnovějšího
	// non-null bodu dané veličiny!) + 1 hodina. Schválně - takhle se chová
	// i firmware dávkovače, který s API sdílí prahy, a nechceme se rozjet.
	anchor := float64(readings[0].Timestamp.Unix()) + projectionHorizon

	// --- pH ---
	if projected, ok := projectMetric(readings, anchor, func(r SensorReading) *float64 { return r.Ph }); !ok {
		rec["ph"] = msgPhInsufficient
	} else {
		// "Poslední skutečná hodnota" = pH nejnovějšího řádku. Může být nil
		// (sonda poslala jen teplotu) - pak žádná podmínka neplatí a pH je "stable".
		last := readings[0].Ph
		switch {
		case last != nil && projected < phLow && *last >= phLow:
			rec["ph"] = msgPhDrop
		case last != nil && projected > phHigh && *last <= phHigh:
			rec["ph"] = msgPhRise
		default:
			rec["ph"] = msgPhStable
		}
	}

	// --- Zákal ---
	if projected, ok := projectMetric(readings, anchor, func(r SensorReading) *float64 { return r.Turbidity }); !ok {
		rec["turbidity"] = msgTurbidityInsufficient
	} else {
		last := readings[0].Turbidity
		// Hlásíme jen PŘECHOD přes limit: pokud je voda kalná už teď
		// (last > 5.0), predikce nic nového neřekne.
		if last != nil && projected > turbidityLimit && *last <= turbidityLimit {
			rec["turbidity"] = msgTurbidityRise
		} else {
			rec["turbidity"] = msgTurbidityStable
		}
	}

	// --- Teplota ---
	// Teplotu neprojektujeme - pro údržbu není kritická, jen ji sledujeme.
	rec["temperature"] = msgTemperature

	return rec
}

// projectMetric proloží přímku body (čas, hodnota) jedné veličiny a vrátí
// její hodnotu v čase 'anchor'. Body s nil hodnotou se vynechávají.
// ok = false, pokud po vynechání zbylo méně než minSamples bodů.
func projectMetric(readings []SensorReading, anchor float64, pick func(SensorReading) *float64) (projected float64, ok bool) {
	xs := make([]float64, 0, len(readings))
	ys := make([]float64, 0, len(readings))

	for _, r := range readings {
		if v := pick(r); v != nil {
			xs = append(xs, float64(r.Timestamp.Unix()))
			ys = append(ys, *v)
		}
	}

	if len(xs) < minSamples {
		return 0, false
	}

	slope, meanX, meanY := linearFit(xs, ys)

	// Rovnice přímky v centrovaném tvaru: y = meanY + slope * (x - meanX)
	return meanY + slope*(anchor-meanX), true
}

// linearFit spočítá OLS regresi (metoda nejmenších čtverců) v uzavřeném tvaru.
//
// POZOR NA NUMERIKU: x jsou unixové sekundy (~1.7e9). Učebnicový vzorec
// (n*Σxy - Σx*Σy) / (n*Σx² - (Σx)²) by odčítal dvě obrovská skoro stejná
// čísla a float64 by ztratil většinu platných cifer. Proto počítáme
// s centrovanými odchylkami od průměru - matematicky totéž, numericky stabilní.
//
// Vrací směrnici a průměry os; přímka je y = meanY + slope*(x - meanX).
// Degenerovaný případ (všechny časy stejné) vrací slope 0 - žádné dělení nulou.
func linearFit(xs, ys []float64) (slope, meanX, meanY float64) {
	n := float64(len(xs))
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= n
	meanY /= n

	var sxx, sxy float64
	for i := range xs {
		dx := xs[i] - meanX
		sxx += dx * dx
		sxy += dx * (ys[i] - meanY)
	}

	if sxx == 0 {
		return 0, meanX, meanY
	}
	return sxy / sxx, meanX, meanY
}
