package main

import "time"

// SensorReading je jedno měření kvality vody, tak jak ho posílá sonda.
// Všechny tři veličiny jsou *float64 (pointer).
// DŮVOD: Sonda může poslat jen podmnožinu hodnot (např. jen pH).
// nil = hodnota nepřišla a v DB skončí jako NULL, NE jako nula.
// Kdybychom použili float64, chybějící pH by se tvářilo jako 0.0 - a to je
// pro bazénovou chemii naprosto validní (a alarmující) hodnota!
type SensorReading struct {
	// Ph: Kyselost vody. Optimální pásmo pro bazén je 7.2 - 7.8.
	Ph *float64 `json:"ph"`

	// Turbidity: Zákal vody v NTU. Nad 5.0 je voda viditelně kalná.
	Turbidity *float64 `json:"turbidity"`

	// Temperature: Teplota vody ve °C.
	Temperature *float64 `json:"temperature"`

	// Timestamp: Čas měření. Při insertu ho NEposíláme - přiřadí ho
	// databáze (DEFAULT now()), aby všechna měření měla jednotný zdroj času.
	Timestamp time.Time `json:"timestamp"`
}
