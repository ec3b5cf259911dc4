package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedPayload označuje zprávu, která není validní JSON objekt.
// Volající podle něj pozná, že jde o chybu vstupu (warning), ne o chybu úložiště.
var ErrMalformedPayload = errors.New("payload není validní JSON objekt")

// ReadingStore je rozhraní úložiště, které handler potřebuje.
// Je to záměrně interface a ne konkrétní *Repository:
// v testech ho nahradíme falešnou implementací bez databáze.
type ReadingStore interface {
	InsertReading(ctx context.Context, r SensorReading) error
}

// HandleMessage zpracuje jednu příchozí MQTT zprávu.
// Vstup: raw payload ze sondy. Výstup: nil, nebo chyba (parse / storage).
//
// Důležitý kontrakt: chyba jedné zprávy NIKDY nesmí shodit naslouchací
// smyčku. Handler proto jen vrátí error a volající ho zaloguje a zprávu zahodí.
// Žádné retry - další měření přijde za pár vteřin.
func HandleMessage(ctx context.Context, payload []byte, store ReadingStore) error {

	// KROK 1: Kontrola tvaru.
	// Payload musí být JSON OBJEKT. Unmarshal do mapy odmítne pole, čísla
	// i rozbitý JSON. Literal "null" projde Unmarshalem bez chyby (mapa
	// zůstane nil), proto ho kontrolujeme explicitně.
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(payload, &shape); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if shape == nil {
		return fmt.Errorf("%w: payload je JSON null", ErrMalformedPayload)
	}

	// KROK 2: Extrakce hodnot.
	// Druhý Unmarshal do struktury s *float64 poli. Chybějící klíč nebo
	// JSON null nechá pointer nil. Nenumerická hodnota (např. "ph": "abc")
	// shodí celý payload - nevalidní data se do DB nedostanou.
	var reading SensorReading
	if err := json.Unmarshal(payload, &reading); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	// KROK 3: Uložení.
	// Timestamp neposíláme - přiřadí ho databáze (server-side default).
	// Chyba zápisu jde nahoru tak, jak přišla (obalená repozitářem),
	// aby ji main odlišil od chyby parsování.
	if err := store.InsertReading(ctx, reading); err != nil {
		return err
	}

	return nil
}
