package main

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

func main() {
	// 1. Inicializace Loggeru
	// Používáme JSON formát pro snadné strojové čtení logů.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 2. Načtení Konfigurace
	cfg := LoadConfig()
	logger.Info("Startuji Probe Simulator", "interval", cfg.Interval, "topic", cfg.DataTopic)

	// 3. Konfigurace MQTT Klienta
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.MQTTBroker)
	opts.SetClientID(cfg.MQTTClientID)

	client := mqtt.NewClient(opts)

	// Připojení k brokeru (blokující operace s Tokenem)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		logger.Error("Selhalo připojení k MQTT", "error", token.Error())
		os.Exit(1) // Bez MQTT nemá smysl běžet
	}
	// Zajistíme odpojení při ukončení programu
	defer client.Disconnect(250)

	// 4. Stav simulované vody
	probe := NewProbeState(rand.New(rand.NewSource(time.Now().UnixNano())))

	// Pomocná funkce (closure) pro odesílání dat.
	publish := func(topic string, payload []byte) {
		// Odeslání zprávy (QoS 0, Retained = false)
		token := client.Publish(topic, 0, false, payload)
		token.Wait()

		if token.Error() != nil {
			logger.Error("Chyba při publikaci", "topic", topic, "error", token.Error())
			return
		}
		logger.Info("Zpráva odeslána", "topic", topic, "payload", string(payload))
	}

	// sendReading vygeneruje další měření a pošle ho jako JSON.
	sendReading := func() {
		payload, err := probe.Next().Marshal()
		if err != nil {
			logger.Error("Chyba serializace telemetrie", "error", err)
			return
		}
		publish(cfg.DataTopic, payload)
	}

	// sendStatus změří a pošle diagnostiku hostitele.
	sendStatus := func() {
		stats := CollectHostStats(logger)
		payload, err := json.Marshal(stats)
		if err != nil {
			logger.Error("Chyba serializace diagnostiky", "error", err)
			return
		}
		publish(cfg.StatusTopic, payload)
	}

	// 5. Nastavení časovače (Ticker)
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	// 6. Handling systémových signálů (Graceful Shutdown)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// OKAMŽITÉ ODESLÁNÍ PŘI STARTU
	// Nechceme čekat celý interval na první měření.
	// Goroutina, protože CollectHostStats blokuje ~1s (měření CPU).
	go func() {
		logger.Info("Provádím prvotní měření...")
		sendReading()
		sendStatus()
	}()

	// 7. Hlavní nekonečná smyčka
	logger.Info("Vstupuji do hlavní smyčky")
	for {
		select {
		// A) Přišel signál k ukončení (CTRL+C)
		case <-sigChan:
			logger.Info("Přijat signál ukončení, vypínám...")
			return // Vyskočí z main(), spustí se defery

		// B) Tiknul časovač
		case <-ticker.C:
			sendReading()
			sendStatus()
		}
	}
}
