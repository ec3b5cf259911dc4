package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

func main() {
	// 1. Načtení Konfigurace
	cfg := LoadConfig()

	// 2. Logger: Stdout + MQTT (logs/telemetry-ingestor).
	// MQTT writer zatím nemá klienta (ten vznikne až níže) - do té doby
	// píše jen na stdout. Logger ale stavíme jednou a FINÁLNÍ:
	// handlery níže ho čtou z goroutin paho klienta a pozdější výměna
	// proměnné by byla závod (data race).
	mqttWriter := NewMqttLogWriter("telemetry-ingestor")
	multi := io.MultiWriter(os.Stdout, mqttWriter)
	logger := slog.New(slog.NewJSONHandler(multi, nil))
	slog.SetDefault(logger)

	// 3. Inicializace Repozitáře (DB + Redis).
	// Pokud se nelze připojit při startu, nemá smysl pokračovat -> Crash.
	// Docker kontejner se restartuje a zkusí to znovu.
	ctx := context.Background()
	repo, err := NewRepository(ctx, cfg, logger)
	if err != nil {
		logger.Error("Kritická chyba připojení k databázím", "error", err)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("Databáze připojeny")

	// 4. MQTT Klient Setup.
	// Všechny handlery nastavujeme na opts JEŠTĚ PŘED NewClient -
	// paho si opts při vytvoření klienta zkopíruje, pozdější změny se ztratí.
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.MQTTBroker)
	opts.SetClientID(cfg.MQTTClientID)

	// --- HLAVNÍ LOGIKA ZPRACOVÁNÍ ZPRÁV ---
	opts.SetDefaultPublishHandler(func(client mqtt.Client, msg mqtt.Message) {
		// Context s timeoutem, aby DB operace nevisela věčně.
		saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// A. Zavoláme naši logiku (service.go)
		if err := HandleMessage(saveCtx, msg.Payload(), repo); err != nil {
			// NEUKONČUJEME službu, jen zahodíme tuto jednu zprávu.
			// Parse chyba = warning (vadná data ze sondy),
			// storage chyba = error (problém na naší straně).
			if errors.Is(err, ErrMalformedPayload) {
				logger.Warn("Zpráva odmítnuta", "topic", msg.Topic(), "důvod", err)
			} else {
				logger.Error("Chyba při ukládání měření", "topic", msg.Topic(), "error", err)
			}
			return
		}

		// V Debug levelu můžeme vidět každou zprávu, v Info ne (aby logy nebyly obří)
		logger.Debug("Měření uloženo")
	})

	// Subscribe děláme v OnConnect handleru, ne jednorázově v main.
	// DŮVOD: Při výpadku brokera paho spojení samo obnoví a tento handler
	// se zavolá znovu - odběr se tedy obnoví taky.
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		if token := client.Subscribe(cfg.InputTopic, 0, nil); token.Wait() && token.Error() != nil {
			logger.Error("Subscribe selhal", "topic", cfg.InputTopic, "error", token.Error())
			return
		}
		logger.Info("Poslouchám na topicu", "topic", cfg.InputTopic)
	})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		logger.Error("Fatal MQTT Error", "err", token.Error())
		os.Exit(1)
	}
	// Odpojení s timeoutem 250ms při ukončení
	defer client.Disconnect(250)

	// Od teď se logy zrcadlí i do MQTT (writer je thread-safe).
	mqttWriter.SetClient(client)

	logger.Info("Připojeno k MQTT", "broker", cfg.MQTTBroker)
	logger.Info("Spouštím službu Telemetry Ingestor", "config", cfg)

	// 5. Spuštění Healthcheck serveru (pro Docker/K8s)
	go startHealthServer(cfg.HTTPPort, logger)

	// 6. Graceful Shutdown (Čekání na signál ukončení)
	// Blokujeme hlavní vlákno, dokud nepřijde SIGINT (Ctrl+C) nebo SIGTERM (Docker stop).
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Ukončuji službu...")
	// Zde proběhnou defery (disconnect mqtt, close db pool)
}

// startHealthServer spustí jednoduchý HTTP endpoint.
func startHealthServer(port string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	logger.Info("Health server běží", "port", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		logger.Error("Health server spadl", "error", err)
	}
}
