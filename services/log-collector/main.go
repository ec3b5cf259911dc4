package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

func main() {
	// 1. Inicializace vlastního loggeru (pouze na stdout, abychom viděli, že collector běží)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 2. Načtení Konfigurace
	cfg := LoadConfig()
	logger.Info("Startuji Log Collector", "dir", cfg.LogDir)

	// 3. Příprava adresáře pro logy
	// Pokud adresář neexistuje, vytvoříme ho (včetně podadresářů).
	if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
		logger.Error("Nelze vytvořit adresář pro logy", "error", err)
		os.Exit(1)
	}

	// 4. MQTT Handler (Callback)
	// Spustí se pro KAŽDOU přijatou logovací zprávu z jakékoliv služby.
	messageHandler := func(client mqtt.Client, msg mqtt.Message) {
		// A. Parsování názvu služby z topicu ("logs/telemetry-ingestor")
		serviceName, err := serviceFromTopic(msg.Topic())
		if err != nil {
			logger.Warn("Ignoruji zprávu se špatným topicem", "topic", msg.Topic(), "error", err)
			return
		}

		// B. Zápis do souboru
		if err := appendLogToFile(cfg.LogDir, serviceName, msg.Payload()); err != nil {
			logger.Error("Chyba při zápisu do souboru", "service", serviceName, "error", err)
		}
	}

	// 5. Připojení k MQTT
	opts := mqtt.NewClientOptions().AddBroker(cfg.MQTTBroker).SetClientID(cfg.MQTTClientID)
	opts.SetDefaultPublishHandler(messageHandler)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		logger.Error("MQTT Connection failed", "error", token.Error())
		os.Exit(1)
	}
	defer client.Disconnect(250)

	// 6. Subscribe
	if token := client.Subscribe(cfg.LogTopic, 0, nil); token.Wait() && token.Error() != nil {
		logger.Error("Subscribe failed", "error", token.Error())
		os.Exit(1)
	}
	logger.Info("Poslouchám logy", "topic", cfg.LogTopic)

	// 7. Wait loop
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
}

// serviceFromTopic vytáhne název služby z topicu "logs/<služba>[/...]".
// Název nesmí být prázdný ani obsahovat cestové znaky - skládá se z něj
// jméno souboru a zpráva z brokera nesmí psát mimo LogDir.
func serviceFromTopic(topic string) (string, error) {
	parts := strings.Split(topic, "/")
	if len(parts) < 2 || parts[0] != "logs" {
		return "", fmt.Errorf("topic %q nemá tvar logs/<služba>", topic)
	}

	serviceName := parts[1]
	if serviceName == "" || serviceName == "." || serviceName == ".." {
		return "", fmt.Errorf("topic %q nenese použitelný název služby", topic)
	}
	if strings.ContainsAny(serviceName, `\`) {
		return "", fmt.Errorf("název služby %q obsahuje cestové znaky", serviceName)
	}

	return serviceName, nil
}

// appendLogToFile připíše jeden log řádek do <dir>/<služba>.log.
// Pattern "Open-Write-Close" pro každý zápis: pomalejší, ale bezpečný
// vůči rotaci logů (logrotate může soubor kdykoliv přesunout).
func appendLogToFile(dir, serviceName string, data []byte) error {
	if serviceName == "" {
		return fmt.Errorf("prázdný název služby")
	}
	filename := filepath.Join(dir, serviceName+".log")

	// O_APPEND: Psát na konec. O_CREATE: Vytvořit, pokud neexistuje.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	// Řádek skládáme do jednoho bufferu a zapíšeme jedním Write:
	// handler běží pro každou zprávu souběžně a O_APPEND garantuje
	// atomicitu jen pro jednotlivý zápis, ne pro dvojici.
	line := make([]byte, 0, len(data)+1)
	line = append(line, data...)
	line = append(line, '\n')

	if _, err := f.Write(line); err != nil {
		return err
	}

	return nil
}
