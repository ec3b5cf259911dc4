package main

import (
	"fmt"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MqttLogWriter implementuje rozhraní io.Writer.
// Vše, co se do něj zapíše, se odešle do MQTT.
// Log-collector tyto zprávy sbírá z topicu logs/# a ukládá do souborů.
//
// Klient vzniká až PO loggeru (problém slepice-vejce: chceme logovat
// už během připojování). Proto se dosazuje dodatečně přes SetClient
// a přístup k němu hlídá mutex - Write volají i goroutiny paho klienta.
// Dokud klient není dosazen, jdou zprávy jen na stdout (MultiWriter).
type MqttLogWriter struct {
	mu          sync.Mutex
	client      mqtt.Client
	topicPrefix string
}

// NewMqttLogWriter vytvoří novou instanci writeru, zatím bez klienta.
// topicPrefix bude např. "logs/telemetry-ingestor"
func NewMqttLogWriter(serviceName string) *MqttLogWriter {
	return &MqttLogWriter{
		topicPrefix: fmt.Sprintf("logs/%s", serviceName),
	}
}

// SetClient dosadí připojeného klienta. Od této chvíle jdou logy i do MQTT.
func (w *MqttLogWriter) SetClient(client mqtt.Client) {
	w.mu.Lock()
	w.client = client
	w.mu.Unlock()
}

// Write je metoda vyžadovaná rozhraním io.Writer.
// slog ji zavolá pokaždé, když chce něco zalogovat.
func (w *MqttLogWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	client := w.client
	w.mu.Unlock()

	// Před SetClient nemáme kam publikovat - zpráva projde jen na stdout.
	if client == nil {
		return len(p), nil
	}

	// Payload musíme zkopírovat, protože 'p' se může změnit.
	payload := make([]byte, len(p))
	copy(payload, p)

	// Token.Wait() NEVOLÁME, aby logování nezpomalovalo aplikaci (fire-and-forget).
	client.Publish(w.topicPrefix, 0, false, payload)

	return len(p), nil
}
