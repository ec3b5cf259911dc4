package main

import (
	"os"
	"time"
)

// Config pro simulátor sondy. Služba slouží k vývoji a demu:
// generuje věrohodná data, když skutečná sonda není po ruce.
type Config struct {
	MQTTBroker   string
	MQTTClientID string

	// DataTopic: Kam publikujeme telemetrii (stejný topic jako skutečná sonda).
	DataTopic string

	// StatusTopic: Kam publikujeme diagnostiku hostitele (CPU, RAM).
	StatusTopic string

	// Interval měření (např. "30s", "1m")
	Interval time.Duration
}

func LoadConfig() Config {
	intervalStr := getEnv("PROBE_INTERVAL", "30s")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		interval = 30 * time.Second
	}

	return Config{
		MQTTBroker:   getEnv("MQTT_BROKER", "tcp://broker.hivemq.com:1883"),
		MQTTClientID: getEnv("MQTT_CLIENT_ID", "probe-simulator"),
		DataTopic:    getEnv("MQTT_TOPIC_PUBLISH", "pool/data"),
		StatusTopic:  getEnv("MQTT_TOPIC_STATUS", "pool/status"),
		Interval:     interval,
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
