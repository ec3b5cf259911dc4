package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAppendLogToFile(t *testing.T) {
	dir := t.TempDir()

	if err := appendLogToFile(dir, "telemetry-ingestor", []byte(`{"msg":"a"}`)); err != nil {
		t.Fatalf("první zápis: %v", err)
	}
	if err := appendLogToFile(dir, "telemetry-ingestor", []byte(`{"msg":"b"}`)); err != nil {
		t.Fatalf("druhý zápis: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry-ingestor.log"))
	if err != nil {
		t.Fatalf("čtení souboru: %v", err)
	}

	want := "{\"msg\":\"a\"}\n{\"msg\":\"b\"}\n"
	if string(data) != want {
		t.Errorf("obsah souboru = %q, chceme %q", data, want)
	}
}

func TestServiceFromTopic(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		want    string
		wantErr bool
	}{
		{name: "běžný topic", topic: "logs/telemetry-ingestor", want: "telemetry-ingestor"},
		{name: "topic s úrovní navíc", topic: "logs/pool-api/info", want: "pool-api"},
		{name: "chybí služba", topic: "logs", wantErr: true},
		{name: "prázdná služba", topic: "logs/", wantErr: true},
		{name: "cizí prefix", topic: "metrics/pool-api", wantErr: true},
		{name: "tečky místo jména", topic: "logs/..", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := serviceFromTopic(tt.topic)
			if (err != nil) != tt.wantErr {
				t.Fatalf("serviceFromTopic(%q) chyba = %v, wantErr = %v", tt.topic, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("serviceFromTopic(%q) = %q, chceme %q", tt.topic, got, tt.want)
			}
		})
	}
}

func TestAppendLogToFileRejectsEmptyService(t *testing.T) {
	dir := t.TempDir()

	if err := appendLogToFile(dir, "", []byte("x")); err == nil {
		t.Fatal("prázdný název služby musí zápis odmítnout")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("v adresáři nemá nic vzniknout, našel jsem %d položek", len(entries))
	}
}

func TestAppendLogToFileSeparateServices(t *testing.T) {
	dir := t.TempDir()

	if err := appendLogToFile(dir, "pool-api", []byte("x")); err != nil {
		t.Fatalf("zápis: %v", err)
	}
	if err := appendLogToFile(dir, "probe-simulator", []byte("y")); err != nil {
		t.Fatalf("zápis: %v", err)
	}

	for _, name := range []string{"pool-api.log", "probe-simulator.log"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("soubor %s nevznikl: %v", name, err)
		}
	}
}
