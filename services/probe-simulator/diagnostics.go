package main

import (
	"log/slog"
	"time"

	// Knihovna gopsutil pro čtení systémových statistik (CPU, RAM).
	// Simulátor (a v budoucnu firmware mostu skutečné sondy) hlásí zdraví
	// svého hostitele na pool/status - mrtvá sonda se tak dá odlišit
	// od sondy, která jen nemá co hlásit.
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostStats je snímek zdraví hostitele, na kterém simulátor běží.
type HostStats struct {
	// CPULoad: Průměrné vytížení procesoru v procentech (0-100).
	CPULoad float64 `json:"cpu_load"`

	// RAM v megabajtech. Na RPi u bazénu je RAM první, co dojde.
	RamUsedMB  float64 `json:"ram_used_mb"`
	RamTotalMB float64 `json:"ram_total_mb"`
}

// CollectHostStats změří aktuální stav hostitele.
// Dílčí chyba (např. nečitelné CPU čítače) měření nezastaví -
// zalogujeme ji a pošleme aspoň to, co máme.
func CollectHostStats(logger *slog.Logger) *HostStats {
	stats := &HostStats{}

	// cpu.Percent s intervalem 1s: funkce vlákno na vteřinu uspí a spočítá
	// rozdíl čítačů. percpu=false = průměr přes všechna jádra.
	percentages, err := cpu.Percent(time.Second, false)
	if err == nil && len(percentages) > 0 {
		stats.CPULoad = percentages[0]
	} else {
		logger.Error("Chyba při čtení CPU statistik", "error", err)
	}

	// RAM: Used počítáme jako Total - Available, ne vMem.Used.
	// Linux drží volnou paměť jako diskovou cache a vMem.Used by
	// ukazoval skoro plnou RAM i na líném stroji.
	vMem, err := mem.VirtualMemory()
	if err == nil {
		realUsedBytes := vMem.Total - vMem.Available
		stats.RamUsedMB = float64(realUsedBytes) / 1024.0 / 1024.0
		stats.RamTotalMB = float64(vMem.Total) / 1024.0 / 1024.0
	} else {
		logger.Error("Chyba při čtení RAM statistik", "error", err)
	}

	return stats
}
