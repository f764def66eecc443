package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/finobai/finobai/internal/config"
	"github.com/finobai/finobai/internal/database"
	"github.com/finobai/finobai/internal/events"
)

// SystemHandlers handles system monitoring endpoints
type SystemHandlers struct {
	log       zerolog.Logger
	cfg       *config.Config
	financeDB *database.DB
	cacheDB   *database.DB
	historyDB *database.DB
	bus       *events.Bus
	startTime time.Time
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(
	log zerolog.Logger,
	cfg *config.Config,
	financeDB *database.DB,
	cacheDB *database.DB,
	historyDB *database.DB,
	bus *events.Bus,
) *SystemHandlers {
	return &SystemHandlers{
		log:       log.With().Str("component", "system_handlers").Logger(),
		cfg:       cfg,
		financeDB: financeDB,
		cacheDB:   cacheDB,
		historyDB: historyDB,
		bus:       bus,
		startTime: time.Now().UTC(),
	}
}

type databaseHealth struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HandleHealth handles GET /api/system/health
//
// Runs a quick integrity check on each database; any failure degrades
// the overall status but the endpoint still answers 200 so monitors
// can read the detail.
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	databases := make([]databaseHealth, 0, 3)
	status := "ok"

	for _, db := range []*database.DB{h.financeDB, h.cacheDB, h.historyDB} {
		if db == nil {
			continue
		}
		check := databaseHealth{Name: db.Name(), Status: "ok"}
		if err := db.QuickCheck(r.Context()); err != nil {
			check.Status = "failed"
			check.Error = err.Error()
			status = "degraded"
			h.log.Error().Err(err).Str("database", db.Name()).Msg("Database health check failed")
		}
		databases = append(databases, check)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":         status,
		"databases":      databases,
		"uptime_seconds": int(time.Since(h.startTime).Seconds()),
	})
}

// HandleInfo handles GET /api/system/info
func (h *SystemHandlers) HandleInfo(w http.ResponseWriter, r *http.Request) {
	// 100ms sample keeps the endpoint fast enough for dashboard polling
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}
	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	info := map[string]interface{}{
		"go_version":  runtime.Version(),
		"goroutines":  runtime.NumGoroutine(),
		"cpu_percent": cpuAvg,
		"data_dir":    h.cfg.DataDir,
		"subscribers": 0,
	}
	if h.bus != nil {
		info["subscribers"] = h.bus.SubscriberCount()
	}

	if memStat, err := mem.VirtualMemory(); err == nil {
		info["memory_percent"] = memStat.UsedPercent
		info["memory_used_mb"] = memStat.Used / 1024 / 1024
	} else {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
	}

	if diskStat, err := disk.Usage(h.cfg.DataDir); err == nil {
		info["disk_percent"] = diskStat.UsedPercent
		info["disk_free_gb"] = float64(diskStat.Free) / 1024 / 1024 / 1024
	} else {
		h.log.Warn().Err(err).Msg("Failed to get disk usage")
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(info)
}

// HandleDatabaseStats handles GET /api/system/database/stats
func (h *SystemHandlers) HandleDatabaseStats(w http.ResponseWriter, r *http.Request) {
	stats := make(map[string]interface{})
	for _, db := range []*database.DB{h.financeDB, h.cacheDB, h.historyDB} {
		if db == nil {
			continue
		}
		dbStats, err := db.GetStats()
		if err != nil {
			h.log.Error().Err(err).Str("database", db.Name()).Msg("Failed to get database stats")
			stats[db.Name()] = map[string]string{"error": err.Error()}
			continue
		}
		stats[db.Name()] = dbStats
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stats)
}
