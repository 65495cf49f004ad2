package services

import (
	"burnshop_server/database"
	"context"
	"runtime"
	"time"

	"github.com/MonkyMars/gecho"
)

var uptimeStart = time.Now()

type ServerHealthStatus struct {
	Uptime       float64   `json:"uptime"`        // in seconds
	CurrentTime  time.Time `json:"current_time"`  // server current time
	ServiceAlive bool      `json:"service_alive"` // always true if service is running
	RamStats     *RamStats `json:"ram_stats"`
	Goroutines   int       `json:"goroutines"`
}

type RamStats struct {
	TotalMB     uint64 `json:"total_mb"`
	UsedMB      uint64 `json:"used_mb"`
	FreeMB      uint64 `json:"free_mb"`
	UsedPercent uint64 `json:"used_percent"`
}

type DatabaseHealthStatus struct {
	Connected      bool           `json:"connected"`
	LastChecked    time.Time      `json:"last_checked"`
	ResponseTimeMs int64          `json:"response_time_ms"`
	Cache          map[string]any `json:"cache"`
}

type HealthService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewHealthService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *HealthService {
	return &HealthService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

func getRamStats() *RamStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	totalMB := m.Sys / 1024 / 1024
	usedMB := m.Alloc / 1024 / 1024
	freeMB := totalMB - usedMB
	usedPercent := uint64(0)
	if totalMB > 0 {
		usedPercent = (usedMB * 100) / totalMB
	}

	return &RamStats{
		TotalMB:     totalMB,
		UsedMB:      usedMB,
		FreeMB:      freeMB,
		UsedPercent: usedPercent,
	}
}

func (hs *HealthService) GetServerHealthStatus() ServerHealthStatus {
	return ServerHealthStatus{
		Uptime:       time.Since(uptimeStart).Seconds(),
		CurrentTime:  time.Now(),
		ServiceAlive: true,
		RamStats:     getRamStats(),
		Goroutines:   runtime.NumGoroutine(),
	}
}

// GetDatabaseHealthStatus pings the database and reports the Redis pool alongside it
func (hs *HealthService) GetDatabaseHealthStatus(ctx context.Context) (DatabaseHealthStatus, error) {
	start := time.Now()
	err := hs.db.Health(ctx)
	elapsed := time.Since(start).Milliseconds()

	status := DatabaseHealthStatus{
		Connected:      err == nil,
		LastChecked:    time.Now(),
		ResponseTimeMs: elapsed,
		Cache:          hs.cacheService.GetConnectionStats(),
	}

	if err != nil {
		hs.logger.Error("Database health check failed", gecho.Field("error", err))
	}
	return status, err
}
