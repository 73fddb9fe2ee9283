package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// MonitoringServer exposes operational stats on a side port, separate
// from the billing API.
type MonitoringServer struct {
	db   *pgxpool.Pool
	port int
}

type Stats struct {
	DatabaseStatus    string  `json:"database_status"`
	ActiveConnections int     `json:"active_connections"`
	ResponseTime      int64   `json:"response_time_ms"`
	DBSize            string  `json:"db_size"`
	Uptime            string  `json:"uptime"`
	CPUPercent        float64 `json:"cpu_percent"`
	MemoryPercent     float64 `json:"memory_percent"`
	MemoryUsed        string  `json:"memory_used"`
	MemoryTotal       string  `json:"memory_total"`
	DiskPercent       float64 `json:"disk_percent"`
	DiskUsed          string  `json:"disk_used"`
	DiskTotal         string  `json:"disk_total"`
	PoolTotalConns    int32   `json:"pool_total_conns"`
	PoolIdleConns     int32   `json:"pool_idle_conns"`
}

func NewMonitoringServer(db *pgxpool.Pool, port int) *MonitoringServer {
	return &MonitoringServer{db: db, port: port}
}

func (ms *MonitoringServer) Start() {
	r := mux.NewRouter()

	r.HandleFunc("/api/stats", ms.getStats).Methods("GET")

	addr := fmt.Sprintf(":%d", ms.port)
	log.Printf("[Monitoring] Stats server running on %s", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}

func (ms *MonitoringServer) getStats(w http.ResponseWriter, r *http.Request) {
	stats := ms.collectStats()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func (ms *MonitoringServer) collectStats() Stats {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := ms.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	dbStatus := "healthy"
	if err != nil {
		dbStatus = "unhealthy"
	}

	var activeConns int
	ms.db.QueryRow(ctx, "SELECT count(*) FROM pg_stat_activity").Scan(&activeConns)

	var dbSizeBytes int64
	ms.db.QueryRow(ctx, "SELECT pg_database_size(current_database())").Scan(&dbSizeBytes)

	var uptimeSec int
	ms.db.QueryRow(ctx, "SELECT EXTRACT(EPOCH FROM (NOW() - pg_postmaster_start_time()))::int").Scan(&uptimeSec)

	cpuPercents, _ := cpu.Percent(time.Second, false)
	cpuPercent := 0.0
	if len(cpuPercents) > 0 {
		cpuPercent = cpuPercents[0]
	}

	memStats, _ := mem.VirtualMemory()
	diskStats, _ := disk.Usage("/")

	poolStat := ms.db.Stat()

	return Stats{
		DatabaseStatus:    dbStatus,
		ActiveConnections: activeConns,
		ResponseTime:      responseTime,
		DBSize:            formatBytes(uint64(dbSizeBytes)),
		Uptime:            formatUptime(uptimeSec),
		CPUPercent:        cpuPercent,
		MemoryPercent:     memStats.UsedPercent,
		MemoryUsed:        formatBytes(memStats.Used),
		MemoryTotal:       formatBytes(memStats.Total),
		DiskPercent:       diskStats.UsedPercent,
		DiskUsed:          formatBytes(diskStats.Used),
		DiskTotal:         formatBytes(diskStats.Total),
		PoolTotalConns:    poolStat.TotalConns(),
		PoolIdleConns:     poolStat.IdleConns(),
	}
}

func formatBytes(bytes uint64) string {
	gb := float64(bytes) / (1024 * 1024 * 1024)
	if gb < 1 {
		mb := float64(bytes) / (1024 * 1024)
		return fmt.Sprintf("%.1f MB", mb)
	}
	return fmt.Sprintf("%.1f GB", gb)
}

func formatUptime(seconds int) string {
	d := seconds / 86400
	h := (seconds % 86400) / 3600
	m := (seconds % 3600) / 60
	if d > 0 {
		return fmt.Sprintf("%dd %dh %dm", d, h, m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
