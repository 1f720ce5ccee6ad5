package controllers

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"ddp/internal/extract"
	"ddp/internal/services"
	"ddp/internal/structures"
)

type HealthController struct {
	service   services.DonationServiceInterface
	outputDir string
	locale    string
	pictures  bool
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	InFlight      int64   `json:"in_flight"`
	Platforms     int     `json:"platforms"`
	Locale        string  `json:"locale"`
	Pictures      bool    `json:"pictures"`
	Output        string  `json:"output"`
}

// Health reports 503 once donations can no longer be written.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		InFlight:      hc.service.InFlight(),
		Platforms:     len(extract.Platforms()),
		Locale:        hc.locale,
		Pictures:      hc.pictures,
		Output:        "ok",
	}

	status := http.StatusOK
	if err := checkDir(hc.outputDir); err != nil {
		resp.Status = "degraded"
		resp.Output = err.Error()
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

// checkDir accepts a missing directory, since the first donation creates it.
func checkDir(dir string) error {
	st, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(conf *structures.Config, service services.DonationServiceInterface) *HealthController {
	return &HealthController{
		service:   service,
		outputDir: conf.Output.Dir,
		locale:    conf.Extraction.Locale,
		pictures:  conf.Extraction.Pictures,
		startTime: time.Now(),
	}
}
