package handlers

import (
	"encoding/json"
	"net/http"
	"runtime"
)

// VersionResponse describes the running binary.
type VersionResponse struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Build metadata, overridden at link time via -ldflags.
var (
	serviceName = "codeshift"
	version     = "dev"
	commit      = ""
	buildDate   = ""
)

// SetVersionInfo overrides the build metadata reported by VersionHandler.
// Empty fields keep their current value.
func SetVersionInfo(v, c, date string) {
	if v != "" {
		version = v
	}
	if c != "" {
		commit = c
	}
	if date != "" {
		buildDate = date
	}
}

// Version returns the reported version string.
func Version() string { return version }

// VersionHandler serves build metadata for the running service.
func VersionHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(VersionResponse{
		Service:   serviceName,
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	})
}
