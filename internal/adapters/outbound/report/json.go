// Package report writes detection reports in their machine-readable form.
package report

import (
	"encoding/json"
	"io"

	"github.com/abdidvp/testguard/internal/domain"
)

// CheckReport is the top-level JSON output of a working-tree check.
type CheckReport struct {
	Version string           `json:"version"`
	Files   []*domain.Report `json:"files"`
}

// WriteJSON writes one report as indented JSON.
func WriteJSON(w io.Writer, r *domain.Report) error {
	out := *r
	if out.Violations == nil {
		out.Violations = []domain.Violation{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteCheckJSON writes the per-file reports of a check as indented JSON.
func WriteCheckJSON(w io.Writer, reports []*domain.Report, version string) error {
	if reports == nil {
		reports = []*domain.Report{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(CheckReport{Version: version, Files: reports})
}
