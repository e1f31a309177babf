package dashboard

import (
	"time"

	"github.com/threatdeck/threatdeck/pkg/classify"
	"github.com/threatdeck/threatdeck/pkg/lifecycle"
	"github.com/threatdeck/threatdeck/pkg/news"
)

// Dashboard is everything one run renders.
type Dashboard struct {
	GeneratedAt time.Time `json:"generatedAt"`

	Vulns     []classify.Vulnerability `json:"vulnerabilities"`
	Lifecycle []lifecycle.Record       `json:"lifecycle"`
	News      []news.Item              `json:"news"`
	Status    []news.StatusItem        `json:"status"`

	Sources []SourceReport `json:"sources"`
}

// SourceReport is the per-source outcome of a run. A failed source
// degrades to zero records, it never aborts the run; the report is how
// partial data stays visible instead of only console text.
type SourceReport struct {
	Source  string `json:"source"`
	Records int    `json:"records"`
	Err     string `json:"error,omitempty"`
}

// Failed counts sources that contributed nothing because of an error.
func (d *Dashboard) Failed() int {
	failed := 0
	for _, s := range d.Sources {
		if s.Err != "" {
			failed++
		}
	}
	return failed
}
