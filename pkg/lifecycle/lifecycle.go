package lifecycle

import (
	"sort"
	"time"
)

// Status of a product version relative to its end-of-support date.
type Status string

const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusExpired Status = "expired"
)

const dateLayout = "2006-01-02"

// Cycle is one raw release cycle from the lifecycle feed.
type Cycle struct {
	Cycle string
	// EOL is the announced end-of-support date (ISO), empty when the
	// feed carries none.
	EOL string
	// NoEOL marks the feed's boolean-false sentinel: no end of life
	// announced for this cycle.
	NoEOL bool
}

// Record is an evaluated product version.
type Record struct {
	Product  string    `json:"product"`
	EOL      string    `json:"eol"`
	Status   Status    `json:"status"`
	SortDate time.Time `json:"-"`
}

// Options bound what Evaluate keeps.
type Options struct {
	// MaxVersions caps how many cycles of one product line are
	// considered. Zero means all.
	MaxVersions int
	// RetentionDays drops versions expired longer ago than this.
	RetentionDays int
	// WarningDays is the days-left threshold below which a version is
	// flagged as warning.
	WarningDays int
}

// StatusOf classifies a days-left value.
func StatusOf(daysLeft, warningDays int) Status {
	switch {
	case daysLeft < 0:
		return StatusExpired
	case daysLeft < warningDays:
		return StatusWarning
	default:
		return StatusOK
	}
}

// Evaluate turns the raw cycles of one product line into display
// records. Cycles without a usable end-of-support date are skipped,
// never failed; a single bad record does not affect its siblings.
func Evaluate(cycles []Cycle, friendlyName string, today time.Time, opt Options) []Record {
	if opt.MaxVersions > 0 && len(cycles) > opt.MaxVersions {
		cycles = cycles[:opt.MaxVersions]
	}

	today = midnight(today)

	records := []Record{}
	for _, c := range cycles {
		if c.NoEOL || c.EOL == "" {
			continue
		}

		eol, err := time.Parse(dateLayout, c.EOL)
		if err != nil {
			continue
		}

		daysLeft := int(eol.Sub(today).Hours() / 24)

		// Bound the displayed history
		if daysLeft < -opt.RetentionDays {
			continue
		}

		records = append(records, Record{
			Product:  friendlyName + " " + c.Cycle,
			EOL:      c.EOL,
			Status:   StatusOf(daysLeft, opt.WarningDays),
			SortDate: eol,
		})
	}

	return records
}

// Sort orders records ascending by end-of-support date.
func Sort(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SortDate.Before(records[j].SortDate)
	})
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
