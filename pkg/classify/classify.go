package classify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/threatdeck/threatdeck/config"
	"github.com/threatdeck/threatdeck/pkg/feed"
)

const (
	nvdURL = "https://nvd.nist.gov/vuln/detail/%s"

	// Advanced hunting query for Defender-managed fleets. Only the
	// Microsoft bucket gets one.
	huntingTemplate = `DeviceTvmSoftwareVulnerabilities | where CveId == "%s"`

	huntingCategory = "Microsoft"
)

// Vulnerability is a catalog entry after classification.
type Vulnerability struct {
	CVEID          string `json:"cveID"`
	VendorProject  string `json:"vendorProject"`
	Product        string `json:"product"`
	Name           string `json:"vulnerabilityName"`
	Description    string `json:"shortDescription"`
	RequiredAction string `json:"requiredAction"`
	DateAdded      string `json:"dateAdded"`

	Category     string `json:"category"`
	Link         string `json:"link"`
	HuntingQuery string `json:"huntingQuery,omitempty"`
}

// Category returns the first vendor bucket whose keyword set has a
// substring match against the vendor field, or catchAll when none
// does. Table order decides ties.
func Category(vendorField string, table []config.VendorCategory, catchAll string) string {
	vendor := strings.ToLower(vendorField)

	for _, c := range table {
		for _, k := range c.Keywords {
			if strings.Contains(vendor, k) {
				return c.Name
			}
		}
	}

	return catchAll
}

// Run classifies every catalog record, newest first, capped at
// conf.VulnCap.
func Run(records []feed.KevRecord, conf *config.Conf) []Vulnerability {
	vulns := make([]Vulnerability, 0, len(records))

	for _, r := range records {
		v := Vulnerability{
			CVEID:          r.CVEID,
			VendorProject:  r.VendorProject,
			Product:        r.Product,
			Name:           r.Name,
			Description:    r.Description,
			RequiredAction: r.RequiredAction,
			DateAdded:      r.DateAdded,

			Category: Category(r.VendorProject, conf.Vendors, conf.CatchAll),
			Link:     fmt.Sprintf(nvdURL, r.CVEID),
		}

		if v.Category == huntingCategory {
			v.HuntingQuery = fmt.Sprintf(huntingTemplate, r.CVEID)
		}

		vulns = append(vulns, v)
	}

	sort.SliceStable(vulns, func(i, j int) bool {
		return vulns[i].DateAdded > vulns[j].DateAdded
	})

	if conf.VulnCap > 0 && len(vulns) > conf.VulnCap {
		vulns = vulns[:conf.VulnCap]
	}

	return vulns
}
