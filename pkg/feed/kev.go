package feed

import (
	"context"
	"net/http"

	"github.com/tidwall/gjson"
)

// KevRecord is one raw entry of the CISA Known Exploited
// Vulnerabilities catalog. Every field is untrusted feed text.
type KevRecord struct {
	CVEID          string
	VendorProject  string
	Product        string
	Name           string
	Description    string
	RequiredAction string
	DateAdded      string
}

// FetchCatalog downloads and parses the KEV catalog.
func FetchCatalog(ctx context.Context, cli *http.Client, url string) ([]KevRecord, error) {
	body, err := get(ctx, cli, url)
	if err != nil {
		return nil, err
	}

	return ParseCatalog(body), nil
}

// ParseCatalog extracts the vulnerability entries. Entries without a
// cveID are dropped.
func ParseCatalog(data []byte) []KevRecord {
	records := []KevRecord{}

	gjson.GetBytes(data, "vulnerabilities").ForEach(func(_, v gjson.Result) bool {
		r := KevRecord{
			CVEID:          v.Get("cveID").String(),
			VendorProject:  v.Get("vendorProject").String(),
			Product:        v.Get("product").String(),
			Name:           v.Get("vulnerabilityName").String(),
			Description:    v.Get("shortDescription").String(),
			RequiredAction: v.Get("requiredAction").String(),
			DateAdded:      v.Get("dateAdded").String(),
		}

		if r.CVEID != "" {
			records = append(records, r)
		}

		return true
	})

	return records
}
