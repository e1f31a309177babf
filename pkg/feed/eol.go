package feed

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	version2 "github.com/hashicorp/go-version"
	"github.com/tidwall/gjson"

	"github.com/threatdeck/threatdeck/pkg/lifecycle"
)

// FetchCycles downloads the release cycles of one product line. The
// urlPattern holds one %s verb for the product slug.
func FetchCycles(ctx context.Context, cli *http.Client, urlPattern, slug string) ([]lifecycle.Cycle, error) {
	body, err := get(ctx, cli, fmt.Sprintf(urlPattern, slug))
	if err != nil {
		return nil, err
	}

	return ParseCycles(body), nil
}

// ParseCycles extracts the cycle list and orders it newest-first by
// the cycle version. The upstream feed is usually already ordered
// that way, but that is its convention, not a contract.
func ParseCycles(data []byte) []lifecycle.Cycle {
	cycles := []lifecycle.Cycle{}

	gjson.ParseBytes(data).ForEach(func(_, v gjson.Result) bool {
		c := lifecycle.Cycle{
			Cycle: v.Get("cycle").String(),
		}

		eol := v.Get("eol")
		switch {
		case eol.Type == gjson.False:
			c.NoEOL = true
		case eol.Type == gjson.String:
			c.EOL = eol.String()
		}

		if c.Cycle != "" {
			cycles = append(cycles, c)
		}

		return true
	})

	sortCycles(cycles)

	return cycles
}

func sortCycles(cycles []lifecycle.Cycle) {
	parsed := make(map[string]*version2.Version, len(cycles))
	for _, c := range cycles {
		if v, err := version2.NewVersion(c.Cycle); err == nil {
			parsed[c.Cycle] = v
		}
	}

	// Keep the feed order when any cycle name is not a version, e.g.
	// Windows cycles like "11-23h2".
	if len(parsed) != len(cycles) {
		return
	}

	sort.SliceStable(cycles, func(i, j int) bool {
		return parsed[cycles[i].Cycle].GreaterThan(parsed[cycles[j].Cycle])
	})
}
