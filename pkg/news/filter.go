package news

import (
	"strings"
)

// RawItem is one feed entry before filtering.
type RawItem struct {
	Title       string
	Description string
	Link        string
	Published   string
}

// SourceItems groups the raw items of one source. Slice order is the
// source-declaration order and survives into the output.
type SourceItems struct {
	Source string
	Items  []RawItem
}

// Item is a retained news entry.
type Item struct {
	Source    string `json:"source"`
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published"`
}

// StatusItem is a vendor service-health entry.
type StatusItem struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Link        string `json:"link"`
	Severity    string `json:"severity"`
}

const (
	// Display prefix of a published-date string, "Mon, 02 Jan 2006".
	// Timezone and clock are dropped, display only.
	dateDisplayLen = 16

	// Boilerplate suffix marker in status descriptions.
	statusMarker = "For more information"
)

// Triggered reports whether the combined title and description contain
// any trigger substring, case-insensitive.
func Triggered(title, description string, triggers []string) bool {
	text := strings.ToLower(title + " " + description)

	for _, t := range triggers {
		if strings.Contains(text, t) {
			return true
		}
	}

	return false
}

// Filter keeps the trigger-matching items of each source, at most
// perSourceCap most-recent per source and totalCap overall. Sources
// are concatenated in declaration order, not interleaved by recency.
func Filter(sources []SourceItems, triggers []string, perSourceCap, totalCap int) []Item {
	kept := []Item{}

	for _, s := range sources {
		raw := s.Items
		if perSourceCap > 0 && len(raw) > perSourceCap {
			raw = raw[:perSourceCap]
		}

		for _, r := range raw {
			if !Triggered(r.Title, r.Description, triggers) {
				continue
			}

			kept = append(kept, Item{
				Source:    s.Source,
				Title:     r.Title,
				Link:      r.Link,
				Published: truncDate(r.Published),
			})
		}
	}

	if totalCap > 0 && len(kept) > totalCap {
		kept = kept[:totalCap]
	}

	return kept
}

// FilterStatus passes status items through uncapped by triggers; a
// title heuristic decides the severity and the boilerplate suffix is
// stripped from descriptions.
func FilterStatus(sources []SourceItems, limit int) []StatusItem {
	items := []StatusItem{}

	for _, s := range sources {
		for _, r := range s.Items {
			item := StatusItem{
				Title:       r.Title,
				Description: stripBoilerplate(r.Description),
				Date:        truncDate(r.Published),
				Link:        r.Link,
			}

			if strings.Contains(strings.ToLower(r.Title), "known issue") {
				item.Type = "Known Issue"
				item.Severity = "critical"
			} else {
				item.Type = "Status"
				item.Severity = "warning"
			}

			items = append(items, item)
		}
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	return items
}

func stripBoilerplate(description string) string {
	before, _, found := strings.Cut(description, statusMarker)
	if !found {
		return description
	}

	return strings.TrimSpace(before) + " ..."
}

func truncDate(published string) string {
	if len(published) > dateDisplayLen {
		return published[:dateDisplayLen]
	}

	return published
}
