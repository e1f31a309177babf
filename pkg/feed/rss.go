package feed

import (
	"context"
	"net/http"

	"github.com/mmcdole/gofeed"

	"github.com/threatdeck/threatdeck/pkg/news"
)

// FetchItems downloads one RSS/Atom feed and flattens its entries.
// Feed order is kept, most feeds publish newest-first.
func FetchItems(ctx context.Context, cli *http.Client, url string) ([]news.RawItem, error) {
	parser := gofeed.NewParser()
	parser.Client = cli

	f, err := parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, err
	}

	items := make([]news.RawItem, 0, len(f.Items))
	for _, it := range f.Items {
		items = append(items, news.RawItem{
			Title:       it.Title,
			Description: it.Description,
			Link:        it.Link,
			Published:   it.Published,
		})
	}

	return items, nil
}
