package internal

import (
	"context"
	"log"
	"time"

	"github.com/threatdeck/threatdeck/config"
	"github.com/threatdeck/threatdeck/internal/dashboard"
	"github.com/threatdeck/threatdeck/internal/report"
	"github.com/threatdeck/threatdeck/pkg/classify"
	"github.com/threatdeck/threatdeck/pkg/feed"
	"github.com/threatdeck/threatdeck/pkg/feedcache"
	"github.com/threatdeck/threatdeck/pkg/lifecycle"
	"github.com/threatdeck/threatdeck/pkg/news"
)

const feedTimeout = 10 * time.Second

// DoGenerate runs the whole pipeline: fetch every source best-effort,
// classify and filter, then render the HTML and JSON artifacts. A
// failing source contributes zero records and a report entry, never an
// aborted run.
func DoGenerate(ctx context.Context) {
	conf, err := config.Load(ctx.Value("config").(string))
	if err != nil {
		log.Printf("failed to load configuration, error: %v", err)
		return
	}

	dash := &dashboard.Dashboard{
		GeneratedAt: time.Now().UTC(),
	}

	dash.Vulns, dash.Sources = fetchCatalog(ctx, conf, dash.Sources)

	dash.Lifecycle, dash.Sources = fetchLifecycle(ctx, conf, dash.Sources)

	if !ctx.Value("skipNews").(bool) {
		dash.News, dash.Sources = fetchNews(ctx, conf, dash.Sources)
		dash.Status, dash.Sources = fetchStatus(ctx, conf, dash.Sources)
	}

	err = report.ResolveDashboard(ctx, conf, dash)
	if err != nil {
		log.Printf("report error %v", err)
	}

	err = report.DashboardToHTML(ctx, conf, dash)
	if err != nil {
		log.Printf("saving error %v", err)
	}

	err = report.DashboardToJson(ctx, dash)
	if err != nil {
		log.Printf("saving error %v", err)
	}
}

// fetchCatalog yields the classified vulnerability cards. The cache is
// refreshed first unless skipped; a stale snapshot still beats an
// empty dashboard, so Load is tried before any direct fetch.
func fetchCatalog(ctx context.Context, conf *config.Conf, reports []dashboard.SourceReport) ([]classify.Vulnerability, []dashboard.SourceReport) {
	// No deadline on the catalog fetch
	cli := feed.NewClient(0)

	if !ctx.Value("skip").(bool) {
		if err := feedcache.Refresh(ctx, cli, conf.CatalogURL); err != nil {
			log.Printf("failed to refresh catalog cache, error: %v", err)
		}
	}

	rep := dashboard.SourceReport{Source: "CISA KEV"}

	records, err := feedcache.Load()
	if err != nil || len(records) == 0 {
		records, err = feed.FetchCatalog(ctx, cli, conf.CatalogURL)
		if err != nil {
			log.Printf("failed to fetch catalog, error: %v", err)
			rep.Err = err.Error()
			records = nil
		}
	}

	rep.Records = len(records)

	return classify.Run(records, conf), append(reports, rep)
}

func fetchLifecycle(ctx context.Context, conf *config.Conf, reports []dashboard.SourceReport) ([]lifecycle.Record, []dashboard.SourceReport) {
	cli := feed.NewClient(feedTimeout)

	opt := lifecycle.Options{
		MaxVersions:   conf.VersionsPerProduct,
		RetentionDays: conf.RetentionDays,
		WarningDays:   conf.WarningDays,
	}

	today := time.Now()
	records := []lifecycle.Record{}

	for _, p := range conf.Products {
		rep := dashboard.SourceReport{Source: "lifecycle/" + p.Slug}

		cycles, err := feed.FetchCycles(ctx, cli, conf.LifecycleURL, p.Slug)
		if err != nil {
			log.Printf("failed to fetch lifecycle of %s, error: %v", p.Slug, err)
			rep.Err = err.Error()
		} else {
			evaluated := lifecycle.Evaluate(cycles, p.Name, today, opt)
			rep.Records = len(evaluated)
			records = append(records, evaluated...)
		}

		reports = append(reports, rep)
	}

	lifecycle.Sort(records)

	return records, reports
}

func fetchNews(ctx context.Context, conf *config.Conf, reports []dashboard.SourceReport) ([]news.Item, []dashboard.SourceReport) {
	sources, reports := fetchSources(ctx, conf.NewsSources, reports)

	return news.Filter(sources, conf.Triggers, conf.PerSourceCap, conf.TotalCap), reports
}

func fetchStatus(ctx context.Context, conf *config.Conf, reports []dashboard.SourceReport) ([]news.StatusItem, []dashboard.SourceReport) {
	sources, reports := fetchSources(ctx, conf.StatusSources, reports)

	return news.FilterStatus(sources, conf.StatusCap), reports
}

func fetchSources(ctx context.Context, confSources []config.FeedSource, reports []dashboard.SourceReport) ([]news.SourceItems, []dashboard.SourceReport) {
	cli := feed.NewClient(feedTimeout)

	sources := []news.SourceItems{}
	for _, s := range confSources {
		rep := dashboard.SourceReport{Source: s.Name}

		items, err := feed.FetchItems(ctx, cli, s.URL)
		if err != nil {
			log.Printf("failed to fetch %s, error: %v", s.Name, err)
			rep.Err = err.Error()
		} else {
			rep.Records = len(items)
			sources = append(sources, news.SourceItems{Source: s.Name, Items: items})
		}

		reports = append(reports, rep)
	}

	return sources, reports
}
