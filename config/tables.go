package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// VendorCategory is one bucket of the vendor table. Order of the table
// is significant: classification is first-match-wins.
type VendorCategory struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Product is one endoflife.date product line to track.
type Product struct {
	Slug string `yaml:"slug"`
	Name string `yaml:"name"`
}

// FeedSource is one RSS/Atom endpoint.
type FeedSource struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Conf carries every table and constant the pipeline needs. Components
// take it at construction so tests can pass fixture tables instead of
// touching globals.
type Conf struct {
	CatalogURL   string `yaml:"catalogUrl"`
	LifecycleURL string `yaml:"lifecycleUrl"`

	Vendors  []VendorCategory `yaml:"vendors"`
	CatchAll string           `yaml:"catchAll"`

	Products []Product `yaml:"products"`

	NewsSources   []FeedSource `yaml:"newsSources"`
	StatusSources []FeedSource `yaml:"statusSources"`
	Triggers      []string     `yaml:"triggers"`

	VulnCap            int `yaml:"vulnCap"`
	PerSourceCap       int `yaml:"perSourceCap"`
	TotalCap           int `yaml:"totalCap"`
	StatusCap          int `yaml:"statusCap"`
	VersionsPerProduct int `yaml:"versionsPerProduct"`
	RetentionDays      int `yaml:"retentionDays"`
	WarningDays        int `yaml:"warningDays"`
}

// Default returns the built-in tables.
func Default() *Conf {
	return &Conf{
		CatalogURL:   "https://www.cisa.gov/sites/default/files/feeds/known_exploited_vulnerabilities.json",
		LifecycleURL: "https://endoflife.date/api/%s.json",

		Vendors: []VendorCategory{
			{Name: "Microsoft", Keywords: []string{"microsoft"}},
			{Name: "Cisco", Keywords: []string{"cisco"}},
			{Name: "Citrix", Keywords: []string{"citrix"}},
			{Name: "Palo Alto", Keywords: []string{"palo alto"}},
			{Name: "Check Point", Keywords: []string{"checkpoint", "check point"}},
		},
		CatchAll: "Other",

		Products: []Product{
			{Slug: "windows", Name: "Windows Desktop"},
			{Slug: "windows-server", Name: "Windows Server"},
			{Slug: "exchange-server", Name: "Exchange Server"},
			{Slug: "office", Name: "Office / M365 Apps"},
			{Slug: "sql-server", Name: "SQL Server"},
		},

		NewsSources: []FeedSource{
			{Name: "BleepingComputer", URL: "https://www.bleepingcomputer.com/feed/"},
			{Name: "The Hacker News", URL: "https://feeds.feedburner.com/TheHackersNews"},
			{Name: "CISA Advisories", URL: "https://www.cisa.gov/cybersecurity-advisories/all.xml"},
		},
		StatusSources: []FeedSource{
			{Name: "Microsoft 365", URL: "https://status.cloud.microsoft/api/feed/m365consumer"},
		},
		Triggers: []string{
			"critical", "zero-day", "0-day", "exploited", "ransomware",
			"rce", "patch", "vulnerability", "backdoor", "breach",
		},

		VulnCap:            60,
		PerSourceCap:       10,
		TotalCap:           15,
		StatusCap:          8,
		VersionsPerProduct: 5,
		RetentionDays:      730,
		WarningDays:        365,
	}
}

// Load returns the default tables overridden by a YAML file. Fields
// absent from the file keep their defaults.
func Load(path string) (*Conf, error) {
	conf := Default()
	if path == "" {
		return conf, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, err
	}

	return conf, nil
}
