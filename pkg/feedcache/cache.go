package feedcache

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/threatdeck/threatdeck/config"
	"github.com/threatdeck/threatdeck/pkg/feed"
)

// Client wraps the local snapshot of the vulnerability catalog.
type Client struct {
	Cli *http.Client
	DB  *sql.DB

	Store string
}

// Refresh updates the cached catalog snapshot when the cache is older
// than a day, or unconditionally when ctx carries reset=true.
func Refresh(ctx context.Context, cli *http.Client, catalogURL string) error {
	log.Printf(config.Green("Checking catalog cache"))

	store, err := storeDir()
	if err != nil {
		log.Printf("failed to get home dir, error: %v", err)
		return err
	}

	if ctx.Value("reset") != nil && ctx.Value("reset").(bool) {
		_ = os.Remove(filepath.Join(store, "date.txt"))
		_ = os.Remove(filepath.Join(store, "threatdeck.db"))
	}

	if !exists(store) {
		if err := mkFolder(store); err != nil {
			log.Printf("failed to create folder, error: %v", err)
			return err
		}
	}

	if !checkExpired(store) {
		log.Printf("Catalog cache is up to date")
		return nil
	}

	log.Printf("Catalog cache expired, fetching catalog")

	records, err := feed.FetchCatalog(ctx, cli, catalogURL)
	if err != nil {
		log.Printf("failed to fetch catalog, error: %v", err)
		return err
	}

	c := Client{Cli: cli, Store: store}
	if err := c.Init(); err != nil {
		log.Printf("failed to init cache database")
		return err
	}

	defer c.DB.Close()

	if err := c.Replace(records); err != nil {
		log.Printf("failed to store catalog, error: %v", err)
		return err
	}

	if err := writeLog(store); err != nil {
		log.Printf("failed to write date log, error: %v", err)
	}

	log.Printf(config.Green("Catalog cache updated, %d records"), len(records))

	return nil
}

// Load reads the cached catalog snapshot, stale or not.
func Load() ([]feed.KevRecord, error) {
	store, err := storeDir()
	if err != nil {
		return nil, err
	}

	c := Client{Store: store}
	if err := c.Init(); err != nil {
		return nil, err
	}

	defer c.DB.Close()

	return c.Records()
}

func storeDir() (string, error) {
	if runtime.GOOS == "windows" {
		dir, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "threatdeckdata"), nil
	}

	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".threatdeck"), nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsExist(err) {
			return true
		}

		return false
	}
	return true
}

func mkFolder(path string) error {
	if !exists(path) {
		err := os.MkdirAll(path, os.FileMode(0755))
		if err != nil {
			return err
		}
	}
	return nil
}

func checkExpired(path string) bool {
	filename := filepath.Join(path, "date.txt")

	if !exists(filename) {
		return true
	}

	value, err := os.ReadFile(filename)
	if err != nil || len(value) < 1 {
		return true
	}

	logDate, err := time.Parse("02/01/2006", string(value))
	if err != nil {
		log.Printf("Date format error, expired")
		return true
	}

	return time.Now().After(logDate.AddDate(0, 0, 1))
}

func writeLog(path string) error {
	filename := filepath.Join(path, "date.txt")

	return os.WriteFile(filename, []byte(time.Now().Format("02/01/2006")), 0644)
}
