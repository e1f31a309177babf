package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/threatdeck/threatdeck/config"
	"github.com/threatdeck/threatdeck/internal/dashboard"
)

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

func getOutputFile(ctx context.Context) (string, error) {
	outfile := ctx.Value("output").(string)
	if outfile == "output" {
		pwd, _ := os.Getwd()
		folder := filepath.Join(pwd, "output")
		if !exists(folder) {
			err := os.MkdirAll(folder, os.FileMode(0755))
			if err != nil {
				return "", err
			}
		}
		nowStamp := time.Now().Format("2006-01-02")
		file := filepath.Join(folder, fmt.Sprintf("%s.html", nowStamp))

		return file, nil

	} else {
		folder := filepath.Dir(outfile)
		if !exists(folder) {
			err := os.MkdirAll(folder, os.FileMode(0755))
			if err != nil {
				return "", err
			}
		}

		return outfile, nil

	}

}

// DashboardToHTML writes the self-contained HTML artifact.
func DashboardToHTML(ctx context.Context, conf *config.Conf, d *dashboard.Dashboard) error {
	filename, err := getOutputFile(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	defer f.Close()

	if err := RenderHTML(f, conf, d); err != nil {
		return err
	}

	fmt.Printf("\n")
	log.Printf("Dashboard is saved in: %s", config.Yellow(filename))

	return nil
}

// DashboardToJson writes the machine-readable artifact next to the
// HTML one.
func DashboardToJson(ctx context.Context, d *dashboard.Dashboard) error {
	filename, err := getOutputFile(ctx)
	if err != nil {
		return err
	}

	filename = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".json"

	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	err = os.WriteFile(filename, data, 0644)
	if err != nil {
		return err
	}

	log.Printf("Report file is saved in: %s", config.Yellow(filename))

	return nil
}
