package report

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/threatdeck/threatdeck/config"
	"github.com/threatdeck/threatdeck/internal/dashboard"
	"github.com/threatdeck/threatdeck/pkg/lifecycle"

	"github.com/olekukonko/tablewriter"
)

// ResolveDashboard prints the run summary to the console.
func ResolveDashboard(ctx context.Context, conf *config.Conf, d *dashboard.Dashboard) error {

	expired, warning, ok := 0, 0, 0
	for _, r := range d.Lifecycle {
		switch r.Status {
		case lifecycle.StatusExpired:
			expired += 1
		case lifecycle.StatusWarning:
			warning += 1
		case lifecycle.StatusOK:
			ok += 1
		default:
			// ignore
		}
	}

	fmt.Printf("\nCollected %s exploited vulnerabilities | "+
		"Lifecycle Expired: %s Warning: %s Ok: %s | News: %s\n\n",
		config.Yellow(len(d.Vulns)),
		config.Red(expired),
		config.Yellow(warning),
		config.Green(ok),
		config.Yellow(len(d.News)))

	counts := map[string]int{}
	for _, v := range d.Vulns {
		counts[v.Category] += 1
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Category", "Entries"})
	table.SetRowLine(true)

	for _, c := range conf.Vendors {
		table.Append([]string{c.Name, strconv.Itoa(counts[c.Name])})
	}
	table.Append([]string{conf.CatchAll, strconv.Itoa(counts[conf.CatchAll])})

	table.Render()

	fmt.Printf("\nLifecycle:\n")

	table = tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Product", "End of Support", "Status"})
	table.SetRowLine(true)

	// Worst status first on the console, the dashboard keeps date order
	rows := make([]lifecycle.Record, len(d.Lifecycle))
	copy(rows, d.Lifecycle)
	sort.SliceStable(rows, func(i, j int) bool {
		return config.StatusMap[string(rows[i].Status)] > config.StatusMap[string(rows[j].Status)]
	})

	for _, r := range rows {
		table.Append([]string{r.Product, r.EOL, judgeStatus(r.Status)})
	}

	table.Render()

	fmt.Printf("\nSources:\n")

	table = tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Source", "Records", "Error"})
	table.SetRowLine(true)

	for _, s := range d.Sources {
		errText := s.Err
		if errText != "" {
			errText = config.Red(errText)
		}
		table.Append([]string{s.Source, strconv.Itoa(s.Records), errText})
	}

	table.Render()

	if failed := d.Failed(); failed > 0 {
		fmt.Printf("\n%s\n", config.Red(fmt.Sprintf("%d source(s) contributed no data", failed)))
	}

	return nil
}

func judgeStatus(status lifecycle.Status) string {
	switch status {
	case lifecycle.StatusExpired:
		return config.Red("expired")
	case lifecycle.StatusWarning:
		return config.Yellow("warning")
	case lifecycle.StatusOK:
		return config.Green("ok")
	default:
		// ignore
	}

	return string(status)
}
