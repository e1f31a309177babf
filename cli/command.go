package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/threatdeck/threatdeck/config"
	"github.com/threatdeck/threatdeck/internal"
	"github.com/threatdeck/threatdeck/pkg/feed"
	"github.com/threatdeck/threatdeck/pkg/feedcache"
)

var version = "v0.2.0"

var (
	rootCmd = &cobra.Command{
		Use:   "threatdeck [OPTIONS]",
		Short: "Threat intelligence dashboard generator",
		Long: `Threatdeck aggregates public threat intelligence feeds into one
               static HTML dashboard for IT operations`,
	}

	outfile    string
	configFile string
	skipUpdate bool
	skipNews   bool
	resetCache bool
)

func Execute() error {
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Fetch every feed and render the dashboard",
		Long: `Examples:
  # Generate with the built-in tables
  $ threatdeck generate

  # Generate to a fixed path
  $ threatdeck generate -o public/index.html

  # Generate with an overridden vendor table
  $ threatdeck generate --config threatdeck.yaml

  # Generate without refreshing the catalog cache
  $ threatdeck generate --skip

  # Generate without the news and status sections
  $ threatdeck generate --skip-news`,
		Args: NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := config.Ctx
			ctx = context.WithValue(ctx, "output", outfile)
			ctx = context.WithValue(ctx, "config", configFile)
			ctx = context.WithValue(ctx, "skip", skipUpdate)
			ctx = context.WithValue(ctx, "skipNews", skipNews)

			internal.DoGenerate(ctx)
		},
	}

	// Refresh the local catalog cache
	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the local catalog cache",
		Args:  NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := config.Ctx
			ctx = context.WithValue(ctx, "reset", resetCache)

			conf, err := config.Load(configFile)
			if err != nil {
				log.Printf("failed to load configuration, error: %v", err)
				return
			}

			err = feedcache.Refresh(ctx, feed.NewClient(0), conf.CatalogURL)
			if err != nil {
				log.Printf("Updating catalog cache failed, error: %v", err)
				return
			}

			log.Printf(config.Green("Updating catalog cache success"))
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information and quit",
		Args:  NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	generateCmd.Flags().StringVarP(&outfile, "output", "o", "output", "output file location")
	generateCmd.Flags().StringVar(&configFile, "config", "", "configuration file overriding the built-in tables")
	generateCmd.Flags().BoolVar(&skipUpdate, "skip", false, "skip the catalog cache refresh")
	generateCmd.Flags().BoolVar(&skipNews, "skip-news", false, "skip the news and status feeds")

	refreshCmd.Flags().StringVar(&configFile, "config", "", "configuration file overriding the built-in tables")
	refreshCmd.Flags().BoolVarP(&resetCache, "all", "a", false, "Reset the cache")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(versionCmd)
	return rootCmd.Execute()
}
