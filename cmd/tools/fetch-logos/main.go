// fetch-logos refreshes the canonical-name -> logo URL file the report
// renderer uses, and reports ESPN team names the mapping table does not
// know yet.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/hoopcast/hoopcast/internal/pkg/config"
	"github.com/hoopcast/hoopcast/internal/pkg/teams"
	"github.com/hoopcast/hoopcast/internal/sources/espn"
)

func main() {
	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = "configs/production.yaml"
	}

	configPath := flag.String("config", defaultConfig, "Path to config file")
	out := flag.String("out", "", "Output path (default: teams.logo_file from config)")
	flag.Parse()

	if err := run(*configPath, *out); err != nil {
		log.Fatalf("fetch-logos: %v", err)
	}
}

func run(configPath, out string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if out == "" {
		out = cfg.Teams.LogoFile
	}
	if out == "" {
		return fmt.Errorf("no output path: set -out or teams.logo_file")
	}

	table, err := teams.LoadTable(cfg.Teams.MappingFile)
	if err != nil {
		return fmt.Errorf("load team mapping: %w", err)
	}
	resolver := teams.NewResolver(table)

	client := espn.NewClient(&cfg.Schedule, cfg.Sources.UserAgent, resolver)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	logos, err := client.TeamLogos(ctx)
	if err != nil {
		return fmt.Errorf("fetch team logos: %w", err)
	}

	urls := make(map[string]string, len(logos))
	for canonical, info := range logos {
		urls[canonical] = info.LogoURL
	}

	data, err := json.MarshalIndent(urls, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write logo file: %w", err)
	}
	fmt.Printf("Wrote %d logos to %s\n", len(urls), out)

	if unmapped := resolver.Unmapped(); len(unmapped) > 0 {
		sort.Strings(unmapped)
		fmt.Printf("%d ESPN team names missing from the mapping table:\n", len(unmapped))
		for _, name := range unmapped {
			fmt.Printf("  %s\n", name)
		}
	}
	return nil
}
