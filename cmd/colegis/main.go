package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/joeblew999/colegis/internal/legis"
	"github.com/joeblew999/colegis/internal/logging"
	"github.com/joeblew999/colegis/internal/server"
	"github.com/joeblew999/colegis/internal/service"
)

// Options defines all CLI flags and env vars for the map server.
// Flags: --host, --port, --data-dir, --source-url, --web-dir, --log-level, --log-format
// Env vars: SERVICE_HOST, SERVICE_PORT, SERVICE_DATA_DIR, SERVICE_SOURCE_URL, ...
type Options struct {
	Host      string `doc:"Host to bind to" default:"0.0.0.0"`
	Port      int    `doc:"Port to listen on" short:"p" default:"8086"`
	DataDir   string `doc:"Directory holding the roster and boundary files" default:".data"`
	SourceURL string `doc:"Base URL to fetch the input files from instead of data-dir"`
	WebDir    string `doc:"Optional web/ directory with static files and template overrides"`
	LogLevel  string `doc:"Log level (debug, info, warn, error)" default:"info"`
	LogFormat string `doc:"Log format (json or console)" default:"console"`
}

func newServer(opts *Options, noDB bool) (*server.Server, error) {
	return server.New(server.Config{
		Host:      opts.Host,
		Port:      fmt.Sprintf("%d", opts.Port),
		DataDir:   opts.DataDir,
		SourceURL: opts.SourceURL,
		WebDir:    opts.WebDir,
		NoDB:      noDB,
	})
}

// app is the part of server.Server that serve drives.
type app interface {
	http.Handler
	Load(ctx context.Context) error
	Close() error
}

// serve loads the maps and blocks serving HTTP. The app is closed before
// serve returns, including when the listener fails.
func serve(ctx context.Context, a app, httpSrv *http.Server) error {
	defer a.Close()

	loadCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	if err := a.Load(loadCtx); err != nil {
		zap.L().Error("initial load failed; map endpoints return 503 until a reload succeeds", zap.Error(err))
	}
	cancel()

	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if err := logging.Init(opts.LogLevel, opts.LogFormat); err != nil {
			fatal("Error initializing logger: %v", err)
		}

		var httpSrv *http.Server

		hooks.OnStart(func() {
			srv, err := newServer(opts, false)
			if err != nil {
				fatal("Error creating server: %v", err)
			}

			addr := fmt.Sprintf("%s:%d", opts.Host, opts.Port)
			displayHost := opts.Host
			if displayHost == "0.0.0.0" {
				displayHost = "localhost"
			}
			baseURL := fmt.Sprintf("http://%s:%d", displayHost, opts.Port)

			fmt.Println()
			fmt.Printf("colegis map server starting...\n")
			fmt.Printf("  Server:  %s\n", baseURL)
			if opts.SourceURL != "" {
				fmt.Printf("  Source:  %s\n", opts.SourceURL)
			} else {
				fmt.Printf("  Data:    %s\n", opts.DataDir)
			}
			fmt.Println()
			fmt.Printf("  Viewer:  %s/viewer\n", baseURL)
			fmt.Printf("  Docs:    %s/docs\n", baseURL)
			fmt.Printf("  OpenAPI: %s/openapi.json\n", baseURL)
			fmt.Println()

			httpSrv = &http.Server{Addr: addr, Handler: srv}
			if err := serve(context.Background(), srv, httpSrv); err != nil {
				fatal("Server error: %v", err)
			}
		})

		hooks.OnStop(func() {
			if httpSrv == nil {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			httpSrv.Shutdown(ctx)
		})
	})

	cli.Root().Use = "colegis"
	cli.Root().Short = "Colorado legislative district maps"
	cli.Root().Version = "0.1.0"

	// spec subcommand: export OpenAPI spec
	specCmd := &cobra.Command{
		Use:   "spec",
		Short: "Export OpenAPI spec (JSON by default, --yaml for YAML)",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			srv, err := newServer(opts, true)
			if err != nil {
				fatal("Error creating server: %v", err)
			}
			spec := srv.OpenAPI()

			useYAML, _ := cmd.Flags().GetBool("yaml")

			var output []byte
			if useYAML {
				output, err = yaml.Marshal(spec)
			} else {
				output, err = json.MarshalIndent(spec, "", "  ")
			}
			if err != nil {
				fatal("Error marshaling spec: %v", err)
			}
			fmt.Println(string(output))
		}),
	}
	specCmd.Flags().BoolP("yaml", "y", false, "Output as YAML instead of JSON")
	cli.Root().AddCommand(specCmd)

	// scrape subcommand: rebuild legislators.json from the General Assembly site
	scrapeCmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape the legislator roster into a legislators.json file",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			if err := logging.Init(opts.LogLevel, opts.LogFormat); err != nil {
				fatal("Error initializing logger: %v", err)
			}
			rosterURL, _ := cmd.Flags().GetString("url")
			out, _ := cmd.Flags().GetString("out")
			skip, _ := cmd.Flags().GetBool("skip-details")

			scraper := legis.NewScraper(legis.ScraperOptions{SkipDetails: skip})
			records, err := scraper.Scrape(cmd.Context(), rosterURL)
			if err != nil {
				fatal("Error scraping roster: %v", err)
			}

			data, err := json.MarshalIndent(records, "", "  ")
			if err != nil {
				fatal("Error encoding roster: %v", err)
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				fatal("Error writing %s: %v", out, err)
			}
			fmt.Printf("Saved %d legislators to %s\n", len(records), out)
		}),
	}
	scrapeCmd.Flags().String("url", legis.DefaultRosterURL, "Roster page URL")
	scrapeCmd.Flags().StringP("out", "o", service.LegislatorsFile, "Output file")
	scrapeCmd.Flags().Bool("skip-details", false, "Skip legislator detail pages (no committees or counties)")
	cli.Root().AddCommand(scrapeCmd)

	// validate subcommand: check a roster file for incomplete entries
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a legislators.json file",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			file, _ := cmd.Flags().GetString("file")
			data, err := os.ReadFile(file)
			if err != nil {
				fatal("Error reading %s: %v", file, err)
			}
			records, err := legis.ParseRecords(data)
			if err != nil {
				fatal("Error parsing %s: %v", file, err)
			}

			issues := legis.Validate(records)
			if len(issues) == 0 {
				fmt.Printf("All %d legislators passed validation.\n", len(records))
				return
			}
			fmt.Printf("Found %d legislators with issues:\n", len(issues))
			for _, issue := range issues {
				fmt.Printf("  %s\n", issue)
			}
			os.Exit(1)
		}),
	}
	validateCmd.Flags().StringP("file", "f", service.LegislatorsFile, "Roster file to validate")
	cli.Root().AddCommand(validateCmd)

	cli.Run()
}
