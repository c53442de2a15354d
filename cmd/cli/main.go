package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"newsvis-go-audit/internal/audit"
	"newsvis-go-audit/internal/config"
	"newsvis-go-audit/internal/report"
	"newsvis-go-audit/internal/urlx"
	"newsvis-go-audit/pkg/logger"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 2
	}

	switch args[0] {
	case "audit":
		return runAudit(args[1:])
	case "report":
		return runReport(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		usage()
		return 2
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: newsvis-audit <audit|report> -site URL [flags]")
}

type commonFlags struct {
	site       string
	sampleSize int
	configPath string
	logLevel   string
}

func registerCommon(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVar(&f.site, "site", "", "site URL, e.g. https://example.com/")
	fs.IntVar(&f.sampleSize, "sample-size", 0, "number of articles to sample (overrides config)")
	fs.StringVar(&f.configPath, "config", "", "optional YAML config path")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// loadConfig resolves the effective configuration from the optional file
// plus command-line overrides, and initializes logging.
func loadConfig(f commonFlags) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if f.sampleSize > 0 {
		cfg.SampleSize = f.sampleSize
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runAudit(args []string) int {
	fs := flag.NewFlagSet("audit", flag.ExitOnError)
	var f commonFlags
	registerCommon(fs, &f)
	jsonOut := fs.String("json-out", "", "optional JSON output path")
	_ = fs.Parse(args)

	if f.site == "" {
		fmt.Fprintln(os.Stderr, "missing -site")
		return 2
	}
	cfg, err := loadConfig(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 1
	}

	res, err := audit.New(cfg).Run(context.Background(), f.site)
	if err != nil {
		return fail(err)
	}
	fmt.Println(report.Summarize(res))

	if *jsonOut != "" {
		if err := report.WriteJSON(*jsonOut, res); err != nil {
			fmt.Fprintln(os.Stderr, "write json:", err)
			return 1
		}
		fmt.Printf("\nSaved audit JSON: %s\n", *jsonOut)
	}
	return 0
}

func runReport(args []string) int {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	var f commonFlags
	registerCommon(fs, &f)
	markdownOut := fs.String("markdown-out", "reports/latest.md", "path to write markdown report")
	jsonOut := fs.String("json-out", "reports/latest.json", "path to write JSON report payload")
	_ = fs.Parse(args)

	if f.site == "" {
		fmt.Fprintln(os.Stderr, "missing -site")
		return 2
	}
	cfg, err := loadConfig(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 1
	}

	res, err := audit.New(cfg).Run(context.Background(), f.site)
	if err != nil {
		return fail(err)
	}

	payload := report.BuildPayload(res)
	markdown := report.RenderMarkdown(res, payload.Issues)

	if err := report.WriteText(*markdownOut, markdown); err != nil {
		fmt.Fprintln(os.Stderr, "write markdown:", err)
		return 1
	}
	if err := report.WriteJSON(*jsonOut, payload); err != nil {
		fmt.Fprintln(os.Stderr, "write json:", err)
		return 1
	}

	fmt.Println(report.Summarize(res))
	fmt.Printf("\nSaved markdown report: %s\n", *markdownOut)
	fmt.Printf("Saved JSON summary: %s\n", *jsonOut)
	return 0
}

func fail(err error) int {
	fmt.Fprintln(os.Stderr, "ERROR:", err)
	if errors.Is(err, urlx.ErrInvalidSite) {
		return 2
	}
	return 1
}
