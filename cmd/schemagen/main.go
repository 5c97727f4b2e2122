package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-schemagen/internal/source/loader"
	"github.com/goliatone/go-schemagen/pkg/descriptions"
	"github.com/goliatone/go-schemagen/pkg/discriminator"
	"github.com/goliatone/go-schemagen/pkg/generator"
	"github.com/goliatone/go-schemagen/pkg/naming"
	"github.com/goliatone/go-schemagen/pkg/openapi"
	"github.com/goliatone/go-schemagen/pkg/registry"
	"github.com/goliatone/go-schemagen/pkg/source"
	"github.com/goliatone/go-schemagen/pkg/typedesc/catalog"
)

const httpTimeout = 30 * time.Second

type config struct {
	catalog       string
	roots         []string
	interactive   bool
	camel         bool
	inheritance   bool
	discriminator string
	descriptions  string
	format        source.Format
	output        string
	title         string
	version       string
	verbose       bool
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("invalid arguments: %v", err)
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var selector rootSelector
	if cfg.interactive {
		selector = surveySelector
	}

	diagnostics, err := run(context.Background(), cfg, os.Stdout, logger, selector)
	if err != nil {
		log.Fatalf("Failed to generate schemas: %v", err)
	}
	if diagnostics > 0 {
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	fs := flag.NewFlagSet("schemagen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s -catalog <file|url> [flags]\n\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(fs.Output(), "Generate OpenAPI component schemas from a type catalog.\n\n")
		fs.PrintDefaults()
	}

	var (
		cfg    config
		roots  string
		format string
	)
	fs.StringVar(&cfg.catalog, "catalog", "", "type catalog path or URL (YAML or JSON)")
	fs.StringVar(&roots, "roots", "", "comma separated root types (all catalog types when empty; preselected with -interactive)")
	fs.BoolVar(&cfg.interactive, "interactive", false, "pick root types interactively")
	fs.BoolVar(&cfg.camel, "camel", false, "camelCase property names")
	fs.BoolVar(&cfg.inheritance, "inheritance", false, "reference base types via allOf instead of flattening")
	fs.StringVar(&cfg.discriminator, "discriminator", "", "default discriminator property; enables oneOf for subtypes (needs -inheritance)")
	fs.StringVar(&cfg.descriptions, "descriptions", "", "property description overrides (YAML or JSON)")
	fs.StringVar(&format, "format", string(source.FormatJSON), "output format: json or yaml")
	fs.StringVar(&cfg.output, "output", "", "output file (stdout if empty)")
	fs.StringVar(&cfg.title, "title", "", "document title")
	fs.StringVar(&cfg.version, "version", "", "document version")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if strings.TrimSpace(cfg.catalog) == "" {
		return config{}, errors.New("-catalog is required")
	}
	cfg.roots = splitList(roots)

	switch f := source.Format(strings.ToLower(format)); f {
	case source.FormatJSON, source.FormatYAML:
		cfg.format = f
	default:
		return config{}, fmt.Errorf("unsupported -format %q", format)
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config, stdout io.Writer, logger *slog.Logger, selector rootSelector) (int, error) {
	src := source.Parse(cfg.catalog)
	if src == nil {
		return 0, fmt.Errorf("invalid catalog source %q", cfg.catalog)
	}
	l := loader.New(source.NewLoaderOptions(source.WithHTTPFallback(httpTimeout)))

	cat, err := catalog.Load(ctx, l, src)
	if err != nil {
		return 0, err
	}
	logger.Debug("catalog loaded", "location", src.Location(), "types", len(cat.Names()))

	docs := descriptions.New().Merge(cat.Descriptions())
	if cfg.descriptions != "" {
		descSrc := source.Parse(cfg.descriptions)
		if descSrc == nil {
			return 0, fmt.Errorf("invalid descriptions source %q", cfg.descriptions)
		}
		overrides, err := descriptions.Load(ctx, l, descSrc)
		if err != nil {
			return 0, err
		}
		docs.Merge(overrides)
	}

	names := cfg.roots
	if selector != nil {
		names, err = selector(cat.Roots(), cfg.roots)
		if err != nil {
			return 0, err
		}
	}
	if len(names) == 0 {
		names = cat.Roots()
	}

	variant := generator.Variant{Name: "default", Title: cfg.title, Version: cfg.version}
	for _, name := range names {
		typ, err := cat.Lookup(name)
		if err != nil {
			return 0, err
		}
		variant.Roots = append(variant.Roots, generator.Root{Name: name, Type: typ})
	}

	regOptions := []registry.Option{
		registry.WithInheritance(cfg.inheritance),
		registry.WithDescriptions(docs),
	}
	if cfg.camel {
		regOptions = append(regOptions, registry.WithNameResolver(naming.CamelCase{}))
	}
	if cfg.discriminator != "" {
		regOptions = append(regOptions, registry.WithDiscriminator(discriminator.Default{PropertyName: cfg.discriminator}))
	}

	gen := generator.New(
		generator.WithRegistryOptions(regOptions...),
		generator.WithValidation(true),
		generator.WithLogger(logger),
	)
	results, err := gen.Generate(ctx, variant)
	if err != nil {
		return 0, err
	}
	diagnostics := generator.Diagnostics(results)
	for _, diag := range diagnostics {
		logger.Error("schema generation failed", "variant", diag.Variant, "root", diag.Root, "error", diag.Err)
	}

	data, err := openapi.Marshal(results[0].Document, cfg.format)
	if err != nil {
		return len(diagnostics), err
	}
	if cfg.output != "" {
		if err := os.WriteFile(cfg.output, data, 0o644); err != nil {
			return len(diagnostics), fmt.Errorf("write output: %w", err)
		}
		logger.Info("schemas written", "path", cfg.output, "schemas", len(results[0].Document.Components.Schemas))
		return len(diagnostics), nil
	}
	if _, err := stdout.Write(append(data, '\n')); err != nil {
		return len(diagnostics), fmt.Errorf("write output: %w", err)
	}
	return len(diagnostics), nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
