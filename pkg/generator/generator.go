// Package generator runs schema generation passes. Every document variant is
// resolved against its own registry so separately generated documents never
// share reference tables.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-schemagen/pkg/openapi"
	"github.com/goliatone/go-schemagen/pkg/registry"
	"github.com/goliatone/go-schemagen/pkg/schema"
	"github.com/goliatone/go-schemagen/pkg/typedesc"
)

// Root is a named entry point of a variant.
type Root struct {
	Name string
	Type typedesc.Type
}

// Variant describes one output document.
type Variant struct {
	Name    string
	Title   string
	Version string
	Roots   []Root
}

// Diagnostic records a failure that did not stop the pass. Root is empty for
// document-level failures such as validation.
type Diagnostic struct {
	Variant string
	Root    string
	Err     error
}

func (d Diagnostic) Error() string {
	if d.Root == "" {
		return fmt.Sprintf("variant %q: %v", d.Variant, d.Err)
	}
	return fmt.Sprintf("variant %q root %q: %v", d.Variant, d.Root, d.Err)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// Result is the output of one variant pass.
type Result struct {
	Variant     string
	Document    *openapi3.T
	Roots       map[string]*schema.Schema
	Diagnostics []Diagnostic
}

// Option customises the generator.
type Option func(*Generator)

// WithRegistryOptions sets the options applied to every fresh registry.
func WithRegistryOptions(options ...registry.Option) Option {
	return func(g *Generator) {
		g.registryOptions = append(g.registryOptions, options...)
	}
}

// WithFailFast stops at the first root failure and returns it as an error.
func WithFailFast() Option {
	return func(g *Generator) {
		g.failFast = true
	}
}

// WithParallel runs up to n variants concurrently.
func WithParallel(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.parallel = n
		}
	}
}

// WithValidation validates every assembled document with kin-openapi and
// reports failures as diagnostics.
func WithValidation(enabled bool) Option {
	return func(g *Generator) {
		g.validate = enabled
	}
}

// WithLogger sets the logger used for pass progress. The same logger is
// handed to each registry.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Generator coordinates registry passes and document assembly.
type Generator struct {
	registryOptions []registry.Option
	failFast        bool
	parallel        int
	validate        bool
	logger          *slog.Logger
}

// New constructs a Generator.
func New(options ...Option) *Generator {
	g := &Generator{
		parallel: 1,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	return g
}

// Generate resolves every variant. Results keep the order of variants. With
// WithFailFast the first root failure is returned as an error together with
// the results completed so far; otherwise failures are reported as
// diagnostics and the error is nil unless ctx is cancelled.
func (g *Generator) Generate(ctx context.Context, variants ...Variant) ([]Result, error) {
	if len(variants) == 0 {
		return nil, errors.New("generator: no variants supplied")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		results = make([]Result, len(variants))
		errs    = make([]error, len(variants))
		wg      sync.WaitGroup
		slots   = make(chan struct{}, g.parallel)
	)
	for i, variant := range variants {
		wg.Add(1)
		go func(i int, variant Variant) {
			defer wg.Done()
			select {
			case slots <- struct{}{}:
			case <-ctx.Done():
				errs[i] = ctx.Err()
				return
			}
			defer func() { <-slots }()

			results[i], errs[i] = g.run(ctx, variant)
			if errs[i] != nil {
				cancel()
			}
		}(i, variant)
	}
	wg.Wait()

	completed := make([]Result, 0, len(results))
	var first error
	for i := range results {
		if errs[i] != nil {
			if first == nil || errors.Is(first, context.Canceled) {
				first = errs[i]
			}
			continue
		}
		completed = append(completed, results[i])
	}
	return completed, first
}

func (g *Generator) run(ctx context.Context, variant Variant) (Result, error) {
	options := append([]registry.Option{registry.WithLogger(g.logger)}, g.registryOptions...)
	reg := registry.New(options...)
	logger := g.logger.With("variant", variant.Name)

	result := Result{
		Variant: variant.Name,
		Roots:   make(map[string]*schema.Schema, len(variant.Roots)),
	}
	for _, root := range variant.Roots {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		node, err := reg.Resolve(root.Type)
		if err != nil {
			diag := Diagnostic{Variant: variant.Name, Root: root.Name, Err: err}
			if g.failFast {
				return Result{}, fmt.Errorf("generator: %w", diag)
			}
			logger.Warn("generator: root failed", "root", root.Name, "error", err)
			result.Diagnostics = append(result.Diagnostics, diag)
			continue
		}
		result.Roots[root.Name] = node
	}

	result.Document = openapi.NewDocument(reg.References(),
		openapi.WithTitle(variant.Title),
		openapi.WithVersion(variant.Version),
	)
	if g.validate {
		if err := openapi.Validate(ctx, result.Document); err != nil {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{Variant: variant.Name, Err: err})
		}
	}
	logger.Info("generator: variant complete",
		"schemas", reg.Len(),
		"roots", len(result.Roots),
		"diagnostics", len(result.Diagnostics),
	)
	return result, nil
}

// Diagnostics flattens the diagnostics of every result.
func Diagnostics(results []Result) []Diagnostic {
	var out []Diagnostic
	for _, result := range results {
		out = append(out, result.Diagnostics...)
	}
	return out
}
