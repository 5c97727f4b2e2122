package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-schemagen/internal/source/loader"
	"github.com/goliatone/go-schemagen/pkg/discriminator"
	"github.com/goliatone/go-schemagen/pkg/registry"
	"github.com/goliatone/go-schemagen/pkg/source"
	"github.com/goliatone/go-schemagen/pkg/typedesc/catalog"
)

type violation struct {
	file     string
	location string
	message  string
}

// lintModes are the registry configurations every root must resolve under.
var lintModes = []struct {
	name    string
	options []registry.Option
}{
	{name: "flatten"},
	{name: "inheritance", options: []registry.Option{
		registry.WithInheritance(true),
		registry.WithDiscriminator(discriminator.Default{}),
	}},
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [catalogs...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nCheck that every type of a catalog resolves to a schema.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"pkg/typedesc/catalog/testdata/petstore.yaml"}
	}

	violations, err := lint(context.Background(), paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if len(violations) > 0 {
		report(os.Stderr, violations)
		os.Exit(1)
	}
}

func lint(ctx context.Context, paths []string) ([]violation, error) {
	l := loader.New(source.NewLoaderOptions())

	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(ctx, l, path)
		if err != nil {
			return nil, fmt.Errorf("lint %s: %w", path, err)
		}
		violations = append(violations, linted...)
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			if violations[i].location == violations[j].location {
				return violations[i].message < violations[j].message
			}
			return violations[i].location < violations[j].location
		}
		return violations[i].file < violations[j].file
	})
	return violations, nil
}

func lintFile(ctx context.Context, l source.Loader, path string) ([]violation, error) {
	cat, err := catalog.Load(ctx, l, source.FromFile(path))
	if err != nil {
		return nil, err
	}

	var result []violation
	for _, mode := range lintModes {
		reg := registry.New(mode.options...)
		for _, name := range cat.Roots() {
			typ, err := cat.Lookup(name)
			if err != nil {
				return nil, err
			}
			if _, err := reg.Resolve(typ); err != nil {
				result = append(result, violation{
					file:     path,
					location: mode.name + " > " + name,
					message:  describe(err),
				})
			}
		}
	}
	return result, nil
}

func describe(err error) string {
	var dup *registry.DuplicatePropertyError
	if errors.As(err, &dup) {
		return fmt.Sprintf("property %q is declared by unrelated types %s and %s", dup.Name, dup.Existing, dup.Conflicting)
	}
	var mapping *registry.DuplicateMappingError
	if errors.As(err, &mapping) {
		return fmt.Sprintf("discriminator value %q maps to both %s and %s", mapping.Value, mapping.Existing, mapping.Conflicting)
	}
	return err.Error()
}

func report(w io.Writer, violations []violation) {
	for _, v := range violations {
		fmt.Fprintf(w, "%s: %s -> %s\n", v.file, v.location, v.message)
	}
}
