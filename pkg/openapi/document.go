package openapi

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-schemagen/pkg/schema"
	"github.com/goliatone/go-schemagen/pkg/source"
)

const (
	// DefaultOpenAPIVersion is the document version emitted by NewDocument.
	DefaultOpenAPIVersion = "3.0.3"
	defaultTitle          = "Schemas"
	defaultVersion        = "1.0.0"
)

// DocumentOptions controls the document envelope.
type DocumentOptions struct {
	OpenAPI     string
	Title       string
	Version     string
	Description string
}

// DocumentOption mutates DocumentOptions.
type DocumentOption func(*DocumentOptions)

// WithTitle sets info.title.
func WithTitle(title string) DocumentOption {
	return func(opts *DocumentOptions) {
		if title != "" {
			opts.Title = title
		}
	}
}

// WithVersion sets info.version.
func WithVersion(version string) DocumentOption {
	return func(opts *DocumentOptions) {
		if version != "" {
			opts.Version = version
		}
	}
}

// WithDescription sets info.description.
func WithDescription(description string) DocumentOption {
	return func(opts *DocumentOptions) {
		opts.Description = description
	}
}

// NewDocument wraps a reference table in an OpenAPI document with an empty
// paths object.
func NewDocument(refs map[string]*schema.Schema, options ...DocumentOption) *openapi3.T {
	cfg := DocumentOptions{
		OpenAPI: DefaultOpenAPIVersion,
		Title:   defaultTitle,
		Version: defaultVersion,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &openapi3.T{
		OpenAPI: cfg.OpenAPI,
		Info: &openapi3.Info{
			Title:       cfg.Title,
			Version:     cfg.Version,
			Description: cfg.Description,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: Components(refs),
		},
	}
}

// Validate checks the document with kin-openapi. Example values are not
// validated.
func Validate(ctx context.Context, doc *openapi3.T) error {
	if doc == nil {
		return fmt.Errorf("openapi: document is nil")
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return fmt.Errorf("openapi: validate: %w", err)
	}
	return nil
}

// MarshalJSON renders the document as indented JSON.
func MarshalJSON(doc *openapi3.T) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal json: %w", err)
	}
	return data, nil
}

// MarshalYAML renders the document as YAML, keeping the key order of the
// JSON form.
func MarshalYAML(doc *openapi3.T) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal yaml: %w", err)
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("openapi: marshal yaml: %w", err)
	}
	clearStyle(&node)
	out, err := yaml.Marshal(&node)
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal yaml: %w", err)
	}
	return out, nil
}

// Marshal renders the document in the requested format.
func Marshal(doc *openapi3.T, format source.Format) ([]byte, error) {
	switch format {
	case source.FormatJSON, "":
		return MarshalJSON(doc)
	case source.FormatYAML:
		return MarshalYAML(doc)
	default:
		return nil, fmt.Errorf("openapi: unsupported format %q", format)
	}
}

// clearStyle drops the flow and quoting styles inherited from the JSON input
// so the output reads as block YAML.
func clearStyle(node *yaml.Node) {
	if node.Kind == yaml.ScalarNode {
		if node.Tag == "!!str" {
			node.Style = 0
		}
	} else {
		node.Style = 0
	}
	for _, child := range node.Content {
		clearStyle(child)
	}
}
