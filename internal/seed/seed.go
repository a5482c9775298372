// Package seed reads a list of links from YAML and imports it into the
// store in one transaction. Each entry's position becomes its order.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sundayezeilo/linkbio/internal/links"
)

//go:embed links.yaml
var defaultSeed []byte

// Entry is one link in a seed file.
type Entry struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
	Tag         string `yaml:"tag,omitempty"`
}

// Result reports what an import did.
type Result struct {
	Imported int
	Total    int
}

// Default returns the built-in seed list.
func Default() ([]Entry, error) {
	return Parse(defaultSeed)
}

// Load reads and parses the seed file at path.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML list of entries. Unknown keys and entries missing
// name, url or description are rejected.
func Parse(data []byte) ([]Entry, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var entries []Entry
	if err := dec.Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("seed file is empty")
		}
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if len(entries) == 0 {
		return nil, errors.New("seed file has no entries")
	}

	for i, e := range entries {
		if e.Name == "" || e.URL == "" || e.Description == "" {
			return nil, fmt.Errorf("entry %d: %w", i, links.ErrMissingFields)
		}
	}
	return entries, nil
}

// Requests converts entries to create requests with order = index.
func Requests(entries []Entry) []links.CreateLinkRequest {
	reqs := make([]links.CreateLinkRequest, 0, len(entries))
	for i, e := range entries {
		order := i
		req := links.CreateLinkRequest{
			Name:        e.Name,
			URL:         e.URL,
			Description: e.Description,
			Order:       &order,
		}
		if e.Tag != "" {
			tag := e.Tag
			req.Tag = &tag
		}
		reqs = append(reqs, req)
	}
	return reqs
}

// Run imports entries through svc and reports the store's total afterwards.
func Run(ctx context.Context, svc links.Service, entries []Entry, replace bool) (Result, error) {
	created, err := svc.Import(ctx, Requests(entries), replace)
	if err != nil {
		return Result{}, fmt.Errorf("failed to import links: %w", err)
	}

	total, err := svc.Count(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to count links: %w", err)
	}

	return Result{Imported: len(created), Total: total}, nil
}
