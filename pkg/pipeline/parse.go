package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/matzehuels/forcefield/pkg/errors"
	"github.com/matzehuels/forcefield/pkg/fetch"
	"github.com/matzehuels/forcefield/pkg/graph"
	"github.com/matzehuels/forcefield/pkg/observability"
)

// Parse loads and validates the input graph from opts.Data or opts.Source.
func Parse(ctx context.Context, opts Options) (graph.Graph, error) {
	source := opts.Source
	if source == "" {
		source = "<inline>"
	}

	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, source)
	start := time.Now()

	g, err := parseGraph(ctx, opts)
	hooks.OnParseComplete(ctx, source, len(g.Nodes), len(g.Links), time.Since(start), err)
	if err != nil {
		return graph.Graph{}, err
	}
	return g, nil
}

func parseGraph(ctx context.Context, opts Options) (graph.Graph, error) {
	data, err := readSource(ctx, opts)
	if err != nil {
		return graph.Graph{}, err
	}
	return graph.Unmarshal(data)
}

// readSource returns the raw graph bytes from opts.Data or opts.Source.
// A source starting with http:// or https:// is fetched over the network.
func readSource(ctx context.Context, opts Options) ([]byte, error) {
	if len(opts.Data) > 0 {
		return opts.Data, nil
	}
	if fetch.IsURL(opts.Source) {
		return fetch.NewClient().Get(ctx, opts.Source)
	}
	data, err := os.ReadFile(opts.Source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound,
				"graph file not found: %s", opts.Source)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err,
			"failed to read graph file: %s", opts.Source)
	}
	return data, nil
}
