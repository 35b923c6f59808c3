//go:build !cgo

package main

import (
	"context"
	"errors"

	"github.com/lonelycodes/excali-script/internal/graph"
	"github.com/lonelycodes/excali-script/internal/mcptools"
)

var errNoKuzu = errors.New("--graph-db requires a cgo build")

func persistGraph(context.Context, string, *graph.DependencyGraph) error {
	return errNoKuzu
}

func openGraphDB(string) (graph.Store, error) {
	return nil, errNoKuzu
}

func graphDBFactory(string) mcptools.StoreFactory {
	return func() (graph.Store, error) { return nil, errNoKuzu }
}
