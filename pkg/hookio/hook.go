package hookio

import (
	"context"
	"fmt"
	"io"

	"github.com/routelab/skillrouter/pkg/catalog"
	"github.com/routelab/skillrouter/pkg/contextgen"
	"github.com/routelab/skillrouter/pkg/router"
)

// Hook wires the routing pipeline to the hook transport: query in,
// context block out.
type Hook struct {
	cat       *catalog.Catalog
	router    *router.Router
	assembler *contextgen.Assembler
	source    *QuerySource
	out       io.Writer
}

// NewHook creates a hook runner over a loaded catalog.
func NewHook(cat *catalog.Catalog, r *router.Router, assembler *contextgen.Assembler, source *QuerySource, out io.Writer) *Hook {
	return &Hook{
		cat:       cat,
		router:    r,
		assembler: assembler,
		source:    source,
		out:       out,
	}
}

// Run reads the query, routes it, and writes the assembled block. An
// empty query or an error route writes nothing; both are a clean exit.
func (h *Hook) Run(ctx context.Context) error {
	query := h.source.Query()
	if query == "" {
		return nil
	}

	result := h.router.Route(ctx, query)
	block := h.assembler.Assemble(ctx, result, h.cat)
	if block == "" {
		return nil
	}

	_, err := fmt.Fprintln(h.out, block)
	return err
}
