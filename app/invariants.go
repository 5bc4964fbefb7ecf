package app

import (
	"fmt"
	"sort"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// invariantRegistry collects module invariants and checks them at commit
type invariantRegistry struct {
	routes map[string]sdk.Invariant
}

var _ sdk.InvariantRegistry = (*invariantRegistry)(nil)

func newInvariantRegistry() *invariantRegistry {
	return &invariantRegistry{routes: make(map[string]sdk.Invariant)}
}

// RegisterRoute implements sdk.InvariantRegistry
func (r *invariantRegistry) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	r.routes[moduleName+"/"+route] = invar
}

// Routes returns the registered routes in sorted order
func (r *invariantRegistry) Routes() []string {
	routes := make([]string, 0, len(r.routes))
	for route := range r.routes {
		routes = append(routes, route)
	}
	sort.Strings(routes)
	return routes
}

// Assert runs every invariant and returns the first broken one
func (r *invariantRegistry) Assert(ctx sdk.Context) error {
	for _, route := range r.Routes() {
		if msg, broken := r.routes[route](ctx); broken {
			return fmt.Errorf("invariant %s broken: %s", route, msg)
		}
	}
	return nil
}

// AssertInvariants checks every registered invariant against ctx
func (app *App) AssertInvariants(ctx sdk.Context) error {
	return app.invariants.Assert(ctx)
}
