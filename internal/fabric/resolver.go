package fabric

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lzjever/fabric-mdr/internal/core"
	"github.com/lzjever/fabric-mdr/internal/observability"
)

// markerTokens flag conventionally generated endpoint names such as
// "sales - SQL analytics endpoint".
var markerTokens = []string{"sql", "analytics"}

// Resolver maps a lakehouse display name to its SQL analytics endpoint
// id. Fabric exposes no foreign key between the two, so the endpoint
// is inferred from listing APIs and naming conventions, with a fixed
// precedence to keep the answer reproducible.
type Resolver struct {
	client *Client
	log    *zap.Logger
}

func NewResolver(client *Client, log *zap.Logger) *Resolver {
	return &Resolver{client: client, log: log}
}

// endpointStrategy is one way of enumerating and matching endpoint
// candidates. Strategies run in order; a strategy whose listing fails
// upstream yields to the next one, a strategy that lists successfully
// settles the resolution either way.
type endpointStrategy struct {
	name  string
	list  func(ctx context.Context, workspaceID string) ([]Item, error)
	match func(endpoints []Item, lakehouseName string) *Item
}

// Resolve returns the SQL endpoint id for the named lakehouse.
// The lakehouse name match is exact and case-sensitive; endpoint
// matching is heuristic (see matchRelaxed, matchStrict).
func (r *Resolver) Resolve(ctx context.Context, workspaceID, lakehouseName string) (string, error) {
	lakehouses, err := r.client.ListLakehouses(ctx, workspaceID)
	if err != nil {
		observability.ResolveTotal.WithLabelValues("error").Inc()
		return "", err
	}

	var lakehouse *Item
	for i := range lakehouses {
		if lakehouses[i].DisplayName == lakehouseName {
			lakehouse = &lakehouses[i]
			break
		}
	}
	if lakehouse == nil {
		observability.ResolveTotal.WithLabelValues("lakehouse_not_found").Inc()
		return "", core.NewAppError(core.ErrLakehouseNotFound,
			fmt.Sprintf("lakehouse %q not found, available: %v", lakehouseName, displayNames(lakehouses)))
	}
	r.log.Info("lakehouse found",
		zap.String("lakehouse", lakehouseName),
		zap.String("lakehouse_id", lakehouse.ID))

	strategies := []endpointStrategy{
		{name: "direct", list: r.client.ListSQLEndpoints, match: matchRelaxed},
		{name: "items", list: r.listEndpointItems, match: matchStrict},
	}

	var considered []string
	for i, s := range strategies {
		endpoints, err := s.list(ctx, workspaceID)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && i < len(strategies)-1 {
				// The dedicated listing API is not available in every
				// workspace. Fall through to the next strategy.
				r.log.Warn("endpoint listing unavailable, trying next strategy",
					zap.String("strategy", s.name),
					zap.Int("status", apiErr.StatusCode),
					zap.String("body", apiErr.Body))
				observability.ResolveFallbackTotal.Inc()
				continue
			}
			observability.ResolveTotal.WithLabelValues("error").Inc()
			return "", err
		}

		r.log.Info("endpoints listed",
			zap.String("strategy", s.name),
			zap.Int("count", len(endpoints)))

		if ep := s.match(endpoints, lakehouseName); ep != nil {
			r.log.Info("endpoint resolved",
				zap.String("strategy", s.name),
				zap.String("endpoint", ep.DisplayName),
				zap.String("endpoint_id", ep.ID))
			observability.ResolveTotal.WithLabelValues("resolved").Inc()
			return ep.ID, nil
		}

		// A successful listing with no match ends the resolution; the
		// fallback would only re-describe the same workspace.
		considered = displayNames(endpoints)
		break
	}

	observability.ResolveTotal.WithLabelValues("no_endpoint").Inc()
	return "", core.NewAppError(core.ErrNoMatchingEndpoint,
		fmt.Sprintf("no SQL endpoint found for lakehouse %q, considered: %v", lakehouseName, considered))
}

// listEndpointItems enumerates SQL endpoints through the generic items
// listing, filtering by type client-side.
func (r *Resolver) listEndpointItems(ctx context.Context, workspaceID string) ([]Item, error) {
	items, err := r.client.ListItems(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	var endpoints []Item
	for _, it := range items {
		if it.Type == ItemTypeSQLEndpoint {
			endpoints = append(endpoints, it)
		}
	}
	return endpoints, nil
}

// matchRelaxed applies on the dedicated sqlEndpoints listing: first
// endpoint whose name contains the lakehouse name, else a
// case-insensitive exact match. First hit in listing order wins.
func matchRelaxed(endpoints []Item, lakehouseName string) *Item {
	for i := range endpoints {
		if containsFold(endpoints[i].DisplayName, lakehouseName) {
			return &endpoints[i]
		}
	}
	return matchExact(endpoints, lakehouseName)
}

// matchStrict applies on the items fallback, where candidates were
// filtered by type only: the name must contain the lakehouse name AND
// a marker token from the conventional "<name> - SQL analytics
// endpoint" form, else a case-insensitive exact match.
func matchStrict(endpoints []Item, lakehouseName string) *Item {
	for i := range endpoints {
		if !containsFold(endpoints[i].DisplayName, lakehouseName) {
			continue
		}
		name := strings.ToLower(endpoints[i].DisplayName)
		for _, marker := range markerTokens {
			if strings.Contains(name, marker) {
				return &endpoints[i]
			}
		}
	}
	return matchExact(endpoints, lakehouseName)
}

func matchExact(endpoints []Item, lakehouseName string) *Item {
	for i := range endpoints {
		if strings.EqualFold(endpoints[i].DisplayName, lakehouseName) {
			return &endpoints[i]
		}
	}
	return nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func displayNames(items []Item) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.DisplayName)
	}
	return names
}
