package application

import (
	"context"
	"strings"
	"sync"

	"github.com/hyrosy/tripdesk/internal/domain"
	"github.com/hyrosy/tripdesk/internal/ports"
)

// enrichItems attaches a trip name to every item: the embedded order title
// when present, otherwise a secondary lookup of the trip reference,
// otherwise domain.UnknownTripName. Items resolve concurrently with at most
// limit lookups in flight; output order matches input order. A failed
// lookup is a normal outcome, never an error.
func enrichItems(ctx context.Context, lookup ports.TripLookup, session domain.Session, items []domain.ResourceItem, limit int) []domain.ResourceItem {
	if limit < 1 {
		limit = 1
	}

	enriched := make([]domain.ResourceItem, len(items))
	sem := make(chan struct{}, limit)

	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(i int, item domain.ResourceItem) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			item.TripName = resolveTripName(ctx, lookup, session, item)
			enriched[i] = item
		}(i, items[i])
	}
	wg.Wait()

	return enriched
}

func resolveTripName(ctx context.Context, lookup ports.TripLookup, session domain.Session, item domain.ResourceItem) string {
	if name := strings.TrimSpace(item.EmbeddedTripName); name != "" {
		return name
	}

	if item.TripID > 0 {
		title, err := lookup.LookupTripName(ctx, session, item.TripID)
		if err == nil {
			if title = strings.TrimSpace(title); title != "" {
				return title
			}
		}
	}

	return domain.UnknownTripName
}
