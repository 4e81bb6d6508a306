package ports

import (
	"context"

	"github.com/hyrosy/tripdesk/internal/domain"
)

type IdentityVerifier interface {
	// VerifyIdentity exchanges the Basic credential for the server-confirmed
	// actor identity. Returns domain.ErrInvalidCredentials when the site
	// rejects the credential, domain.ErrNetwork on transport failure.
	VerifyIdentity(ctx context.Context, siteURL, token string) (domain.Actor, error)
}

type CollectionFetcher interface {
	// FetchCollection retrieves one collection filtered server-side to the
	// session's actor. Returns domain.ErrNetwork on transport failure or a
	// non-success response status; no retry.
	FetchCollection(ctx context.Context, session domain.Session, collection domain.Collection) ([]domain.ResourceItem, error)
}

type TripLookup interface {
	LookupTripName(ctx context.Context, session domain.Session, tripID int) (string, error)
}

// TravelAPI is the full remote surface the dashboard needs.
type TravelAPI interface {
	IdentityVerifier
	CollectionFetcher
	TripLookup
}
