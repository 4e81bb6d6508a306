package domain

import "time"

type Collection string

const (
	CollectionBooking Collection = "booking"
	CollectionEnquiry Collection = "enquiry"
)

// UnknownTripName is the fallback trip label when enrichment cannot resolve
// a real title.
const UnknownTripName = "Unknown Trip"

// ResourceItem is one entry of a fetched collection. The remote metadata
// blob is resolved into the typed optional fields at the ingestion boundary;
// EmbeddedTripName and TripID are the only enrichment sources downstream
// code ever reads.
type ResourceItem struct {
	ID     int
	Title  string
	Date   time.Time
	Status string // bookings only, empty for enquiries

	// EmbeddedTripName is the trip title carried inline in the item's
	// order metadata, empty when absent.
	EmbeddedTripName string
	// TripID references a trip resolvable through a secondary lookup,
	// zero when absent.
	TripID int

	// TripName is empty until enrichment and never empty afterwards.
	TripName string
}

// AggregationResult is one published dashboard cycle. Both collections are
// always published together.
type AggregationResult struct {
	Bookings  []ResourceItem
	Enquiries []ResourceItem
	FetchedAt time.Time
}

// CycleState is the dashboard cycle signal the presentation layer observes.
type CycleState string

const (
	StateIdle    CycleState = "idle"
	StateLoading CycleState = "loading"
	StateReady   CycleState = "ready"
	StateError   CycleState = "error"
)
