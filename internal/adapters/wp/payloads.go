package wp

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hyrosy/tripdesk/internal/domain"
)

type identityPayload struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type tripPayload struct {
	Title renderedText `json:"title"`
}

type itemPayload struct {
	ID     int          `json:"id"`
	Title  renderedText `json:"title"`
	Date   string       `json:"date"`
	Status string       `json:"status"`
	Meta   itemMeta     `json:"meta"`
}

// itemMeta carries the only metadata fields the dashboard reads. The trip
// reference key differs per collection; both are decoded here and the
// ingestion step picks the one matching the variant.
type itemMeta struct {
	OrderTrips    map[string]orderTrip `json:"order_trips"`
	BookingTripID flexibleID           `json:"wp_travel_engine_booking_trip_id"`
	EnquiryTripID flexibleID           `json:"wp_travel_engine_enquiry_trip_id"`
}

type orderTrip struct {
	Title string `json:"title"`
}

func (p itemPayload) toDomain(collection domain.Collection) domain.ResourceItem {
	item := domain.ResourceItem{
		ID:               p.ID,
		Title:            strings.TrimSpace(p.Title.Value),
		Date:             parseDate(p.Date),
		EmbeddedTripName: p.Meta.embeddedTripName(),
	}

	switch collection {
	case domain.CollectionBooking:
		item.Status = p.Status
		item.TripID = p.Meta.BookingTripID.Value
	case domain.CollectionEnquiry:
		item.TripID = p.Meta.EnquiryTripID.Value
	}

	return item
}

// embeddedTripName returns the first order trip title. The payload is a
// JSON object keyed by cart entry and Go map order is not meaningful, so
// "first" means the smallest key.
func (m itemMeta) embeddedTripName() string {
	if len(m.OrderTrips) == 0 {
		return ""
	}

	keys := make([]string, 0, len(m.OrderTrips))
	for key := range m.OrderTrips {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if title := strings.TrimSpace(m.OrderTrips[key].Title); title != "" {
			return title
		}
	}

	return ""
}

// renderedText accepts both the {"rendered": "..."} object form and the
// plain string form the REST API uses depending on context.
type renderedText struct {
	Value string
}

func (t *renderedText) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		t.Value = plain
		return nil
	}

	var object struct {
		Rendered string `json:"rendered"`
	}
	if err := json.Unmarshal(data, &object); err != nil {
		return err
	}

	t.Value = object.Rendered
	return nil
}

// flexibleID tolerates the shapes trip references appear in: a number, a
// numeric string, or a single-element array of either. Anything else decodes
// as absent; a malformed reference only costs the enrichment source, it must
// not fail the whole collection.
type flexibleID struct {
	Value int
}

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(data, &list); err != nil || len(list) == 0 {
			return nil
		}
		data = bytes.TrimSpace(list[0])
	}

	var number int
	if err := json.Unmarshal(data, &number); err == nil {
		f.Value = number
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		if number, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			f.Value = number
		}
	}

	return nil
}

// wpDateLayout is the REST API's local-time date format; some fields come
// back with an explicit offset instead.
const wpDateLayout = "2006-01-02T15:04:05"

func parseDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	if parsed, err := time.Parse(wpDateLayout, raw); err == nil {
		return parsed
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed
	}

	return time.Time{}
}
