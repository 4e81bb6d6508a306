package dashboard

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hyrosy/tripdesk/internal/domain"
)

type RenderOptions struct {
	Actor domain.Actor
	Site  string
	Now   time.Time
}

func renderView(result domain.AggregationResult, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Trips Dashboard"),
		s.header.Render(headerLine(opts)),
	}

	lines = append(lines, s.section.Render(renderCollection("Bookings", result.Bookings, true, s)))
	lines = append(lines, s.section.Render(renderCollection("Enquiries", result.Enquiries, false, s)))

	if !result.FetchedAt.IsZero() {
		lines = append(lines, s.section.Render(s.date.Render("fetched "+result.FetchedAt.Format("2006-01-02 15:04"))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func headerLine(opts RenderOptions) string {
	if opts.Actor.Name == "" {
		return opts.Site
	}

	return fmt.Sprintf("%s (#%d) · %s", opts.Actor.Name, opts.Actor.ID, opts.Site)
}

func renderCollection(label string, items []domain.ResourceItem, withStatus bool, s styles) string {
	parts := []string{
		s.heading.Render(fmt.Sprintf("%s (%d)", label, len(items))),
	}

	if len(items) == 0 {
		parts = append(parts, s.empty.Render(fmt.Sprintf("No %s yet.", lowercase(label))))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	for _, item := range items {
		parts = append(parts, itemLine(item, withStatus, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func itemLine(item domain.ResourceItem, withStatus bool, s styles) string {
	segments := []string{
		s.item.Render(fmt.Sprintf("#%d %s", item.ID, item.Title)),
		" ",
		tripSegment(item.TripName, s),
	}

	if withStatus && item.Status != "" {
		segments = append(segments, " ", s.status.Render("["+item.Status+"]"))
	}

	if !item.Date.IsZero() {
		segments = append(segments, " ", s.date.Render(item.Date.Format("2006-01-02")))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func tripSegment(tripName string, s styles) string {
	if tripName == domain.UnknownTripName {
		return s.unknown.Render(tripName)
	}

	return s.trip.Render(tripName)
}

func lowercase(label string) string {
	if label == "" {
		return label
	}

	return string(label[0]|0x20) + label[1:]
}
