// Package wp talks to the WordPress REST API of a WP Travel Engine site.
// Every request carries the session's Basic credential; there are no
// cookies and no retries.
package wp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hyrosy/tripdesk/internal/domain"
	"github.com/hyrosy/tripdesk/internal/ports"
)

const (
	restBase           = "/wp-json/wp/v2"
	collectionPageSize = 100
	maxResponseBytes   = 8 << 20
	defaultTimeout     = 30 * time.Second
)

type Client struct {
	http      *http.Client
	userAgent string
}

var _ ports.TravelAPI = (*Client)(nil)

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{http: httpClient, userAgent: "tripdesk"}
}

func (c *Client) VerifyIdentity(ctx context.Context, siteURL, token string) (domain.Actor, error) {
	endpoint := strings.TrimRight(siteURL, "/") + restBase + "/users/me?context=edit"

	body, status, err := c.get(ctx, endpoint, token)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.Actor{}, domain.ErrInvalidCredentials
	case status < http.StatusOK || status >= http.StatusMultipleChoices:
		return domain.Actor{}, fmt.Errorf("%w: identity endpoint returned status %d", domain.ErrNetwork, status)
	}

	var payload identityPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.Actor{}, fmt.Errorf("decode identity response: %w", err)
	}
	if payload.ID <= 0 || strings.TrimSpace(payload.Name) == "" {
		return domain.Actor{}, errors.New("identity response missing id or name")
	}

	return domain.Actor{ID: payload.ID, Name: payload.Name}, nil
}

func (c *Client) FetchCollection(ctx context.Context, session domain.Session, collection domain.Collection) ([]domain.ResourceItem, error) {
	endpoint, err := collectionURL(session, collection)
	if err != nil {
		return nil, err
	}

	body, status, err := c.get(ctx, endpoint, session.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %s endpoint returned status %d", domain.ErrNetwork, collection, status)
	}

	var payloads []itemPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		return nil, fmt.Errorf("decode %s collection: %w", collection, err)
	}

	items := make([]domain.ResourceItem, 0, len(payloads))
	for _, payload := range payloads {
		items = append(items, payload.toDomain(collection))
	}

	return items, nil
}

func (c *Client) LookupTripName(ctx context.Context, session domain.Session, tripID int) (string, error) {
	endpoint := fmt.Sprintf("%s%s/trip/%d?_fields=title", strings.TrimRight(session.SiteURL, "/"), restBase, tripID)

	body, status, err := c.get(ctx, endpoint, session.Token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: trip endpoint returned status %d", domain.ErrNetwork, status)
	}

	var payload tripPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode trip response: %w", err)
	}

	title := strings.TrimSpace(payload.Title.Value)
	if title == "" {
		return "", errors.New("trip response missing title")
	}

	return title, nil
}

func collectionURL(session domain.Session, collection domain.Collection) (string, error) {
	switch collection {
	case domain.CollectionBooking, domain.CollectionEnquiry:
	default:
		return "", fmt.Errorf("unsupported collection %q", collection)
	}

	query := url.Values{}
	query.Set("_fields", "id,title,date,status,meta")
	query.Set("meta_key", "provider")
	query.Set("meta_value", strconv.Itoa(session.ActorID))
	query.Set("per_page", strconv.Itoa(collectionPageSize))

	return strings.TrimRight(session.SiteURL, "/") + restBase + "/" + string(collection) + "?" + query.Encode(), nil
}

func (c *Client) get(ctx context.Context, endpoint, token string) ([]byte, int, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Authorization", "Basic "+token)
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", c.userAgent)

	response, err := c.http.Do(request)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = response.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}

	return body, response.StatusCode, nil
}
