package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hyrosy/tripdesk/internal/domain"
	"github.com/hyrosy/tripdesk/internal/ports"
)

// defaultEnrichLimit caps concurrent trip lookups per collection.
const defaultEnrichLimit = 8

// DashboardService runs the dashboard cycle: verify or rehydrate a session,
// fetch both collections, enrich every item, publish both collections as
// one result. Either collection fetch failing fails the whole cycle and
// tears the session down; enrichment failures never do.
type DashboardService struct {
	store ports.SessionStore
	api   ports.TravelAPI
	clock ports.Clock
	log   zerolog.Logger

	enrichLimit int

	mu        sync.RWMutex
	session   *domain.Session
	result    *domain.AggregationResult
	state     domain.CycleState
	lastError string
}

func NewDashboardService(store ports.SessionStore, api ports.TravelAPI, clock ports.Clock, log zerolog.Logger) *DashboardService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &DashboardService{
		store:       store,
		api:         api,
		clock:       clock,
		log:         log,
		enrichLimit: defaultEnrichLimit,
		state:       domain.StateIdle,
	}
}

// Login exchanges the username/application-password pair for a verified
// session and runs a dashboard cycle. Empty inputs are rejected before any
// network call. Actor identity always comes from the identity response, not
// from the caller's username.
func (s *DashboardService) Login(ctx context.Context, siteURL, username, password string) error {
	siteURL = strings.TrimRight(strings.TrimSpace(siteURL), "/")
	username = strings.TrimSpace(username)

	switch {
	case siteURL == "":
		return fmt.Errorf("%w: site address", domain.ErrMissingInput)
	case username == "":
		return fmt.Errorf("%w: username", domain.ErrMissingInput)
	case password == "":
		return fmt.Errorf("%w: application password", domain.ErrMissingInput)
	}

	token := domain.BasicToken(username, password)

	actor, err := s.api.VerifyIdentity(ctx, siteURL, token)
	if err != nil {
		return fmt.Errorf("verify identity: %w", err)
	}

	session := domain.Session{
		SiteURL:   siteURL,
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Token:     token,
	}

	if err := s.store.Save(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	s.session = &session
	s.mu.Unlock()

	s.log.Debug().Str("site", siteURL).Int("actor_id", actor.ID).Msg("authenticated")

	return s.Refresh(ctx)
}

// Resume rehydrates the persisted session and runs a dashboard cycle.
// Returns domain.ErrSessionNotFound when nothing usable is persisted.
func (s *DashboardService) Resume(ctx context.Context) error {
	session, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return err
		}
		return fmt.Errorf("load session: %w", err)
	}

	s.mu.Lock()
	s.session = &session
	s.mu.Unlock()

	s.log.Debug().Str("site", session.SiteURL).Int("actor_id", session.ActorID).Msg("session rehydrated")

	return s.Refresh(ctx)
}

// Refresh runs one dashboard cycle against the current session. The session
// is copied once at cycle start and never re-read mid-cycle.
func (s *DashboardService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return domain.ErrSessionNotFound
	}
	session := *s.session
	s.state = domain.StateLoading
	s.lastError = ""
	s.mu.Unlock()

	s.log.Debug().Str("site", session.SiteURL).Msg("fetching collections")

	var bookings, enquiries []domain.ResourceItem
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		bookings, err = s.api.FetchCollection(groupCtx, session, domain.CollectionBooking)
		return err
	})
	group.Go(func() error {
		var err error
		enquiries, err = s.api.FetchCollection(groupCtx, session, domain.CollectionEnquiry)
		return err
	})
	if err := group.Wait(); err != nil {
		// A fetch error after a previously successful login most often
		// means a revoked credential; force re-authentication instead of
		// presenting partially wrong data.
		s.teardown(ctx, err)
		return fmt.Errorf("fetch collections: %w", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		bookings = enrichItems(ctx, s.api, session, bookings, s.enrichLimit)
	}()
	go func() {
		defer wg.Done()
		enquiries = enrichItems(ctx, s.api, session, enquiries, s.enrichLimit)
	}()
	wg.Wait()

	result := domain.AggregationResult{
		Bookings:  bookings,
		Enquiries: enquiries,
		FetchedAt: s.clock.Now(),
	}

	s.mu.Lock()
	s.result = &result
	s.state = domain.StateReady
	s.mu.Unlock()

	s.log.Debug().Int("bookings", len(bookings)).Int("enquiries", len(enquiries)).Msg("dashboard published")

	return nil
}

// Logout clears the persisted session and all in-memory results. Idempotent.
func (s *DashboardService) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.mu.Lock()
	s.session = nil
	s.result = nil
	s.state = domain.StateIdle
	s.lastError = ""
	s.mu.Unlock()

	return nil
}

func (s *DashboardService) CurrentResult() (domain.AggregationResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.result == nil {
		return domain.AggregationResult{}, false
	}

	return *s.result, true
}

// CurrentSession reports the authenticated actor, falling back to the
// persisted session when no cycle has run in this process yet.
func (s *DashboardService) CurrentSession(ctx context.Context) (domain.Actor, bool) {
	s.mu.RLock()
	if s.session != nil {
		actor := s.session.Actor()
		s.mu.RUnlock()
		return actor, true
	}
	s.mu.RUnlock()

	session, err := s.store.Load(ctx)
	if err != nil {
		return domain.Actor{}, false
	}

	return session.Actor(), true
}

// CurrentSite reports the site address of the active or persisted session.
func (s *DashboardService) CurrentSite(ctx context.Context) string {
	s.mu.RLock()
	if s.session != nil {
		site := s.session.SiteURL
		s.mu.RUnlock()
		return site
	}
	s.mu.RUnlock()

	session, err := s.store.Load(ctx)
	if err != nil {
		return ""
	}

	return session.SiteURL
}

// State reports the cycle signal and, in the error state, its message.
func (s *DashboardService) State() (domain.CycleState, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state, s.lastError
}

func (s *DashboardService) teardown(ctx context.Context, cause error) {
	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("clear persisted session")
	}

	s.mu.Lock()
	s.session = nil
	s.result = nil
	s.state = domain.StateError
	s.lastError = cause.Error()
	s.mu.Unlock()
}
