package storage

import (
    "sync"
    "time"

    "offerconsole/internal/models"
)

// CatalogView is the last published provider catalog for a session: the
// normalized offers together with the selection that produced them.
type CatalogView struct {
    Provider  string
    Kind      models.OfferKind
    Filters   models.CatalogFilters
    Offers    []models.NormalizedOffer
    FetchedAt time.Time
}

// SessionStore owns the catalog view displayed to one operator session.
// The fetch coordinator is the only writer; a superseded fetch never
// reaches Publish, so the view can only move forward.
type SessionStore struct {
    mu   sync.RWMutex
    view CatalogView
}

func NewSessionStore() *SessionStore {
    return &SessionStore{}
}

func (s *SessionStore) Publish(view CatalogView) {
    s.mu.Lock()
    defer s.mu.Unlock()

    s.view = view
}

// View returns a copy of the current catalog view.
func (s *SessionStore) View() CatalogView {
    s.mu.RLock()
    defer s.mu.RUnlock()

    view := s.view
    view.Offers = make([]models.NormalizedOffer, len(s.view.Offers))
    copy(view.Offers, s.view.Offers)
    return view
}

// Offers returns a copy of the currently displayed normalized offers.
func (s *SessionStore) Offers() []models.NormalizedOffer {
    s.mu.RLock()
    defer s.mu.RUnlock()

    offers := make([]models.NormalizedOffer, len(s.view.Offers))
    copy(offers, s.view.Offers)
    return offers
}

// VisibleIDs returns the ids of every offer in the current view, for the
// all-visible bulk sync gesture.
func (s *SessionStore) VisibleIDs() []string {
    s.mu.RLock()
    defer s.mu.RUnlock()

    ids := make([]string, 0, len(s.view.Offers))
    for _, offer := range s.view.Offers {
        ids = append(ids, offer.ID)
    }
    return ids
}

func (s *SessionStore) HasData() bool {
    s.mu.RLock()
    defer s.mu.RUnlock()
    return len(s.view.Offers) > 0
}

func (s *SessionStore) LastFetchTime() time.Time {
    s.mu.RLock()
    defer s.mu.RUnlock()
    return s.view.FetchedAt
}
