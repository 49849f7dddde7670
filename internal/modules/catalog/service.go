package catalog

import (
	"context"
	"errors"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gorm.io/gorm"

	"studiocatalog/internal/domain"
)

// Event describes a catalog mutation delivered to subscribers.
type Event struct {
	Type   string // "created", "updated", "deleted", "stats"
	ID     int64
	Studio *domain.Studio // nil for "deleted"
}

// Service is the studio store: the in-memory catalog every surface
// reads from, plus the mutating operations that keep it and the
// remote rows consistent. The remote write is always awaited before
// the cache changes; nothing here is optimistic.
//
// The cache is guarded by mu. Methods copy on the way in and clone on
// the way out, so callers never share slices with the store.
type Service struct {
	rows StudioRows

	mu      sync.RWMutex
	studios []domain.Studio
	loaded  bool

	subMu   sync.Mutex
	subs    map[int64]func(Event)
	nextSub int64
}

func NewService(rows StudioRows) *Service {
	return &Service{
		rows: rows,
		subs: make(map[int64]func(Event)),
	}
}

// FetchAll replaces the whole cache with a fresh read of the studios
// table. Called once at startup; until it succeeds the store serves
// an empty catalog and Loaded reports false.
func (s *Service) FetchAll(ctx context.Context) error {
	studios, err := s.rows.SelectAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.studios = studios
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// Loaded reports whether the initial FetchAll has completed.
func (s *Service) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// All returns a snapshot of the catalog in insertion order.
func (s *Service) All() []domain.Studio {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Studio, 0, len(s.studios))
	for i := range s.studios {
		out = append(out, *s.studios[i].Clone())
	}
	return out
}

// FindByID is a pure local lookup; it never touches the remote store.
func (s *Service) FindByID(id int64) (*domain.Studio, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.studios {
		if s.studios[i].ID == id {
			return s.studios[i].Clone(), true
		}
	}
	return nil, false
}

// FindByKey looks up a studio by a display-layer string key. Keys
// arrive as route parameters and are coerced to the numeric ID before
// comparison.
func (s *Service) FindByKey(key string) (*domain.Studio, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(key), 10, 64)
	if err != nil {
		return nil, false
	}
	return s.FindByID(id)
}

// Create validates required fields, defaults the optional ones so the
// persisted row never carries nulls, inserts remotely, and appends the
// server-returned row to the cache.
func (s *Service) Create(ctx context.Context, req CreateStudioRequest) (*domain.Studio, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Address) == "" {
		return nil, ErrAddressRequired
	}

	studio := &domain.Studio{
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		Price:       "0", // legacy listing price, always persisted
		Images:      req.Images,
		Features:    req.Features,
	}
	if req.Price != nil {
		studio.Price = *req.Price
	}
	if studio.Images == nil {
		studio.Images = []string{}
	}
	if studio.Features == nil {
		studio.Features = []string{}
	}
	if req.Contact != nil {
		studio.Contact = overlayContact(domain.Contact{}, req.Contact)
	}

	if err := s.rows.Insert(ctx, studio); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.studios = append(s.studios, *studio.Clone())
	s.mu.Unlock()

	s.notify(Event{Type: "created", ID: studio.ID, Studio: studio.Clone()})
	return studio, nil
}

// Update builds a partial column update from the supplied fields,
// writes it remotely, and wholesale-replaces the cache slot with the
// row the server returned. Replacing rather than merging keeps
// server-computed fields visible after every write.
func (s *Service) Update(ctx context.Context, id int64, req UpdateStudioRequest) (*domain.Studio, error) {
	current, ok := s.FindByID(id)
	if !ok {
		return nil, ErrNotFound
	}

	fields := make(map[string]any)
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		fields["name"] = *req.Name
	}
	if req.Address != nil {
		if strings.TrimSpace(*req.Address) == "" {
			return nil, ErrAddressRequired
		}
		fields["address"] = *req.Address
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Images != nil {
		fields["images"] = *req.Images
	}
	if req.Features != nil {
		fields["features"] = *req.Features
	}
	if req.Contact != nil {
		fields["contact"] = overlayContact(current.Contact, req.Contact)
	}

	if len(fields) == 0 {
		return current, nil
	}

	updated, err := s.rows.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.replace(updated)
	s.notify(Event{Type: "updated", ID: id, Studio: updated.Clone()})
	return updated, nil
}

// Delete removes the row remotely first; the cache only changes after
// the remote delete succeeded.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, ok := s.FindByID(id); !ok {
		return ErrNotFound
	}

	if err := s.rows.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.studios {
		if s.studios[i].ID == id {
			s.studios = append(s.studios[:i], s.studios[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.notify(Event{Type: "deleted", ID: id})
	return nil
}

// IncrementStat bumps one engagement counter: fresh read of the row
// (never the cache, so concurrent updaters don't compound staleness),
// one added to the named channel, full stats written back, and only
// then the cached copy's stats replaced. Last writer wins; there is no
// concurrency token, and a concurrent increment may be lost. That is
// the accepted contract for engagement counting.
//
// Remote failures are logged and swallowed: a statistics miss must
// never surface to the visitor. Only an unknown channel name is an
// error, and it is rejected before any remote call.
func (s *Service) IncrementStat(ctx context.Context, id int64, channel string) error {
	if _, ok := (domain.Stats{}).Get(channel); !ok {
		return ErrUnknownChannel
	}

	row, err := s.rows.SelectByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		log.Printf("stats: fetch studio %d: %v", id, err)
		return nil
	}
	if row == nil {
		return nil
	}

	newStats := row.Stats
	current, _ := newStats.Get(channel)
	newStats.Set(channel, current+1)

	if err := s.rows.UpdateStats(ctx, id, newStats); err != nil {
		log.Printf("stats: write studio %d: %v", id, err)
		return nil
	}

	s.mu.Lock()
	for i := range s.studios {
		if s.studios[i].ID == id {
			s.studios[i].Stats = newStats
			break
		}
	}
	s.mu.Unlock()

	s.notify(Event{Type: "stats", ID: id})
	return nil
}

// RankedByEngagement returns a snapshot sorted by total views across
// all channels, busiest first. Ties keep catalog order.
func (s *Service) RankedByEngagement() []domain.Studio {
	out := s.All()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Stats.Total() > out[j].Stats.Total()
	})
	return out
}

// Subscribe registers a change listener and returns its unsubscribe
// function. Listeners run synchronously after each successful
// mutation, outside the cache lock.
func (s *Service) Subscribe(fn func(Event)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Service) notify(e Event) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}

func (s *Service) replace(studio *domain.Studio) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.studios {
		if s.studios[i].ID == studio.ID {
			s.studios[i] = *studio.Clone()
			return
		}
	}
}

func overlayContact(base domain.Contact, in *ContactInput) domain.Contact {
	if in.Phone != nil {
		base.Phone = *in.Phone
	}
	if in.Whatsapp != nil {
		base.Whatsapp = *in.Whatsapp
	}
	if in.Instagram != nil {
		base.Instagram = *in.Instagram
	}
	if in.Email != nil {
		base.Email = *in.Email
	}
	return base
}
