package cascade

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/metrics"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
	"go.uber.org/zap"
)

var (
	// ErrPageExpired means the token is unknown: never issued, evicted, or
	// past its idle TTL. The page has to be reloaded.
	ErrPageExpired = errors.New("cascade: filter page expired")

	// ErrNotOwner means the token belongs to another user's page.
	ErrNotOwner = errors.New("cascade: filter page belongs to another user")
)

// Default registry bounds.
const (
	DefaultRegistrySize = 4096
	DefaultPageTTL      = 2 * time.Hour
)

// Page is one open filter panel.
type Page struct {
	*Controller
	Token   string
	OwnerID int64
	Scope   models.JurisdictionScope
}

// Registry holds the open pages, keyed by token, in a size-bounded LRU
// whose entries expire after ttl without use.
type Registry struct {
	lookup Lookup
	log    *zap.Logger
	pages  *expirable.LRU[string, *Page]
}

// NewRegistry returns an empty registry. Non-positive size or ttl fall
// back to the defaults.
func NewRegistry(lookup Lookup, size int, ttl time.Duration, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	if size <= 0 {
		size = DefaultRegistrySize
	}
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	r := &Registry{lookup: lookup, log: logger}
	r.pages = expirable.NewLRU[string, *Page](size, func(token string, p *Page) {
		logger.Debug("filter page evicted", zap.String("token", token), zap.Int64("owner_id", p.OwnerID))
	}, ttl)
	return r
}

// Open creates a controller for ownerID, seeds it from scope and
// registers it under a fresh token.
func (r *Registry) Open(ctx context.Context, ownerID int64, cfg Config, scope models.JurisdictionScope) *Page {
	p := &Page{
		Controller: New(r.lookup, cfg, r.log),
		Token:      uuid.NewString(),
		OwnerID:    ownerID,
		Scope:      scope,
	}
	p.Initialize(ctx, scope)

	r.pages.Add(p.Token, p)
	metrics.SetOpenPages(r.pages.Len())
	return p
}

// Get returns the page for token if ownerID opened it. A hit renews the
// page's TTL.
func (r *Registry) Get(token string, ownerID int64) (*Page, error) {
	p, ok := r.pages.Get(token)
	if !ok {
		metrics.SetOpenPages(r.pages.Len())
		return nil, ErrPageExpired
	}
	if p.OwnerID != ownerID {
		r.log.Warn("filter page requested by another user",
			zap.String("token", token),
			zap.Int64("owner_id", p.OwnerID),
			zap.Int64("requested_by", ownerID))
		return nil, ErrNotOwner
	}
	r.pages.Add(token, p)
	return p, nil
}

// Close forgets a page.
func (r *Registry) Close(token string) {
	r.pages.Remove(token)
	metrics.SetOpenPages(r.pages.Len())
}

// Len is the number of open pages.
func (r *Registry) Len() int { return r.pages.Len() }
