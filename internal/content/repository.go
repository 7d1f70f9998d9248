package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/realtoken/questline/internal/storage"
)

// CacheKey is the storage key for the persisted content cache. Schema
// changes require a new key so old clients keep working.
const CacheKey = "learning-content-cache-v1"

// LoadError reports a content load failure with no usable fallback.
type LoadError struct {
	Language string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load learning content for %q: %v", e.Language, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Repository loads, validates and normalizes per-language content.
// Normalized payloads are cached in memory and mirrored to the storage
// adapter so a previously seen language survives restarts and offline
// fetches.
type Repository struct {
	baseURL     string
	defaultLang string
	client      *http.Client
	store       storage.Store
	log         *zap.Logger

	mu    sync.Mutex
	cache map[string]*Payload
}

// RepositoryOptions configures a Repository. Zero fields get defaults:
// language "en", http.DefaultClient, an isolated in-memory store and a
// no-op logger.
type RepositoryOptions struct {
	BaseURL         string
	DefaultLanguage string
	Client          *http.Client
	Store           storage.Store
	Logger          *zap.Logger
}

// NewRepository creates a Repository and warms its memory cache from the
// storage adapter.
func NewRepository(opts RepositoryOptions) *Repository {
	r := &Repository{
		baseURL:     opts.BaseURL,
		defaultLang: opts.DefaultLanguage,
		client:      opts.Client,
		store:       opts.Store,
		log:         opts.Logger,
		cache:       make(map[string]*Payload),
	}
	if r.defaultLang == "" {
		r.defaultLang = "en"
	}
	if r.client == nil {
		r.client = http.DefaultClient
	}
	if r.store == nil {
		r.store = storage.NewMemoryStore()
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	r.loadCacheFromStorage()
	return r
}

// DefaultLanguage returns the configured fallback language.
func (r *Repository) DefaultLanguage() string {
	return r.defaultLang
}

// LoadLanguage returns the normalized payload for language, fetching and
// caching it on first use. When the fetch fails for a non-default
// language, the default language is loaded instead; if that also fails,
// a *LoadError is returned.
func (r *Repository) LoadLanguage(ctx context.Context, language string) (*Payload, error) {
	target := language
	if target == "" {
		target = r.defaultLang
	}

	r.mu.Lock()
	cached, ok := r.cache[target]
	r.mu.Unlock()
	if ok {
		return cached, nil
	}

	payload, err := r.fetchLanguage(ctx, target)
	if err == nil {
		r.mu.Lock()
		r.cache[target] = payload
		r.persistCacheLocked()
		r.mu.Unlock()
		return payload, nil
	}

	if target != r.defaultLang {
		r.log.Warn("content load failed, falling back to default language",
			zap.String("language", target),
			zap.String("fallback", r.defaultLang),
			zap.Error(err))
		return r.LoadLanguage(ctx, r.defaultLang)
	}

	return nil, &LoadError{Language: target, Err: err}
}

// DailyChallenge resolves the daily challenge for date from the cached
// payload for language, falling back to the default language's payload.
// Returns nil when no payload is cached or no challenge applies.
func (r *Repository) DailyChallenge(language string, date time.Time) *DailyChallenge {
	r.mu.Lock()
	payload, ok := r.cache[language]
	if !ok {
		payload = r.cache[r.defaultLang]
	}
	r.mu.Unlock()
	return ResolveDaily(payload, date)
}

func (r *Repository) fetchLanguage(ctx context.Context, language string) (*Payload, error) {
	url := fmt.Sprintf("%s/%s.json", r.baseURL, language)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var raw rawPayload
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	return Normalize(&raw), nil
}

func (r *Repository) loadCacheFromStorage() {
	saved := make(map[string]*Payload)
	if !storage.ReadJSON(r.store, r.log, CacheKey, &saved) {
		return
	}
	for language, payload := range saved {
		if payload != nil {
			r.cache[language] = payload
		}
	}
}

// persistCacheLocked mirrors the memory cache to storage. Callers hold mu.
func (r *Repository) persistCacheLocked() {
	storage.WriteJSON(r.store, r.log, CacheKey, r.cache)
}
