// Copyright 2026 The Bigo Authors
// SPDX-License-Identifier: MIT

// Package analyzer is the entry point for complexity analysis. It combines
// prompt construction, the completion client and the result cache.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/davetashner/bigo/internal/cache"
	"github.com/davetashner/bigo/internal/lang"
	"github.com/davetashner/bigo/internal/llm"
	"github.com/davetashner/bigo/internal/model"
	"github.com/davetashner/bigo/internal/prompt"
	"github.com/davetashner/bigo/internal/testable"
)

// DefaultBatchDelay is the pause between successive batch items.
const DefaultBatchDelay = 500 * time.Millisecond

// Completer is the part of *llm.Client the analyzer depends on.
type Completer interface {
	CompleteJSON(ctx context.Context, prompt, system string) (map[string]any, error)
	Stats() llm.Stats
	Close() error
}

// Analyzer runs analyses against a Completer, caching parsed results by
// source hash. It is safe for concurrent use.
type Analyzer struct {
	client     Completer
	cache      *cache.Cache
	batchDelay time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
	fs         testable.FileSystem
	group      singleflight.Group

	mu      sync.Mutex
	flights map[string]*flight
}

// flight is one shared model request. It runs detached from any single
// caller and is cancelled once every waiting caller has gone.
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCache replaces the default 60-minute cache. A nil cache disables
// caching.
func WithCache(c *cache.Cache) Option {
	return func(a *Analyzer) {
		a.cache = c
	}
}

// WithoutCache disables result caching.
func WithoutCache() Option {
	return WithCache(nil)
}

// WithBatchDelay sets the pause between batch items.
func WithBatchDelay(d time.Duration) Option {
	return func(a *Analyzer) {
		a.batchDelay = d
	}
}

// WithSleep replaces the context-aware sleep used for batch pacing.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(a *Analyzer) {
		a.sleep = fn
	}
}

// WithFileSystem sets the file system used by AnalyzeFile.
func WithFileSystem(fsys testable.FileSystem) Option {
	return func(a *Analyzer) {
		a.fs = fsys
	}
}

// New creates an Analyzer. The analyzer owns client and closes it in Close.
func New(client Completer, opts ...Option) *Analyzer {
	a := &Analyzer{
		client:     client,
		cache:      cache.New(cache.DefaultTTL),
		batchDelay: DefaultBatchDelay,
		sleep:      sleepContext,
		fs:         testable.DefaultFS,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Analyze estimates the complexity of code. Results are cached by the hash of
// the trimmed code, regardless of opts. The returned Result is a copy the
// caller may modify.
func (a *Analyzer) Analyze(ctx context.Context, code string, opts model.AnalysisOptions) (*model.Result, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrEmptyCode
	}
	return a.cached(ctx, code, fmt.Sprintf("full|%+v", opts), func(ctx context.Context) (*model.Result, error) {
		obj, err := a.client.CompleteJSON(ctx, prompt.BuildAnalysisPrompt(code, opts), prompt.SystemPrompt)
		if err != nil {
			return nil, err
		}
		return parseResult(obj), nil
	})
}

// AnalyzeQuick runs the shorter quick-analysis prompt. It shares the cache
// with Analyze.
func (a *Analyzer) AnalyzeQuick(ctx context.Context, code string) (*model.Result, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrEmptyCode
	}
	return a.cached(ctx, code, "quick", func(ctx context.Context) (*model.Result, error) {
		obj, err := a.client.CompleteJSON(ctx, prompt.BuildQuickAnalysisPrompt(code), prompt.QuickSystemPrompt)
		if err != nil {
			return nil, err
		}
		return parseResult(obj), nil
	})
}

// cached serves code from the cache or runs fetch, collapsing concurrent
// identical requests into one. The shared fetch outlives any single caller:
// a caller that cancels gets its context error while the others keep
// waiting. The fetch is cancelled, and its result not cached, only when no
// caller is left.
func (a *Analyzer) cached(ctx context.Context, code, mode string, fetch func(context.Context) (*model.Result, error)) (*model.Result, error) {
	if a.cache != nil {
		if r, ok := a.cache.Get(code); ok {
			slog.Debug("cache hit", "key", cache.Key(code))
			return r.Clone(), nil
		}
	}

	key := mode + "|" + cache.Key(code)
	f := a.join(ctx, key)
	defer a.leave(key, f)

	ch := a.group.DoChan(key, func() (any, error) {
		if a.cache != nil {
			if r, ok := a.cache.Get(code); ok {
				return r, nil
			}
		}
		r, err := fetch(f.ctx)
		if err != nil {
			return nil, err
		}
		if f.ctx.Err() == nil && a.cache != nil {
			a.cache.Set(code, r)
		}
		return r, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			slog.Debug("collapsed duplicate request", "key", cache.Key(code))
		}
		return res.Val.(*model.Result).Clone(), nil
	}
}

// join registers a caller for key, starting a flight when none is running.
func (a *Analyzer) join(ctx context.Context, key string) *flight {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.flights == nil {
		a.flights = make(map[string]*flight)
	}
	f, ok := a.flights[key]
	if !ok {
		fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{ctx: fctx, cancel: cancel}
		a.flights[key] = f
	}
	f.waiters++
	return f
}

// leave drops a caller. The last one out cancels the flight and forgets it,
// so later callers start afresh.
func (a *Analyzer) leave(key string, f *flight) {
	a.mu.Lock()
	defer a.mu.Unlock()
	f.waiters--
	if f.waiters > 0 {
		return
	}
	f.cancel()
	if a.flights[key] == f {
		delete(a.flights, key)
	}
	a.group.Forget(key)
}

// AnalyzeFile reads path and analyzes its contents. When opts has no
// language hint, one is derived from the file name.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string, opts model.AnalysisOptions) (*model.Result, error) {
	code, err := a.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if opts.LanguageHint == "" {
		opts.LanguageHint = lang.Detect(path)
	}
	return a.Analyze(ctx, code, opts)
}

// ReadFile reads and decodes a source file, reporting ErrFileNotFound and
// ErrNotAFile for unusable paths.
func (a *Analyzer) ReadFile(path string) (string, error) {
	st, err := a.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if !st.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrNotAFile, path)
	}
	code, err := lang.ReadSource(a.fs, path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return code, nil
}

// Compare asks the model which of two snippets is more efficient. The
// decoded verdict is returned as is.
func (a *Analyzer) Compare(ctx context.Context, codeA, codeB string) (model.Comparison, error) {
	codeA = strings.TrimSpace(codeA)
	codeB = strings.TrimSpace(codeB)
	if codeA == "" || codeB == "" {
		return nil, ErrEmptyCode
	}
	obj, err := a.client.CompleteJSON(ctx, prompt.BuildComparisonPrompt(codeA, codeB), prompt.CompareSystemPrompt)
	if err != nil {
		return nil, err
	}
	return model.Comparison(obj), nil
}

// ExtractFunctions asks the model to list the functions defined in code.
func (a *Analyzer) ExtractFunctions(ctx context.Context, code string) (*model.FunctionListing, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrEmptyCode
	}
	obj, err := a.client.CompleteJSON(ctx, prompt.BuildFunctionExtractionPrompt(code), prompt.ExtractSystemPrompt)
	if err != nil {
		return nil, err
	}
	return parseListing(obj), nil
}

// Snippet is one batch input. Source labels the item in output, typically
// with a file path; Path, when set, is read instead of Code.
type Snippet struct {
	Code   string
	Source string
	Path   string
}

// AnalyzeBatch analyzes snippets one after another, pausing between items.
// A failing item becomes an AnalysisError in its slot; cancelling ctx aborts
// the whole batch and returns the context error.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, snippets []Snippet, opts model.AnalysisOptions) ([]model.BatchItem, error) {
	items := make([]model.BatchItem, 0, len(snippets))
	for i, s := range snippets {
		if i > 0 {
			if err := a.sleep(ctx, a.batchDelay); err != nil {
				return nil, err
			}
		}

		var (
			r   *model.Result
			err error
		)
		if s.Path != "" {
			r, err = a.AnalyzeFile(ctx, s.Path, opts)
		} else {
			r, err = a.Analyze(ctx, s.Code, opts)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		item := model.BatchItem{Index: i, Source: s.Source}
		if err != nil {
			slog.Warn("batch item failed", "index", i, "source", s.Source, "error", err)
			item.Err = toAnalysisError(err)
		} else {
			item.Result = r
		}
		items = append(items, item)
	}
	return items, nil
}

// Stats describes the analyzer's cache and the client's usage.
type Stats struct {
	llm.Stats
	CacheEnabled bool `json:"cache_enabled"`
	CacheEntries int  `json:"cache_entries"`
}

// Stats returns current usage counters.
func (a *Analyzer) Stats() Stats {
	s := Stats{Stats: a.client.Stats(), CacheEnabled: a.cache != nil}
	if a.cache != nil {
		s.CacheEntries = a.cache.Len()
	}
	return s
}

// ClearCache drops every cached result.
func (a *Analyzer) ClearCache() {
	if a.cache != nil {
		a.cache.Clear()
	}
}

// Close releases the client's connections. It may be called more than once;
// the analyzer stays usable and reconnects on the next request.
func (a *Analyzer) Close() error {
	return a.client.Close()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
