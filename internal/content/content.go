// Package content serves the static info pages (how it works, accepted
// items, FAQ) from local markdown files with YAML front matter.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

// Page is a rendered info page. Body is already sanitized HTML.
type Page struct {
	Slug      string
	Title     string
	Summary   string
	Icon      string
	Body      template.HTML
	UpdatedAt time.Time
}

type frontMatter struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	Icon      string `yaml:"icon"`
	UpdatedAt string `yaml:"updated_at"`
}

// ErrNotFound indicates no page exists for the requested slug.
var ErrNotFound = errors.New("content: not found")

var policy = newInfoHTMLPolicy()

func newInfoHTMLPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("figure", "figcaption")
	p.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span")
	p.RequireNoFollowOnLinks(true)
	return p
}

// Store loads pages from a directory and caches rendered results.
type Store struct {
	dir string

	mu    sync.RWMutex
	cache map[string]cacheEntry
	ttl   time.Duration
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// NewStore builds a store over dir (one "<slug>.md" per page).
func NewStore(dir string) *Store {
	return &Store{
		dir:   strings.TrimSpace(dir),
		cache: map[string]cacheEntry{},
		ttl:   5 * time.Minute,
	}
}

// SetCacheTTL overrides the cache duration (primarily for tests).
func (s *Store) SetCacheTTL(d time.Duration) {
	if d <= 0 {
		d = time.Minute
	}
	s.mu.Lock()
	s.ttl = d
	s.mu.Unlock()
}

// Get returns the rendered page for slug, or ErrNotFound.
func (s *Store) Get(slug string) (Page, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" || strings.ContainsAny(slug, "/\\.") {
		return Page{}, ErrNotFound
	}
	if page, ok := s.cached(slug); ok {
		return page, nil
	}
	page, err := s.read(slug)
	if err != nil {
		return Page{}, err
	}
	s.store(slug, page)
	return page, nil
}

func (s *Store) read(slug string) (Page, error) {
	file := filepath.Join(s.dir, slug+".md")
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, ErrNotFound
		}
		return Page{}, err
	}

	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter %s: %w", file, err)
		}
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(body), &buf); err != nil {
		return Page{}, fmt.Errorf("content: render %s: %w", file, err)
	}
	safe := policy.SanitizeBytes(buf.Bytes())

	page := Page{
		Slug:    slug,
		Title:   strings.TrimSpace(front.Title),
		Summary: strings.TrimSpace(front.Summary),
		Icon:    strings.TrimSpace(front.Icon),
		Body:    template.HTML(safe),
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	page.UpdatedAt = parseDate(front.UpdatedAt)
	if page.UpdatedAt.IsZero() {
		if info, err := os.Stat(file); err == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	return page, nil
}

func (s *Store) cached(slug string) (Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.cache[slug]
	if !ok || time.Now().After(entry.expires) {
		return Page{}, false
	}
	return entry.page, true
}

func (s *Store) store(slug string, page Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[slug] = cacheEntry{page: page, expires: time.Now().Add(s.ttl)}
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	s := strings.ReplaceAll(slug, "-", " ")
	r := []rune(s)
	if len(r) > 0 && r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
