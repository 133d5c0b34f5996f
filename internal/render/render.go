// Package render implements the site's template substitution: every
// {{key}} occurrence in a template file is replaced with the mapped value.
// Unmatched placeholders are left literal and values are inserted without
// escaping, so user-supplied post content reaches the blog page as-is.
package render

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"github.com/yuin/goldmark"
)

// Renderer loads templates from a directory and fills in their
// placeholders. Template bytes are cached after the first read; Watch
// starts a filesystem watcher that drops the cache when the directory
// changes.
type Renderer struct {
	fs  afero.Fs
	dir string
	md  goldmark.Markdown

	mu    sync.RWMutex
	cache map[string]string

	watcher *watcher
}

// New creates a renderer reading templates from dir on the given filesystem.
func New(fs afero.Fs, dir string) *Renderer {
	return &Renderer{
		fs:    fs,
		dir:   dir,
		md:    newMarkdown(),
		cache: make(map[string]string),
	}
}

// Render loads the named template and substitutes every {{key}} placeholder
// with the corresponding value from the context.
func (r *Renderer) Render(name string, context map[string]string) ([]byte, error) {
	tmpl, err := r.template(name)
	if err != nil {
		return nil, err
	}

	out := tmpl
	for key, value := range context {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return []byte(out), nil
}

func (r *Renderer) template(name string) (string, error) {
	r.mu.RLock()
	tmpl, ok := r.cache[name]
	r.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	data, err := afero.ReadFile(r.fs, filepath.Join(r.dir, name))
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", name, err)
	}

	tmpl = string(data)
	r.mu.Lock()
	r.cache[name] = tmpl
	r.mu.Unlock()
	return tmpl, nil
}

// Invalidate drops all cached templates. The watcher calls this whenever a
// file in the templates directory changes.
func (r *Renderer) Invalidate() {
	r.mu.Lock()
	r.cache = make(map[string]string)
	r.mu.Unlock()
}

// Watch starts watching the templates directory and invalidating the cache
// on changes. Callers that skip Watch (tests, one-shot CLI commands) get a
// cache that lives for the process lifetime.
func (r *Renderer) Watch() error {
	w, err := newWatcher(r.dir, r.Invalidate)
	if err != nil {
		return err
	}
	r.watcher = w
	return nil
}

// Close stops the watcher, if one was started.
func (r *Renderer) Close() error {
	if r.watcher == nil {
		return nil
	}
	return r.watcher.stop()
}
