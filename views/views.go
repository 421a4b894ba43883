package views

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/RTradeLtd/Dispatch/action"
	"github.com/RTradeLtd/Dispatch/route"
)

// Extension is appended to view names to find their template file
const Extension = ".html"

var (
	// ErrNoViewName is returned when a request carries no view name hint
	ErrNoViewName = errors.New("no view name provided")
	// ErrInvalidViewName is returned when a view name escapes the content
	// directory
	ErrInvalidViewName = errors.New("invalid view name")
)

// Data is passed to every rendered view
type Data struct {
	View       string
	Controller string
	Values     route.Values
}

// Renderer serves dynamically resolved views from a content directory. View
// names starting with "~/" are relative to that directory.
type Renderer struct {
	l   *zap.SugaredLogger
	dir string

	// parsed templates - locked by Renderer::tm, nil if caching is disabled
	templates map[string]*template.Template
	tm        sync.RWMutex
}

// New creates a new view renderer. Parsed templates are kept in memory unless
// reload is set.
func New(l *zap.SugaredLogger, dir string, reload bool) *Renderer {
	var r = &Renderer{l: l.Named("views"), dir: dir}
	if !reload {
		r.templates = make(map[string]*template.Template)
	}
	return r
}

// Descriptor returns an action descriptor that serves views under the given
// name
func (r *Renderer) Descriptor(app, controller, act string) *action.Descriptor {
	return &action.Descriptor{
		App:        app,
		Controller: controller,
		Action:     act,
		Handler:    r.Handle,
	}
}

// Handle renders the view named by the request's view name hint
func (r *Renderer) Handle(c *action.Context) error {
	var ctx = c.Request().Context()
	var name = route.ViewName(ctx)
	if name == "" {
		return ErrNoViewName
	}

	tmpl, err := r.lookup(name)
	if err != nil {
		return err
	}

	var w = c.Writer()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := tmpl.Execute(w, Data{
		View:       name,
		Controller: route.Controller(ctx),
		Values:     c.Values(),
	}); err != nil {
		// headers are already out, so the failure can only be recorded
		r.l.Errorw("failed to render view",
			"view", name,
			"error", err)
	}
	return nil
}

// Path maps a view name onto its template file
func (r *Renderer) Path(name string) (string, error) {
	var rel = strings.TrimPrefix(name, "~/")
	if rel == "" || rel == name && filepath.IsAbs(name) {
		return "", ErrInvalidViewName
	}
	var (
		root = filepath.Clean(r.dir)
		path = filepath.Join(root, filepath.FromSlash(rel)+Extension)
	)
	if !strings.HasPrefix(path, root+string(filepath.Separator)) {
		return "", ErrInvalidViewName
	}
	return path, nil
}

func (r *Renderer) lookup(name string) (*template.Template, error) {
	path, err := r.Path(name)
	if err != nil {
		return nil, err
	}

	if r.templates != nil {
		r.tm.RLock()
		tmpl, found := r.templates[path]
		r.tm.RUnlock()
		if found {
			return tmpl, nil
		}
	}

	tmpl, err := template.ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("could not load view '%s': %s", name, err.Error())
	}

	if r.templates != nil {
		r.tm.Lock()
		r.templates[path] = tmpl
		r.tm.Unlock()
	}
	return tmpl, nil
}
