package server

import (
	"context"
	"net/http"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/RTradeLtd/Dispatch/action"
	"github.com/RTradeLtd/Dispatch/config"
	"github.com/RTradeLtd/Dispatch/internal"
	"github.com/RTradeLtd/Dispatch/log"
	"github.com/RTradeLtd/Dispatch/metrics"
	"github.com/RTradeLtd/Dispatch/resolver"
	"github.com/RTradeLtd/Dispatch/route"
)

// Engine serves requests through the route handler
type Engine struct {
	l       *zap.SugaredLogger
	handler *resolver.Handler
	table   *action.Table
	metrics *metrics.Collector

	timeout   time.Duration
	keyLookup jwt.Keyfunc
	version   string
}

// EngineOpts declares options for the engine
type EngineOpts struct {
	Version string
	Timeout time.Duration

	// DebugKey enables bearer token authentication on debug endpoints
	DebugKey []byte
}

// New instantiates a new engine. metrics may be nil.
func New(l *zap.SugaredLogger, opts EngineOpts, h *resolver.Handler,
	table *action.Table, m *metrics.Collector) *Engine {

	var e = &Engine{
		l:       l.Named("server"),
		handler: h,
		table:   table,
		metrics: m,

		timeout: opts.Timeout,
		version: opts.Version,
	}
	if len(opts.DebugKey) > 0 {
		var key = opts.DebugKey
		e.keyLookup = func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errInvalidAuth
			}
			return key, nil
		}
	}
	return e
}

// Router builds the request pipeline
func (e *Engine) Router() http.Handler {
	var r = chi.NewRouter()

	// mount middleware
	r.Use(
		cors.New(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"HEAD", "GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		}).Handler,
		middleware.RequestID,
		middleware.RealIP,
		log.NewMiddleware(e.l.Named("requests")),
		middleware.Recoverer,
	)
	if e.timeout > 0 {
		r.Use(middleware.Timeout(e.timeout))
	}

	// register endpoints
	r.Get("/status", e.Status)
	if e.metrics != nil {
		r.Handle("/metrics", e.metrics.Handler())
	}
	r.Route("/debug", func(r chi.Router) {
		r.Use(e.Authenticate)
		r.Get("/routes", e.Routes)
		r.Get("/bound", e.Bound)
	})

	// conventional route templates, everything else falls back to dynamic
	// resolution with no values
	for _, pattern := range []string{
		"/{app}",
		"/{app}/{controller}",
		"/{app}/{controller}/{action}",
		"/{app}/{controller}/{action}/{id}",
	} {
		r.HandleFunc(pattern, e.Dispatch)
	}
	r.NotFound(e.Dispatch)

	return r
}

// Run spins up a server that listens for requests and routes them
func (e *Engine) Run(ctx context.Context, opts config.API) error {
	// set up server
	var srv = &http.Server{
		Handler: e.Router(),

		Addr:         opts.Host + ":" + opts.Port,
		WriteTimeout: e.timeout,
		ReadTimeout:  e.timeout,
	}

	g, ctx := errgroup.WithContext(ctx)

	// handle shutdown
	g.Go(func() error {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			e.l.Warnw("error encountered during shutdown", "error", err.Error())
			return err
		}
		return nil
	})

	// go!
	g.Go(func() error {
		var err error
		if opts.TLS.CertPath != "" {
			err = srv.ListenAndServeTLS(opts.TLS.CertPath, opts.TLS.KeyPath)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			e.l.Errorw("error encountered - service stopped", "error", err)
			return err
		}
		return nil
	})

	return g.Wait()
}

// Dispatch routes a request to its action
func (e *Engine) Dispatch(w http.ResponseWriter, r *http.Request) {
	var (
		ww = middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		c  = route.NewContext(ww, r, urlValues(r))
	)

	if _, err := e.handler.Route(c); err != nil {
		if ww.Status() == 0 {
			http.Error(ww, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	// unhandled actions may already have written a partial response
	if !c.Handled && ww.Status() == 0 {
		http.Error(ww, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	}
}

// Status reports on server status
func (e *Engine) Status(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, map[string]string{
		"status":  "online",
		"version": e.version,
	})
}

// Routes lists all registered actions. Use ?format=csv for a comma-separated
// list.
func (e *Engine) Routes(w http.ResponseWriter, r *http.Request) {
	var actions = e.table.List()
	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(internal.JoinWithComma(actions)))
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"actions": actions,
	})
}

// Bound reports whether the app, controller and action query parameters
// name a registered action
func (e *Engine) Bound(w http.ResponseWriter, r *http.Request) {
	var (
		q      = r.URL.Query()
		values = route.NewValues(
			q.Get(route.KeyApp),
			q.Get(route.KeyController),
			q.Get(route.KeyAction),
			q.Get(route.KeyID))
	)
	render.JSON(w, r, map[string]interface{}{
		"values": values,
		"bound":  e.handler.Bound(values),
	})
}

// urlValues collects the route values matched by the conventional templates
func urlValues(r *http.Request) route.Values {
	var values = route.Values{}
	var rctx = chi.RouteContext(r.Context())
	if rctx == nil {
		return values
	}
	for i, k := range rctx.URLParams.Keys {
		if k == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		values[k] = rctx.URLParams.Values[i]
	}
	return values
}
