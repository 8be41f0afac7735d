package cli

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcefield/pkg/cache"
	"github.com/matzehuels/forcefield/pkg/config"
	apperrors "github.com/matzehuels/forcefield/pkg/errors"
	"github.com/matzehuels/forcefield/pkg/graph"
	"github.com/matzehuels/forcefield/pkg/httputil"
	"github.com/matzehuels/forcefield/pkg/observability"
	"github.com/matzehuels/forcefield/pkg/pipeline"
	"github.com/matzehuels/forcefield/pkg/session"
)

// newServeCmd creates the serve command running the HTTP frame server.
//
// Clients upload a graph once and request any number of rendered frames for
// it by session id:
//
//	POST /api/v1/graphs                 upload graph JSON, returns {"id": ...}
//	GET  /api/v1/graphs/{id}/frame.png  rendered frame (also .svg and .dot)
//
// Frame requests accept theme, width, height, zoom, pan_x, pan_y, settle and
// particles query parameters. Rendered frames are cached; identical requests
// for an unchanged graph are served from cache.
func newServeCmd() *cobra.Command {
	var addr, redisAddr, configPath string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered frames over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Serve.Addr = addr
			}
			if cmd.Flags().Changed("redis") {
				cfg.Serve.RedisAddr = redisAddr
			}
			return runServe(cmd.Context(), cfg, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for the frame cache (host:port)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the frame cache")

	return cmd
}

func runServe(ctx context.Context, cfg config.Config, noCache bool) error {
	logger := loggerFromContext(ctx)

	var c cache.Cache
	var err error
	if cfg.Serve.RedisAddr != "" {
		c, err = cache.NewRedisCache(ctx, cfg.Serve.RedisAddr)
		if err != nil {
			return err
		}
		logger.Info("using redis frame cache", "addr", cfg.Serve.RedisAddr)
	} else {
		c, err = newCache(noCache)
		if err != nil {
			return err
		}
	}

	runner := pipeline.NewRunner(c, nil, logger)
	defer runner.Close()

	srv := newServer(runner, session.NewMemoryStore(), cfg)
	httpServer := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	printInfo("Listening on %s", cfg.Serve.Addr)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// server holds the HTTP handler state.
type server struct {
	runner   *pipeline.Runner
	sessions session.Store
	cfg      config.Config
}

func newServer(runner *pipeline.Runner, sessions session.Store, cfg config.Config) *server {
	return &server{runner: runner, sessions: sessions, cfg: cfg}
}

// routes builds the chi router.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(httputil.Observe)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/graphs", s.handleUpload)
		r.Get("/graphs/{id}/frame.{format}", s.handleFrame)
	})

	return r
}

// uploadResponse is the body returned for a stored graph.
type uploadResponse struct {
	ID        string    `json:"id"`
	Nodes     int       `json:"nodes"`
	Links     int       `json:"links"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *server) handleUpload(w http.ResponseWriter, r *http.Request) {
	body, err := httputil.ReadBody(r)
	if err != nil {
		httputil.RespondError(w, err)
		return
	}

	g, err := graph.Unmarshal(body)
	if err != nil {
		httputil.RespondError(w, err)
		return
	}

	sess := session.New(body, session.DefaultTTL)
	if err := s.sessions.Set(r.Context(), sess); err != nil {
		httputil.RespondError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "storing session"))
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, uploadResponse{
		ID:        sess.ID,
		Nodes:     len(g.Nodes),
		Links:     len(g.Links),
		ExpiresAt: sess.ExpiresAt,
	})
}

func (s *server) handleFrame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	format := chi.URLParam(r, "format")

	sess, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		httputil.RespondError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "loading session"))
		return
	}
	if sess == nil {
		httputil.RespondError(w, apperrors.New(apperrors.ErrCodeGraphNotFound, "unknown graph id %q", id))
		return
	}

	opts, err := s.frameOptions(r, sess.Graph, format)
	if err != nil {
		httputil.RespondError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		httputil.RespondError(w, err)
		return
	}
	observability.Server().OnFrameServed(r.Context(), id, format, result.CacheInfo.FrameHit)

	switch format {
	case pipeline.FormatPNG:
		w.Header().Set("Content-Type", "image/png")
	case pipeline.FormatSVG:
		w.Header().Set("Content-Type", "image/svg+xml")
	case pipeline.FormatDOT:
		w.Header().Set("Content-Type", "text/vnd.graphviz")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Frames[format])
}

// frameOptions builds pipeline options from the config defaults and the
// request's query parameters.
func (s *server) frameOptions(r *http.Request, graphData []byte, format string) (pipeline.Options, error) {
	opts := pipeline.Options{
		Data:      graphData,
		Theme:     s.cfg.Render.Theme,
		Width:     s.cfg.Render.Width,
		Height:    s.cfg.Render.Height,
		Zoom:      s.cfg.Render.Zoom,
		Settle:    s.cfg.Render.Settle,
		Particles: s.cfg.Render.Particles,
		Physics:   s.cfg.Params(),
		Formats:   []string{format},
	}

	q := r.URL.Query()
	if v := q.Get("theme"); v != "" {
		opts.Theme = v
	}
	var err error
	if opts.Width, err = queryInt(q.Get("width"), opts.Width); err != nil {
		return opts, err
	}
	if opts.Height, err = queryInt(q.Get("height"), opts.Height); err != nil {
		return opts, err
	}
	if opts.Settle, err = queryInt(q.Get("settle"), opts.Settle); err != nil {
		return opts, err
	}
	if opts.Zoom, err = queryFloat(q.Get("zoom"), opts.Zoom); err != nil {
		return opts, err
	}
	if opts.PanX, err = queryFloat(q.Get("pan_x"), opts.PanX); err != nil {
		return opts, err
	}
	if opts.PanY, err = queryFloat(q.Get("pan_y"), opts.PanY); err != nil {
		return opts, err
	}
	if v := q.Get("particles"); v != "" {
		opts.Particles = v == "true" || v == "1"
	}
	opts.Refresh = q.Get("refresh") == "true" || q.Get("refresh") == "1"

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

func queryInt(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid integer parameter %q", v)
	}
	return n, nil
}

func queryFloat(v string, def float64) (float64, error) {
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid numeric parameter %q", v)
	}
	return f, nil
}
