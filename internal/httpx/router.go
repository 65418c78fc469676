package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/AngelCh415/sdr-funnel/internal/dashboard"
	"github.com/AngelCh415/sdr-funnel/internal/datemath"
	"github.com/AngelCh415/sdr-funnel/internal/period"
	"github.com/AngelCh415/sdr-funnel/internal/telemetry"
	"github.com/AngelCh415/sdr-funnel/internal/utils"
)

// Index is the part of the date index the API drives directly.
type Index interface {
	Refresh(ctx context.Context) error
	Loaded() bool
}

type Deps struct {
	Service        *dashboard.Service
	Sessions       *dashboard.Sessions
	Index          Index
	Metrics        *telemetry.Metrics
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
}

type router struct {
	log *slog.Logger
	d   Deps
}

func NewRouter(log *slog.Logger, d Deps) http.Handler {
	rt := &router{log: log, d: d}

	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))
	mux.Use(d.Metrics.InstrumentHandler)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if !d.Index.Loaded() {
			http.Error(w, "index not loaded", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
		w.Write([]byte("ready"))
	})
	mux.Handle("/metrics", telemetry.Handler(d.Gatherer))

	mux.Route("/api", func(api chi.Router) {
		api.Get("/dates", rt.dates)
		api.Get("/view", rt.view)
		api.Get("/drilldown", rt.drillDown)
		api.Post("/index/refresh", rt.refreshIndex)

		api.Post("/sessions", rt.createSession)
		api.Route("/sessions/{id}", func(s chi.Router) {
			s.Get("/", rt.withSession(rt.currentScreen))
			s.Delete("/", rt.deleteSession)
			s.Post("/navigate", rt.withSession(rt.navigate))
			s.Post("/view", rt.withSession(rt.changeView))
			s.Post("/pick", rt.withSession(rt.pick))
			s.Get("/drilldown", rt.withSession(rt.sessionDrillDown))
		})
	})

	return mux
}

func (rt *router) dates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"dates": rt.d.Service.Dates()})
}

// query reads mode and date, defaulting to the day view of the latest date.
func (rt *router) query(r *http.Request) (period.Mode, string, error) {
	mode, err := period.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		return "", "", err
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = rt.d.Service.DefaultAnchor()
	}
	return mode, date, nil
}

func (rt *router) view(w http.ResponseWriter, r *http.Request) {
	mode, date, err := rt.query(r)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	sc, err := rt.d.Service.View(r.Context(), mode, date)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (rt *router) drillDown(w http.ResponseWriter, r *http.Request) {
	metric := r.URL.Query().Get("metric")
	if metric == "" {
		http.Error(w, "metric required", http.StatusBadRequest)
		return
	}
	mode, date, err := rt.query(r)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	dd, err := rt.d.Service.DrillDown(r.Context(), mode, date, metric, r.URL.Query().Get("sdr"))
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dd)
}

func (rt *router) refreshIndex(w http.ResponseWriter, r *http.Request) {
	if err := rt.d.Index.Refresh(r.Context()); err != nil {
		rt.log.Warn("index refresh failed", slog.String("rid", utils.RID(r.Context())), slog.String("err", err.Error()))
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dates": len(rt.d.Service.Dates())})
}

func (rt *router) createSession(w http.ResponseWriter, r *http.Request) {
	id, s := rt.d.Sessions.Create()
	sc, err := s.Init(r.Context())
	if err != nil {
		rt.d.Sessions.Delete(id)
		rt.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "screen": sc})
}

func (rt *router) deleteSession(w http.ResponseWriter, r *http.Request) {
	if !rt.d.Sessions.Delete(chi.URLParam(r, "id")) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, s *dashboard.Session)

func (rt *router) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := rt.d.Sessions.Get(chi.URLParam(r, "id"))
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		h(w, r, s)
	}
}

func (rt *router) currentScreen(w http.ResponseWriter, r *http.Request, s *dashboard.Session) {
	writeJSON(w, http.StatusOK, s.Current())
}

func (rt *router) navigate(w http.ResponseWriter, r *http.Request, s *dashboard.Session) {
	dir, err := strconv.Atoi(r.URL.Query().Get("dir"))
	if err != nil || (dir != -1 && dir != 1) {
		http.Error(w, "dir must be -1 or 1", http.StatusBadRequest)
		return
	}
	rt.screen(w, r)(s.OnNavigate(r.Context(), dir))
}

func (rt *router) changeView(w http.ResponseWriter, r *http.Request, s *dashboard.Session) {
	mode, err := period.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	rt.screen(w, r)(s.OnViewChange(r.Context(), mode))
}

func (rt *router) pick(w http.ResponseWriter, r *http.Request, s *dashboard.Session) {
	rt.screen(w, r)(s.OnPick(r.Context(), r.URL.Query().Get("date")))
}

func (rt *router) sessionDrillDown(w http.ResponseWriter, r *http.Request, s *dashboard.Session) {
	metric := r.URL.Query().Get("metric")
	if metric == "" {
		http.Error(w, "metric required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.DrillDown(metric, r.URL.Query().Get("sdr")))
}

func (rt *router) screen(w http.ResponseWriter, r *http.Request) func(*dashboard.Screen, error) {
	return func(sc *dashboard.Screen, err error) {
		if err != nil {
			rt.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, sc)
	}
}

func (rt *router) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, datemath.ErrInvalidDate), errors.Is(err, period.ErrUnknownMode):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, dashboard.ErrSuperseded):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		rt.log.Error("request failed", slog.String("rid", utils.RID(r.Context())), slog.String("err", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}
