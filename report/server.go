package report

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/rondas-org/rondas/engine"
)

// ============================================================================
// PREVIEW SERVER — live dashboard over one loaded record set
// ============================================================================
// The record collection is loaded once and held read-only; every request
// recomputes its aggregates from scratch for whatever filters it carries.
// At the sheet sizes involved a full recompute is well under a millisecond,
// so there is no cache to invalidate.
// ============================================================================

// Server serves the dashboard and its JSON API for one record collection.
type Server struct {
	records []engine.ScanRecord
	kind    engine.EntityKind
	title   string
	router  *mux.Router
}

// NewServer wires the routes over an immutable record collection.
func NewServer(records []engine.ScanRecord, kind engine.EntityKind, title string) *Server {
	s := &Server{
		records: records,
		kind:    kind,
		title:   title,
		router:  mux.NewRouter(),
	}

	s.router.HandleFunc("/", s.handleIndex).Methods("GET")
	s.router.HandleFunc("/api/aggregates", s.handleAggregates).Methods("GET")
	s.router.HandleFunc("/api/clusters", s.handleClusters).Methods("GET")
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	return s
}

// Handler returns the full middleware stack.
func (s *Server) Handler() http.Handler {
	return handlers.LoggingHandler(os.Stdout, s.router)
}

// Run blocks serving HTTP on addr.
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	log.Printf("📊 Dashboard listening on http://%s", addr)
	return srv.ListenAndServe()
}

// filtersFromQuery reads the shared month/entity selectors.
func filtersFromQuery(r *http.Request) engine.Filters {
	q := r.URL.Query()
	return engine.Filters{
		Month:    q.Get("month"),
		EntityID: q.Get("entity"),
	}
}

func (s *Server) aggregate(r *http.Request) *engine.AggregateSet {
	return engine.Aggregate(s.records, filtersFromQuery(r), engine.WithEntityKind(s.kind))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	set := s.aggregate(r)
	points := engine.GeoPoints(s.records, s.kind, geoFilterFromQuery(r))
	clusters := engine.DetectClusters(points, engine.ParseThreshold(r.URL.Query().Get("threshold")))

	html, err := Generate(set, clusters, s.title)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func (s *Server) handleAggregates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.aggregate(r))
}

func geoFilterFromQuery(r *http.Request) engine.GeoFilter {
	q := r.URL.Query()
	day, _ := strconv.Atoi(q.Get("day")) // 0 on blank/garbage = no day filter
	return engine.GeoFilter{
		EntityID: q.Get("entity"),
		Month:    q.Get("month"),
		Day:      day,
	}
}

func (s *Server) handleClusters(w http.ResponseWriter, r *http.Request) {
	points := engine.GeoPoints(s.records, s.kind, geoFilterFromQuery(r))
	threshold := engine.ParseThreshold(r.URL.Query().Get("threshold"))

	clusters := engine.DetectClusters(points, threshold)
	writeJSON(w, struct {
		Points   int              `json:"points"`
		Clusters []engine.Cluster `json:"clusters"`
	}{Points: len(points), Clusters: clusters})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{
		"status":  "ok",
		"records": len(s.records),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
