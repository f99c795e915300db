package http

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"time"

	adsDomain "github.com/KevinKolb/CableGuide/internal/modules/ads/domain"
	adsService "github.com/KevinKolb/CableGuide/internal/modules/ads/service"
	feedService "github.com/KevinKolb/CableGuide/internal/modules/feed/service"
	gridService "github.com/KevinKolb/CableGuide/internal/modules/grid/service"
	guideService "github.com/KevinKolb/CableGuide/internal/modules/guide/service"
	listingsService "github.com/KevinKolb/CableGuide/internal/modules/listings/service"
	sessionService "github.com/KevinKolb/CableGuide/internal/modules/session/service"
	"github.com/KevinKolb/CableGuide/internal/shared/config"
	"github.com/KevinKolb/CableGuide/internal/shared/errors"
	sloghttp "github.com/samber/slog-http"
)

// Server serves the guide page, the session API and the RSS feed
type Server struct {
	cfg      *config.Config
	guide    *guideService.Service
	grid     *gridService.Service
	ads      *adsService.Service
	sessions *sessionService.Service
	feed     *feedService.Service
	listings *listingsService.Service
	tmpl     *template.Template
	logger   *slog.Logger
}

// New creates a new HTTP server
func New(cfg *config.Config, guide *guideService.Service, grid *gridService.Service,
	ads *adsService.Service, sessions *sessionService.Service,
	feed *feedService.Service, listings *listingsService.Service) *Server {
	return &Server{
		cfg:      cfg,
		guide:    guide,
		grid:     grid,
		ads:      ads,
		sessions: sessions,
		feed:     feed,
		listings: listings,
		tmpl:     template.Must(template.New("guide").Parse(tmplGuide)),
		logger:   slog.Default(),
	}
}

// SetLogger sets the logger
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.cfg.HTTPPort)
	s.logger.Info("Guide server starting", "addr", addr)

	// Use slog-http middleware with recovery
	handler := sloghttp.Recovery(s.Handler())
	handler = sloghttp.New(s.logger)(handler)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server.ListenAndServe()
}

// Handler builds the route mux
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Guide page
	mux.HandleFunc("GET /{$}", s.handleGuide)

	// Now-airing RSS feed
	mux.HandleFunc("GET /feed.rss", s.handleFeed)

	// Session state API
	mux.HandleFunc("GET /api/session/{id}", s.handleSessionGet)
	mux.HandleFunc("POST /api/session/{id}/step", s.handleStep)
	mux.HandleFunc("POST /api/session/{id}/drag/start", s.handleDragStart)
	mux.HandleFunc("POST /api/session/{id}/drag/move", s.handleDragMove)
	mux.HandleFunc("POST /api/session/{id}/drag/end", s.handleDragEnd)
	mux.HandleFunc("POST /api/session/{id}/fullscreen", s.handleFullscreen)
	mux.HandleFunc("POST /api/session/{id}/filter/{channel}", s.handleFilter)

	// Live clock
	mux.HandleFunc("GET /api/clock", s.handleClock)

	// Health check endpoint
	mux.HandleFunc("GET /health", s.handleHealth)

	// Local ad images
	mux.Handle("GET /images/", http.StripPrefix("/images/", http.FileServer(http.Dir(s.cfg.ImagesPath))))

	return mux
}

type pageData struct {
	Date         string
	Clock        string
	Visits       int64
	TimeSlots    []string
	Layout       gridService.Layout
	SessionID    string
	VisibleCount int
	Ad           *adsDomain.Ad
	AdImageSrc   string
	AdText       string
	ErrorMessage string
	SlotWidthPx  int
	ScrollStepPx float64
}

func (s *Server) handleGuide(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	guide, err := s.guide.Current()
	if err != nil {
		s.logger.Error("Error loading guide", "error", err)
		http.Error(w, "Failed to load guide", http.StatusInternalServerError)
		return
	}

	layout := s.grid.Compute(guide.Channels)
	sess := s.sessions.Create(float64(layout.LoopHeightPx))

	visits, err := s.sessions.RecordVisit()
	if err != nil {
		s.logger.Error("Error recording visit", "error", err)
	}

	data := pageData{
		Date:         guide.Date,
		Clock:        now.Format("3:04:05 PM"),
		Visits:       visits,
		TimeSlots:    s.guide.TimeSlots(now),
		Layout:       layout,
		SessionID:    sess.ID,
		VisibleCount: sess.VisibleCount(len(layout.Rows)),
		AdText:       guide.AdText,
		SlotWidthPx:  s.cfg.SlotWidthPx,
		ScrollStepPx: s.cfg.ScrollStepPx,
	}
	if data.Date == "" {
		data.Date = now.Format("01/02/06")
	}

	if ad, err := s.ads.Pick(); err == nil {
		data.Ad = &ad
		if ad.ImageIsRemote() {
			data.AdImageSrc = ad.Image
		} else {
			data.AdImageSrc = "/images/" + ad.Image
		}
	} else if err != errors.ErrNoAds {
		s.logger.Error("Error picking ad", "error", err)
	}

	if s.listings != nil {
		if err := s.listings.LastError(); err != nil {
			data.ErrorMessage = "LISTINGS UPDATE FAILED - SHOWING LAST KNOWN SCHEDULE"
			if last := s.listings.LastSync(); !last.IsZero() {
				data.ErrorMessage = "LISTINGS UPDATE FAILED - SHOWING SCHEDULE FROM " + last.Format("3:04 PM")
			}
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		s.logger.Error("Error rendering guide page", "error", err)
	}
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	baseURL := fmt.Sprintf("%s://%s", getScheme(r), r.Host)

	feed, err := s.feed.GenerateFeed(baseURL, time.Now())
	if err != nil {
		s.logger.Error("Error generating feed", "error", err)
		http.Error(w, "Failed to generate feed", http.StatusInternalServerError)
		return
	}

	rss, err := feed.ToRss()
	if err != nil {
		s.logger.Error("Error converting feed to RSS", "error", err)
		http.Error(w, "Failed to generate RSS", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(rss))
}

func (s *Server) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, sess)
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Step(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, sess)
}

type pointerRequest struct {
	Y float64 `json:"y"`
}

func (r pointerRequest) valid() bool {
	return !math.IsNaN(r.Y) && !math.IsInf(r.Y, 0)
}

func (s *Server) handleDragStart(w http.ResponseWriter, r *http.Request) {
	var req pointerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.valid() {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sess, err := s.sessions.BeginDrag(r.PathValue("id"), req.Y)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, sess)
}

func (s *Server) handleDragMove(w http.ResponseWriter, r *http.Request) {
	var req pointerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.valid() {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sess, err := s.sessions.DragTo(r.PathValue("id"), req.Y)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, sess)
}

func (s *Server) handleDragEnd(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.EndDrag(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, sess)
}

type fullscreenRequest struct {
	On bool `json:"on"`
}

func (s *Server) handleFullscreen(w http.ResponseWriter, r *http.Request) {
	var req fullscreenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sess, err := s.sessions.SetFullscreen(r.PathValue("id"), req.On)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, sess)
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.ToggleChannel(r.PathValue("id"), r.PathValue("channel"))
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, sess)
}

func (s *Server) handleClock(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"clock": time.Now().Format("3:04:05 PM")})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
