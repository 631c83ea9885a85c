// Package server exposes the budget engine and advisor over HTTP/JSON.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/runway/internal/advisor"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"
)

const (
	dateLayout     = "2006-01-02"
	maxRequestBody = 64 << 10
	defaultBuffer  = 10
)

// Config controls the server runtime behavior.
type Config struct {
	Addr           string
	Currency       string
	Tiers          model.TierConfig
	EventsBuffer   int
	AdvisorTimeout time.Duration
	Now            func() time.Time
}

// Service provides the HTTP API.
type Service struct {
	cfg     Config
	advisor advisor.Advisor
	log     *logrus.Logger
	metrics *metrics

	mu          sync.RWMutex
	startedAt   time.Time
	requests    int64
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a service. adv may be nil, in which case /v1/advice reports the
// advisor as unconfigured.
func New(cfg Config, adv advisor.Advisor, logger *logrus.Logger) *Service {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Tiers.Policy == "" {
		cfg.Tiers = model.DefaultTierConfig()
	}
	if cfg.AdvisorTimeout <= 0 {
		cfg.AdvisorTimeout = 30 * time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &Service{
		cfg:       cfg,
		advisor:   adv,
		log:       logger,
		metrics:   newMetrics(),
		startedAt: cfg.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the HTTP routes.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/status", s.handleStatus)
	mux.HandleFunc("POST /v1/budget", s.handleBudget)
	mux.HandleFunc("POST /v1/projection", s.handleProjection)
	mux.HandleFunc("POST /v1/purchase", s.handlePurchase)
	mux.HandleFunc("POST /v1/advice", s.handleAdvice)
	mux.HandleFunc("GET /v1/events", s.handleEvents)
	mux.HandleFunc("GET /v1/stream", s.handleStream)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	return s.instrument(mux)
}

// Run serves the API until ctx is canceled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.WithField("addr", s.cfg.Addr).Info("runway api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("runway http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleBudget(w http.ResponseWriter, r *http.Request) {
	var req BudgetRequest
	if !s.decode(w, r, &req) {
		return
	}
	out, ok := s.compute(w, req)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, budgetResponse(out))
}

func (s *Service) handleProjection(w http.ResponseWriter, r *http.Request) {
	var req BudgetRequest
	if !s.decode(w, r, &req) {
		return
	}
	out, ok := s.compute(w, req)
	if !ok {
		return
	}

	resp := ProjectionResponse{BudgetResponse: budgetResponse(out), Points: []model.ProjectionPoint{}}
	if out.Result != nil {
		proj := engine.ComputeProjection(*out.Result)
		resp.Points = proj
		if day, crossed := proj.ZeroCrossing(); crossed {
			resp.ZeroCrossingDay = &day
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Service) handlePurchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, _, ok := s.evaluate(w, req)
	if !ok {
		return
	}
	if resp.Verdict != nil {
		s.recordEvent(eventVerdict, *resp.Verdict)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Service) handleAdvice(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, out, ok := s.evaluate(w, req)
	if !ok {
		return
	}
	if out.Ended() {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	currency := strings.TrimSpace(req.Currency)
	if currency == "" {
		currency = s.cfg.Currency
	}
	advReq := advisor.Request{
		DailyBudget:   out.Result.DailyBudget,
		AvailableCash: out.Result.AvailableCash,
		DaysRemaining: out.Result.DaysRemaining,
		Item:          req.Item,
		Price:         req.Cost,
		Currency:      currency,
	}

	text, err := s.advise(r.Context(), advReq)
	if err != nil {
		status, code := advisorStatus(err)
		s.metrics.advice.WithLabelValues(code).Inc()
		s.log.WithError(err).WithField("code", code).Warn("advisor request failed")
		resp.Error = &ErrorBody{Code: code, Message: err.Error()}
		s.recordEvent(eventVerdict, *resp.Verdict)
		writeJSON(w, status, resp)
		return
	}
	s.metrics.advice.WithLabelValues("ok").Inc()
	resp.Advice = text
	s.recordEvent(eventAdvice, *resp.Verdict)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Service) advise(ctx context.Context, req advisor.Request) (string, error) {
	if s.advisor == nil {
		return "", advisor.ErrNoCredential
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.AdvisorTimeout)
	defer cancel()
	return s.advisor.Advise(ctx, req)
}

// advisorStatus maps an advisor error to an HTTP status and error code.
func advisorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, advisor.ErrNoCredential):
		return http.StatusServiceUnavailable, "advisor_unconfigured"
	case errors.Is(err, advisor.ErrQuotaExceeded):
		return http.StatusServiceUnavailable, "advisor_quota_exceeded"
	case errors.Is(err, advisor.ErrUnauthorized):
		return http.StatusBadGateway, "advisor_unauthorized"
	case errors.Is(err, advisor.ErrEmptyResponse):
		return http.StatusBadGateway, "advisor_empty_response"
	default:
		return http.StatusBadGateway, "advisor_unavailable"
	}
}

// evaluate computes the budget and, unless the period has ended, the
// purchase verdict. It writes an error response and returns ok=false on
// invalid input.
func (s *Service) evaluate(w http.ResponseWriter, req PurchaseRequest) (PurchaseResponse, model.Outcome, bool) {
	tiers, err := s.tierConfig(req)
	if err != nil {
		s.writeError(w, err)
		return PurchaseResponse{}, model.Outcome{}, false
	}
	if err := engine.ValidateTierConfig(tiers); err != nil {
		s.writeError(w, err)
		return PurchaseResponse{}, model.Outcome{}, false
	}

	out, ok := s.compute(w, req.BudgetRequest)
	if !ok {
		return PurchaseResponse{}, model.Outcome{}, false
	}
	resp := PurchaseResponse{Budget: budgetResponse(out)}
	if out.Ended() {
		return resp, out, true
	}

	v, err := engine.EvaluatePurchase(*out.Result, model.PurchaseQuery{
		ItemName: strings.TrimSpace(req.Item),
		ItemCost: req.Cost,
	}, tiers)
	if err != nil {
		s.writeError(w, err)
		return PurchaseResponse{}, model.Outcome{}, false
	}

	s.metrics.verdicts.WithLabelValues(v.Tier.String()).Inc()
	resp.Verdict = verdictResponse(v)
	return resp, out, true
}

func (s *Service) tierConfig(req PurchaseRequest) (model.TierConfig, error) {
	tc := s.cfg.Tiers
	if req.Policy != "" {
		p, err := model.ParseTierPolicy(req.Policy)
		if err != nil {
			return tc, &engine.InputError{Field: "policy", Reason: err.Error()}
		}
		tc.Policy = p
	}
	if req.RejectMultiplier != nil {
		tc.RejectMultiplier = *req.RejectMultiplier
	}
	if req.UnitPrice != nil {
		tc.UnitPrice = *req.UnitPrice
	}
	if label := strings.TrimSpace(req.UnitLabel); label != "" {
		tc.UnitLabel = label
	}
	return tc, nil
}

func (s *Service) compute(w http.ResponseWriter, req BudgetRequest) (model.Outcome, bool) {
	in, err := s.inputs(req)
	if err != nil {
		s.writeError(w, err)
		return model.Outcome{}, false
	}
	out, err := engine.ComputeBudget(in)
	if err != nil {
		s.writeError(w, err)
		return model.Outcome{}, false
	}
	return out, true
}

func (s *Service) inputs(req BudgetRequest) (model.Inputs, error) {
	today := engine.Today(s.cfg.Now())
	if req.Today != "" {
		t, err := time.Parse(dateLayout, req.Today)
		if err != nil {
			return model.Inputs{}, &engine.InputError{Field: "today", Reason: "must be a YYYY-MM-DD date"}
		}
		today = t
	}
	if strings.TrimSpace(req.SemesterEnd) == "" {
		return model.Inputs{}, &engine.InputError{Field: "semester_end", Reason: "date is required"}
	}
	end, err := time.Parse(dateLayout, strings.TrimSpace(req.SemesterEnd))
	if err != nil {
		return model.Inputs{}, &engine.InputError{Field: "semester_end", Reason: "must be a YYYY-MM-DD date"}
	}

	buffer := defaultBuffer
	if req.BufferPercent != nil {
		buffer = *req.BufferPercent
	}
	return model.Inputs{
		CurrentBalance: req.Balance,
		FixedCosts:     req.FixedCosts,
		SemesterEnd:    end,
		Today:          today,
		BufferPercent:  buffer,
	}, nil
}

func (s *Service) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: ErrorBody{
			Code:    "bad_request",
			Message: fmt.Sprintf("decoding request body: %v", err),
		}})
		return false
	}
	return true
}

func (s *Service) writeError(w http.ResponseWriter, err error) {
	var ie *engine.InputError
	if errors.As(err, &ie) {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: ErrorBody{
			Code:    "invalid_input",
			Field:   ie.Field,
			Message: ie.Error(),
		}})
		return
	}
	s.log.WithError(err).Error("request failed")
	writeJSON(w, http.StatusInternalServerError, errorEnvelope{Error: ErrorBody{
		Code:    "internal",
		Message: "internal error",
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Service) recordEvent(typ string, v VerdictResponse) {
	s.mu.Lock()
	s.nextEventID++
	ev := Event{
		ID:           s.nextEventID,
		Type:         typ,
		Timestamp:    s.cfg.Now(),
		Item:         v.Item,
		Cost:         v.Cost,
		Tier:         v.Tier,
		DaysOfBudget: v.DaysOfBudget,
	}
	s.mu.Unlock()
	s.publishEvent(ev)
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		Requests:        s.requests,
		AdvisorEnabled:  s.advisor != nil,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	_, _ = fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "id: %d\n", ev.ID)
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
