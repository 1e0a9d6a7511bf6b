package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"solana-launch-guard/internal/addr"
	"solana-launch-guard/internal/api"
	"solana-launch-guard/internal/domain"
	"solana-launch-guard/internal/observability"
	"solana-launch-guard/internal/policy"
	"solana-launch-guard/internal/reporting"
	"solana-launch-guard/internal/risk"
)

// routes builds the HTTP mux for the API surface.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Scoring and scanning (stateless)
	mux.HandleFunc("/score", s.handleScore)
	mux.HandleFunc("/scan", s.handleScan)
	mux.HandleFunc("/report", s.handleReport)

	// Protection config
	mux.HandleFunc("/config", s.handleConfig)

	// Launch lifecycle
	mux.HandleFunc("/launch/schedule", s.handleSchedule)
	mux.HandleFunc("/launch/activate", s.transitionHandler(s.scheduler.Activate, domain.LaunchActive))
	mux.HandleFunc("/launch/complete", s.transitionHandler(s.scheduler.Complete, domain.LaunchCompleted))
	mux.HandleFunc("/launch/cancel", s.transitionHandler(s.scheduler.Cancel, domain.LaunchCancelled))
	mux.HandleFunc("/launch/whitelist", s.listHandler(policy.AddToWhitelist))
	mux.HandleFunc("/launch/blacklist", s.listHandler(policy.AddToBlacklist))
	mux.HandleFunc("/launches", s.handleLaunches)

	// Purchase gating
	mux.HandleFunc("/purchase/validate", s.handleValidate)

	// Bot management
	mux.HandleFunc("/bot/mark", s.handleMarkBot)
	mux.HandleFunc("/bot/detect", s.handleDetectBot)
	mux.HandleFunc("/bot/list", s.handleBotList)

	// Operational endpoints
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/status", s.handleStatus)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// handleScore computes the quality score for a submitted token config.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req api.TokenConfigRequest
	if !decodeBody(w, r, &req) {
		return
	}

	score := risk.CalculateQualityScore(req.ToDomain())
	observability.RecordQualityScore()
	writeJSON(w, http.StatusOK, api.NewQualityScoreResponse(score))
}

// handleScan runs the risk scan for a submitted token config.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req api.TokenConfigRequest
	if !decodeBody(w, r, &req) {
		return
	}

	assessment := risk.ScanForRisks(req.ToDomain())
	observability.RecordRiskScan(severities(assessment.Risks))
	writeJSON(w, http.StatusOK, api.NewRiskAssessmentResponse(assessment))
}

type reportRequest struct {
	Mint  string                 `json:"mint"`
	Token api.TokenConfigRequest `json:"token"`
}

// handleReport renders a combined markdown report for a token config.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if !decodeBody(w, r, &req) {
		return
	}

	cfg := req.Token.ToDomain()
	quality := risk.CalculateQualityScore(cfg)
	assessment := risk.ScanForRisks(cfg)
	observability.RecordQualityScore()
	observability.RecordRiskScan(severities(assessment.Risks))

	report := reporting.TokenReport{
		Mint:        req.Mint,
		GeneratedAt: time.Now().UnixMilli(),
		Quality:     &quality,
		Assessment:  &assessment,
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(reporting.RenderMarkdown(&report)))
}

type configRequest struct {
	Level     string                      `json:"level"`
	Overrides *api.ConfigOverridesRequest `json:"overrides,omitempty"`
}

// handleConfig reads or replaces the server default protection config.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		cfg := s.defaultConfig
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, api.NewAntiSnipeConfigResponse(cfg, policy.EstimateSetupCost(cfg)))

	case http.MethodPost:
		var req configRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		level := domain.ProtectionLevel(req.Level)
		if !level.IsValid() {
			writeError(w, http.StatusBadRequest, "unknown protection level")
			return
		}
		cfg := policy.ForLevel(level, req.Overrides.ToDomain())

		s.mu.Lock()
		s.defaultConfig = cfg
		s.mu.Unlock()

		writeJSON(w, http.StatusOK, api.NewAntiSnipeConfigResponse(cfg, policy.EstimateSetupCost(cfg)))

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleSchedule derives a config for the requested level and schedules the
// launch, persisting both the schedule and the per-mint config.
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var req api.ScheduleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := addr.Validate(req.Mint); err != nil {
		writeError(w, http.StatusBadRequest, "invalid mint address: "+err.Error())
		return
	}
	level := domain.ProtectionLevel(req.Level)
	if !level.IsValid() {
		writeError(w, http.StatusBadRequest, "unknown protection level")
		return
	}

	cfg := policy.ForLevel(level, req.Overrides.ToDomain())
	schedule := s.scheduler.Schedule(req.Mint, cfg)

	s.mu.Lock()
	s.mintConfigs[req.Mint] = cfg
	s.mu.Unlock()

	if err := s.persistSchedule(r.Context(), schedule); err != nil {
		s.logger.Printf("Failed to persist schedule for %s: %v", req.Mint, err)
		writeError(w, http.StatusInternalServerError, "failed to persist schedule")
		return
	}

	observability.RecordLaunchScheduled(string(level))
	writeJSON(w, http.StatusOK, api.NewScheduleResponse(schedule))
}

// transitionHandler builds a handler that applies one lifecycle transition
// and writes the new status through to the schedule store.
func (s *Server) transitionHandler(transition func(string) bool, to domain.LaunchStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.MintRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if !transition(req.Mint) {
			writeError(w, http.StatusConflict, "transition not applicable")
			return
		}

		if err := s.stores.scheduleStore.UpdateStatus(r.Context(), req.Mint, to); err != nil {
			s.logger.Printf("Failed to persist %s status for %s: %v", to, req.Mint, err)
		}
		observability.RecordLaunchTransition(string(to))

		schedule, _ := s.scheduler.Get(req.Mint)
		writeJSON(w, http.StatusOK, api.NewScheduleResponse(schedule))
	}
}

// listHandler builds a handler that adds a wallet to a per-mint whitelist or
// blacklist via the policy layer.
func (s *Server) listHandler(add func(domain.AntiSnipeConfig, string) domain.AntiSnipeConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.ListWalletRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := addr.ValidateWallet(req.Wallet); err != nil {
			writeError(w, http.StatusBadRequest, "invalid wallet address: "+err.Error())
			return
		}

		s.mu.Lock()
		cfg, ok := s.mintConfigs[req.Mint]
		if !ok {
			cfg = s.defaultConfig
		}
		cfg = add(cfg, req.Wallet)
		s.mintConfigs[req.Mint] = cfg
		s.mu.Unlock()

		writeJSON(w, http.StatusOK, api.NewAntiSnipeConfigResponse(cfg, policy.EstimateSetupCost(cfg)))
	}
}

// handleLaunches lists all schedules, or a single one when ?mint= is given.
func (s *Server) handleLaunches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if mint := r.URL.Query().Get("mint"); mint != "" {
		schedule, ok := s.scheduler.Get(mint)
		if !ok {
			writeError(w, http.StatusNotFound, "no schedule for mint")
			return
		}
		writeJSON(w, http.StatusOK, api.NewScheduleResponse(schedule))
		return
	}

	schedules := s.scheduler.All()
	sort.Slice(schedules, func(i, j int) bool {
		if schedules[i].ScheduledTime != schedules[j].ScheduledTime {
			return schedules[i].ScheduledTime < schedules[j].ScheduledTime
		}
		return schedules[i].Mint < schedules[j].Mint
	})

	out := make([]api.ScheduleResponse, 0, len(schedules))
	for _, schedule := range schedules {
		out = append(out, api.NewScheduleResponse(schedule))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleValidate gates one purchase attempt. Allowed purchases are recorded
// in the engine's transaction history and in the analysis store.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req api.ValidateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	start := time.Now()
	cfg := s.configFor(req.Mint)
	decision := s.scheduler.ValidatePurchase(req.Wallet, req.Amount, req.Mint, cfg)

	s.mu.Lock()
	s.validations++
	if !decision.Allowed {
		s.denials++
	}
	s.mu.Unlock()

	if decision.Allowed {
		analysis := s.engine.RecordTransactionForMint(req.Wallet, req.Mint, req.Amount, nil)
		observability.RecordTransactionRecorded()
		s.persistAnalysis(r.Context(), analysis)
	}

	observability.RecordValidation(decision.Reason, time.Since(start).Seconds())
	writeJSON(w, http.StatusOK, api.ValidateResponse{Allowed: decision.Allowed, Reason: decision.Reason})
}

// handleMarkBot adds a wallet to the known-bot set and persists it.
func (s *Server) handleMarkBot(w http.ResponseWriter, r *http.Request) {
	var req api.WalletRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := addr.ValidateWallet(req.Wallet); err != nil {
		writeError(w, http.StatusBadRequest, "invalid wallet address: "+err.Error())
		return
	}

	s.engine.MarkBot(req.Wallet)
	if err := s.stores.botListStore.Add(r.Context(), req.Wallet); err != nil {
		s.logger.Printf("Failed to persist bot wallet %s: %v", req.Wallet, err)
		writeError(w, http.StatusInternalServerError, "failed to persist bot wallet")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"wallet": req.Wallet, "status": "marked"})
}

// handleDetectBot runs on-demand bot detection against the wallet's history.
func (s *Server) handleDetectBot(w http.ResponseWriter, r *http.Request) {
	var req api.WalletRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Wallet == "" {
		writeError(w, http.StatusBadRequest, "wallet is required")
		return
	}

	result := s.engine.DetectBot(req.Wallet)
	observability.RecordBotDetection(result.IsBot, result.ShouldBlock)
	writeJSON(w, http.StatusOK, api.NewBotDetectionResponse(req.Wallet, result))
}

// handleBotList returns the known-bot set.
func (s *Server) handleBotList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	bots := s.engine.KnownBots()
	if bots == nil {
		bots = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"bots": bots})
}

// StatusResponse is the JSON response for /status endpoint.
type StatusResponse struct {
	Status         string  `json:"status"`
	Uptime         string  `json:"uptime"`
	Started        int64   `json:"started_ms"`
	Launches       int     `json:"launches"`
	ActiveLaunches int     `json:"active_launches"`
	KnownBots      int     `json:"known_bots"`
	Validations    int64   `json:"validations"`
	Denials        int64   `json:"denials"`
	NetworkTPS     float64 `json:"network_tps,omitempty"`
}

// handleStatus returns server status as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	schedules := s.scheduler.All()
	active := 0
	for _, schedule := range schedules {
		if schedule.Status == domain.LaunchActive {
			active++
		}
	}

	s.mu.Lock()
	resp := StatusResponse{
		Status:         "running",
		Uptime:         time.Since(s.started).String(),
		Started:        s.started.UnixMilli(),
		Launches:       len(schedules),
		ActiveLaunches: active,
		KnownBots:      len(s.engine.KnownBots()),
		Validations:    s.validations,
		Denials:        s.denials,
	}
	s.mu.Unlock()

	if s.sampler != nil {
		resp.NetworkTPS = s.networkTPS(r.Context())
	}

	writeJSON(w, http.StatusOK, resp)
}

// networkTPS returns the most recent network TPS sample, or 0 when the RPC
// endpoint is unreachable.
func (s *Server) networkTPS(ctx context.Context) float64 {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	samples, err := s.sampler.RecentPerformanceSamples(ctx, 1)
	if err != nil || len(samples) == 0 {
		return 0
	}
	return samples[0].TPS()
}

func (s *Server) persistSchedule(ctx context.Context, schedule domain.LaunchSchedule) error {
	start := time.Now()
	err := s.stores.scheduleStore.Upsert(ctx, &schedule)
	observability.RecordDBQuery("postgres", "upsert_schedule", time.Since(start).Seconds(), err)
	return err
}

// persistAnalysis writes one analysis record. Failures are logged, not
// surfaced; the audit trail is best effort relative to the gate decision.
func (s *Server) persistAnalysis(ctx context.Context, analysis domain.TransactionAnalysis) {
	start := time.Now()
	err := s.stores.analysisStore.Insert(ctx, &analysis)
	observability.RecordDBQuery("clickhouse", "insert_analysis", time.Since(start).Seconds(), err)
	if err != nil {
		s.logger.Printf("Failed to persist analysis for %s: %v", analysis.Wallet, err)
	}
}

func severities(risks []domain.Risk) []string {
	out := make([]string, 0, len(risks))
	for _, r := range risks {
		out = append(out, string(r.Severity))
	}
	return out
}
