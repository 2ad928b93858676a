package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/iwvelando/staffing-planner/internal/config"
	"github.com/iwvelando/staffing-planner/internal/planner"
	"github.com/iwvelando/staffing-planner/pkg/constants"
	"github.com/iwvelando/staffing-planner/pkg/output"
	"github.com/iwvelando/staffing-planner/pkg/paging"
	"github.com/iwvelando/staffing-planner/pkg/solver"
	"github.com/iwvelando/staffing-planner/pkg/validation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Options tunes the handler returned by NewHandler.
type Options struct {
	MaxUploadSize int64
	SolveTimeout  time.Duration
	Version       string
	// Gatherer is served on /metrics when set.
	Gatherer prometheus.Gatherer
}

type handler struct {
	logger        *zap.Logger
	planner       *planner.Planner
	maxUploadSize int64
	solveTimeout  time.Duration
	version       string
}

// NewHandler constructs the HTTP handler that serves the solve API.
func NewHandler(logger *zap.Logger, p *planner.Planner, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if p == nil {
		p = planner.New(logger)
	}

	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "dev"
	}

	h := &handler{
		logger:        logger,
		planner:       p,
		maxUploadSize: opts.MaxUploadSize,
		solveTimeout:  opts.SolveTimeout,
		version:       version,
	}

	mux := http.NewServeMux()

	// Solve API endpoint for JSON requests
	mux.HandleFunc("/api/solve", h.handleSolve)

	// Solve API endpoint (YAML config upload)
	mux.HandleFunc("/api/solve/upload", h.handleSolveUpload)

	// Config serialization endpoint for downloads
	mux.HandleFunc("/api/export", h.handleConfigExport)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	if opts.Gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	return mux
}

type solveRequest struct {
	Roles      []solver.Role `json:"roles"`
	Target     int           `json:"target"`
	TargetUnit int           `json:"targetUnit"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
}

type solveResponse struct {
	Roles    []solver.Role   `json:"roles"`
	Target   int             `json:"target"`
	Total    int             `json:"total"`
	Page     paging.Page     `json:"page"`
	Pages    []int           `json:"pages"`
	Results  []solver.Result `json:"results"`
	CSV      string          `json:"csv"`
	Warnings []string        `json:"warnings,omitempty"`
	Duration string          `json:"duration"`
}

func (h *handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleSolve")
		return
	}

	cfg := &config.Configuration{
		Roles:      req.Roles,
		Target:     req.Target,
		TargetUnit: req.TargetUnit,
		Output: config.OutputConfig{
			Page:     req.Page,
			PageSize: req.PageSize,
		},
	}
	h.runSolve(r.Context(), w, cfg, start, "server.handleSolve")
}

func (h *handler) handleSolveUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	const op = "server.handleSolveUpload"
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(&buf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	h.runSolve(r.Context(), w, cfg, start, op)
}

func (h *handler) runSolve(ctx context.Context, w http.ResponseWriter, cfg *config.Configuration, start time.Time, op string) {
	if err := cfg.Validate(); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	warnings := cfg.ValidateConfiguration()

	if h.solveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.solveTimeout)
		defer cancel()
	}

	roles := cfg.SolverRoles()
	target := cfg.ScaledTarget()
	results, err := h.planner.Plan(ctx, roles, target)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}

	page := paging.New(len(results), cfg.Output.PageSize, cfg.PageIndex())
	pageResults := paging.Slice(results, page)
	elapsed := time.Since(start)

	if roles == nil {
		roles = []solver.Role{}
	}

	response := solveResponse{
		Roles:    roles,
		Target:   target,
		Total:    len(results),
		Page:     page,
		Pages:    page.Numbers(constants.PageWindow),
		Results:  pageResults,
		CSV:      output.CsvString(roles, pageResults),
		Warnings: warnings,
		Duration: elapsed.String(),
	}

	h.logger.Info("solve computed",
		zap.String("op", op),
		zap.Int("roles", len(roles)),
		zap.Int("schedules", response.Total),
		zap.Int("page", page.Number),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, validation.ErrNonPositiveRole),
		errors.Is(err, validation.ErrBlankRoleName),
		errors.Is(err, validation.ErrDuplicateRoleName),
		errors.Is(err, validation.ErrNonPositiveTarget):
		return http.StatusBadRequest
	case errors.Is(err, solver.ErrLimitExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled),
		errors.Is(err, planner.ErrBusy):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload map[string]interface{}
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), "server.handleConfigExport")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleConfigExport")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

// exportKeyOrder lists the top-level keys that lead an exported config, in
// the order of config.yaml.example.
var exportKeyOrder = []string{"logging", "output", "solver", "targetUnit", "target", "roles"}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range exportKeyOrder {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	return yaml.Marshal(orderedConfig{items: items})
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("solve request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
