// Package server exposes the staffing calculator over HTTP. It is a thin
// boundary: requests are decoded and validated, the dispatcher does the
// work, and flat results go straight back out as JSON.
package server

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"staffing-calculator/dispatch"
	calcerrors "staffing-calculator/errors"
	"staffing-calculator/metrics"
	"staffing-calculator/models"
	"staffing-calculator/scenarios"
)

// CalculationRequest is the POST body for /v1/calculate and /v1/compare.
// Model is ignored by /v1/compare, which always runs all three.
type CalculationRequest struct {
	Model    models.ModelID             `json:"model,omitempty"`
	Workload models.WorkloadParameters  `json:"workload"`
	Target   models.ServiceTarget       `json:"target"`
	Patience *models.PatienceParameters `json:"patience,omitempty"`
}

// CalculationResponse wraps a dispatcher outcome. Achievable=false with a
// nil result means no staffing level within search limits met the target.
type CalculationResponse struct {
	Achievable bool                   `json:"achievable"`
	Result     *models.StaffingResult `json:"result,omitempty"`
}

// SaveScenarioRequest is the POST body for /v1/scenarios. The calculation
// is run on save so the stored scenario carries its current result.
type SaveScenarioRequest struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	CalculationRequest
}

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Server routes staffing API requests.
type Server struct {
	store          scenarios.StoreInterface
	metricsHandler fasthttp.RequestHandler
}

// New builds a Server over the given scenario store.
func New(store scenarios.StoreInterface) *Server {
	return &Server{
		store: store,
		metricsHandler: fasthttpadaptor.NewFastHTTPHandler(
			promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})),
	}
}

// Handle is the fasthttp entry point.
func (s *Server) Handle(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	// Scenario ids are collapsed to keep the metric label cardinality flat.
	route := path
	if strings.HasPrefix(path, "/v1/scenarios/") {
		route = "/v1/scenarios/:id"
	}

	switch {
	case path == "/health":
		ctx.SetStatusCode(http.StatusOK)
		ctx.SetBodyString("ok")
	case path == "/metrics":
		s.metricsHandler(ctx)
	case path == "/v1/calculate" && method == http.MethodPost:
		s.handleCalculate(ctx)
	case path == "/v1/compare" && method == http.MethodPost:
		s.handleCompare(ctx)
	case path == "/v1/scenarios" && method == http.MethodPost:
		s.handleScenarioSave(ctx)
	case path == "/v1/scenarios" && method == http.MethodGet:
		s.handleScenarioList(ctx)
	case strings.HasPrefix(path, "/v1/scenarios/"):
		id := strings.TrimPrefix(path, "/v1/scenarios/")
		switch method {
		case http.MethodGet:
			s.handleScenarioGet(ctx, id)
		case http.MethodDelete:
			s.handleScenarioDelete(ctx, id)
		default:
			writeError(ctx, http.StatusMethodNotAllowed, "method not allowed")
		}
	default:
		writeError(ctx, http.StatusNotFound, "not found")
	}

	metrics.RequestsTotal.WithLabelValues(route, fmt.Sprintf("%d", ctx.Response.StatusCode())).Inc()
}

func (s *Server) handleCalculate(ctx *fasthttp.RequestCtx) {
	var req CalculationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := validateRequest(&req, true); err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	res := dispatch.Run(req.Workload, req.Target, req.Patience, req.Model)
	writeJSON(ctx, http.StatusOK, CalculationResponse{Achievable: res != nil, Result: res})
}

func (s *Server) handleCompare(ctx *fasthttp.RequestCtx) {
	var req CalculationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := validateRequest(&req, false); err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(ctx, http.StatusOK, dispatch.Compare(req.Workload, req.Target, req.Patience))
}

func (s *Server) handleScenarioSave(ctx *fasthttp.RequestCtx) {
	var req SaveScenarioRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(ctx, http.StatusBadRequest, calcerrors.ErrMissingName.Error())
		return
	}
	if err := validateRequest(&req.CalculationRequest, true); err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	sc := &scenarios.Scenario{
		ID:       req.ID,
		Name:     strings.TrimSpace(req.Name),
		Model:    req.Model,
		Workload: req.Workload,
		Target:   req.Target,
		Patience: req.Patience,
		Result:   dispatch.Run(req.Workload, req.Target, req.Patience, req.Model),
	}
	if err := s.store.Save(sc); err != nil {
		log.WithError(err).Error("save scenario")
		writeError(ctx, http.StatusInternalServerError, "save scenario failed")
		return
	}
	metrics.ScenariosSavedTotal.Inc()
	writeJSON(ctx, http.StatusCreated, sc)
}

func (s *Server) handleScenarioList(ctx *fasthttp.RequestCtx) {
	list, err := s.store.List()
	if err != nil {
		log.WithError(err).Error("list scenarios")
		writeError(ctx, http.StatusInternalServerError, "list scenarios failed")
		return
	}
	if list == nil {
		list = []scenarios.Scenario{}
	}
	writeJSON(ctx, http.StatusOK, list)
}

func (s *Server) handleScenarioGet(ctx *fasthttp.RequestCtx, id string) {
	sc, err := s.store.Get(id)
	if stderrors.Is(err, scenarios.ErrNotFound) {
		writeError(ctx, http.StatusNotFound, "scenario not found")
		return
	}
	if err != nil {
		log.WithError(err).Error("get scenario")
		writeError(ctx, http.StatusInternalServerError, "get scenario failed")
		return
	}
	writeJSON(ctx, http.StatusOK, sc)
}

func (s *Server) handleScenarioDelete(ctx *fasthttp.RequestCtx, id string) {
	err := s.store.Delete(id)
	if stderrors.Is(err, scenarios.ErrNotFound) {
		writeError(ctx, http.StatusNotFound, "scenario not found")
		return
	}
	if err != nil {
		log.WithError(err).Error("delete scenario")
		writeError(ctx, http.StatusInternalServerError, "delete scenario failed")
		return
	}
	ctx.SetStatusCode(http.StatusNoContent)
}

// validateRequest rejects inputs that are clearly client bugs. The engine
// itself degrades non-positive workload inputs to a zero-load result, so
// only out-of-domain values are refused here.
func validateRequest(req *CalculationRequest, requireModel bool) error {
	if requireModel && !req.Model.Valid() {
		return &calcerrors.ValidationError{Field: "model", Value: req.Model, Err: calcerrors.ErrUnknownModel}
	}
	if req.Workload.Volume < 0 {
		return &calcerrors.ValidationError{Field: "workload.volume", Value: req.Workload.Volume, Err: calcerrors.ErrNegativeVolume}
	}
	if req.Workload.AHTSeconds <= 0 {
		return &calcerrors.ValidationError{Field: "workload.aht_seconds", Value: req.Workload.AHTSeconds, Err: calcerrors.ErrNonPositiveAHT}
	}
	if req.Workload.IntervalSeconds <= 0 {
		return &calcerrors.ValidationError{Field: "workload.interval_seconds", Value: req.Workload.IntervalSeconds, Err: calcerrors.ErrNonPositiveInterval}
	}
	if req.Target.ServiceLevel < 0 || req.Target.ServiceLevel > 100 {
		return &calcerrors.ValidationError{Field: "target.service_level", Value: req.Target.ServiceLevel, Err: calcerrors.ErrServiceLevelRange}
	}
	if req.Target.ThresholdSeconds < 0 {
		return &calcerrors.ValidationError{Field: "target.threshold_seconds", Value: req.Target.ThresholdSeconds, Err: calcerrors.ErrNegativeThreshold}
	}
	if req.Target.MaxOccupancy < 0 || req.Target.MaxOccupancy > 100 {
		return &calcerrors.ValidationError{Field: "target.max_occupancy", Value: req.Target.MaxOccupancy, Err: calcerrors.ErrOccupancyRange}
	}
	if req.Target.Shrinkage < 0 || req.Target.Shrinkage > 100 {
		return &calcerrors.ValidationError{Field: "target.shrinkage", Value: req.Target.Shrinkage, Err: calcerrors.ErrShrinkageRange}
	}
	if req.Patience != nil && req.Patience.AveragePatienceSeconds < 0 {
		return &calcerrors.ValidationError{Field: "patience.average_patience_seconds", Value: req.Patience.AveragePatienceSeconds, Err: calcerrors.ErrNegativePatience}
	}
	return nil
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.WithError(err).Error("encode response")
		writeError(ctx, http.StatusInternalServerError, "encode response failed")
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(errorResponse{Status: status, Message: message})
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}
