package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	kratoshttp "github.com/go-kratos/kratos/v2/transport/http"
	"go.uber.org/zap"

	"github.com/JonasZeihe/NoctuaLight/internal/hardware"
	"github.com/JonasZeihe/NoctuaLight/internal/report"
	"github.com/JonasZeihe/NoctuaLight/internal/store"
)

// Handler serves the report API. The store is nil when history is
// disabled; the history endpoints then answer 404.
type Handler struct {
	log        *zap.Logger
	collectors []hardware.Collector
	compiler   *report.Compiler
	store      *store.Store
	outputDir  string
	timeout    time.Duration
}

func NewHandler(log *zap.Logger, collectors []hardware.Collector, compiler *report.Compiler, db *store.Store, outputDir string, timeout time.Duration) *Handler {
	return &Handler{
		log:        log.Named("handler"),
		collectors: collectors,
		compiler:   compiler,
		store:      db,
		outputDir:  outputDir,
		timeout:    timeout,
	}
}

// Register mounts all routes on the router.
func (h *Handler) Register(r *kratoshttp.Router) {
	r.GET("/api/v1/report", h.generateReport)
	r.GET("/api/v1/domains", h.listDomains)
	r.GET("/api/v1/history", h.listHistory)
	r.GET("/api/v1/history/{id}", h.getHistory)
	r.POST("/api/v1/reports", h.acceptReport)
	r.GET("/healthz", h.healthz)
}

func (h *Handler) generateReport(ctx kratoshttp.Context) error {
	q := ctx.Query()

	sel, err := parseDomainsParam(q.Get("domains"))
	if err != nil {
		return ctx.String(http.StatusBadRequest, err.Error())
	}
	all, err := parseBoolParam(q, "all")
	if err != nil {
		return ctx.String(http.StatusBadRequest, err.Error())
	}
	detailed, err := parseBoolParam(q, "detailed")
	if err != nil {
		return ctx.String(http.StatusBadRequest, err.Error())
	}
	persist, err := parseBoolParam(q, "persist")
	if err != nil {
		return ctx.String(http.StatusBadRequest, err.Error())
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request().Context(), h.timeout)
	defer cancel()

	opts := report.Options{IncludeAll: all, Detailed: detailed}
	rep, err := h.compiler.Compile(reqCtx, h.collectors, sel, opts, q.Get("name"))
	if err != nil {
		h.log.Error("compile report", zap.Error(err))
		return ctx.String(http.StatusInternalServerError, "report generation failed")
	}

	if persist {
		path, err := report.Write(rep, h.outputDir)
		if err != nil {
			h.log.Error("persist report", zap.Error(err))
			return ctx.String(http.StatusInternalServerError, "report persistence failed")
		}
		h.recordHistory(reqCtx, rep, path, opts)
	}

	return ctx.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(rep.Body))
}

func (h *Handler) recordHistory(ctx context.Context, rep *report.Report, path string, opts report.Options) {
	if h.store == nil {
		return
	}
	hostname, _ := os.Hostname()
	rec := &store.ReportRecord{
		ID:           rep.ID,
		MachineLabel: rep.MachineLabel,
		Hostname:     hostname,
		GeneratedAt:  rep.GeneratedAt,
		Path:         path,
		Domains:      domainStrings(rep.Domains),
		IncludeAll:   opts.IncludeAll,
		Detailed:     opts.Detailed,
		SizeBytes:    int64(len(rep.Body)),
		Body:         rep.Body,
	}
	if err := h.store.SaveReport(ctx, rec); err != nil {
		h.log.Warn("record history", zap.Error(err))
	}
}

func (h *Handler) listDomains(ctx kratoshttp.Context) error {
	return ctx.JSON(http.StatusOK, domainStrings(hardware.Domains()))
}

// historySummary is the list-view projection of a stored report.
type historySummary struct {
	ID           string    `json:"id"`
	MachineLabel string    `json:"machine_label"`
	Hostname     string    `json:"hostname"`
	GeneratedAt  time.Time `json:"generated_at"`
	Path         string    `json:"path"`
	SizeBytes    int64     `json:"size_bytes"`
}

func (h *Handler) listHistory(ctx kratoshttp.Context) error {
	if h.store == nil {
		return ctx.String(http.StatusNotFound, "history is disabled")
	}

	q := ctx.Query()
	filter := store.Filter{Hostname: q.Get("hostname")}
	var err error
	if filter.Limit, err = parseIntParam(q, "limit"); err != nil {
		return ctx.String(http.StatusBadRequest, err.Error())
	}
	if filter.Offset, err = parseIntParam(q, "offset"); err != nil {
		return ctx.String(http.StatusBadRequest, err.Error())
	}

	records, err := h.store.ListReports(ctx.Request().Context(), filter)
	if err != nil {
		h.log.Error("list history", zap.Error(err))
		return ctx.String(http.StatusInternalServerError, "history query failed")
	}

	summaries := make([]historySummary, len(records))
	for i, rec := range records {
		summaries[i] = historySummary{
			ID:           rec.ID,
			MachineLabel: rec.MachineLabel,
			Hostname:     rec.Hostname,
			GeneratedAt:  rec.GeneratedAt,
			Path:         rec.Path,
			SizeBytes:    rec.SizeBytes,
		}
	}
	return ctx.JSON(http.StatusOK, summaries)
}

func (h *Handler) getHistory(ctx kratoshttp.Context) error {
	if h.store == nil {
		return ctx.String(http.StatusNotFound, "history is disabled")
	}

	id := ctx.Vars().Get("id")
	rec, err := h.store.GetReport(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ctx.String(http.StatusNotFound, fmt.Sprintf("report %q not found", id))
		}
		h.log.Error("get history", zap.Error(err))
		return ctx.String(http.StatusInternalServerError, "history query failed")
	}

	return ctx.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(rec.Body))
}

// pushedReport is the payload a remote NoctuaLight submits.
type pushedReport struct {
	ID           string    `json:"id"`
	MachineLabel string    `json:"machine_label"`
	Hostname     string    `json:"hostname"`
	GeneratedAt  time.Time `json:"generated_at"`
	Body         string    `json:"body"`
}

func (h *Handler) acceptReport(ctx kratoshttp.Context) error {
	if h.store == nil {
		return ctx.String(http.StatusNotFound, "history is disabled")
	}

	var payload pushedReport
	if err := ctx.Bind(&payload); err != nil {
		return ctx.String(http.StatusBadRequest, "invalid report payload")
	}
	if payload.ID == "" || payload.Body == "" {
		return ctx.String(http.StatusBadRequest, "id and body are required")
	}

	rec := &store.ReportRecord{
		ID:           payload.ID,
		MachineLabel: payload.MachineLabel,
		Hostname:     payload.Hostname,
		GeneratedAt:  payload.GeneratedAt,
		SizeBytes:    int64(len(payload.Body)),
		Body:         payload.Body,
	}
	if err := h.store.SaveReport(ctx.Request().Context(), rec); err != nil {
		h.log.Error("store pushed report", zap.Error(err))
		return ctx.String(http.StatusInternalServerError, "store report failed")
	}

	h.log.Info("report received",
		zap.String("id", payload.ID), zap.String("hostname", payload.Hostname))
	return ctx.JSON(http.StatusOK, map[string]string{"id": payload.ID})
}

func (h *Handler) healthz(ctx kratoshttp.Context) error {
	return ctx.String(http.StatusOK, "ok")
}

// parseDomainsParam turns a comma-separated domain list into a
// selection. Empty input means no selection.
func parseDomainsParam(raw string) (report.Selection, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	sel := report.Selection{}
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		d, err := hardware.ParseDomain(part)
		if err != nil {
			return nil, err
		}
		sel[d] = true
	}
	return sel, nil
}

func parseBoolParam(q interface{ Get(string) string }, name string) (bool, error) {
	raw := q.Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s parameter %q", name, raw)
	}
	return v, nil
}

func parseIntParam(q interface{ Get(string) string }, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s parameter %q", name, raw)
	}
	return v, nil
}

func domainStrings(domains []hardware.Domain) []string {
	out := make([]string, len(domains))
	for i, d := range domains {
		out[i] = string(d)
	}
	return out
}
