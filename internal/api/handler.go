package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Spok95/metalstock/internal/domain/materials"
	"github.com/Spok95/metalstock/internal/domain/receiving"
	"github.com/Spok95/metalstock/internal/infra/metrics"
	"github.com/Spok95/metalstock/internal/report"
)

type Notifier interface {
	ReceiptSubmitted(ctx context.Context, h receiving.Header, res receiving.Result)
}

// Deps Notifier может быть nil — тогда уведомления не шлются.
type Deps struct {
	Materials MaterialStore
	Locations LocationStore
	Lots      LotStore
	Submitter *receiving.Submitter
	Notifier  Notifier
}

type Handler struct {
	log       *slog.Logger
	materials MaterialStore
	locations LocationStore
	lots      LotStore
	submitter *receiving.Submitter
	notifier  Notifier
	validate  *validator.Validate
	now       func() time.Time
}

func New(log *slog.Logger, d Deps) *Handler {
	return &Handler{
		log:       log,
		materials: d.Materials,
		locations: d.Locations,
		lots:      d.Lots,
		submitter: d.Submitter,
		notifier:  d.Notifier,
		validate:  validator.New(),
		now:       time.Now,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/calc/unit-weight", h.unitWeight)
	mux.HandleFunc("POST /api/calc/convert", h.convert)
	mux.HandleFunc("GET /api/parse/dimension", h.parseDimension)
	mux.HandleFunc("GET /api/detect", h.detect)
	mux.HandleFunc("GET /api/materials/{id}/unit-weight", h.materialUnitWeight)
	mux.HandleFunc("POST /api/receiving/reconcile", h.reconcile)
	mux.HandleFunc("POST /api/receiving/submit", h.submit)
	mux.HandleFunc("POST /api/receiving/export", h.export)

	mux.HandleFunc("GET /api/materials", h.listMaterials)
	mux.HandleFunc("POST /api/materials", h.createMaterial)
	mux.HandleFunc("POST /api/materials/{id}/active", h.setMaterialActive)
	mux.HandleFunc("GET /api/locations", h.listLocations)
	mux.HandleFunc("POST /api/locations", h.createLocation)
	mux.HandleFunc("GET /api/lots", h.listLots)
	mux.HandleFunc("POST /api/lots/{id}/write-off", h.writeOff)
}

func (h *Handler) unitWeight(w http.ResponseWriter, r *http.Request) {
	var req profileReq
	if !h.decode(w, r, &req) {
		return
	}
	p, err := req.profile()
	if err != nil {
		h.reject(w, err)
		return
	}
	kg, err := calcUnitWeight(p)
	if err != nil {
		h.reject(w, err)
		return
	}
	writeJSON(w, http.StatusOK, unitWeightResp{Shape: string(p.Dimension.Shape), UnitWeightKg: kg})
}

// calcUnitWeight nil — вес пока неизвестен. Форма не выбрана — тоже «неизвестно», а не ошибка.
func calcUnitWeight(p materials.Profile) (*float64, error) {
	if p.Dimension.Shape == "" {
		return nil, nil
	}
	kg, ok, err := materials.UnitWeightKg(p)
	metrics.UnitWeightCalcs.WithLabelValues(string(p.Dimension.Shape), metrics.CalcResult(ok, err)).Inc()
	if err != nil || !ok {
		return nil, err
	}
	kg = materials.Round3(kg)
	return &kg, nil
}

func (h *Handler) convert(w http.ResponseWriter, r *http.Request) {
	var req convertReq
	if !h.decode(w, r, &req) {
		return
	}
	var resp convertResp
	if req.Quantity != nil {
		if kg, ok := materials.WeightFromQuantity(*req.Quantity, req.UnitWeightKg); ok {
			resp.WeightKg = &kg
		}
	}
	if req.WeightKg != nil {
		var (
			q  int
			ok bool
		)
		if req.Rounding == "at_least_one" {
			q, ok = materials.QuantityFromWeightAtLeastOne(*req.WeightKg, req.UnitWeightKg)
		} else {
			q, ok = materials.QuantityFromWeightFloor(*req.WeightKg, req.UnitWeightKg)
		}
		if ok {
			resp.Quantity = &q
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) parseDimension(w http.ResponseWriter, r *http.Request) {
	d, err := materials.ParseDimension(r.URL.Query().Get("q"))
	if err != nil {
		h.reject(w, err)
		return
	}
	var resp dimensionResp
	if !d.IsEmpty() {
		shape := string(d.Shape)
		resp.Shape = &shape
		resp.DiameterMm = &d.Mm
		resp.Display = d.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) detect(w http.ResponseWriter, r *http.Request) {
	g := materials.DetectFromName(r.URL.Query().Get("name"))
	shape := string(g.Shape)
	writeJSON(w, http.StatusOK, dimensionResp{Shape: &shape, DiameterMm: g.DiameterMm})
}

func (h *Handler) materialUnitWeight(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var (
		lengthMm float64
		err      error
	)
	if s := r.URL.Query().Get("length_mm"); s != "" {
		lengthMm, err = strconv.ParseFloat(s, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, issue{Code: "invalid_request", Field: "length_mm", Message: "Некорректная длина"})
			return
		}
	}

	m, err := h.materials.GetByID(r.Context(), id)
	if err != nil {
		h.internal(w, "material lookup failed", err, "material_id", id)
		return
	}
	if m == nil {
		writeError(w, http.StatusNotFound, issue{Code: "not_found", Message: "Материал не найден"})
		return
	}

	p := m.Profile(lengthMm)
	kg, err := calcUnitWeight(p)
	if err != nil {
		h.reject(w, err)
		return
	}
	writeJSON(w, http.StatusOK, unitWeightResp{Shape: string(p.Dimension.Shape), UnitWeightKg: kg})
}

func (h *Handler) reconcile(w http.ResponseWriter, r *http.Request) {
	var req reconcileReq
	if !h.decode(w, r, &req) {
		return
	}

	b := buildBatch(req.ExpectedQuantity, req.Lots)
	var resp reconcileResp
	switch {
	case req.UnitWeightKg != nil && *req.UnitWeightKg > 0:
		resp.UnitWeightKg = req.UnitWeightKg
	case req.Profile != nil:
		p, err := req.Profile.profile()
		if err != nil {
			h.reject(w, err)
			return
		}
		kg, err := calcUnitWeight(p)
		if err != nil {
			h.reject(w, err)
			return
		}
		resp.UnitWeightKg = kg
	}
	if resp.UnitWeightKg != nil {
		b.SetUnitWeight(*resp.UnitWeightKg)
	}
	resp.Totals = b.Totals()

	if policy, ok := receiving.ParsePolicy(req.Policy); ok {
		resp.Issues = issues(b.Validate(policy))
	}
	if resp.Issues == nil {
		resp.Issues = []issue{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	if !h.decode(w, r, &req) {
		return
	}
	hdr, err := req.header(h.now())
	if err != nil {
		h.reject(w, err)
		return
	}
	b := buildBatch(req.ExpectedQuantity, req.Lots)
	if kg, ok, _ := materials.UnitWeightKg(hdr.Profile); ok {
		b.SetUnitWeight(kg)
	}

	res, err := h.submitter.Submit(r.Context(), hdr, b)
	var se *receiving.SubmitError
	if errors.As(err, &se) {
		h.log.Error("lot submission failed",
			"position", se.Position,
			"lot_number", se.LotNumber,
			"submitted", se.Submitted,
			"err", se.Err,
		)
		writeError(w, http.StatusBadGateway, issue{
			Code:      "submit_failed",
			Position:  se.Position,
			LotNumber: se.LotNumber,
			Message:   fmt.Sprintf("Лот #%d (%s) не проведён; проведено лотов: %d", se.Position, se.LotNumber, se.Submitted),
		})
		return
	}
	if err != nil {
		if isInputError(err) {
			h.reject(w, err)
			return
		}
		h.internal(w, "submit failed", err)
		return
	}

	h.log.Info("receipt submitted", "lots", len(res.Records), "total_qty", res.Totals.TotalQuantity, "total_kg", res.Totals.TotalWeightKg)
	if h.notifier != nil {
		h.notifier.ReceiptSubmitted(r.Context(), hdr, res)
	}
	writeJSON(w, http.StatusOK, submitResp{Submitted: len(res.Records), Records: res.Records, Totals: res.Totals})
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	if !h.decode(w, r, &req) {
		return
	}
	hdr, err := req.header(h.now())
	if err != nil {
		h.reject(w, err)
		return
	}
	b := buildBatch(req.ExpectedQuantity, req.Lots)
	if kg, ok, _ := materials.UnitWeightKg(hdr.Profile); ok {
		b.SetUnitWeight(kg)
	}

	data, err := report.ReceiptWorkbook(hdr, b.Lots(), b.Totals())
	if err != nil {
		h.internal(w, "export failed", err)
		return
	}
	name := fmt.Sprintf("receipt_%s.xlsx", hdr.ReceivedDate.Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = w.Write(data)
}

/*** HELPERS ***/

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, issue{Code: "invalid_body", Message: "Некорректный JSON"})
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		h.reject(w, err)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, issue{Code: "invalid_request", Field: "id", Message: "Некорректный id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) internal(w http.ResponseWriter, msg string, err error, args ...any) {
	h.log.Error(msg, append(args, "err", err)...)
	writeError(w, http.StatusInternalServerError, issue{Code: "internal", Message: "Внутренняя ошибка"})
}

// reject 400 со списком ошибок ввода
func (h *Handler) reject(w http.ResponseWriter, err error) {
	list := issues(err)
	for _, is := range list {
		metrics.ValidationFailures.WithLabelValues(is.Code).Inc()
	}
	h.log.Debug("input rejected", "err", err)
	writeError(w, http.StatusBadRequest, list...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, list ...issue) {
	writeJSON(w, status, map[string]any{"errors": list})
}
