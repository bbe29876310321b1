package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Spok95/metalstock/internal/domain/catalog"
	"github.com/Spok95/metalstock/internal/domain/inventory"
	"github.com/Spok95/metalstock/internal/domain/materials"
)

type MaterialStore interface {
	GetByID(ctx context.Context, id int64) (*materials.Material, error)
	List(ctx context.Context, onlyActive bool) ([]materials.Material, error)
	SearchByName(ctx context.Context, q string, onlyActive bool) ([]materials.Material, error)
	Create(ctx context.Context, m materials.Material) (*materials.Material, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

type LocationStore interface {
	ListLocations(ctx context.Context) ([]catalog.Location, error)
	CreateLocation(ctx context.Context, code, name string, t catalog.LocationType) (*catalog.Location, error)
}

type LotStore interface {
	GetLot(ctx context.Context, id int64) (*inventory.StockLot, error)
	ListLots(ctx context.Context, onlyInStock bool) ([]inventory.StockLot, error)
	WriteOff(ctx context.Context, lotID int64, qty int, weightKg float64, note string) error
	WriteOffByWeight(ctx context.Context, lotID int64, weightKg, unitKg float64, note string) (int, error)
}

/*** MATERIALS ***/

type materialResp struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Name         string   `json:"name"`
	Grade        string   `json:"grade"`
	Shape        string   `json:"shape"`
	DiameterMm   float64  `json:"diameter_mm"`
	LengthMm     float64  `json:"length_mm"`
	Density      float64  `json:"density"`
	LocationID   *int64   `json:"location_id"`
	PricePerKg   float64  `json:"price_per_kg"`
	Active       bool     `json:"active"`
	UnitWeightKg *float64 `json:"unit_weight_kg"`
}

func toMaterialResp(m materials.Material) materialResp {
	out := materialResp{
		ID:         m.ID,
		Title:      m.Title(),
		Name:       m.Name,
		Grade:      m.Grade,
		Shape:      string(m.Shape),
		DiameterMm: m.DiameterMm,
		LengthMm:   m.LengthMm,
		Density:    m.Density,
		LocationID: m.LocationID,
		PricePerKg: m.PricePerKg,
		Active:     m.Active,
	}
	if kg, ok, err := materials.UnitWeightKg(m.Profile(0)); err == nil && ok {
		kg = materials.Round3(kg)
		out.UnitWeightKg = &kg
	}
	return out
}

type materialReq struct {
	Name       string  `json:"name" validate:"required,max=200"`
	Grade      string  `json:"grade" validate:"max=50"`
	Dimension  string  `json:"dimension" validate:"required"`
	LengthMm   float64 `json:"length_mm" validate:"gt=0"`
	Density    float64 `json:"density" validate:"gt=0"`
	LocationID *int64  `json:"location_id" validate:"omitempty,gt=0"`
	PricePerKg float64 `json:"price_per_kg" validate:"gte=0"`
}

// listMaterials ?q= — поиск по названию/марке, ?all=1 — включая выключенные
func (h *Handler) listMaterials(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	onlyActive := q.Get("all") != "1"

	var (
		list []materials.Material
		err  error
	)
	if s := q.Get("q"); s != "" {
		list, err = h.materials.SearchByName(r.Context(), s, onlyActive)
	} else {
		list, err = h.materials.List(r.Context(), onlyActive)
	}
	if err != nil {
		h.internal(w, "list materials failed", err)
		return
	}

	out := make([]materialResp, 0, len(list))
	for _, m := range list {
		out = append(out, toMaterialResp(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) createMaterial(w http.ResponseWriter, r *http.Request) {
	var req materialReq
	if !h.decode(w, r, &req) {
		return
	}
	d, err := materials.ParseDimension(req.Dimension)
	if err != nil {
		h.reject(w, err)
		return
	}
	m, err := h.materials.Create(r.Context(), materials.Material{
		Name:       req.Name,
		Grade:      req.Grade,
		Shape:      d.Shape,
		DiameterMm: d.Mm,
		LengthMm:   req.LengthMm,
		Density:    req.Density,
		LocationID: req.LocationID,
		PricePerKg: req.PricePerKg,
	})
	if err != nil {
		if isInputError(err) {
			h.reject(w, err)
			return
		}
		h.internal(w, "create material failed", err)
		return
	}
	h.log.Info("material created", "material_id", m.ID, "title", m.Title())
	writeJSON(w, http.StatusCreated, toMaterialResp(*m))
}

func (h *Handler) setMaterialActive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Active *bool `json:"active" validate:"required"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.materials.SetActive(r.Context(), id, *req.Active); err != nil {
		h.internal(w, "set material active failed", err, "material_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/*** LOCATIONS ***/

type locationResp struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Active bool   `json:"active"`
}

func (h *Handler) listLocations(w http.ResponseWriter, r *http.Request) {
	list, err := h.locations.ListLocations(r.Context())
	if err != nil {
		h.internal(w, "list locations failed", err)
		return
	}
	out := make([]locationResp, 0, len(list))
	for _, l := range list {
		out = append(out, locationResp{ID: l.ID, Code: l.Code, Name: l.Name, Type: string(l.Type), Active: l.Active})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) createLocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code" validate:"required,max=32"`
		Name string `json:"name" validate:"required,max=200"`
		Type string `json:"type" validate:"required,oneof=rack cutting outside"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	l, err := h.locations.CreateLocation(r.Context(), req.Code, req.Name, catalog.LocationType(req.Type))
	if err != nil {
		h.internal(w, "create location failed", err, "code", req.Code)
		return
	}
	writeJSON(w, http.StatusCreated, locationResp{ID: l.ID, Code: l.Code, Name: l.Name, Type: string(l.Type), Active: l.Active})
}

/*** LOTS ***/

type stockLotResp struct {
	ID             int64     `json:"id"`
	LotNumber      string    `json:"lot_number"`
	Shape          string    `json:"shape"`
	DiameterMm     float64   `json:"diameter_mm"`
	LengthMm       int       `json:"length_mm"`
	Density        float64   `json:"density"`
	QtyOnHand      int       `json:"qty_on_hand"`
	WeightOnHandKg float64   `json:"weight_on_hand_kg"`
	LocationID     *int64    `json:"location_id"`
	PurchaseMonth  string    `json:"purchase_month"`
	ReceivedDate   time.Time `json:"received_date"`
}

// listLots ?all=1 — включая полностью списанные
func (h *Handler) listLots(w http.ResponseWriter, r *http.Request) {
	list, err := h.lots.ListLots(r.Context(), r.URL.Query().Get("all") != "1")
	if err != nil {
		h.internal(w, "list lots failed", err)
		return
	}
	out := make([]stockLotResp, 0, len(list))
	for _, l := range list {
		out = append(out, stockLotResp{
			ID:             l.ID,
			LotNumber:      l.LotNumber,
			Shape:          l.Shape,
			DiameterMm:     l.DiameterMm,
			LengthMm:       l.LengthMm,
			Density:        l.Density,
			QtyOnHand:      l.QtyOnHand,
			WeightOnHandKg: l.WeightOnHandKg,
			LocationID:     l.LocationID,
			PurchaseMonth:  l.PurchaseMonth,
			ReceivedDate:   l.ReceivedDate,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type writeOffReq struct {
	Quantity *int     `json:"quantity" validate:"omitempty,gt=0"`
	WeightKg *float64 `json:"weight_kg" validate:"omitempty,gt=0"`
	Note     string   `json:"note" validate:"max=500"`
}

type writeOffResp struct {
	LotID    int64   `json:"lot_id"`
	Quantity int     `json:"quantity"`
	WeightKg float64 `json:"weight_kg"`
}

// writeOff списание с лота. Только вес — штуки считаются по весу штуки лота с округлением вниз.
func (h *Handler) writeOff(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req writeOffReq
	if !h.decode(w, r, &req) {
		return
	}
	if req.Quantity == nil && req.WeightKg == nil {
		writeError(w, http.StatusBadRequest, issue{Code: "invalid_request", Message: "Укажите количество или вес"})
		return
	}

	lot, err := h.lots.GetLot(r.Context(), id)
	if err != nil {
		h.internal(w, "lot lookup failed", err, "lot_id", id)
		return
	}
	if lot == nil {
		writeError(w, http.StatusNotFound, issue{Code: "not_found", Message: "Лот не найден"})
		return
	}

	resp := writeOffResp{LotID: id}
	if req.Quantity == nil {
		unitKg, known := lot.UnitWeightKg()
		if !known {
			writeError(w, http.StatusUnprocessableEntity, issue{Code: "unit_weight_unknown", Message: "Вес штуки для лота неизвестен"})
			return
		}
		qty, err := h.lots.WriteOffByWeight(r.Context(), id, *req.WeightKg, unitKg, req.Note)
		if err != nil {
			h.internal(w, "write-off failed", err, "lot_id", id)
			return
		}
		resp.Quantity, resp.WeightKg = qty, *req.WeightKg
	} else {
		var kg float64
		if req.WeightKg != nil {
			kg = *req.WeightKg
		} else if unitKg, known := lot.UnitWeightKg(); known {
			kg, _ = materials.WeightFromQuantity(*req.Quantity, unitKg)
		}
		if err := h.lots.WriteOff(r.Context(), id, *req.Quantity, kg, req.Note); err != nil {
			h.internal(w, "write-off failed", err, "lot_id", id)
			return
		}
		resp.Quantity, resp.WeightKg = *req.Quantity, kg
	}

	h.log.Info("lot written off", "lot_id", id, "lot_number", lot.LotNumber, "qty", resp.Quantity, "kg", resp.WeightKg)
	writeJSON(w, http.StatusOK, resp)
}
