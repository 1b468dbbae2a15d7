package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/quangxuan98765/data-processing-api/internal/application/ports"
	"github.com/quangxuan98765/data-processing-api/internal/application/records"
	"github.com/quangxuan98765/data-processing-api/internal/infrastructure/http/middleware"
)

// recordBody is the JSON shape shared by the create and update endpoints.
type recordBody struct {
	FiscalMonth int     `json:"fiscal_month" validate:"required,min=1,max=12"`
	FiscalYear  int     `json:"fiscal_year" validate:"required,min=2000"`
	SourceID    int     `json:"source_id" validate:"required,min=1"`
	Amount      float64 `json:"amount" validate:"min=0"`
	Description string  `json:"description" validate:"max=500"`
	Note        string  `json:"note" validate:"max=500"`
}

func (b recordBody) toInput() records.RecordInput {
	return records.RecordInput{
		FiscalMonth: b.FiscalMonth,
		FiscalYear:  b.FiscalYear,
		SourceID:    b.SourceID,
		Amount:      b.Amount,
		Description: b.Description,
		Note:        b.Note,
	}
}

// RecordsHandler serves one record kind; the router mounts one instance for
// revenues and one for expenses.
type RecordsHandler struct {
	svc      *records.FinancialService
	enqueuer ports.TaskEnqueuer
	validate *validator.Validate
	log      zerolog.Logger
}

func NewRecordsHandler(svc *records.FinancialService, enqueuer ports.TaskEnqueuer, log zerolog.Logger) *RecordsHandler {
	return &RecordsHandler{svc: svc, enqueuer: enqueuer, validate: validator.New(), log: log}
}

func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Str("kind", string(h.svc.Kind())).Msg("list records failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *RecordsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rec, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *RecordsHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	var body recordBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	id, err := h.svc.Create(r.Context(), user, body.toInput())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	AuditLog(h.log, r, string(h.svc.Kind())+".create", user.ID, user.Username, true, "")
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *RecordsHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body recordBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	if err := h.svc.Update(r.Context(), user, id, body.toInput()); err != nil {
		writeDomainErr(w, err)
		return
	}
	AuditLog(h.log, r, string(h.svc.Kind())+".update", user.ID, user.Username, true, "")
	writeJSON(w, http.StatusOK, map[string]string{"message": "updated"})
}

func (h *RecordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), user, id); err != nil {
		writeDomainErr(w, err)
		return
	}
	AuditEmit(h.log, r, h.enqueuer, string(h.svc.Kind())+".delete", user.ID, user.Username, true, "")
	w.WriteHeader(http.StatusNoContent)
}

// Import accepts a whole batch of spreadsheet-shaped rows. Any bad row fails
// the batch; the response lists every row error with its 1-based row number.
func (h *RecordsHandler) Import(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	var body struct {
		Rows []records.ImportRow `json:"rows"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	result, err := h.svc.Import(r.Context(), user, body.Rows)
	if err != nil {
		h.log.Error().Err(err).Str("kind", string(h.svc.Kind())).Msg("bulk import failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	kind := string(h.svc.Kind())
	middleware.RecordImportRows(kind, result.InsertedRows, result.TotalRows-result.InsertedRows)
	AuditEmit(h.log, r, h.enqueuer, kind+".import", user.ID, user.Username, result.Success, "")
	if !result.Success {
		writeJSON(w, http.StatusBadRequest, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Sources lists the source catalog for this record kind.
func (h *RecordsHandler) Sources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.svc.Sources(r.Context())
	if err != nil {
		h.log.Error().Err(err).Str("kind", string(h.svc.Kind())).Msg("list sources failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, sources)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeErr(w, http.StatusBadRequest, "", "invalid id")
		return 0, false
	}
	return id, true
}
