package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/quangxuan98765/data-processing-api/internal/application/records"
	"github.com/quangxuan98765/data-processing-api/internal/infrastructure/http/middleware"
)

type speedTestBody struct {
	MeasuredAt   *time.Time `json:"measured_at"`
	Location     string     `json:"location" validate:"required,max=200"`
	DownloadMbps float64    `json:"download_mbps" validate:"min=0"`
	UploadMbps   float64    `json:"upload_mbps" validate:"min=0"`
	PingMs       float64    `json:"ping_ms" validate:"min=0"`
}

func (b speedTestBody) toInput() records.SpeedTestInput {
	in := records.SpeedTestInput{
		Location:     b.Location,
		DownloadMbps: b.DownloadMbps,
		UploadMbps:   b.UploadMbps,
		PingMs:       b.PingMs,
	}
	if b.MeasuredAt != nil {
		in.MeasuredAt = *b.MeasuredAt
	}
	return in
}

type SpeedTestHandler struct {
	svc      *records.SpeedTestService
	validate *validator.Validate
	log      zerolog.Logger
}

func NewSpeedTestHandler(svc *records.SpeedTestService, log zerolog.Logger) *SpeedTestHandler {
	return &SpeedTestHandler{svc: svc, validate: validator.New(), log: log}
}

// List returns measurements, optionally bounded by ?start= and ?end=
// (RFC 3339 timestamps).
func (h *SpeedTestHandler) List(w http.ResponseWriter, r *http.Request) {
	var start, end *time.Time
	if v := r.URL.Query().Get("start"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "", "invalid start timestamp")
			return
		}
		start = &t
	}
	if v := r.URL.Query().Get("end"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "", "invalid end timestamp")
			return
		}
		end = &t
	}
	sts, err := h.svc.List(r.Context(), start, end)
	if err != nil {
		h.log.Error().Err(err).Msg("list speed tests failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, sts)
}

func (h *SpeedTestHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	st, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *SpeedTestHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	var body speedTestBody
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
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *SpeedTestHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body speedTestBody
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
	writeJSON(w, http.StatusOK, map[string]string{"message": "updated"})
}

func (h *SpeedTestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), user, id); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
