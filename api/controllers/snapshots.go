package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/api/responses"
	"github.com/venuebooks/venuebooks-backend/api/validators"
	"github.com/venuebooks/venuebooks-backend/internal/snapshot"
	pkgerrors "github.com/venuebooks/venuebooks-backend/pkg/errors"
	"github.com/venuebooks/venuebooks-backend/pkg/logger"
)

type snapshotCloseRequest struct {
	PeriodStart     string  `json:"period_start" validate:"required"`
	PeriodEnd       string  `json:"period_end" validate:"required"`
	ElectricityCost string  `json:"electricity_cost"`
	Notes           *string `json:"notes"`
}

func (r snapshotCloseRequest) toInput() (snapshot.CloseInput, error) {
	electricity := decimal.Zero
	if raw := strings.TrimSpace(r.ElectricityCost); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return snapshot.CloseInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid electricity_cost")
		}
		electricity = parsed
	}
	return snapshot.CloseInput{
		PeriodStart:     strings.TrimSpace(r.PeriodStart),
		PeriodEnd:       strings.TrimSpace(r.PeriodEnd),
		ElectricityCost: electricity,
		Notes:           r.Notes,
	}, nil
}

// SnapshotClose closes a settlement period: freezes it behind a lock and
// persists the distribution snapshot.
func SnapshotClose(svc snapshot.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "snapshot service unavailable"))
			return
		}

		var payload snapshotCloseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.Close(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, snap)
	}
}

// SnapshotPreview computes a period's distribution without persisting it.
func SnapshotPreview(svc snapshot.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "snapshot service unavailable"))
			return
		}

		var payload snapshotCloseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.Preview(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

// SnapshotList returns closed periods, newest first.
func SnapshotList(svc snapshot.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "snapshot service unavailable"))
			return
		}

		snaps, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snaps)
	}
}

// SnapshotDetail fetches one closed period by id.
func SnapshotDetail(svc snapshot.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "snapshot service unavailable"))
			return
		}

		snapshotID, err := uuid.Parse(chi.URLParam(r, "snapshotId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid snapshot id"))
			return
		}

		snap, err := svc.Get(r.Context(), snapshotID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}
