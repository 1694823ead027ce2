package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/api/responses"
	"github.com/venuebooks/venuebooks-backend/api/validators"
	"github.com/venuebooks/venuebooks-backend/internal/plans"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
	pkgerrors "github.com/venuebooks/venuebooks-backend/pkg/errors"
	"github.com/venuebooks/venuebooks-backend/pkg/logger"
)

type planCreateRequest struct {
	Name          string  `json:"name" validate:"required"`
	Type          string  `json:"type" validate:"required"`
	Category      string  `json:"category"`
	Amount        string  `json:"amount" validate:"required"`
	Channel       string  `json:"channel"`
	BankAccountID *string `json:"bank_account_id"`
	StartAt       *string `json:"start_at"`
	Notes         *string `json:"notes"`
}

// PlanCreate registers a recurring accrual plan.
func PlanCreate(svc plans.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "plans service unavailable"))
			return
		}

		var payload planCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		planType, err := enums.ParsePlanType(strings.TrimSpace(payload.Type))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, err.Error()))
			return
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(payload.Amount))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid amount"))
			return
		}

		input := plans.CreatePlanInput{
			Name:     strings.TrimSpace(payload.Name),
			Type:     planType,
			Category: enums.PlanCategory(strings.TrimSpace(payload.Category)),
			Amount:   amount,
			Channel:  enums.Channel(strings.TrimSpace(payload.Channel)),
			Notes:    payload.Notes,
		}
		if payload.BankAccountID != nil {
			accountID, err := uuid.Parse(*payload.BankAccountID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid bank_account_id"))
				return
			}
			input.BankAccountID = &accountID
		}
		if payload.StartAt != nil {
			started, err := time.Parse(time.RFC3339, *payload.StartAt)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid start_at"))
				return
			}
			input.StartAt = started.UTC()
		}

		plan, err := svc.CreatePlan(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, plan)
	}
}

// PlanList returns every recurring plan.
func PlanList(svc plans.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "plans service unavailable"))
			return
		}

		list, err := svc.ListPlans(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

type planActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// PlanSetActive pauses or resumes a recurring plan.
func PlanSetActive(svc plans.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "plans service unavailable"))
			return
		}

		planID, err := uuid.Parse(chi.URLParam(r, "planId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid plan id"))
			return
		}

		var payload planActiveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		plan, err := svc.SetActive(r.Context(), planID, *payload.Active)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, plan)
	}
}
