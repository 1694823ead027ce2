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
	"github.com/venuebooks/venuebooks-backend/internal/loans"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
	pkgerrors "github.com/venuebooks/venuebooks-backend/pkg/errors"
	"github.com/venuebooks/venuebooks-backend/pkg/logger"
)

type loanCreateRequest struct {
	LenderType       string  `json:"lender_type" validate:"required"`
	LenderID         *string `json:"lender_id"`
	LenderName       string  `json:"lender_name" validate:"required"`
	Principal        string  `json:"principal" validate:"required"`
	Channel          string  `json:"channel"`
	ScheduleType     string  `json:"schedule_type" validate:"required"`
	InstallmentCount int     `json:"installment_count" validate:"required,min=1"`
	StartAt          *string `json:"start_at"`
	Notes            *string `json:"notes"`
}

func (r loanCreateRequest) toInput() (loans.CreateLoanInput, error) {
	lenderType, err := enums.ParseLenderType(strings.TrimSpace(r.LenderType))
	if err != nil {
		return loans.CreateLoanInput{}, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	scheduleType, err := enums.ParseScheduleType(strings.TrimSpace(r.ScheduleType))
	if err != nil {
		return loans.CreateLoanInput{}, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	principal, err := decimal.NewFromString(strings.TrimSpace(r.Principal))
	if err != nil {
		return loans.CreateLoanInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid principal")
	}

	input := loans.CreateLoanInput{
		LenderType:       lenderType,
		LenderID:         r.LenderID,
		LenderName:       strings.TrimSpace(r.LenderName),
		Principal:        principal,
		Channel:          enums.Channel(strings.TrimSpace(r.Channel)),
		ScheduleType:     scheduleType,
		InstallmentCount: r.InstallmentCount,
		Notes:            r.Notes,
	}
	if r.StartAt != nil {
		started, err := time.Parse(time.RFC3339, *r.StartAt)
		if err != nil {
			return loans.CreateLoanInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid start_at")
		}
		input.StartAt = started.UTC()
	}
	return input, nil
}

// LoanCreate registers a loan and posts its receipt to the ledger.
func LoanCreate(svc loans.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "loans service unavailable"))
			return
		}

		var payload loanCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		loan, err := svc.CreateLoan(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, loan)
	}
}

// LoanList returns all loans with repayment progress.
func LoanList(svc loans.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "loans service unavailable"))
			return
		}

		views, err := svc.ListLoans(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, views)
	}
}

// LoanDetail fetches one loan with repayment progress.
func LoanDetail(svc loans.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "loans service unavailable"))
			return
		}

		loanID, err := loanIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.GetLoan(r.Context(), loanID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// LoanPayInstallment repays one scheduled installment.
func LoanPayInstallment(svc loans.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "loans service unavailable"))
			return
		}

		loanID, err := loanIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		installmentID, err := uuid.Parse(chi.URLParam(r, "installmentId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid installment id"))
			return
		}

		view, err := svc.PayInstallment(r.Context(), loanID, installmentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func loanIDFromPath(r *http.Request) (uuid.UUID, error) {
	loanID, err := uuid.Parse(chi.URLParam(r, "loanId"))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid loan id")
	}
	return loanID, nil
}
