package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/api/responses"
	"github.com/venuebooks/venuebooks-backend/api/validators"
	"github.com/venuebooks/venuebooks-backend/internal/ledger"
	"github.com/venuebooks/venuebooks-backend/internal/partners"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
	pkgerrors "github.com/venuebooks/venuebooks-backend/pkg/errors"
	"github.com/venuebooks/venuebooks-backend/pkg/logger"
	"github.com/venuebooks/venuebooks-backend/pkg/types"
)

// PartnerList returns the ownership roster.
func PartnerList(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "partners service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.List(r.Context()))
	}
}

// PartnerLedger projects one partner's personal financial history.
func PartnerLedger(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "partners service unavailable"))
			return
		}

		items, err := svc.Ledger(r.Context(), chi.URLParam(r, "partnerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// PartnerDebts summarizes one partner's outstanding debt items.
func PartnerDebts(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "partners service unavailable"))
			return
		}

		summary, err := svc.DebtSummaryFor(r.Context(), chi.URLParam(r, "partnerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// PartnerActivity summarizes one partner's deposits versus withdrawals.
func PartnerActivity(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		activity, err := svc.PartnerActivityFor(r.Context(), chi.URLParam(r, "partnerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, activity)
	}
}

// EntryFeed lists ledger entries annotated with the acting party.
func EntryFeed(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "partners service unavailable"))
			return
		}

		start, end, err := dateRangeFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 200, 1, 1000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		feed, err := svc.ActivityFeed(r.Context(), start, end)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		// Newest entries win when the range holds more than the cap.
		if len(feed) > limit {
			feed = feed[len(feed)-limit:]
		}
		responses.WriteSuccess(w, feed)
	}
}

// ExpenseOverview summarizes a month's purchases and fixed expense plans.
func ExpenseOverview(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "partners service unavailable"))
			return
		}

		month := strings.TrimSpace(r.URL.Query().Get("month"))
		if month == "" {
			month = types.MonthKey(time.Now().UTC())
		}

		overview, err := svc.ExpenseOverviewFor(r.Context(), month)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, overview)
	}
}

type purchaseCreateRequest struct {
	Description   string  `json:"description" validate:"required"`
	Amount        string  `json:"amount" validate:"required"`
	FundingSource string  `json:"funding_source" validate:"required"`
	BuyerID       *string `json:"buyer_id"`
	PaymentMethod string  `json:"payment_method"`
	Date          *string `json:"date"`
}

// PurchaseCreate records goods bought for the venue.
func PurchaseCreate(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "partners service unavailable"))
			return
		}

		var payload purchaseCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(payload.Amount))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid amount"))
			return
		}

		input := partners.RecordPurchaseInput{
			Description:   strings.TrimSpace(payload.Description),
			Amount:        amount,
			FundingSource: enums.FundingSource(strings.TrimSpace(payload.FundingSource)),
			BuyerID:       payload.BuyerID,
			PaymentMethod: enums.Channel(strings.TrimSpace(payload.PaymentMethod)),
		}
		if payload.Date != nil {
			date, err := time.Parse(time.RFC3339, *payload.Date)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date"))
				return
			}
			input.Date = date.UTC()
		}

		purchase, err := svc.RecordPurchase(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, purchase)
	}
}

// PurchaseList returns all recorded purchases, newest first.
func PurchaseList(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "partners service unavailable"))
			return
		}

		purchases, err := svc.ListPurchases(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, purchases)
	}
}

type withdrawalCreateRequest struct {
	Amount  string  `json:"amount" validate:"required"`
	Channel string  `json:"channel"`
	Note    *string `json:"note"`
	Date    *string `json:"date"`
}

// WithdrawalCreate records a partner drawing money from the till.
func WithdrawalCreate(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "partners service unavailable"))
			return
		}

		var payload withdrawalCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(payload.Amount))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid amount"))
			return
		}

		input := partners.RecordWithdrawalInput{
			PartnerID: chi.URLParam(r, "partnerId"),
			Amount:    amount,
			Channel:   enums.Channel(strings.TrimSpace(payload.Channel)),
			Note:      payload.Note,
		}
		if payload.Date != nil {
			date, err := time.Parse(time.RFC3339, *payload.Date)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date"))
				return
			}
			input.Date = date.UTC()
		}

		debt, err := svc.RecordWithdrawal(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, debt)
	}
}
