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
	"github.com/venuebooks/venuebooks-backend/internal/billing"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
	pkgerrors "github.com/venuebooks/venuebooks-backend/pkg/errors"
	"github.com/venuebooks/venuebooks-backend/pkg/logger"
	"github.com/venuebooks/venuebooks-backend/pkg/types"
)

type sessionOpenRequest struct {
	CustomerID    *string `json:"customer_id"`
	CustomerName  string  `json:"customer_name"`
	InitialDevice string  `json:"initial_device"`
}

// SessionOpen starts a billable session.
func SessionOpen(svc billing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "billing service unavailable"))
			return
		}

		var payload sessionOpenRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := billing.OpenSessionInput{
			CustomerName:  strings.TrimSpace(payload.CustomerName),
			InitialDevice: enums.DeviceType(strings.TrimSpace(payload.InitialDevice)),
		}
		if payload.CustomerID != nil {
			customerID, err := uuid.Parse(strings.TrimSpace(*payload.CustomerID))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid customer_id"))
				return
			}
			input.CustomerID = &customerID
		}

		record, err := svc.OpenSession(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

// SessionList returns all open sessions.
func SessionList(svc billing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "billing service unavailable"))
			return
		}

		records, err := svc.ListOpenSessions(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

// SessionDetail fetches one session by id.
func SessionDetail(svc billing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "billing service unavailable"))
			return
		}

		sessionID, err := sessionIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.GetSession(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

type sessionSwitchRequest struct {
	To string `json:"to" validate:"required"`
	At *string `json:"at"`
}

// SessionSwitchDevice records a device change mid-session.
func SessionSwitchDevice(svc billing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "billing service unavailable"))
			return
		}

		sessionID, err := sessionIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload sessionSwitchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		device, err := enums.ParseDeviceType(strings.TrimSpace(payload.To))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, err.Error()))
			return
		}

		at := time.Now().UTC()
		if payload.At != nil {
			parsed, err := time.Parse(time.RFC3339, *payload.At)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid at timestamp"))
				return
			}
			at = parsed.UTC()
		}

		record, err := svc.SwitchDevice(r.Context(), sessionID, device, at)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

type sessionOrderRequest struct {
	Name      string `json:"name" validate:"required"`
	Type      string `json:"type"`
	Quantity  int64  `json:"quantity"`
	UnitPrice string `json:"unit_price" validate:"required"`
	UnitCost  string `json:"unit_cost"`
}

// SessionAddOrder appends a product order to an open session.
func SessionAddOrder(svc billing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "billing service unavailable"))
			return
		}

		sessionID, err := sessionIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload sessionOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		unitPrice, err := decimal.NewFromString(strings.TrimSpace(payload.UnitPrice))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit_price"))
			return
		}
		unitCost := decimal.Zero
		if raw := strings.TrimSpace(payload.UnitCost); raw != "" {
			unitCost, err = decimal.NewFromString(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit_cost"))
				return
			}
		}

		item := types.OrderItem{
			Name:      strings.TrimSpace(payload.Name),
			Type:      enums.OrderType(strings.TrimSpace(payload.Type)),
			Quantity:  payload.Quantity,
			UnitPrice: unitPrice,
			UnitCost:  unitCost,
		}

		record, err := svc.AddOrder(r.Context(), sessionID, item)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

type sessionCloseRequest struct {
	PaidAmount     string  `json:"paid_amount" validate:"required"`
	PaymentChannel string  `json:"payment_channel" validate:"required"`
	AccountID      *string `json:"account_id"`
	DiscountType   *string `json:"discount_type"`
	DiscountValue  *string `json:"discount_value"`
	EndedAt        *string `json:"ended_at"`
	Notes          *string `json:"notes"`
}

// SessionClose ends a session: computes the invoice, settles the customer,
// and posts the income to the ledger.
func SessionClose(svc billing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "billing service unavailable"))
			return
		}

		sessionID, err := sessionIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload sessionCloseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		paid, err := decimal.NewFromString(strings.TrimSpace(payload.PaidAmount))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid paid_amount"))
			return
		}
		channel, err := enums.ParseChannel(strings.TrimSpace(payload.PaymentChannel))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, err.Error()))
			return
		}

		input := billing.CloseSessionInput{
			SessionID:      sessionID,
			PaidAmount:     paid,
			PaymentChannel: channel,
			Notes:          payload.Notes,
		}

		if payload.AccountID != nil {
			accountID, err := uuid.Parse(strings.TrimSpace(*payload.AccountID))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid account_id"))
				return
			}
			input.AccountID = &accountID
		}

		if payload.DiscountType != nil {
			discountType, err := enums.ParseDiscountType(strings.TrimSpace(*payload.DiscountType))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, err.Error()))
				return
			}
			value := decimal.Zero
			if payload.DiscountValue != nil {
				value, err = decimal.NewFromString(strings.TrimSpace(*payload.DiscountValue))
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid discount_value"))
					return
				}
			}
			input.Discount = &types.Discount{Type: discountType, Value: value}
		}

		if payload.EndedAt != nil {
			ended, err := time.Parse(time.RFC3339, *payload.EndedAt)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid ended_at"))
				return
			}
			input.EndedAt = ended.UTC()
		}

		result, err := svc.CloseSession(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func sessionIDFromPath(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "sessionId")
	sessionID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid session id")
	}
	return sessionID, nil
}
