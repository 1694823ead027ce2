package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/api/responses"
	"github.com/venuebooks/venuebooks-backend/api/validators"
	"github.com/venuebooks/venuebooks-backend/internal/ledger"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
	pkgerrors "github.com/venuebooks/venuebooks-backend/pkg/errors"
	"github.com/venuebooks/venuebooks-backend/pkg/logger"
	"github.com/venuebooks/venuebooks-backend/pkg/types"
)

type entryRequest struct {
	Type            string  `json:"type" validate:"required"`
	Amount          string  `json:"amount" validate:"required"`
	Direction       string  `json:"direction" validate:"required"`
	Channel         string  `json:"channel" validate:"required"`
	Description     string  `json:"description"`
	AccountID       *string `json:"account_id"`
	TransferStatus  *string `json:"transfer_status"`
	PartnerID       *string `json:"partner_id"`
	PerformedByName *string `json:"performed_by_name"`
	Timestamp       *string `json:"timestamp"`
}

func (r entryRequest) toInput() (ledger.EntryInput, error) {
	txType, err := enums.ParseTransactionType(strings.TrimSpace(r.Type))
	if err != nil {
		return ledger.EntryInput{}, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	direction, err := enums.ParseDirection(strings.TrimSpace(r.Direction))
	if err != nil {
		return ledger.EntryInput{}, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	channel, err := enums.ParseChannel(strings.TrimSpace(r.Channel))
	if err != nil {
		return ledger.EntryInput{}, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(r.Amount))
	if err != nil {
		return ledger.EntryInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid amount")
	}

	input := ledger.EntryInput{
		Type:            txType,
		Amount:          amount,
		Direction:       direction,
		Channel:         channel,
		Description:     strings.TrimSpace(r.Description),
		PartnerID:       r.PartnerID,
		PerformedByName: r.PerformedByName,
	}

	if r.AccountID != nil {
		accountID, err := uuid.Parse(strings.TrimSpace(*r.AccountID))
		if err != nil {
			return ledger.EntryInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid account_id")
		}
		input.AccountID = &accountID
	}
	if r.TransferStatus != nil {
		status, err := enums.ParseTransferStatus(strings.TrimSpace(*r.TransferStatus))
		if err != nil {
			return ledger.EntryInput{}, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		input.TransferStatus = &status
	}
	if r.Timestamp != nil {
		ts, err := time.Parse(time.RFC3339, *r.Timestamp)
		if err != nil {
			return ledger.EntryInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid timestamp")
		}
		input.Timestamp = ts.UTC()
	}
	return input, nil
}

type entryBatchRequest struct {
	Entries []entryRequest `json:"entries" validate:"required,min=1,dive"`
}

// AppendEntry records one manual ledger transaction.
func AppendEntry(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		var payload entryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.Append(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

// AppendEntryBatch records several transactions atomically.
func AppendEntryBatch(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		var payload entryBatchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		inputs := make([]ledger.EntryInput, 0, len(payload.Entries))
		for _, req := range payload.Entries {
			input, err := req.toInput()
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			inputs = append(inputs, input)
		}

		entries, err := svc.AppendBatch(r.Context(), inputs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entries)
	}
}

// ListEntries returns ledger entries inside an inclusive date-key range.
func ListEntries(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		start, end, err := dateRangeFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := svc.ListEntries(r.Context(), start, end)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

// EntryStats aggregates a period's flows and profit estimate.
func EntryStats(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		start, end, err := dateRangeFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.Stats(r.Context(), start, end)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// EntryTotals aggregates today's or the current month's flows.
func EntryTotals(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		window := ledger.TotalsWindow(strings.TrimSpace(r.URL.Query().Get("window")))
		if window == "" {
			window = ledger.TotalsWindowToday
		}

		totals, err := svc.TotalsFor(r.Context(), window, types.DateKey(time.Now().UTC()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, totals)
	}
}

// CostAnalysis breaks one month into per-day cost and revenue rows.
func CostAnalysis(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		month := strings.TrimSpace(r.URL.Query().Get("month"))
		if month == "" {
			month = types.MonthKey(time.Now().UTC())
		}

		days, err := svc.CostAnalysisMonth(r.Context(), month)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, days)
	}
}

// CyclePreview summarizes activity since the given cycle start timestamp.
func CyclePreview(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		raw := strings.TrimSpace(r.URL.Query().Get("since"))
		since := time.Now().UTC().Truncate(24 * time.Hour)
		if raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid since timestamp"))
				return
			}
			since = parsed.UTC()
		}

		preview, err := svc.PreviewCycle(r.Context(), since)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, preview)
	}
}

// CurrentLock reports the newest period lock, if any.
func CurrentLock(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		lock, err := svc.CurrentLock(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lock)
	}
}

func dateRangeFromQuery(r *http.Request) (string, string, error) {
	start := strings.TrimSpace(r.URL.Query().Get("start"))
	end := strings.TrimSpace(r.URL.Query().Get("end"))
	if start == "" || end == "" {
		now := time.Now().UTC()
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return types.DateKey(first), types.DateKey(now), nil
	}
	if _, err := types.ParseDateKey(start); err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid start date")
	}
	if _, err := types.ParseDateKey(end); err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid end date")
	}
	return start, end, nil
}
