package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/opspay/payroll_backend/internal/core/domain"
	portsrepo "github.com/opspay/payroll_backend/internal/core/ports/repositories"
)

// applyEffectInTx posts one payment's ledger rows and balance deltas inside
// an enclosing transaction, unless the source already has effective rows.
// Returns whether anything was posted. This is the idempotency gate that
// makes posting-at-creation and posting-at-settlement coexist: whichever
// path runs second finds the rows and does nothing.
func applyEffectInTx(ctx context.Context, tx pgx.Tx, ledger portsrepo.LedgerRepositoryFacade, eff portsrepo.PaymentEffects, actor string) (bool, error) {
	posted, err := ledger.SourcePosted(ctx, tx, eff.SourceType, eff.SourceID)
	if err != nil {
		return false, err
	}
	if posted {
		return false, nil
	}

	if _, err := ledger.PostInTx(ctx, tx, eff.WorkerID, eff.LedgerEntries); err != nil {
		return false, err
	}

	if !eff.LeaveDelta.IsZero() {
		sourceID := eff.SourceID
		if _, err := ledger.ApplyLeaveDeltaInTx(ctx, tx, eff.WorkerID, eff.LeaveDelta, &sourceID, "Leave cashout", actor); err != nil {
			return false, err
		}
	}
	if !eff.DebtDelta.IsZero() {
		sourceType := eff.SourceType
		sourceID := eff.SourceID
		if _, err := ledger.ApplyDebtDeltaInTx(ctx, tx, eff.WorkerID, eff.DebtDelta, &sourceType, &sourceID, "Debt settled", actor); err != nil {
			return false, err
		}
	}
	return true, nil
}

// reverseEffectInTx appends reversal rows for one payment's effective ledger
// rows and restores its balance deltas. Returns whether anything was reversed.
func reverseEffectInTx(ctx context.Context, tx pgx.Tx, ledger portsrepo.LedgerRepositoryFacade, eff portsrepo.PaymentEffects, actor string, now time.Time) (bool, error) {
	rows, err := ledger.FindPostedBySource(ctx, tx, eff.SourceType, eff.SourceID)
	if err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, nil
	}

	reversals := make([]domain.AccountTransaction, 0, len(rows))
	// Reverse in LIFO order so running balances retrace their steps.
	for i := len(rows) - 1; i >= 0; i-- {
		orig := rows[i]
		opposite := domain.Debit
		if orig.EntryType == domain.Debit {
			opposite = domain.Credit
		}
		origID := orig.TransactionID
		reversals = append(reversals, domain.AccountTransaction{
			EntryType:             opposite,
			Category:              orig.Category,
			Amount:                orig.Amount,
			Description:           "Reversal of " + orig.Description,
			SourceType:            orig.SourceType,
			SourceID:              orig.SourceID,
			ReversesTransactionID: &origID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor,
				LastUpdatedAt: now,
				LastUpdatedBy: actor,
			},
		})
	}

	if _, err := ledger.PostInTx(ctx, tx, eff.WorkerID, reversals); err != nil {
		return false, err
	}

	if !eff.LeaveDelta.IsZero() {
		sourceID := eff.SourceID
		if _, err := ledger.ApplyLeaveDeltaInTx(ctx, tx, eff.WorkerID, eff.LeaveDelta.Neg(), &sourceID, "Leave cashout reverted", actor); err != nil {
			return false, err
		}
	}
	if !eff.DebtDelta.IsZero() {
		sourceType := eff.SourceType
		sourceID := eff.SourceID
		if _, err := ledger.ApplyDebtDeltaInTx(ctx, tx, eff.WorkerID, eff.DebtDelta.Neg(), &sourceType, &sourceID, "Debt settlement reverted", actor); err != nil {
			return false, err
		}
	}
	return true, nil
}
