package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/opspay/payroll_backend/internal/core/domain"
	portsrepo "github.com/opspay/payroll_backend/internal/core/ports/repositories"
	"github.com/opspay/payroll_backend/internal/messaging/kafka"
)

// buildPaymentEffects translates one computed payment into the atomic effects
// its settlement must apply: the advance-recovery credit (when the worker owed
// money), the salary credit for the net amount, and the leave/debt decrements.
// The salary row is always present, even at a zero net, so the source-existence
// idempotency check has a row to find on retries.
func buildPaymentEffects(p domain.Payment, actor string, now time.Time) portsrepo.PaymentEffects {
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor,
		LastUpdatedAt: now,
		LastUpdatedBy: actor,
	}
	sourceType := domain.SourcePayment
	sourceID := p.PaymentID

	var entries []domain.AccountTransaction
	if p.Recovered.IsPositive() {
		entries = append(entries, domain.AccountTransaction{
			TransactionID: uuid.NewString(),
			WorkerID:      p.WorkerID,
			EntryType:     domain.Credit,
			Category:      domain.CategoryAdvanceRecovery,
			Amount:        p.Recovered,
			Description:   fmt.Sprintf("Advance recovered from payment %s", p.PaymentID),
			SourceType:    &sourceType,
			SourceID:      &sourceID,
			AuditFields:   audit,
		})
	}
	entries = append(entries, domain.AccountTransaction{
		TransactionID: uuid.NewString(),
		WorkerID:      p.WorkerID,
		EntryType:     domain.Credit,
		Category:      domain.CategorySalary,
		Amount:        p.NetAmount,
		Description:   fmt.Sprintf("Salary payout for run %s", p.RunID),
		SourceType:    &sourceType,
		SourceID:      &sourceID,
		AuditFields:   audit,
	})

	return portsrepo.PaymentEffects{
		SourceType:    sourceType,
		SourceID:      sourceID,
		WorkerID:      p.WorkerID,
		LedgerEntries: entries,
		LeaveDelta:    p.LeaveDays.Neg(),
		DebtDelta:     p.DebtCleared.Neg(),
		TaxGross:      p.TaxableAmount,
		TaxTDS:        p.TDS,
		TaxNet:        p.NetAmount,
	}
}

// buildDebtPaymentEffects translates one debt payment into its settlement
// effects: a single DEBT_PAYOUT credit for the net amount and the debt
// balance decrement for the full settled amount.
func buildDebtPaymentEffects(p domain.DebtPayment, actor string, now time.Time) portsrepo.PaymentEffects {
	sourceType := domain.SourceDebtPayment
	sourceID := p.DebtPaymentID

	entry := domain.AccountTransaction{
		TransactionID: uuid.NewString(),
		WorkerID:      p.WorkerID,
		EntryType:     domain.Credit,
		Category:      domain.CategoryDebtPayout,
		Amount:        p.NetAmount,
		Description:   fmt.Sprintf("Debt payout for run %s", p.DebtRunID),
		SourceType:    &sourceType,
		SourceID:      &sourceID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	return portsrepo.PaymentEffects{
		SourceType:    sourceType,
		SourceID:      sourceID,
		WorkerID:      p.WorkerID,
		LedgerEntries: []domain.AccountTransaction{entry},
		LeaveDelta:    decimal.Zero,
		DebtDelta:     p.Amount.Neg(),
		TaxGross:      p.Amount,
		TaxTDS:        p.TDS,
		TaxNet:        p.NetAmount,
	}
}

// settlementEvent builds the outbox event announcing one settled payroll payment.
func settlementEvent(p domain.Payment, settledAt time.Time) (kafka.OutboxEvent, error) {
	return kafka.NewSettlementEvent(kafka.EventPaymentSettled, "payroll_run", p.RunID, p.WorkerID, kafka.SettledPaymentPayload{
		PaymentID:     p.PaymentID,
		RunID:         p.RunID,
		WorkerID:      p.WorkerID,
		Gross:         p.Gross,
		TDS:           p.TDS,
		NetAmount:     p.NetAmount,
		BankName:      p.Snapshot.BankName,
		AccountNumber: p.Snapshot.AccountNumber,
		IFSC:          p.Snapshot.IFSC,
		SettledAt:     settledAt,
	})
}

// debtSettlementEvent builds the outbox event announcing one settled debt payment.
func debtSettlementEvent(p domain.DebtPayment, settledAt time.Time) (kafka.OutboxEvent, error) {
	return kafka.NewSettlementEvent(kafka.EventDebtPaymentSettled, "debt_run", p.DebtRunID, p.WorkerID, kafka.SettledPaymentPayload{
		PaymentID:     p.DebtPaymentID,
		RunID:         p.DebtRunID,
		WorkerID:      p.WorkerID,
		Gross:         p.Amount,
		TDS:           p.TDS,
		NetAmount:     p.NetAmount,
		BankName:      p.Snapshot.BankName,
		AccountNumber: p.Snapshot.AccountNumber,
		IFSC:          p.Snapshot.IFSC,
		SettledAt:     settledAt,
	})
}
