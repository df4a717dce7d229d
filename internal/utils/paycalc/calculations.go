package paycalc

import (
	"fmt"

	"github.com/opspay/payroll_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Tax computes withholding (TDS) on amount at ratePct percent, rounded UP to
// the nearest whole currency unit. Ceiling is a deliberate policy: the
// withheld amount is never understated.
func Tax(amount, ratePct decimal.Decimal) decimal.Decimal {
	if amount.LessThanOrEqual(decimal.Zero) || ratePct.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return amount.Mul(ratePct).Div(decimal.NewFromInt(100)).Ceil()
}

// LeaveCashout converts unused leave days into cash at the worker's daily
// rate for the cycle, rounded to 2 decimal places.
func LeaveCashout(cyclePay, days decimal.Decimal, cycleDays int) decimal.Decimal {
	if cycleDays <= 0 || days.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return cyclePay.Div(decimal.NewFromInt(int64(cycleDays))).Mul(days).Round(2)
}

// Breakdown is the full result of computing one payment.
type Breakdown struct {
	Gross             decimal.Decimal
	LeaveDays         decimal.Decimal
	LeaveCashout      decimal.Decimal
	DebtCleared       decimal.Decimal
	TaxableAmount     decimal.Decimal
	TDS               decimal.Decimal
	NetBeforeRecovery decimal.Decimal
	Recovered         decimal.Decimal
	NetAmount         decimal.Decimal
	Snapshot          domain.BankSnapshot
}

// ComputePayment derives the payment breakdown for a worker:
//
//	taxable   = gross + leave cashout + debt amount
//	tds       = Tax(taxable, worker rate)
//	netBefore = taxable - tds
//	recovery  = min(-balance, netBefore) when the account balance is negative
//	net       = netBefore - recovery
//
// Inputs are not clamped: callers must have validated leaveDays and
// debtAmount against the worker's current balances. The only guarantee made
// here is that recovery never drives net below zero. The returned snapshot
// freezes the worker's bank and tax details as of now.
func ComputePayment(worker domain.Worker, leaveDays, debtAmount decimal.Decimal, cycleDays int) (Breakdown, error) {
	if leaveDays.IsNegative() {
		return Breakdown{}, fmt.Errorf("leave days must not be negative, got %s", leaveDays)
	}
	if debtAmount.IsNegative() {
		return Breakdown{}, fmt.Errorf("debt amount must not be negative, got %s", debtAmount)
	}
	if cycleDays <= 0 {
		return Breakdown{}, fmt.Errorf("cycle length must be positive, got %d", cycleDays)
	}

	cashout := LeaveCashout(worker.CycleGrossPay, leaveDays, cycleDays)
	taxable := worker.CycleGrossPay.Add(cashout).Add(debtAmount)
	tds := Tax(taxable, worker.TDSRatePct)
	netBefore := taxable.Sub(tds)

	recovery := decimal.Zero
	if worker.AccountBalance.IsNegative() {
		owed := worker.AccountBalance.Neg()
		recovery = decimal.Min(owed, netBefore)
	}

	return Breakdown{
		Gross:             worker.CycleGrossPay,
		LeaveDays:         leaveDays,
		LeaveCashout:      cashout,
		DebtCleared:       debtAmount,
		TaxableAmount:     taxable,
		TDS:               tds,
		NetBeforeRecovery: netBefore,
		Recovered:         recovery,
		NetAmount:         netBefore.Sub(recovery),
		Snapshot: domain.BankSnapshot{
			BankName:      worker.Bank.BankName,
			AccountNumber: worker.Bank.AccountNumber,
			IFSC:          worker.Bank.IFSC,
			PAN:           worker.Bank.PAN,
			TDSRatePct:    worker.TDSRatePct,
		},
	}, nil
}

// ComputeDebtPayment derives the breakdown for a standalone debt payout:
// the full amount is taxable at the worker's rate; no recovery applies.
func ComputeDebtPayment(worker domain.Worker, amount decimal.Decimal) (Breakdown, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Breakdown{}, fmt.Errorf("debt payout amount must be positive, got %s", amount)
	}
	tds := Tax(amount, worker.TDSRatePct)
	return Breakdown{
		Gross:             amount,
		DebtCleared:       amount,
		TaxableAmount:     amount,
		TDS:               tds,
		NetBeforeRecovery: amount.Sub(tds),
		NetAmount:         amount.Sub(tds),
		Snapshot: domain.BankSnapshot{
			BankName:      worker.Bank.BankName,
			AccountNumber: worker.Bank.AccountNumber,
			IFSC:          worker.Bank.IFSC,
			PAN:           worker.Bank.PAN,
			TDSRatePct:    worker.TDSRatePct,
		},
	}, nil
}
