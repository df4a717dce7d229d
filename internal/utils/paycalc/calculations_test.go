package paycalc_test

import (
	"testing"
	"time"

	"github.com/opspay/payroll_backend/internal/core/domain"
	"github.com/opspay/payroll_backend/internal/utils/paycalc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestTax_CeilingPolicy(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		rate   string
		want   string
	}{
		{"exact multiple", "1000", "10", "100"},
		{"rounds up not nearest", "1001", "10", "101"},
		{"fractional amount rounds up", "42857.14", "10", "4286"},
		{"tiny fraction still rounds up", "1000.01", "10", "101"},
		{"zero rate", "1000", "0", "0"},
		{"zero amount", "0", "10", "0"},
		{"fractional rate", "1000", "7.5", "75"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := paycalc.Tax(d(tt.amount), d(tt.rate))
			assert.True(t, d(tt.want).Equal(got), "Tax(%s, %s) = %s, want %s", tt.amount, tt.rate, got, tt.want)
		})
	}
}

func TestLeaveCashout(t *testing.T) {
	// 37500 over a 14-day cycle: daily rate 2678.57, two days 5357.14.
	got := paycalc.LeaveCashout(d("37500"), d("2"), 14)
	assert.True(t, d("5357.14").Equal(got), "got %s", got)

	assert.True(t, paycalc.LeaveCashout(d("37500"), decimal.Zero, 14).IsZero())
	assert.True(t, paycalc.LeaveCashout(d("37500"), d("2"), 0).IsZero())
}

func baseWorker() domain.Worker {
	return domain.Worker{
		WorkerID:      "w1",
		Status:        domain.Active,
		JoinDate:      time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		CycleGrossPay: d("37500"),
		TDSRatePct:    d("10"),
		LeaveBalance:  d("10"),
		Bank: domain.BankDetails{
			BankName:      "First National",
			AccountNumber: "000111222",
			IFSC:          "FNB0001",
			PAN:           "ABCDE1234F",
		},
	}
}

func TestComputePayment_ScenarioA(t *testing.T) {
	w := baseWorker()
	w.AccountBalance = d("-5000")

	b, err := paycalc.ComputePayment(w, d("2"), decimal.Zero, 14)
	require.NoError(t, err)

	assert.True(t, d("5357.14").Equal(b.LeaveCashout), "leave cashout %s", b.LeaveCashout)
	assert.True(t, d("42857.14").Equal(b.TaxableAmount), "taxable %s", b.TaxableAmount)
	assert.True(t, d("4286").Equal(b.TDS), "tds %s", b.TDS)
	assert.True(t, d("38571.14").Equal(b.NetBeforeRecovery), "net before recovery %s", b.NetBeforeRecovery)
	assert.True(t, d("5000").Equal(b.Recovered), "recovered %s", b.Recovered)
	assert.True(t, d("33571.14").Equal(b.NetAmount), "net %s", b.NetAmount)
}

func TestComputePayment_NoAdjustments(t *testing.T) {
	w := baseWorker()

	b, err := paycalc.ComputePayment(w, decimal.Zero, decimal.Zero, 14)
	require.NoError(t, err)

	assert.True(t, d("37500").Equal(b.TaxableAmount))
	assert.True(t, d("3750").Equal(b.TDS))
	assert.True(t, d("33750").Equal(b.NetAmount))
	assert.True(t, b.Recovered.IsZero())
}

func TestComputePayment_RecoveryNeverExceedsNet(t *testing.T) {
	w := baseWorker()
	w.CycleGrossPay = d("1000")
	w.AccountBalance = d("-50000") // Worker owes far more than one cycle's pay

	b, err := paycalc.ComputePayment(w, decimal.Zero, decimal.Zero, 14)
	require.NoError(t, err)

	assert.True(t, b.Recovered.Equal(b.NetBeforeRecovery), "recovery capped at net before recovery")
	assert.True(t, b.NetAmount.IsZero(), "net never driven below zero")
}

func TestComputePayment_PositiveBalanceNoRecovery(t *testing.T) {
	w := baseWorker()
	w.AccountBalance = d("2500")

	b, err := paycalc.ComputePayment(w, decimal.Zero, decimal.Zero, 14)
	require.NoError(t, err)
	assert.True(t, b.Recovered.IsZero())
}

func TestComputePayment_SnapshotFrozen(t *testing.T) {
	w := baseWorker()

	b, err := paycalc.ComputePayment(w, decimal.Zero, decimal.Zero, 14)
	require.NoError(t, err)

	assert.Equal(t, w.Bank.AccountNumber, b.Snapshot.AccountNumber)
	assert.Equal(t, w.Bank.PAN, b.Snapshot.PAN)
	assert.True(t, w.TDSRatePct.Equal(b.Snapshot.TDSRatePct))
}

func TestComputePayment_RejectsNegativeInputs(t *testing.T) {
	w := baseWorker()

	_, err := paycalc.ComputePayment(w, d("-1"), decimal.Zero, 14)
	assert.Error(t, err)

	_, err = paycalc.ComputePayment(w, decimal.Zero, d("-1"), 14)
	assert.Error(t, err)

	_, err = paycalc.ComputePayment(w, decimal.Zero, decimal.Zero, 0)
	assert.Error(t, err)
}

func TestComputeDebtPayment_ScenarioB(t *testing.T) {
	w := baseWorker()
	w.DebtBalance = d("75000")

	b, err := paycalc.ComputeDebtPayment(w, d("50000"))
	require.NoError(t, err)

	assert.True(t, d("5000").Equal(b.TDS), "tds %s", b.TDS)
	assert.True(t, d("45000").Equal(b.NetAmount), "net %s", b.NetAmount)
	assert.True(t, d("50000").Equal(b.DebtCleared))
}

func TestComputeDebtPayment_RejectsNonPositive(t *testing.T) {
	w := baseWorker()
	_, err := paycalc.ComputeDebtPayment(w, decimal.Zero)
	assert.Error(t, err)
}
