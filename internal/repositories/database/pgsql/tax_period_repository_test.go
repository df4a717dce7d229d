package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/opspay/payroll_backend/internal/apperrors"
	"github.com/opspay/payroll_backend/internal/models"
)

var taxRecordColumnNames = []string{
	"record_id", "worker_id", "year", "month", "total_gross", "total_tds", "total_net",
	"payment_count", "filing_status", "created_at", "created_by", "last_updated_at", "last_updated_by",
}

// --- Test Suite ---
type TaxPeriodRepositoryTestSuite struct {
	suite.Suite
	mockPool pgxmock.PgxPoolIface
	repo     *PgxTaxPeriodRepository
	actor    string
	now      time.Time
}

func (suite *TaxPeriodRepositoryTestSuite) SetupTest() {
	mockPool, err := pgxmock.NewPool()
	suite.Require().NoError(err)
	suite.mockPool = mockPool
	suite.repo = &PgxTaxPeriodRepository{}
	suite.actor = uuid.NewString()
	suite.now = time.Now().UTC()
}

func (suite *TaxPeriodRepositoryTestSuite) TearDownTest() {
	suite.NoError(suite.mockPool.ExpectationsWereMet())
	suite.mockPool.Close()
}

func (suite *TaxPeriodRepositoryTestSuite) lockedRecordRow(recordID, workerID string, gross, tds, net decimal.Decimal, count int) *pgxmock.Rows {
	return pgxmock.NewRows(taxRecordColumnNames).AddRow(
		recordID, workerID, 2025, 3, gross, tds, net, count, models.FilingStatus("PENDING"),
		suite.now, suite.actor, suite.now, suite.actor,
	)
}

func (suite *TaxPeriodRepositoryTestSuite) TestApplyDelta_AddsToExistingRecord() {
	ctx := context.Background()
	recordID := uuid.NewString()
	workerID := uuid.NewString()
	gross := decimal.NewFromInt(75000)
	tds := decimal.NewFromInt(7500)
	net := decimal.NewFromInt(67500)

	suite.mockPool.ExpectBegin()
	tx, err := suite.mockPool.Begin(ctx)
	suite.Require().NoError(err)

	suite.mockPool.ExpectQuery(`FROM tax_period_records`).
		WithArgs(2025, 3, workerID).
		WillReturnRows(suite.lockedRecordRow(recordID, workerID, gross, tds, net, 1))
	suite.mockPool.ExpectExec(`UPDATE tax_period_records`).
		WithArgs(recordID, gross.Add(gross), tds.Add(tds), net.Add(net), 2, suite.now, suite.actor).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = suite.repo.ApplyDeltaInTx(ctx, tx, 2025, time.March, workerID, gross, tds, net, 1, suite.actor, suite.now)

	suite.NoError(err)
}

func (suite *TaxPeriodRepositoryTestSuite) TestApplyDelta_NegativeTotalRejected() {
	ctx := context.Background()
	recordID := uuid.NewString()
	workerID := uuid.NewString()

	suite.mockPool.ExpectBegin()
	tx, err := suite.mockPool.Begin(ctx)
	suite.Require().NoError(err)

	// Two payments in the month, but a reversal larger than the stored totals.
	suite.mockPool.ExpectQuery(`FROM tax_period_records`).
		WithArgs(2025, 3, workerID).
		WillReturnRows(suite.lockedRecordRow(recordID, workerID,
			decimal.NewFromInt(50000), decimal.NewFromInt(5000), decimal.NewFromInt(45000), 2))

	err = suite.repo.ApplyDeltaInTx(ctx, tx, 2025, time.March, workerID,
		decimal.NewFromInt(-75000), decimal.NewFromInt(-7500), decimal.NewFromInt(-67500), -1, suite.actor, suite.now)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *TaxPeriodRepositoryTestSuite) TestApplyDelta_EmptiedRecordDeleted() {
	ctx := context.Background()
	recordID := uuid.NewString()
	workerID := uuid.NewString()

	suite.mockPool.ExpectBegin()
	tx, err := suite.mockPool.Begin(ctx)
	suite.Require().NoError(err)

	suite.mockPool.ExpectQuery(`FROM tax_period_records`).
		WithArgs(2025, 3, workerID).
		WillReturnRows(suite.lockedRecordRow(recordID, workerID,
			decimal.NewFromInt(75000), decimal.NewFromInt(7500), decimal.NewFromInt(67500), 1))
	suite.mockPool.ExpectExec(`DELETE FROM tax_period_records`).
		WithArgs(recordID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err = suite.repo.ApplyDeltaInTx(ctx, tx, 2025, time.March, workerID,
		decimal.NewFromInt(-75000), decimal.NewFromInt(-7500), decimal.NewFromInt(-67500), -1, suite.actor, suite.now)

	suite.NoError(err)
}

// --- Run Test Suite ---
func TestTaxPeriodRepository(t *testing.T) {
	suite.Run(t, new(TaxPeriodRepositoryTestSuite))
}
