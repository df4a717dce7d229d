package pgsql

import (
	"context"
	"testing"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/suite"

	"github.com/opspay/payroll_backend/internal/apperrors"
	"github.com/opspay/payroll_backend/internal/messaging/kafka"
)

// --- Test Suite ---
type OutboxRepositoryTestSuite struct {
	suite.Suite
	mockPool pgxmock.PgxPoolIface
	repo     *PgxOutboxRepository
}

func (suite *OutboxRepositoryTestSuite) SetupTest() {
	mockPool, err := pgxmock.NewPool()
	suite.Require().NoError(err)
	suite.mockPool = mockPool
	suite.repo = &PgxOutboxRepository{BaseRepository: BaseRepository{Pool: mockPool}}
}

func (suite *OutboxRepositoryTestSuite) TearDownTest() {
	suite.NoError(suite.mockPool.ExpectationsWereMet())
	suite.mockPool.Close()
}

// The retry backoff is built with make_interval from a seconds step, scaled by
// the new retry count.
func (suite *OutboxRepositoryTestSuite) TestMarkFailed_SchedulesLinearBackoff() {
	ctx := context.Background()
	eventID := uuid.NewString()

	suite.mockPool.ExpectExec(`make_interval\(secs => \$3 \* \(retry_count \+ 1\)\)`).
		WithArgs(eventID, "broker unreachable", outboxRetryStep.Seconds(), kafka.OutboxStatusFailed).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.MarkFailed(ctx, eventID, "broker unreachable")

	suite.NoError(err)
}

func (suite *OutboxRepositoryTestSuite) TestMarkFailed_UnknownEventNotFound() {
	ctx := context.Background()
	eventID := uuid.NewString()

	suite.mockPool.ExpectExec(`UPDATE outbox_events`).
		WithArgs(eventID, "timeout", outboxRetryStep.Seconds(), kafka.OutboxStatusFailed).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.MarkFailed(ctx, eventID, "timeout")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *OutboxRepositoryTestSuite) TestMarkSent_UpdatesStatus() {
	ctx := context.Background()
	eventID := uuid.NewString()

	suite.mockPool.ExpectExec(`UPDATE outbox_events`).
		WithArgs(eventID, kafka.OutboxStatusSent).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.MarkSent(ctx, eventID)

	suite.NoError(err)
}

// --- Run Test Suite ---
func TestOutboxRepository(t *testing.T) {
	suite.Run(t, new(OutboxRepositoryTestSuite))
}
