package kafka

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

// TopicPayoutsSettled carries one event per settled payment, consumed by the
// external bank-file generator.
const TopicPayoutsSettled = "payouts.settled"

const (
	EventPaymentSettled     = "payroll.payment.settled"
	EventDebtPaymentSettled = "debt.payment.settled"
)

// OutboxEvent is a staged message written in the same database transaction
// as the state change it describes. A producer worker drains pending events
// and publishes them to Kafka.
type OutboxEvent struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Key           string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
}

// SettledPaymentPayload is the JSON body of a settlement event.
type SettledPaymentPayload struct {
	PaymentID     string          `json:"paymentID"`
	RunID         string          `json:"runID"`
	WorkerID      string          `json:"workerID"`
	Gross         decimal.Decimal `json:"gross"`
	TDS           decimal.Decimal `json:"tds"`
	NetAmount     decimal.Decimal `json:"netAmount"`
	BankName      string          `json:"bankName"`
	AccountNumber string          `json:"accountNumber"`
	IFSC          string          `json:"ifsc"`
	SettledAt     time.Time       `json:"settledAt"`
}

// NewSettlementEvent builds a pending outbox event for a settled payment.
func NewSettlementEvent(eventType, aggregateType, aggregateID, workerID string, payload SettledPaymentPayload) (OutboxEvent, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return OutboxEvent{}, fmt.Errorf("failed to marshal settlement payload: %w", err)
	}
	return OutboxEvent{
		ID:            uuid.NewString(),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         TopicPayoutsSettled,
		Key:           workerID,
		Payload:       body,
		Status:        OutboxStatusPending,
	}, nil
}

// ValidateOutboxEvent checks the minimum shape required before staging.
func ValidateOutboxEvent(event OutboxEvent) error {
	if event.ID == "" {
		return errors.New("outbox id is required")
	}
	if event.Topic == "" {
		return errors.New("outbox topic is required")
	}
	if len(event.Payload) == 0 {
		return errors.New("outbox payload is required")
	}
	switch event.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", event.Status)
	}
}
