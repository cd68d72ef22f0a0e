package events

import (
	"time"

	"github.com/andreasstove999/payments-service-go/internal/payment"
)

const (
	EventsExchange = "payments.events"

	PaymentCreatedRoutingKey = "payment.created.v1"
	PaymentUpdatedRoutingKey = "payment.updated.v1"
	PaymentDeletedRoutingKey = "payment.deleted.v1"

	PaymentCreatedName = "PaymentCreated"
	PaymentUpdatedName = "PaymentUpdated"
	PaymentDeletedName = "PaymentDeleted"
)

type PaymentCreated struct {
	PaymentID    int64              `json:"paymentId"`
	Total        float64            `json:"total"`
	RecordType   payment.RecordType `json:"recordType"`
	Status       payment.Status     `json:"status"`
	ModifiedDate time.Time          `json:"modifiedDate"`
}

type PaymentUpdated struct {
	PaymentID    int64              `json:"paymentId"`
	Total        float64            `json:"total"`
	RecordType   payment.RecordType `json:"recordType"`
	Status       payment.Status     `json:"status"`
	ModifiedDate time.Time          `json:"modifiedDate"`
}

type PaymentDeleted struct {
	PaymentID int64 `json:"paymentId"`
}
