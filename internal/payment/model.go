package payment

import (
	"math"
	"time"
)

type RecordType string

const (
	RecordTypeInvoice RecordType = "invoice"
	RecordTypeBill    RecordType = "bill"
	RecordTypeNone    RecordType = "none"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusVoid      Status = "void"
	StatusCompleted Status = "completed"
)

// MaxTotal is the largest amount a payment may carry.
const MaxTotal = 999999.99

// Payment is the persisted record. CreateDate is internal bookkeeping and
// must never leave the service; external callers only ever see a Response.
type Payment struct {
	ID           int64      `json:"id"`
	Total        float64    `json:"total"`
	RecordType   RecordType `json:"record_type"`
	Status       Status     `json:"status"`
	CreateDate   time.Time  `json:"create_date"`
	ModifiedDate time.Time  `json:"modified_date"`
}

// CreateInput carries the caller-supplied fields for a new payment.
type CreateInput struct {
	Total      float64    `json:"total"`
	RecordType RecordType `json:"record_type"`
	Status     Status     `json:"status"`
}

// UpdateFields is the optional-field set for a partial update. A nil field
// means "leave unchanged".
type UpdateFields struct {
	Total      *float64    `json:"total"`
	RecordType *RecordType `json:"record_type"`
	Status     *Status     `json:"status"`
}

// Empty reports whether no field is set.
func (u UpdateFields) Empty() bool {
	return u.Total == nil && u.RecordType == nil && u.Status == nil
}

// New builds a payment from partial input, filling defaults: record type
// "none", status "pending", timestamps set to the current UTC instant.
func New(in CreateInput) Payment {
	now := time.Now().UTC()
	p := Payment{
		Total:        in.Total,
		RecordType:   in.RecordType,
		Status:       in.Status,
		CreateDate:   now,
		ModifiedDate: now,
	}
	if p.RecordType == "" {
		p.RecordType = RecordTypeNone
	}
	if p.Status == "" {
		p.Status = StatusPending
	}
	return p
}

// Touch refreshes the modified timestamp, nothing else.
func (p *Payment) Touch() {
	p.ModifiedDate = time.Now().UTC()
}

// Response is the external projection of a payment. CreateDate is omitted.
type Response struct {
	ID           int64      `json:"id"`
	Total        float64    `json:"total"`
	RecordType   RecordType `json:"record_type"`
	Status       Status     `json:"status"`
	ModifiedDate time.Time  `json:"modified_date"`
}

// Response projects the record into its external shape.
func (p Payment) Response() Response {
	return Response{
		ID:           p.ID,
		Total:        p.Total,
		RecordType:   p.RecordType,
		Status:       p.Status,
		ModifiedDate: p.ModifiedDate,
	}
}

// Round2 rounds to two decimal places, half away from zero. Totals are
// validated positive before rounding, so this is round-half-up here.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
