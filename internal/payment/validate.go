package payment

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidRecordType = errors.New("invalid record type")
	ErrInvalidStatus     = errors.New("invalid status")
)

// IsValidationError reports whether err comes from a business rule check.
// The HTTP boundary maps these to 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidRecordType) ||
		errors.Is(err, ErrInvalidStatus)
}

// ValidateNew checks all business rules for a fully-populated payment.
// Rules are checked in order total, record type, status; the first failing
// rule is reported.
func ValidateNew(p Payment) error {
	if err := validateTotal(p.Total); err != nil {
		return err
	}
	if err := validateRecordType(p.RecordType); err != nil {
		return err
	}
	return validateStatus(p.Status)
}

// ValidateUpdate checks business rules only for the fields that are set.
func ValidateUpdate(fields UpdateFields) error {
	if fields.Total != nil {
		if err := validateTotal(*fields.Total); err != nil {
			return err
		}
	}
	if fields.RecordType != nil {
		if err := validateRecordType(*fields.RecordType); err != nil {
			return err
		}
	}
	if fields.Status != nil {
		if err := validateStatus(*fields.Status); err != nil {
			return err
		}
	}
	return nil
}

func validateTotal(total float64) error {
	if total <= 0 {
		return fmt.Errorf("%w: total must be greater than 0", ErrInvalidAmount)
	}
	if total > MaxTotal {
		return fmt.Errorf("%w: total cannot exceed 999999.99", ErrInvalidAmount)
	}
	return nil
}

func validateRecordType(rt RecordType) error {
	switch rt {
	case RecordTypeInvoice, RecordTypeBill, RecordTypeNone:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidRecordType, rt)
}

func validateStatus(s Status) error {
	switch s {
	case StatusPending, StatusVoid, StatusCompleted:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}
