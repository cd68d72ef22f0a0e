package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNew(t *testing.T) {
	tests := map[string]struct {
		payment Payment
		wantErr error
	}{
		"valid invoice": {
			payment: Payment{Total: 100.5, RecordType: RecordTypeInvoice, Status: StatusPending},
		},
		"valid at upper bound": {
			payment: Payment{Total: 999999.99, RecordType: RecordTypeNone, Status: StatusCompleted},
		},
		"zero total": {
			payment: Payment{Total: 0, RecordType: RecordTypeInvoice, Status: StatusPending},
			wantErr: ErrInvalidAmount,
		},
		"negative total": {
			payment: Payment{Total: -10, RecordType: RecordTypeInvoice, Status: StatusPending},
			wantErr: ErrInvalidAmount,
		},
		"total above cap": {
			payment: Payment{Total: 1000000, RecordType: RecordTypeInvoice, Status: StatusPending},
			wantErr: ErrInvalidAmount,
		},
		"bogus record type": {
			payment: Payment{Total: 100.5, RecordType: "bogus", Status: StatusPending},
			wantErr: ErrInvalidRecordType,
		},
		"bogus status": {
			payment: Payment{Total: 100.5, RecordType: RecordTypeBill, Status: "bogus"},
			wantErr: ErrInvalidStatus,
		},
		"amount reported before record type": {
			payment: Payment{Total: -1, RecordType: "bogus", Status: "bogus"},
			wantErr: ErrInvalidAmount,
		},
		"record type reported before status": {
			payment: Payment{Total: 10, RecordType: "bogus", Status: "bogus"},
			wantErr: ErrInvalidRecordType,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := ValidateNew(tt.payment)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	total := 50.0
	badTotal := -1.0
	rt := RecordTypeBill
	badRT := RecordType("receipt")
	status := StatusVoid
	badStatus := Status("archived")

	tests := map[string]struct {
		fields  UpdateFields
		wantErr error
	}{
		"empty set is valid": {
			fields: UpdateFields{},
		},
		"valid partial": {
			fields: UpdateFields{Total: &total, Status: &status},
		},
		"unset fields are not checked": {
			fields: UpdateFields{RecordType: &rt},
		},
		"bad total": {
			fields:  UpdateFields{Total: &badTotal},
			wantErr: ErrInvalidAmount,
		},
		"bad record type": {
			fields:  UpdateFields{RecordType: &badRT},
			wantErr: ErrInvalidRecordType,
		},
		"bad status": {
			fields:  UpdateFields{Status: &badStatus},
			wantErr: ErrInvalidStatus,
		},
		"total checked first": {
			fields:  UpdateFields{Total: &badTotal, RecordType: &badRT, Status: &badStatus},
			wantErr: ErrInvalidAmount,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := ValidateUpdate(tt.fields)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidationMessages(t *testing.T) {
	err := ValidateNew(Payment{Total: -10, RecordType: RecordTypeInvoice, Status: StatusPending})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "greater than 0")

	err = ValidateNew(Payment{Total: 100.5, RecordType: "bogus", Status: StatusPending})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record type")
}

func TestIsValidationError(t *testing.T) {
	assert.False(t, IsValidationError(nil))
	assert.False(t, IsValidationError(assert.AnError))
	assert.True(t, IsValidationError(ErrInvalidStatus))
}
