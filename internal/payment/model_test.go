package payment

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFillsDefaults(t *testing.T) {
	before := time.Now().UTC()
	p := New(CreateInput{})
	after := time.Now().UTC()

	assert.Equal(t, RecordTypeNone, p.RecordType)
	assert.Equal(t, StatusPending, p.Status)
	assert.Zero(t, p.Total)
	assert.False(t, p.CreateDate.Before(before))
	assert.False(t, p.CreateDate.After(after))
	assert.Equal(t, p.CreateDate, p.ModifiedDate)
}

func TestNewKeepsSuppliedFields(t *testing.T) {
	p := New(CreateInput{Total: 12.5, RecordType: RecordTypeBill, Status: StatusCompleted})

	assert.Equal(t, 12.5, p.Total)
	assert.Equal(t, RecordTypeBill, p.RecordType)
	assert.Equal(t, StatusCompleted, p.Status)
}

func TestTouchRefreshesOnlyModifiedDate(t *testing.T) {
	p := New(CreateInput{Total: 10})
	created := p.CreateDate

	time.Sleep(time.Millisecond)
	p.Touch()

	assert.Equal(t, created, p.CreateDate)
	assert.True(t, p.ModifiedDate.After(created))
}

func TestResponseOmitsCreateDate(t *testing.T) {
	p := Payment{
		ID:           7,
		Total:        99.99,
		RecordType:   RecordTypeInvoice,
		Status:       StatusVoid,
		CreateDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ModifiedDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	body, err := json.Marshal(p.Response())
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(body, &fields))

	assert.NotContains(t, fields, "create_date")
	assert.Contains(t, fields, "modified_date")
	assert.EqualValues(t, 7, fields["id"])
	assert.EqualValues(t, 99.99, fields["total"])
}

func TestRound2(t *testing.T) {
	tests := map[string]struct {
		in   float64
		want float64
	}{
		"half rounds up":       {100.565, 100.57},
		"third decimal up":     {100.567, 100.57},
		"third decimal down":   {100.564, 100.56},
		"already two decimals": {100.5, 100.5},
		"whole number":         {100, 100},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Round2(tt.in), 1e-9)
		})
	}
}

func TestUpdateFieldsEmpty(t *testing.T) {
	assert.True(t, UpdateFields{}.Empty())

	total := 5.0
	assert.False(t, UpdateFields{Total: &total}.Empty())

	status := StatusVoid
	assert.False(t, UpdateFields{Status: &status}.Empty())
}
