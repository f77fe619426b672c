package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type batchInput struct {
	Quantity  int       `validate:"gte=1"`
	StartDate time.Time `validate:"notfuture"`
	Stage     string    `validate:"omitempty,batchstage"`
}

func TestNotFutureRejectsOneSecondAhead(t *testing.T) {
	errs := ValidateStruct(&batchInput{Quantity: 1, StartDate: time.Now().Add(time.Second)})

	require.Len(t, errs, 1)
	assert.Equal(t, "batchInput.StartDate", errs[0].FailedField)
	assert.Equal(t, "notfuture", errs[0].Tag)
}

func TestQuantityZeroRejected(t *testing.T) {
	errs := ValidateStruct(&batchInput{Quantity: 0, StartDate: time.Now().Add(-time.Minute)})

	require.Len(t, errs, 1)
	assert.Equal(t, "gte", errs[0].Tag)
	assert.Equal(t, "1", errs[0].Value)
}

func TestEnumTags(t *testing.T) {
	assert.Empty(t, ValidateStruct(&batchInput{Quantity: 3, StartDate: time.Now(), Stage: "COMPLETED"}))

	errs := ValidateStruct(&batchInput{Quantity: 3, StartDate: time.Now(), Stage: "DONE"})
	require.Len(t, errs, 1)
	assert.Equal(t, "batchstage", errs[0].Tag)

	type shipmentInput struct {
		Status string `validate:"shipmentstatus"`
	}
	assert.Empty(t, ValidateStruct(&shipmentInput{Status: "SHIPPED"}))
	assert.Len(t, ValidateStruct(&shipmentInput{Status: "shipped"}), 1)
}
