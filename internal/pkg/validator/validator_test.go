package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last+tag@sub.domain.org",
	}
	invalid := []string{
		"",
		"plainaddress",
		"@missing-local.com",
		"user@",
		"user@domain",
	}

	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("123"))
	assert.True(t, IsNumeric("0"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("12a"))
	assert.False(t, IsNumeric("-1"))
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2024-05-01")
	assert.True(t, ok)
	assert.Equal(t, 2024, date.Year())
	assert.Equal(t, 5, int(date.Month()))

	_, ok = IsValidDate("01-05-2024")
	assert.False(t, ok)

	_, ok = IsValidDate("2024-13-01")
	assert.False(t, ok)
}

func TestIsValidMonth(t *testing.T) {
	month, ok := IsValidMonth("2024-05")
	assert.True(t, ok)
	assert.Equal(t, 2024, month.Year())

	_, ok = IsValidMonth("2024-5")
	assert.False(t, ok)

	_, ok = IsValidMonth("2024-05-01")
	assert.False(t, ok)
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "action", Message: "must be approve or reject"},
		{Field: "timesheet_ids", Message: "is required"},
	}

	assert.Contains(t, errs.Error(), "action: must be approve or reject")

	m := errs.ToMap()
	assert.Equal(t, "is required", m["timesheet_ids"])
	assert.Len(t, m, 2)
}
