package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title  string   `json:"title" validate:"required,max=5"`
	Email  string   `json:"email" validate:"omitempty,email"`
	Filed  string   `json:"filed" validate:"required,isodate"`
	Status string   `json:"status" validate:"omitempty,oneof=open closed"`
	Phone  string   `json:"phone" validate:"omitempty,phone"`
	Tags   []string `json:"tags" validate:"omitempty,min=1"`
}

func TestValidate_OK(t *testing.T) {
	errs, err := Validate(sample{Title: "abc", Filed: "2025-01-01", Phone: "+1 (555) 010-2000"})
	require.NoError(t, err)
	assert.Nil(t, errs)
}

func TestValidate_UsesJSONNames(t *testing.T) {
	errs, err := Validate(sample{Title: "too long title", Email: "nope", Filed: "01/02/2025", Status: "maybe"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Must be at most 5 characters"}, errs["title"])
	assert.Equal(t, []string{"Invalid email format"}, errs["email"])
	assert.Equal(t, []string{"Invalid date (use YYYY-MM-DD)"}, errs["filed"])
	assert.Equal(t, []string{"Must be one of: open closed"}, errs["status"])
}

func TestValidate_NotBlank(t *testing.T) {
	type patch struct {
		Title *string `json:"title" validate:"omitempty,notblank,max=20"`
	}
	blank, set := "   ", " kept "
	errs, err := Validate(patch{Title: &blank})
	require.NoError(t, err)
	assert.Equal(t, []string{"This field cannot be blank"}, errs["title"])

	errs, err = Validate(patch{Title: &set})
	require.NoError(t, err)
	assert.Nil(t, errs)

	errs, err = Validate(patch{})
	require.NoError(t, err)
	assert.Nil(t, errs)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())

	_, err = ParseDate("2025-01-01T10:00:00Z")
	assert.NoError(t, err)

	_, err = ParseDate("yesterday")
	assert.Error(t, err)
}

func TestSummary_IsStable(t *testing.T) {
	errs := map[string][]string{
		"zip":   {"This field is required"},
		"city":  {"This field is required"},
		"email": {"Invalid email format"},
	}
	assert.Equal(t, "city: This field is required", Summary(errs))
	assert.Equal(t, "", Summary(nil))
}
