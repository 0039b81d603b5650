package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewRequest struct {
	ClientName  string  `json:"client_name" validate:"notblank,min=2,max=255"`
	ProjectName *string `json:"project_name,omitempty" validate:"omitempty,max=255"`
	Rating      int     `json:"rating" validate:"gte=1,lte=5"`
	Comments    string  `json:"comments" validate:"required,min=10,max=1000"`
}

type contactRequest struct {
	Email         string `json:"email" validate:"required,email"`
	ContactNumber string `json:"contact_number" validate:"required,len=10,numeric"`
}

func validReview() reviewRequest {
	return reviewRequest{ClientName: "Acme", Rating: 4, Comments: "solid work all around"}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	return valErr.Fields()
}

func TestValidate_Success(t *testing.T) {
	assert.NoError(t, Validate(validReview()))
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	r := validReview()
	r.Rating = 6

	fields := fieldsOf(t, Validate(r))
	assert.Contains(t, fields, "rating")
	assert.Equal(t, "must be less than or equal to 5", fields["rating"])
}

func TestValidate_BlankStringIsRequired(t *testing.T) {
	r := validReview()
	r.ClientName = "   "

	fields := fieldsOf(t, Validate(r))
	assert.Equal(t, "is required", fields["client_name"])
}

func TestValidate_StringLengthMessages(t *testing.T) {
	r := validReview()
	r.Comments = "short"
	long := strings.Repeat("x", 256)
	r.ProjectName = &long

	fields := fieldsOf(t, Validate(r))
	assert.Equal(t, "must be at least 10 characters", fields["comments"])
	assert.Equal(t, "must be at most 255 characters", fields["project_name"])
}

func TestValidate_ContactNumber(t *testing.T) {
	fields := fieldsOf(t, Validate(contactRequest{Email: "a@b.co", ContactNumber: "12345abcde"}))
	assert.Equal(t, "must contain only digits", fields["contact_number"])

	fields = fieldsOf(t, Validate(contactRequest{Email: "nope", ContactNumber: "123"}))
	assert.Equal(t, "must be exactly 10 characters", fields["contact_number"])
	assert.Equal(t, "must be a valid email address", fields["email"])

	assert.NoError(t, Validate(contactRequest{Email: "a@b.co", ContactNumber: "9876543210"}))
}

func TestValidationError_ErrorIsStable(t *testing.T) {
	err := Validate(reviewRequest{})
	require.Error(t, err)
	assert.Equal(t, err.Error(), Validate(reviewRequest{}).Error())
	assert.Contains(t, err.Error(), "field 'client_name'")
}

func TestDecodeAndValidate(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"client_name":"Acme","rating":5,"comments":"excellent delivery"}`))

	var dst reviewRequest
	require.NoError(t, DecodeAndValidate(req, &dst))
	assert.Equal(t, 5, dst.Rating)
}

func TestDecodeAndValidate_BadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))

	var dst reviewRequest
	err := DecodeAndValidate(req, &dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}
