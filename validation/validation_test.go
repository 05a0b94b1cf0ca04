package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldErrorsCollectsPerField(t *testing.T) {
	errs := FieldErrors{}
	errs.Required("question_text", "")
	errs.MaxLength("question_text", strings.Repeat("x", 201), 200)
	errs.NonNegative("votes", -1)

	assert.Len(t, errs["question_text"], 2)
	assert.Len(t, errs["votes"], 1)

	err := errs.Err()
	assert.Error(t, err)
	verr, ok := err.(*Error)
	assert.True(t, ok)
	assert.Equal(t, errs, verr.Fields)
}

func TestFieldErrorsEmptyIsNil(t *testing.T) {
	errs := FieldErrors{}
	errs.Required("title", "ok")
	errs.MaxLength("title", "ok", 100)
	errs.NonNegative("price", 0)
	assert.NoError(t, errs.Err())
}

func TestEmail(t *testing.T) {
	errs := FieldErrors{}
	errs.Email("contact_email", "not-an-email")
	assert.Len(t, errs["contact_email"], 1)

	errs = FieldErrors{}
	errs.Email("contact_email", "dev@example.com")
	errs.Email("contact_email", "") // optional fields skip the check when empty
	assert.NoError(t, errs.Err())
}

func TestMinLengthAndOneOf(t *testing.T) {
	errs := FieldErrors{}
	errs.MinLength("answer", "ab", 3)
	errs.OneOf("language", "klingon", func(string) bool { return false })
	assert.Len(t, errs["answer"], 1)
	assert.Contains(t, errs["language"][0], "klingon")
}
