package validation_test

import (
	"errors"
	"testing"

	"academy/internal/validation"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Slug  string `validate:"required,slug"`
	Email string `validate:"required,email"`
}

func TestSlug(t *testing.T) {
	v := validation.New()
	assert.NoError(t, v.Struct(sample{Slug: "iso-9001-lead-auditor", Email: "a@b.co"}))

	for _, bad := range []string{"Upper-Case", "trailing-", "-leading", "double--dash", "sp ace"} {
		err := v.Struct(sample{Slug: bad, Email: "a@b.co"})
		fields := validation.Fields(err)
		assert.Contains(t, fields, "Slug", "slug %q should be rejected", bad)
	}
}

func TestFields(t *testing.T) {
	v := validation.New()
	fields := validation.Fields(v.Struct(sample{Slug: "ok"}))
	assert.Equal(t, "Field 'Email' failed on the 'required' tag", fields["Email"])

	assert.Nil(t, validation.Fields(errors.New("boom")))
	assert.Nil(t, validation.Fields(nil))
}
