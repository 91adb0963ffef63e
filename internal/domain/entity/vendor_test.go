package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/vendor-management/internal/domain"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
)

func TestValidateFoundedYear_Cotas(t *testing.T) {
	now := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		year int
		ok   bool
	}{
		{1599, false},
		{1600, true},
		{1999, true},
		{2026, true},
		{2027, false},
	}
	for _, tc := range cases {
		err := entity.ValidateFoundedYear(tc.year, now)
		if tc.ok {
			assert.NoError(t, err, "año %d debe aceptarse", tc.year)
		} else {
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "año %d debe rechazarse", tc.year)
		}
	}
}

func TestVendor_Validate_AcumulaCampos(t *testing.T) {
	now := time.Now()
	v := &entity.Vendor{FoundedYear: 1500}
	err := v.Validate(now)

	var vErr *domain.ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Fields, "vendor_name")
	assert.Contains(t, vErr.Fields, "company_established_on")

	v = &entity.Vendor{Name: "Acme", FoundedYear: now.Year()}
	assert.NoError(t, v.Validate(now))
}
