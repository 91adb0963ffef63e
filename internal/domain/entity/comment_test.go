package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/vendor-management/internal/domain/entity"
)

func TestValidateRating_Rango(t *testing.T) {
	for r := entity.MinRating; r <= entity.MaxRating; r++ {
		assert.NoError(t, entity.ValidateRating(r))
	}
	assert.Error(t, entity.ValidateRating(0))
	assert.Error(t, entity.ValidateRating(6))
	assert.Error(t, entity.ValidateRating(-3))
}

func TestNewComment_DestinoExclusivo(t *testing.T) {
	now := time.Now()
	c := entity.NewComment("c1", "u1", entity.VendorTarget("v1"), "bien", 4, now)
	assert.NotNil(t, c.VendorID)
	assert.Nil(t, c.ProductID)
	assert.Equal(t, entity.VendorTarget("v1"), c.Target())
	assert.NoError(t, c.Validate())

	c = entity.NewComment("c2", "u1", entity.ProductTarget("p1"), "", 5, now)
	assert.Nil(t, c.VendorID)
	assert.Equal(t, "p1", *c.ProductID)
	assert.NoError(t, c.Validate())
}

func TestComment_Validate_SinDestinoOAmbos(t *testing.T) {
	v, p := "v1", "p1"
	assert.Error(t, (&entity.Comment{Rating: 3}).Validate())
	assert.Error(t, (&entity.Comment{Rating: 3, VendorID: &v, ProductID: &p}).Validate())
}

func TestTarget_Valid(t *testing.T) {
	assert.True(t, entity.ProductTarget("x").Valid())
	assert.False(t, entity.ProductTarget("").Valid())
	assert.False(t, entity.Target{Kind: "user", ID: "x"}.Valid())
}
