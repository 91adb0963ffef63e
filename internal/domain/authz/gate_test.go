package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/vendor-management/internal/domain/authz"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
)

const codename = "update_vendor_record"

func actor(role string, mods ...func(*entity.User)) *entity.User {
	u := &entity.User{ID: "u1", Username: "ana", Role: role, IsActive: true}
	for _, m := range mods {
		m(u)
	}
	return u
}

func TestAllow_Matriz(t *testing.T) {
	staff := func(u *entity.User) { u.IsStaff = true }
	super := func(u *entity.User) { u.IsSuperuser = true }
	inactive := func(u *entity.User) { u.IsActive = false }

	cases := []struct {
		name   string
		actor  *authz.Actor
		expect bool
	}{
		{"superuser sin grants", authz.NewActor(actor(entity.RoleNormalUser, super), nil), true},
		{"staff sin grants", authz.NewActor(actor(entity.RoleVendor, staff), nil), true},
		{"admin sin grants", authz.NewActor(actor(entity.RoleAdmin), nil), true},
		{"normal con grant", authz.NewActor(actor(entity.RoleNormalUser), []string{codename}), true},
		{"normal sin grant", authz.NewActor(actor(entity.RoleNormalUser), []string{"otro"}), false},
		{"vendor sin grant", authz.NewActor(actor(entity.RoleVendor), nil), false},
		{"superuser inactivo", authz.NewActor(actor(entity.RoleAdmin, super, inactive), nil), false},
		{"actor nulo", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, authz.Allow(tc.actor, codename))
		})
	}
}

func TestAllowOwner_DuenoPasaSinGrant(t *testing.T) {
	a := authz.NewActor(actor(entity.RoleVendor), nil)
	assert.True(t, authz.AllowOwner(a, "u1", codename))
	assert.False(t, authz.AllowOwner(a, "otro-usuario", codename))
	assert.False(t, authz.AllowOwner(a, "", codename))
}

func TestHasRole(t *testing.T) {
	a := authz.NewActor(actor(entity.RoleVendor), nil)
	assert.True(t, authz.HasRole(a, entity.RoleVendor, entity.RoleAdmin))
	assert.False(t, authz.HasRole(a, entity.RoleAdmin))

	s := authz.NewActor(actor(entity.RoleNormalUser, func(u *entity.User) { u.IsSuperuser = true }), nil)
	assert.True(t, authz.HasRole(s, entity.RoleAdmin))
}
