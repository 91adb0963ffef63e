package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendor-management/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "dev-secret")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "session", cfg.Auth.CookieName)
	assert.False(t, cfg.Auth.SignupAllowAdmin)
	assert.True(t, cfg.Seed.PermissionsOnStart)
	assert.False(t, cfg.Authz.ProtectCatalog)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("JWT_SECRET", "dev-secret")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("AUTH_SIGNUP_ALLOW_ADMIN", "true")
	t.Setenv("PERMISSIONS_PROTECT_CATALOG", "true")
	t.Setenv("AUTHZ_ENFORCE_VIEW", "1")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Authz.ProtectCatalog)
	assert.True(t, cfg.Authz.EnforceView)
	assert.True(t, cfg.Auth.SignupAllowAdmin)
}

func TestLoad_SinSecret_FallaEnCualquierEntorno(t *testing.T) {
	for _, env := range []string{"development", "staging", "production"} {
		t.Run(env, func(t *testing.T) {
			t.Setenv("APP_ENV", env)
			t.Setenv("JWT_SECRET", "")
			_, err := config.Load()
			assert.ErrorContains(t, err, "JWT_SECRET")
		})
	}
}

func TestDBConfig_DSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "vm", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/vm?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
