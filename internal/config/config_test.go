package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	require.Equal(t, DriverSQLite, cfg.Database.Driver)
	require.Equal(t, "data/users.db", cfg.Database.Path)
	require.Equal(t, 30, cfg.Auth.TokenTTLMinutes)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("USERSVC_SERVER_ADDR", "127.0.0.1:9090")
	t.Setenv("USERSVC_DATABASE_DRIVER", DriverMemory)
	t.Setenv("USERSVC_AUTH_JWTSECRET", "s3cret")
	t.Setenv("USERSVC_AUTH_TOKENTTLMINUTES", "5")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	require.Equal(t, DriverMemory, cfg.Database.Driver)
	require.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	require.Equal(t, 5, cfg.Auth.TokenTTLMinutes)
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("USERSVC_DATABASE_DRIVER", "oracle")

	_, err := Load()
	require.Error(t, err)
}
