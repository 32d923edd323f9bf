package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-distribution/internal/application/dto"
	"github.com/jhoicas/stock-distribution/pkg/jwt"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(append([]string{"distribute"}, args...))
	return out.String(), err
}

func TestRun_MemoriaConSeed(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "error")

	out, err := runApp(t, "run", "--seed")
	require.NoError(t, err)

	var resp dto.DistributionRunResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Products, 2)
	assert.Equal(t, int64(28), resp.Products[0].WarehouseAfter)
	assert.Equal(t, int64(56), resp.Products[1].WarehouseAfter)
}

func TestToken(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "cli-secret")

	out, err := runApp(t, "token", "--role", "bodeguero", "--user", "op-1")
	require.NoError(t, err)

	userID, role, err := jwt.Parse("cli-secret", strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "op-1", userID)
	assert.Equal(t, "bodeguero", role)

	_, err = runApp(t, "token", "--role", "root")
	assert.Error(t, err)
}
