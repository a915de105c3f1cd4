package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Black-And-White-Club/scorebook/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cliApp := newCLI()
	cliApp.Writer = &out
	cliApp.ErrWriter = &out
	err := cliApp.Run(append([]string{"scorebook"}, args...))
	return out.String(), err
}

func TestTokenIssue(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	path := writeConfig(t, "postgres:\n  dsn: postgres://unused\njwt:\n  secret: cli-secret\n")

	out, err := runCLI(t, "--config", path, "token", "issue", "--subject", "ops", "--league", "league-7", "--ttl", "1h")
	require.NoError(t, err)

	claims, err := jwt.NewService("cli-secret", time.Hour).ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.Equal(t, "league-7", claims.League)
	assert.True(t, claims.CanWrite())
}

func TestTokenIssueRejects(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	t.Run("missing secret", func(t *testing.T) {
		path := writeConfig(t, "postgres:\n  dsn: postgres://unused\n")
		_, err := runCLI(t, "--config", path, "token", "issue", "--subject", "ops")
		assert.ErrorContains(t, err, "JWT secret")
	})

	t.Run("unknown role", func(t *testing.T) {
		path := writeConfig(t, "jwt:\n  secret: s\n")
		_, err := runCLI(t, "--config", path, "token", "issue", "--subject", "ops", "--role", "admin")
		assert.ErrorContains(t, err, "unknown role")
	})
}

func TestRolloverInterval(t *testing.T) {
	assert.Equal(t, 7*24*time.Hour, rolloverInterval(0))
	assert.Equal(t, time.Hour, rolloverInterval(time.Hour))
}
