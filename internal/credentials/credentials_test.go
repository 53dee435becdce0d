package credentials

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CLAUDE_CODE_OAUTH_TOKEN", "sk-ant-env-token")

	creds, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-env-token", creds.AccessToken())
	assert.False(t, creds.IsExpired())
}

func TestReadBundle(t *testing.T) {
	path := writeFile(t, "creds.json", `{
		"claudeAiOauth": {
			"accessToken": "sk-ant-oat-abc",
			"expiresAt": 99999999999999
		}
	}`)

	creds, err := readBundle(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-oat-abc", creds.AccessToken())
	assert.False(t, creds.IsExpired())
}

func TestReadBundleExpired(t *testing.T) {
	path := writeFile(t, "creds.json", `{
		"claudeAiOauth": {"accessToken": "sk-ant-old", "expiresAt": 1000}
	}`)

	creds, err := readBundle(path)
	require.NoError(t, err)
	assert.True(t, creds.IsExpired())
}

func TestReadBundleMissingToken(t *testing.T) {
	path := writeFile(t, "creds.json", `{"claudeAiOauth": {}}`)

	_, err := readBundle(path)
	assert.Error(t, err)
}

func TestReadFlat(t *testing.T) {
	path := writeFile(t, "credentials.json", `{
		"access_token": "sk-ant-flat",
		"organization_id": "org-1234"
	}`)

	creds, err := readFlat(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-flat", creds.AccessToken())
	assert.Equal(t, "org-1234", creds.OrganizationID)
}

func TestReadFlatMalformed(t *testing.T) {
	path := writeFile(t, "credentials.json", `<html>not json</html>`)

	_, err := readFlat(path)
	assert.Error(t, err)
}

func TestIsExpiredBoundary(t *testing.T) {
	creds := &Credentials{}
	creds.ClaudeAiOauth.AccessToken = "tok"
	creds.ClaudeAiOauth.ExpiresAt = time.Now().Add(time.Hour).UnixMilli()
	assert.False(t, creds.IsExpired())

	creds.ClaudeAiOauth.ExpiresAt = time.Now().Add(-time.Hour).UnixMilli()
	assert.True(t, creds.IsExpired())
}
