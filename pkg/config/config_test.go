package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE", "memory")

	conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", conf.API.Port)
	assert.Equal(t, "development", conf.API.Environment)
	assert.Equal(t, "onboarding@resend.dev", conf.Mail.From)
	assert.Equal(t, StoreMemory, conf.Store)
	assert.False(t, conf.IsProduction())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  port: "9000"
  environment: production
firebase:
  project_id: from-file
mail:
  host_url: https://league.example
`), 0o600))

	t.Setenv("FIREBASE_PROJECT_ID", "from-env")
	t.Setenv("CORS_HOSTS", "https://a.example, https://b.example")
	t.Setenv("STORE", "firestore")

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", conf.API.Port)
	assert.True(t, conf.IsProduction())
	assert.Equal(t, "from-env", conf.Firebase.ProjectID)
	assert.Equal(t, "https://league.example", conf.Mail.HostURL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, conf.API.CORSHosts)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("firestore needs a project", func(t *testing.T) {
		t.Setenv("STORE", "firestore")
		t.Setenv("FIREBASE_PROJECT_ID", "")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("unknown store", func(t *testing.T) {
		t.Setenv("STORE", "mongo")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("bad port", func(t *testing.T) {
		t.Setenv("STORE", "memory")
		t.Setenv("PORT", "eighty")
		_, err := Load("")
		assert.Error(t, err)
	})
}
