package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listkeep-io/listkeep/internal/database"
)

func TestInitializeAPI(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "app.yml")

	configContent := []byte(`
apiPort: 8080
auth:
  jwtSecret: test-secret
database:
  type: sqlite
  path: ` + filepath.Join(dir, "test.db") + `
  maxRetries: 1
  retryDelay: 1
`)
	require.NoError(t, os.WriteFile(configPath, configContent, 0644))

	apiServer, err := initializeAPI(configPath)
	defer database.Close()

	assert.NoError(t, err)
	assert.NotNil(t, apiServer)
	assert.Equal(t, 8080, apiServer.Config.APIPort)
}

func TestInitializeAPIBadConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "app.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("apiPort: [nope"), 0644))

	apiServer, err := initializeAPI(configPath)
	assert.Error(t, err)
	assert.Nil(t, apiServer)
}
