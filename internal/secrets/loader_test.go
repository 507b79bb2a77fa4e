package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte("  s3cret\n"), 0o600))

	got, err := Load(Source{Name: "api key", File: path})
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
}

func TestLoadFilePrecedesEnvAndValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte("from-file"), 0o600))
	t.Setenv("MATCHER_TEST_SECRET", "from-env")

	got, err := Load(Source{File: path, Env: "MATCHER_TEST_SECRET", Value: "inline"})
	require.NoError(t, err)
	assert.Equal(t, "from-file", got)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MATCHER_TEST_SECRET", "from-env")

	got, err := Load(Source{Env: "MATCHER_TEST_SECRET", Value: "inline"})
	require.NoError(t, err)
	assert.Equal(t, "from-env", got)
}

func TestLoadInlineValue(t *testing.T) {
	got, err := Load(Source{Value: " inline "})
	require.NoError(t, err)
	assert.Equal(t, "inline", got)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(Source{Name: "gemini api key"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini api key")

	_, err = Load(Source{File: filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o600))
	_, err = Load(Source{File: empty})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")

	// A configured file always wins, even when unreadable.
	t.Setenv("MATCHER_TEST_SECRET", "from-env")
	_, err = Load(Source{File: filepath.Join(t.TempDir(), "missing"), Env: "MATCHER_TEST_SECRET"})
	assert.Error(t, err)
}
