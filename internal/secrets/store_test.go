package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPutGetDelete(t *testing.T) {
	t.Parallel()

	s := NewStore(filepath.Join(t.TempDir(), "moneymate"))
	_, err := s.Get(LLMKey)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(" LLM ", "sk-123"))
	got, err := s.Get(LLMKey)
	require.NoError(t, err)
	require.Equal(t, "sk-123", got)

	raw, err := os.ReadFile(filepath.Join(s.dir, fileName))
	require.NoError(t, err)
	require.NotContains(t, string(raw), "sk-123")

	require.NoError(t, s.Delete(LLMKey))
	require.NoError(t, s.Delete(LLMKey))
	_, err = s.Get(LLMKey)
	require.ErrorIs(t, err, ErrNotFound)

	require.Error(t, s.Put("  ", "x"))
}

func TestResolvePrefersEnv(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.Put(SyncToken, "stored"))

	require.Equal(t, "stored", s.Resolve("MONEYMATE_TEST_TOKEN_UNSET", SyncToken))

	t.Setenv("MONEYMATE_TEST_TOKEN", "from-env")
	require.Equal(t, "from-env", s.Resolve("MONEYMATE_TEST_TOKEN", SyncToken))

	var none *Store
	require.Equal(t, "", none.Resolve("", SyncToken))
}
