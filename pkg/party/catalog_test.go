package party

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRecord(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func testDirs(t *testing.T) (senders, recipients string) {
	t.Helper()
	senders = t.TempDir()
	recipients = t.TempDir()
	writeRecord(t, senders, "default.json", `{"name": "Jane Doe", "city": "Springfield"}`)
	writeRecord(t, senders, "studio.json", `{"name": "The Studio"}`)
	writeRecord(t, recipients, "default.json", `{"name": "Walk-in", "company": "Walk-in"}`)
	writeRecord(t, recipients, "spective.json", `{"name": "John Smith", "company": "Spective Inc"}`)
	return senders, recipients
}

func TestLoadCatalog(t *testing.T) {
	senders, recipients := testDirs(t)
	cat, err := LoadCatalog(senders, recipients)
	require.NoError(t, err)

	t.Run("lookup by file stem", func(t *testing.T) {
		r, err := cat.Recipient("spective")
		require.NoError(t, err)
		assert.Equal(t, "Spective Inc", r.Company)
	})

	t.Run("lookup by declared name", func(t *testing.T) {
		s, err := cat.Sender("The Studio")
		require.NoError(t, err)
		assert.Equal(t, "The Studio", s.Name)
	})

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		s, err := cat.Sender("STUDIO")
		require.NoError(t, err)
		assert.Equal(t, "The Studio", s.Name)
	})

	t.Run("unknown name falls back to default", func(t *testing.T) {
		s, err := cat.Sender("nobody")
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", s.Name)

		r, err := cat.Recipient("nobody")
		require.NoError(t, err)
		assert.Equal(t, "Walk-in", r.Company)
	})
}

func TestLoadCatalogErrors(t *testing.T) {
	t.Run("malformed record carries its path", func(t *testing.T) {
		senders := t.TempDir()
		writeRecord(t, senders, "broken.json", `not json`)
		_, err := LoadCatalog(senders, t.TempDir())
		require.Error(t, err)
		var mr *MalformedRecordError
		require.True(t, errors.As(err, &mr))
		assert.Contains(t, mr.Path, "broken.json")
	})

	t.Run("no record and no default", func(t *testing.T) {
		cat, err := LoadCatalog(t.TempDir(), t.TempDir())
		require.NoError(t, err)
		_, err = cat.Sender("anyone")
		assert.Error(t, err)
	})
}
