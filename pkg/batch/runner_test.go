package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/invoicing-service/pkg/party"
	"github.com/invoicing-service/pkg/pdf"
)

func write(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func testRunner(t *testing.T) (*Runner, string, string) {
	t.Helper()
	senders := t.TempDir()
	recipients := t.TempDir()
	write(t, senders, "default.json", `{"name": "Jane Doe"}`)
	write(t, recipients, "acme.json", `{"name": "John Smith", "company": "Acme"}`)
	write(t, recipients, "default.json", `{"name": "Walk-in", "company": "Walk-in"}`)
	cat, err := party.LoadCatalog(senders, recipients)
	require.NoError(t, err)

	out := t.TempDir()
	return &Runner{
		Catalog:  cat,
		Renderer: pdf.NewRenderer(pdf.Config{OutputDir: out}),
		Log:      zap.NewNop(),
	}, t.TempDir(), out
}

const goodJob = `{
	"date": "2022-07-15",
	"sender": "jane doe",
	"recipient": "acme",
	"line_items": [{"description": "Design", "hours": 10, "rate": 50}]
}`

func TestRun(t *testing.T) {
	t.Run("renders every job", func(t *testing.T) {
		r, jobs, out := testRunner(t)
		write(t, jobs, "a.json", goodJob)
		write(t, jobs, "b.json", `{
			"date": "2022-08-01",
			"sender": "jane doe",
			"recipient": "acme",
			"line_items": []
		}`)

		sum, err := r.Run(jobs)
		require.NoError(t, err)
		assert.Equal(t, Summary{Rendered: 2, Failed: 0}, sum)

		entries, err := os.ReadDir(out)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("one bad job does not abort the batch", func(t *testing.T) {
		r, jobs, out := testRunner(t)
		write(t, jobs, "bad.json", `not json at all`)
		write(t, jobs, "good.json", goodJob)
		write(t, jobs, "missing-date.json", `{"sender": "jane doe", "recipient": "acme"}`)

		sum, err := r.Run(jobs)
		require.NoError(t, err)
		assert.Equal(t, Summary{Rendered: 1, Failed: 2}, sum)

		entries, err := os.ReadDir(out)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("empty directory", func(t *testing.T) {
		r, jobs, _ := testRunner(t)
		sum, err := r.Run(jobs)
		require.NoError(t, err)
		assert.Equal(t, Summary{}, sum)
	})

	t.Run("missing directory is an error", func(t *testing.T) {
		r, jobs, _ := testRunner(t)
		_, err := r.Run(filepath.Join(jobs, "nope"))
		assert.Error(t, err)
	})
}
