// Package batch renders every job document in a directory, one job at a
// time.
package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/invoicing-service/pkg/jobfile"
	"github.com/invoicing-service/pkg/party"
	"github.com/invoicing-service/pkg/pdf"
)

// Runner drives sequential batch rendering. Failures are isolated per
// job; one malformed document never aborts the rest of the batch.
type Runner struct {
	Catalog  *party.Catalog
	Renderer *pdf.Renderer
	Log      *zap.Logger
}

// Summary reports the outcome of one batch run.
type Summary struct {
	Rendered int
	Failed   int
}

// Run renders every *.json job document under jobsDir. It returns an
// error only when the directory itself cannot be processed.
func (r *Runner) Run(jobsDir string) (Summary, error) {
	log := r.Log.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("jobs_dir", jobsDir),
	)

	if _, err := os.Stat(jobsDir); err != nil {
		return Summary{}, fmt.Errorf("jobs dir: %w", err)
	}
	paths, err := filepath.Glob(filepath.Join(jobsDir, "*.json"))
	if err != nil {
		return Summary{}, fmt.Errorf("scan jobs dir %s: %w", jobsDir, err)
	}

	var sum Summary
	for _, path := range paths {
		out, err := r.renderOne(path)
		if err != nil {
			log.Warn("job skipped", zap.String("job", path), zap.Error(err))
			sum.Failed++
			continue
		}
		log.Info("invoice rendered", zap.String("job", path), zap.String("output", out))
		sum.Rendered++
	}
	log.Info("batch finished",
		zap.Int("rendered", sum.Rendered),
		zap.Int("failed", sum.Failed),
	)
	return sum, nil
}

func (r *Runner) renderOne(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	rec, err := jobfile.Decode(f)
	if err != nil {
		return "", err
	}
	job, err := rec.Build(r.Catalog)
	if err != nil {
		return "", err
	}
	return r.Renderer.RenderFile(job)
}
