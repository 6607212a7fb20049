// Package server exposes invoice generation over HTTP.
package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/invoicing-service/pkg/jobfile"
	"github.com/invoicing-service/pkg/party"
	"github.com/invoicing-service/pkg/pdf"
)

// Server renders invoices for job documents posted over HTTP. Each
// rendered document is also persisted to the renderer's output directory.
type Server struct {
	log      *zap.Logger
	catalog  *party.Catalog
	renderer *pdf.Renderer
}

// New builds a server around the shared catalog and renderer.
func New(log *zap.Logger, cat *party.Catalog, r *pdf.Renderer) *Server {
	return &Server{log: log, catalog: cat, renderer: r}
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/invoices", s.handleGenerate).Methods(http.MethodPost)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

// handleGenerate accepts a job document, renders it, and returns the PDF
// as an attachment. Syntactic failures are 400s, validation failures
// 422s, render failures 500s.
func (s *Server) handleGenerate(w http.ResponseWriter, req *http.Request) {
	rec, err := jobfile.Decode(req.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	job, err := rec.Build(s.catalog)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	path, err := s.renderer.RenderFile(job)
	if err != nil {
		s.log.Error("render failed", zap.Error(err))
		http.Error(w, "could not render invoice", http.StatusInternalServerError)
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Error("read rendered invoice", zap.String("path", path), zap.Error(err))
		http.Error(w, "could not render invoice", http.StatusInternalServerError)
		return
	}

	s.log.Info("invoice rendered",
		zap.Int64("invoice_number", job.InvoiceNumber()),
		zap.String("output", path),
	)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}
