package web

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/itac-tools/reportrecon/internal/recon"
	"github.com/itac-tools/reportrecon/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "index.html", map[string]any{})
}

// handleUpload processes the two uploaded files, runs the comparison, and
// renders the comparison page. Inputs live in a temp dir for the duration
// of the request only.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	report, _, err := s.runComparison(w, r)
	if err != nil {
		s.renderPage(w, "index.html", map[string]any{"Error": err.Error()})
		return
	}
	s.renderPage(w, "compare.html", map[string]any{"Report": report})
}

// handleAPICompare is the JSON variant of the upload flow.
func (s *Server) handleAPICompare(w http.ResponseWriter, r *http.Request) {
	report, status, err := s.runComparison(w, r)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// runComparison is the shared upload-validate-compare-record flow. The
// returned status is the HTTP status to report on error.
func (s *Server) runComparison(w http.ResponseWriter, r *http.Request) (*recon.Report, int, error) {
	select {
	case s.compareSem <- struct{}{}:
		defer func() { <-s.compareSem }()
	default:
		return nil, http.StatusServiceUnavailable, eris.New("another comparison is in progress")
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxBytes)
	if err := r.ParseMultipartForm(s.cfg.Upload.MaxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, http.StatusRequestEntityTooLarge, eris.New("upload exceeds the size limit")
		}
		return nil, http.StatusBadRequest, eris.New("invalid multipart form")
	}

	dir, err := os.MkdirTemp(s.cfg.Upload.TempDir, "reportrecon-")
	if err != nil {
		return nil, http.StatusInternalServerError, eris.Wrap(err, "create temp dir")
	}
	defer os.RemoveAll(dir) //nolint:errcheck

	docPath, err := saveUpload(r, "docx_file", dir)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	xlsxPath, err := saveUpload(r, "excel_file", dir)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	if err := recon.ValidateInputs(docPath, xlsxPath); err != nil {
		return nil, http.StatusBadRequest, err
	}

	run, err := s.store.CreateRun(r.Context(), filepath.Base(docPath), filepath.Base(xlsxPath))
	if err != nil {
		return nil, http.StatusInternalServerError, eris.Wrap(err, "record run")
	}

	report, err := recon.ReconcileFiles(docPath, xlsxPath, recon.Options{
		Tolerance:  s.cfg.Compare.Tolerance,
		MaxColumns: s.cfg.Scan.MaxColumns,
	})
	if err != nil {
		if failErr := s.store.FailRun(r.Context(), run.ID, err); failErr != nil {
			zap.L().Error("web: record failed run", zap.String("run", run.ID), zap.Error(failErr))
		}
		zap.L().Error("web: comparison failed", zap.String("run", run.ID), zap.Error(err))
		return nil, http.StatusUnprocessableEntity, eris.New("comparison failed: the uploaded files could not be decoded")
	}

	if err := s.store.CompleteRun(r.Context(), run.ID, report); err != nil {
		zap.L().Error("web: record completed run", zap.String("run", run.ID), zap.Error(err))
	}

	return report, http.StatusOK, nil
}

// saveUpload writes one uploaded form file into dir, keeping its base name.
func saveUpload(r *http.Request, field, dir string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", eris.Errorf("missing upload %q", field)
	}
	defer file.Close() //nolint:errcheck

	name := filepath.Base(header.Filename)
	if name == "" || name == "." {
		return "", eris.Errorf("upload %q has no file name", field)
	}
	path := filepath.Join(dir, name)
	if err := copyUpload(file, path); err != nil {
		return "", err
	}
	return path, nil
}

func copyUpload(file multipart.File, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "save upload")
	}
	defer out.Close() //nolint:errcheck

	if _, err := io.Copy(out, file); err != nil {
		return eris.Wrap(err, "save upload")
	}
	return nil
}

func (s *Server) handleRunsPage(w http.ResponseWriter, r *http.Request) {
	runs, err := s.listRuns(r)
	if err != nil {
		s.renderPage(w, "runs.html", map[string]any{"Error": err.Error()})
		return
	}
	s.renderPage(w, "runs.html", map[string]any{"Runs": runs})
}

func (s *Server) handleRunPage(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.GetRun(r.Context(), chi.URLParam(r, "runID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	data := map[string]any{"Run": run}
	if len(run.Result) > 0 {
		var report recon.Report
		if err := json.Unmarshal(run.Result, &report); err == nil {
			data["Report"] = &report
		}
	}
	s.renderPage(w, "run.html", data)
}

func (s *Server) handleAPIRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.listRuns(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleAPIRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.GetRun(r.Context(), chi.URLParam(r, "runID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) listRuns(r *http.Request) ([]store.Run, error) {
	filter := store.RunFilter{
		Status: store.RunStatus(r.URL.Query().Get("status")),
		Limit:  50,
	}
	return s.store.ListRuns(r.Context(), filter)
}

func (s *Server) renderPage(w http.ResponseWriter, name string, data map[string]any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		zap.L().Error("web: render template", zap.String("template", name), zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("web: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}
