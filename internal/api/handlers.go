package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hashicorp/go-hclog"
	"github.com/kdimtricp/specpair/internal/database"
	"github.com/kdimtricp/specpair/internal/models"
	"github.com/kdimtricp/specpair/internal/pairing"
	"github.com/kdimtricp/specpair/internal/storage"
)

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

type App struct {
	Storage  storage.Storage
	ScanRepo *database.ScanRepository
	Pairer   *pairing.Pairer
	Logger   hclog.Logger
}

type createScanRequest struct {
	Directory string `json:"directory"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Camera int    `json:"camera,omitempty"`
}

type matchedImage struct {
	Index    int      `json:"index"`
	Filepath string   `json:"filepath"`
	Labels   []string `json:"labels"`
}

type matchResponse struct {
	ScanID  string       `json:"scan_id"`
	Label   string       `json:"label"`
	Camera1 matchedImage `json:"camera1"`
	Camera2 matchedImage `json:"camera2"`
}

func (app *App) CreateScanHandler(w http.ResponseWriter, r *http.Request) {
	var req createScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		app.renderError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	dir, err := app.Storage.Resolve(req.Directory)
	if err != nil {
		app.renderError(w, http.StatusBadRequest, "Directory must be inside the images root")
		return
	}

	result, err := app.Pairer.Scan(dir)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, pairing.ErrOrderMismatch) {
			status = http.StatusUnprocessableEntity
		}
		app.logger().Warn("scan failed", "dir", dir, "error", err)
		app.renderError(w, status, err.Error())
		return
	}

	cfg := app.Pairer.Config()
	scan := models.ScanFromResult(result, cfg.Camera1ID, cfg.Camera2ID)
	if err := app.ScanRepo.InsertScan(r.Context(), scan); err != nil {
		app.logger().Error("failed to store scan", "dir", dir, "error", err)
		app.renderError(w, http.StatusInternalServerError, "Failed to save scan")
		return
	}

	app.logger().Info("scan stored", "id", scan.ID, "dir", dir, "images", scan.ImageCount)
	renderJSON(w, http.StatusCreated, scan)
}

func (app *App) ListScansHandler(w http.ResponseWriter, r *http.Request) {
	scans, err := app.ScanRepo.ListScans(r.Context())
	if err != nil {
		app.renderError(w, http.StatusInternalServerError, "Error loading scans")
		return
	}
	renderJSON(w, http.StatusOK, scans)
}

func (app *App) GetScanHandler(w http.ResponseWriter, r *http.Request) {
	scan, ok := app.loadScan(w, r)
	if !ok {
		return
	}
	renderJSON(w, http.StatusOK, scan)
}

func (app *App) DeleteScanHandler(w http.ResponseWriter, r *http.Request) {
	err := app.ScanRepo.DeleteScan(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, database.ErrScanNotFound) {
		app.renderError(w, http.StatusNotFound, "Scan not found")
		return
	}
	if err != nil {
		app.renderError(w, http.StatusInternalServerError, "Failed to delete scan")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *App) FindByLabelHandler(w http.ResponseWriter, r *http.Request) {
	scan, ok := app.loadScan(w, r)
	if !ok {
		return
	}

	// chi matches on RawPath when it is set, leaving the segment escaped.
	label := chi.URLParam(r, "label")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(label)
		if err != nil {
			app.renderError(w, http.StatusBadRequest, "Invalid label")
			return
		}
		label = unescaped
	}

	match, err := app.Pairer.FindByLabel(label, scan.Images(1), scan.Images(2), scan.Labels(1), scan.Labels(2))
	if err != nil {
		var notFound *pairing.LabelNotFoundError
		if errors.As(err, &notFound) {
			renderJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Camera: notFound.Camera})
			return
		}
		app.renderError(w, http.StatusInternalServerError, err.Error())
		return
	}

	renderJSON(w, http.StatusOK, matchResponse{
		ScanID: scan.ID,
		Label:  label,
		Camera1: matchedImage{
			Index:    match.Index1,
			Filepath: match.Camera1.Filepath(),
			Labels:   scan.Camera1[match.Index1].Labels,
		},
		Camera2: matchedImage{
			Index:    match.Index2,
			Filepath: match.Camera2.Filepath(),
			Labels:   scan.Camera2[match.Index2].Labels,
		},
	})
}

func (app *App) StreamImageHandler(w http.ResponseWriter, r *http.Request) {
	app.serveScanFile(w, r, "application/octet-stream", func(rec models.ImageRecord) string {
		return rec.Path
	})
}

func (app *App) StreamHeaderHandler(w http.ResponseWriter, r *http.Request) {
	app.serveScanFile(w, r, "text/plain; charset=utf-8", func(rec models.ImageRecord) string {
		return rec.HeaderPath
	})
}

// serveScanFile streams one file of the image at {camera}/{index}.
func (app *App) serveScanFile(w http.ResponseWriter, r *http.Request, contentType string, pick func(models.ImageRecord) string) {
	scan, ok := app.loadScan(w, r)
	if !ok {
		return
	}

	camera, err := strconv.Atoi(chi.URLParam(r, "camera"))
	if err != nil || (camera != 1 && camera != 2) {
		app.renderError(w, http.StatusNotFound, "Camera must be 1 or 2")
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		app.renderError(w, http.StatusNotFound, "Image not found")
		return
	}
	rec, ok := scan.Record(camera, index)
	if !ok {
		app.renderError(w, http.StatusNotFound, "Image not found")
		return
	}
	path := pick(rec)
	if path == "" {
		app.renderError(w, http.StatusNotFound, "File not recorded for this image")
		return
	}

	stat, err := app.Storage.Stat(path)
	if err != nil {
		app.renderError(w, http.StatusNotFound, "Image file not found")
		return
	}

	file, err := app.Storage.OpenFile(path)
	if err != nil {
		app.renderError(w, http.StatusInternalServerError, "Error accessing image file")
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", contentType)
	http.ServeContent(w, r, filepath.Base(path), stat.ModTime(), file)
}

func (app *App) loadScan(w http.ResponseWriter, r *http.Request) (*models.Scan, bool) {
	scan, err := app.ScanRepo.GetScan(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, database.ErrScanNotFound) {
		app.renderError(w, http.StatusNotFound, "Scan not found")
		return nil, false
	}
	if err != nil {
		app.logger().Error("failed to load scan", "error", err)
		app.renderError(w, http.StatusInternalServerError, "Error loading scan")
		return nil, false
	}
	return scan, true
}

func (app *App) logger() hclog.Logger {
	if app.Logger == nil {
		return hclog.NewNullLogger()
	}
	return app.Logger
}

func (app *App) renderError(w http.ResponseWriter, status int, message string) {
	renderJSON(w, status, errorResponse{Error: message})
}

func renderJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
