package httpapi

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/casiec/internal/common"
	"github.com/dmitrijs2005/casiec/internal/logging"
	"github.com/dmitrijs2005/casiec/internal/server/models"
	"github.com/dmitrijs2005/casiec/internal/server/services"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 10 << 20

// form fields sent as "true"/"false" in multipart bodies
var boolFields = map[string]bool{"isRegistered": true, "isManual": true, "opened": true}

// ContentService is the record store the collection endpoints drive.
type ContentService interface {
	List(ctx context.Context, c models.Collection) ([]models.Record, error)
	Get(ctx context.Context, c models.Collection, id string) (*models.Record, error)
	Create(ctx context.Context, c models.Collection, data map[string]any, img *services.Upload) (*models.Record, error)
	Update(ctx context.Context, c models.Collection, id string, patch map[string]any, img *services.Upload) (*models.Record, error)
	Delete(ctx context.Context, c models.Collection, id string) error
	MarkOpened(ctx context.Context, id string) (*models.Record, error)
}

type ContentHandler struct {
	svc    ContentService
	logger logging.Logger
}

func NewContentHandler(svc ContentService, logger logging.Logger) *ContentHandler {
	return &ContentHandler{svc: svc, logger: logger}
}

// recordJSON flattens a record into the shape clients see: its data plus
// id, createdAt and updatedAt.
func recordJSON(r models.Record) map[string]any {
	out := make(map[string]any, len(r.Data)+3)
	for k, v := range r.Data {
		out[k] = v
	}
	out["id"] = r.ID
	out["createdAt"] = r.CreatedAt.UTC().Format(time.RFC3339Nano)
	out["updatedAt"] = r.UpdatedAt.UTC().Format(time.RFC3339Nano)
	return out
}

func (h *ContentHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusOf(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(r.Context(), "content request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeError(w, status, msg)
}

func (h *ContentHandler) List(c models.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := h.svc.List(r.Context(), c)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		out := make([]map[string]any, 0, len(recs))
		for _, rec := range recs {
			out = append(out, recordJSON(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (h *ContentHandler) Get(c models.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := h.svc.Get(r.Context(), c, chi.URLParam(r, "id"))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, recordJSON(*rec))
	}
}

func (h *ContentHandler) Create(c models.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, img, err := readBody(w, r)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		rec, err := h.svc.Create(r.Context(), c, data, img)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, recordJSON(*rec))
	}
}

func (h *ContentHandler) Update(c models.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, img, err := readBody(w, r)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		rec, err := h.svc.Update(r.Context(), c, chi.URLParam(r, "id"), data, img)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, recordJSON(*rec))
	}
}

func (h *ContentHandler) Delete(c models.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.svc.Delete(r.Context(), c, chi.URLParam(r, "id")); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *ContentHandler) MarkOpened(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.MarkOpened(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recordJSON(*rec))
}

// readBody accepts a JSON object or multipart/form-data with an optional
// "image" file part.
func readBody(w http.ResponseWriter, r *http.Request) (map[string]any, *services.Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		data, err := decode[map[string]any](r.Body)
		if err != nil {
			return nil, nil, err
		}
		if data == nil {
			data = map[string]any{}
		}
		return data, nil, nil
	}

	if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
		return nil, nil, fmt.Errorf("%w: malformed form body: %w", common.ErrorValidation, err)
	}
	data := make(map[string]any, len(r.MultipartForm.Value))
	for k, vs := range r.MultipartForm.Value {
		if len(vs) == 0 {
			continue
		}
		if boolFields[k] {
			if b, err := strconv.ParseBool(vs[0]); err == nil {
				data[k] = b
				continue
			}
		}
		data[k] = vs[0]
	}

	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return data, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: unreadable image: %w", common.ErrorValidation, err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: unreadable image: %w", common.ErrorValidation, err)
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(raw)
	}
	return data, &services.Upload{FileName: header.Filename, ContentType: contentType, Data: raw}, nil
}
