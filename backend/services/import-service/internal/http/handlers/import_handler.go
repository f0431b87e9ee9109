package handlers

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"

	csvreader "accessboard/backend/services/import-service/internal/csv"
	"accessboard/backend/services/import-service/internal/service"
)

// Importer runs an upload through the ingest pipeline.
type Importer interface {
	ImportCSV(ctx context.Context, filename string, src io.Reader) (service.ImportResult, error)
}

// NewImportHandler returns POST /imports. The export can arrive either as a
// multipart form with a "file" part or as a raw body with the filename in
// X-Import-Filename.
func NewImportHandler(importer Importer, maxBytes int64, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

		src, filename, cleanup, err := uploadSource(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		defer cleanup()

		result, err := importer.ImportCSV(r.Context(), filename, src)
		if err != nil {
			var maxErr *http.MaxBytesError
			switch {
			case errors.As(err, &maxErr):
				writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
			case errors.Is(err, csvreader.ErrNoRecognizedColumns), errors.Is(err, service.ErrEmptyImport):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				logger.Error("import failed", zap.String("filename", filename), zap.Error(err))
				writeError(w, http.StatusInternalServerError, "import failed")
			}
			return
		}

		writeJSON(w, http.StatusCreated, result)
	}
}

func uploadSource(r *http.Request) (io.Reader, string, func(), error) {
	noop := func() {}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err == nil && strings.HasPrefix(mediaType, "multipart/") {
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", noop, errors.New("multipart upload requires a file part")
		}
		return file, header.Filename, func() { _ = file.Close() }, nil
	}

	filename := strings.TrimSpace(r.Header.Get("X-Import-Filename"))
	if filename == "" {
		filename = "upload.csv"
	}
	return r.Body, filename, noop, nil
}
