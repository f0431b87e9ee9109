package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	csvreader "accessboard/backend/services/import-service/internal/csv"
	"accessboard/backend/services/import-service/internal/repository"
	"accessboard/backend/services/import-service/internal/service"
)

type stubImporter struct {
	filename string
	body     string
	result   service.ImportResult
	err      error
}

func (s *stubImporter) ImportCSV(ctx context.Context, filename string, src io.Reader) (service.ImportResult, error) {
	s.filename = filename
	data, _ := io.ReadAll(src)
	s.body = string(data)
	return s.result, s.err
}

func TestImportHandlerRawBody(t *testing.T) {
	importer := &stubImporter{result: service.ImportResult{BatchID: "b1", Imported: 3, Skipped: 1}}
	handler := NewImportHandler(importer, 1<<20, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/imports", strings.NewReader("badge;date\n"))
	req.Header.Set("X-Import-Filename", "export.csv")
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "export.csv", importer.filename)

	var result service.ImportResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, "b1", result.BatchID)
	assert.Equal(t, 3, result.Imported)
}

func TestImportHandlerMultipart(t *testing.T) {
	importer := &stubImporter{result: service.ImportResult{BatchID: "b2"}}
	handler := NewImportHandler(importer, 1<<20, zap.NewNop())

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "journal.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("badge;date\n1001;02/01/2024\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/imports", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "journal.csv", importer.filename)
	assert.Contains(t, importer.body, "1001")
}

func TestImportHandlerUnrecognizedColumns(t *testing.T) {
	importer := &stubImporter{err: csvreader.ErrNoRecognizedColumns}
	handler := NewImportHandler(importer, 1<<20, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/imports", strings.NewReader("foo;bar\n"))
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportHandlerStorageError(t *testing.T) {
	importer := &stubImporter{err: errors.New("db down")}
	handler := NewImportHandler(importer, 1<<20, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/imports", strings.NewReader("badge;date\n"))
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type stubHistory struct {
	limit   int
	batches []repository.ImportBatch
}

func (s *stubHistory) History(ctx context.Context, limit int) ([]repository.ImportBatch, error) {
	s.limit = limit
	return s.batches, nil
}

func TestHistoryHandlerDefaultLimit(t *testing.T) {
	source := &stubHistory{batches: []repository.ImportBatch{{ID: "b1"}}}
	handler := NewHistoryHandler(source, 50, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/imports/history", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50, source.limit)
}

func TestHistoryHandlerBadLimit(t *testing.T) {
	handler := NewHistoryHandler(&stubHistory{}, 50, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/imports/history?limit=zero", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryHandlerEmptyIsNotNull(t *testing.T) {
	handler := NewHistoryHandler(&stubHistory{}, 50, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/imports/history", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"batches":[]`)
}
