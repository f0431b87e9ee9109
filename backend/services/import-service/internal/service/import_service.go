package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"accessboard/backend/libs/presence"
	csvreader "accessboard/backend/services/import-service/internal/csv"
	"accessboard/backend/services/import-service/internal/metrics"
	"accessboard/backend/services/import-service/internal/repository"
)

// ErrEmptyImport means the file parsed but contained no usable rows at all.
var ErrEmptyImport = errors.New("import: no usable rows")

// ImportStore persists validated rows and batch history.
type ImportStore interface {
	InsertAccessLogs(ctx context.Context, batchID string, rows []repository.AccessLogRow) error
	InsertBatch(ctx context.Context, batch repository.ImportBatch) error
	ListBatches(ctx context.Context, limit int) ([]repository.ImportBatch, error)
}

// EventNotifier pushes imported events downstream; notification failures
// never fail an import.
type EventNotifier interface {
	NotifyEvents(ctx context.Context, events []presence.AccessEvent) error
}

// ImportResult summarizes one processed export.
type ImportResult struct {
	BatchID  string `json:"batch_id"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// ImportService runs the CSV ingest pipeline: parse, validate through the
// normalizer, store, record history, notify.
type ImportService struct {
	reader     *csvreader.Reader
	store      ImportStore
	notifier   EventNotifier
	normalizer *presence.Normalizer
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewImportService builds service. Notifier and metrics may be nil.
func NewImportService(store ImportStore, notifier EventNotifier, m *metrics.Metrics, logger *zap.Logger) *ImportService {
	return &ImportService{
		reader:     csvreader.NewReader(),
		store:      store,
		notifier:   notifier,
		normalizer: presence.NewNormalizer(nil),
		metrics:    m,
		logger:     logger,
	}
}

// ImportCSV processes one export file. Malformed rows are skipped and
// counted, not fatal; the import as a whole fails only on unreadable input
// or storage errors.
func (s *ImportService) ImportCSV(ctx context.Context, filename string, src io.Reader) (ImportResult, error) {
	records, err := s.reader.Parse(src)
	if err != nil {
		return ImportResult{}, err
	}

	rows := make([]repository.AccessLogRow, 0, len(records))
	events := make([]presence.AccessEvent, 0, len(records))
	skipped := 0
	for _, rec := range records {
		event, err := s.normalizer.Record(rec)
		if err != nil {
			skipped++
			s.logger.Debug("skipping malformed row", zap.Error(err))
			continue
		}
		rows = append(rows, repository.AccessLogRow{Record: rec, Timestamp: event.Timestamp})
		events = append(events, event)
	}

	if len(rows) == 0 && skipped == 0 {
		return ImportResult{}, ErrEmptyImport
	}

	batch := repository.ImportBatch{
		ID:        uuid.NewString(),
		Filename:  filename,
		Imported:  len(rows),
		Skipped:   skipped,
		CreatedAt: time.Now().UTC(),
	}

	if len(rows) > 0 {
		if err := s.store.InsertAccessLogs(ctx, batch.ID, rows); err != nil {
			return ImportResult{}, err
		}
	}
	if err := s.store.InsertBatch(ctx, batch); err != nil {
		return ImportResult{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordsImported.Add(float64(len(rows)))
		s.metrics.RecordsSkipped.Add(float64(skipped))
		s.metrics.Batches.Inc()
	}

	if s.notifier != nil && len(events) > 0 {
		if err := s.notifier.NotifyEvents(ctx, events); err != nil {
			s.logger.Warn("failed to notify presence service", zap.Error(err))
		}
	}

	s.logger.Info("import completed",
		zap.String("batch_id", batch.ID),
		zap.String("filename", filename),
		zap.Int("imported", len(rows)),
		zap.Int("skipped", skipped))

	return ImportResult{BatchID: batch.ID, Imported: len(rows), Skipped: skipped}, nil
}

// History returns recent import batches.
func (s *ImportService) History(ctx context.Context, limit int) ([]repository.ImportBatch, error) {
	return s.store.ListBatches(ctx, limit)
}
