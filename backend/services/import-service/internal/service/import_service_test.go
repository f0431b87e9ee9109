package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"accessboard/backend/libs/presence"
	"accessboard/backend/services/import-service/internal/repository"
)

type fakeStore struct {
	rows    []repository.AccessLogRow
	batchID string
	batch   repository.ImportBatch
	batches []repository.ImportBatch

	insertErr error
}

func (f *fakeStore) InsertAccessLogs(ctx context.Context, batchID string, rows []repository.AccessLogRow) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.batchID = batchID
	f.rows = rows
	return nil
}

func (f *fakeStore) InsertBatch(ctx context.Context, batch repository.ImportBatch) error {
	f.batch = batch
	return nil
}

func (f *fakeStore) ListBatches(ctx context.Context, limit int) ([]repository.ImportBatch, error) {
	return f.batches, nil
}

type fakeNotifier struct {
	events []presence.AccessEvent
	err    error
	calls  int
}

func (f *fakeNotifier) NotifyEvents(ctx context.Context, events []presence.AccessEvent) error {
	f.calls++
	f.events = events
	return f.err
}

const sampleCSV = "Numéro de badge;Date évènements;Heure évènements;Centrale;Lecteur;Nature Evenement;Nom;Prénom;Statut;Groupe\n" +
	"1001;02/01/2024;08:30:00;C1;Porte Entree;Acces autorise entree;Martin;Paul;OK;Ventes\n" +
	"1001;02/01/2024;17:00:00;C1;Porte Sortie;Acces autorise sortie;Martin;Paul;OK;Ventes\n" +
	";02/01/2024;09:00:00;C1;Porte Entree;Acces autorise entree;;;OK;Ventes\n"

func TestImportCSVStoresRowsAndBatch(t *testing.T) {
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	svc := NewImportService(store, notifier, nil, zap.NewNop())

	result, err := svc.ImportCSV(context.Background(), "export.csv", strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.NotEmpty(t, result.BatchID)

	require.Len(t, store.rows, 2)
	assert.Equal(t, result.BatchID, store.batchID)
	assert.Equal(t, "1001", store.rows[0].Record.BadgeNumber)
	assert.Equal(t, "export.csv", store.batch.Filename)
	assert.Equal(t, 2, store.batch.Imported)
	assert.Equal(t, 1, store.batch.Skipped)
}

func TestImportCSVNotifiesWithNormalizedEvents(t *testing.T) {
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	svc := NewImportService(store, notifier, nil, zap.NewNop())

	_, err := svc.ImportCSV(context.Background(), "export.csv", strings.NewReader(sampleCSV))
	require.NoError(t, err)

	require.Len(t, notifier.events, 2)
	assert.Equal(t, presence.DirectionEntry, notifier.events[0].Direction)
	assert.Equal(t, presence.DirectionExit, notifier.events[1].Direction)
}

func TestImportCSVNotifyFailureDoesNotFailImport(t *testing.T) {
	store := &fakeStore{}
	notifier := &fakeNotifier{err: errors.New("presence unreachable")}
	svc := NewImportService(store, notifier, nil, zap.NewNop())

	result, err := svc.ImportCSV(context.Background(), "export.csv", strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, notifier.calls)
}

func TestImportCSVStorageErrorFailsImport(t *testing.T) {
	store := &fakeStore{insertErr: errors.New("db down")}
	svc := NewImportService(store, nil, nil, zap.NewNop())

	_, err := svc.ImportCSV(context.Background(), "export.csv", strings.NewReader(sampleCSV))
	require.Error(t, err)
}

func TestImportCSVEmptyFile(t *testing.T) {
	store := &fakeStore{}
	svc := NewImportService(store, nil, nil, zap.NewNop())

	header := "Numéro de badge;Date évènements;Heure évènements\n"
	_, err := svc.ImportCSV(context.Background(), "empty.csv", strings.NewReader(header))
	require.ErrorIs(t, err, ErrEmptyImport)
}

func TestHistory(t *testing.T) {
	store := &fakeStore{batches: []repository.ImportBatch{{ID: "b1"}, {ID: "b2"}}}
	svc := NewImportService(store, nil, nil, zap.NewNop())

	batches, err := svc.History(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, batches, 2)
}
