package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmcosta/barbershop-api/internal/model"
)

func TestWithinTxCommitsJoinedWrites(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTxManager(db)
	repo := NewOutboxRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO outbox_events").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tm.WithinTx(context.Background(), func(ctx context.Context) error {
		return repo.Create(ctx, &model.OutboxEvent{
			EventType: model.EventOrderCreated,
			Payload:   []byte(`{}`),
		})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTxManager(db)
	repo := NewOutboxRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO outbox_events").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	failed := errors.New("second write failed")
	err := tm.WithinTx(context.Background(), func(ctx context.Context) error {
		if err := repo.Create(ctx, &model.OutboxEvent{
			EventType: model.EventOrderCreated,
			Payload:   []byte(`{}`),
		}); err != nil {
			return err
		}
		return failed
	})
	require.ErrorIs(t, err, failed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTxWritesOutsideStillUsePool(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOutboxRepository(db)

	mock.ExpectExec("INSERT INTO outbox_events").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &model.OutboxEvent{
		EventType: model.EventOrderCreated,
		Payload:   []byte(`{}`),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
