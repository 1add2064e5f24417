package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmcosta/barbershop-api/internal/model"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestAppointmentRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	apt := &model.Appointment{
		ClientID:  uuid.New(),
		BarberID:  uuid.New(),
		ServiceID: uuid.New(),
		StartTime: time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC),
		Status:    model.AppointmentStatusPending,
	}

	mock.ExpectExec("INSERT INTO appointments").
		WithArgs(
			sqlmock.AnyArg(), apt.ClientID, apt.BarberID, apt.ServiceID,
			apt.StartTime, apt.Status, apt.Notes,
			sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), apt)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, apt.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepositoryListBookedForDay(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	day := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)
	dayStart := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	barberID := uuid.New()
	aptID := uuid.New()
	start := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "barber_id", "start_time", "duration"}).
		AddRow(aptID, barberID, start, 45)

	// The day filter is normalized to midnight regardless of the
	// time-of-day on the input.
	mock.ExpectQuery("SELECT a.id, a.barber_id, a.start_time, s.duration").
		WithArgs(dayStart, dayEnd).
		WillReturnRows(rows)

	booked, err := repo.ListBookedForDay(context.Background(), day, nil)
	require.NoError(t, err)
	require.Len(t, booked, 1)
	assert.Equal(t, barberID, booked[0].BarberID)
	assert.Equal(t, 45, booked[0].DurationMinutes)
	assert.Equal(t, start.Add(45*time.Minute), booked[0].End())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepositoryListBookedForDayBarberFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	day := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	barberID := uuid.New()

	mock.ExpectQuery("SELECT a.id, a.barber_id, a.start_time, s.duration").
		WithArgs(day, day.Add(24*time.Hour), barberID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "barber_id", "start_time", "duration"}))

	booked, err := repo.ListBookedForDay(context.Background(), day, &barberID)
	require.NoError(t, err)
	assert.Empty(t, booked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepositoryCheckConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	barberID := uuid.New()
	start := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(barberID, start, end).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	hasConflict, err := repo.CheckConflict(context.Background(), barberID, start, end, nil)
	require.NoError(t, err)
	assert.True(t, hasConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepositoryUpdateStatusNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	id := uuid.New()
	mock.ExpectExec("UPDATE appointments").
		WithArgs(model.AppointmentStatusCancelled, sqlmock.AnyArg(), sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	reason := "no show"
	err := repo.UpdateStatus(context.Background(), id, model.AppointmentStatusCancelled, &reason)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
