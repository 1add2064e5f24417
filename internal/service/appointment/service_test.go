package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmcosta/barbershop-api/internal/model"
	apperrors "github.com/tmcosta/barbershop-api/pkg/errors"
)

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
	booked       []model.BookedAppointment
	bookedErr    error
	conflict     bool
	conflictErr  error

	lastDayFilter *uuid.UUID
	created       []*model.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, apt *model.Appointment) error {
	apt.ID = uuid.New()
	f.appointments[apt.ID] = apt
	f.created = append(f.created, apt)
	return nil
}

func (f *fakeAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, ok := f.appointments[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return apt, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.AppointmentStatus, reason *string) error {
	apt, ok := f.appointments[id]
	if !ok {
		return errors.New("not found")
	}
	apt.Status = status
	apt.CancelReason = reason
	return nil
}

func (f *fakeAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.appointments, id)
	return nil
}

func (f *fakeAppointmentRepo) List(_ context.Context, _ *model.AppointmentFilters) ([]*model.Appointment, error) {
	out := make([]*model.Appointment, 0, len(f.appointments))
	for _, apt := range f.appointments {
		out = append(out, apt)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListBookedForDay(_ context.Context, _ time.Time, barberID *uuid.UUID) ([]model.BookedAppointment, error) {
	f.lastDayFilter = barberID
	return f.booked, f.bookedErr
}

func (f *fakeAppointmentRepo) CheckConflict(_ context.Context, _ uuid.UUID, _, _ time.Time, _ *uuid.UUID) (bool, error) {
	return f.conflict, f.conflictErr
}

type fakeBarberRepo struct {
	barbers   map[uuid.UUID]*model.Barber
	available []*model.Barber
	listErr   error
}

func newFakeBarberRepo() *fakeBarberRepo {
	return &fakeBarberRepo{barbers: make(map[uuid.UUID]*model.Barber)}
}

func (f *fakeBarberRepo) add(available bool) *model.Barber {
	b := &model.Barber{Base: model.Base{ID: uuid.New()}, Name: "Barber", Available: available}
	f.barbers[b.ID] = b
	if available {
		f.available = append(f.available, b)
	}
	return b
}

func (f *fakeBarberRepo) Create(_ context.Context, b *model.Barber) error { return nil }

func (f *fakeBarberRepo) Get(_ context.Context, id uuid.UUID) (*model.Barber, error) {
	b, ok := f.barbers[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return b, nil
}

func (f *fakeBarberRepo) Update(_ context.Context, _ *model.Barber) error { return nil }
func (f *fakeBarberRepo) Delete(_ context.Context, _ uuid.UUID) error     { return nil }

func (f *fakeBarberRepo) List(_ context.Context) ([]*model.Barber, error) {
	out := make([]*model.Barber, 0, len(f.barbers))
	for _, b := range f.barbers {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBarberRepo) ListAvailable(_ context.Context) ([]*model.Barber, error) {
	return f.available, f.listErr
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*model.Service
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[uuid.UUID]*model.Service)}
}

func (f *fakeServiceRepo) add(durationMin int) *model.Service {
	s := &model.Service{Base: model.Base{ID: uuid.New()}, Name: "Cut", Duration: durationMin, Price: 15}
	f.services[s.ID] = s
	return s
}

func (f *fakeServiceRepo) Create(_ context.Context, _ *model.Service) error { return nil }

func (f *fakeServiceRepo) Get(_ context.Context, id uuid.UUID) (*model.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (f *fakeServiceRepo) Update(_ context.Context, _ *model.Service) error { return nil }
func (f *fakeServiceRepo) Delete(_ context.Context, _ uuid.UUID) error      { return nil }
func (f *fakeServiceRepo) List(_ context.Context) ([]*model.Service, error) { return nil, nil }

type fakeOutboxRepo struct {
	events     []*model.OutboxEvent
	failCreate bool
}

func (f *fakeOutboxRepo) Create(_ context.Context, e *model.OutboxEvent) error {
	if f.failCreate {
		return errors.New("outbox insert failed")
	}
	f.events = append(f.events, e)
	return nil
}

func (f *fakeOutboxRepo) GetPendingEvents(_ context.Context, _ int) ([]*model.OutboxEvent, error) {
	return f.events, nil
}

func (f *fakeOutboxRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ model.OutboxStatus, _ *string) error {
	return nil
}

func (f *fakeOutboxRepo) DeleteProcessedBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

// fakeTxManager mimics transaction semantics over the in-memory fakes:
// when fn fails, every write made inside it is undone.
type fakeTxManager struct {
	appts  *fakeAppointmentRepo
	outbox *fakeOutboxRepo
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	apptsBefore := make(map[uuid.UUID]model.Appointment, len(m.appts.appointments))
	for id, apt := range m.appts.appointments {
		apptsBefore[id] = *apt
	}
	createdBefore := len(m.appts.created)
	eventsBefore := len(m.outbox.events)

	if err := fn(ctx); err != nil {
		m.appts.appointments = make(map[uuid.UUID]*model.Appointment, len(apptsBefore))
		for id, apt := range apptsBefore {
			restored := apt
			m.appts.appointments[id] = &restored
		}
		m.appts.created = m.appts.created[:createdBefore]
		m.outbox.events = m.outbox.events[:eventsBefore]
		return err
	}
	return nil
}

func newTestService() (*Service, *fakeAppointmentRepo, *fakeBarberRepo, *fakeServiceRepo, *fakeOutboxRepo) {
	appts := newFakeAppointmentRepo()
	barbers := newFakeBarberRepo()
	services := newFakeServiceRepo()
	outbox := &fakeOutboxRepo{}
	tx := &fakeTxManager{appts: appts, outbox: outbox}
	svc := NewService(appts, barbers, services, outbox, tx, DefaultBusinessHours(), nil)
	return svc, appts, barbers, services, outbox
}

func TestAvailableSlotsRejectsNonPositiveDuration(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.AvailableSlots(context.Background(), testDay, 0, AnyBarber())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestAvailableSlotsRosterFetchFailure(t *testing.T) {
	svc, _, barbers, _, _ := newTestService()
	barbers.listErr = errors.New("connection refused")

	_, err := svc.AvailableSlots(context.Background(), testDay, 30, AnyBarber())
	require.Error(t, err)

	// A collaborator failure must surface as an error, never as an
	// all-available result.
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrUnavailable, appErr.Code)
}

func TestAvailableSlotsAppointmentFetchFailure(t *testing.T) {
	svc, appts, barbers, _, _ := newTestService()
	barbers.add(true)
	appts.bookedErr = errors.New("timeout")

	_, err := svc.AvailableSlots(context.Background(), testDay, 30, AnyBarber())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrUnavailable, appErr.Code)
}

func TestAvailableSlotsSpecificBarberFiltersFetch(t *testing.T) {
	svc, appts, barbers, _, _ := newTestService()
	b := barbers.add(true)

	slots, err := svc.AvailableSlots(context.Background(), testDay, 30, SpecificBarber(b.ID))
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	require.NotNil(t, appts.lastDayFilter)
	assert.Equal(t, b.ID, *appts.lastDayFilter)
}

func TestAvailableSlotsAnyBarberEmptyRoster(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	slots, err := svc.AvailableSlots(context.Background(), testDay, 30, AnyBarber())
	require.NoError(t, err)
	require.Len(t, slots, 20)
	for _, s := range slots {
		assert.False(t, s.Available)
	}
}

func TestCreateAppointmentRejectsPastDate(t *testing.T) {
	svc, _, barbers, services, _ := newTestService()
	b := barbers.add(true)
	cut := services.add(30)

	_, err := svc.CreateAppointment(context.Background(), uuid.New(), &model.CreateAppointmentRequest{
		BarberID:  b.ID.String(),
		ServiceID: cut.ID,
		StartTime: time.Now().Add(-time.Hour),
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestCreateAppointmentConflict(t *testing.T) {
	svc, appts, barbers, services, _ := newTestService()
	b := barbers.add(true)
	cut := services.add(30)
	appts.conflict = true

	_, err := svc.CreateAppointment(context.Background(), uuid.New(), &model.CreateAppointmentRequest{
		BarberID:  b.ID.String(),
		ServiceID: cut.ID,
		StartTime: time.Now().Add(24 * time.Hour),
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
	assert.Empty(t, appts.created)
}

func TestCreateAppointmentUnavailableBarber(t *testing.T) {
	svc, _, barbers, services, _ := newTestService()
	b := barbers.add(false)
	cut := services.add(30)

	_, err := svc.CreateAppointment(context.Background(), uuid.New(), &model.CreateAppointmentRequest{
		BarberID:  b.ID.String(),
		ServiceID: cut.ID,
		StartTime: time.Now().Add(24 * time.Hour),
	})
	require.Error(t, err)
}

func TestCreateAppointmentSuccess(t *testing.T) {
	svc, appts, barbers, services, outbox := newTestService()
	b := barbers.add(true)
	cut := services.add(30)
	clientID := uuid.New()

	apt, err := svc.CreateAppointment(context.Background(), clientID, &model.CreateAppointmentRequest{
		BarberID:  b.ID.String(),
		ServiceID: cut.ID,
		StartTime: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	assert.Equal(t, clientID, apt.ClientID)
	assert.Equal(t, b.ID, apt.BarberID)
	require.Len(t, appts.created, 1)

	require.Len(t, outbox.events, 1)
	assert.Equal(t, model.EventAppointmentCreated, outbox.events[0].EventType)
}

func TestCreateAppointmentOutboxFailureRollsBack(t *testing.T) {
	svc, appts, barbers, services, outbox := newTestService()
	b := barbers.add(true)
	cut := services.add(30)
	outbox.failCreate = true

	_, err := svc.CreateAppointment(context.Background(), uuid.New(), &model.CreateAppointmentRequest{
		BarberID:  b.ID.String(),
		ServiceID: cut.ID,
		StartTime: time.Now().Add(24 * time.Hour),
	})
	require.Error(t, err)

	// A booking never commits without its event.
	assert.Empty(t, appts.created)
	assert.Empty(t, appts.appointments)
	assert.Empty(t, outbox.events)
}

func TestUpdateStatusTerminalStates(t *testing.T) {
	svc, appts, _, _, _ := newTestService()

	apt := &model.Appointment{Status: model.AppointmentStatusCancelled}
	require.NoError(t, appts.Create(context.Background(), apt))

	_, err := svc.UpdateStatus(context.Background(), apt.ID, model.AppointmentStatusConfirmed, nil)
	assert.Error(t, err)

	done := &model.Appointment{Status: model.AppointmentStatusCompleted}
	require.NoError(t, appts.Create(context.Background(), done))

	_, err = svc.UpdateStatus(context.Background(), done.ID, model.AppointmentStatusCancelled, nil)
	assert.Error(t, err)
}

func TestCancelAppointment(t *testing.T) {
	svc, appts, _, _, outbox := newTestService()

	apt := &model.Appointment{Status: model.AppointmentStatusConfirmed}
	require.NoError(t, appts.Create(context.Background(), apt))

	cancelled, err := svc.CancelAppointment(context.Background(), apt.ID, "client request")
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelReason)
	assert.Equal(t, "client request", *cancelled.CancelReason)

	require.Len(t, outbox.events, 1)
	assert.Equal(t, model.EventAppointmentCancelled, outbox.events[0].EventType)
}

func TestDeleteAppointmentOnlyCancelled(t *testing.T) {
	svc, appts, _, _, _ := newTestService()

	apt := &model.Appointment{Status: model.AppointmentStatusPending}
	require.NoError(t, appts.Create(context.Background(), apt))

	err := svc.DeleteAppointment(context.Background(), apt.ID)
	assert.Error(t, err)

	apt.Status = model.AppointmentStatusCancelled
	assert.NoError(t, svc.DeleteAppointment(context.Background(), apt.ID))
}
