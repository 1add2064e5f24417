package appointment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmcosta/barbershop-api/internal/model"
)

var testDay = time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(testDay.Year(), testDay.Month(), testDay.Day(), hour, min, 0, 0, testDay.Location())
}

func booking(barberID uuid.UUID, start time.Time, durationMin int) model.BookedAppointment {
	return model.BookedAppointment{
		ID:              uuid.New(),
		BarberID:        barberID,
		StartTime:       start,
		DurationMinutes: durationMin,
	}
}

func slotByTime(t *testing.T, slots []Slot, label string) Slot {
	t.Helper()
	for _, s := range slots {
		if s.Time == label {
			return s
		}
	}
	t.Fatalf("slot %s not found", label)
	return Slot{}
}

func TestComputeSlotsEmptyCalendar(t *testing.T) {
	barber := uuid.New()
	slots := computeSlots(testDay, 30*time.Minute, []uuid.UUID{barber}, nil, DefaultBusinessHours())

	// 09:00 through 18:30 inclusive at 30-minute steps.
	require.Len(t, slots, 20)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "18:30", slots[len(slots)-1].Time)

	for _, s := range slots {
		assert.True(t, s.Available, "slot %s should be available", s.Time)
		require.NotNil(t, s.BarberID)
		assert.Equal(t, barber, *s.BarberID)
	}
}

func TestComputeSlotsAscendingOrder(t *testing.T) {
	slots := computeSlots(testDay, 30*time.Minute, []uuid.UUID{uuid.New()}, nil, DefaultBusinessHours())

	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1].Time, slots[i].Time)
	}
}

func TestComputeSlotsBlocksByExistingServiceDuration(t *testing.T) {
	// One barber with a confirmed 45-minute appointment at 10:00. A 30-minute
	// request must see 10:00 and 10:30 blocked but 09:30 and 11:00 free.
	barber := uuid.New()
	booked := []model.BookedAppointment{booking(barber, at(10, 0), 45)}

	slots := computeSlots(testDay, 30*time.Minute, []uuid.UUID{barber}, booked, DefaultBusinessHours())

	assert.True(t, slotByTime(t, slots, "09:30").Available)
	assert.False(t, slotByTime(t, slots, "10:00").Available)
	assert.False(t, slotByTime(t, slots, "10:30").Available)
	assert.True(t, slotByTime(t, slots, "11:00").Available)
}

func TestComputeSlotsHalfOpenIntervals(t *testing.T) {
	// Touching endpoints do not overlap: a 10:00-10:30 booking leaves both
	// 09:30 (ends exactly at 10:00) and 10:30 (starts exactly at the end)
	// free.
	barber := uuid.New()
	booked := []model.BookedAppointment{booking(barber, at(10, 0), 30)}

	slots := computeSlots(testDay, 30*time.Minute, []uuid.UUID{barber}, booked, DefaultBusinessHours())

	assert.True(t, slotByTime(t, slots, "09:30").Available)
	assert.False(t, slotByTime(t, slots, "10:00").Available)
	assert.True(t, slotByTime(t, slots, "10:30").Available)
}

func TestComputeSlotsOmitsSlotsPastClosing(t *testing.T) {
	// A 90-minute service cannot start at 18:00 or later (would end 19:30).
	// Such slots are absent from the output entirely, not marked unavailable.
	slots := computeSlots(testDay, 90*time.Minute, []uuid.UUID{uuid.New()}, nil, DefaultBusinessHours())

	require.NotEmpty(t, slots)
	assert.Equal(t, "17:30", slots[len(slots)-1].Time)
	for _, s := range slots {
		assert.NotEqual(t, "18:00", s.Time)
		assert.NotEqual(t, "18:30", s.Time)
	}
}

func TestComputeSlotsServiceEndingExactlyAtClosing(t *testing.T) {
	// 17:30 + 90 minutes ends exactly at 19:00, which still fits.
	slots := computeSlots(testDay, 90*time.Minute, []uuid.UUID{uuid.New()}, nil, DefaultBusinessHours())

	last := slotByTime(t, slots, "17:30")
	assert.True(t, last.Available)
}

func TestComputeSlotsDurationLongerThanDay(t *testing.T) {
	slots := computeSlots(testDay, 11*time.Hour, []uuid.UUID{uuid.New()}, nil, DefaultBusinessHours())
	assert.Empty(t, slots)
}

func TestComputeSlotsAnyBarberPicksFreeCandidate(t *testing.T) {
	// Barber X busy 09:00-09:30, barber Y fully free: 09:00 must be available
	// with Y as the candidate.
	barberX := uuid.New()
	barberY := uuid.New()
	booked := []model.BookedAppointment{booking(barberX, at(9, 0), 30)}

	slots := computeSlots(testDay, 30*time.Minute, []uuid.UUID{barberX, barberY}, booked, DefaultBusinessHours())

	first := slotByTime(t, slots, "09:00")
	assert.True(t, first.Available)
	require.NotNil(t, first.BarberID)
	assert.Equal(t, barberY, *first.BarberID)

	// Where X is free again, the first roster member wins.
	second := slotByTime(t, slots, "09:30")
	assert.True(t, second.Available)
	require.NotNil(t, second.BarberID)
	assert.Equal(t, barberX, *second.BarberID)
}

func TestComputeSlotsAllBarbersBusy(t *testing.T) {
	barberX := uuid.New()
	barberY := uuid.New()
	booked := []model.BookedAppointment{
		booking(barberX, at(9, 0), 30),
		booking(barberY, at(9, 0), 30),
	}

	slots := computeSlots(testDay, 30*time.Minute, []uuid.UUID{barberX, barberY}, booked, DefaultBusinessHours())

	first := slotByTime(t, slots, "09:00")
	assert.False(t, first.Available)
	assert.Nil(t, first.BarberID)
}

func TestComputeSlotsEmptyRoster(t *testing.T) {
	// No bookable barbers: every slot is emitted, none available, regardless
	// of appointment data.
	booked := []model.BookedAppointment{booking(uuid.New(), at(10, 0), 30)}

	slots := computeSlots(testDay, 30*time.Minute, nil, booked, DefaultBusinessHours())

	require.Len(t, slots, 20)
	for _, s := range slots {
		assert.False(t, s.Available)
		assert.Nil(t, s.BarberID)
	}
}

func TestComputeSlotsIgnoresOtherBarbersAppointments(t *testing.T) {
	barber := uuid.New()
	other := uuid.New()
	booked := []model.BookedAppointment{booking(other, at(10, 0), 60)}

	slots := computeSlots(testDay, 30*time.Minute, []uuid.UUID{barber}, booked, DefaultBusinessHours())

	assert.True(t, slotByTime(t, slots, "10:00").Available)
	assert.True(t, slotByTime(t, slots, "10:30").Available)
}

func TestComputeSlotsLongRequestOverlapsLaterBooking(t *testing.T) {
	// A 60-minute request starting 09:30 runs into a 10:00 booking.
	barber := uuid.New()
	booked := []model.BookedAppointment{booking(barber, at(10, 0), 30)}

	slots := computeSlots(testDay, 60*time.Minute, []uuid.UUID{barber}, booked, DefaultBusinessHours())

	assert.True(t, slotByTime(t, slots, "09:00").Available)
	assert.False(t, slotByTime(t, slots, "09:30").Available)
	assert.False(t, slotByTime(t, slots, "10:00").Available)
	assert.True(t, slotByTime(t, slots, "10:30").Available)
}

func TestComputeSlotsExistingBookingPastClosingStillBlocks(t *testing.T) {
	// Manually inserted appointment running past closing is tolerated data:
	// it still blocks the slots it overlaps.
	barber := uuid.New()
	booked := []model.BookedAppointment{booking(barber, at(18, 30), 120)}

	slots := computeSlots(testDay, 30*time.Minute, []uuid.UUID{barber}, booked, DefaultBusinessHours())

	assert.True(t, slotByTime(t, slots, "18:00").Available)
	assert.False(t, slotByTime(t, slots, "18:30").Available)
}

func TestComputeSlotsIdempotent(t *testing.T) {
	barber := uuid.New()
	booked := []model.BookedAppointment{
		booking(barber, at(10, 0), 45),
		booking(barber, at(14, 0), 30),
	}

	first := computeSlots(testDay, 30*time.Minute, []uuid.UUID{barber}, booked, DefaultBusinessHours())
	second := computeSlots(testDay, 30*time.Minute, []uuid.UUID{barber}, booked, DefaultBusinessHours())

	assert.Equal(t, first, second)
}

func TestBarberSelector(t *testing.T) {
	id := uuid.New()

	specific := SpecificBarber(id)
	assert.False(t, specific.IsAny())
	got, ok := specific.ID()
	assert.True(t, ok)
	assert.Equal(t, id, got)

	any := AnyBarber()
	assert.True(t, any.IsAny())
	_, ok = any.ID()
	assert.False(t, ok)
}
