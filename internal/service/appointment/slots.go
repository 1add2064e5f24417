package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/tmcosta/barbershop-api/internal/model"
)

// Slot is one fixed-width candidate start time within business hours.
// BarberID carries the candidate assignee when the slot is free, so the
// booking flow can commit an any-barber request to a real professional.
type Slot struct {
	Time      string     `json:"time"`
	Available bool       `json:"available"`
	BarberID  *uuid.UUID `json:"barber_id,omitempty"`
}

// BarberSelector is the "specific barber or any" choice. The zero value is
// not meaningful; construct through SpecificBarber or AnyBarber.
type BarberSelector struct {
	any bool
	id  uuid.UUID
}

func SpecificBarber(id uuid.UUID) BarberSelector {
	return BarberSelector{id: id}
}

func AnyBarber() BarberSelector {
	return BarberSelector{any: true}
}

func (s BarberSelector) IsAny() bool {
	return s.any
}

// ID returns the selected barber and false when the selector is "any".
func (s BarberSelector) ID() (uuid.UUID, bool) {
	if s.any {
		return uuid.Nil, false
	}
	return s.id, true
}

// BusinessHours bounds the bookable window. Hours are local; the shop
// operates in a single fixed locale.
type BusinessHours struct {
	OpeningHour  int
	ClosingHour  int
	SlotInterval time.Duration
}

func DefaultBusinessHours() BusinessHours {
	return BusinessHours{
		OpeningHour:  9,
		ClosingHour:  19,
		SlotInterval: 30 * time.Minute,
	}
}

// computeSlots generates every candidate slot for the calendar day and marks
// each available or not against the booked calendar. It is pure: the roster
// and the day's appointments are passed in, already fetched and normalized.
//
// Rules:
//   - one candidate per SlotInterval step from opening to closing;
//   - a slot whose end would pass closing is omitted entirely, the service
//     could not finish in time;
//   - a slot is available as soon as one roster member has no overlapping
//     appointment for [start, end); that member becomes the candidate;
//   - an empty roster yields every slot marked unavailable.
func computeSlots(day time.Time, serviceDuration time.Duration, roster []uuid.UUID, booked []model.BookedAppointment, hours BusinessHours) []Slot {
	opening := time.Date(day.Year(), day.Month(), day.Day(), hours.OpeningHour, 0, 0, 0, day.Location())
	closing := time.Date(day.Year(), day.Month(), day.Day(), hours.ClosingHour, 0, 0, 0, day.Location())

	slots := make([]Slot, 0, int(closing.Sub(opening)/hours.SlotInterval))

	for start := opening; start.Before(closing); start = start.Add(hours.SlotInterval) {
		end := start.Add(serviceDuration)
		if end.After(closing) {
			continue
		}

		slot := Slot{Time: start.Format("15:04")}
		for _, barberID := range roster {
			if !barberBusy(barberID, start, end, booked) {
				id := barberID
				slot.Available = true
				slot.BarberID = &id
				break
			}
		}

		slots = append(slots, slot)
	}

	return slots
}

// barberBusy reports whether any booked appointment of the barber overlaps
// [start, end). Intervals are half-open: a shared boundary does not count.
// The occupied interval is derived from the existing appointment's own
// service duration, so a long prior booking blocks more slots than a short
// one.
func barberBusy(barberID uuid.UUID, start, end time.Time, booked []model.BookedAppointment) bool {
	for _, apt := range booked {
		if apt.BarberID != barberID {
			continue
		}
		if apt.StartTime.Before(end) && apt.End().After(start) {
			return true
		}
	}
	return false
}
