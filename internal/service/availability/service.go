package availability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pediclinic/booking-api/internal/model"
	"github.com/pediclinic/booking-api/internal/repository"
	"github.com/pediclinic/booking-api/internal/schedule"
	"github.com/pediclinic/booking-api/pkg/clock"
	"github.com/pediclinic/booking-api/pkg/logger"
	"github.com/pediclinic/booking-api/pkg/metrics"
)

// DefaultHorizon is how many occurrences of each attendance weekday are
// offered to the user.
const DefaultHorizon = 2

// Shift working windows, fixed per the three-way designator.
const (
	morningStart = 7
	morningEnd   = 12

	afternoonStart = 13
	afternoonEnd   = 18

	defaultStart = 8
	defaultEnd   = 17
)

// ShiftBounds resolves a professional's shift designator into its
// start/end hours.
func ShiftBounds(p *model.Professional) (startHour, endHour int) {
	switch p.Shift {
	case model.ShiftMorning:
		return morningStart, morningEnd
	case model.ShiftAfternoon:
		return afternoonStart, afternoonEnd
	default:
		return defaultStart, defaultEnd
	}
}

// DaySlots is the bookable space for one professional on one date.
type DaySlots struct {
	All      []model.Slot
	Occupied map[model.Slot]struct{}
}

// Contains reports whether slot is part of the generated grid. Times
// that the shift and duration never produced are not bookable even when
// nothing occupies them.
func (d *DaySlots) Contains(slot model.Slot) bool {
	for _, s := range d.All {
		if s == slot {
			return true
		}
	}
	return false
}

// Free returns All minus Occupied, preserving order.
func (d *DaySlots) Free() []model.Slot {
	free := make([]model.Slot, 0, len(d.All))
	for _, slot := range d.All {
		if _, taken := d.Occupied[slot]; !taken {
			free = append(free, slot)
		}
	}
	return free
}

// Service resolves a professional's recurring availability into concrete
// bookable slots. It only reads; its result is a point-in-time snapshot
// and may race with a concurrent booking, which the reservation store's
// uniqueness guard catches at commit time.
type Service struct {
	reservations repository.ReservationRepository
	clock        clock.Clock
	logger       *logger.Logger
	metrics      *metrics.Metrics
}

func NewService(reservations repository.ReservationRepository, clk clock.Clock, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		reservations: reservations,
		clock:        clk,
		logger:       log,
		metrics:      m,
	}
}

// CandidateDates returns the next `horizon` occurrences of every
// attendance weekday, merged ascending by actual date. A weekday name
// that fails to parse skips only that weekday: the professional's other
// attendance days still produce dates.
func (s *Service) CandidateDates(attendanceDays []string, horizon int) []time.Time {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}

	now := s.clock.Now()
	sets := make([][]time.Time, 0, len(attendanceDays))
	for _, day := range attendanceDays {
		dates, err := schedule.NextNOccurrences(day, now, horizon)
		if err != nil {
			s.logger.Warn("skipping unrecognized attendance day",
				"weekday", day)
			continue
		}
		sets = append(sets, dates)
	}
	return schedule.MergeDates(sets...)
}

// SlotsForDate generates every slot the professional's shift admits for
// the service's duration and marks the ones already taken by active
// reservations on that date. When the reservation lookup fails the
// result degrades to an empty occupied set with a logged warning:
// showing possibly-stale availability beats showing nothing, and the
// store's uniqueness guard still protects commit.
func (s *Service) SlotsForDate(ctx context.Context, professional *model.Professional, service *model.Service, date time.Time) *DaySlots {
	timer := prometheus.NewTimer(s.metrics.AvailabilityLatency)
	defer timer.ObserveDuration()

	startHour, endHour := ShiftBounds(professional)
	all := schedule.GenerateSlots(service.DurationMinutes, startHour, endHour)

	occupied := make(map[model.Slot]struct{})
	reservations, err := s.reservations.ListActiveByProfessionalAndDate(ctx, professional.ID, date)
	if err != nil {
		s.logger.Error(err, "active reservation lookup failed, showing all slots as free",
			"professional_id", professional.ID.String(),
			"date", date.Format("2006-01-02"))
	} else {
		for _, r := range reservations {
			occupied[r.Slot()] = struct{}{}
		}
	}

	return &DaySlots{All: all, Occupied: occupied}
}
