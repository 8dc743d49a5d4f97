package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pediclinic/booking-api/internal/model"
	"github.com/pediclinic/booking-api/internal/service/availability"
	"github.com/pediclinic/booking-api/pkg/auth"
	apperrors "github.com/pediclinic/booking-api/pkg/errors"
)

// Stage is one step of the booking wizard. Stages advance linearly;
// revisiting an earlier stage only clears the selections a reselection
// invalidates.
type Stage int

const (
	StageSelectPatient Stage = iota + 1
	StageSelectCategory
	StageSelectService
	StageSelectProfessional
	StageSelectDateTime
	StageConfirm
)

func (s Stage) String() string {
	switch s {
	case StageSelectPatient:
		return "select_patient"
	case StageSelectCategory:
		return "select_category"
	case StageSelectService:
		return "select_service"
	case StageSelectProfessional:
		return "select_professional"
	case StageSelectDateTime:
		return "select_datetime"
	case StageConfirm:
		return "confirm"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Draft accumulates the reservation across stages. Fields are populated
// monotonically as the user advances.
type Draft struct {
	Patient      *model.Patient
	Category     model.ServiceCategory
	Service      *model.Service
	Professional *model.Professional
	Date         time.Time
	Slot         *model.Slot
}

// Committer is the commit-side contract the workflow drives. Satisfied
// by the reservation service.
type Committer interface {
	Create(ctx context.Context, r *model.Reservation) (*model.Reservation, error)
}

// Workflow is one client's in-flight booking. It is not safe for
// concurrent use; callers serialize access per draft.
type Workflow struct {
	session  *auth.Session
	resolver *availability.Service
	store    Committer

	stage Stage
	draft Draft

	dates []time.Time
	slots *availability.DaySlots
}

// NewWorkflow starts a booking for the authenticated session. The
// session is threaded in explicitly; the responsible party on the final
// reservation always comes from it.
func NewWorkflow(session *auth.Session, resolver *availability.Service, store Committer) *Workflow {
	return &Workflow{
		session:  session,
		resolver: resolver,
		store:    store,
		stage:    StageSelectPatient,
	}
}

func (w *Workflow) Stage() Stage { return w.stage }

func (w *Workflow) Draft() Draft { return w.draft }

func (w *Workflow) Dates() []time.Time { return w.dates }

func (w *Workflow) Slots() *availability.DaySlots { return w.slots }

func (w *Workflow) advanceTo(s Stage) {
	if s > w.stage {
		w.stage = s
	}
}

// Back moves one stage backward without clearing anything; selections
// are only invalidated by an actual reselection.
func (w *Workflow) Back() {
	if w.stage > StageSelectPatient {
		w.stage--
	}
}

func (w *Workflow) SelectPatient(p *model.Patient) {
	w.draft.Patient = p
	w.advanceTo(StageSelectCategory)
}

// SelectCategory narrows the service list. Picking a different category
// invalidates any previously chosen service and everything downstream.
func (w *Workflow) SelectCategory(c model.ServiceCategory) {
	if w.draft.Category != c {
		w.draft.Service = nil
		w.clearProfessional()
	}
	w.draft.Category = c
	w.advanceTo(StageSelectService)
}

// SelectService invalidates the previously chosen professional and any
// loaded dates/slots: the slot grid depends on the service's duration.
func (w *Workflow) SelectService(s *model.Service) {
	if w.draft.Service == nil || w.draft.Service.ID != s.ID {
		w.clearProfessional()
	}
	w.draft.Service = s
	w.advanceTo(StageSelectProfessional)
}

func (w *Workflow) clearProfessional() {
	w.draft.Professional = nil
	w.clearDateTime()
}

func (w *Workflow) clearDateTime() {
	w.draft.Date = time.Time{}
	w.draft.Slot = nil
	w.dates = nil
	w.slots = nil
}

// SelectProfessional computes the candidate dates from the
// professional's attendance days. A professional with no attendance days
// yields no dates.
func (w *Workflow) SelectProfessional(p *model.Professional) {
	if w.draft.Professional == nil || w.draft.Professional.ID != p.ID {
		w.clearDateTime()
	}
	w.draft.Professional = p
	w.dates = w.resolver.CandidateDates(p.AttendanceDays, availability.DefaultHorizon)
	w.advanceTo(StageSelectDateTime)
}

// SelectDate loads the slot grid for the chosen date. Lookup failures
// degrade inside the resolver; the user always gets the grid.
func (w *Workflow) SelectDate(ctx context.Context, date time.Time) error {
	if w.draft.Professional == nil || w.draft.Service == nil {
		return apperrors.IncompleteBooking("professional or service")
	}
	w.draft.Date = date
	w.draft.Slot = nil
	w.slots = w.resolver.SlotsForDate(ctx, w.draft.Professional, w.draft.Service, date)
	return nil
}

// SelectSlot picks a time from the loaded grid. Only grid members are
// accepted: an arbitrary parseable time would sit between generated
// slots and dodge the store's exact-match uniqueness guard.
func (w *Workflow) SelectSlot(slot model.Slot) error {
	if w.slots == nil {
		return apperrors.IncompleteBooking("date")
	}
	if !w.slots.Contains(slot) {
		return apperrors.BadRequest(
			fmt.Sprintf("time %s is not offered on this date", slot.Label()), nil)
	}
	if _, taken := w.slots.Occupied[slot]; taken {
		return apperrors.SlotConflict(nil)
	}
	w.draft.Slot = &slot
	w.advanceTo(StageConfirm)
	return nil
}

// Commit validates the full draft and writes the reservation with status
// Pending. Any failure leaves the draft intact so the user can retry;
// a slot lost to a concurrent booking surfaces as SlotConflict.
func (w *Workflow) Commit(ctx context.Context) (*model.Reservation, error) {
	if missing := w.missingField(); missing != "" {
		return nil, apperrors.IncompleteBooking(missing)
	}

	reservation := &model.Reservation{
		PatientID:      w.draft.Patient.ID,
		ResponsibleID:  w.session.ClientID,
		ProfessionalID: w.draft.Professional.ID,
		ServiceID:      w.draft.Service.ID,
		Date:           w.draft.Date,
		SlotHour:       w.draft.Slot.Hour,
		SlotMinute:     w.draft.Slot.Minute,
		Reason:         "Consulta - " + w.draft.Service.Name,
		Status:         model.ReservationStatusPending,
		Price:          w.draft.Service.Price,
	}

	created, err := w.store.Create(ctx, reservation)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.Timeout("reservation commit", err)
		}
		return nil, err
	}
	return created, nil
}

func (w *Workflow) missingField() string {
	switch {
	case w.session == nil || w.session.ClientID == uuid.Nil:
		return "responsible party"
	case w.draft.Patient == nil:
		return "patient"
	case w.draft.Service == nil:
		return "service"
	case w.draft.Professional == nil:
		return "professional"
	case w.draft.Date.IsZero():
		return "date"
	case w.draft.Slot == nil:
		return "time"
	}
	return ""
}
