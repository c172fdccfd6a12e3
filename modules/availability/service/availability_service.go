package service

import (
	"context"
	"sort"
	"time"

	"counsel-api/core/constants"
	"counsel-api/core/errors"
	"counsel-api/core/logger"
	"counsel-api/modules/availability/dto"
	"counsel-api/modules/availability/entity"
	"counsel-api/modules/availability/repository"
	calendarentity "counsel-api/modules/calendar/entity"

	"github.com/google/uuid"
)

// BusyLister is the slice of the calendar provider the resolver needs: the
// events occupying a counselor's calendar inside a window.
type BusyLister interface {
	ListEvents(ctx context.Context, counselorID uuid.UUID, from, to time.Time, maxResults int) ([]calendarentity.Event, *errors.AppError)
}

type AvailabilityService interface {
	ResolveSlots(ctx context.Context, req *dto.AvailableSlotsRequest) (*dto.AvailableSlotsResponse, *errors.AppError)
	IsAvailable(ctx context.Context, rng entity.TimeRange, counselorID uuid.UUID, excludeMeetingID string) (bool, *errors.AppError)
	GetWorkingHours(ctx context.Context, counselorID uuid.UUID) (*dto.WorkingHoursResponse, *errors.AppError)
	PutWorkingHours(ctx context.Context, counselorID uuid.UUID, req *dto.WorkingHoursRequest) (*dto.WorkingHoursResponse, *errors.AppError)
}

type availabilityService struct {
	repo     repository.WorkingHoursRepository
	calendar BusyLister
}

func NewAvailabilityService(repo repository.WorkingHoursRepository, calendar BusyLister) AvailabilityService {
	return &availabilityService{
		repo:     repo,
		calendar: calendar,
	}
}

// ResolveSlots computes the bookable slots from the requested instant through
// the end of that local day. The result is recomputed fresh on every call.
func (s *availabilityService) ResolveSlots(ctx context.Context, req *dto.AvailableSlotsRequest) (*dto.AvailableSlotsResponse, *errors.AppError) {
	counselorID, err := uuid.Parse(req.CounselorID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid counselor id", err)
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = constants.DefaultSlotDurationMinutes
	}

	callerLoc, err := time.LoadLocation(req.TimeZone)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid time zone", err)
	}
	if req.FromDate.IsZero() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "from_date is required", nil)
	}

	window := availabilityWindow(req.FromDate, callerLoc)

	busy, appErr := s.fetchBusyIntervals(ctx, counselorID, window, req.MeetingID)
	if appErr != nil {
		return nil, appErr
	}

	wh, err := s.repo.Get(ctx, counselorID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load working hours", err)
	}

	slots := resolve(wh, window, busy, time.Duration(duration)*time.Minute)
	if req.MaxResults > 0 && len(slots) > req.MaxResults {
		slots = slots[:req.MaxResults]
	}

	resp := &dto.AvailableSlotsResponse{
		Slots:      make([]dto.TimeSlot, 0, len(slots)),
		AvFromTime: window.Start,
		AvToTime:   window.End,
	}
	for _, slot := range slots {
		resp.Slots = append(resp.Slots, dto.TimeSlot{Start: slot.Start, End: slot.End})
	}

	logger.Debug("AvailabilityService:ResolveSlots",
		"counselor_id", counselorID,
		"window_start", window.Start,
		"window_end", window.End,
		"slots", len(resp.Slots),
	)
	return resp, nil
}

// IsAvailable is the single admission gate before any provider write: the
// range must sit inside one working-hours rule and avoid every busy interval
// except (on reschedule) the meeting's own mirror. Evaluated fresh per call.
func (s *availabilityService) IsAvailable(ctx context.Context, rng entity.TimeRange, counselorID uuid.UUID, excludeMeetingID string) (bool, *errors.AppError) {
	wh, err := s.repo.Get(ctx, counselorID)
	if err != nil {
		return false, errors.NewAppError(errors.ErrInternalServer, "failed to load working hours", err)
	}

	if !withinWorkingHours(wh, rng) {
		return false, nil
	}

	busy, appErr := s.fetchBusyIntervals(ctx, counselorID, rng, excludeMeetingID)
	if appErr != nil {
		return false, appErr
	}
	for _, b := range busy {
		if Overlaps(rng, b.TimeRange) {
			return false, nil
		}
	}
	return true, nil
}

func (s *availabilityService) GetWorkingHours(ctx context.Context, counselorID uuid.UUID) (*dto.WorkingHoursResponse, *errors.AppError) {
	wh, err := s.repo.Get(ctx, counselorID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load working hours", err)
	}
	return dto.ToWorkingHoursResponse(wh), nil
}

func (s *availabilityService) PutWorkingHours(ctx context.Context, counselorID uuid.UUID, req *dto.WorkingHoursRequest) (*dto.WorkingHoursResponse, *errors.AppError) {
	wh := &entity.WorkingHours{
		CounselorID: counselorID,
		Timezone:    req.Timezone,
	}
	for _, r := range req.Rules {
		start, err := entity.ParseLocalTime(r.Start)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid rule start time", err)
		}
		end, err := entity.ParseLocalTime(r.End)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid rule end time", err)
		}
		wh.Rules = append(wh.Rules, entity.Rule{
			Weekday: time.Weekday(r.Weekday),
			Start:   start,
			End:     end,
		})
	}

	if err := wh.Validate(); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}

	if err := s.repo.Put(ctx, wh); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to store working hours", err)
	}

	logger.Info("AvailabilityService:PutWorkingHours:Success", "counselor_id", counselorID, "rules", len(wh.Rules))
	return dto.ToWorkingHoursResponse(wh), nil
}

func (s *availabilityService) fetchBusyIntervals(ctx context.Context, counselorID uuid.UUID, window entity.TimeRange, excludeMeetingID string) ([]entity.BusyInterval, *errors.AppError) {
	events, appErr := s.calendar.ListEvents(ctx, counselorID, window.Start, window.End, constants.CalendarPageSize)
	if appErr != nil {
		return nil, appErr
	}

	var busy []entity.BusyInterval
	for _, ev := range events {
		if !ev.Start.Before(ev.End) {
			continue
		}
		if excludeMeetingID != "" && (ev.ID == excludeMeetingID || ev.MeetingID == excludeMeetingID) {
			continue
		}
		busy = append(busy, entity.BusyInterval{
			TimeRange: entity.TimeRange{Start: ev.Start, End: ev.End},
			SourceID:  ev.ID,
		})
	}
	return busy, nil
}

// availabilityWindow anchors the coverage window at from and extends it to
// the end of that day in the caller's timezone.
func availabilityWindow(from time.Time, callerLoc *time.Location) entity.TimeRange {
	local := from.In(callerLoc)
	year, month, day := local.Date()
	dayEnd := time.Date(year, month, day, 0, 0, 0, 0, callerLoc).AddDate(0, 0, 1)
	return entity.TimeRange{Start: from, End: dayEnd}
}

// resolve walks the rules intersecting the window, subtracts busy intervals
// and discretizes the free fragments into exact-duration slots. The trailing
// remainder shorter than the duration is dropped.
func resolve(wh *entity.WorkingHours, window entity.TimeRange, busy []entity.BusyInterval, duration time.Duration) []entity.TimeRange {
	if len(wh.Rules) == 0 {
		return nil
	}

	homeLoc := wh.Location()
	busyRanges := make([]entity.TimeRange, 0, len(busy))
	for _, b := range busy {
		busyRanges = append(busyRanges, b.TimeRange)
	}
	merged := MergeIntervals(busyRanges)

	var slots []entity.TimeRange
	for day := window.Start; day.Before(window.End); day = nextLocalDay(day, homeLoc) {
		local := day.In(homeLoc)
		for _, rule := range wh.RulesFor(local.Weekday()) {
			block := rule.RangeOn(day, homeLoc)

			// clip to the window
			if block.Start.Before(window.Start) {
				block.Start = window.Start
			}
			if block.End.After(window.End) {
				block.End = window.End
			}
			if !block.Start.Before(block.End) {
				continue
			}

			for _, free := range Subtract(block, merged) {
				for start := free.Start; !start.Add(duration).After(free.End); start = start.Add(duration) {
					slots = append(slots, entity.TimeRange{Start: start, End: start.Add(duration)})
				}
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})
	return slots
}

// withinWorkingHours requires the range to lie entirely inside one rule's
// local-time projection for its weekday.
func withinWorkingHours(wh *entity.WorkingHours, rng entity.TimeRange) bool {
	homeLoc := wh.Location()
	local := rng.Start.In(homeLoc)
	for _, rule := range wh.RulesFor(local.Weekday()) {
		block := rule.RangeOn(rng.Start, homeLoc)
		if !rng.Start.Before(block.Start) && !rng.End.After(block.End) {
			return true
		}
	}
	return false
}

func nextLocalDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	year, month, day := local.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc).AddDate(0, 0, 1)
}
