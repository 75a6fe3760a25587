package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/navikt/mrooms/internal/models"
	"github.com/navikt/mrooms/internal/repository"
	"github.com/navikt/mrooms/internal/schedule"
	"github.com/navikt/mrooms/internal/utils"
)

// Booking event actions
const (
	ActionReserved  = "reserved"
	ActionCancelled = "cancelled"
	ActionCleared   = "cleared"
)

// BookingEvent describes a change to the booking state
type BookingEvent struct {
	Action  string          `json:"action"`
	Meeting *models.Meeting `json:"meeting,omitempty"`
}

// BookingUpdateCallback is a function type for booking update callbacks
type BookingUpdateCallback func(BookingEvent)

// MeetingService implements the allocation engine: it validates a request,
// searches candidate rooms and commits the booking.
type MeetingService struct {
	repo            repository.Repository
	locks           *roomLocks
	clock           func() time.Time
	updateCallbacks []BookingUpdateCallback
}

// NewMeetingService creates a new MeetingService with the given repository
func NewMeetingService(repo repository.Repository) *MeetingService {
	return NewMeetingServiceWithClock(repo, time.Now)
}

// NewMeetingServiceWithClock creates a MeetingService with an explicit
// clock, used by tests to pin "now"
func NewMeetingServiceWithClock(repo repository.Repository, clock func() time.Time) *MeetingService {
	return &MeetingService{
		repo:            repo,
		locks:           newRoomLocks(),
		clock:           clock,
		updateCallbacks: make([]BookingUpdateCallback, 0),
	}
}

// RegisterUpdateCallback registers a callback to be called when the booking
// state changes
func (s *MeetingService) RegisterUpdateCallback(callback BookingUpdateCallback) {
	s.updateCallbacks = append(s.updateCallbacks, callback)
}

func (s *MeetingService) notifyUpdate(event BookingEvent) {
	for _, callback := range s.updateCallbacks {
		callback(event)
	}
}

// Reserve finds the best-fit room for the requested meeting and commits the
// booking. Candidates are tried smallest capacity first; the first room
// whose window is free wins.
func (s *MeetingService) Reserve(ctx context.Context, req *models.MeetingRequest) (*models.Room, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := schedule.ValidateWindow(s.clock(), req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetMeetingByName(ctx, req.Name); err == nil {
		return nil, models.NewConflictError("Meeting with name '%s' already exists", req.Name)
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	tools := req.Type.RequiredTools()
	minCapacity := schedule.MinCapacityFor(req.Attendees)

	candidates, err := s.repo.FindRooms(ctx, tools, minCapacity)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, models.NewAllocationError("No rooms available for meeting '%s'", req.Name)
	}

	// Best fit: smallest room first, name as a deterministic tiebreak
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Capacity != candidates[j].Capacity {
			return candidates[i].Capacity < candidates[j].Capacity
		}
		return candidates[i].Name < candidates[j].Name
	})

	for _, candidate := range candidates {
		// Room sharing never goes into rooms seating fewer than four
		if req.Type == models.MeetingTypeRoomSharing && candidate.Capacity < 4 {
			continue
		}

		room, err := s.tryReserve(ctx, candidate.ID, req)
		if err != nil {
			return nil, err
		}
		if room != nil {
			return room, nil
		}
	}

	return nil, models.NewAllocationError("No rooms available for meeting '%s'", req.Name)
}

// tryReserve commits the meeting into the room if its window is free. The
// room lock spans the re-read, the availability check and the write, so two
// concurrent requests cannot both observe the slot as free. Returns
// (nil, nil) when the room cannot take the meeting.
func (s *MeetingService) tryReserve(ctx context.Context, roomID string, req *models.MeetingRequest) (*models.Room, error) {
	unlock := s.locks.lock(roomID)
	defer unlock()

	room, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// Room deleted since the candidate query; try the next one
			return nil, nil
		}
		return nil, err
	}

	if !schedule.RoomIsAvailable(room, req.StartTime, req.EndTime) {
		return nil, nil
	}

	meeting := &models.Meeting{
		ID:        uuid.NewString(),
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Type:      req.Type,
		Attendees: req.Attendees,
		RoomID:    room.ID,
	}
	if err := s.repo.SaveMeeting(ctx, meeting); err != nil {
		if errors.Is(err, models.ErrDuplicateName) {
			return nil, models.NewConflictError("Meeting with name '%s' already exists", req.Name)
		}
		return nil, err
	}

	log.Printf("Reserved room %s for meeting %s", room.Name, utils.SanitizeLogString(meeting.Name))

	room.Meetings = append(room.Meetings, *meeting)
	s.notifyUpdate(BookingEvent{Action: ActionReserved, Meeting: meeting})

	return room, nil
}

// Cancel removes the named meeting from its room and deletes its record
func (s *MeetingService) Cancel(ctx context.Context, name string) (*models.Meeting, error) {
	meeting, err := s.repo.GetMeetingByName(ctx, name)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewNotFoundError("Meeting with name '%s' not found", name)
		}
		return nil, err
	}

	unlock := s.locks.lock(meeting.RoomID)
	defer unlock()

	deleted, err := s.repo.DeleteMeetingByName(ctx, name)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewNotFoundError("Meeting with name '%s' not found", name)
		}
		return nil, err
	}

	log.Printf("Cancelled meeting %s", utils.SanitizeLogString(name))
	s.notifyUpdate(BookingEvent{Action: ActionCancelled, Meeting: deleted})

	return deleted, nil
}

// DeleteAllMeetings clears every booking. Deleting zero meetings is not an
// error.
func (s *MeetingService) DeleteAllMeetings(ctx context.Context) error {
	if err := s.repo.DeleteAllMeetings(ctx); err != nil {
		return err
	}

	s.notifyUpdate(BookingEvent{Action: ActionCleared})

	return nil
}

// ListMeetings returns all committed meetings
func (s *MeetingService) ListMeetings(ctx context.Context) ([]*models.Meeting, error) {
	return s.repo.ListMeetings(ctx)
}

// GetMeeting retrieves a meeting by id
func (s *MeetingService) GetMeeting(ctx context.Context, id string) (*models.Meeting, error) {
	meeting, err := s.repo.GetMeeting(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewNotFoundError("Meeting with id '%s' not found", id)
		}
		return nil, err
	}
	return meeting, nil
}

// GetMeetingByName retrieves a meeting by its unique name
func (s *MeetingService) GetMeetingByName(ctx context.Context, name string) (*models.Meeting, error) {
	meeting, err := s.repo.GetMeetingByName(ctx, name)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewNotFoundError("Meeting with name '%s' not found", name)
		}
		return nil, err
	}
	return meeting, nil
}

// ListMeetingsByType returns all meetings of the given type
func (s *MeetingService) ListMeetingsByType(ctx context.Context, meetingType models.MeetingType) ([]*models.Meeting, error) {
	if !meetingType.Valid() {
		return nil, models.NewValidationError("`%s` is not a valid enum value for field `type`", meetingType)
	}
	return s.repo.ListMeetingsByType(ctx, meetingType)
}
