package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navikt/mrooms/internal/models"
	"github.com/navikt/mrooms/internal/repository"
	"github.com/navikt/mrooms/internal/repository/memory"
	"github.com/navikt/mrooms/internal/service"
)

// The clock is pinned to 06:00 on a fixed Monday so business-hours windows
// on that day are always in the future
var monday = time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return monday.Add(6 * time.Hour)
}

func newMeetingService(repo repository.Repository) *service.MeetingService {
	return service.NewMeetingServiceWithClock(repo, fixedClock)
}

func addRoom(t *testing.T, repo repository.Repository, name string, capacity int, tools models.ToolSet) {
	t.Helper()
	require.NoError(t, repo.SaveRoom(context.Background(), &models.Room{
		ID:       "id-" + name,
		Name:     name,
		Capacity: capacity,
		Tools:    tools,
	}))
}

func vcRequest(name string, attendees, hour int) *models.MeetingRequest {
	return &models.MeetingRequest{
		Name:      name,
		StartTime: monday.Add(time.Duration(hour) * time.Hour),
		EndTime:   monday.Add(time.Duration(hour+1) * time.Hour),
		Type:      models.MeetingTypeVideoConference,
		Attendees: attendees,
	}
}

var vcTools = models.ToolSet{Screen: true, Webcam: true, Octopus: true}

func TestReserveAllocatesMatchingRoom(t *testing.T) {
	repo := memory.NewRepository()
	meetingService := newMeetingService(repo)
	ctx := context.Background()

	// 8 attendees need capacity ceil(8/0.7) = 12, so E3001 (13) fits
	addRoom(t, repo, "E3001", 13, vcTools)

	room, err := meetingService.Reserve(ctx, vcRequest("kickoff", 8, 9))
	require.NoError(t, err)
	assert.Equal(t, "E3001", room.Name)
	require.Len(t, room.Meetings, 1)
	assert.Equal(t, "kickoff", room.Meetings[0].Name)
	assert.Equal(t, room.ID, room.Meetings[0].RoomID)

	// The committed meeting is retrievable from the store
	meeting, err := meetingService.GetMeetingByName(ctx, "kickoff")
	require.NoError(t, err)
	assert.NotEmpty(t, meeting.ID)
	assert.Equal(t, room.ID, meeting.RoomID)
}

func TestReserveBestFit(t *testing.T) {
	repo := memory.NewRepository()
	meetingService := newMeetingService(repo)
	ctx := context.Background()

	// Both rooms are eligible; the smaller one wins
	addRoom(t, repo, "big", 13, vcTools)
	addRoom(t, repo, "small", 10, vcTools)

	room, err := meetingService.Reserve(ctx, vcRequest("kickoff", 6, 9))
	require.NoError(t, err)
	assert.Equal(t, "small", room.Name)
}

func TestReserveSkipsOccupiedRoom(t *testing.T) {
	repo := memory.NewRepository()
	meetingService := newMeetingService(repo)
	ctx := context.Background()

	addRoom(t, repo, "small", 10, vcTools)
	addRoom(t, repo, "big", 13, vcTools)

	_, err := meetingService.Reserve(ctx, vcRequest("first", 6, 9))
	require.NoError(t, err)

	// Same slot again: the smaller room is taken, the bigger one steps in
	room, err := meetingService.Reserve(ctx, vcRequest("second", 6, 9))
	require.NoError(t, err)
	assert.Equal(t, "big", room.Name)
}

func TestReserveRejectsAdjacentSlot(t *testing.T) {
	repo := memory.NewRepository()
	meetingService := newMeetingService(repo)
	ctx := context.Background()

	addRoom(t, repo, "only", 13, vcTools)

	_, err := meetingService.Reserve(ctx, vcRequest("first", 8, 15))
	require.NoError(t, err)

	// 16:00 starts exactly when the first meeting ends; rooms need an hour gap
	_, err = meetingService.Reserve(ctx, vcRequest("second", 8, 16))
	require.Error(t, err)
	assert.Equal(t, "No rooms available for meeting 'second'", err.Error())
	assert.Equal(t, models.ErrorKindAllocation, models.KindOf(err))

	// Two hours later is fine
	room, err := meetingService.Reserve(ctx, vcRequest("third", 8, 17))
	require.NoError(t, err)
	assert.Equal(t, "only", room.Name)
}

func TestReserveAdjacentSlotFallsBackToOtherRoom(t *testing.T) {
	repo := memory.NewRepository()
	meetingService := newMeetingService(repo)
	ctx := context.Background()

	addRoom(t, repo, "small", 12, vcTools)
	addRoom(t, repo, "big", 13, vcTools)

	_, err := meetingService.Reserve(ctx, vcRequest("first", 8, 15))
	require.NoError(t, err)

	room, err := meetingService.Reserve(ctx, vcRequest("second", 8, 16))
	require.NoError(t, err)
	assert.Equal(t, "big", room.Name)
}

func TestReserveCapacityMargin(t *testing.T) {
	repo := memory.NewRepository()
	meetingService := newMeetingService(repo)
	ctx := context.Background()

	// 8 attendees need capacity 12; a capacity-11 room is too small
	addRoom(t, repo, "tight", 11, vcTools)

	_, err := meetingService.Reserve(ctx, vcRequest("kickoff", 8, 9))
	require.Error(t, err)
	assert.Equal(t, "No rooms available for meeting 'kickoff'", err.Error())

	addRoom(t, repo, "fits", 12, vcTools)

	room, err := meetingService.Reserve(ctx, vcRequest("kickoff", 8, 9))
	require.NoError(t, err)
	assert.Equal(t, "fits", room.Name)
}

func TestReserveRequiresTools(t *testing.T) {
	repo := memory.NewRepository()
	meetingService := newMeetingService(repo)
	ctx := context.Background()

	// Webcam only: enough for SPEC, not for VC
	addRoom(t, repo, "webcam-only", 20, models.ToolSet{Webcam: true})

	_, err := meetingService.Reserve(ctx, vcRequest("kickoff", 5, 9))
	require.Error(t, err)
	assert.Equal(t, models.ErrorKindAllocation, models.KindOf(err))

	req := vcRequest("townhall", 5, 9)
	req.Type = models.MeetingTypeSpecial
	room, err := meetingService.Reserve(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "webcam-only", room.Name)
}

func TestReserveRoomSharingMinimumCapacity(t *testing.T) {
	repo := memory.NewRepository()
	meetingService := newMeetingService(repo)
	ctx := context.Background()

	// Eligible by capacity margin (2 attendees need 3) but below the
	// room-sharing minimum of 4 seats
	addRoom(t, repo, "booth", 3, models.ToolSet{})

	req := vcRequest("shared", 2, 9)
	req.Type = models.MeetingTypeRoomSharing
	_, err := meetingService.Reserve(ctx, req)
	require.Error(t, err)
	assert.Equal(t, "No rooms available for meeting 'shared'", err.Error())

	addRoom(t, repo, "quad", 4, models.ToolSet{})

	req = vcRequest("shared", 2, 9)
	req.Type = models.MeetingTypeRoomSharing
	room, err := meetingService.Reserve(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "quad", room.Name)
}

func TestReserveDuplicateMeetingName(t *testing.T) {
	repo := memory.NewRepository()
	meetingService := newMeetingService(repo)
	ctx := context.Background()

	addRoom(t, repo, "E3001", 13, vcTools)

	_, err := meetingService.Reserve(ctx, vcRequest("kickoff", 4, 9))
	require.NoError(t, err)

	_, err = meetingService.Reserve(ctx, vcRequest("kickoff", 4, 12))
	require.Error(t, err)
	assert.Equal(t, "Meeting with name 'kickoff' already exists", err.Error())
	assert.Equal(t, models.ErrorKindConflict, models.KindOf(err))
}

func TestReserveValidationFailures(t *testing.T) {
	repo := memory.NewRepository()
	meetingService := newMeetingService(repo)
	ctx := context.Background()

	addRoom(t, repo, "E3001", 13, vcTools)

	t.Run("MissingAttendees", func(t *testing.T) {
		req := vcRequest("kickoff", 0, 9)
		_, err := meetingService.Reserve(ctx, req)
		require.Error(t, err)
		assert.Equal(t, "Field `attendees` is required.", err.Error())
	})

	t.Run("UnknownType", func(t *testing.T) {
		req := vcRequest("kickoff", 4, 9)
		req.Type = "VCC"
		_, err := meetingService.Reserve(ctx, req)
		require.Error(t, err)
		assert.Equal(t, "`VCC` is not a valid enum value for field `type`", err.Error())
	})

	t.Run("StartInThePast", func(t *testing.T) {
		req := vcRequest("kickoff", 4, 9)
		req.StartTime = monday.AddDate(0, 0, -3).Add(9 * time.Hour)
		req.EndTime = req.StartTime.Add(time.Hour)
		_, err := meetingService.Reserve(ctx, req)
		require.Error(t, err)
		assert.Equal(t, "Start time must be in the future", err.Error())
	})

	t.Run("NothingCommittedOnFailure", func(t *testing.T) {
		meetings, err := meetingService.ListMeetings(ctx)
		require.NoError(t, err)
		assert.Empty(t, meetings)
	})
}

func TestCancelRoundTrip(t *testing.T) {
	repo := memory.NewRepository()
	meetingService := newMeetingService(repo)
	ctx := context.Background()

	addRoom(t, repo, "E3001", 13, vcTools)

	_, err := meetingService.Reserve(ctx, vcRequest("kickoff", 4, 9))
	require.NoError(t, err)

	cancelled, err := meetingService.Cancel(ctx, "kickoff")
	require.NoError(t, err)
	assert.Equal(t, "kickoff", cancelled.Name)

	// The room no longer holds the meeting
	room, err := repo.GetRoomByName(ctx, "E3001")
	require.NoError(t, err)
	assert.Empty(t, room.Meetings)

	// And the standalone record is gone
	_, err = meetingService.GetMeetingByName(ctx, "kickoff")
	require.Error(t, err)
	assert.Equal(t, "Meeting with name 'kickoff' not found", err.Error())
	assert.Equal(t, models.ErrorKindNotFound, models.KindOf(err))

	// The freed slot can be booked again
	_, err = meetingService.Reserve(ctx, vcRequest("kickoff", 4, 9))
	assert.NoError(t, err)
}

func TestCancelUnknownMeeting(t *testing.T) {
	repo := memory.NewRepository()
	meetingService := newMeetingService(repo)

	_, err := meetingService.Cancel(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, "Meeting with name 'ghost' not found", err.Error())
	assert.Equal(t, models.ErrorKindNotFound, models.KindOf(err))
}

func TestDeleteAllMeetings(t *testing.T) {
	repo := memory.NewRepository()
	meetingService := newMeetingService(repo)
	ctx := context.Background()

	// Deleting from an empty store succeeds
	require.NoError(t, meetingService.DeleteAllMeetings(ctx))

	addRoom(t, repo, "E3001", 13, vcTools)
	_, err := meetingService.Reserve(ctx, vcRequest("kickoff", 4, 9))
	require.NoError(t, err)
	_, err = meetingService.Reserve(ctx, vcRequest("retro", 4, 12))
	require.NoError(t, err)

	require.NoError(t, meetingService.DeleteAllMeetings(ctx))

	meetings, err := meetingService.ListMeetings(ctx)
	require.NoError(t, err)
	assert.Empty(t, meetings)

	room, err := repo.GetRoomByName(ctx, "E3001")
	require.NoError(t, err)
	assert.Empty(t, room.Meetings)
}

func TestListMeetingsByType(t *testing.T) {
	repo := memory.NewRepository()
	meetingService := newMeetingService(repo)
	ctx := context.Background()

	addRoom(t, repo, "E3001", 13, vcTools)
	_, err := meetingService.Reserve(ctx, vcRequest("kickoff", 4, 9))
	require.NoError(t, err)

	t.Run("MatchingType", func(t *testing.T) {
		meetings, err := meetingService.ListMeetingsByType(ctx, models.MeetingTypeVideoConference)
		require.NoError(t, err)
		require.Len(t, meetings, 1)
		assert.Equal(t, "kickoff", meetings[0].Name)
	})

	t.Run("OtherType", func(t *testing.T) {
		meetings, err := meetingService.ListMeetingsByType(ctx, models.MeetingTypeSpecial)
		require.NoError(t, err)
		assert.Empty(t, meetings)
	})

	t.Run("UnknownType", func(t *testing.T) {
		_, err := meetingService.ListMeetingsByType(ctx, "VCC")
		require.Error(t, err)
		assert.Equal(t, models.ErrorKindValidation, models.KindOf(err))
	})
}

func TestUpdateCallbacks(t *testing.T) {
	repo := memory.NewRepository()
	meetingService := newMeetingService(repo)
	ctx := context.Background()

	var events []service.BookingEvent
	meetingService.RegisterUpdateCallback(func(event service.BookingEvent) {
		events = append(events, event)
	})

	addRoom(t, repo, "E3001", 13, vcTools)

	_, err := meetingService.Reserve(ctx, vcRequest("kickoff", 4, 9))
	require.NoError(t, err)
	_, err = meetingService.Cancel(ctx, "kickoff")
	require.NoError(t, err)
	require.NoError(t, meetingService.DeleteAllMeetings(ctx))

	require.Len(t, events, 3)
	assert.Equal(t, service.ActionReserved, events[0].Action)
	assert.Equal(t, "kickoff", events[0].Meeting.Name)
	assert.Equal(t, service.ActionCancelled, events[1].Action)
	assert.Equal(t, service.ActionCleared, events[2].Action)
	assert.Nil(t, events[2].Meeting)
}
