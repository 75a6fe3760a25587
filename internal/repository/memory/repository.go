// Package memory provides an in-memory implementation of the repository interface
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/navikt/mrooms/internal/models"
)

// Repository implements the repository interface with in-memory storage.
// Meetings are the single source of truth; room meeting lists are derived
// on read.
type Repository struct {
	rooms    map[string]*models.Room    // keyed by room id, Meetings never stored
	meetings map[string]*models.Meeting // keyed by meeting id
	mu       sync.RWMutex
}

// NewRepository creates a new in-memory repository
func NewRepository() *Repository {
	return &Repository{
		rooms:    make(map[string]*models.Room),
		meetings: make(map[string]*models.Meeting),
	}
}

// SaveRoom stores a room, rejecting a name already used by another room
func (r *Repository) SaveRoom(ctx context.Context, room *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.rooms {
		if existing.Name == room.Name && existing.ID != room.ID {
			return models.ErrDuplicateName
		}
	}

	stored := *room
	stored.Meetings = nil
	r.rooms[room.ID] = &stored

	return nil
}

// GetRoom retrieves a room by id with its meetings populated
func (r *Repository) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil, models.ErrNotFound
	}

	return r.roomView(room), nil
}

// GetRoomByName retrieves a room by its unique name with its meetings populated
func (r *Repository) GetRoomByName(ctx context.Context, name string) (*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, room := range r.rooms {
		if room.Name == name {
			return r.roomView(room), nil
		}
	}

	return nil, models.ErrNotFound
}

// ListRooms returns all rooms with their meetings populated, ordered by name
func (r *Repository) ListRooms(ctx context.Context) ([]*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]*models.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, r.roomView(room))
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Name < rooms[j].Name })

	return rooms, nil
}

// DeleteRoom removes a room by id and returns it
func (r *Repository) DeleteRoom(ctx context.Context, id string) (*models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil, models.ErrNotFound
	}

	view := r.roomView(room)
	delete(r.rooms, id)

	return view, nil
}

// DeleteRoomByName removes a room by its unique name and returns it
func (r *Repository) DeleteRoomByName(ctx context.Context, name string) (*models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, room := range r.rooms {
		if room.Name == name {
			view := r.roomView(room)
			delete(r.rooms, id)
			return view, nil
		}
	}

	return nil, models.ErrNotFound
}

// FindRooms returns the rooms offering every required tool with capacity of
// at least minCapacity, meetings populated
func (r *Repository) FindRooms(ctx context.Context, tools models.ToolSet, minCapacity int) ([]*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rooms []*models.Room
	for _, room := range r.rooms {
		if room.Capacity >= minCapacity && room.Tools.HasAll(tools) {
			rooms = append(rooms, r.roomView(room))
		}
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Name < rooms[j].Name })

	return rooms, nil
}

// SaveMeeting stores a meeting, rejecting a name already used by another meeting
func (r *Repository) SaveMeeting(ctx context.Context, meeting *models.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.meetings {
		if existing.Name == meeting.Name && existing.ID != meeting.ID {
			return models.ErrDuplicateName
		}
	}

	stored := *meeting
	r.meetings[meeting.ID] = &stored

	return nil
}

// GetMeeting retrieves a meeting by id
func (r *Repository) GetMeeting(ctx context.Context, id string) (*models.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meeting, ok := r.meetings[id]
	if !ok {
		return nil, models.ErrNotFound
	}

	copied := *meeting
	return &copied, nil
}

// GetMeetingByName retrieves a meeting by its unique name
func (r *Repository) GetMeetingByName(ctx context.Context, name string) (*models.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, meeting := range r.meetings {
		if meeting.Name == name {
			copied := *meeting
			return &copied, nil
		}
	}

	return nil, models.ErrNotFound
}

// ListMeetings returns all meetings ordered by start time
func (r *Repository) ListMeetings(ctx context.Context) ([]*models.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meetings := make([]*models.Meeting, 0, len(r.meetings))
	for _, meeting := range r.meetings {
		copied := *meeting
		meetings = append(meetings, &copied)
	}
	sortMeetings(meetings)

	return meetings, nil
}

// ListMeetingsByType returns all meetings of the given type ordered by start time
func (r *Repository) ListMeetingsByType(ctx context.Context, meetingType models.MeetingType) ([]*models.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meetings := make([]*models.Meeting, 0)
	for _, meeting := range r.meetings {
		if meeting.Type == meetingType {
			copied := *meeting
			meetings = append(meetings, &copied)
		}
	}
	sortMeetings(meetings)

	return meetings, nil
}

// DeleteMeetingByName removes a meeting by its unique name and returns it
func (r *Repository) DeleteMeetingByName(ctx context.Context, name string) (*models.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, meeting := range r.meetings {
		if meeting.Name == name {
			copied := *meeting
			delete(r.meetings, id)
			return &copied, nil
		}
	}

	return nil, models.ErrNotFound
}

// DeleteAllMeetings clears the meeting store. Deleting zero meetings is not
// an error.
func (r *Repository) DeleteAllMeetings(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.meetings = make(map[string]*models.Meeting)

	return nil
}

// roomView returns a copy of the room with its meetings populated, ordered
// by start time. Callers must hold at least a read lock.
func (r *Repository) roomView(room *models.Room) *models.Room {
	view := *room
	view.Meetings = []models.Meeting{}
	for _, meeting := range r.meetings {
		if meeting.RoomID == room.ID {
			view.Meetings = append(view.Meetings, *meeting)
		}
	}
	sort.Slice(view.Meetings, func(i, j int) bool {
		return view.Meetings[i].StartTime.Before(view.Meetings[j].StartTime)
	})

	return &view
}

func sortMeetings(meetings []*models.Meeting) {
	sort.Slice(meetings, func(i, j int) bool {
		return meetings[i].StartTime.Before(meetings[j].StartTime)
	})
}
