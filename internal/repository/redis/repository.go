// Package redis provides a Redis/Valkey implementation of the repository interface
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/navikt/mrooms/internal/config"
	"github.com/navikt/mrooms/internal/models"
)

// roomState is the internal model for storing a room in Redis. The meeting
// list is never stored; it is derived from the meeting keys on read.
type roomState struct {
	ID       string
	Name     string
	Capacity int
	Tools    models.ToolSet
}

// meetingState is the internal model for storing a meeting in Redis
type meetingState struct {
	ID        string
	Name      string
	StartTime time.Time
	EndTime   time.Time
	Type      models.MeetingType
	Attendees int
	RoomID    string
}

// Repository implements the repository interface with Redis storage
type Repository struct {
	client    *redis.Client
	keyPrefix string
}

// NewRepository creates a new Redis repository
func NewRepository(cfg config.RedisConfig) (*Repository, error) {
	var client *redis.Client

	// Use URI if provided, otherwise build connection from individual parameters
	if cfg.URI != "" {
		opt, err := redis.ParseURL(cfg.URI)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URI: %w", err)
		}

		if opt.DB == 0 {
			opt.DB = cfg.DB
		}
		if opt.Password == "" && cfg.Password != "" {
			opt.Password = cfg.Password
		}

		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Repository{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
	}, nil
}

// Close closes the Redis connection
func (r *Repository) Close() error {
	return r.client.Close()
}

func (r *Repository) roomKey(id string) string {
	return fmt.Sprintf("%srooms:%s", r.keyPrefix, id)
}

func (r *Repository) roomNameKey(name string) string {
	return fmt.Sprintf("%sroomnames:%s", r.keyPrefix, name)
}

func (r *Repository) meetingKey(id string) string {
	return fmt.Sprintf("%smeetings:%s", r.keyPrefix, id)
}

func (r *Repository) meetingNameKey(name string) string {
	return fmt.Sprintf("%smeetingnames:%s", r.keyPrefix, name)
}

// SaveRoom stores a room, rejecting a name already used by another room
func (r *Repository) SaveRoom(ctx context.Context, room *models.Room) error {
	owner, err := r.client.Get(ctx, r.roomNameKey(room.Name)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to check room name: %w", err)
	}
	if err == nil && owner != room.ID {
		return models.ErrDuplicateName
	}

	state := roomState{
		ID:       room.ID,
		Name:     room.Name,
		Capacity: room.Capacity,
		Tools:    room.Tools,
	}
	data, err := json.Marshal(&state)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.roomKey(room.ID), data, 0)
	pipe.Set(ctx, r.roomNameKey(room.Name), room.ID, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save room: %w", err)
	}

	return nil
}

// GetRoom retrieves a room by id with its meetings populated
func (r *Repository) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	data, err := r.client.Get(ctx, r.roomKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	var state roomState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}

	return r.roomView(ctx, &state)
}

// GetRoomByName retrieves a room by its unique name with its meetings populated
func (r *Repository) GetRoomByName(ctx context.Context, name string) (*models.Room, error) {
	id, err := r.client.Get(ctx, r.roomNameKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve room name: %w", err)
	}

	return r.GetRoom(ctx, id)
}

// ListRooms returns all rooms with their meetings populated, ordered by name
func (r *Repository) ListRooms(ctx context.Context) ([]*models.Room, error) {
	states, err := r.roomStates(ctx)
	if err != nil {
		return nil, err
	}

	meetings, err := r.allMeetings(ctx)
	if err != nil {
		return nil, err
	}
	byRoom := groupByRoom(meetings)

	rooms := make([]*models.Room, 0, len(states))
	for _, state := range states {
		rooms = append(rooms, assembleRoom(state, byRoom[state.ID]))
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Name < rooms[j].Name })

	return rooms, nil
}

// DeleteRoom removes a room by id and returns it
func (r *Repository) DeleteRoom(ctx context.Context, id string) (*models.Room, error) {
	room, err := r.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.roomKey(id))
	pipe.Del(ctx, r.roomNameKey(room.Name))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete room: %w", err)
	}

	return room, nil
}

// DeleteRoomByName removes a room by its unique name and returns it
func (r *Repository) DeleteRoomByName(ctx context.Context, name string) (*models.Room, error) {
	room, err := r.GetRoomByName(ctx, name)
	if err != nil {
		return nil, err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.roomKey(room.ID))
	pipe.Del(ctx, r.roomNameKey(name))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete room: %w", err)
	}

	return room, nil
}

// FindRooms returns the rooms offering every required tool with capacity of
// at least minCapacity, meetings populated
func (r *Repository) FindRooms(ctx context.Context, tools models.ToolSet, minCapacity int) ([]*models.Room, error) {
	states, err := r.roomStates(ctx)
	if err != nil {
		return nil, err
	}

	meetings, err := r.allMeetings(ctx)
	if err != nil {
		return nil, err
	}
	byRoom := groupByRoom(meetings)

	var rooms []*models.Room
	for _, state := range states {
		if state.Capacity >= minCapacity && state.Tools.HasAll(tools) {
			rooms = append(rooms, assembleRoom(state, byRoom[state.ID]))
		}
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Name < rooms[j].Name })

	return rooms, nil
}

// SaveMeeting stores a meeting, rejecting a name already used by another meeting
func (r *Repository) SaveMeeting(ctx context.Context, meeting *models.Meeting) error {
	owner, err := r.client.Get(ctx, r.meetingNameKey(meeting.Name)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to check meeting name: %w", err)
	}
	if err == nil && owner != meeting.ID {
		return models.ErrDuplicateName
	}

	state := meetingState{
		ID:        meeting.ID,
		Name:      meeting.Name,
		StartTime: meeting.StartTime,
		EndTime:   meeting.EndTime,
		Type:      meeting.Type,
		Attendees: meeting.Attendees,
		RoomID:    meeting.RoomID,
	}
	data, err := json.Marshal(&state)
	if err != nil {
		return fmt.Errorf("failed to marshal meeting: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.meetingKey(meeting.ID), data, 0)
	pipe.Set(ctx, r.meetingNameKey(meeting.Name), meeting.ID, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save meeting: %w", err)
	}

	return nil
}

// GetMeeting retrieves a meeting by id
func (r *Repository) GetMeeting(ctx context.Context, id string) (*models.Meeting, error) {
	data, err := r.client.Get(ctx, r.meetingKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}

	var state meetingState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal meeting: %w", err)
	}

	return state.toMeeting(), nil
}

// GetMeetingByName retrieves a meeting by its unique name
func (r *Repository) GetMeetingByName(ctx context.Context, name string) (*models.Meeting, error) {
	id, err := r.client.Get(ctx, r.meetingNameKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve meeting name: %w", err)
	}

	return r.GetMeeting(ctx, id)
}

// ListMeetings returns all meetings ordered by start time
func (r *Repository) ListMeetings(ctx context.Context) ([]*models.Meeting, error) {
	states, err := r.allMeetings(ctx)
	if err != nil {
		return nil, err
	}

	meetings := make([]*models.Meeting, 0, len(states))
	for _, state := range states {
		meetings = append(meetings, state.toMeeting())
	}
	sort.Slice(meetings, func(i, j int) bool {
		return meetings[i].StartTime.Before(meetings[j].StartTime)
	})

	return meetings, nil
}

// ListMeetingsByType returns all meetings of the given type ordered by start time
func (r *Repository) ListMeetingsByType(ctx context.Context, meetingType models.MeetingType) ([]*models.Meeting, error) {
	states, err := r.allMeetings(ctx)
	if err != nil {
		return nil, err
	}

	meetings := make([]*models.Meeting, 0)
	for _, state := range states {
		if state.Type == meetingType {
			meetings = append(meetings, state.toMeeting())
		}
	}
	sort.Slice(meetings, func(i, j int) bool {
		return meetings[i].StartTime.Before(meetings[j].StartTime)
	})

	return meetings, nil
}

// DeleteMeetingByName removes a meeting by its unique name and returns it
func (r *Repository) DeleteMeetingByName(ctx context.Context, name string) (*models.Meeting, error) {
	meeting, err := r.GetMeetingByName(ctx, name)
	if err != nil {
		return nil, err
	}

	// Delete the record and its name index in one roundtrip
	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.meetingKey(meeting.ID))
	pipe.Del(ctx, r.meetingNameKey(name))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete meeting: %w", err)
	}

	return meeting, nil
}

// DeleteAllMeetings clears every meeting record and name index
func (r *Repository) DeleteAllMeetings(ctx context.Context) error {
	patterns := []string{
		r.meetingKey("*"),
		r.meetingNameKey("*"),
	}

	pipe := r.client.Pipeline()
	for _, pattern := range patterns {
		keys, err := r.client.Keys(ctx, pattern).Result()
		if err != nil {
			return fmt.Errorf("failed to list meeting keys: %w", err)
		}
		if len(keys) > 0 {
			pipe.Del(ctx, keys...)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete meetings: %w", err)
	}

	return nil
}

// roomStates loads every stored room in a single MGET roundtrip
func (r *Repository) roomStates(ctx context.Context) ([]*roomState, error) {
	keys, err := r.client.Keys(ctx, r.roomKey("*")).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	if len(keys) == 0 {
		return []*roomState{}, nil
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get room data: %w", err)
	}

	states := make([]*roomState, 0, len(values))
	for _, v := range values {
		strData, ok := v.(string)
		if !ok {
			continue
		}

		var state roomState
		if err := json.Unmarshal([]byte(strData), &state); err != nil {
			continue
		}
		states = append(states, &state)
	}

	return states, nil
}

// allMeetings loads every stored meeting in a single MGET roundtrip
func (r *Repository) allMeetings(ctx context.Context) ([]*meetingState, error) {
	keys, err := r.client.Keys(ctx, r.meetingKey("*")).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	if len(keys) == 0 {
		return []*meetingState{}, nil
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting data: %w", err)
	}

	states := make([]*meetingState, 0, len(values))
	for _, v := range values {
		strData, ok := v.(string)
		if !ok {
			continue
		}

		var state meetingState
		if err := json.Unmarshal([]byte(strData), &state); err != nil {
			continue
		}
		states = append(states, &state)
	}

	return states, nil
}

// roomView assembles a room model with meetings populated
func (r *Repository) roomView(ctx context.Context, state *roomState) (*models.Room, error) {
	meetings, err := r.allMeetings(ctx)
	if err != nil {
		return nil, err
	}

	return assembleRoom(state, groupByRoom(meetings)[state.ID]), nil
}

func (s *meetingState) toMeeting() *models.Meeting {
	return &models.Meeting{
		ID:        s.ID,
		Name:      s.Name,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Type:      s.Type,
		Attendees: s.Attendees,
		RoomID:    s.RoomID,
	}
}

func assembleRoom(state *roomState, meetings []models.Meeting) *models.Room {
	if meetings == nil {
		meetings = []models.Meeting{}
	}
	sort.Slice(meetings, func(i, j int) bool {
		return meetings[i].StartTime.Before(meetings[j].StartTime)
	})

	return &models.Room{
		ID:       state.ID,
		Name:     state.Name,
		Capacity: state.Capacity,
		Tools:    state.Tools,
		Meetings: meetings,
	}
}

func groupByRoom(states []*meetingState) map[string][]models.Meeting {
	byRoom := make(map[string][]models.Meeting)
	for _, state := range states {
		byRoom[state.RoomID] = append(byRoom[state.RoomID], *state.toMeeting())
	}
	return byRoom
}
