// Package mongo provides a MongoDB implementation of the repository interface
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/navikt/mrooms/internal/config"
	"github.com/navikt/mrooms/internal/models"
)

const connectTimeout = 10 * time.Second

// Repository implements the repository interface with MongoDB storage.
// Rooms and meetings live in separate collections; a meeting carries its
// room id and room reads join the meetings in.
type Repository struct {
	client   *mongo.Client
	rooms    *mongo.Collection
	meetings *mongo.Collection
}

// NewRepository connects to MongoDB and prepares the collections
func NewRepository(cfg config.MongoConfig) (*Repository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.Database)
	repo := &Repository{
		client:   client,
		rooms:    db.Collection("rooms"),
		meetings: db.Collection("meetings"),
	}

	// Unique name indexes provide the duplicate-name guard at the store level
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, coll := range []*mongo.Collection{repo.rooms, repo.meetings} {
		if _, err := coll.Indexes().CreateOne(ctx, index); err != nil {
			return nil, fmt.Errorf("failed to create name index on %s: %w", coll.Name(), err)
		}
	}

	return repo, nil
}

// Close disconnects from MongoDB
func (r *Repository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return r.client.Disconnect(ctx)
}

// SaveRoom stores a room, rejecting a name already used by another room
func (r *Repository) SaveRoom(ctx context.Context, room *models.Room) error {
	_, err := r.rooms.InsertOne(ctx, room)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrDuplicateName
		}
		return fmt.Errorf("failed to save room: %w", err)
	}
	return nil
}

// GetRoom retrieves a room by id with its meetings populated
func (r *Repository) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	return r.findRoom(ctx, bson.M{"_id": id})
}

// GetRoomByName retrieves a room by its unique name with its meetings populated
func (r *Repository) GetRoomByName(ctx context.Context, name string) (*models.Room, error) {
	return r.findRoom(ctx, bson.M{"name": name})
}

// ListRooms returns all rooms with their meetings populated, ordered by name
func (r *Repository) ListRooms(ctx context.Context) ([]*models.Room, error) {
	return r.findRooms(ctx, bson.M{}, bson.D{{Key: "name", Value: 1}})
}

// DeleteRoom removes a room by id and returns it
func (r *Repository) DeleteRoom(ctx context.Context, id string) (*models.Room, error) {
	return r.deleteRoom(ctx, bson.M{"_id": id})
}

// DeleteRoomByName removes a room by its unique name and returns it
func (r *Repository) DeleteRoomByName(ctx context.Context, name string) (*models.Room, error) {
	return r.deleteRoom(ctx, bson.M{"name": name})
}

// FindRooms returns the rooms offering every required tool with capacity of
// at least minCapacity, meetings populated
func (r *Repository) FindRooms(ctx context.Context, tools models.ToolSet, minCapacity int) ([]*models.Room, error) {
	filter := bson.M{"capacity": bson.M{"$gte": minCapacity}}
	if tools.Screen {
		filter["tools.screen"] = true
	}
	if tools.Whiteboard {
		filter["tools.whiteboard"] = true
	}
	if tools.Webcam {
		filter["tools.webcam"] = true
	}
	if tools.Octopus {
		filter["tools.octopus"] = true
	}

	return r.findRooms(ctx, filter, bson.D{{Key: "capacity", Value: 1}, {Key: "name", Value: 1}})
}

// SaveMeeting stores a meeting, rejecting a name already used by another meeting
func (r *Repository) SaveMeeting(ctx context.Context, meeting *models.Meeting) error {
	_, err := r.meetings.InsertOne(ctx, meeting)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrDuplicateName
		}
		return fmt.Errorf("failed to save meeting: %w", err)
	}
	return nil
}

// GetMeeting retrieves a meeting by id
func (r *Repository) GetMeeting(ctx context.Context, id string) (*models.Meeting, error) {
	return r.findMeeting(ctx, bson.M{"_id": id})
}

// GetMeetingByName retrieves a meeting by its unique name
func (r *Repository) GetMeetingByName(ctx context.Context, name string) (*models.Meeting, error) {
	return r.findMeeting(ctx, bson.M{"name": name})
}

// ListMeetings returns all meetings ordered by start time
func (r *Repository) ListMeetings(ctx context.Context) ([]*models.Meeting, error) {
	return r.findMeetings(ctx, bson.M{})
}

// ListMeetingsByType returns all meetings of the given type ordered by start time
func (r *Repository) ListMeetingsByType(ctx context.Context, meetingType models.MeetingType) ([]*models.Meeting, error) {
	return r.findMeetings(ctx, bson.M{"type": meetingType})
}

// DeleteMeetingByName removes a meeting by its unique name and returns it
func (r *Repository) DeleteMeetingByName(ctx context.Context, name string) (*models.Meeting, error) {
	var meeting models.Meeting
	err := r.meetings.FindOneAndDelete(ctx, bson.M{"name": name}).Decode(&meeting)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete meeting: %w", err)
	}
	return &meeting, nil
}

// DeleteAllMeetings clears the meeting collection
func (r *Repository) DeleteAllMeetings(ctx context.Context) error {
	if _, err := r.meetings.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to delete meetings: %w", err)
	}
	return nil
}

func (r *Repository) findRoom(ctx context.Context, filter bson.M) (*models.Room, error) {
	var room models.Room
	err := r.rooms.FindOne(ctx, filter).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	if err := r.populateMeetings(ctx, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *Repository) findRooms(ctx context.Context, filter bson.M, sort bson.D) ([]*models.Room, error) {
	cursor, err := r.rooms.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	var rooms []*models.Room
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}
	if rooms == nil {
		rooms = []*models.Room{}
	}

	for _, room := range rooms {
		if err := r.populateMeetings(ctx, room); err != nil {
			return nil, err
		}
	}
	return rooms, nil
}

func (r *Repository) deleteRoom(ctx context.Context, filter bson.M) (*models.Room, error) {
	var room models.Room
	err := r.rooms.FindOneAndDelete(ctx, filter).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete room: %w", err)
	}

	if err := r.populateMeetings(ctx, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *Repository) findMeeting(ctx context.Context, filter bson.M) (*models.Meeting, error) {
	var meeting models.Meeting
	err := r.meetings.FindOne(ctx, filter).Decode(&meeting)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	return &meeting, nil
}

func (r *Repository) findMeetings(ctx context.Context, filter bson.M) ([]*models.Meeting, error) {
	cursor, err := r.meetings.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}

	var meetings []*models.Meeting
	if err := cursor.All(ctx, &meetings); err != nil {
		return nil, fmt.Errorf("failed to decode meetings: %w", err)
	}
	if meetings == nil {
		meetings = []*models.Meeting{}
	}
	return meetings, nil
}

// populateMeetings fills the room's derived meeting list from the meeting
// collection, ordered by start time
func (r *Repository) populateMeetings(ctx context.Context, room *models.Room) error {
	cursor, err := r.meetings.Find(ctx, bson.M{"room": room.ID},
		options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}}))
	if err != nil {
		return fmt.Errorf("failed to list room meetings: %w", err)
	}

	meetings := []models.Meeting{}
	if err := cursor.All(ctx, &meetings); err != nil {
		return fmt.Errorf("failed to decode room meetings: %w", err)
	}
	room.Meetings = meetings
	return nil
}
