// Package repository defines the storage interface for rooms and meetings
package repository

import (
	"context"

	"github.com/navikt/mrooms/internal/models"
)

// Repository stores rooms and meetings. Meetings are the single source of
// truth; every room returned by a read has its Meetings slice populated
// from the meeting store, ordered by start time.
//
// Drivers return models.ErrNotFound for unknown ids/names and
// models.ErrDuplicateName for unique-name violations.
type Repository interface {
	// Room operations
	SaveRoom(ctx context.Context, room *models.Room) error
	GetRoom(ctx context.Context, id string) (*models.Room, error)
	GetRoomByName(ctx context.Context, name string) (*models.Room, error)
	ListRooms(ctx context.Context) ([]*models.Room, error)
	DeleteRoom(ctx context.Context, id string) (*models.Room, error)
	DeleteRoomByName(ctx context.Context, name string) (*models.Room, error)
	// FindRooms returns the rooms offering every tool in tools with a
	// capacity of at least minCapacity, meetings populated.
	FindRooms(ctx context.Context, tools models.ToolSet, minCapacity int) ([]*models.Room, error)

	// Meeting operations
	SaveMeeting(ctx context.Context, meeting *models.Meeting) error
	GetMeeting(ctx context.Context, id string) (*models.Meeting, error)
	GetMeetingByName(ctx context.Context, name string) (*models.Meeting, error)
	ListMeetings(ctx context.Context) ([]*models.Meeting, error)
	ListMeetingsByType(ctx context.Context, meetingType models.MeetingType) ([]*models.Meeting, error)
	DeleteMeetingByName(ctx context.Context, name string) (*models.Meeting, error)
	DeleteAllMeetings(ctx context.Context) error
}
