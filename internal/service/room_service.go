package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/navikt/mrooms/internal/models"
	"github.com/navikt/mrooms/internal/repository"
)

// RoomService provides business logic for managing rooms
type RoomService struct {
	repo repository.Repository
}

// NewRoomService creates a new RoomService with the given repository
func NewRoomService(repo repository.Repository) *RoomService {
	return &RoomService{repo: repo}
}

// CreateRoom validates and stores a new room
func (s *RoomService) CreateRoom(ctx context.Context, room *models.Room) (*models.Room, error) {
	if err := room.Validate(); err != nil {
		return nil, err
	}

	room.ID = uuid.NewString()
	room.Meetings = []models.Meeting{}

	if err := s.repo.SaveRoom(ctx, room); err != nil {
		if errors.Is(err, models.ErrDuplicateName) {
			return nil, models.NewConflictError("Room with name %s already exists", room.Name)
		}
		return nil, err
	}

	return room, nil
}

// GetRoom retrieves a room by id
func (s *RoomService) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	room, err := s.repo.GetRoom(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewNotFoundError("Room with id '%s' not found", id)
		}
		return nil, err
	}
	return room, nil
}

// GetRoomByName retrieves a room by its unique name
func (s *RoomService) GetRoomByName(ctx context.Context, name string) (*models.Room, error) {
	room, err := s.repo.GetRoomByName(ctx, name)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewNotFoundError("Room with name '%s' not found", name)
		}
		return nil, err
	}
	return room, nil
}

// ListRooms returns all rooms
func (s *RoomService) ListRooms(ctx context.Context) ([]*models.Room, error) {
	return s.repo.ListRooms(ctx)
}

// DeleteRoom removes a room by id and returns it
func (s *RoomService) DeleteRoom(ctx context.Context, id string) (*models.Room, error) {
	room, err := s.repo.DeleteRoom(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewNotFoundError("Room with id '%s' not found", id)
		}
		return nil, err
	}
	return room, nil
}

// DeleteRoomByName removes a room by its unique name and returns it
func (s *RoomService) DeleteRoomByName(ctx context.Context, name string) (*models.Room, error) {
	room, err := s.repo.DeleteRoomByName(ctx, name)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewNotFoundError("Room with name '%s' not found", name)
		}
		return nil, err
	}
	return room, nil
}
