package models

import (
	"strings"
	"time"
)

// MeetingType classifies a meeting and determines the equipment it needs
type MeetingType string

const (
	MeetingTypeVideoConference MeetingType = "VC"
	MeetingTypeSpecial         MeetingType = "SPEC"
	MeetingTypeRoomSharing     MeetingType = "RS"
	MeetingTypeRoomConference  MeetingType = "RC"
)

// Valid reports whether the type is one of the known tags
func (t MeetingType) Valid() bool {
	switch t {
	case MeetingTypeVideoConference, MeetingTypeSpecial, MeetingTypeRoomSharing, MeetingTypeRoomConference:
		return true
	}
	return false
}

// RequiredTools returns the equipment a meeting of this type needs
func (t MeetingType) RequiredTools() ToolSet {
	switch t {
	case MeetingTypeVideoConference:
		return ToolSet{Screen: true, Webcam: true, Octopus: true}
	case MeetingTypeSpecial:
		return ToolSet{Webcam: true}
	case MeetingTypeRoomConference:
		return ToolSet{Screen: true, Whiteboard: true, Octopus: true}
	default:
		// Room sharing has no equipment requirements
		return ToolSet{}
	}
}

// Meeting represents a committed one-hour booking. RoomID links the meeting
// to the room it was allocated into; a meeting never exists in the store
// without one.
type Meeting struct {
	ID        string      `json:"id" bson:"_id,omitempty"`
	Name      string      `json:"name" bson:"name"`
	StartTime time.Time   `json:"startTime" bson:"startTime"`
	EndTime   time.Time   `json:"endTime" bson:"endTime"`
	Type      MeetingType `json:"type" bson:"type"`
	Attendees int         `json:"attendees" bson:"attendees"`
	RoomID    string      `json:"room,omitempty" bson:"room,omitempty"`
}

// MeetingRequest is the input to a reservation
type MeetingRequest struct {
	Name      string      `json:"name"`
	StartTime time.Time   `json:"startTime"`
	EndTime   time.Time   `json:"endTime"`
	Type      MeetingType `json:"type"`
	Attendees int         `json:"attendees"`
}

// Validate checks the structural constraints on a reservation request.
// Fields are checked in declaration order and the first failure wins; the
// message texts are part of the external contract.
func (r *MeetingRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return NewValidationError("Field `name` is required.")
	}
	if r.StartTime.IsZero() {
		return NewValidationError("Field `startTime` is required.")
	}
	if r.EndTime.IsZero() {
		return NewValidationError("Field `endTime` is required.")
	}
	if r.Type == "" {
		return NewValidationError("Field `type` is required.")
	}
	if !r.Type.Valid() {
		return NewValidationError("`%s` is not a valid enum value for field `type`", r.Type)
	}
	if r.Attendees == 0 {
		return NewValidationError("Field `attendees` is required.")
	}
	if r.Attendees < 1 {
		return NewValidationError("Field `attendees` (%d) is less than minimum allowed value (1)", r.Attendees)
	}
	return nil
}
