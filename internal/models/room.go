package models

import "strings"

// ToolSet describes the equipment a room offers
type ToolSet struct {
	Screen     bool `json:"screen" bson:"screen"`
	Whiteboard bool `json:"whiteboard" bson:"whiteboard"`
	Webcam     bool `json:"webcam" bson:"webcam"`
	Octopus    bool `json:"octopus" bson:"octopus"`
}

// HasAll reports whether the set contains every tool in required
func (t ToolSet) HasAll(required ToolSet) bool {
	if required.Screen && !t.Screen {
		return false
	}
	if required.Whiteboard && !t.Whiteboard {
		return false
	}
	if required.Webcam && !t.Webcam {
		return false
	}
	if required.Octopus && !t.Octopus {
		return false
	}
	return true
}

// Room represents a physical meeting room.
// Meetings is a view derived from the meeting store on reads; it is never
// written directly.
type Room struct {
	ID       string    `json:"id" bson:"_id,omitempty"`
	Name     string    `json:"name" bson:"name"`
	Capacity int       `json:"capacity" bson:"capacity"`
	Tools    ToolSet   `json:"tools" bson:"tools"`
	Meetings []Meeting `json:"meetings" bson:"-"`
}

// Validate checks the structural constraints on a room definition
func (r *Room) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return NewValidationError("Field `name` is required.")
	}
	if r.Capacity == 0 {
		return NewValidationError("Field `capacity` is required.")
	}
	if r.Capacity < 1 {
		return NewValidationError("Field `capacity` (%d) is less than minimum allowed value (1)", r.Capacity)
	}
	return nil
}
