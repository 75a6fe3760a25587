package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navikt/mrooms/internal/models"
)

func TestToolSetHasAll(t *testing.T) {
	full := models.ToolSet{Screen: true, Whiteboard: true, Webcam: true, Octopus: true}
	vc := models.ToolSet{Screen: true, Webcam: true, Octopus: true}

	assert.True(t, full.HasAll(vc))
	assert.True(t, full.HasAll(models.ToolSet{}))
	assert.True(t, vc.HasAll(vc))
	assert.False(t, vc.HasAll(full), "missing whiteboard")
	assert.False(t, models.ToolSet{Webcam: true}.HasAll(models.ToolSet{Screen: true}))
}

func TestMeetingTypeRequiredTools(t *testing.T) {
	tests := []struct {
		meetingType models.MeetingType
		want        models.ToolSet
	}{
		{models.MeetingTypeVideoConference, models.ToolSet{Screen: true, Webcam: true, Octopus: true}},
		{models.MeetingTypeSpecial, models.ToolSet{Webcam: true}},
		{models.MeetingTypeRoomSharing, models.ToolSet{}},
		{models.MeetingTypeRoomConference, models.ToolSet{Screen: true, Whiteboard: true, Octopus: true}},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.meetingType.RequiredTools(), "type=%s", tc.meetingType)
	}
}

func TestMeetingTypeValid(t *testing.T) {
	assert.True(t, models.MeetingTypeVideoConference.Valid())
	assert.True(t, models.MeetingTypeRoomSharing.Valid())
	assert.False(t, models.MeetingType("VCC").Valid())
	assert.False(t, models.MeetingType("").Valid())
}

func TestMeetingRequestValidate(t *testing.T) {
	start := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)
	valid := func() models.MeetingRequest {
		return models.MeetingRequest{
			Name:      "standup",
			StartTime: start,
			EndTime:   start.Add(time.Hour),
			Type:      models.MeetingTypeVideoConference,
			Attendees: 5,
		}
	}

	t.Run("Valid", func(t *testing.T) {
		req := valid()
		assert.NoError(t, req.Validate())
	})

	t.Run("MissingName", func(t *testing.T) {
		req := valid()
		req.Name = ""
		err := req.Validate()
		require.Error(t, err)
		assert.Equal(t, "Field `name` is required.", err.Error())
	})

	t.Run("MissingStartTime", func(t *testing.T) {
		req := valid()
		req.StartTime = time.Time{}
		err := req.Validate()
		require.Error(t, err)
		assert.Equal(t, "Field `startTime` is required.", err.Error())
	})

	t.Run("MissingEndTime", func(t *testing.T) {
		req := valid()
		req.EndTime = time.Time{}
		err := req.Validate()
		require.Error(t, err)
		assert.Equal(t, "Field `endTime` is required.", err.Error())
	})

	t.Run("MissingType", func(t *testing.T) {
		req := valid()
		req.Type = ""
		err := req.Validate()
		require.Error(t, err)
		assert.Equal(t, "Field `type` is required.", err.Error())
	})

	t.Run("UnknownType", func(t *testing.T) {
		req := valid()
		req.Type = "VCC"
		err := req.Validate()
		require.Error(t, err)
		assert.Equal(t, "`VCC` is not a valid enum value for field `type`", err.Error())
	})

	t.Run("MissingAttendees", func(t *testing.T) {
		req := valid()
		req.Attendees = 0
		err := req.Validate()
		require.Error(t, err)
		assert.Equal(t, "Field `attendees` is required.", err.Error())
	})

	t.Run("NegativeAttendees", func(t *testing.T) {
		req := valid()
		req.Attendees = -2
		err := req.Validate()
		require.Error(t, err)
		assert.Equal(t, "Field `attendees` (-2) is less than minimum allowed value (1)", err.Error())
	})

	t.Run("AllFailuresAreValidationErrors", func(t *testing.T) {
		req := valid()
		req.Name = ""
		assert.Equal(t, models.ErrorKindValidation, models.KindOf(req.Validate()))
	})
}

func TestRoomValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		room := models.Room{Name: "E1001", Capacity: 8}
		assert.NoError(t, room.Validate())
	})

	t.Run("MissingName", func(t *testing.T) {
		room := models.Room{Capacity: 8}
		err := room.Validate()
		require.Error(t, err)
		assert.Equal(t, "Field `name` is required.", err.Error())
	})

	t.Run("MissingCapacity", func(t *testing.T) {
		room := models.Room{Name: "E1001"}
		err := room.Validate()
		require.Error(t, err)
		assert.Equal(t, "Field `capacity` is required.", err.Error())
	})

	t.Run("NegativeCapacity", func(t *testing.T) {
		room := models.Room{Name: "E1001", Capacity: -1}
		err := room.Validate()
		require.Error(t, err)
		assert.Equal(t, "Field `capacity` (-1) is less than minimum allowed value (1)", err.Error())
	})
}

func TestErrorKinds(t *testing.T) {
	assert.Equal(t, models.ErrorKindConflict, models.KindOf(models.NewConflictError("dup")))
	assert.Equal(t, models.ErrorKindNotFound, models.KindOf(models.NewNotFoundError("gone")))
	assert.Equal(t, models.ErrorKindAllocation, models.KindOf(models.NewAllocationError("full")))
	assert.Equal(t, models.ErrorKindInternal, models.KindOf(assert.AnError))
}
