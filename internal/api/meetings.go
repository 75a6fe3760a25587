package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/navikt/mrooms/internal/models"
	"github.com/navikt/mrooms/internal/service"
	"github.com/navikt/mrooms/internal/utils"
)

// MeetingHandler handles HTTP requests for reservations and meetings
type MeetingHandler struct {
	service *service.MeetingService
}

// NewMeetingHandler creates a new meeting handler with the given service
func NewMeetingHandler(meetingService *service.MeetingService) *MeetingHandler {
	return &MeetingHandler{service: meetingService}
}

// ServeHTTP routes meeting requests.
// Paths: /meeting, /meeting/{id}, /meeting/name/{name}, /meeting/type/{type};
// DELETE /meeting/{name} cancels by name.
func (h *MeetingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	parts := splitPath(r.URL.Path)

	switch {
	case len(parts) == 1:
		switch r.Method {
		case http.MethodGet:
			h.listMeetings(w, r)
		case http.MethodPost:
			h.reserve(w, r)
		case http.MethodDelete:
			h.deleteAllMeetings(w, r)
		default:
			http.NotFound(w, r)
		}
	case r.Method == http.MethodGet && len(parts) == 3 && parts[1] == "name":
		h.getMeetingByName(w, r, parts[2])
	case r.Method == http.MethodGet && len(parts) == 3 && parts[1] == "type":
		h.listMeetingsByType(w, r, parts[2])
	case r.Method == http.MethodGet && len(parts) == 2:
		h.getMeeting(w, r, parts[1])
	case r.Method == http.MethodDelete && len(parts) == 2:
		h.cancelMeeting(w, r, parts[1])
	default:
		http.NotFound(w, r)
	}
}

// reserve handles POST /meeting: allocate a room and commit the booking
func (h *MeetingHandler) reserve(w http.ResponseWriter, r *http.Request) {
	var req models.MeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding meeting request: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	defer r.Body.Close()

	room, err := h.service.Reserve(r.Context(), &req)
	if err != nil {
		log.Printf("Error reserving meeting %s: %v", utils.SanitizeLogString(req.Name), err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"room": room})
}

// listMeetings handles GET /meeting
func (h *MeetingHandler) listMeetings(w http.ResponseWriter, r *http.Request) {
	meetings, err := h.service.ListMeetings(r.Context())
	if err != nil {
		log.Printf("Error listing meetings: %v", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"meetings": meetings})
}

// getMeeting handles GET /meeting/{id}
func (h *MeetingHandler) getMeeting(w http.ResponseWriter, r *http.Request, id string) {
	meeting, err := h.service.GetMeeting(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"meeting": meeting})
}

// getMeetingByName handles GET /meeting/name/{name}
func (h *MeetingHandler) getMeetingByName(w http.ResponseWriter, r *http.Request, name string) {
	meeting, err := h.service.GetMeetingByName(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"meeting": meeting})
}

// listMeetingsByType handles GET /meeting/type/{type}
func (h *MeetingHandler) listMeetingsByType(w http.ResponseWriter, r *http.Request, meetingType string) {
	meetings, err := h.service.ListMeetingsByType(r.Context(), models.MeetingType(meetingType))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"meetings": meetings})
}

// cancelMeeting handles DELETE /meeting/{name}
func (h *MeetingHandler) cancelMeeting(w http.ResponseWriter, r *http.Request, name string) {
	meeting, err := h.service.Cancel(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"meeting": meeting})
}

// deleteAllMeetings handles DELETE /meeting
func (h *MeetingHandler) deleteAllMeetings(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAllMeetings(r.Context()); err != nil {
		log.Printf("Error deleting meetings: %v", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"meetings": true})
}
