package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/navikt/mrooms/internal/models"
	"github.com/navikt/mrooms/internal/service"
)

// RoomHandler handles HTTP requests for room management
type RoomHandler struct {
	service *service.RoomService
}

// NewRoomHandler creates a new room handler with the given service
func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{service: roomService}
}

// ServeHTTP routes room requests.
// Paths: /room, /room/{id}, /room/name/{name}
func (h *RoomHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	parts := splitPath(r.URL.Path)

	switch {
	case r.Method == http.MethodGet && len(parts) == 1:
		h.listRooms(w, r)
	case r.Method == http.MethodPost && len(parts) == 1:
		h.createRoom(w, r)
	case len(parts) == 3 && parts[1] == "name":
		switch r.Method {
		case http.MethodGet:
			h.getRoomByName(w, r, parts[2])
		case http.MethodDelete:
			h.deleteRoomByName(w, r, parts[2])
		default:
			http.NotFound(w, r)
		}
	case len(parts) == 2:
		switch r.Method {
		case http.MethodGet:
			h.getRoom(w, r, parts[1])
		case http.MethodDelete:
			h.deleteRoom(w, r, parts[1])
		default:
			http.NotFound(w, r)
		}
	default:
		http.NotFound(w, r)
	}
}

// createRoom handles POST /room
func (h *RoomHandler) createRoom(w http.ResponseWriter, r *http.Request) {
	var room models.Room
	if err := json.NewDecoder(r.Body).Decode(&room); err != nil {
		log.Printf("Error decoding room request: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	defer r.Body.Close()

	created, err := h.service.CreateRoom(r.Context(), &room)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"room": created})
}

// listRooms handles GET /room
func (h *RoomHandler) listRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.service.ListRooms(r.Context())
	if err != nil {
		log.Printf("Error listing rooms: %v", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

// getRoom handles GET /room/{id}
func (h *RoomHandler) getRoom(w http.ResponseWriter, r *http.Request, id string) {
	room, err := h.service.GetRoom(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"room": room})
}

// getRoomByName handles GET /room/name/{name}
func (h *RoomHandler) getRoomByName(w http.ResponseWriter, r *http.Request, name string) {
	room, err := h.service.GetRoomByName(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"room": room})
}

// deleteRoom handles DELETE /room/{id}
func (h *RoomHandler) deleteRoom(w http.ResponseWriter, r *http.Request, id string) {
	room, err := h.service.DeleteRoom(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"room": room})
}

// deleteRoomByName handles DELETE /room/name/{name}
func (h *RoomHandler) deleteRoomByName(w http.ResponseWriter, r *http.Request, name string) {
	room, err := h.service.DeleteRoomByName(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"room": room})
}
