package api

import (
	"log"
	"net/http"
	"time"

	"github.com/navikt/mrooms/internal/service"
)

// SetupRoutes configures the HTTP routes for the API. The event server is
// optional; pass nil to run without the SSE endpoint.
func SetupRoutes(roomService *service.RoomService, meetingService *service.MeetingService, events *EventServer) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check endpoints for Kubernetes
	mux.HandleFunc("/health/live", HealthLiveHandler)
	mux.HandleFunc("/health/ready", HealthReadyHandler)

	// Room management endpoints
	roomHandler := NewRoomHandler(roomService)
	mux.Handle("/room", roomHandler)
	mux.Handle("/room/", roomHandler)

	// Reservation and meeting endpoints
	meetingHandler := NewMeetingHandler(meetingService)
	mux.Handle("/meeting", meetingHandler)
	mux.Handle("/meeting/", meetingHandler)

	// Booking event stream
	if events != nil {
		mux.Handle("/events", events)
	}

	return mux
}

// LoggingMiddleware logs each request method, path, remote address and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s - %v", r.Method, r.URL.Path, r.RemoteAddr, time.Since(start))
	})
}
