package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/r3labs/sse/v2"

	"github.com/navikt/mrooms/internal/service"
)

const bookingStream = "bookings"

// EventServer streams booking events to connected clients over SSE
type EventServer struct {
	server *sse.Server
}

// NewEventServer creates the SSE server with the booking stream prepared
func NewEventServer() *EventServer {
	server := sse.New()
	server.AutoReplay = false
	server.CreateStream(bookingStream)

	return &EventServer{server: server}
}

// NotifyBookingUpdate publishes a booking event to all connected clients.
// Registered as an update callback on the meeting service.
func (e *EventServer) NotifyBookingUpdate(event service.BookingEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error encoding booking event: %v", err)
		return
	}

	e.server.Publish(bookingStream, &sse.Event{
		Event: []byte(event.Action),
		Data:  data,
	})
}

// ServeHTTP subscribes the client to the booking stream
func (e *EventServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// The stream is implicit in the endpoint; fill in the query parameter
	// the SSE library selects streams by
	q := r.URL.Query()
	if q.Get("stream") == "" {
		q.Set("stream", bookingStream)
		r.URL.RawQuery = q.Encode()
	}

	e.server.ServeHTTP(w, r)
}

// Shutdown closes all client connections
func (e *EventServer) Shutdown() {
	e.server.Close()
}
