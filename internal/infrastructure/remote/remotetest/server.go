// Package remotetest provides an in-process stand-in for the generation
// service, routed with chi, for use in tests.
package remotetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/alexisbeaulieu97/flashgenie/internal/domain/flashcard"
	"github.com/alexisbeaulieu97/flashgenie/internal/infrastructure/remote"
)

// Response is the canned reply for one request. A zero Status means 200.
type Response struct {
	Status int
	Body   string
}

// Cards builds a success response listing cards.
func Cards(cards ...flashcard.Card) Response {
	type card struct {
		Term       string `json:"term"`
		Definition string `json:"definition"`
	}
	items := make([]card, 0, len(cards))
	for _, c := range cards {
		items = append(items, card{Term: c.Term, Definition: c.Definition})
	}
	body, _ := json.Marshal(map[string]interface{}{"flashcards": items})
	return Response{Status: http.StatusOK, Body: string(body)}
}

// Detail builds a failure response carrying a structured detail string.
func Detail(status int, detail string) Response {
	body, _ := json.Marshal(map[string]string{"detail": detail})
	return Response{Status: status, Body: string(body)}
}

// Request is what the stub observed for one call.
type Request struct {
	Topic   string
	Headers http.Header
}

// Server is a running stub service.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
}

// NewServer starts a stub whose replies are produced by respond. The server
// is closed when the test ends.
func NewServer(t testing.TB, respond func(topic string) Response) *Server {
	t.Helper()
	s := &Server{}

	r := chi.NewRouter()
	r.Post(remote.GeneratePath, func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Topic string `json:"topic"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{Topic: body.Topic, Headers: req.Header.Clone()})
		s.mu.Unlock()

		reply := respond(body.Topic)
		status := reply.Status
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply.Body))
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}
