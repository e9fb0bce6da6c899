package http

import (
	"encoding/json"
	"net/http"
	"sync"
)

// Event is pushed to subscribers whenever a component is generated or
// a watched source is removed.
type Event struct {
	Kind       string `json:"kind"`
	Source     string `json:"source,omitempty"`
	Identifier string `json:"identifier,omitempty"`
	OutputPath string `json:"outputPath,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Events fans out events to server-sent event streams. Slow
// subscribers drop events rather than block publishers.
type Events struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewEvents() *Events {
	return &Events{
		subs: map[chan Event]struct{}{},
	}
}

func (e *Events) subscribe() chan Event {
	ch := make(chan Event, 8)
	e.mu.Lock()
	e.subs[ch] = struct{}{}
	e.mu.Unlock()
	return ch
}

func (e *Events) unsubscribe(ch chan Event) {
	e.mu.Lock()
	delete(e.subs, ch)
	e.mu.Unlock()
	close(ch)
}

func (e *Events) Publish(event Event) {
	e.mu.Lock()
	for ch := range e.subs {
		select {
		case ch <- event:
		default:
		}
	}
	e.mu.Unlock()
}

func (e *Events) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := e.subscribe()
	defer e.unsubscribe(ch)

	_, _ = w.Write([]byte("event: ready\ndata: 1\n\n"))
	flusher.Flush()

	for {
		select {
		case <-req.Context().Done():
			return
		case event := <-ch:
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			_, _ = w.Write([]byte("event: " + event.Kind + "\ndata: "))
			_, _ = w.Write(data)
			_, _ = w.Write([]byte("\n\n"))
			flusher.Flush()
		}
	}
}
