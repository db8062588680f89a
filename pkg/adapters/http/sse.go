package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aretw0/vestibule/pkg/domain"
)

// SubscribeEvents handles the GET /sessions/{sessionID}/events request (SSE).
// Every state change of the session is sent as a JSON StateDiff. The stream ends
// when the client disconnects or the session ends.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request, id SessionID, params SubscribeEventsParams) {
	var filter watchFilter
	if params.Watch != nil {
		filter = parseWatch(*params.Watch)
	}

	flow, err := s.Sessions.Get(r.Context(), id)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	ch, cancel := s.Sessions.Subscribe(id)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	s.logger.Info("SSE: Subscribing to session updates", "session_id", id)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")

	// The first event carries the full current state so late subscribers can sync.
	if initial := domain.Diff(nil, flow.State()); initial != nil {
		writeDiff(w, initial)
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected", "session_id", id)
			return
		case diff, ok := <-ch:
			if !ok {
				fmt.Fprintf(w, "event: end\ndata: %s\n\n", id)
				flusher.Flush()
				return
			}
			if !filter.keep(diff) {
				continue
			}
			writeDiff(w, diff)
			flusher.Flush()
		}
	}
}

func writeDiff(w http.ResponseWriter, diff *domain.StateDiff) {
	data, err := json.Marshal(diff)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
}

// watchFilter selects diffs by the fields they touch. An empty filter keeps all.
type watchFilter map[string]bool

func parseWatch(raw string) watchFilter {
	if raw == "" {
		return nil
	}
	f := make(watchFilter)
	for _, field := range strings.Split(raw, ",") {
		if field = strings.TrimSpace(field); field != "" {
			f[field] = true
		}
	}
	return f
}

func (f watchFilter) keep(diff *domain.StateDiff) bool {
	if len(f) == 0 {
		return true
	}
	return (f["step"] && diff.Step != nil) ||
		(f["selection"] && diff.SelectedGuideID != nil) ||
		(f["preview"] && diff.PreviewFor != nil) ||
		(f["completed"] && diff.Completed != nil) ||
		(f["history"] && diff.HistoryParams != nil)
}
