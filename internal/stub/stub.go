package stub

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/dnbonthebike/ridemap/internal/model"
)

// Server holds the in-memory backend state. All handlers serialize on one
// mutex; suggestion approval mutates the suggestion and its event under the
// same lock, mirroring the backend's transactional behavior.
type Server struct {
	mu             sync.Mutex
	adminKey       string
	clock          func() time.Time
	events         map[int64]*model.Event
	suggestions    map[int64]*model.VideoSuggestion
	organizers     map[int64]*model.Organizer
	nextEvent      int64
	nextSuggestion int64
	nextOrganizer  int64
}

// New creates an empty stub backend guarded by the given admin key.
func New(adminKey string) *Server {
	return &Server{
		adminKey:    adminKey,
		clock:       time.Now,
		events:      make(map[int64]*model.Event),
		suggestions: make(map[int64]*model.VideoSuggestion),
		organizers:  make(map[int64]*model.Organizer),
	}
}

// SetClock overrides the timestamp source.
func (s *Server) SetClock(clock func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
}

// SeedEvent inserts an event, assigning an id and creation time when unset,
// and returns the stored value.
func (s *Server) SeedEvent(e model.Event) model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == 0 {
		s.nextEvent++
		e.ID = s.nextEvent
	} else if e.ID > s.nextEvent {
		s.nextEvent = e.ID
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock()
	}
	if e.Status == "" {
		e.Status = model.StatusApproved
	}
	stored := e
	s.events[e.ID] = &stored
	return e
}

// SeedOrganizer inserts an organizer and returns the stored value.
func (s *Server) SeedOrganizer(o model.Organizer) model.Organizer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == 0 {
		s.nextOrganizer++
		o.ID = s.nextOrganizer
	} else if o.ID > s.nextOrganizer {
		s.nextOrganizer = o.ID
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = s.clock()
	}
	stored := o
	s.organizers[o.ID] = &stored
	return o
}

// SeedSuggestion inserts a video suggestion and returns the stored value.
func (s *Server) SeedSuggestion(sg model.VideoSuggestion) model.VideoSuggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sg.ID == 0 {
		s.nextSuggestion++
		sg.ID = s.nextSuggestion
	} else if sg.ID > s.nextSuggestion {
		s.nextSuggestion = sg.ID
	}
	if sg.CreatedAt.IsZero() {
		sg.CreatedAt = s.clock()
	}
	if sg.Status == "" {
		sg.Status = model.StatusPending
	}
	stored := sg
	s.suggestions[sg.ID] = &stored
	return sg
}

// Handler returns the HTTP surface of the stub.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /events", s.listEvents)
	mux.HandleFunc("POST /events", s.createEvent)
	mux.HandleFunc("GET /events/organizer/{id}", s.listEventsByOrganizer)
	mux.HandleFunc("GET /organizers", s.listOrganizers)
	mux.HandleFunc("POST /suggestions/video", s.createSuggestion)

	mux.HandleFunc("GET /admin/events", s.requireAdmin(s.listAllEvents))
	mux.HandleFunc("GET /admin/events/pending", s.requireAdmin(s.listPendingEvents))
	mux.HandleFunc("PUT /admin/events/{id}", s.requireAdmin(s.updateEvent))
	mux.HandleFunc("DELETE /admin/events/{id}", s.requireAdmin(s.deleteEvent))
	mux.HandleFunc("PATCH /admin/events/{id}/approve", s.requireAdmin(s.setEventStatus(model.StatusApproved)))
	mux.HandleFunc("PATCH /admin/events/{id}/reject", s.requireAdmin(s.setEventStatus(model.StatusRejected)))
	mux.HandleFunc("GET /admin/suggestions", s.requireAdmin(s.listSuggestions))
	mux.HandleFunc("PATCH /admin/suggestions/{id}/approve", s.requireAdmin(s.approveSuggestion))
	mux.HandleFunc("PATCH /admin/suggestions/{id}/reject", s.requireAdmin(s.rejectSuggestion))

	return mux
}

func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(s.adminKey)) != 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

type eventsResponse struct {
	Events []model.Event `json:"events"`
	Total  int           `json:"total"`
}

type organizersResponse struct {
	Organizers []model.Organizer `json:"organizers"`
	Total      int               `json:"total"`
}

type suggestionsResponse struct {
	Suggestions []model.VideoSuggestion `json:"suggestions"`
	Total       int                     `json:"total"`
}

func (s *Server) snapshotEvents(keep func(*model.Event) bool) []model.Event {
	out := make([]model.Event, 0, len(s.events))
	for _, e := range s.events {
		if keep(e) {
			out = append(out, *e)
		}
	}
	return out
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	events := s.snapshotEvents(func(e *model.Event) bool { return e.Status == model.StatusApproved })
	s.mu.Unlock()

	sort.Slice(events, func(i, j int) bool { return events[i].EventDate.Before(events[j].EventDate) })
	writeJSON(w, http.StatusOK, eventsResponse{Events: events, Total: len(events)})
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.nextEvent++
	e := model.Event{
		ID:           s.nextEvent,
		Title:        req.Title,
		Description:  req.Description,
		Organizer:    req.Organizer,
		LocationName: req.LocationName,
		Country:      req.Country,
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
		EventDate:    req.EventDate,
		ImageURL:     req.ImageURL,
		VideoURL:     req.VideoURL,
		EventLink:    req.EventLink,
		Status:       model.StatusPending,
		CreatedAt:    s.clock(),
	}
	s.events[e.ID] = &e
	created := e
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) listEventsByOrganizer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	events := s.snapshotEvents(func(e *model.Event) bool {
		return e.Status == model.StatusApproved && e.OrganizerID != nil && *e.OrganizerID == id
	})
	s.mu.Unlock()

	sort.Slice(events, func(i, j int) bool { return events[j].EventDate.Before(events[i].EventDate) })
	writeJSON(w, http.StatusOK, eventsResponse{Events: events, Total: len(events)})
}

func (s *Server) listOrganizers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	organizers := make([]model.Organizer, 0, len(s.organizers))
	for _, o := range s.organizers {
		organizers = append(organizers, *o)
	}
	s.mu.Unlock()

	sort.Slice(organizers, func(i, j int) bool { return organizers[i].Name < organizers[j].Name })
	writeJSON(w, http.StatusOK, organizersResponse{Organizers: organizers, Total: len(organizers)})
}

func (s *Server) createSuggestion(w http.ResponseWriter, r *http.Request) {
	var req model.SuggestVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.nextSuggestion++
	sg := model.VideoSuggestion{
		ID:        s.nextSuggestion,
		EventID:   req.EventID,
		VideoURL:  req.VideoURL,
		Status:    model.StatusPending,
		CreatedAt: s.clock(),
	}
	s.suggestions[sg.ID] = &sg
	s.mu.Unlock()

	w.WriteHeader(http.StatusCreated)
}

func (s *Server) listAllEvents(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	events := s.snapshotEvents(func(*model.Event) bool { return true })
	s.mu.Unlock()

	sort.Slice(events, func(i, j int) bool {
		if !events[i].CreatedAt.Equal(events[j].CreatedAt) {
			return events[j].CreatedAt.Before(events[i].CreatedAt)
		}
		return events[i].ID < events[j].ID
	})
	writeJSON(w, http.StatusOK, eventsResponse{Events: events, Total: len(events)})
}

func (s *Server) listPendingEvents(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	events := s.snapshotEvents(func(e *model.Event) bool { return e.Status == model.StatusPending })
	s.mu.Unlock()

	sort.Slice(events, func(i, j int) bool { return events[j].CreatedAt.Before(events[i].CreatedAt) })
	writeJSON(w, http.StatusOK, eventsResponse{Events: events, Total: len(events)})
}

func (s *Server) updateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	var req model.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	e, found := s.events[id]
	if !found {
		s.mu.Unlock()
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = req.Description
	}
	if req.Organizer != nil {
		e.Organizer = *req.Organizer
	}
	if req.LocationName != nil {
		e.LocationName = *req.LocationName
	}
	if req.Country != nil {
		e.Country = req.Country
	}
	if req.Latitude != nil {
		e.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		e.Longitude = *req.Longitude
	}
	if req.EventDate != nil {
		e.EventDate = *req.EventDate
	}
	if req.ImageURL != nil {
		e.ImageURL = req.ImageURL
	}
	if req.VideoURL != nil {
		e.VideoURL = req.VideoURL
	}
	if req.EventLink != nil {
		e.EventLink = req.EventLink
	}
	if req.Status != nil {
		e.Status = *req.Status
	}
	updated := *e
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	_, found := s.events[id]
	delete(s.events, id)
	s.mu.Unlock()

	if !found {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setEventStatus(status model.EventStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		e, found := s.events[id]
		if !found {
			s.mu.Unlock()
			w.WriteHeader(http.StatusNotFound)
			return
		}
		e.Status = status
		updated := *e
		s.mu.Unlock()

		writeJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) listSuggestions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	suggestions := make([]model.VideoSuggestion, 0, len(s.suggestions))
	for _, sg := range s.suggestions {
		if sg.Status != model.StatusPending {
			continue
		}
		copied := *sg
		if e, found := s.events[sg.EventID]; found {
			copied.EventTitle = e.Title
		} else {
			copied.EventTitle = "Unknown Event"
		}
		suggestions = append(suggestions, copied)
	}
	s.mu.Unlock()

	sort.Slice(suggestions, func(i, j int) bool {
		if !suggestions[i].CreatedAt.Equal(suggestions[j].CreatedAt) {
			return suggestions[j].CreatedAt.Before(suggestions[i].CreatedAt)
		}
		return suggestions[i].ID < suggestions[j].ID
	})
	writeJSON(w, http.StatusOK, suggestionsResponse{Suggestions: suggestions, Total: len(suggestions)})
}

func (s *Server) approveSuggestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	sg, found := s.suggestions[id]
	if !found {
		s.mu.Unlock()
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if e, exists := s.events[sg.EventID]; exists {
		url := sg.VideoURL
		e.VideoURL = &url
	}
	sg.Status = model.StatusApproved
	s.mu.Unlock()

	w.WriteHeader(http.StatusOK)
}

func (s *Server) rejectSuggestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	sg, found := s.suggestions[id]
	if !found {
		s.mu.Unlock()
		w.WriteHeader(http.StatusNotFound)
		return
	}
	sg.Status = model.StatusRejected
	s.mu.Unlock()

	w.WriteHeader(http.StatusOK)
}
