package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cimillas/gatherhub/internal/app"
	"github.com/cimillas/gatherhub/internal/domain"
)

const maxUploadBytes = 10 << 20

// EventService is the minimal interface needed by the event endpoints.
type EventService interface {
	Create(ctx context.Context, actorID string, in app.CreateEventInput) (domain.Event, error)
	Get(ctx context.Context, eventID string) (domain.Event, error)
	Update(ctx context.Context, eventID, actorID string, in app.UpdateEventInput) (domain.Event, error)
	Delete(ctx context.Context, eventID, actorID string) error
	ListUpcoming(ctx context.Context) ([]domain.Event, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Event, error)
}

// ImageSaver stores an uploaded image payload and returns its reference.
type ImageSaver interface {
	Save(filename string, r io.Reader) (string, error)
}

// HandleEvents returns an HTTP handler for the event collection: listing
// upcoming events and creating new ones.
func HandleEvents(svc EventService, images ImageSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			events, err := svc.ListUpcoming(r.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			writeEventList(w, events)
		case http.MethodPost:
			handleCreateEvent(w, r, svc, images)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// RosterService is the minimal interface needed by the join/leave
// endpoints.
type RosterService interface {
	Join(ctx context.Context, eventID, userID string) (int, error)
	Leave(ctx context.Context, eventID, userID string) (int, error)
}

// HandleEventTree routes everything under /events/: my-events, single
// events, and the roster join/leave actions.
func HandleEventTree(svc EventService, roster RosterService, images ImageSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) < 2 || parts[0] != "events" || parts[1] == "" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch {
		case len(parts) == 2 && parts[1] == "my-events":
			handleMyEvents(w, r, svc)
		case len(parts) == 2:
			handleEventByID(w, r, svc, images, parts[1])
		case len(parts) == 3 && parts[2] == "rsvp":
			handleJoin(w, r, roster, parts[1])
		case len(parts) == 3 && parts[2] == "leave":
			handleLeave(w, r, roster, parts[1])
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

func handleMyEvents(w http.ResponseWriter, r *http.Request, svc EventService) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}
	events, err := svc.ListByOwner(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}
	writeEventList(w, events)
}

func handleEventByID(w http.ResponseWriter, r *http.Request, svc EventService, images ImageSaver, eventID string) {
	switch r.Method {
	case http.MethodGet:
		event, err := svc.Get(r.Context(), eventID)
		if err != nil {
			writeEventError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newEventResponse(event))
	case http.MethodPut:
		handleUpdateEvent(w, r, svc, images, eventID)
	case http.MethodDelete:
		if err := svc.Delete(r.Context(), eventID, UserID(r.Context())); err != nil {
			writeEventError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "event deleted"})
	default:
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	}
}

func handleCreateEvent(w http.ResponseWriter, r *http.Request, svc EventService, images ImageSaver) {
	var in app.CreateEventInput

	if isMultipart(r) {
		form, ok := parseEventForm(w, r, images)
		if !ok {
			return
		}
		in = app.CreateEventInput{
			Title:       form.stringValue("title"),
			Description: form.stringValue("description"),
			Location:    form.stringValue("location"),
			Category:    form.stringValue("category"),
			ImageURL:    form.imageURL,
		}
		if raw := form.stringValue("starts_at"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidStartsAt, "invalid starts_at format")
				return
			}
			in.StartsAt = parsed
		}
		if raw := form.stringValue("capacity"); raw != "" {
			capacity, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidCapacity, domain.ErrInvalidCapacity.Error())
				return
			}
			in.Capacity = capacity
		}
	} else {
		var req createEventRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		in = app.CreateEventInput{
			Title:       req.Title,
			Description: req.Description,
			Location:    req.Location,
			Capacity:    req.Capacity,
			Category:    req.Category,
			ImageURL:    req.ImageURL,
		}
		if req.StartsAt != "" {
			parsed, err := time.Parse(time.RFC3339, req.StartsAt)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidStartsAt, "invalid starts_at format")
				return
			}
			in.StartsAt = parsed
		}
	}

	event, err := svc.Create(r.Context(), UserID(r.Context()), in)
	if err != nil {
		writeEventError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newEventResponse(event))
}

func handleUpdateEvent(w http.ResponseWriter, r *http.Request, svc EventService, images ImageSaver, eventID string) {
	var in app.UpdateEventInput

	if isMultipart(r) {
		form, ok := parseEventForm(w, r, images)
		if !ok {
			return
		}
		in.Title = form.optionalValue("title")
		in.Description = form.optionalValue("description")
		in.Location = form.optionalValue("location")
		in.Category = form.optionalValue("category")
		if raw := form.optionalValue("starts_at"); raw != nil {
			parsed, err := time.Parse(time.RFC3339, *raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidStartsAt, "invalid starts_at format")
				return
			}
			in.StartsAt = &parsed
		}
		if raw := form.optionalValue("capacity"); raw != nil {
			capacity, err := strconv.Atoi(*raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidCapacity, domain.ErrInvalidCapacity.Error())
				return
			}
			in.Capacity = &capacity
		}
		if form.imageURL != "" {
			in.ImageURL = &form.imageURL
		}
	} else {
		var req updateEventRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		in.Title = req.Title
		in.Description = req.Description
		in.Location = req.Location
		in.Capacity = req.Capacity
		in.Category = req.Category
		in.ImageURL = req.ImageURL
		if req.StartsAt != nil {
			parsed, err := time.Parse(time.RFC3339, *req.StartsAt)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidStartsAt, "invalid starts_at format")
				return
			}
			in.StartsAt = &parsed
		}
	}

	event, err := svc.Update(r.Context(), eventID, UserID(r.Context()), in)
	if err != nil {
		writeEventError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newEventResponse(event))
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// eventForm carries parsed multipart fields plus the stored image ref, if
// an image part was uploaded.
type eventForm struct {
	values   map[string][]string
	imageURL string
}

func (f eventForm) stringValue(key string) string {
	vals := f.values[key]
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

// optionalValue distinguishes "field absent" from "field set to empty",
// so partial updates only touch supplied fields.
func (f eventForm) optionalValue(key string) *string {
	vals, ok := f.values[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}

func parseEventForm(w http.ResponseWriter, r *http.Request, images ImageSaver) (eventForm, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, codeImageTooLarge, "invalid or oversized form")
		return eventForm{}, false
	}

	form := eventForm{values: r.MultipartForm.Value}

	file, header, err := r.FormFile("image")
	switch err {
	case nil:
		defer func() { _ = file.Close() }()
		ref, err := images.Save(header.Filename, file)
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "failed to store image")
			return eventForm{}, false
		}
		form.imageURL = ref
	case http.ErrMissingFile:
		// image is optional
	default:
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid image part")
		return eventForm{}, false
	}

	return form, true
}

func writeEventList(w http.ResponseWriter, events []domain.Event) {
	resp := make([]eventResponse, 0, len(events))
	for _, event := range events {
		resp = append(resp, newEventResponse(event))
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type createEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartsAt    string `json:"starts_at"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url,omitempty"`
}

type updateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StartsAt    *string `json:"starts_at"`
	Location    *string `json:"location"`
	Capacity    *int    `json:"capacity"`
	Category    *string `json:"category"`
	ImageURL    *string `json:"image_url"`
}

type eventResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartsAt      time.Time `json:"starts_at"`
	Location      string    `json:"location"`
	Capacity      int       `json:"capacity"`
	Category      string    `json:"category"`
	ImageURL      string    `json:"image_url,omitempty"`
	OwnerID       string    `json:"owner_id"`
	AttendeeCount int       `json:"attendees_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func newEventResponse(event domain.Event) eventResponse {
	return eventResponse{
		ID:            event.ID,
		Title:         event.Title,
		Description:   event.Description,
		StartsAt:      event.StartsAt,
		Location:      event.Location,
		Capacity:      event.Capacity,
		Category:      string(event.Category),
		ImageURL:      event.ImageURL,
		OwnerID:       event.OwnerID,
		AttendeeCount: event.AttendeeCount,
		CreatedAt:     event.CreatedAt,
		UpdatedAt:     event.UpdatedAt,
	}
}
