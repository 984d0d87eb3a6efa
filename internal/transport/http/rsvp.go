package http

import (
	"net/http"

	"github.com/cimillas/gatherhub/internal/domain"
)

func handleJoin(w http.ResponseWriter, r *http.Request, roster RosterService, eventID string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}

	count, err := roster.Join(r.Context(), eventID, UserID(r.Context()))
	if err != nil {
		switch err {
		case domain.ErrEventNotFound:
			writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
		case domain.ErrAdmissionDenied:
			writeError(w, http.StatusBadRequest, codeAdmissionDenied, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, rsvpResponse{
		Message:       "joined the event",
		AttendeeCount: count,
	})
}

func handleLeave(w http.ResponseWriter, r *http.Request, roster RosterService, eventID string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}

	count, err := roster.Leave(r.Context(), eventID, UserID(r.Context()))
	if err != nil {
		switch err {
		case domain.ErrEventNotFound:
			writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, rsvpResponse{
		Message:       "left the event",
		AttendeeCount: count,
	})
}

type rsvpResponse struct {
	Message       string `json:"message"`
	AttendeeCount int    `json:"attendees_count"`
}
