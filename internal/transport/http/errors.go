package http

import (
	"encoding/json"
	"net/http"

	"github.com/cimillas/gatherhub/internal/domain"
)

const (
	codeMethodNotAllowed        = "method_not_allowed"
	codeNotFound                = "not_found"
	codeInvalidRequestBody      = "invalid_request_body"
	codeUnauthorized            = "unauthorized"
	codeForbidden               = "forbidden"
	codeEventNotFound           = "event_not_found"
	codeAdmissionDenied         = "admission_denied"
	codeTitleRequired           = "title_required"
	codeDescriptionRequired     = "description_required"
	codeLocationRequired        = "location_required"
	codeInvalidStartsAt         = "invalid_starts_at"
	codeInvalidCapacity         = "invalid_capacity"
	codeInvalidCategory         = "invalid_category"
	codeCapacityBelowAttendance = "capacity_below_attendance"
	codeNameRequired            = "name_required"
	codeInvalidEmail            = "invalid_email"
	codePasswordRequired        = "password_required"
	codeEmailTaken              = "email_taken"
	codeInvalidCredentials      = "invalid_credentials"
	codeImageTooLarge           = "image_too_large"
	codeInternalError           = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeEventError maps lifecycle and validation failures onto the HTTP
// error taxonomy shared by the event handlers.
func writeEventError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrEventNotFound:
		writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
	case domain.ErrForbidden:
		writeError(w, http.StatusForbidden, codeForbidden, err.Error())
	case domain.ErrTitleRequired:
		writeError(w, http.StatusBadRequest, codeTitleRequired, err.Error())
	case domain.ErrDescriptionRequired:
		writeError(w, http.StatusBadRequest, codeDescriptionRequired, err.Error())
	case domain.ErrLocationRequired:
		writeError(w, http.StatusBadRequest, codeLocationRequired, err.Error())
	case domain.ErrStartsAtRequired:
		writeError(w, http.StatusBadRequest, codeInvalidStartsAt, err.Error())
	case domain.ErrInvalidCapacity:
		writeError(w, http.StatusBadRequest, codeInvalidCapacity, err.Error())
	case domain.ErrInvalidCategory:
		writeError(w, http.StatusBadRequest, codeInvalidCategory, err.Error())
	case domain.ErrCapacityBelowAttendance:
		writeError(w, http.StatusConflict, codeCapacityBelowAttendance, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
