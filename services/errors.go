package services

import "net/http"

// APIError is a request-level failure with a stable code and the HTTP
// status it maps to. Services return these for every expected failure;
// anything else is treated as a 500 by the controllers.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

var (
	ErrCannotSwipeSelf = &APIError{Code: "CANNOT_SWIPE_SELF", Message: "you cannot swipe on yourself", Status: http.StatusBadRequest}
	ErrInvalidAction   = &APIError{Code: "INVALID_ACTION", Message: "action must be LIKE or PASS", Status: http.StatusBadRequest}
	ErrAlreadySwiped   = &APIError{Code: "ALREADY_SWIPED", Message: "you have already swiped on this user", Status: http.StatusConflict}
	ErrProfileNotFound = &APIError{Code: "PROFILE_NOT_FOUND", Message: "profile not found", Status: http.StatusNotFound}
	ErrMatchNotFound   = &APIError{Code: "MATCH_NOT_FOUND", Message: "match not found", Status: http.StatusNotFound}
	ErrBlocked         = &APIError{Code: "BLOCKED", Message: "interaction not allowed between these users", Status: http.StatusForbidden}
	ErrNotParticipant  = &APIError{Code: "NOT_PARTICIPANT", Message: "you are not a participant of this match", Status: http.StatusForbidden}
)
