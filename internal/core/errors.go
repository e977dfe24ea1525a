package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeRoomFull       = "room_full"
	ErrCodeRoomInactive   = "room_inactive"
	ErrCodeRoomNotFound   = "room_not_found"
	ErrCodeWrongRoomKind  = "wrong_room_kind"
	ErrCodeNotInRoom      = "not_in_room"
	ErrCodeBadRequest     = "bad_request"
	ErrCodeUnknownRequest = "unknown_request"
	ErrCodeRateLimited    = "rate_limited"
)

var (
	ErrRoomFull      = errors.New("room is full")
	ErrRoomInactive  = errors.New("room is no longer active")
	ErrRoomNotFound  = errors.New("room not found")
	ErrWrongRoomKind = errors.New("action not allowed for this room kind")
	ErrNotInRoom     = errors.New("not in a room")
	ErrBadRequest    = errors.New("bad request")

	// ErrDuplicateConnection is returned by the registry when a connection is
	// already registered. The matchmaker resolves it by reusing the existing
	// participant, so it never reaches clients.
	ErrDuplicateConnection = errors.New("connection already registered")

	// ErrHubStopped is returned by hub calls once Run has exited.
	ErrHubStopped = errors.New("hub stopped")
)

var errorCodes = map[error]string{
	ErrRoomFull:      ErrCodeRoomFull,
	ErrRoomInactive:  ErrCodeRoomInactive,
	ErrRoomNotFound:  ErrCodeRoomNotFound,
	ErrWrongRoomKind: ErrCodeWrongRoomKind,
	ErrNotInRoom:     ErrCodeNotInRoom,
	ErrBadRequest:    ErrCodeBadRequest,
}

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
	err     error
}

func (e *CoreError) Error() string {
	return e.Message
}

// Unwrap exposes the sentinel so callers can use errors.Is.
func (e *CoreError) Unwrap() error {
	return e.err
}

func coreError(sentinel error) *CoreError {
	code, ok := errorCodes[sentinel]
	if !ok {
		code = ErrCodeBadRequest
	}
	return &CoreError{Code: code, Message: sentinel.Error(), err: sentinel}
}

func badRequest(msg string) *CoreError {
	return &CoreError{Code: ErrCodeBadRequest, Message: msg, err: ErrBadRequest}
}

// AsCoreError converts err into a CoreError, keeping the code of a wrapped one.
func AsCoreError(err error) *CoreError {
	if err == nil {
		return nil
	}
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce
	}
	for sentinel := range errorCodes {
		if errors.Is(err, sentinel) {
			return coreError(sentinel)
		}
	}
	return &CoreError{Code: "internal", Message: err.Error(), err: err}
}
