package spawner

import (
	"errors"
	"fmt"
)

// SpawnError is a failure to produce or persist a wave.
type SpawnError struct {
	// Code identifies the error category.
	Code SpawnErrorCode

	// Message is a human-readable description.
	Message string

	// WaveID identifies the affected wave, when one was assigned.
	WaveID string

	// Err is the underlying cause.
	Err error
}

// SpawnErrorCode categorizes spawn errors.
type SpawnErrorCode string

const (
	// ErrCodeSolveFailed indicates the solver rejected a candidate or capacity.
	ErrCodeSolveFailed SpawnErrorCode = "SOLVE_FAILED"

	// ErrCodeRecordFailed indicates the recorder could not persist a wave.
	ErrCodeRecordFailed SpawnErrorCode = "RECORD_FAILED"
)

func (e *SpawnError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.WaveID != "" {
		msg += fmt.Sprintf(" (wave=%s)", e.WaveID)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// IsSolveError reports whether err is a SOLVE_FAILED error.
func IsSolveError(err error) bool {
	var se *SpawnError
	return errors.As(err, &se) && se.Code == ErrCodeSolveFailed
}

// IsRecordError reports whether err is a RECORD_FAILED error.
func IsRecordError(err error) bool {
	var se *SpawnError
	return errors.As(err, &se) && se.Code == ErrCodeRecordFailed
}

func newSolveError(msg string, err error) *SpawnError {
	return &SpawnError{Code: ErrCodeSolveFailed, Message: msg, Err: err}
}

func newRecordError(waveID string, err error) *SpawnError {
	return &SpawnError{
		Code:    ErrCodeRecordFailed,
		Message: "recording wave",
		WaveID:  waveID,
		Err:     err,
	}
}
