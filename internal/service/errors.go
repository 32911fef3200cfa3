package service

import (
	"errors"
	"fmt"
)

// Errors caused by user input or record state. They are safe to show to the user.
var (
	ErrTaskNotRecognized       = errors.New("task not recognized")
	ErrAlreadyCompleted        = errors.New("quest already completed today")
	ErrRestAlreadyUsed         = errors.New("rest day already used")
	ErrInvalidNumericInput     = errors.New("invalid numeric input")
	ErrMissingPrerequisiteData = errors.New("missing prerequisite data")
	ErrTimerLimit              = errors.New("too many running timers")
)

// TaskNotRecognizedError carries the quests closest to the rejected input.
type TaskNotRecognizedError struct {
	Input       string
	Suggestions []string
}

func (e *TaskNotRecognizedError) Error() string {
	return fmt.Sprintf("%s: %q", ErrTaskNotRecognized, e.Input)
}

func (e *TaskNotRecognizedError) Unwrap() error {
	return ErrTaskNotRecognized
}
