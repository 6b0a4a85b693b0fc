package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ConnectivityMessage is shown for every failure that is not a rejection.
const ConnectivityMessage = "Unable to reach the server. Please try again."

var (
	// ErrConnectivity covers transport failures, unexpected statuses and
	// unreadable responses.
	ErrConnectivity = errors.New("api: server unreachable")

	// ErrRejected means the server answered and refused the request.
	ErrRejected = errors.New("api: request rejected")

	// ErrInvalidRequest means the request failed local validation and was
	// never sent.
	ErrInvalidRequest = errors.New("api: invalid request")
)

// RejectedError carries the server's message for a refused request.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return ErrRejected.Error()
	}
	return fmt.Sprintf("%s: %s", ErrRejected, e.Message)
}

func (e *RejectedError) Unwrap() error {
	return ErrRejected
}

// UserMessage converts err into the text shown to the user. It returns ""
// for a nil error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var rejected *RejectedError
	if errors.As(err, &rejected) && rejected.Message != "" {
		return rejected.Message
	}
	if errors.Is(err, ErrRejected) {
		return "The request was rejected."
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fields := make([]string, 0, len(ve))
		for _, fe := range ve {
			fields = append(fields, strings.ToLower(fe.Field()))
		}
		return "Please check: " + strings.Join(fields, ", ") + "."
	}
	if errors.Is(err, ErrInvalidRequest) {
		return "Please fill in all required fields."
	}

	return ConnectivityMessage
}
