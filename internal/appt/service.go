package appt

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates the requested appointment does not exist.
	ErrNotFound = errors.New("appointment not found")
)

// Service is the data collaborator behind the calendar. List takes a
// closed day interval: both start and end are calendar dates and both
// are included, matching how the backend filters.
type Service interface {
	List(ctx context.Context, start, end time.Time, assignee string) ([]Appointment, error)
	Create(ctx context.Context, draft Appointment) (Appointment, error)
	Detail(ctx context.Context, id string) (*Appointment, error)
}
