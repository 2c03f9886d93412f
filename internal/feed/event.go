package feed

import (
	"fmt"
	"strconv"
	"strings"
)

// Operation is the kind of mutation applied to the booking collection.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// FieldStatus is the field path whose updates drive recipient notification.
const FieldStatus = "status"

// ChangeEvent describes one mutation observed on the booking collection.
// It is published by the booking repository and consumed once by the
// change feed listener; it is never persisted.
type ChangeEvent struct {
	Op            Operation `json:"op"`
	BookingID     uint      `json:"bookingId"`
	ChangedFields []string  `json:"changedFields,omitempty"`
}

// IsStatusUpdate reports whether the event is an update that touched the
// booking status field.
func (e ChangeEvent) IsStatusUpdate() bool {
	if e.Op != OpUpdate {
		return false
	}
	for _, f := range e.ChangedFields {
		if f == FieldStatus {
			return true
		}
	}
	return false
}

// Subject builds the per-booking subject "booking.<id>.changed".
func Subject(bookingID uint) string {
	return fmt.Sprintf("booking.%d.changed", bookingID)
}

// SubjectWildcard matches the change subjects of every booking.
const SubjectWildcard = "booking.*.changed"

// ParseSubject extracts the booking id from "booking.<id>.changed".
func ParseSubject(subject string) (uint, error) {
	parts := strings.Split(subject, ".")
	if len(parts) != 3 {
		return 0, fmt.Errorf("expected 3 parts, got %d", len(parts))
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid booking id %q: %w", parts[1], err)
	}
	return uint(id), nil
}
