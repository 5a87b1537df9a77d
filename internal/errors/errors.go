package errors

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned by the auth service on a failed
// password check.
var ErrInvalidCredentials = errors.New("invalid credentials")

// NotFoundError reports that a record id has no match in its collection.
// The operation aborts and the caller re-renders from current state.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ProtectedRecordError reports an attempted mutation of a protected seed
// record.
type ProtectedRecordError struct {
	Resource string
	ID       string
}

func (e *ProtectedRecordError) Error() string {
	return fmt.Sprintf("%s %s is protected and cannot be modified", e.Resource, e.ID)
}

// ValidationError reports an empty or otherwise invalid required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// PayloadTooLargeError reports a payload rejected by the pre-flight size
// check, before any persistence was attempted.
type PayloadTooLargeError struct {
	Size  int64
	Limit int64
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("payload of %d bytes exceeds limit of %d bytes", e.Size, e.Limit)
}

// QuotaExceededError reports that the persistence substrate rejected a
// write after the pre-flight check passed. Previously persisted data is
// untouched.
type QuotaExceededError struct {
	Key  string
	Used int64
	Cap  int64
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("storage quota exceeded writing %q (%d of %d bytes used)", e.Key, e.Used, e.Cap)
}

// MalformedStateError reports stored JSON that fails to parse. It is
// surfaced instead of silently yielding an empty collection so an
// operator can intervene before real data is overwritten on the next
// save.
type MalformedStateError struct {
	Key string
	Err error
}

func (e *MalformedStateError) Error() string {
	return fmt.Sprintf("stored state under %q is malformed: %v", e.Key, e.Err)
}

func (e *MalformedStateError) Unwrap() error { return e.Err }
