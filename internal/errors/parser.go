package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorInfo carries everything a controller needs to answer a failed
// service call.
type ErrorInfo struct {
	Status  int    // HTTP status code
	Code    string // error code (codes.go)
	Message string // human-readable message
}

// ParseError maps a service error onto a status, code and message.
// Sensitive details stay out of the message; the operator-facing cases
// (malformed state, quota) keep enough context to act on.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    InternalServerError,
			Message: "An internal error occurred",
		}
	}

	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return ErrorInfo{
			Status:  http.StatusNotFound,
			Code:    ResourceNotFound,
			Message: fmt.Sprintf("%s not found", titleResource(notFound.Resource)),
		}
	}

	var protected *ProtectedRecordError
	if errors.As(err, &protected) {
		return ErrorInfo{
			Status:  http.StatusForbidden,
			Code:    ResourceProtected,
			Message: "Cannot delete the demo static store",
		}
	}

	var validation *ValidationError
	if errors.As(err, &validation) {
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    ValidationRequired,
			Message: validation.Error(),
		}
	}

	var tooLarge *PayloadTooLargeError
	if errors.As(err, &tooLarge) {
		return ErrorInfo{
			Status:  http.StatusRequestEntityTooLarge,
			Code:    UploadFileTooLarge,
			Message: fmt.Sprintf("File is too large: limit is %d bytes", tooLarge.Limit),
		}
	}

	var quota *QuotaExceededError
	if errors.As(err, &quota) {
		return ErrorInfo{
			Status:  http.StatusInsufficientStorage,
			Code:    StorageQuotaExceeded,
			Message: "Storage quota exceeded. Delete old records or upload smaller files",
		}
	}

	var malformed *MalformedStateError
	if errors.As(err, &malformed) {
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    StorageMalformed,
			Message: fmt.Sprintf("Stored data under %q is corrupted and needs operator attention", malformed.Key),
		}
	}

	if errors.Is(err, ErrInvalidCredentials) {
		return ErrorInfo{
			Status:  http.StatusUnauthorized,
			Code:    SessionInvalidCredentials,
			Message: "Incorrect password",
		}
	}

	return ErrorInfo{
		Status:  http.StatusInternalServerError,
		Code:    InternalServerError,
		Message: defaultMessage(context),
	}
}

// ParseAndRespond parses err and writes the response in one step.
func ParseAndRespond(c interface{ JSON(int, any) }, err error, context string) {
	info := ParseError(err, context)
	c.JSON(info.Status, ErrorResponse{
		Error:   info.Code,
		Message: info.Message,
	})
}

func titleResource(resource string) string {
	switch resource {
	case "store":
		return "Store"
	case "member":
		return "Member"
	case "vendor":
		return "Vendor"
	case "query":
		return "Query"
	case "document":
		return "Document"
	case "promotion":
		return "Promotion"
	default:
		return "Record"
	}
}

func defaultMessage(context string) string {
	switch context {
	case "create", "upload":
		return "Saving failed. Please try again later"
	case "update":
		return "Updating failed. Please try again later"
	case "delete":
		return "Deleting failed. Please try again later"
	default:
		return "An internal error occurred. Please try again later"
	}
}
