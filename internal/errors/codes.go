package errors

// Error code constants returned to the admin console.
// Format: CATEGORY_SPECIFIC_DETAIL. The frontend maps these codes to
// display messages.

const (
	// ==================== Session (SESSION_) ====================
	SessionUnauthorized       = "SESSION_UNAUTHORIZED"        // login required
	SessionInvalidCredentials = "SESSION_INVALID_CREDENTIALS" // wrong password
	SessionExpired            = "SESSION_EXPIRED"             // 24h window elapsed
	SessionTokenInvalid       = "SESSION_TOKEN_INVALID"       // bad bearer token

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed request body
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // unparseable id
	ValidationRequired     = "VALIDATION_REQUIRED"      // required field missing

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound  = "RESOURCE_NOT_FOUND"  // record id has no match
	ResourceProtected = "RESOURCE_PROTECTED"  // protected seed record

	// ==================== Uploads (UPLOAD_) ====================
	UploadFileTooLarge = "UPLOAD_FILE_TOO_LARGE" // pre-flight size check

	// ==================== Storage (STORAGE_) ====================
	StorageQuotaExceeded = "STORAGE_QUOTA_EXCEEDED" // substrate rejected write
	StorageMalformed     = "STORAGE_MALFORMED"      // stored JSON unparseable

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR"
	InternalExternalAPI = "INTERNAL_EXTERNAL_API" // archive upload etc.
)
