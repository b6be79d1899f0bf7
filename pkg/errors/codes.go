package errors

import "strings"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal       ErrorCode = "COMMON_001"
	ErrCodeBadRequest     ErrorCode = "COMMON_002"
	ErrCodeNotFound       ErrorCode = "COMMON_003"
	ErrCodeValidation     ErrorCode = "COMMON_004"
	ErrCodeNotImplemented ErrorCode = "COMMON_005"
)

// Text-processing error codes.
const (
	// ErrCodeInvalidCharClass covers malformed character-class configuration:
	// custom or forbidden sets that are not valid UTF-8 and therefore cannot
	// be turned into a rune set.
	ErrCodeInvalidCharClass ErrorCode = "TXT_001"
)

// Entity-resolution error codes. These classify failures of the external
// collaborators; the resolver itself never fails on well-formed input.
const (
	ErrCodeRecognizerFailed ErrorCode = "ENT_001"
	ErrCodeCorrectorFailed  ErrorCode = "ENT_002"
)

// Chat-log processing error codes.
const (
	ErrCodeLogFileOpen      ErrorCode = "LOG_001"
	ErrCodeLogFileParse     ErrorCode = "LOG_002"
	ErrCodeLogMissingColumn ErrorCode = "LOG_003"
	ErrCodeLogBadTimestamp  ErrorCode = "LOG_004"
	ErrCodeLogFileWrite     ErrorCode = "LOG_005"
)

// Aliases used at call sites for readability.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeUnknown      = ErrorCode("UNKNOWN")
	CodeOK           = ErrorCode("OK")
)

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:       "internal error",
	ErrCodeBadRequest:     "bad request",
	ErrCodeNotFound:       "resource not found",
	ErrCodeValidation:     "validation failed",
	ErrCodeNotImplemented: "not implemented",

	ErrCodeInvalidCharClass: "invalid character-class configuration",

	ErrCodeRecognizerFailed: "entity recognizer failed",
	ErrCodeCorrectorFailed:  "entity corrector failed",

	ErrCodeLogFileOpen:      "failed to open chat-log file",
	ErrCodeLogFileParse:     "failed to parse chat-log file",
	ErrCodeLogMissingColumn: "chat-log file is missing required columns",
	ErrCodeLogBadTimestamp:  "chat-log row has an unparseable timestamp",
	ErrCodeLogFileWrite:     "failed to write chat-log output",
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// ModuleForCode returns the module prefix of an ErrorCode
// ("COMMON", "TXT", "ENT", "LOG").
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
