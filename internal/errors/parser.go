package errors

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a parsed database error
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts a database error into a user-presentable code and
// message. Raw constraint names and SQL fragments never leak to the client.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	// PostgreSQL unique constraint violation (23505)
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") ||
		strings.Contains(errStr, "unique failed") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: fmt.Sprintf("A %s with these details already exists", contextNoun(context)),
		}
	}

	// Foreign key constraint violation (23503)
	if strings.Contains(errStr, "foreign key constraint") {
		return ErrorInfo{
			Code:    ResourceInUse,
			Message: fmt.Sprintf("This %s is referenced by other records and cannot be changed", contextNoun(context)),
		}
	}

	// Not-null constraint violation (23502)
	if strings.Contains(errStr, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	return ErrorInfo{
		Code:    InternalDatabaseError,
		Message: "A database error occurred. Please try again later",
	}
}

func notFoundMessage(context string) string {
	noun := contextNoun(context)
	if noun == "" {
		return "The requested resource was not found"
	}
	return fmt.Sprintf("The requested %s was not found", noun)
}

func contextNoun(context string) string {
	switch context {
	case "":
		return ""
	default:
		return strings.ToLower(context)
	}
}
