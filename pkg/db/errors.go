package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	pkgerrors "github.com/venuebooks/venuebooks-backend/pkg/errors"
)

// IsNotFound reports whether err is GORM's missing-record sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// NotFoundOr maps a missing-record error to a domain not-found error and
// wraps anything else as a dependency failure.
func NotFoundOr(err error, resource string) error {
	if err == nil {
		return nil
	}
	if IsNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, resource+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "querying "+resource)
}

// IsUniqueViolation reports whether the provided error references a unique
// violation constraint. When constraintName is provided, the helper looks
// for the constraint text in the error message.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
