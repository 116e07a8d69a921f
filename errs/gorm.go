package errs

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// FromDB classifies an error returned by gorm. entity and id describe the
// row the operation targeted; field names the unique column for conflicts.
func FromDB(err error, op, entity, field, id string) error {
	if err == nil {
		return nil
	}
	if IsClassified(err) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFoundError(entity, id)
	}
	if isUniqueViolation(err) {
		return NewConflictError(entity, field, id, err)
	}
	return NewStorageError(op, err)
}

// isUniqueViolation covers drivers that do not translate errors as well as
// those that do (postgres and sqlite both report "unique" in the message)
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique")
}
