//nolint:revive // Package name intentionally matches stdlib for domain clarity
package errors

import "fmt"

// ValidationError indicates a required task field was missing at creation.
type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// TaskNotFoundError indicates the task ID doesn't match any task in the store.
type TaskNotFoundError struct {
	ID string
}

func (e TaskNotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.ID)
}

// InvalidCategoryError indicates an invalid category value.
type InvalidCategoryError struct {
	Value string
}

func (e InvalidCategoryError) Error() string {
	return fmt.Sprintf("invalid category: %s (valid: professional, personal, academic)", e.Value)
}

// InvalidPriorityError indicates an invalid priority value.
type InvalidPriorityError struct {
	Value string
}

func (e InvalidPriorityError) Error() string {
	return fmt.Sprintf("invalid priority: %s (valid: low, medium, high, urgent)", e.Value)
}

// InvalidStatusFilterError indicates an unknown status filter word.
type InvalidStatusFilterError struct {
	Value string
}

func (e InvalidStatusFilterError) Error() string {
	return fmt.Sprintf("invalid status filter: %s (valid: all, completed, pending)", e.Value)
}

// InvalidDateError indicates a deadline that is not a YYYY-MM-DD date.
type InvalidDateError struct {
	Value string
}

func (e InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: %s (expected YYYY-MM-DD)", e.Value)
}

// InvalidThemeError indicates an unknown theme name.
type InvalidThemeError struct {
	Value string
}

func (e InvalidThemeError) Error() string {
	return fmt.Sprintf("invalid theme: %s (valid: light, dark)", e.Value)
}

// InvalidCodecError indicates an unknown storage codec name.
type InvalidCodecError struct {
	Value string
}

func (e InvalidCodecError) Error() string {
	return fmt.Sprintf("invalid codec: %s (valid: json, yaml, msgpack)", e.Value)
}

// InvalidIDSchemeError indicates an unknown id scheme name.
type InvalidIDSchemeError struct {
	Value string
}

func (e InvalidIDSchemeError) Error() string {
	return fmt.Sprintf("invalid id scheme: %s (valid: short, uuid)", e.Value)
}

// InvalidOutputError indicates an unknown output format name.
type InvalidOutputError struct {
	Value string
}

func (e InvalidOutputError) Error() string {
	return fmt.Sprintf("invalid output format: %s (valid: human, json)", e.Value)
}

// ImageTooLargeError indicates an avatar image exceeds the slot size limit.
type ImageTooLargeError struct {
	Size  int64
	Limit int64
}

func (e ImageTooLargeError) Error() string {
	return fmt.Sprintf("image too large: %d bytes (limit %d)", e.Size, e.Limit)
}

// UnsupportedImageError indicates an avatar file that is not a known image type.
type UnsupportedImageError struct {
	ContentType string
}

func (e UnsupportedImageError) Error() string {
	return fmt.Sprintf("unsupported image type: %s", e.ContentType)
}

// EmptyNameError indicates the display name was blank after trimming.
type EmptyNameError struct{}

func (e EmptyNameError) Error() string {
	return "display name cannot be empty"
}

// PersistError indicates a storage write failed. The in-memory state the
// write was meant to record is still applied.
type PersistError struct {
	Key string
	Err error
}

func (e PersistError) Error() string {
	return fmt.Sprintf("could not save %s: %v", e.Key, e.Err)
}

func (e PersistError) Unwrap() error {
	return e.Err
}

// AbortedError indicates the user declined a confirmation prompt.
type AbortedError struct {
	Action string
}

func (e AbortedError) Error() string {
	return fmt.Sprintf("%s aborted", e.Action)
}
