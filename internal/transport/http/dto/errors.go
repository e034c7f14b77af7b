package dto

// BaseError универсальный корневой формат ошибки
// Code — машинно-ориентированный код (snake_case)
// Error — краткое человеко-читаемое описание
// Fields — для валидационных ошибок (имя поля + текст)
type BaseError struct {
	Code   string       `json:"code"`
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

type ValidationErrorResponse BaseError
type ConflictErrorResponse BaseError
type UnauthorizedErrorResponse BaseError
type NotFoundErrorResponse BaseError
type InternalErrorResponse BaseError

func NewValidationError(msg string, fields []FieldError) ValidationErrorResponse {
	return ValidationErrorResponse(BaseError{Code: "validation_error", Error: msg, Fields: fields})
}
func NewConflictError(msg string) ConflictErrorResponse {
	return ConflictErrorResponse(BaseError{Code: "conflict", Error: msg})
}
func NewUnauthorizedError(msg string) UnauthorizedErrorResponse {
	return UnauthorizedErrorResponse(BaseError{Code: "unauthorized", Error: msg})
}
func NewNotFoundError(msg string) NotFoundErrorResponse {
	return NotFoundErrorResponse(BaseError{Code: "not_found", Error: msg})
}
func NewInternalError() InternalErrorResponse {
	return InternalErrorResponse(BaseError{Code: "internal_error", Error: "internal server error"})
}
