package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidPrice     ErrorCode = "INVALID_PRICE"
	ErrCodeInactiveServico  ErrorCode = "INACTIVE_SERVICO"
	ErrCodeTenantRequired   ErrorCode = "TENANT_REQUIRED"

	ErrCodeClasseNotFound   ErrorCode = "CLASSE_NOT_FOUND"
	ErrCodeUnidadeNotFound  ErrorCode = "UNIDADE_NOT_FOUND"
	ErrCodeServicoNotFound  ErrorCode = "SERVICO_NOT_FOUND"
	ErrCodeMaterialNotFound ErrorCode = "MATERIAL_NOT_FOUND"
	ErrCodeLPUNotFound      ErrorCode = "LPU_NOT_FOUND"
	ErrCodeLPUItemNotFound  ErrorCode = "LPU_ITEM_NOT_FOUND"
	ErrCodePartnerNotFound  ErrorCode = "PARTNER_NOT_FOUND"
	ErrCodeTenantNotFound   ErrorCode = "TENANT_NOT_FOUND"
	ErrCodeUserNotFound     ErrorCode = "USER_NOT_FOUND"

	ErrCodeDuplicateName    ErrorCode = "DUPLICATE_NAME"
	ErrCodeDuplicateSigla   ErrorCode = "DUPLICATE_SIGLA"
	ErrCodeDuplicateCodigo  ErrorCode = "DUPLICATE_CODIGO"
	ErrCodeDuplicateEmail   ErrorCode = "DUPLICATE_EMAIL"
	ErrCodeDuplicateLPUItem ErrorCode = "DUPLICATE_LPU_ITEM"
	ErrCodeEntityInUse      ErrorCode = "ENTITY_IN_USE"
	ErrCodeConstraint       ErrorCode = "CONSTRAINT_VIOLATION"

	ErrCodeRoleImmutable ErrorCode = "ROLE_IMMUTABLE"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeInsufficientRole   ErrorCode = "INSUFFICIENT_ROLE"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	copied := *e
	copied.Cause = cause
	return &copied
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	copied := *e
	copied.Details = details
	return &copied
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrClasseNotFound   = NewNotFoundError("classe not found", ErrCodeClasseNotFound)
	ErrUnidadeNotFound  = NewNotFoundError("unidade not found", ErrCodeUnidadeNotFound)
	ErrServicoNotFound  = NewNotFoundError("servico not found", ErrCodeServicoNotFound)
	ErrMaterialNotFound = NewNotFoundError("material not found", ErrCodeMaterialNotFound)
	ErrLPUNotFound      = NewNotFoundError("price list not found", ErrCodeLPUNotFound)
	ErrLPUItemNotFound  = NewNotFoundError("price list item not found", ErrCodeLPUItemNotFound)
	ErrPartnerNotFound  = NewNotFoundError("partner not found in this tenant", ErrCodePartnerNotFound)
	ErrTenantNotFound   = NewNotFoundError("tenant not found", ErrCodeTenantNotFound)
	ErrUserNotFound     = NewNotFoundError("user not found", ErrCodeUserNotFound)

	ErrInvalidCredentials = NewUnauthorizedError("invalid email or password", ErrCodeInvalidCredentials)
	ErrUserInactive       = NewForbiddenError("user account is inactive", ErrCodeUserInactive)
	ErrInvalidToken       = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// TranslateDBError re-expresses a persistence-layer constraint violation as
// the AppError the pre-check would have produced. Pre-checks exist for
// friendly messages; the database constraint is the correctness boundary, so
// a violation that slipped past a pre-check must surface as the same kind and
// never as a raw store error.
func TranslateDBError(err error, conflict *AppError) error {
	if err == nil {
		return nil
	}
	if appErr, ok := IsAppError(err); ok {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFoundError("record not found", ErrCodeConstraint)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflict
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate key"), strings.Contains(msg, "unique constraint"):
		return conflict
	case strings.Contains(msg, "check constraint"):
		return NewValidationError("value violates a data constraint", ErrCodeConstraint).WithCause(err)
	case strings.Contains(msg, "foreign key constraint"):
		return NewConflictError("operation blocked by a dependent record", ErrCodeEntityInUse).WithCause(err)
	}
	return NewInternalError("database operation failed", err)
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
