package apierrors

import (
	"fmt"

	"go.uber.org/zap"

	"taskmanager/pkg/translator"
)

// JsonErr is the failure envelope written by every handler.
type JsonErr struct {
	Code    int          `json:"-"`
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Detail  string       `json:"error,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError points at one offending input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e JsonErr) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.Code, e.Message)
}

// WithErrors attaches field errors.
func (e JsonErr) WithErrors(errs []FieldError) JsonErr {
	e.Errors = errs
	return e
}

// WithDetail attaches the underlying error text.
func (e JsonErr) WithDetail(err error) JsonErr {
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

// CreateError generates a JsonErr with a translated message.
func CreateError(code int, msgKey string, lang string) JsonErr {
	return JsonErr{Code: code, Message: GetTransErrorMsg(msgKey, lang)}
}

// GetTransErrorMsg retrieves the translated error message.
func GetTransErrorMsg(msgKey string, lang string) string {
	return GetTransMsg(msgKey, lang, nil)
}

// GetTransMsg retrieves a translated message rendered with data, falling
// back to the key itself.
func GetTransMsg(msgKey string, lang string, data map[string]any) string {
	msg, err := translator.Localize(lang, msgKey, data)
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}
	return msg
}

// NewFieldError builds a translated field error; field is exposed to the
// template as Field.
func NewFieldError(field, msgKey, lang string, data map[string]any) FieldError {
	values := map[string]any{"Field": field}
	for k, v := range data {
		values[k] = v
	}
	return FieldError{Field: field, Message: GetTransMsg(msgKey, lang, values)}
}
