package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"taskmanager/pkg/apierrors"
)

// Errors is a failed validation, one entry per offending field.
type Errors []apierrors.FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fieldErr := range e {
		parts = append(parts, fieldErr.Message)
	}
	return strings.Join(parts, "; ")
}

var setupOnce sync.Once

// Setup registers the custom rules on gin's validator engine. It runs once
// and is also called lazily by every Build function.
func Setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			zap.L().Error("unexpected gin validator engine")
			return
		}

		v.RegisterTagNameFunc(fieldName)
		for tag, fn := range map[string]validator.Func{
			"objectid": isObjectID,
			"iso8601":  isISODate,
			"notblank": validators.NotBlank,
		} {
			if err := v.RegisterValidation(tag, fn); err != nil {
				zap.L().Error("failed to register validation", zap.String("tag", tag), zap.Error(err))
			}
		}
	})
}

func validateStruct(obj any, lang string) error {
	Setup()

	err := binding.Validator.ValidateStruct(obj)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	errs := make(Errors, 0, len(validationErrs))
	for _, fe := range validationErrs {
		errs = append(errs, fieldError(fe, lang))
	}
	return errs
}

func fieldError(fe validator.FieldError, lang string) apierrors.FieldError {
	field := fe.Field()
	param := map[string]any{"Param": fe.Param()}

	switch fe.Tag() {
	case "required":
		return apierrors.NewFieldError(field, apierrors.MsgFieldRequired, lang, nil)
	case "notblank":
		return apierrors.NewFieldError(field, apierrors.MsgFieldRequired, lang, nil)
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return apierrors.NewFieldError(field, apierrors.MsgFieldMinLength, lang, param)
		}
		return apierrors.NewFieldError(field, apierrors.MsgFieldMinValue, lang, param)
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return apierrors.NewFieldError(field, apierrors.MsgFieldMaxLength, lang, param)
		}
		return apierrors.NewFieldError(field, apierrors.MsgFieldMaxValue, lang, param)
	case "email":
		return apierrors.NewFieldError(field, apierrors.MsgFieldEmail, lang, nil)
	case "oneof":
		return apierrors.NewFieldError(field, apierrors.MsgFieldOneOf, lang, map[string]any{
			"Param": strings.Join(strings.Fields(fe.Param()), ", "),
		})
	case "number", "numeric":
		return apierrors.NewFieldError(field, apierrors.MsgFieldType, lang, map[string]any{"Type": "number"})
	case "objectid":
		return apierrors.NewFieldError(field, apierrors.MsgFieldObjectID, lang, nil)
	case "iso8601":
		return apierrors.NewFieldError(field, apierrors.MsgFieldISODate, lang, nil)
	}

	return apierrors.NewFieldError(field, apierrors.MsgFieldInvalid, lang, nil)
}

// fieldName reports fields under their wire name.
func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "uri", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

func isObjectID(fl validator.FieldLevel) bool {
	_, err := bson.ObjectIDFromHex(fl.Field().String())
	return err == nil
}

func isISODate(fl validator.FieldLevel) bool {
	_, err := ParseISODate(fl.Field().String())
	return err == nil
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

var errInvalidDate = errors.New("invalid ISO 8601 date")

// ParseISODate accepts a calendar date or a date-time with an optional zone;
// values without a zone are read as UTC.
func ParseISODate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errInvalidDate
}
