package validation

import (
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin/binding"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/core/domain"
	"taskmanager/pkg/apierrors"
)

func BuildCreateTaskInput(body []byte, lang string) (domain.CreateTaskInput, error) {
	var req dto.CreateTaskRequest
	raw, errs := decodeObject(body, &req, lang)
	if raw == nil {
		return domain.CreateTaskInput{}, errs
	}

	errs = append(errs, rejectNulls(raw, lang, "completed", "priority")...)

	trimString(&req.Title)
	trimString(req.Description)
	trimString(req.DueDate)

	if err := merge(errs, validateStruct(&req, lang)); err != nil {
		return domain.CreateTaskInput{}, err
	}

	input := domain.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.TaskPriorityMedium,
	}
	if req.Completed != nil {
		input.Completed = *req.Completed
	}
	if req.Priority != nil {
		input.Priority = domain.TaskPriority(*req.Priority)
	}
	if req.DueDate != nil {
		dueDate, _ := ParseISODate(*req.DueDate)
		input.DueDate = &dueDate
	}

	return input, nil
}

// BuildUpdateTaskInput accepts any non-empty subset of the task fields.
// description and dueDate may be null to clear them.
func BuildUpdateTaskInput(body []byte, lang string) (domain.UpdateTaskInput, error) {
	var req dto.UpdateTaskRequest
	raw, errs := decodeObject(body, &req, lang)
	if raw == nil {
		return domain.UpdateTaskInput{}, errs
	}

	errs = append(errs, rejectNulls(raw, lang, "title", "completed", "priority")...)

	trimString(req.Title)
	trimString(req.Description)
	trimString(req.DueDate)

	if err := merge(errs, validateStruct(&req, lang)); err != nil {
		return domain.UpdateTaskInput{}, err
	}

	input := domain.UpdateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		DescriptionSet: hasJSONField(raw, "description"),
		Completed:      req.Completed,
		DueDateSet:     hasJSONField(raw, "dueDate"),
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		input.Priority = &priority
	}
	if req.DueDate != nil {
		dueDate, _ := ParseISODate(*req.DueDate)
		input.DueDate = &dueDate
	}
	if input.IsEmpty() {
		return domain.UpdateTaskInput{}, Errors{apierrors.NewFieldError("body", apierrors.MsgBodyEmptyUpdate, lang, nil)}
	}

	return input, nil
}

// BuildTaskListQuery parses the list filters. Unknown keys are ignored.
func BuildTaskListQuery(values url.Values, lang string) (domain.TaskFilter, domain.PageRequest, error) {
	var query dto.ListTasksQuery
	page := domain.PageRequest{Page: domain.DefaultPage, Limit: domain.DefaultLimit}

	if err := binding.MapFormWithTag(&query, values, "form"); err != nil {
		return domain.TaskFilter{}, page, Errors{apierrors.NewFieldError("query", apierrors.MsgFieldInvalid, lang, nil)}
	}

	trimString(query.Completed)
	trimString(query.Priority)
	trimString(query.Page)
	trimString(query.Limit)

	var errs Errors
	if query.Page != nil {
		value, err := strconv.Atoi(*query.Page)
		switch {
		case err != nil:
			errs = append(errs, apierrors.NewFieldError("page", apierrors.MsgFieldType, lang, map[string]any{"Type": "number"}))
		case value < 1:
			errs = append(errs, apierrors.NewFieldError("page", apierrors.MsgFieldMinValue, lang, map[string]any{"Param": 1}))
		default:
			page.Page = value
		}
	}
	if query.Limit != nil {
		value, err := strconv.Atoi(*query.Limit)
		switch {
		case err != nil:
			errs = append(errs, apierrors.NewFieldError("limit", apierrors.MsgFieldType, lang, map[string]any{"Type": "number"}))
		case value < 1:
			errs = append(errs, apierrors.NewFieldError("limit", apierrors.MsgFieldMinValue, lang, map[string]any{"Param": 1}))
		case value > domain.MaxLimit:
			errs = append(errs, apierrors.NewFieldError("limit", apierrors.MsgFieldMaxValue, lang, map[string]any{"Param": domain.MaxLimit}))
		default:
			page.Limit = value
		}
	}
	if maxPage := page.MaxPage(); page.Page > maxPage {
		errs = append(errs, apierrors.NewFieldError("page", apierrors.MsgFieldMaxValue, lang, map[string]any{"Param": maxPage}))
	}
	if err := merge(errs, validateStruct(&query, lang)); err != nil {
		return domain.TaskFilter{}, page, err
	}

	var filter domain.TaskFilter
	if query.Completed != nil {
		completed := *query.Completed == "true"
		filter.Completed = &completed
	}
	if query.Priority != nil {
		priority := domain.TaskPriority(*query.Priority)
		filter.Priority = &priority
	}

	return filter, page, nil
}

// BuildTaskID returns the id in its canonical lower-case hex form.
func BuildTaskID(id string, lang string) (string, error) {
	param := dto.TaskIDParam{ID: id}
	if err := validateStruct(&param, lang); err != nil {
		return "", err
	}
	return strings.ToLower(param.ID), nil
}

func rejectNulls(raw map[string]json.RawMessage, lang string, fields ...string) Errors {
	var errs Errors
	for _, field := range fields {
		if value, ok := raw[field]; ok && isJSONNull(value) {
			errs = append(errs, apierrors.NewFieldError(field, apierrors.MsgFieldNotNull, lang, nil))
		}
	}
	return errs
}

// merge appends the rule failures in err to errs, skipping fields that
// already failed decoding.
func merge(errs Errors, err error) error {
	if err != nil {
		var ruleErrs Errors
		if !errors.As(err, &ruleErrs) {
			return err
		}

		seen := map[string]bool{}
		for _, fieldErr := range errs {
			seen[fieldErr.Field] = true
		}
		for _, fieldErr := range ruleErrs {
			if !seen[fieldErr.Field] {
				errs = append(errs, fieldErr)
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
