package validation

import (
	"strings"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/core/domain"
)

func BuildRegisterInput(body []byte, lang string) (domain.RegisterInput, error) {
	var req dto.RegisterRequest
	raw, errs := decodeObject(body, &req, lang)
	if raw == nil {
		return domain.RegisterInput{}, errs
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = domain.NormalizeEmail(req.Email)

	if err := merge(errs, validateStruct(&req, lang)); err != nil {
		return domain.RegisterInput{}, err
	}

	return domain.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}, nil
}

// BuildLoginInput returns the normalised email and the password as sent.
func BuildLoginInput(body []byte, lang string) (dto.LoginRequest, error) {
	var req dto.LoginRequest
	raw, errs := decodeObject(body, &req, lang)
	if raw == nil {
		return dto.LoginRequest{}, errs
	}

	req.Email = domain.NormalizeEmail(req.Email)

	if err := merge(errs, validateStruct(&req, lang)); err != nil {
		return dto.LoginRequest{}, err
	}

	return req, nil
}
