package validator

import (
	"github.com/go-playground/validator/v10"

	"secrethouse/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("tariff", validTariff)
	validate.RegisterValidation("bedroom", validBedroom)
}

func validTariff(fl validator.FieldLevel) bool {
	_, err := domain.ParseTariff(fl.Field().String())
	return err == nil
}

func validBedroom(fl validator.FieldLevel) bool {
	switch domain.Bedroom(fl.Field().String()) {
	case domain.BedroomWhite, domain.BedroomGreen, domain.BedroomBoth, domain.BedroomNone, "":
		return true
	}
	return false
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		errors[err.Field()] = err.Tag()
	}
	return errors
}
