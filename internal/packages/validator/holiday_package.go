package validator

import (
	"errors"
	"fmt"
	"strings"

	"innkeep/pkg/logger"
	"innkeep/pkg/model"
	"innkeep/pkg/money"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type HolidayPackageValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewHolidayPackageValidator(log *logger.Logger) *HolidayPackageValidator {
	v := validator.New()

	if err := v.RegisterValidation("room_type_prices", validateRoomTypePrices); err != nil {
		log.Fatal("Failed to register 'room_type_prices' validator",
			"error", err,
		)
	}

	return &HolidayPackageValidator{
		validate: v,
		logger:   log,
	}
}

// A package must price at least one room type, and every listed type must
// carry a positive flat price.
func validateRoomTypePrices(fl validator.FieldLevel) bool {
	value := fl.Field()

	if value.Kind().String() == "ptr" {
		if value.IsNil() {
			return false
		}
		value = value.Elem()
	}

	prices, ok := value.Interface().(map[string]money.Amount)
	if !ok {
		return false
	}

	if len(prices) == 0 || len(prices) > 50 {
		return false
	}

	for roomType, price := range prices {
		if strings.TrimSpace(roomType) == "" || !price.IsPositive() {
			return false
		}
	}
	return true
}

func (v *HolidayPackageValidator) Validate(pkg *model.HolidayPackage) error {
	if err := v.validate.Struct(pkg); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	if !pkg.EndDate.After(pkg.StartDate) {
		return ValidationErrors{
			ValidationError{
				Field:   "EndDate",
				Message: "end_date must be after start_date",
			},
		}
	}

	return nil
}

func (v *HolidayPackageValidator) ValidateUpdate(update *model.HolidayPackageUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	if update.StartDate != nil && update.EndDate != nil {
		if !update.EndDate.After(*update.StartDate) {
			return ValidationErrors{
				ValidationError{
					Field:   "EndDate",
					Message: "end_date must be after start_date",
				},
			}
		}
	}

	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "gtfield":
			message = fmt.Sprintf("%s must be after %s", err.Field(), err.Param())
		case "room_type_prices":
			message = fmt.Sprintf("%s must map at least one room type to a positive price", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
