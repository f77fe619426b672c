package validator

import (
	"time"

	"go-warehouse-api/internal/model"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

func init() {
	// Timestamps must not lie in the future
	validate.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		if t, ok := fl.Field().Interface().(time.Time); ok {
			return !t.After(time.Now())
		}
		return false
	})
	validate.RegisterValidation("batchstage", func(fl validator.FieldLevel) bool {
		return model.BatchStage(fl.Field().String()).Valid()
	})
	validate.RegisterValidation("shipmentstatus", func(fl validator.FieldLevel) bool {
		return model.ShipmentStatus(fl.Field().String()).Valid()
	})
	validate.RegisterValidation("productstatus", func(fl validator.FieldLevel) bool {
		return model.ProductStatus(fl.Field().String()).Valid()
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return []*ErrorResponse{{FailedField: "body", Tag: "invalid"}}
		}
		for _, err := range validationErrors {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}
