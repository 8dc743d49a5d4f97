package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/pediclinic/booking-api/internal/schedule"
)

// RegisterValidations installs custom binding validations on gin's
// validator engine. Call once at startup.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
			_, err := schedule.ParseWeekday(fl.Field().String())
			return err == nil
		})
	}
}
