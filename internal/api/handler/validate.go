package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Rrens/mindcare/internal/presession"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// option=<question id> accepts only that question's option labels
	_ = v.RegisterValidation("option", func(fl validator.FieldLevel) bool {
		_, ok := presession.Points(fl.Param(), fl.Field().String())
		return ok
	})

	return v
}

// decode reads a JSON body into v and validates it
func decode(r *http.Request, v any) (string, bool) {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return "invalid request body", false
	}
	if err := validate.Struct(v); err != nil {
		return err.Error(), false
	}
	return "", true
}
