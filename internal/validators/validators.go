package validators

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// Register installs the custom tags on gin's binding validator and makes
// validation errors report json field names.
func Register() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			Configure(v)
		}
	})
}

func Configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || IsHHMM(s)
	})
}

// IsHHMM reports whether s is a 24h "HH:MM" time of day.
func IsHHMM(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// FormatValidationErrors turns validator errors into a field -> message
// map. Any other error yields an empty map.
func FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors
	}

	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			errors[field] = "campo obrigatório"
		case "email":
			errors[field] = "e-mail inválido"
		case "min", "gte":
			errors[field] = "deve ser no mínimo " + e.Param()
		case "max", "lte":
			errors[field] = "deve ser no máximo " + e.Param()
		case "hhmm":
			errors[field] = "formato esperado HH:MM"
		case "oneof":
			errors[field] = "deve ser um de: " + e.Param()
		default:
			errors[field] = "valor inválido"
		}
	}

	return errors
}
