package http

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/homelibrary/internal/entities"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the library's rules to gin's validator engine and
// makes field errors report JSON names.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("halfstep", func(fl validator.FieldLevel) bool {
			return entities.ValidRating(fl.Field().Float())
		})
		_ = v.RegisterValidation("readingstatus", func(fl validator.FieldLevel) bool {
			return entities.ValidStatus(fl.Field().Int())
		})
	})
}

// validateVar checks a single value against a rule string of the engine.
func validateVar(value any, rules string) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.Var(value, rules)
}
