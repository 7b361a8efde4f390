package request

import (
	"reflect"
	"strings"

	"sublet-booking/internal/domain/booking"
	"sublet-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by the request DTOs
// to gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errs.New("gin binding engine is not go-playground/validator")
	}
	v.RegisterTagNameFunc(wireName)
	return v.RegisterValidation("isodate", isoDate)
}

// wireName reports fields by their json or query name.
func wireName(f reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// isodate accepts a YYYY-MM-DD calendar date.
func isoDate(fl validator.FieldLevel) bool {
	_, err := booking.ParseDate(fl.Field().String())
	return err == nil
}

// FieldErrors turns a binding failure into a field -> rule map for the
// response detail, or nil when err is not a validation failure.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errs.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		out[fe.Field()] = rule
	}
	return out
}
