package validation

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator devuelve el validador compartido (validator es thread-safe y cachea
// la metadata de structs, así que conviene una sola instancia).
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Struct valida un DTO y devuelve un error legible para el cliente
// (primer campo que falla, en el estilo "field X is required").
func Struct(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if ok := asValidationErrors(err, &verrs); ok && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fmt.Errorf("field %s is required", fieldName(fe))
		case "oneof":
			return fmt.Errorf("field %s must be one of: %s", fieldName(fe), fe.Param())
		case "min", "max", "gte", "lte", "gt":
			return fmt.Errorf("field %s is out of range", fieldName(fe))
		case "email":
			return fmt.Errorf("field %s must be a valid email", fieldName(fe))
		default:
			return fmt.Errorf("field %s is invalid", fieldName(fe))
		}
	}
	return err
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return false
	}
	*target = verrs
	return true
}

func fieldName(fe validator.FieldError) string {
	// Usamos el nombre del struct field en lowerCamel para que coincida
	// con el JSON que manda el cliente.
	name := fe.Field()
	if name == "" {
		return "unknown"
	}
	return strings.ToLower(name[:1]) + name[1:]
}
