// Package validation envuelve go-playground/validator con las reglas propias de montos
// (shopspring/decimal) y traduce los errores a domain.ErrInvalidInput.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Remisiones-api/internal/domain"
)

// maxMoney cota de NUMERIC(10,2): 8 dígitos enteros.
var maxMoney = decimal.New(1, 8)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator devuelve la instancia compartida (es segura para uso concurrente).
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Nombres de campo según la etiqueta json.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})

		// decimal.Decimal se valida por su representación textual exacta.
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})

		_ = v.RegisterValidation("dgte0", decimalRule(func(d decimal.Decimal) bool { return !d.IsNegative() }))
		_ = v.RegisterValidation("dgt0", decimalRule(func(d decimal.Decimal) bool { return d.IsPositive() }))
		_ = v.RegisterValidation("money", decimalRule(func(d decimal.Decimal) bool {
			return d.Equal(d.Round(2)) && d.Abs().LessThan(maxMoney)
		}))

		instance = v
	})
	return instance
}

func decimalRule(ok func(decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return ok(d)
	}
}

// Struct valida s y devuelve un error que envuelve domain.ErrInvalidInput con el detalle por campo.
func Struct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, message(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " es requerido"
	case "max":
		return fmt.Sprintf("%s admite máximo %s caracteres", fe.Field(), fe.Param())
	case "email":
		return fe.Field() + " debe ser un email válido"
	case "uuid":
		return fe.Field() + " debe ser un UUID"
	case "dgte0":
		return fe.Field() + " debe ser mayor o igual a 0"
	case "dgt0":
		return fe.Field() + " debe ser mayor que 0"
	case "money":
		return fe.Field() + " admite máximo 2 decimales y 8 dígitos enteros"
	default:
		return fmt.Sprintf("%s no cumple la regla %s", fe.Field(), fe.Tag())
	}
}
