package http

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/smart-inventory-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// decimal.Decimal se valida como número para que gte/gt/lte funcionen.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validationError detalle por campo de una entrada rechazada.
type validationError struct {
	fields map[string]string
}

func (e *validationError) Error() string { return "datos inválidos" }

func (e *validationError) Unwrap() error { return domain.ErrInvalidInput }

// validateStruct corre las reglas `validate` y devuelve *validationError con los campos en nombre JSON.
func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = fe.Tag()
	}
	return &validationError{fields: fields}
}

// fieldPath quita el nombre del struct raíz: CreateInvoiceRequest.items[0].description → items[0].description.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

// bindAndValidate decodifica el cuerpo JSON y valida. Si falla ya escribió la respuesta
// y el handler debe retornar el error devuelto.
func bindAndValidate(c *fiber.Ctx, dst any) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, invalidBody(c)
	}
	if err := validateStruct(dst); err != nil {
		return false, writeError(c, err)
	}
	return true, nil
}

// parseID lee el parámetro :id como entero positivo.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, &validationError{fields: map[string]string{"id": "id"}}
	}
	return uint(id), nil
}

// optionalBool lee un query param tri-estado: ausente → nil.
func optionalBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, &validationError{fields: map[string]string{key: "boolean"}}
	}
	return &b, nil
}
