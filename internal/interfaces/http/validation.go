package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// validate instancia compartida; registra los nombres de campo tomados del
// tag json para que el detalle de validación use las claves del payload.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseBody decodifica el body JSON y aplica las reglas de validación del DTO.
// Devuelve false si ya respondió un error al cliente.
func parseBody(c *fiber.Ctx, in any) bool {
	if err := c.BodyParser(in); err != nil {
		_ = fail(c, fiber.StatusBadRequest, "INVALID_BODY", "Corps de requête invalide.")
		return false
	}
	if err := validate.Struct(in); err != nil {
		fields := make(map[string][]string)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, ve := range verrs {
				fields[ve.Field()] = append(fields[ve.Field()], ve.Tag())
			}
		}
		_ = failValidation(c, fields)
		return false
	}
	return true
}
