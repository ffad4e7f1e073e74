package http

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/granjapro/granja-api/internal/domain"
)

// validate instancia compartida; los tags viven en los DTOs.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validateBody valida un request DTO y traduce el primer fallo a un
// ValidationError de dominio con campo y regla.
func validateBody(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domain.ValidationError(fe.Field(), fe.Value(), fe.Tag())
	}
	return domain.ValidationError("body", nil, "inválido")
}
