package services

import (
	stderrors "errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aboagye/studyflow/internal/errors"
)

var validate = validator.New()

// checkStruct runs struct-tag validation and converts the first failure into
// an application validation error.
func checkStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return errors.NewValidationError(strings.ToLower(fe.Field()), "failed "+fe.Tag()+" check")
	}
	return errors.NewBadRequestError(err.Error())
}
