package dto

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/guttosm/quote-service/internal/domain/model"
)

var placementPattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,31}$`)

// RegisterValidators adds the quote-specific binding tags to v and makes field
// errors report JSON names.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)
	return v.RegisterValidation("placement", validatePlacement)
}

// validatePlacement accepts names like "front" or "Left_Sleeve"; they are normalized before matching.
func validatePlacement(fl validator.FieldLevel) bool {
	return placementPattern.MatchString(model.NormalizePlacementName(fl.Field().String()))
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}
