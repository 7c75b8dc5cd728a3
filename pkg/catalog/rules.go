package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// fieldValidator returns the shared validator with the catalog's custom rules registered.
func fieldValidator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})
	return validateInst
}

// checkFields runs the struct tag rules on w and converts failures into
// readable errors.
func checkFields(w *Widget, position int) []error {
	err := fieldValidator().Struct(w)
	if err == nil {
		return nil
	}

	label := fmt.Sprintf("widgets[%d]", position)
	if w.ID != "" {
		label = fmt.Sprintf("widget %q", w.ID)
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []error{fmt.Errorf("%s: %w", label, err)}
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			errs = append(errs, fmt.Errorf("%s: %s is required", label, fe.Field()))
		case "slug":
			errs = append(errs, fmt.Errorf("%s: %s %q is not a lowercase slug", label, fe.Field(), fe.Value()))
		default:
			errs = append(errs, fmt.Errorf("%s: %s failed %q", label, fe.Field(), fe.Tag()))
		}
	}
	return errs
}
