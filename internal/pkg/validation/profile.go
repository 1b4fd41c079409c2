package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
)

// ProfileValidator checks a normalized profile submission before it is
// persisted. It never touches the store.
type ProfileValidator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewProfileValidator builds a validator. now supplies the current year for
// passing year checks and defaults to time.Now.
func NewProfileValidator(now func() time.Time) *ProfileValidator {
	if now == nil {
		now = time.Now
	}
	v := &ProfileValidator{validate: validator.New(), now: now}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.validate.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return CompiledPatterns.Mobile.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	_ = v.validate.RegisterValidation("department", func(fl validator.FieldLevel) bool {
		return models.Department(fl.Field().String()).IsValid()
	})
	_ = v.validate.RegisterValidation("passyear", func(fl validator.FieldLevel) bool {
		year := int(fl.Field().Int())
		return year >= EarliestPassingYear && year <= v.now().Year()
	})

	return v
}

// Validate returns every field level problem, or nil when the request is
// acceptable. Tag rules run first, then the cross-field checks.
func (v *ProfileValidator) Validate(req *dto.ProfileRequest) []apperrors.FieldError {
	var fields []apperrors.FieldError

	if err := v.validate.Struct(req); err != nil {
		var vErrs validator.ValidationErrors
		if !errors.As(err, &vErrs) {
			return []apperrors.FieldError{{Field: "body", Message: err.Error()}}
		}
		for _, fe := range vErrs {
			fields = append(fields, apperrors.FieldError{Field: fe.Field(), Message: v.message(fe)})
		}
	}

	if req.DOB != "" {
		if _, err := ParseDOB(req.DOB); err != nil {
			fields = append(fields, apperrors.FieldError{Field: "dob", Message: "dob must be a valid date (YYYY-MM-DD)"})
		}
	}

	fields = append(fields, placementErrors(req)...)
	return fields
}

// placementErrors enforces the placement invariant on normalized input.
func placementErrors(req *dto.ProfileRequest) []apperrors.FieldError {
	var fields []apperrors.FieldError
	offers := 0
	if req.NoOfOffers != nil {
		offers = *req.NoOfOffers
	}
	companies := req.CompanyNames.Items

	if !req.IsPlaced {
		if offers != 0 || len(companies) != 0 {
			fields = append(fields, apperrors.FieldError{Field: "isPlaced", Message: "students who are not placed cannot have offers or companies"})
		}
		return fields
	}

	if len(companies) == 0 {
		fields = append(fields, apperrors.FieldError{Field: "companyNames", Message: "companyNames is required when placed"})
	}
	for _, name := range companies {
		if strings.TrimSpace(name) == "" {
			fields = append(fields, apperrors.FieldError{Field: "companyNames", Message: "companyNames cannot contain blank entries"})
			break
		}
	}
	if offers < 1 {
		fields = append(fields, apperrors.FieldError{Field: "noOfOffers", Message: "noOfOffers must be at least 1 when placed"})
	}
	return fields
}

func (v *ProfileValidator) message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min", "max":
		return rangeMessage(fe)
	case "url":
		return fe.Field() + " must be a valid URL"
	case "mobile":
		return fe.Field() + " must be a 10 digit mobile number"
	case "department":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), departmentList())
	case "passyear":
		return fmt.Sprintf("%s must be between %d and %d", fe.Field(), EarliestPassingYear, v.now().Year())
	default:
		return fe.Field() + " is invalid"
	}
}

func rangeMessage(fe validator.FieldError) string {
	bounds := map[string]string{
		"tenthPercent":   "0 and 100",
		"twelfthPercent": "0 and 100",
		"diplomaPercent": "0 and 100",
		"cgpa":           "0 and 10",
		"twelfthCutoff":  "0 and 200",
	}
	if b, ok := bounds[fe.Field()]; ok {
		return fmt.Sprintf("%s must be between %s", fe.Field(), b)
	}
	return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
}

func departmentList() string {
	names := make([]string, 0, len(models.Departments))
	for _, d := range models.Departments {
		names = append(names, string(d))
	}
	return strings.Join(names, ", ")
}
