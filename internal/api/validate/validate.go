package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/cuongbtq/jobboard-be/internal/api/domain"
	"github.com/cuongbtq/jobboard-be/internal/api/dto"
	"github.com/cuongbtq/jobboard-be/internal/api/filter"
	"github.com/go-playground/validator/v10"
)

const invalidPayloadMessage = "Invalid request payload"

// Validator checks request payloads against their schema tags and reports
// offending fields by their JSON names
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

// New creates a Validator with the job board rules registered
func New() *Validator {
	return NewWithClock(time.Now)
}

// NewWithClock creates a Validator whose date rules compare against now
func NewWithClock(now func() time.Time) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	out := &Validator{v: v, now: now}

	mustRegister(v, "salarybucket", bucketRule(filter.LookupSalary))
	mustRegister(v, "experiencebucket", bucketRule(filter.LookupExperience))
	v.RegisterStructValidation(out.jobPostRules, dto.JobPostRequest{})

	return out
}

// Struct validates s and returns a VALIDATION_ERROR listing every failing field
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewValidation(invalidPayloadMessage, nil)
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{
			Field:   fieldPath(fe),
			Message: message(fe),
		})
	}
	return domain.NewValidation(invalidPayloadMessage, fields)
}

// Decode converts a loosely typed payload into dst. Type mismatches are
// reported as field errors.
func Decode(raw map[string]any, dst any) error {
	body, err := json.Marshal(raw)
	if err != nil {
		return domain.NewValidation(invalidPayloadMessage, nil)
	}
	return DecodeJSON(body, dst)
}

// DecodeJSON unmarshals body into dst with the same error mapping as Decode
func DecodeJSON(body []byte, dst any) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return DecodeError(err)
	}
	return nil
}

// DecodeError maps a JSON decoding failure to a VALIDATION_ERROR
func DecodeError(err error) error {
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) && te.Field != "" {
		return domain.NewValidation(invalidPayloadMessage, []domain.FieldError{{
			Field:   te.Field,
			Message: "must be of type " + te.Type.String(),
		}})
	}
	var pe *time.ParseError
	if errors.As(err, &pe) {
		return domain.NewValidation(invalidPayloadMessage, []domain.FieldError{{
			Field:   "expiryDate",
			Message: "must be an RFC 3339 timestamp",
		}})
	}
	return domain.NewValidation(invalidPayloadMessage, nil)
}

func (v *Validator) jobPostRules(sl validator.StructLevel) {
	req, ok := sl.Current().Interface().(dto.JobPostRequest)
	if !ok {
		return
	}

	if req.HasSalaryRange && req.MinSalary != nil && req.MaxSalary != nil && *req.MaxSalary < *req.MinSalary {
		sl.ReportError(req.MaxSalary, "maxSalary", "MaxSalary", "gtefield", "minSalary")
	}
	if req.HasExperiencerange && req.MinExperience != nil && req.MaxExperience != nil && *req.MaxExperience < *req.MinExperience {
		sl.ReportError(req.MaxExperience, "maxExperience", "MaxExperience", "gtefield", "minExperience")
	}
	if req.HasExpiryDate && req.ExpiryDate != nil && !req.ExpiryDate.After(v.now()) {
		sl.ReportError(req.ExpiryDate, "expiryDate", "ExpiryDate", "future", "")
	}
}

func bucketRule(lookup func(string) (filter.Range, bool)) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, ok := lookup(fl.Field().String())
		return ok
	}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validate: register %q: %v", tag, err))
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

// fieldPath drops the root struct name from the namespace
func fieldPath(fe validator.FieldError) string {
	parts := strings.SplitN(fe.Namespace(), ".", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "uuid":
		return "must be a valid UUID"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "gtefield":
		return "must be greater than or equal to " + fe.Param()
	case "future":
		return "must be in the future"
	case "salarybucket":
		return "unknown salary range"
	case "experiencebucket":
		return "unknown experience range"
	}
	return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
}
