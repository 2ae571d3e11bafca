package services

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rushali2005/studentpp/models"
)

// FeatureValidator checks a submitted form before anything leaves the process.
type FeatureValidator struct {
	validate     *validator.Validate
	strictRanges bool
}

// NewFeatureValidator builds a validator. With strictRanges set, values
// outside the declared bounds (studyTime 1-10, absences 0-93, sleepHours 4-10,
// freeTime 1-5, weekendAlcohol 1-5) are rejected as invalid.
func NewFeatureValidator(strictRanges bool) *FeatureValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for reserved tag names.
	_ = v.RegisterValidation("intstr", func(fl validator.FieldLevel) bool {
		_, err := parseField(fl.Field().String())
		return err == nil
	})
	return &FeatureValidator{validate: v, strictRanges: strictRanges}
}

// Validate reports blank fields as missing and non-integers (or, in strict
// mode, out-of-range values) as invalid.
func (fv *FeatureValidator) Validate(form models.FeatureForm) (models.FeatureVector, error) {
	form = form.Trimmed()
	if err := fv.validate.Struct(form); err != nil {
		return models.FeatureVector{}, fieldErrors(err)
	}

	vec := models.FeatureVector{
		StudyTime:      mustParse(form.StudyTime),
		Absences:       mustParse(form.Absences),
		SleepHours:     mustParse(form.SleepHours),
		FreeTime:       mustParse(form.FreeTime),
		WeekendAlcohol: mustParse(form.WeekendAlcohol),
	}

	if fv.strictRanges {
		if err := fv.validate.Struct(vec); err != nil {
			return models.FeatureVector{}, fieldErrors(err)
		}
	}
	return vec, nil
}

func fieldErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{InvalidFields: []string{err.Error()}}
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			out.MissingFields = append(out.MissingFields, fe.Field())
			continue
		}
		out.InvalidFields = append(out.InvalidFields, fe.Field())
	}
	return out
}

func parseField(raw string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}

// mustParse is only called after the intstr rule accepted the value.
func mustParse(v models.FieldValue) int {
	n, _ := parseField(string(v))
	return n
}
