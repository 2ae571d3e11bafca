package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FieldValue holds one raw form field. Clients send either JSON numbers or
// numeric strings; both decode to their literal text. Surrounding whitespace
// is dropped, so a blank string decodes as empty.
type FieldValue string

func (v *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FieldValue(strings.TrimSpace(s))
		return nil
	}
	*v = FieldValue(data)
	return nil
}

// FeatureForm is the unvalidated submission body.
type FeatureForm struct {
	StudyTime      FieldValue `json:"studyTime" validate:"required,intstr"`
	Absences       FieldValue `json:"absences" validate:"required,intstr"`
	SleepHours     FieldValue `json:"sleepHours" validate:"required,intstr"`
	FreeTime       FieldValue `json:"freeTime" validate:"required,intstr"`
	WeekendAlcohol FieldValue `json:"weekendAlcohol" validate:"required,intstr"`
}

// Trimmed returns f with surrounding whitespace removed from every field.
func (f FeatureForm) Trimmed() FeatureForm {
	trim := func(v FieldValue) FieldValue { return FieldValue(strings.TrimSpace(string(v))) }
	return FeatureForm{
		StudyTime:      trim(f.StudyTime),
		Absences:       trim(f.Absences),
		SleepHours:     trim(f.SleepHours),
		FreeTime:       trim(f.FreeTime),
		WeekendAlcohol: trim(f.WeekendAlcohol),
	}
}

// FeatureVector is a validated set of study habits. The range tags are the
// declared input bounds.
type FeatureVector struct {
	StudyTime      int `json:"studyTime" validate:"min=1,max=10"`
	Absences       int `json:"absences" validate:"min=0,max=93"`
	SleepHours     int `json:"sleepHours" validate:"min=4,max=10"`
	FreeTime       int `json:"freeTime" validate:"min=1,max=5"`
	WeekendAlcohol int `json:"weekendAlcohol" validate:"min=1,max=5"`
}
