package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ProfileRequest is the body of POST /api/student/profile. Pointer fields
// distinguish an absent value from an explicit zero.
type ProfileRequest struct {
	// Email is accepted for compatibility but always replaced by the
	// authenticated caller's address.
	Email string `json:"email,omitempty"`

	MobileParent   string   `json:"mobileParent" validate:"required,mobile"`
	DOB            string   `json:"dob" validate:"required"`
	TenthPercent   *float64 `json:"tenthPercent" validate:"required,min=0,max=100"`
	TwelfthPercent *float64 `json:"twelfthPercent" validate:"required,min=0,max=100"`
	CGPA           *float64 `json:"cgpa" validate:"required,min=0,max=10"`
	TenthSchool    string   `json:"tenthSchool" validate:"required"`
	TenthYear      *int     `json:"tenthYear" validate:"required,passyear"`
	TwelfthSchool  string   `json:"twelfthSchool" validate:"required"`
	TwelfthYear    *int     `json:"twelfthYear" validate:"required,passyear"`
	TwelfthCutoff  *float64 `json:"twelfthCutoff" validate:"required,min=0,max=200"`

	DiplomaPercent *float64 `json:"diplomaPercent" validate:"omitempty,min=0,max=100"`
	DiplomaCollege *string  `json:"diplomaCollege"`
	DiplomaYear    *int     `json:"diplomaYear" validate:"omitempty,passyear"`

	CommunicationAddress string `json:"communicationAddress" validate:"required"`
	PermanentAddress     string `json:"permanentAddress" validate:"required"`
	NativePlace          string `json:"nativePlace" validate:"required"`
	District             string `json:"district" validate:"required"`
	ResumeLink           string `json:"resumeLink" validate:"required,url"`
	Department           string `json:"department" validate:"required,department"`

	IsPlaced     Flag        `json:"isPlaced"`
	NoOfOffers   *int        `json:"noOfOffers" validate:"omitempty,min=0"`
	CompanyNames CompanyList `json:"companyNames"`
}

// Flag is a boolean that also accepts the loose encodings HTML forms send:
// "true"/"false", "on", 1/0 and null.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = false
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "on", "yes", "1":
			*f = true
		case "", "false", "off", "no", "0":
			*f = false
		default:
			return fmt.Errorf("invalid boolean %q", s)
		}
		return nil
	}

	if b, err := strconv.ParseBool(string(data)); err == nil {
		*f = Flag(b)
		return nil
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid boolean %s", data)
	}
	*f = n != 0
	return nil
}

// CompanyList accepts either a JSON array of names or a single comma
// delimited string. The raw string is kept so normalization can split it.
type CompanyList struct {
	Items []string
	// Delimited holds the submitted string when the body sent one.
	Delimited *string
}

// NewCompanyList builds a list from already separated names.
func NewCompanyList(items ...string) CompanyList {
	return CompanyList{Items: items}
}

// NewDelimitedCompanyList builds a list from a comma delimited string.
func NewDelimitedCompanyList(raw string) CompanyList {
	return CompanyList{Delimited: &raw}
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *CompanyList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*c = CompanyList{}
	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		c.Delimited = &s
		return nil
	default:
		return json.Unmarshal(data, &c.Items)
	}
}

// SplitCompanyNames splits a comma delimited list, trimming each name and
// dropping empty entries.
func SplitCompanyNames(raw string) []string {
	names := []string{}
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
