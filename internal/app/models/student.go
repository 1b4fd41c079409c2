package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Department is one of the fixed academic departments a student belongs to.
type Department string

const (
	DepartmentCSE   Department = "CSE"
	DepartmentIT    Department = "IT"
	DepartmentECE   Department = "ECE"
	DepartmentEEE   Department = "EEE"
	DepartmentMECH  Department = "MECH"
	DepartmentCIVIL Department = "CIVIL"
)

// Departments lists every accepted department in display order.
var Departments = []Department{
	DepartmentCSE,
	DepartmentIT,
	DepartmentECE,
	DepartmentEEE,
	DepartmentMECH,
	DepartmentCIVIL,
}

// IsValid reports whether d is a known department.
func (d Department) IsValid() bool {
	for _, known := range Departments {
		if d == known {
			return true
		}
	}
	return false
}

// StudentRecord is the academic and placement profile of one student,
// keyed by the lowercased email of its owner.
type StudentRecord struct {
	ID    primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Email string             `json:"email" bson:"email"`

	MobileParent string    `json:"mobileParent" bson:"mobileParent"`
	DOB          time.Time `json:"dob" bson:"dob"`

	TenthPercent   float64  `json:"tenthPercent" bson:"tenthPercent"`
	TwelfthPercent float64  `json:"twelfthPercent" bson:"twelfthPercent"`
	CGPA           float64  `json:"cgpa" bson:"cgpa"`
	TenthSchool    string   `json:"tenthSchool" bson:"tenthSchool"`
	TenthYear      int      `json:"tenthYear" bson:"tenthYear"`
	TwelfthSchool  string   `json:"twelfthSchool" bson:"twelfthSchool"`
	TwelfthYear    int      `json:"twelfthYear" bson:"twelfthYear"`
	TwelfthCutoff  float64  `json:"twelfthCutoff" bson:"twelfthCutoff"`
	DiplomaPercent *float64 `json:"diplomaPercent,omitempty" bson:"diplomaPercent,omitempty"`
	DiplomaCollege string   `json:"diplomaCollege,omitempty" bson:"diplomaCollege,omitempty"`
	DiplomaYear    *int     `json:"diplomaYear,omitempty" bson:"diplomaYear,omitempty"`

	CommunicationAddress string     `json:"communicationAddress" bson:"communicationAddress"`
	PermanentAddress     string     `json:"permanentAddress" bson:"permanentAddress"`
	NativePlace          string     `json:"nativePlace" bson:"nativePlace"`
	District             string     `json:"district" bson:"district"`
	ResumeLink           string     `json:"resumeLink" bson:"resumeLink"`
	Department           Department `json:"department" bson:"department"`

	IsPlaced     bool     `json:"isPlaced" bson:"isPlaced"`
	NoOfOffers   int      `json:"noOfOffers" bson:"noOfOffers"`
	CompanyNames []string `json:"companyNames" bson:"companyNames"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Clone returns a deep copy so callers can mutate the result freely.
func (s *StudentRecord) Clone() *StudentRecord {
	if s == nil {
		return nil
	}
	c := *s
	if s.CompanyNames != nil {
		c.CompanyNames = append([]string(nil), s.CompanyNames...)
	}
	if s.DiplomaPercent != nil {
		v := *s.DiplomaPercent
		c.DiplomaPercent = &v
	}
	if s.DiplomaYear != nil {
		v := *s.DiplomaYear
		c.DiplomaYear = &v
	}
	return &c
}
