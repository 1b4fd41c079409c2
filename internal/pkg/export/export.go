// Package export renders student records as tabular files.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yigit/placement-portal/internal/app/models"
)

// DefaultFields is the fixed column order of the admin export.
var DefaultFields = []string{
	"email", "department", "mobileParent", "dob", "tenthPercent",
	"twelfthPercent", "cgpa", "district", "isPlaced",
	"noOfOffers", "companyNames",
}

// CompanySeparator joins company names into a single cell.
const CompanySeparator = ", "

type cellFunc func(f *Formatter, s *models.StudentRecord) string

var columns = map[string]cellFunc{
	"_id":   func(_ *Formatter, s *models.StudentRecord) string { return s.ID.Hex() },
	"email": func(_ *Formatter, s *models.StudentRecord) string { return s.Email },
	"department": func(_ *Formatter, s *models.StudentRecord) string {
		return string(s.Department)
	},
	"mobileParent":   func(_ *Formatter, s *models.StudentRecord) string { return s.MobileParent },
	"dob":            func(f *Formatter, s *models.StudentRecord) string { return f.date(s.DOB) },
	"tenthPercent":   func(_ *Formatter, s *models.StudentRecord) string { return number(s.TenthPercent) },
	"twelfthPercent": func(_ *Formatter, s *models.StudentRecord) string { return number(s.TwelfthPercent) },
	"cgpa":           func(_ *Formatter, s *models.StudentRecord) string { return number(s.CGPA) },
	"tenthSchool":    func(_ *Formatter, s *models.StudentRecord) string { return s.TenthSchool },
	"tenthYear":      func(_ *Formatter, s *models.StudentRecord) string { return strconv.Itoa(s.TenthYear) },
	"twelfthSchool":  func(_ *Formatter, s *models.StudentRecord) string { return s.TwelfthSchool },
	"twelfthYear":    func(_ *Formatter, s *models.StudentRecord) string { return strconv.Itoa(s.TwelfthYear) },
	"twelfthCutoff":  func(_ *Formatter, s *models.StudentRecord) string { return number(s.TwelfthCutoff) },
	"diplomaPercent": func(_ *Formatter, s *models.StudentRecord) string {
		if s.DiplomaPercent == nil {
			return ""
		}
		return number(*s.DiplomaPercent)
	},
	"diplomaCollege": func(_ *Formatter, s *models.StudentRecord) string { return s.DiplomaCollege },
	"diplomaYear": func(_ *Formatter, s *models.StudentRecord) string {
		if s.DiplomaYear == nil {
			return ""
		}
		return strconv.Itoa(*s.DiplomaYear)
	},
	"communicationAddress": func(_ *Formatter, s *models.StudentRecord) string { return s.CommunicationAddress },
	"permanentAddress":     func(_ *Formatter, s *models.StudentRecord) string { return s.PermanentAddress },
	"nativePlace":          func(_ *Formatter, s *models.StudentRecord) string { return s.NativePlace },
	"district":             func(_ *Formatter, s *models.StudentRecord) string { return s.District },
	"resumeLink":           func(_ *Formatter, s *models.StudentRecord) string { return s.ResumeLink },
	"isPlaced":             func(_ *Formatter, s *models.StudentRecord) string { return strconv.FormatBool(s.IsPlaced) },
	"noOfOffers":           func(_ *Formatter, s *models.StudentRecord) string { return strconv.Itoa(s.NoOfOffers) },
	"companyNames": func(_ *Formatter, s *models.StudentRecord) string {
		return strings.Join(s.CompanyNames, CompanySeparator)
	},
	"createdAt": func(f *Formatter, s *models.StudentRecord) string { return f.date(s.CreatedAt) },
	"updatedAt": func(f *Formatter, s *models.StudentRecord) string { return f.date(s.UpdatedAt) },
}

// Options control how cells are rendered.
type Options struct {
	Fields     []string
	DateLayout string
	Location   *time.Location
}

// Formatter turns records into rows with a fixed header.
type Formatter struct {
	fields   []string
	cells    []cellFunc
	layout   string
	location *time.Location
}

// NewFormatter validates the field list up front so an unknown column is
// reported before any output is produced.
func NewFormatter(opts Options) (*Formatter, error) {
	fields := opts.Fields
	if len(fields) == 0 {
		fields = DefaultFields
	}

	f := &Formatter{
		fields:   append([]string(nil), fields...),
		cells:    make([]cellFunc, 0, len(fields)),
		layout:   opts.DateLayout,
		location: opts.Location,
	}
	if f.layout == "" {
		f.layout = "1/2/2006"
	}
	if f.location == nil {
		f.location = time.UTC
	}

	for _, name := range fields {
		cell, ok := columns[name]
		if !ok {
			return nil, fmt.Errorf("unknown export field %q", name)
		}
		f.cells = append(f.cells, cell)
	}
	return f, nil
}

// Header returns a copy of the column names.
func (f *Formatter) Header() []string {
	return append([]string(nil), f.fields...)
}

// Row renders one record in column order.
func (f *Formatter) Row(s *models.StudentRecord) []string {
	row := make([]string, len(f.cells))
	for i, cell := range f.cells {
		row[i] = cell(f, s)
	}
	return row
}

// Rows renders the header followed by one row per record, in input order.
// An empty input yields the header alone.
func (f *Formatter) Rows(records []*models.StudentRecord) [][]string {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, f.Header())
	for _, s := range records {
		rows = append(rows, f.Row(s))
	}
	return rows
}

func (f *Formatter) date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(f.location).Format(f.layout)
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
