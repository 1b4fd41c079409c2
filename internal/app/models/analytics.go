package models

// PlacementSummary holds the counters shared by department and overall rows.
type PlacementSummary struct {
	TotalStudents     int     `json:"totalStudents"`
	PlacedStudents    int     `json:"placedStudents"`
	NotPlacedStudents int     `json:"notPlacedStudents"`
	PlacementRate     float64 `json:"placementRate"`
	AvgCGPA           float64 `json:"avgCGPA"`
	TotalOffers       int     `json:"totalOffers"`
}

// DepartmentStats is one row of the per-department breakdown.
type DepartmentStats struct {
	Department Department `json:"department"`
	PlacementSummary
}

// DepartmentCount is the number of offers a company made in one department.
type DepartmentCount struct {
	Department Department `json:"department"`
	Count      int        `json:"count"`
}

// CompanyStats aggregates offers per company across placed students.
type CompanyStats struct {
	Company          string            `json:"company"`
	TotalOffers      int               `json:"totalOffers"`
	DepartmentCounts []DepartmentCount `json:"departmentCounts"`
}

// AnalyticsReport is the full admin dashboard payload.
type AnalyticsReport struct {
	DepartmentStats []DepartmentStats `json:"departmentStats"`
	CompanyStats    []CompanyStats    `json:"companyStats"`
	OverallStats    PlacementSummary  `json:"overallStats"`
}
