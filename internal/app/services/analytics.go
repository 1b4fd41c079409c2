package services

import (
	"sort"

	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/pkg/helpers"
)

// groupReduce folds records into one accumulator per key. Key order is the
// order in which keys were first seen.
func groupReduce[K comparable, A any](
	records []*models.StudentRecord,
	key func(*models.StudentRecord) []K,
	add func(acc A, rec *models.StudentRecord) A,
) ([]K, map[K]A) {
	var order []K
	groups := make(map[K]A)
	for _, rec := range records {
		for _, k := range key(rec) {
			acc, seen := groups[k]
			if !seen {
				order = append(order, k)
			}
			groups[k] = add(acc, rec)
		}
	}
	return order, groups
}

// placementAcc is the running state behind a PlacementSummary.
type placementAcc struct {
	total   int
	placed  int
	offers  int
	cgpaSum float64
}

func addPlacement(acc placementAcc, rec *models.StudentRecord) placementAcc {
	acc.total++
	if rec.IsPlaced {
		acc.placed++
	}
	acc.offers += rec.NoOfOffers
	acc.cgpaSum += rec.CGPA
	return acc
}

func (a placementAcc) finalize() models.PlacementSummary {
	return models.PlacementSummary{
		TotalStudents:     a.total,
		PlacedStudents:    a.placed,
		NotPlacedStudents: a.total - a.placed,
		PlacementRate:     helpers.Percentage(a.placed, a.total),
		AvgCGPA:           helpers.Average(a.cgpaSum, a.total),
		TotalOffers:       a.offers,
	}
}

// DepartmentStats computes one row per department, sorted by name.
func DepartmentStats(records []*models.StudentRecord) []models.DepartmentStats {
	keys, groups := groupReduce(records,
		func(r *models.StudentRecord) []models.Department { return []models.Department{r.Department} },
		addPlacement,
	)

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make([]models.DepartmentStats, 0, len(keys))
	for _, dept := range keys {
		out = append(out, models.DepartmentStats{
			Department:       dept,
			PlacementSummary: groups[dept].finalize(),
		})
	}
	return out
}

type companyDept struct {
	company    string
	department models.Department
}

// CompanyStats counts one offer per company name listed by a placed
// student, broken down by department. Companies are ordered by total offers
// descending, then by name.
func CompanyStats(records []*models.StudentRecord) []models.CompanyStats {
	_, pairs := groupReduce(records,
		func(r *models.StudentRecord) []companyDept {
			if !r.IsPlaced {
				return nil
			}
			keys := make([]companyDept, 0, len(r.CompanyNames))
			for _, name := range r.CompanyNames {
				keys = append(keys, companyDept{company: name, department: r.Department})
			}
			return keys
		},
		func(n int, _ *models.StudentRecord) int { return n + 1 },
	)

	byCompany := make(map[string]*models.CompanyStats)
	for pair, count := range pairs {
		stat, ok := byCompany[pair.company]
		if !ok {
			stat = &models.CompanyStats{Company: pair.company}
			byCompany[pair.company] = stat
		}
		stat.TotalOffers += count
		stat.DepartmentCounts = append(stat.DepartmentCounts, models.DepartmentCount{
			Department: pair.department,
			Count:      count,
		})
	}

	out := make([]models.CompanyStats, 0, len(byCompany))
	for _, stat := range byCompany {
		sort.Slice(stat.DepartmentCounts, func(i, j int) bool {
			return stat.DepartmentCounts[i].Department < stat.DepartmentCounts[j].Department
		})
		out = append(out, *stat)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalOffers != out[j].TotalOffers {
			return out[i].TotalOffers > out[j].TotalOffers
		}
		return out[i].Company < out[j].Company
	})
	return out
}

// OverallStats summarizes the whole population. An empty population
// yields the zero summary.
func OverallStats(records []*models.StudentRecord) models.PlacementSummary {
	var acc placementAcc
	for _, rec := range records {
		acc = addPlacement(acc, rec)
	}
	return acc.finalize()
}
