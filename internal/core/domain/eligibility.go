package domain

import (
	"iter"
	"slices"
	"strconv"
	"strings"
)

// IsEligible reports whether o should be shown to s. All three conditions
// must hold:
//   - a positive MinGPA requires the student's GPA to parse and meet it;
//   - a department other than "any" must match exactly;
//   - a non-empty skill list must share at least one skill with the student.
func IsEligible(s *Student, o *Opportunity) bool {
	if o.MinGPA > 0 {
		gpa, err := strconv.ParseFloat(strings.TrimSpace(s.GPA), 64)
		if err != nil || !(gpa >= o.MinGPA) {
			return false
		}
	}

	if o.Department != "" && o.Department != AnyDepartment && o.Department != s.Department {
		return false
	}

	if len(o.Skills) > 0 && !slices.ContainsFunc(o.Skills, func(skill string) bool {
		return slices.Contains(s.Skills, skill)
	}) {
		return false
	}

	return true
}

// FilterEligible yields the opportunities visible to s in input order. The
// sequence is evaluated lazily on every range over it.
func FilterEligible(s *Student, opportunities []Opportunity) iter.Seq[Opportunity] {
	return func(yield func(Opportunity) bool) {
		for i := range opportunities {
			if !IsEligible(s, &opportunities[i]) {
				continue
			}
			if !yield(opportunities[i]) {
				return
			}
		}
	}
}
