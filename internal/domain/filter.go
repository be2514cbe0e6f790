package domain

// CohortFilter selects a donor segment. Each field is either empty (no
// constraint) or a single exact-match value. District and municipality are
// hierarchical in the UI, but here every set field is an independent
// predicate: a filter with a district and no province is well-defined.
type CohortFilter struct {
	BloodGroup   string
	Province     string
	District     string
	Municipality string
}

// IsEmpty reports whether no field constrains the cohort.
func (f CohortFilter) IsEmpty() bool {
	return f.BloodGroup == "" && f.Province == "" && f.District == "" && f.Municipality == ""
}

// Matches reports whether the donor satisfies every set field. Comparison is
// case-sensitive exact match.
func (f CohortFilter) Matches(d Donor) bool {
	if f.BloodGroup != "" && d.BloodGroup != f.BloodGroup {
		return false
	}
	if f.Province != "" && d.Province != f.Province {
		return false
	}
	if f.District != "" && d.District != f.District {
		return false
	}
	if f.Municipality != "" && d.Municipality != f.Municipality {
		return false
	}
	return true
}

// ResolveCohort filters donors by f and, when eligibleOnly is set, by the
// paired eligibility verdict. Donors are returned in source order.
func ResolveCohort(pairs []DonorWithEligibility, f CohortFilter, eligibleOnly bool) []Donor {
	var out []Donor
	for _, p := range pairs {
		if !f.Matches(p.Donor) {
			continue
		}
		if eligibleOnly && !p.Eligibility.IsEligible {
			continue
		}
		out = append(out, p.Donor)
	}
	return out
}
