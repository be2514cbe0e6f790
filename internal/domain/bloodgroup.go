package domain

// BloodGroups lists the eight canonical ABO/Rh values accepted everywhere a
// blood group is stored or filtered on.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// IsValidBloodGroup reports whether s is one of the canonical values.
// Matching is case-sensitive: "o+" is not a blood group.
func IsValidBloodGroup(s string) bool {
	for _, g := range BloodGroups {
		if s == g {
			return true
		}
	}
	return false
}

// BloodGroupCompatibility describes transfusion compatibility for one group.
type BloodGroupCompatibility struct {
	Name           string
	CanDonateTo    []string
	CanReceiveFrom []string
}

// BloodGroupCompatibilities is the static ABO/Rh compatibility table used by
// the reference screen.
var BloodGroupCompatibilities = []BloodGroupCompatibility{
	{
		Name:           "A+",
		CanDonateTo:    []string{"A+", "AB+"},
		CanReceiveFrom: []string{"A+", "A-", "O+", "O-"},
	},
	{
		Name:           "A-",
		CanDonateTo:    []string{"A+", "A-", "AB+", "AB-"},
		CanReceiveFrom: []string{"A-", "O-"},
	},
	{
		Name:           "B+",
		CanDonateTo:    []string{"B+", "AB+"},
		CanReceiveFrom: []string{"B+", "B-", "O+", "O-"},
	},
	{
		Name:           "B-",
		CanDonateTo:    []string{"B+", "B-", "AB+", "AB-"},
		CanReceiveFrom: []string{"B-", "O-"},
	},
	{
		Name:           "AB+",
		CanDonateTo:    []string{"AB+"},
		CanReceiveFrom: []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"},
	},
	{
		Name:           "AB-",
		CanDonateTo:    []string{"AB+", "AB-"},
		CanReceiveFrom: []string{"A-", "B-", "AB-", "O-"},
	},
	{
		Name:           "O+",
		CanDonateTo:    []string{"A+", "B+", "AB+", "O+"},
		CanReceiveFrom: []string{"O+", "O-"},
	},
	{
		Name:           "O-",
		CanDonateTo:    []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"},
		CanReceiveFrom: []string{"O-"},
	},
}
