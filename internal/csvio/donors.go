package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"rakta/internal/domain"
)

// DonorHeader is the required column set for donor import, in export order.
// Import accepts the columns in any order.
var DonorHeader = []string{"name", "blood_group", "phone", "province", "district", "municipality"}

// RowError describes one skipped row. Row numbers are 1-based and include the
// header line, matching what a user sees in a spreadsheet.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportResult reports how a batch fared. Row-level failures never abort the
// batch.
type ImportResult struct {
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors,omitempty"`
}

var titleCaser = cases.Title(language.Und)

// normalizePlace tidies a free-text geography value: trims whitespace and
// title-cases it so "kathmandu" and "Kathmandu" land in the same cohort.
func normalizePlace(s string) string {
	return titleCaser.String(strings.TrimSpace(s))
}

// ReadDonors parses donor rows from r. The header line is required and must
// contain every DonorHeader column; extra columns are ignored. Rows with
// missing required fields or an unknown blood group are skipped and counted,
// not fatal.
func ReadDonors(r io.Reader) ([]domain.Donor, *ImportResult, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := headerIndex(header, DonorHeader)
	if err != nil {
		return nil, nil, err
	}

	var donors []domain.Donor
	result := &ImportResult{}
	row := 1
	for {
		row++
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, RowError{Row: row, Reason: err.Error()})
			continue
		}

		get := func(col string) string {
			i := idx[col]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		donor := domain.Donor{
			Name:         get("name"),
			BloodGroup:   strings.ToUpper(get("blood_group")),
			Phone:        get("phone"),
			Province:     normalizePlace(get("province")),
			District:     normalizePlace(get("district")),
			Municipality: normalizePlace(get("municipality")),
		}

		if reason := validateDonorRow(donor); reason != "" {
			result.Skipped++
			result.Errors = append(result.Errors, RowError{Row: row, Reason: reason})
			continue
		}

		donors = append(donors, donor)
		result.Imported++
	}
	return donors, result, nil
}

func validateDonorRow(d domain.Donor) string {
	switch {
	case d.Name == "":
		return "missing name"
	case d.Phone == "":
		return "missing phone"
	case d.Province == "" || d.District == "" || d.Municipality == "":
		return "missing geography"
	case !domain.IsValidBloodGroup(d.BloodGroup):
		return fmt.Sprintf("%s %q", domain.ErrInvalidBloodGroup, d.BloodGroup)
	}
	return ""
}

// WriteDonors streams donors as CSV with the canonical header.
func WriteDonors(w io.Writer, donors []domain.Donor) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(DonorHeader); err != nil {
		return err
	}
	for _, d := range donors {
		record := []string{d.Name, d.BloodGroup, d.Phone, d.Province, d.District, d.Municipality}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// headerIndex maps each required column to its position in the header line.
func headerIndex(header, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	var missing []string
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csv is missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}
