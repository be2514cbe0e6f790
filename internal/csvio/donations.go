package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"rakta/internal/domain"
)

// DonationHeader is the required column set for bulk donation import.
var DonationHeader = []string{"donor_phone", "donation_date", "location", "notes"}

// DonationRow is one parsed bulk-import line before donor resolution.
type DonationRow struct {
	DonorPhone   string
	DonationDate time.Time
	Location     string
	Notes        string
}

// ReadDonationRows parses bulk donation rows from r. Dates must be
// YYYY-MM-DD. Bad rows are skipped and counted; the batch continues.
func ReadDonationRows(r io.Reader) ([]DonationRow, *ImportResult, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := headerIndex(header, DonationHeader)
	if err != nil {
		return nil, nil, err
	}

	var rows []DonationRow
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

		phone := get("donor_phone")
		if phone == "" {
			result.Skipped++
			result.Errors = append(result.Errors, RowError{Row: row, Reason: "missing donor_phone"})
			continue
		}

		date, err := time.Parse("2006-01-02", get("donation_date"))
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, RowError{Row: row, Reason: fmt.Sprintf("bad donation_date %q", get("donation_date"))})
			continue
		}

		rows = append(rows, DonationRow{
			DonorPhone:   phone,
			DonationDate: date,
			Location:     get("location"),
			Notes:        get("notes"),
		})
		result.Imported++
	}
	return rows, result, nil
}

// MatchDonations resolves parsed rows to donation records by exact phone
// match against the donor list. Unmatched rows are moved from Imported to
// Skipped on the result.
func MatchDonations(rows []DonationRow, donors []domain.Donor, result *ImportResult) []domain.Donation {
	byPhone := make(map[string]string, len(donors))
	for _, d := range donors {
		byPhone[d.Phone] = d.ID
	}

	var donations []domain.Donation
	for _, row := range rows {
		donorID, ok := byPhone[row.DonorPhone]
		if !ok {
			result.Imported--
			result.Skipped++
			result.Errors = append(result.Errors, RowError{Reason: fmt.Sprintf("no donor with phone %q", row.DonorPhone)})
			continue
		}
		donations = append(donations, domain.Donation{
			DonorID:      donorID,
			DonationDate: row.DonationDate,
			Location:     row.Location,
			Notes:        row.Notes,
		})
	}
	return donations
}

// WriteDonations writes donation records with their donor's phone in the same
// column layout the bulk import expects.
func WriteDonations(w io.Writer, items []domain.DonationWithDonor) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(DonationHeader); err != nil {
		return err
	}
	for _, item := range items {
		record := []string{
			item.Donor.Phone,
			item.Donation.DonationDate.Format("2006-01-02"),
			item.Donation.Location,
			item.Donation.Notes,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
