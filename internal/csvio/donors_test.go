package csvio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rakta/internal/domain"
)

func TestReadDonors(t *testing.T) {
	input := strings.Join([]string{
		"name,blood_group,phone,province,district,municipality",
		"Anita Sharma,O+,9841000001,Bagmati,Kathmandu,Kathmandu",
		"Bikash Thapa,b-,9841000002,gandaki,kaski,pokhara",
		`"Chandra, K.C.",A+,9841000003,Bagmati,Lalitpur,Lalitpur`,
	}, "\n")

	donors, result, err := ReadDonors(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, donors, 3)

	// Blood group upper-cased, geography title-cased.
	assert.Equal(t, "B-", donors[1].BloodGroup)
	assert.Equal(t, "Gandaki", donors[1].Province)
	assert.Equal(t, "Pokhara", donors[1].Municipality)

	// Quoted field containing a comma survives parsing.
	assert.Equal(t, "Chandra, K.C.", donors[2].Name)
}

func TestReadDonorsSkipsBadRows(t *testing.T) {
	input := strings.Join([]string{
		"name,blood_group,phone,province,district,municipality",
		"Anita,O+,9841000001,Bagmati,Kathmandu,Kathmandu",
		",O+,9841000002,Bagmati,Kathmandu,Kathmandu",
		"Bikash,XY,9841000003,Bagmati,Kathmandu,Kathmandu",
		"Chandra,A+,,Bagmati,Kathmandu,Kathmandu",
	}, "\n")

	donors, result, err := ReadDonors(strings.NewReader(input))
	require.NoError(t, err)

	assert.Len(t, donors, 1)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 3, result.Skipped)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, "missing name", result.Errors[0].Reason)
	assert.Contains(t, result.Errors[1].Reason, "invalid blood group")
	assert.Equal(t, "missing phone", result.Errors[2].Reason)
}

func TestReadDonorsHeaderAnyOrder(t *testing.T) {
	input := strings.Join([]string{
		"phone,name,municipality,district,province,blood_group,extra",
		"9841000001,Anita,Kathmandu,Kathmandu,Bagmati,O+,ignored",
	}, "\n")

	donors, _, err := ReadDonors(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, donors, 1)
	assert.Equal(t, "Anita", donors[0].Name)
	assert.Equal(t, "9841000001", donors[0].Phone)
}

func TestReadDonorsMissingColumnFatal(t *testing.T) {
	input := "name,blood_group,phone\nAnita,O+,9841000001"

	_, _, err := ReadDonors(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "province")
}

func TestWriteDonorsRoundTrip(t *testing.T) {
	donors := []domain.Donor{
		{Name: "Anita", BloodGroup: "O+", Phone: "9841000001", Province: "Bagmati", District: "Kathmandu", Municipality: "Kathmandu"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDonors(&buf, donors))

	parsed, result, err := ReadDonors(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, parsed, 1)
	assert.Equal(t, donors[0].Name, parsed[0].Name)
	assert.Equal(t, donors[0].Phone, parsed[0].Phone)
}
