package validation_test

import (
	"strings"
	"testing"
	"time"

	"vessels/internal/apperror"
	"vessels/internal/validation"
	"vessels/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func int64Ptr(i int64) *int64 { return &i }

func shipTypePtr(t models.ShipType) *models.ShipType { return &t }

// requireFieldError asserts err is a validation error reporting field with code.
func requireFieldError(t *testing.T, err error, field, code string) apperror.FieldError {
	t.Helper()
	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	for _, f := range verr.Fields {
		if f.Field == field {
			require.Equal(t, code, f.Code)
			return f
		}
	}
	require.Failf(t, "field not reported", "field %q missing from %v", field, verr.Fields)
	return apperror.FieldError{}
}

func TestCheckYearBuilt(t *testing.T) {
	tests := []struct {
		value   string
		wantErr string
	}{
		{"", ""},
		{"0000", ""},
		{"9999", ""},
		{"1998", ""},
		{"abcd", "abcd is not a valid number."},
		{"19a8", "19a8 is not a valid number."},
		{"-1", "-1 is not a valid number."},
		{"10000", "10000 is not within the range 0 to 9999."},
		{"99999999999999999999", "99999999999999999999 is not within the range 0 to 9999."},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := validation.CheckYearBuilt(tt.value)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestShipYearBuilt(t *testing.T) {
	v := validation.New()

	for _, year := range []string{"", "0000", "9999", "2001"} {
		ship := &models.Ship{CompanyID: 1, YearBuilt: strPtr(year)}
		require.NoError(t, v.Ship(ship), year)
	}
	require.NoError(t, v.Ship(&models.Ship{CompanyID: 1}))

	f := requireFieldError(t, v.Ship(&models.Ship{CompanyID: 1, YearBuilt: strPtr("abcd")}), "year_built", apperror.CodeInvalid)
	assert.Equal(t, "abcd is not a valid number.", f.Message)

	f = requireFieldError(t, v.Ship(&models.Ship{CompanyID: 1, YearBuilt: strPtr("10000")}), "year_built", apperror.CodeInvalid)
	assert.Equal(t, "10000 is not within the range 0 to 9999.", f.Message)
}

func TestShipNumericFields(t *testing.T) {
	v := validation.New()

	ok := &models.Ship{
		CompanyID:    1,
		Tonnage:      int64Ptr(0),
		MaxLoadDraft: int64Ptr(12),
		DryDraft:     int64Ptr(8),
		Beam:         int64Ptr(30),
		Length:       int64Ptr(200),
	}
	require.NoError(t, v.Ship(ok))

	bad := &models.Ship{
		CompanyID:    1,
		Tonnage:      int64Ptr(-1),
		MaxLoadDraft: int64Ptr(-2),
		DryDraft:     int64Ptr(-3),
		Beam:         int64Ptr(-4),
		Length:       int64Ptr(-5),
	}
	err := v.Ship(bad)
	for _, field := range []string{"tonnage", "max_load_draft", "dry_draft", "beam", "length"} {
		f := requireFieldError(t, err, field, apperror.CodeInvalid)
		assert.Contains(t, f.Message, "greater than or equal to 0")
	}
}

func TestShipType(t *testing.T) {
	v := validation.New()

	for _, st := range models.ShipTypes {
		require.NoError(t, v.Ship(&models.Ship{CompanyID: 1, Type: shipTypePtr(st)}), st)
	}
	require.NoError(t, v.Ship(&models.Ship{CompanyID: 1, Type: shipTypePtr("")}))

	f := requireFieldError(t, v.Ship(&models.Ship{CompanyID: 1, Type: shipTypePtr("yacht")}), "type", apperror.CodeInvalid)
	assert.Equal(t, `"yacht" is not a valid choice.`, f.Message)
}

func TestStringLengths(t *testing.T) {
	v := validation.New()
	long := strings.Repeat("a", 257)

	require.NoError(t, v.Company(&models.Company{Name: strPtr(strings.Repeat("a", 256))}))
	requireFieldError(t, v.Company(&models.Company{Name: strPtr(long)}), "name", apperror.CodeInvalid)

	requireFieldError(t, v.Person(&models.Person{CompanyID: 1, Phone: strPtr(strings.Repeat("1", 65))}), "phone", apperror.CodeInvalid)
	require.NoError(t, v.Person(&models.Person{CompanyID: 1, Phone: strPtr(strings.Repeat("1", 64))}))

	err := v.Harbour(&models.Harbour{City: strPtr(long), Country: strPtr(long), HarbourMaster: strPtr(long)})
	requireFieldError(t, err, "city", apperror.CodeInvalid)
	requireFieldError(t, err, "country", apperror.CodeInvalid)
	requireFieldError(t, err, "harbour_master", apperror.CodeInvalid)

	requireFieldError(t, v.Ship(&models.Ship{CompanyID: 1, Flag: strPtr(long)}), "flag", apperror.CodeInvalid)
}

func TestBlankAndNullAreBothValid(t *testing.T) {
	v := validation.New()

	require.NoError(t, v.Company(&models.Company{}))
	require.NoError(t, v.Company(&models.Company{Name: strPtr("")}))
	require.NoError(t, v.Person(&models.Person{CompanyID: 1, Email: strPtr("")}))
	require.NoError(t, v.Harbour(&models.Harbour{Name: strPtr(""), City: strPtr("")}))
}

func TestPersonEmail(t *testing.T) {
	v := validation.New()

	require.NoError(t, v.Person(&models.Person{CompanyID: 1, Email: strPtr("tony@stark.com")}))

	f := requireFieldError(t, v.Person(&models.Person{CompanyID: 1, Email: strPtr("not-an-email")}), "email", apperror.CodeInvalid)
	assert.Equal(t, "Enter a valid email address.", f.Message)
}

func TestMissingParentIsRequired(t *testing.T) {
	v := validation.New()

	err := v.Person(&models.Person{Name: strPtr("Pepper")})
	requireFieldError(t, err, "company", apperror.CodeRequired)

	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.IsReference())

	requireFieldError(t, v.Ship(&models.Ship{}), "company", apperror.CodeRequired)

	err = v.Visit(&models.Visit{})
	requireFieldError(t, err, "ship", apperror.CodeRequired)
	requireFieldError(t, err, "harbour", apperror.CodeRequired)
}

func TestHarbourBerthDepth(t *testing.T) {
	v := validation.New()

	require.NoError(t, v.Harbour(&models.Harbour{MaxBerthDepth: int64Ptr(0)}))
	requireFieldError(t, v.Harbour(&models.Harbour{MaxBerthDepth: int64Ptr(-1)}), "max_berth_depth", apperror.CodeInvalid)
}

func TestVisitOrdering(t *testing.T) {
	v := validation.New()
	entry := time.Date(2023, time.May, 26, 10, 15, 30, 0, time.UTC)
	before := entry.Add(-time.Minute)
	after := entry.Add(4 * time.Hour)

	require.NoError(t, v.Visit(&models.Visit{ShipID: 1, HarbourID: 1, EntryTime: &entry, ExitTime: &after}))
	require.NoError(t, v.Visit(&models.Visit{ShipID: 1, HarbourID: 1, EntryTime: &entry, ExitTime: &entry}))

	err := v.Visit(&models.Visit{ShipID: 1, HarbourID: 1, EntryTime: &entry, ExitTime: &before})
	f := requireFieldError(t, err, "exit_time", apperror.CodeInvalid)
	assert.Equal(t, validation.ExitBeforeEntryMessage, f.Message)

	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.False(t, verr.IsReference())
}

func TestVisitOrderingSkippedOnPartialWindow(t *testing.T) {
	v := validation.New()
	ts := time.Date(2023, time.May, 26, 10, 15, 30, 0, time.UTC)

	require.NoError(t, v.Visit(&models.Visit{ShipID: 1, HarbourID: 1, ExitTime: &ts}))
	require.NoError(t, v.Visit(&models.Visit{ShipID: 1, HarbourID: 1, EntryTime: &ts}))
	require.NoError(t, v.Visit(&models.Visit{ShipID: 1, HarbourID: 1}))
}

func TestParseShipType(t *testing.T) {
	st, err := validation.ParseShipType("type", "tanker")
	require.NoError(t, err)
	assert.Equal(t, models.ShipTypeTanker, st)

	_, err = validation.ParseShipType("type", "yacht")
	requireFieldError(t, err, "type", apperror.CodeInvalid)
}
