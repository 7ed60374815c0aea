package fedlex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piarosebelledelapaz/pro-botno/internal/models"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestEvaluateApplicability_Classification(t *testing.T) {
	tests := []struct {
		name       string
		validFrom  string
		validTo    string
		reference  time.Time
		wantStatus models.ApplicabilityStatus
		applicable bool
	}{
		{
			name:       "open ended, reference after start",
			validFrom:  "2000-01-01",
			reference:  date("2024-01-01"),
			wantStatus: models.CurrentlyApplicable,
			applicable: true,
		},
		{
			name:       "open ended, reference equals start",
			validFrom:  "2024-01-01",
			reference:  date("2024-01-01"),
			wantStatus: models.CurrentlyApplicable,
			applicable: true,
		},
		{
			name:       "open ended, reference before start",
			validFrom:  "2030-01-01",
			reference:  date("2024-01-01"),
			wantStatus: models.NotYetApplicable,
		},
		{
			name:       "interval, reference inside",
			validFrom:  "2010-06-01",
			validTo:    "2030-06-01",
			reference:  date("2024-01-01"),
			wantStatus: models.CurrentlyApplicable,
			applicable: true,
		},
		{
			name:       "interval, reference at end boundary",
			validFrom:  "2010-06-01",
			validTo:    "2024-01-01",
			reference:  date("2024-01-01"),
			wantStatus: models.CurrentlyApplicable,
			applicable: true,
		},
		{
			name:       "interval, reference before start",
			validFrom:  "2025-01-01",
			validTo:    "2030-01-01",
			reference:  date("2024-01-01"),
			wantStatus: models.NotYetApplicable,
		},
		{
			name:       "interval, reference past end",
			validFrom:  "2000-01-01",
			validTo:    "2010-01-01",
			reference:  date("2024-01-01"),
			wantStatus: models.Expired,
		},
		{
			name:       "no dates at all",
			reference:  date("2024-01-01"),
			wantStatus: models.NoDatesAvailable,
		},
		{
			name:       "only end date",
			validTo:    "2030-01-01",
			reference:  date("2024-01-01"),
			wantStatus: models.NoDatesAvailable,
		},
		{
			name:       "unparseable start date",
			validFrom:  "not-a-date",
			reference:  date("2024-01-01"),
			wantStatus: models.ApplicabilityError,
		},
		{
			name:       "unparseable end date",
			validFrom:  "2000-01-01",
			validTo:    "later",
			reference:  date("2024-01-01"),
			wantStatus: models.ApplicabilityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateApplicability(tt.validFrom, tt.validTo, tt.reference)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.applicable, got.Applicable)
			assert.NotEmpty(t, got.Detail)
		})
	}
}

func TestEvaluateApplicability_Pure(t *testing.T) {
	ref := date("2024-01-01")
	first := EvaluateApplicability("2000-01-01", "2030-01-01", ref)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, EvaluateApplicability("2000-01-01", "2030-01-01", ref))
	}
}

func TestEvaluateApplicability_ReferenceShiftFlipsStatus(t *testing.T) {
	validFrom, validTo := "2010-01-01", "2020-01-01"

	inside := EvaluateApplicability(validFrom, validTo, date("2015-06-01"))
	require.Equal(t, models.CurrentlyApplicable, inside.Status)

	before := EvaluateApplicability(validFrom, validTo, date("2009-12-31"))
	assert.Equal(t, models.NotYetApplicable, before.Status)

	after := EvaluateApplicability(validFrom, validTo, date("2020-01-02"))
	assert.Equal(t, models.Expired, after.Status)
}

func TestEvaluateApplicability_DateFormats(t *testing.T) {
	ref := date("2024-01-01")

	for _, value := range []string{"2000-01-01", "2000-01-01Z", "2000-01-01T00:00:00Z", "2000-01-01T00:00:00"} {
		got := EvaluateApplicability(value, "", ref)
		assert.Equal(t, models.CurrentlyApplicable, got.Status, "format %q", value)
	}
}
