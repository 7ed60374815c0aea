package fedlex

import (
	"fmt"
	"strings"
	"time"

	"github.com/piarosebelledelapaz/pro-botno/internal/models"
)

// normDateLayouts are the date shapes JOLux emits for applicability dates.
var normDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// parseNormDate parses a JOLux date string. A trailing "Z" without a time
// component is tolerated.
func parseNormDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if strings.HasSuffix(value, "Z") && !strings.Contains(value, "T") {
		value = strings.TrimSuffix(value, "Z")
	}
	var lastErr error
	for _, layout := range normDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// EvaluateApplicability classifies a norm's legal status at the reference
// instant from its validity interval. Pure: identical inputs always yield
// the identical result, and malformed dates come back as a status rather
// than an error so the caller can still render diagnostics.
func EvaluateApplicability(validFrom, validTo string, reference time.Time) models.ApplicabilityResult {
	if validFrom == "" && validTo == "" {
		return models.ApplicabilityResult{
			Status: models.NoDatesAvailable,
			Detail: "Applicability dates not specified",
		}
	}

	var start, end time.Time
	if validFrom != "" {
		t, err := parseNormDate(validFrom)
		if err != nil {
			return models.ApplicabilityResult{
				Status: models.ApplicabilityError,
				Detail: fmt.Sprintf("Error parsing dates: %v", err),
			}
		}
		start = t
	}
	if validTo != "" {
		t, err := parseNormDate(validTo)
		if err != nil {
			return models.ApplicabilityResult{
				Status: models.ApplicabilityError,
				Detail: fmt.Sprintf("Error parsing dates: %v", err),
			}
		}
		end = t
	}

	switch {
	case validFrom != "" && validTo == "":
		if !reference.Before(start) {
			return models.ApplicabilityResult{
				Status:     models.CurrentlyApplicable,
				Applicable: true,
				Detail:     fmt.Sprintf("Applicable since %s", start.Format("2006-01-02")),
			}
		}
		return models.ApplicabilityResult{
			Status: models.NotYetApplicable,
			Detail: fmt.Sprintf("Will be applicable from %s", start.Format("2006-01-02")),
		}

	case validFrom != "" && validTo != "":
		interval := fmt.Sprintf("from %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
		switch {
		case reference.Before(start):
			return models.ApplicabilityResult{
				Status: models.NotYetApplicable,
				Detail: "Will be applicable " + interval,
			}
		case reference.After(end):
			return models.ApplicabilityResult{
				Status: models.Expired,
				Detail: "Was applicable " + interval,
			}
		default:
			return models.ApplicabilityResult{
				Status:     models.CurrentlyApplicable,
				Applicable: true,
				Detail:     "Applicable " + interval,
			}
		}

	default:
		// Only an end date: the start is unknown, so the status is too.
		return models.ApplicabilityResult{
			Status: models.NoDatesAvailable,
			Detail: "Start of applicability not specified",
		}
	}
}
