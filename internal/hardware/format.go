package hardware

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// BytesToGB converts a byte count to gigabytes rounded to two decimals.
func BytesToGB(v uint64) float64 {
	return math.Round(float64(v)/(1<<30)*100) / 100
}

func formatGB(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatMB(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func formatMHz(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

var measuredPattern = regexp.MustCompile(`\d+\.\d+`)

// FormatMeasured renders a measured value against an expected one.
// The expected value is the first decimal number found in the given
// string. Matching values (at one-decimal precision) render plain;
// differing values render emphasized. An expected value that cannot
// be parsed fails safe to the emphasized form.
func FormatMeasured(expected string, actual float64) string {
	rendered := strconv.FormatFloat(actual, 'f', 1, 64)
	raw := measuredPattern.FindString(expected)
	if raw == "" {
		return "**" + rendered + "**"
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || strconv.FormatFloat(parsed, 'f', 1, 64) != rendered {
		return "**" + rendered + "**"
	}
	return rendered
}

// formatSpeed renders a configured speed against the rated one,
// emphasizing a mismatch.
func formatSpeed(rated, configured uint32) string {
	s := strconv.FormatUint(uint64(configured), 10)
	if rated != configured {
		return "**" + s + "**"
	}
	return s
}

// formatVoltage renders a millivolt value in volts to two decimals.
// Zero means the firmware did not report a value.
func formatVoltage(mv uint32) string {
	if mv == 0 {
		return "N/A"
	}
	return strconv.FormatFloat(float64(mv)/1000, 'f', 2, 64)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}
