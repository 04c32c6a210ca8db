package common

import (
	"math"
	"strconv"
	"strings"
)

// Class labels a displayed value as gain, loss, or neutral. The string value
// is the CSS class applied to the rendered span.
type Class string

const (
	ClassGain    Class = "value-gain"
	ClassLoss    Class = "value-loss"
	ClassNeutral Class = "value-neutral"
)

// ClassifyFormatted classifies an already-formatted display string. Rules, in
// order: "N/A" or empty is neutral, any negative sign is a loss, a stripped
// numeric value of zero is neutral, anything else that parses is a gain.
// Strings that do not contain a number at all are neutral.
//
// Backend table rows and trade metrics arrive pre-formatted with no raw
// number attached, so the sign has to be recovered from the string itself.
// Locally computed values should use ClassifyAmount instead.
func ClassifyFormatted(s string) Class {
	if s == "" || s == "N/A" {
		return ClassNeutral
	}
	if strings.Contains(s, "-") {
		return ClassLoss
	}

	v, err := strconv.ParseFloat(stripNonNumeric(s), 64)
	if err != nil || v == 0 {
		return ClassNeutral
	}
	return ClassGain
}

// ClassifyAmount classifies a raw numeric value: negative is a loss, zero or
// non-finite is neutral, positive is a gain.
func ClassifyAmount(v float64) Class {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0) || v == 0:
		return ClassNeutral
	case v < 0:
		return ClassLoss
	default:
		return ClassGain
	}
}

// stripNonNumeric removes everything except digits, dots, and minus signs.
func stripNonNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
