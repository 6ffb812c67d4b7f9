package domain

import "regexp"

var billIDPattern = regexp.MustCompile(`^([A-Za-z]+)(\d+)$`)

// NormaliseBillID converts a compact bill code into its dotted display
// form: "H491" becomes "H.491". Codes that are not exactly letters followed
// by digits are returned unchanged.
func NormaliseBillID(billID string) string {
	m := billIDPattern.FindStringSubmatch(billID)
	if m == nil {
		return billID
	}
	return m[1] + "." + m[2]
}
