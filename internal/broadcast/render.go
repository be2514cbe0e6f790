package broadcast

import (
	"fmt"
	"unicode/utf8"
)

// MaxSMSLength is the single-segment SMS transport limit. Rendering never
// truncates; callers surface a warning when the limit is exceeded.
const MaxSMSLength = 160

// RenderMessage produces the fixed broadcast template: an organization line,
// an urgency line naming the blood group and location, and a contact line
// ending with the callback phone number.
func RenderMessage(bloodGroup, municipality, district, province, orgName, contactPhone string) string {
	return fmt.Sprintf(
		"%s\nURGENT: %s blood needed in %s, %s, %s.\nPlease contact: %s",
		orgName, bloodGroup, municipality, district, province, contactPhone,
	)
}

// ExceedsSMSLength reports whether the message will not fit in a single SMS
// segment.
func ExceedsSMSLength(message string) bool {
	return utf8.RuneCountInString(message) > MaxSMSLength
}
