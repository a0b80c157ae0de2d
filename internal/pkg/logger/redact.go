package logger

import "strings"

// RedactEmail masks a candidate email address for safe logging.
// "ana.ruiz@example.com" → "an***@example.com". Short local parts
// (≤2 chars) are fully masked. Values that are not email-shaped are
// masked entirely rather than logged verbatim.
func RedactEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "***"
	}
	name := parts[0]
	if len(name) > 2 {
		return name[:2] + "***@" + parts[1]
	}
	return "***@" + parts[1]
}
