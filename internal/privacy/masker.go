// Package privacy implements deterministic PII masking and secure storage
// path derivation. Masking is pattern-based and best-effort: it is a
// defense-in-depth layer applied before content leaves the trust boundary,
// not a redaction guarantee.
package privacy

import (
	"encoding/base64"
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

var (
	// Mobile numbers: keep the leading 3 and trailing 4 digits.
	phonePattern = regexp.MustCompile(`(1[3-9]\d)\d{4}(\d{4})`)

	// National ID numbers: keep the leading 6 and trailing 4 characters.
	idCardPattern = regexp.MustCompile(`(\d{6})\d{8}(\w{4})`)

	// Email addresses: mask the local part, preserve the domain.
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+(@[A-Za-z0-9.-]+\.[A-Za-z]{2,})`)
)

// Mask redacts phone numbers, ID numbers, and email addresses in text
// without altering the surrounding content. It is pure and idempotent:
// Mask(Mask(t)) == Mask(t), and Mask("") == "".
//
// Safe for concurrent use; the compiled patterns are read-only.
func Mask(text string) string {
	if text == "" {
		return ""
	}

	// Phone numbers: 13800138000 -> 138****8000
	masked := phonePattern.ReplaceAllString(text, `$1****$2`)

	// ID numbers: 110101199001011234 -> 110101********1234
	masked = idCardPattern.ReplaceAllString(masked, `${1}********${2}`)

	// Emails: alice@example.com -> ***@example.com
	masked = emailPattern.ReplaceAllString(masked, `***$1`)

	return masked
}

// SecureStoragePath derives the opaque storage locator for a document:
// secure_storage/<user-hash>/<case-id>/<doc-id>.dat. The user segment is a
// short hash so paths never expose the raw user identifier.
func SecureStoragePath(userID, caseID, docID uuid.UUID) string {
	userHash := base64.RawURLEncoding.EncodeToString(userID[:])[:8]
	return fmt.Sprintf("secure_storage/%s/%s/%s.dat", userHash, caseID, docID)
}
