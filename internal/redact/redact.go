// Package redact scrubs connection strings, credentials, SQL fragments and
// file paths from text before it is logged. Error messages from the database
// driver routinely carry the DSN or the failing statement, and deck content
// must never reach logs through them.
package redact

import (
	"regexp"
	"strings"
)

// Placeholders substituted for redacted text.
const (
	Placeholder           = "[REDACTED]"
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	PathPlaceholder       = "[REDACTED_PATH]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	HostPlaceholder       = "[REDACTED_HOST]"
	StackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules run in order; earlier rules see the raw text.
var rules = []rule{
	// postgres://user:pass@ and friends, up to and including the '@'.
	{regexp.MustCompile(`(?i)\b(postgres(?:ql)?|pgx|mysql|db|database)://[^@\s]+@`), CredentialPlaceholder},
	// key=value DSN credentials (password=..., sslpassword=..., pwd: ...).
	{regexp.MustCompile(`(?i)\b(ssl)?(password|passwd|pwd)\s*[=:]\s*['"]?[^'"&\s]+`), CredentialPlaceholder},
	{regexp.MustCompile(`(?i)\b(api[_-]?key|token|secret)\s*[=:]\s*['"]?[A-Za-z0-9_\-.~+/]{8,}`), CredentialPlaceholder},
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), StackPlaceholder},
	{regexp.MustCompile(
		`(?i)\b(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)\b[\s\w,*()$:.=']+\b(FROM|INTO|SET|TABLE|INDEX)\b[^;\n]*`,
	), SQLPlaceholder},
	{regexp.MustCompile(`(/[\w.-]+){2,}`), PathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(\\[^\\\s]+)+`), PathPlaceholder},
	{regexp.MustCompile(
		`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`,
	), HostPlaceholder},
	{regexp.MustCompile(`\b\d{1,3}(?:\.\d{1,3}){3}(?::\d{1,5})?\b`), HostPlaceholder},
}

// String redacts sensitive information from s.
func String(s string) string {
	if strings.TrimSpace(s) == "" {
		return s
	}
	for _, r := range rules {
		s = r.pattern.ReplaceAllString(s, r.placeholder)
	}
	return s
}

// Error redacts sensitive information from err's message. A nil error yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
