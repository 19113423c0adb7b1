// Package redact scrubs credentials, password hashes, connection strings,
// email addresses, SQL fragments and file paths from text before it is
// logged. Error responses never carry raw error text; the redacted form is
// for logs only.
package redact

import (
	"log/slog"
	"regexp"
)

// Placeholders substituted for redacted fragments.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedHashPlaceholder       = "[REDACTED_HASH]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedHostPlaceholder       = "[REDACTED_HOST]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules run in order; earlier rules see the raw text.
var rules = []rule{
	{
		regexp.MustCompile(`(?i)(postgres(?:ql)?|pgx|db|database)://[^@\s]+@`),
		RedactedCredentialPlaceholder,
	},
	{
		// bcrypt hashes: $2a$10$ followed by 53 characters of salt and digest.
		regexp.MustCompile(`\$2[abxy]?\$\d{2}\$[./A-Za-z0-9]{53}`),
		RedactedHashPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)\b(password|passwd|pwd)\s*[=:]\s*['"]?[^'"&\s]{3,}`),
		RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)(api[_-]?key|token|secret|access[_-]?key)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`),
		RedactedKeyPlaceholder,
	},
	{
		regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		RedactedEmailPlaceholder,
	},
	{
		regexp.MustCompile(`\b(SELECT|INSERT|UPDATE|DELETE)\s.*?\b(FROM|INTO|SET|WHERE|RETURNING)\b[^;\n]*`),
		RedactedSQLPlaceholder,
	},
	{
		regexp.MustCompile(`(/[\w.-]+){2,}`),
		RedactedPathPlaceholder,
	},
	{
		regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(\\[^\\\s]+)+`),
		RedactedPathPlaceholder,
	},
	{
		regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}:\d{1,5}\b`),
		RedactedHostPlaceholder,
	},
}

// String redacts sensitive information from input.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from err.Error().
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// ErrorAttr returns err as a redacted "error" log attribute.
func ErrorAttr(err error) slog.Attr {
	return slog.String("error", Error(err))
}
