// Package logger provides structured logging for Redisgate.
package logger

import (
	"log/slog"
	"net/url"
	"strings"
)

// Key names whose string values are fully redacted.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"credential",
	"auth",
}

// URL schemes whose userinfo must never reach a log line.
var redactedSchemes = []string{
	"redis://",
	"rediss://",
}

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// redactSensitive rewrites an attribute so no credential survives into
// the log output.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		strVal := a.Value.String()

		// Connection URLs get their userinfo masked but stay readable.
		for _, scheme := range redactedSchemes {
			if strings.HasPrefix(strVal, scheme) {
				return slog.String(a.Key, RedactURL(strVal))
			}
		}

		keyLower := strings.ToLower(a.Key)
		for _, pattern := range sensitiveKeyPatterns {
			if strings.Contains(keyLower, pattern) {
				if strVal != "" {
					return slog.String(a.Key, redactedValue)
				}
				break
			}
		}
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	return a
}

// RedactURL masks the password component of a connection URL, keeping
// scheme, host, port and database readable. Unparseable input is fully
// redacted rather than passed through.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return redactedValue
	}
	if u.User == nil {
		return raw
	}
	if _, hasPassword := u.User.Password(); hasPassword {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
		// url.String escapes the placeholder; keep the mask literal.
		return strings.Replace(u.String(), "xxxxx", "***", 1)
	}
	return raw
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
