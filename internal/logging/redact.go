package logging

import (
	"strings"

	"github.com/sirupsen/logrus"
)

const redactedValue = "[REDACTED]"

var defaultSensitiveKeys = []string{
	"password",
	"password_hash",
	"passwordhash",
	"token",
	"authorization",
	"secret",
	"jwt_secret",
}

// RedactHook replaces the values of sensitive fields on every entry.
type RedactHook struct {
	keys map[string]struct{}
}

// NewRedactHook returns a hook masking the default sensitive keys plus extra.
// Keys are matched case-insensitively.
func NewRedactHook(extra ...string) *RedactHook {
	keys := make(map[string]struct{}, len(defaultSensitiveKeys)+len(extra))
	for _, key := range append(append([]string{}, defaultSensitiveKeys...), extra...) {
		keys[strings.ToLower(key)] = struct{}{}
	}
	return &RedactHook{keys: keys}
}

func (h *RedactHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *RedactHook) Fire(entry *logrus.Entry) error {
	for key := range entry.Data {
		if _, ok := h.keys[strings.ToLower(key)]; ok {
			entry.Data[key] = redactedValue
		}
	}
	return nil
}
