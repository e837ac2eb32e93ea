// Package sanitizer скрывает пароли, ключи и персональные данные перед записью в лог.
package sanitizer

import (
	"fmt"
	"sort"
	"strings"
)

const Filtered = "[FILTERED]"

type DataSanitizer struct {
	rules []Rule
}

func New() *DataSanitizer {
	return &DataSanitizer{
		rules: []Rule{
			URLCredentialsRule,
			PasswordRule,
			TokenRule,
			CardRule,
			EmailRule,
			PhoneRule,
		},
	}
}

func (s *DataSanitizer) Sanitize(text string) string {
	if text == "" {
		return text
	}

	result := text
	for _, rule := range s.rules {
		result = rule.Sanitize(result)
	}
	return result
}

var sensitiveKeys = []string{
	"password", "passwd", "пароль", "token", "api_key", "api-key", "apikey",
	"secret", "cvv", "cvc", "card",
}

// IsSensitiveKey сообщает, что значение под этим именем нельзя логировать.
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, k := range sensitiveKeys {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// SanitizeField маскирует значение целиком, если имя поля чувствительное.
func (s *DataSanitizer) SanitizeField(field, value string) string {
	if value == "" {
		return value
	}
	if IsSensitiveKey(field) {
		return Filtered
	}
	return s.Sanitize(value)
}

// SanitizeRecord возвращает копию записи, пригодную для лога.
func (s *DataSanitizer) SanitizeRecord(rec map[string]any) map[string]any {
	out := make(map[string]any, len(rec))
	for k, v := range rec {
		switch val := v.(type) {
		case map[string]any:
			out[k] = s.SanitizeRecord(val)
		case string:
			out[k] = s.SanitizeField(k, val)
		default:
			if IsSensitiveKey(k) {
				out[k] = Filtered
			} else {
				out[k] = v
			}
		}
	}
	return out
}

// SanitizeValue приводит произвольное значение фикстуры к строке для лога.
func (s *DataSanitizer) SanitizeValue(v any) string {
	switch val := v.(type) {
	case map[string]any:
		clean := s.SanitizeRecord(val)
		keys := make([]string, 0, len(clean))
		for k := range clean {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, clean[k]))
		}
		return "{" + strings.Join(parts, " ") + "}"
	case string:
		return s.Sanitize(val)
	default:
		return fmt.Sprintf("%v", v)
	}
}
