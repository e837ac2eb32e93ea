package sanitizer

import "regexp"

// Rule маскирует один вид чувствительных данных в тексте.
type Rule interface {
	Sanitize(text string) string
}

type regexRule struct {
	patterns    []*regexp.Regexp
	replacement string
}

func (r regexRule) Sanitize(text string) string {
	for _, p := range r.patterns {
		text = p.ReplaceAllString(text, r.replacement)
	}
	return text
}

var PasswordRule Rule = regexRule{
	patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)(password|passwd|pwd|пароль)(\s*[:=]\s*)["']?[^"'\s,}]{3,}["']?`),
	},
	replacement: `${1}${2}[FILTERED]`,
}

var TokenRule Rule = regexRule{
	patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)(token|api[_-]?key|api[_-]?secret|secret[_-]?key|access[_-]?token)(\s*[:=]\s*)["']?[a-zA-Z0-9_-]{6,}["']?`),
		regexp.MustCompile(`(?i)(bearer\s+)[a-zA-Z0-9._-]{20,}`),
	},
	replacement: `${1}${2}[FILTERED]`,
}

var EmailRule Rule = regexRule{
	patterns: []*regexp.Regexp{
		regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`),
	},
	replacement: `[FILTERED_EMAIL]`,
}

var CardRule Rule = regexRule{
	patterns: []*regexp.Regexp{
		regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`),
		regexp.MustCompile(`(?i)\b(cvv2?|cvc2?)\s*[:=]\s*["']?\d{3,4}["']?`),
	},
	replacement: `[FILTERED]`,
}

var PhoneRule Rule = regexRule{
	patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)(phone|телефон)(\s*[:=]\s*)["']?[+\d\s\-()]{7,}\d["']?`),
	},
	replacement: `${1}${2}[FILTERED_PHONE]`,
}

var URLCredentialsRule Rule = regexRule{
	patterns: []*regexp.Regexp{
		regexp.MustCompile(`(://[^:/@\s]+:)[^@\s]+@`),
	},
	replacement: `${1}[FILTERED]@`,
}
