package changelog

import (
	"regexp"
	"strings"
)

// Classification is the parsed form of one subject line.
type Classification struct {
	Type     string
	Category string
	Subject  string
}

var (
	// conventionalPreface matches the strict "type", "type()", "type(category)"
	// and "type(*)" prefaces.
	conventionalPreface = regexp.MustCompile(`^([\w.-]+)(\(([\w.-]*|\*)\))?$`)

	// looseTypePreface and looseScopedPreface accept any token free of whitespace,
	// parentheses and colons once surrounding whitespace is trimmed. Blanks between
	// the type and its "(" are dropped the same way.
	looseTypePreface   = regexp.MustCompile(`^[^\s():]+$`)
	looseScopedPreface = regexp.MustCompile(`^([^\s():]+)[ \t]*\(([^\s()]*)\)$`)
)

// Classify parses a subject line into type, category and subject text.
// Only the first colon separates the preface from the subject. Classification
// always succeeds: lines without a parseable preface are returned whole with the
// Empty sentinel as both type and category.
func Classify(line string) Classification {
	line = strings.TrimRight(line, "\r\n")

	preface, rest, found := strings.Cut(line, ":")
	if !found {
		return freeText(line)
	}
	subject := strings.TrimSpace(rest)

	if c, ok := classifyConventional(preface, subject); ok {
		return c
	}
	if c, ok := classifyRecovered(preface, subject); ok {
		return c
	}
	return freeText(line)
}

// ClassifyCommit classifies a raw commit's subject and carries its ids over.
func ClassifyCommit(raw RawCommit) ClassifiedCommit {
	c := Classify(raw.Subject)
	return ClassifiedCommit{
		Type:     c.Type,
		Category: c.Category,
		Subject:  c.Subject,
		ShortID:  raw.ShortID,
		LongID:   raw.LongID,
	}
}

// ClassifyAll classifies every record; the result has the same length and order as raws.
func ClassifyAll(raws []RawCommit) []ClassifiedCommit {
	out := make([]ClassifiedCommit, len(raws))
	for i, raw := range raws {
		out[i] = ClassifyCommit(raw)
	}
	return out
}

// classifyConventional handles "type:", "type():", "type(category):" and "type(*):".
func classifyConventional(preface, subject string) (Classification, bool) {
	m := conventionalPreface.FindStringSubmatch(preface)
	if m == nil {
		return Classification{}, false
	}

	category := Global
	if m[2] != "" {
		category = scopeCategory(m[3])
	}
	return Classification{Type: m[1], Category: category, Subject: subject}, true
}

// classifyRecovered is the best-effort pass for prefaces the strict grammar
// rejects, such as "feat!", "fix(api+cli)" or "feat (cli)".
func classifyRecovered(preface, subject string) (Classification, bool) {
	preface = strings.TrimSpace(preface)

	if looseTypePreface.MatchString(preface) {
		return Classification{Type: preface, Category: Global, Subject: subject}, true
	}
	if m := looseScopedPreface.FindStringSubmatch(preface); m != nil {
		return Classification{Type: m[1], Category: scopeCategory(m[2]), Subject: subject}, true
	}
	return Classification{}, false
}

// scopeCategory maps "" and "*" to Global.
func scopeCategory(scope string) string {
	if scope == "" || scope == "*" {
		return Global
	}
	return scope
}

func freeText(line string) Classification {
	return Classification{Type: Empty, Category: Empty, Subject: line}
}
