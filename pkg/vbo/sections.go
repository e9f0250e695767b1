package vbo

import (
	"regexp"
	"strings"
	"time"
)

// sections holds the line-oriented content of a logger file, keyed by the
// lowercased section name without brackets. Lines preceding the first
// bracketed header are kept under the empty key.
type sections map[string][]string

var creationDateRe = regexp.MustCompile(
	`(\d{2}/\d{2}/\d{4})(?:\s+(?:at|@)\s+(\d{2}:\d{2}:\d{2}))?`)

// scanSections splits raw text into sections. Tolerant of \r\n line
// endings and stray whitespace around section headers; blank lines are
// dropped.
func scanSections(raw string) sections {
	ret := sections{}
	current := ""
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			current = strings.ToLower(strings.TrimSpace(trimmed[1 : len(trimmed)-1]))
			if _, ok := ret[current]; !ok {
				ret[current] = []string{}
			}
			continue
		}
		ret[current] = append(ret[current], trimmed)
	}
	return ret
}

func (s sections) has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s sections) lines(name string) []string {
	return s[name]
}

// creationDate extracts the optional leading timestamp from the preamble
// lines. Diagnostic metadata only: absent or unparseable dates yield the
// current time.
func (s sections) creationDate() time.Time {
	for _, line := range s.lines("") {
		m := creationDateRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if m[2] != "" {
			if ts, err := time.Parse("02/01/2006 15:04:05", m[1]+" "+m[2]); err == nil {
				return ts
			}
		}
		if ts, err := time.Parse("02/01/2006", m[1]); err == nil {
			return ts
		}
	}
	return time.Now()
}
