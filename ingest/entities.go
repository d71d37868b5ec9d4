package ingest

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"rosterimport/roster"
)

var (
	emailPattern       = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	programCodePattern = regexp.MustCompile(`\b\d+[A-Za-z]+\b`)
)

var (
	programmeLineKeywords = []string{"bachelor", "master", "programme"}
	nameRejectKeywords    = []string{"programme", "email", "folder", "robe"}
)

// Pool is an ordered set of harvested values with a draw cursor.
type Pool struct {
	items  []string
	seen   map[string]struct{}
	cursor int
}

func newPool() *Pool {
	return &Pool{seen: make(map[string]struct{})}
}

func (p *Pool) add(value string) {
	if value == "" {
		return
	}
	if _, ok := p.seen[value]; ok {
		return
	}
	p.seen[value] = struct{}{}
	p.items = append(p.items, value)
}

// Items returns the pool members in first-occurrence order.
func (p *Pool) Items() []string {
	return append([]string(nil), p.items...)
}

func (p *Pool) Len() int {
	return len(p.items)
}

// Draw returns the next unused member, skipping any value in exclude. A pool
// with exactly one member keeps handing that member out once it is used.
func (p *Pool) Draw(exclude ...string) (string, bool) {
	for p.cursor < len(p.items) {
		item := p.items[p.cursor]
		p.cursor++
		if !slices.Contains(exclude, item) {
			return item, true
		}
	}
	if len(p.items) == 1 {
		return p.items[0], true
	}
	return "", false
}

// EntityPool holds the values harvested from one document. It lives for a
// single ingestion call.
type EntityPool struct {
	Emails       *Pool
	ProgramCodes *Pool
	TeacherNames *Pool
}

// NewEntityPool returns empty pools.
func NewEntityPool() *EntityPool {
	return &EntityPool{
		Emails:       newPool(),
		ProgramCodes: newPool(),
		TeacherNames: newPool(),
	}
}

func (e *EntityPool) poolFor(field roster.Field) *Pool {
	switch {
	case field.IsEmail():
		return e.Emails
	case field.IsName():
		return e.TeacherNames
	case field == roster.ProgrammeName:
		return e.ProgramCodes
	default:
		return nil
	}
}

// ScanEntities harvests emails, programme codes and teacher-name candidates
// from every line, independent of header resolution.
func ScanEntities(lines []string) *EntityPool {
	pool := NewEntityPool()
	for _, line := range lines {
		for _, email := range emailPattern.FindAllString(line, -1) {
			pool.Emails.add(email)
		}

		withoutEmails := emailPattern.ReplaceAllString(line, " ")
		for _, code := range programCodePattern.FindAllString(withoutEmails, -1) {
			if usableEntity(code) {
				pool.ProgramCodes.add(code)
			}
		}

		segments := Tokenize(line)
		if containsAny(strings.ToLower(line), programmeLineKeywords) {
			for _, segment := range segments {
				if utf8.RuneCountInString(segment) > 5 && !strings.Contains(segment, "@") && usableEntity(segment) {
					pool.ProgramCodes.add(segment)
				}
			}
		}

		for _, segment := range segments {
			if isNameCandidate(segment) {
				pool.TeacherNames.add(segment)
			}
		}
	}
	return pool
}

func isNameCandidate(segment string) bool {
	if utf8.RuneCountInString(segment) <= 3 {
		return false
	}
	if strings.Contains(segment, "@") || strings.IndexFunc(segment, unicode.IsDigit) >= 0 {
		return false
	}
	if containsAny(strings.ToLower(segment), nameRejectKeywords) {
		return false
	}
	if _, isLabel := ResolveField(segment); isLabel {
		return false
	}
	return usableEntity(segment)
}

// usableEntity rejects values that would get a row dropped by the filter, and
// literal header labels.
func usableEntity(value string) bool {
	if isContaminated(value) || isSentinel(value) {
		return false
	}
	_, isLabel := roster.FieldByLabel(value)
	return !isLabel
}
