package roster

import "strings"

// Field identifies one of the canonical columns every normalized record carries.
type Field int

const (
	ProgrammeName Field = iota
	RobeEmail
	FolderEmail
	AccompanyingTeacher
	FolderInCharge
	ClassSection
)

// FieldCount is the number of canonical fields.
const FieldCount = int(ClassSection) + 1

var fieldLabels = [...]string{
	ProgrammeName:       "Programme Name",
	RobeEmail:           "Robe Email ID",
	FolderEmail:         "Folder Email ID",
	AccompanyingTeacher: "Accompanying Teacher",
	FolderInCharge:      "Folder in Charge",
	ClassSection:        "Class Section",
}

// Label returns the canonical column label, which is also the export header.
func (f Field) Label() string {
	if f < 0 || int(f) >= len(fieldLabels) {
		return ""
	}
	return fieldLabels[f]
}

func (f Field) String() string {
	return f.Label()
}

// IsEmail reports whether the field holds an email address.
func (f Field) IsEmail() bool {
	return f == RobeEmail || f == FolderEmail
}

// IsName reports whether the field holds a teacher name.
func (f Field) IsName() bool {
	return f == AccompanyingTeacher || f == FolderInCharge
}

// CanonicalFields returns all fields in export order.
func CanonicalFields() []Field {
	return []Field{ProgrammeName, RobeEmail, FolderEmail, AccompanyingTeacher, FolderInCharge, ClassSection}
}

// FieldByLabel matches a canonical label exactly, ignoring case and surrounding space.
func FieldByLabel(label string) (Field, bool) {
	trimmed := strings.TrimSpace(label)
	for _, field := range CanonicalFields() {
		if strings.EqualFold(trimmed, field.Label()) {
			return field, true
		}
	}
	return 0, false
}

// Record is the normalized roster row handed to storage and output layers.
type Record struct {
	ProgrammeName       string `yaml:"programme_name"`
	RobeEmail           string `yaml:"robe_email"`
	FolderEmail         string `yaml:"folder_email"`
	AccompanyingTeacher string `yaml:"accompanying_teacher"`
	FolderInCharge      string `yaml:"folder_in_charge"`
	ClassSection        string `yaml:"class_section"`
}

func (r Record) Get(field Field) string {
	switch field {
	case ProgrammeName:
		return r.ProgrammeName
	case RobeEmail:
		return r.RobeEmail
	case FolderEmail:
		return r.FolderEmail
	case AccompanyingTeacher:
		return r.AccompanyingTeacher
	case FolderInCharge:
		return r.FolderInCharge
	case ClassSection:
		return r.ClassSection
	default:
		return ""
	}
}

func (r *Record) Set(field Field, value string) {
	switch field {
	case ProgrammeName:
		r.ProgrammeName = value
	case RobeEmail:
		r.RobeEmail = value
	case FolderEmail:
		r.FolderEmail = value
	case AccompanyingTeacher:
		r.AccompanyingTeacher = value
	case FolderInCharge:
		r.FolderInCharge = value
	case ClassSection:
		r.ClassSection = value
	}
}

// Fields returns the record as an ordered key/value list keyed by canonical label.
func (r Record) Fields() Fields {
	out := make(Fields, 0, len(fieldLabels))
	for _, field := range CanonicalFields() {
		out = append(out, KV{Key: field.Label(), Value: r.Get(field)})
	}
	return out
}

// KV is one keyed cell of an ordered row.
type KV struct {
	Key   string
	Value string
}

// Fields is an ordered row of keyed cells. Exporters use it so that rows with
// differing key sets can still produce a stable header.
type Fields []KV

// Lookup returns the value stored under key.
func (f Fields) Lookup(key string) (string, bool) {
	for _, kv := range f {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}
