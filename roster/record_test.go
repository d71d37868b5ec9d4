package roster

import "testing"

func TestFieldByLabel(t *testing.T) {
	t.Parallel()

	for _, field := range CanonicalFields() {
		got, ok := FieldByLabel("  " + field.Label() + " ")
		if !ok {
			t.Fatalf("expected %q to resolve", field.Label())
		}
		if got != field {
			t.Fatalf("unexpected field for %q: want %v, got %v", field.Label(), field, got)
		}
	}

	if _, ok := FieldByLabel("folder in CHARGE"); !ok {
		t.Fatalf("expected case-insensitive match")
	}
	if _, ok := FieldByLabel("Teacher"); ok {
		t.Fatalf("expected no match for partial label")
	}
}

func TestRecordGetSetAndFields(t *testing.T) {
	t.Parallel()

	var record Record
	for i, field := range CanonicalFields() {
		record.Set(field, field.Label()+string(rune('a'+i)))
	}

	fields := record.Fields()
	if len(fields) != 6 {
		t.Fatalf("expected 6 fields, got %d", len(fields))
	}
	for i, field := range CanonicalFields() {
		if fields[i].Key != field.Label() {
			t.Fatalf("unexpected key at %d: want %q, got %q", i, field.Label(), fields[i].Key)
		}
		if fields[i].Value != record.Get(field) {
			t.Fatalf("unexpected value for %q: %q", field.Label(), fields[i].Value)
		}
	}

	value, ok := fields.Lookup("Folder in Charge")
	if !ok || value != record.FolderInCharge {
		t.Fatalf("unexpected lookup result: %q %v", value, ok)
	}
}

func TestFieldKinds(t *testing.T) {
	t.Parallel()

	if !RobeEmail.IsEmail() || !FolderEmail.IsEmail() || ProgrammeName.IsEmail() {
		t.Fatalf("unexpected email classification")
	}
	if !AccompanyingTeacher.IsName() || !FolderInCharge.IsName() || ClassSection.IsName() {
		t.Fatalf("unexpected name classification")
	}
	if Field(42).Label() != "" {
		t.Fatalf("expected empty label for unknown field")
	}
}
