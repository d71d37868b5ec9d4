package cmd

import (
	"bytes"
	"testing"

	"rosterimport/config"
)

func TestWriteRuleMatches(t *testing.T) {
	t.Parallel()

	rules := []config.Rule{
		{Name: "bca-first", FileTemplate: "BCA_I_*.xlsx", ClassSection: "I"},
		{Name: "bca", FileTemplate: "BCA*", ClassSection: "A"},
	}

	var out bytes.Buffer
	if err := writeRuleMatches(&out, rules, []string{"./in/BCA_I_2024.xlsx", "BCA_II.csv", "mca.csv"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "1) bca-first: BCA_I_*.xlsx -> section I\n" +
		"2) bca: BCA* -> section A\n" +
		"./in/BCA_I_2024.xlsx: rule bca-first, section I\n" +
		"BCA_II.csv: rule bca, section A\n" +
		"mca.csv: no rule, section comes from the file\n"
	if out.String() != want {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestWriteRuleMatchesWithoutRules(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := writeRuleMatches(&out, nil, []string{"mca.csv"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "No rules configured.\nmca.csv: no rule, section comes from the file\n"
	if out.String() != want {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}
