package roles

import (
	"errors"
	"testing"
)

func TestDefault_ShipsRequiredRoles(t *testing.T) {
	want := []string{
		"Generalist", "Developer", "Designer", "Marketer", "Coach", "Entrepreneur",
		"Student", "Researcher", "Content Creator", "Event Planner", "HR Specialist",
		"Teacher", "Consultant", "Healthcare Professional", "Engineer", "Writer",
		"Salesperson", "Financial Advisor",
	}
	c := Default()
	for _, name := range want {
		if !c.Has(name) {
			t.Errorf("catalog missing role %q", name)
		}
	}
	if got := c.Names(); len(got) != len(want) || got[0] != Generalist {
		t.Errorf("Names() = %v, want %d entries starting with %q", got, len(want), Generalist)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		want    string
		wantErr bool
	}{
		{name: "generalist is empty", role: "Generalist", want: ""},
		{name: "developer", role: "Developer", want: "You are a senior software engineer."},
		{name: "multi word name", role: "Financial Advisor", want: "You are a financial advisor and planner."},
		{name: "unknown", role: "Astronaut", wantErr: true},
		{name: "case sensitive", role: "developer", wantErr: true},
		{name: "empty", role: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Default().Lookup(tt.role)
			if tt.wantErr {
				var unknown *UnknownRoleError
				if !errors.As(err, &unknown) {
					t.Fatalf("Lookup(%q) err = %v, want *UnknownRoleError", tt.role, err)
				}
				if unknown.Name != tt.role {
					t.Errorf("UnknownRoleError.Name = %q, want %q", unknown.Name, tt.role)
				}
				if !errors.Is(err, ErrUnknownRole) {
					t.Errorf("errors.Is(%v, ErrUnknownRole) = false", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Lookup(%q) = %v, want nil", tt.role, err)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.role, got, tt.want)
			}
		})
	}
}

func TestNames_ReturnsCopy(t *testing.T) {
	c := New([]Role{{Name: "A"}, {Name: "B", Instruction: "b"}})
	names := c.Names()
	names[0] = "mutated"
	if c.Names()[0] != "A" {
		t.Error("Names() exposed internal slice")
	}
}

func TestNew_DuplicateKeepsPosition(t *testing.T) {
	c := New([]Role{{Name: "A", Instruction: "first"}, {Name: "B"}, {Name: "A", Instruction: "second"}})
	if got := c.Names(); len(got) != 2 || got[0] != "A" {
		t.Fatalf("Names() = %v, want [A B]", got)
	}
	if got, _ := c.Lookup("A"); got != "second" {
		t.Errorf("Lookup(A) = %q, want %q", got, "second")
	}
}
