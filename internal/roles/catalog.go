// Package roles holds the persona catalog injected into workflow prompts.
package roles

import (
	"errors"
	"fmt"
)

// Generalist is the neutral role used when a request names none. Its
// instruction is empty.
const Generalist = "Generalist"

// ErrUnknownRole is matched by every *UnknownRoleError via errors.Is.
var ErrUnknownRole = errors.New("unknown role")

// UnknownRoleError is returned by Lookup for a name that is not in the catalog.
type UnknownRoleError struct {
	Name string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("unknown role %q", e.Name)
}

// Is reports ErrUnknownRole as a match.
func (e *UnknownRoleError) Is(target error) bool {
	return target == ErrUnknownRole
}

// Role pairs a display name with its persona instruction.
type Role struct {
	Name        string
	Instruction string
}

// Catalog is an immutable name → instruction mapping. The zero value is empty.
type Catalog struct {
	order []string
	byKey map[string]string
}

// New builds a Catalog from roles in display order. A later duplicate name
// replaces the earlier instruction but keeps the original position.
func New(list []Role) *Catalog {
	c := &Catalog{byKey: make(map[string]string, len(list))}
	for _, r := range list {
		if _, ok := c.byKey[r.Name]; !ok {
			c.order = append(c.order, r.Name)
		}
		c.byKey[r.Name] = r.Instruction
	}
	return c
}

// Lookup returns the persona instruction for name.
func (c *Catalog) Lookup(name string) (string, error) {
	instruction, ok := c.byKey[name]
	if !ok {
		return "", &UnknownRoleError{Name: name}
	}
	return instruction, nil
}

// Has reports whether name is a known role.
func (c *Catalog) Has(name string) bool {
	_, ok := c.byKey[name]
	return ok
}

// Names returns the role names in display order. The slice is a copy.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Roles returns every role in display order.
func (c *Catalog) Roles() []Role {
	out := make([]Role, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, Role{Name: name, Instruction: c.byKey[name]})
	}
	return out
}

var defaultCatalog = New([]Role{
	{Name: Generalist, Instruction: ""},
	{Name: "Developer", Instruction: "You are a senior software engineer."},
	{Name: "Designer", Instruction: "You are a UI/UX designer."},
	{Name: "Marketer", Instruction: "You are a digital marketing strategist."},
	{Name: "Coach", Instruction: "You are a productivity coach."},
	{Name: "Entrepreneur", Instruction: "You are a startup founder and business strategist."},
	{Name: "Student", Instruction: "You are an academic advisor helping students succeed."},
	{Name: "Researcher", Instruction: "You are a scientific researcher and project planner."},
	{Name: "Content Creator", Instruction: "You are a professional content creator and social media strategist."},
	{Name: "Event Planner", Instruction: "You are an experienced event planner."},
	{Name: "HR Specialist", Instruction: "You are a human resources specialist."},
	{Name: "Teacher", Instruction: "You are an experienced teacher and curriculum designer."},
	{Name: "Consultant", Instruction: "You are a business consultant."},
	{Name: "Healthcare Professional", Instruction: "You are a healthcare project manager."},
	{Name: "Engineer", Instruction: "You are a project engineer."},
	{Name: "Writer", Instruction: "You are a professional writer and editor."},
	{Name: "Salesperson", Instruction: "You are a sales strategist."},
	{Name: "Financial Advisor", Instruction: "You are a financial advisor and planner."},
})

// Default returns the catalog shipped with the binary.
func Default() *Catalog { return defaultCatalog }
