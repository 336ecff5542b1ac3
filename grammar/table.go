// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package grammar

import (
	"unicode/utf8"

	"github.com/gogpu/lsys"
)

// RuleKind tags the two kinds of rewrite a character can have.
type RuleKind uint8

const (
	// RuleOperator rewrites a character to itself and turns the turtle.
	RuleOperator RuleKind = iota + 1

	// RuleProduction replaces a character with its replacement rule.
	RuleProduction
)

// String returns the string representation of a RuleKind.
func (k RuleKind) String() string {
	switch k {
	case RuleOperator:
		return "Operator"
	case RuleProduction:
		return "Production"
	default:
		return "Unknown"
	}
}

// Rule is the rewrite for one character.
type Rule struct {
	Kind RuleKind

	// Rotation is the heading change in degrees. Only set for operators.
	Rotation float64

	// Replacement is what the character expands to in the next
	// generation. For operators it is the character itself.
	Replacement string
}

// Table maps alphabet characters to their rule. It is built once per
// project and never mutated, so it can be shared by concurrent renders.
//
// Operators are entered first and productions second, so a character
// that is both keeps its production.
type Table struct {
	ascii [utf8.RuneSelf]Rule
	other map[rune]Rule
	size  int
}

// NewTable builds the rule table for a grammar. Names that are not a
// single character are ignored.
func NewTable(operators []lsys.Operator, symbols []lsys.Symbol) *Table {
	t := &Table{}
	for _, op := range operators {
		r := op.Rune()
		if r == utf8.RuneError {
			continue
		}
		if prev, ok := t.Lookup(r); ok && prev.Kind == RuleOperator {
			// First operator with a given name wins, as in the walk.
			continue
		}
		t.set(r, Rule{Kind: RuleOperator, Rotation: op.Rotation, Replacement: string(r)})
	}
	for _, sym := range symbols {
		r := sym.Rune()
		if r == utf8.RuneError {
			continue
		}
		t.set(r, Rule{Kind: RuleProduction, Replacement: sym.ReplacementRule})
	}
	return t
}

// FromProject builds the rule table for p.
func FromProject(p *lsys.Project) *Table {
	return NewTable(p.Operators, p.Symbols)
}

func (t *Table) set(r rune, rule Rule) {
	if _, ok := t.Lookup(r); !ok {
		t.size++
	}
	if r < utf8.RuneSelf {
		t.ascii[r] = rule
		return
	}
	if t.other == nil {
		t.other = make(map[rune]Rule)
	}
	t.other[r] = rule
}

// Lookup returns the rule for r. An absent rule is a valid outcome:
// the character is dropped by expansion.
func (t *Table) Lookup(r rune) (Rule, bool) {
	if r >= 0 && r < utf8.RuneSelf {
		rule := t.ascii[r]
		return rule, rule.Kind != 0
	}
	rule, ok := t.other[r]
	return rule, ok
}

// Len returns the number of characters with a rule.
func (t *Table) Len() int {
	return t.size
}

// Unknown returns the distinct characters of s that have no rule, in
// order of first appearance. These are the characters Expand drops.
func (t *Table) Unknown(s string) []rune {
	var out []rune
	seen := make(map[rune]bool)
	for _, r := range s {
		if seen[r] {
			continue
		}
		seen[r] = true
		if _, ok := t.Lookup(r); !ok {
			out = append(out, r)
		}
	}
	return out
}
