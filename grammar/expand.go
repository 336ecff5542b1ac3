// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package grammar

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/lsys"
)

// DefaultChunkSize is the number of characters processed between
// cancellation checks.
const DefaultChunkSize = 4096

// ErrTooLong is returned when a generation would exceed the configured
// maximum length. The check happens before the generation is allocated.
var ErrTooLong = errors.New("grammar: expansion exceeds maximum length")

// Option configures an Expander.
type Option func(*Expander)

// WithChunkSize sets how many characters are rewritten between
// cancellation checks. Values below 1 select DefaultChunkSize.
func WithChunkSize(n int) Option {
	return func(e *Expander) {
		if n < 1 {
			n = DefaultChunkSize
		}
		e.chunk = n
	}
}

// WithMaxLength caps the length in bytes of any generation.
// Zero means unlimited.
func WithMaxLength(n int) Option {
	return func(e *Expander) {
		e.maxLen = n
	}
}

// Expander rewrites an axiom through successive generations.
//
// Every character with a rule is replaced by its replacement; characters
// without a rule are dropped. Operators map to themselves, so they pass
// through unchanged.
type Expander struct {
	table  *Table
	chunk  int
	maxLen int
}

// NewExpander creates an Expander over t.
func NewExpander(t *Table, opts ...Option) *Expander {
	e := &Expander{table: t, chunk: DefaultChunkSize}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand returns the instruction string after iterations generations.
// At zero iterations the axiom is returned unchanged.
//
// The context is checked between chunks and between generations, so a
// cancelled render stops within one chunk of work.
func (e *Expander) Expand(ctx context.Context, axiom string, iterations int) (string, error) {
	cur := axiom
	for gen := 0; gen < iterations; gen++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		n, err := e.nextLen(ctx, cur)
		if err != nil {
			return "", err
		}
		if e.maxLen > 0 && n > e.maxLen {
			return "", fmt.Errorf("%w: generation %d needs %d bytes, limit %d", ErrTooLong, gen+1, n, e.maxLen)
		}

		next, err := e.rewrite(ctx, cur, n)
		if err != nil {
			return "", err
		}
		lsys.Logger().Debug("grammar: generation expanded", "generation", gen+1, "length", len(next))
		cur = next
	}
	return cur, nil
}

// nextLen computes the exact length of the next generation without
// building it.
func (e *Expander) nextLen(ctx context.Context, s string) (int, error) {
	n, count := 0, 0
	for _, r := range s {
		if rule, ok := e.table.Lookup(r); ok {
			n += len(rule.Replacement)
		}
		count++
		if count%e.chunk == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
	}
	return n, nil
}

func (e *Expander) rewrite(ctx context.Context, s string, size int) (string, error) {
	var b strings.Builder
	b.Grow(size)
	count := 0
	for _, r := range s {
		if rule, ok := e.table.Lookup(r); ok {
			b.WriteString(rule.Replacement)
		}
		count++
		if count%e.chunk == 0 {
			if err := ctx.Err(); err != nil {
				return "", err
			}
		}
	}
	return b.String(), nil
}

// Expand rewrites axiom through iterations generations using the given
// operators and productions. It is the uncancellable form of
// Expander.Expand.
func Expand(axiom string, iterations int, operators []lsys.Operator, symbols []lsys.Symbol) string {
	s, _ := NewExpander(NewTable(operators, symbols)).Expand(context.Background(), axiom, iterations)
	return s
}
