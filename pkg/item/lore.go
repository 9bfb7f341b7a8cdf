// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package item

import "slices"

// Lore is a batch-editing view over a descriptor's lore lines.
//
// Every Lore method returns the Lore itself; call Done to continue chaining
// on the descriptor. Failures are recorded on the owning descriptor exactly
// as if the matching Descriptor method had been called.
type Lore struct {
	owner *Descriptor
}

// Lore returns the lore view for d.
func (d *Descriptor) Lore() *Lore {
	return &Lore{owner: d}
}

// Set replaces all lines.
func (l *Lore) Set(lines ...string) *Lore {
	l.owner.SetLore(lines)
	return l
}

// Append adds lines at the end, in order.
func (l *Lore) Append(lines ...string) *Lore {
	l.owner.apply(func() error {
		l.owner.lore = append(l.owner.lore, lines...)
		return nil
	})
	return l
}

// Insert places text at index, shifting later lines right.
func (l *Lore) Insert(index int, text string) *Lore {
	l.owner.InsertLoreLine(index, text, false)
	return l
}

// Replace overwrites the line at index.
func (l *Lore) Replace(index int, text string) *Lore {
	l.owner.InsertLoreLine(index, text, true)
	return l
}

// Remove deletes every line equal to any of lines.
func (l *Lore) Remove(lines ...string) *Lore {
	l.owner.apply(func() error {
		l.owner.lore = slices.DeleteFunc(l.owner.lore, func(line string) bool {
			return slices.Contains(lines, line)
		})
		return nil
	})
	return l
}

// RemoveAt deletes the line at index.
func (l *Lore) RemoveAt(index int) *Lore {
	l.owner.RemoveLoreLineAt(index)
	return l
}

// Clear removes every line.
func (l *Lore) Clear() *Lore {
	l.owner.ClearLore()
	return l
}

// Lines returns a copy of the lines.
func (l *Lore) Lines() []string {
	return l.owner.LoreLines()
}

// Len returns the number of lines.
func (l *Lore) Len() int {
	return len(l.owner.lore)
}

// Done returns the owning descriptor.
func (l *Lore) Done() *Descriptor {
	return l.owner
}
