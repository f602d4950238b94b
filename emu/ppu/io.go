/*
 * Cyber - Peripheral processor channel access
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package ppu

import (
	"fmt"

	"github.com/rcornwell/cyber/emu/channel"
	"github.com/rcornwell/cyber/emu/fault"
	Debug "github.com/rcornwell/cyber/util/debug"
)

// Channel returns channel c if this processor's barrel may use it.
func (p *Core) Channel(c uint8) (*channel.Channel, error) {
	if p.IOU == nil {
		return nil, fmt.Errorf("%s channel %o: %w", p.Name, c, fault.ErrChannel)
	}
	return p.IOU.Channel(p.Barrel, int(c))
}

// Each helper returns whether P should advance. A wait form that can not
// proceed returns false with P untouched so the instruction runs again.

// InputA reads one word into A. The skip form clears A.
func (p *Core) InputA(c uint8, wait bool) (bool, error) {
	ch, err := p.Channel(c)
	if err != nil {
		return false, err
	}
	words, out, err := ch.Input(1, wait)
	if err != nil {
		return false, err
	}
	switch out {
	case channel.Pending:
		return false, nil
	case channel.Skipped:
		p.A.Set(0)
	default:
		p.A.Set(uint64(words[0]))
	}
	Debug.DebugProcf(p.Name, p.P.Get(), p.Debug, DebugIO, "input %o %s A=%o", c, out, p.A.Get())
	return true, nil
}

// InputBlock reads A words into PP memory at m, A is cleared when done.
func (p *Core) InputBlock(c uint8, m uint64, wait bool) (bool, error) {
	ch, err := p.Channel(c)
	if err != nil {
		return false, err
	}
	count := int(p.A.Get() & p.Width.Mask())
	words, out, err := ch.Input(count, wait)
	if err != nil {
		return false, err
	}
	switch out {
	case channel.Pending:
		return false, nil
	case channel.Done:
		for i, w := range words {
			p.Write(m+uint64(i), uint64(w))
		}
		p.A.Set(0)
	}
	Debug.DebugProcf(p.Name, p.P.Get(), p.Debug, DebugIO, "input %o block %d %s", c, count, out)
	return true, nil
}

// OutputA writes A to the channel.
func (p *Core) OutputA(c uint8, wait bool) (bool, error) {
	ch, err := p.Channel(c)
	if err != nil {
		return false, err
	}
	out, err := ch.Output([]uint16{uint16(p.A.Get() & p.Width.Mask())}, wait)
	if err != nil {
		return false, err
	}
	Debug.DebugProcf(p.Name, p.P.Get(), p.Debug, DebugIO, "output %o %s A=%o", c, out, p.A.Get())
	return out != channel.Pending, nil
}

// OutputBlock writes A words from PP memory at m, A is cleared when done.
func (p *Core) OutputBlock(c uint8, m uint64, wait bool) (bool, error) {
	ch, err := p.Channel(c)
	if err != nil {
		return false, err
	}
	count := int(p.A.Get() & p.Width.Mask())
	words := make([]uint16, count)
	for i := range count {
		words[i] = uint16(p.Read(m + uint64(i)))
	}
	out, err := ch.Output(words, wait)
	if err != nil {
		return false, err
	}
	switch out {
	case channel.Pending:
		return false, nil
	case channel.Done:
		p.A.Set(0)
	}
	Debug.DebugProcf(p.Name, p.P.Get(), p.Debug, DebugIO, "output %o block %d %s", c, count, out)
	return true, nil
}

// Activate channel c.
func (p *Core) Activate(c uint8, wait bool) (bool, error) {
	ch, err := p.Channel(c)
	if err != nil {
		return false, err
	}
	return ch.Activate(wait) != channel.Pending, nil
}

// Deactivate channel c.
func (p *Core) Deactivate(c uint8, wait bool) (bool, error) {
	ch, err := p.Channel(c)
	if err != nil {
		return false, err
	}
	return ch.Deactivate(wait) != channel.Pending, nil
}

// Function sends code to the device on channel c.
func (p *Core) Function(c uint8, code uint64, wait bool) (bool, error) {
	ch, err := p.Channel(c)
	if err != nil {
		return false, err
	}
	out, err := ch.Function(uint16(code&p.Width.Mask()), wait)
	if err != nil {
		return false, err
	}
	Debug.DebugProcf(p.Name, p.P.Get(), p.Debug, DebugIO, "function %o %o %s", c, code, out)
	return out != channel.Pending, nil
}

// Jump conditions on channel state.
type Test int

const (
	IfActive   Test = iota // AJM
	IfInactive             // IJM
	IfFull                 // FJM
	IfEmpty                // EJM
	SetFlag                // SCF, jump if flag was set, sets it
	ClearFlag              // CCF, clears flag
	FlagSet                // FSJM
	FlagClear              // FCJM
	ErrorSet               // SFM, jump if error set, clears it
	ErrorClear             // CFM
)

// JumpIf sets P to m when test holds on channel c. The returned bool
// is true when the jump was not taken.
func (p *Core) JumpIf(c uint8, test Test, m uint64) (bool, error) {
	ch, err := p.Channel(c)
	if err != nil {
		return false, err
	}
	var take bool
	switch test {
	case IfActive:
		take = ch.State().Active
	case IfInactive:
		take = !ch.State().Active
	case IfFull:
		take = ch.State().Full
	case IfEmpty:
		take = !ch.State().Full
	case SetFlag:
		take = ch.TestAndSetFlag()
	case ClearFlag:
		ch.ClearFlag()
	case FlagSet:
		take = ch.State().Flag
	case FlagClear:
		take = !ch.State().Flag
	case ErrorSet:
		take = ch.TestAndClearError()
	case ErrorClear:
		take = !ch.State().Error
	}
	if !take {
		return true, nil
	}
	p.P.Set(m)
	return false, nil
}
