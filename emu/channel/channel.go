/*
 * Cyber - I/O channel handshake
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

// Package channel models a peripheral processor I/O channel.
//
// A channel is active or inactive, full or empty, and carries a flag and
// an error bit. Every operation holds the channel lock for its whole
// transition. Operations that can not proceed return Pending for the
// wait form, so the caller retries the instruction, or Skipped for the
// skip form. Neither changes channel state.
package channel

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rcornwell/cyber/emu/word"
	Debug "github.com/rcornwell/cyber/util/debug"
)

// Channel is owned by one I/O unit.
type Channel struct {
	mu     sync.Mutex
	number int
	width  word.Width
	active bool
	full   bool
	flag   bool
	err    bool
	dev    Device
	debug  int
}

// New creates a channel in the master clear state.
func New(number int, width word.Width, dev Device) *Channel {
	if dev == nil {
		dev = NoDevice{Number: number}
	}
	return &Channel{
		number: number,
		width:  width,
		active: true,
		dev:    dev,
	}
}

func (c *Channel) Number() int {
	return c.number
}

func (c *Channel) Width() word.Width {
	return c.width
}

// Attach replaces the device on the channel.
func (c *Channel) Attach(dev Device) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if dev == nil {
		dev = NoDevice{Number: c.number}
	}
	c.dev = dev
}

// Device returns the attached device.
func (c *Channel) Device() Device {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dev
}

// State returns a snapshot of the channel.
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Active: c.active, Full: c.full, Flag: c.flag, Error: c.err}
}

func (c *Channel) deviceError(op string, err error) error {
	c.err = true
	return fmt.Errorf("channel %o %s: %w", c.number, op, err)
}

// Input transfers count words from the channel. The channel must be
// active and full.
func (c *Channel) Input(count int, wait bool) ([]uint16, Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active || !c.full {
		if wait {
			return nil, Pending, nil
		}
		Debug.DebugChanf(c.number, c.debug, debugCmd, "input skipped active=%v full=%v", c.active, c.full)
		return make([]uint16, count), Skipped, nil
	}

	words, err := c.dev.Read(count)
	if err != nil {
		return nil, Done, c.deviceError("input", err)
	}
	out := make([]uint16, count)
	for i := range min(count, len(words)) {
		out[i] = uint16(c.width.Trunc(uint64(words[i])))
	}
	c.full = false
	Debug.DebugChanf(c.number, c.debug, debugData, "input %o", out)
	return out, Done, nil
}

// Output transfers words to the channel, which must be active.
func (c *Channel) Output(words []uint16, wait bool) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		if wait {
			return Pending, nil
		}
		Debug.DebugChanf(c.number, c.debug, debugCmd, "output skipped inactive")
		return Skipped, nil
	}

	out := make([]uint16, len(words))
	for i, w := range words {
		out[i] = uint16(c.width.Trunc(uint64(w)))
	}
	if err := c.dev.Write(out); err != nil {
		return Done, c.deviceError("output", err)
	}
	c.full = true
	Debug.DebugChanf(c.number, c.debug, debugData, "output %o", out)
	return Done, nil
}

// Activate sets the channel active. The wait form first waits for the
// channel to go inactive.
func (c *Channel) Activate(wait bool) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	if wait && c.active {
		return Pending
	}
	c.active = true
	Debug.DebugChanf(c.number, c.debug, debugState, "activate")
	return Done
}

// Deactivate sets the channel inactive. The wait form first waits for
// the channel to go active.
func (c *Channel) Deactivate(wait bool) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	if wait && !c.active {
		return Pending
	}
	c.active = false
	Debug.DebugChanf(c.number, c.debug, debugState, "deactivate")
	return Done
}

// Function sends a control code to the device. A function can only be
// sent to an inactive channel: the wait form waits for it, the skip form
// skips the send.
func (c *Channel) Function(code uint16, wait bool) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active {
		if wait {
			return Pending, nil
		}
		Debug.DebugChanf(c.number, c.debug, debugCmd, "function %o skipped active", code)
		return Skipped, nil
	}
	if err := c.dev.Function(uint16(c.width.Trunc(uint64(code)))); err != nil {
		return Done, c.deviceError("function", err)
	}
	Debug.DebugChanf(c.number, c.debug, debugCmd, "function %o", code)
	return Done, nil
}

// MasterClear resets channel state, the device stays attached.
func (c *Channel) MasterClear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = true
	c.full = false
	c.flag = false
	c.err = false
}

// Fill marks the channel full from the device side.
func (c *Channel) Fill() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.full = true
}

// Empty marks the channel empty from the device side.
func (c *Channel) Empty() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.full = false
}

// TestAndSetFlag sets the flag and returns its previous value.
func (c *Channel) TestAndSetFlag() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	old := c.flag
	c.flag = true
	return old
}

// ClearFlag clears the flag and returns its previous value.
func (c *Channel) ClearFlag() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	old := c.flag
	c.flag = false
	return old
}

// SetError raises the error bit.
func (c *Channel) SetError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = true
}

// TestAndClearError clears the error bit and returns its previous value.
func (c *Channel) TestAndClearError() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	old := c.err
	c.err = false
	return old
}

// Debug enables a debug option on the channel.
func (c *Channel) Debug(opt string) error {
	flag, ok := debugOption[strings.ToUpper(opt)]
	if !ok {
		return errors.New("Channel debug option invalid: " + opt)
	}
	c.mu.Lock()
	c.debug |= flag
	c.mu.Unlock()
	return nil
}
