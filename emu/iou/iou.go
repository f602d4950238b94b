/*
 * Cyber - Input/output unit
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

// Package iou groups the peripheral processors' channels into barrels.
//
// Five PPs form a barrel. Each barrel owns a range of channels and every
// barrel shares a few more. A PP asking for a channel outside both sets
// is refused before the channel is touched.
package iou

import (
	"fmt"
	"sync"

	"github.com/rcornwell/cyber/emu/channel"
	"github.com/rcornwell/cyber/emu/fault"
	"github.com/rcornwell/cyber/emu/word"
)

// Channels reachable from every barrel.
const (
	ChanCrossBarrel0 = 0o00
	ChanCrossBarrel1 = 0o01
	ChanCrossBarrel2 = 0o12
	ChanCrossBarrel3 = 0o13
	ChanClock        = 0o14 // Real time clock.
	ChanMultiplexer  = 0o15 // Two port multiplexer.
	ChanMaintenance  = 0o17
	ChanCrossBarrel4 = 0o32
	ChanCrossBarrel5 = 0o33
)

// Highest channel number plus one.
const MaxChannels = 0o40

// Default PP and channel count.
const DefaultPPs = 10

var shared = map[int]bool{
	ChanCrossBarrel0: true,
	ChanCrossBarrel1: true,
	ChanCrossBarrel2: true,
	ChanCrossBarrel3: true,
	ChanClock:        true,
	ChanMultiplexer:  true,
	ChanMaintenance:  true,
	ChanCrossBarrel4: true,
	ChanCrossBarrel5: true,
}

type span struct {
	first, last int
}

var barrelChannels = [4]span{
	{0o02, 0o04},
	{0o05, 0o11},
	{0o20, 0o24},
	{0o25, 0o31},
}

// Maintenance register addresses.
const (
	RegSS  = 0x00 // Status summary.
	RegEID = 0x10 // Element identifier.
	RegOI  = 0x12 // Options installed.
	RegFSM = 0x18 // Fault status mask.
	RegOSB = 0x21 // OS bounds.
	RegEC  = 0x30 // Environment control.
	RegFS1 = 0x80 // Fault status 1.
	RegFS2 = 0x81 // Fault status 2.
	RegTM  = 0xA0 // Test mode.
)

var maintRegs = []uint8{RegSS, RegEID, RegOI, RegFSM, RegOSB, RegEC, RegFS1, RegFS2, RegTM}

// Allowed reports whether a PP in barrel may use channel ch.
func Allowed(barrel int, ch int) bool {
	if shared[ch] {
		return true
	}
	if barrel < 0 || barrel >= len(barrelChannels) {
		return false
	}
	s := barrelChannels[barrel]
	return ch >= s.first && ch <= s.last
}

// Barrel170 maps a 170 PP number to its barrel.
func Barrel170(rank int) (int, error) {
	switch {
	case rank >= 0o00 && rank <= 0o04:
		return 0, nil
	case rank >= 0o05 && rank <= 0o11:
		return 1, nil
	case rank >= 0o20 && rank <= 0o24:
		return 2, nil
	case rank >= 0o25 && rank <= 0o31:
		return 3, nil
	}
	return 0, fmt.Errorf("PP number %o has no barrel", rank)
}

// Rank170 gives the PP number of the index'th 170 PP.
func Rank170(index int) int {
	if index < 10 {
		return index
	}
	return index - 10 + 0o20
}

// Barrel962 maps a 962 PP index to its barrel.
func Barrel962(index int) int {
	return index / 5
}

// IOU holds the channels of one I/O unit.
type IOU struct {
	pps      int
	barrels  int
	channels [MaxChannels]*channel.Channel

	mu    sync.Mutex
	maint map[uint8]uint64
}

// New creates an I/O unit with pps PPs and as many channel groups.
func New(pps, channels int, width word.Width) (*IOU, error) {
	if pps < 5 || pps > 20 || pps%5 != 0 {
		return nil, fmt.Errorf("PP count %d must be 5, 10, 15 or 20", pps)
	}
	if channels != pps {
		return nil, fmt.Errorf("channel count %d does not match PP count %d", channels, pps)
	}
	u := &IOU{
		pps:     pps,
		barrels: pps / 5,
		maint:   map[uint8]uint64{},
	}
	for n := range MaxChannels {
		if u.exists(n) {
			u.channels[n] = channel.New(n, width, nil)
		}
	}
	for _, r := range maintRegs {
		u.maint[r] = 0
	}
	return u, nil
}

// A channel exists when some barrel of this unit may use it.
func (u *IOU) exists(n int) bool {
	if shared[n] {
		return true
	}
	for b := range u.barrels {
		if Allowed(b, n) {
			return true
		}
	}
	return false
}

func (u *IOU) PPs() int {
	return u.pps
}

func (u *IOU) Barrels() int {
	return u.barrels
}

// Channel returns channel number for a PP in barrel.
func (u *IOU) Channel(barrel int, number int) (*channel.Channel, error) {
	if number < 0 || number >= MaxChannels || u.channels[number] == nil {
		return nil, fmt.Errorf("channel %o: %w", number, fault.ErrChannel)
	}
	if !Allowed(barrel, number) {
		return nil, fmt.Errorf("barrel %d channel %o: %w", barrel, number, fault.ErrAccess)
	}
	return u.channels[number], nil
}

// Lookup returns a channel without a barrel check, for configuration.
func (u *IOU) Lookup(number int) (*channel.Channel, error) {
	if number < 0 || number >= MaxChannels || u.channels[number] == nil {
		return nil, fmt.Errorf("channel %o: %w", number, fault.ErrChannel)
	}
	return u.channels[number], nil
}

// Channels lists every channel of the unit in number order.
func (u *IOU) Channels() []*channel.Channel {
	list := []*channel.Channel{}
	for _, c := range u.channels {
		if c != nil {
			list = append(list, c)
		}
	}
	return list
}

// MasterClear clears every channel and the fault registers.
func (u *IOU) MasterClear() {
	for _, c := range u.Channels() {
		c.MasterClear()
	}
	u.mu.Lock()
	u.maint[RegFS1] = 0
	u.maint[RegFS2] = 0
	u.mu.Unlock()
}

// ReadMaintenance reads a maintenance register.
func (u *IOU) ReadMaintenance(reg uint8) (uint64, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	v, ok := u.maint[reg]
	if !ok {
		return 0, fmt.Errorf("maintenance register %02x: %w", reg, fault.ErrAddress)
	}
	return v, nil
}

// WriteMaintenance writes a maintenance register.
func (u *IOU) WriteMaintenance(reg uint8, value uint64) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.maint[reg]; !ok {
		return fmt.Errorf("maintenance register %02x: %w", reg, fault.ErrAddress)
	}
	u.maint[reg] = value
	return nil
}
