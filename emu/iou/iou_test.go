/*
 * Cyber - Input/output unit tests
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

package iou

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rcornwell/cyber/emu/channel"
	"github.com/rcornwell/cyber/emu/event"
	"github.com/rcornwell/cyber/emu/fault"
	"github.com/rcornwell/cyber/emu/word"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		barrel int
		ch     int
		ok     bool
	}{
		{0, 0o00, true},
		{0, 0o03, true},
		{0, 0o05, false},
		{0, 0o20, false},
		{1, 0o11, true},
		{1, 0o14, true},
		{2, 0o24, true},
		{2, 0o25, false},
		{3, 0o31, true},
		{3, 0o33, true},
		{3, 0o02, false},
		{4, 0o02, false},
		{4, 0o15, true},
	}
	for _, test := range tests {
		if got := Allowed(test.barrel, test.ch); got != test.ok {
			t.Errorf("Allowed(%d, %o) got: %v expected: %v", test.barrel, test.ch, got, test.ok)
		}
	}
}

func TestSharedChannelNames(t *testing.T) {
	if ChanMultiplexer != 0o15 || ChanMaintenance != 0o17 {
		t.Errorf("Multiplexer got: %o expected: 15, maintenance got: %o expected: 17",
			ChanMultiplexer, ChanMaintenance)
	}
	for _, ch := range []int{ChanMultiplexer, ChanMaintenance, ChanCrossBarrel4, ChanCrossBarrel5} {
		for barrel := range 4 {
			if !Allowed(barrel, ch) {
				t.Errorf("Channel %o not shared with barrel %d", ch, barrel)
			}
		}
	}
}

func TestNew(t *testing.T) {
	for _, n := range []int{0, 4, 7, 25} {
		if _, err := New(n, n, word.W16); err == nil {
			t.Errorf("New with %d PPs succeeded", n)
		}
	}
	if _, err := New(10, 5, word.W16); err == nil {
		t.Error("New with mismatched channels succeeded")
	}
	u, err := New(DefaultPPs, DefaultPPs, word.W12)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if u.Barrels() != 2 {
		t.Errorf("Barrels got: %d expected: 2", u.Barrels())
	}
	// Two barrels have 0-11 plus the shared channels.
	got := []int{}
	for _, c := range u.Channels() {
		got = append(got, c.Number())
	}
	want := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0o12, 0o13, 0o14, 0o15, 0o17, 0o32, 0o33}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Channels mismatch (-want +got):\n%s", diff)
	}
}

// Barrel 0 may not use channel 20, nothing is changed.
func TestChannelDenied(t *testing.T) {
	u, err := New(20, 20, word.W16)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	target, _ := u.Lookup(0o20)
	before := target.State()
	c, err := u.Channel(0, 0o20)
	if c != nil || !errors.Is(err, fault.ErrAccess) {
		t.Errorf("Channel(0, 20) got: %v %v", c, err)
	}
	if diff := cmp.Diff(before, target.State()); diff != "" {
		t.Errorf("Denied access changed channel (-want +got):\n%s", diff)
	}
	if c, err := u.Channel(2, 0o20); c == nil || err != nil {
		t.Errorf("Channel(2, 20) failed: %v", err)
	}
}

func TestChannelMissing(t *testing.T) {
	u, _ := New(5, 5, word.W12)
	if _, err := u.Channel(0, 0o20); !errors.Is(err, fault.ErrChannel) {
		t.Errorf("Missing channel got: %v", err)
	}
	if _, err := u.Channel(0, 0o40); !errors.Is(err, fault.ErrChannel) {
		t.Errorf("Channel 40 got: %v", err)
	}
}

func TestBarrels(t *testing.T) {
	for i := range 20 {
		rank := Rank170(i)
		b, err := Barrel170(rank)
		if err != nil || b != i/5 {
			t.Errorf("Barrel170(%o) got: %d %v expected: %d", rank, b, err, i/5)
		}
		if Barrel962(i) != i/5 {
			t.Errorf("Barrel962(%d) got: %d", i, Barrel962(i))
		}
	}
	if _, err := Barrel170(0o12); err == nil {
		t.Error("Barrel170(12) succeeded")
	}
}

func TestMaintenance(t *testing.T) {
	u, _ := New(10, 10, word.W16)
	if err := u.WriteMaintenance(RegFS1, 0x55); err != nil {
		t.Fatalf("WriteMaintenance failed: %v", err)
	}
	v, err := u.ReadMaintenance(RegFS1)
	if err != nil || v != 0x55 {
		t.Errorf("ReadMaintenance got: %x %v", v, err)
	}
	if _, err := u.ReadMaintenance(0x7f); !errors.Is(err, fault.ErrAddress) {
		t.Errorf("Unknown register got: %v", err)
	}
	u.MasterClear()
	if v, _ := u.ReadMaintenance(RegFS1); v != 0 {
		t.Errorf("Master clear left FS1: %x", v)
	}
}

func TestMasterClear(t *testing.T) {
	u, _ := New(10, 10, word.W12)
	c, _ := u.Channel(0, 2)
	c.Deactivate(false)
	c.TestAndSetFlag()
	u.MasterClear()
	if diff := cmp.Diff(channel.State{Active: true}, c.State()); diff != "" {
		t.Errorf("Master clear mismatch (-want +got):\n%s", diff)
	}
}

func TestRTC(t *testing.T) {
	u, _ := New(10, 10, word.W12)
	c, _ := u.Channel(1, ChanClock)
	el := event.New()
	rtc := NewRTC(c, 0o1000, 2)
	rtc.Start(el)

	for range 4 {
		el.Advance(1)
	}
	if rtc.Count() != 0o2000 {
		t.Errorf("Clock count got: %o expected: %o", rtc.Count(), 0o2000)
	}
	words, o, err := c.Input(1, true)
	if err != nil || o != channel.Done || words[0] != 0o2000 {
		t.Errorf("Clock input got: %o %v %v", words, o, err)
	}

	// Wraps at channel width.
	for range 12 {
		el.Advance(1)
	}
	if rtc.Count() != 0 {
		t.Errorf("Clock wrap got: %o expected: 0", rtc.Count())
	}
	if !c.State().Full {
		t.Error("Clock did not refill channel")
	}
	rtc.Stop()
	if el.Any() {
		t.Error("Stopped clock still scheduled")
	}
}
