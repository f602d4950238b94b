/*
 * Cyber - Real time clock channel
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
	"sync"

	"github.com/rcornwell/cyber/emu/channel"
	"github.com/rcornwell/cyber/emu/event"
)

// RTC is the free running microsecond clock on channel 14. The channel
// is kept full, input returns the current count.
type RTC struct {
	mu    sync.Mutex
	ch    *channel.Channel
	count uint64
	step  uint64 // Microseconds per tick.
	every int    // Rounds between ticks.
	el    *event.List
}

// NewRTC attaches a clock to ch that advances step microseconds every
// rounds of the event list.
func NewRTC(ch *channel.Channel, step uint64, every int) *RTC {
	if every < 1 {
		every = 1
	}
	if step == 0 {
		step = 1
	}
	rtc := &RTC{ch: ch, step: step, every: every}
	ch.Attach(rtc)
	ch.Fill()
	return rtc
}

// Start ticking on el.
func (rtc *RTC) Start(el *event.List) {
	rtc.mu.Lock()
	rtc.el = el
	rtc.mu.Unlock()
	el.Add(rtc, rtc.tick, rtc.every, 0)
}

// Stop ticking.
func (rtc *RTC) Stop() {
	rtc.mu.Lock()
	el := rtc.el
	rtc.el = nil
	rtc.mu.Unlock()
	if el != nil {
		el.Cancel(rtc, 0)
	}
}

func (rtc *RTC) tick(_ int) {
	rtc.mu.Lock()
	rtc.count = rtc.ch.Width().Trunc(rtc.count + rtc.step)
	el := rtc.el
	rtc.mu.Unlock()
	// Channel lock is taken outside the clock lock, input holds them
	// the other way round.
	rtc.ch.Fill()
	if el != nil {
		el.Add(rtc, rtc.tick, rtc.every, 0)
	}
}

// Count returns the clock value.
func (rtc *RTC) Count() uint64 {
	rtc.mu.Lock()
	defer rtc.mu.Unlock()
	return rtc.count
}

func (rtc *RTC) Read(count int) ([]uint16, error) {
	rtc.mu.Lock()
	defer rtc.mu.Unlock()
	out := make([]uint16, count)
	for i := range out {
		out[i] = uint16(rtc.count)
	}
	return out, nil
}

// Writes to the clock are ignored.
func (rtc *RTC) Write(_ []uint16) error {
	return nil
}

func (rtc *RTC) Function(_ uint16) error {
	return nil
}
