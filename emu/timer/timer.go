/*
 * Cyber - Interval timer
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

package timer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/rcornwell/cyber/emu/master"
)

// Default tick of the system interval timer.
const Interval = time.Millisecond

type Timer struct {
	wg       sync.WaitGroup
	interval time.Duration
	master   chan<- master.Packet
	enable   chan bool     // Enable or disable timer.
	done     chan struct{} // Stop timer task.
}

// Create a timer that sends TimeClock packets every interval while enabled.
func NewTimer(masterChannel chan<- master.Packet, interval time.Duration) *Timer {
	if interval <= 0 {
		interval = Interval
	}
	timer := &Timer{
		master:   masterChannel,
		interval: interval,
		enable:   make(chan bool, 1),
		done:     make(chan struct{}),
	}
	timer.wg.Add(1)
	go timer.run()
	return timer
}

// Start delivering clock packets.
func (timer *Timer) Start() {
	timer.enable <- true
}

// Stop delivering clock packets.
func (timer *Timer) Stop() {
	timer.enable <- false
}

// Shutdown the timer task.
func (timer *Timer) Shutdown() {
	close(timer.done)
	done := make(chan struct{})
	go func() {
		timer.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		slog.Warn("Timed out waiting for timer to finish.")
	}
}

func (timer *Timer) run() {
	defer timer.wg.Done()
	ticker := time.NewTicker(timer.interval)
	defer ticker.Stop()
	running := false

	for {
		select {
		case <-ticker.C:
			if !running {
				continue
			}
			// Drop the tick if the core is busy, time is not exact.
			select {
			case timer.master <- master.Packet{Msg: master.TimeClock}:
			case <-timer.done:
				return
			default:
			}
		case running = <-timer.enable:
			if running {
				ticker.Reset(timer.interval)
			}
		case <-timer.done:
			return
		}
	}
}
