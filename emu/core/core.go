/*
 * Cyber - Core emulator loop
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

package core

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rcornwell/cyber/emu/master"
	"github.com/rcornwell/cyber/emu/system"
	"github.com/rcornwell/cyber/emu/timer"
)

var ErrStopped = errors.New("core not running")

type Core struct {
	wg      sync.WaitGroup
	stop    sync.Once
	done    chan struct{} // Signal to shutdown simulator.
	running bool          // Indicate when simulator should run or not.
	Master  chan master.Packet
	sys     *system.System
	timer   *timer.Timer
}

// Create a core for sys fed from master.
func New(sys *system.System, master chan master.Packet) *Core {
	return &Core{
		Master: master,
		done:   make(chan struct{}),
		sys:    sys,
		timer:  timer.NewTimer(master, timer.Interval),
	}
}

// Start the core loop, returns at shutdown.
func (core *Core) Start() {
	core.wg.Add(1)
	defer core.wg.Done()
	for {
		if core.running {
			_ = core.sys.Step()
			if !core.sys.Running() {
				slog.Info("all processors stopped")
				core.setRunning(false)
			}
			select {
			case <-core.done:
				core.shutdown()
				return
			case packet := <-core.Master:
				if !core.processPacket(packet) {
					return
				}
			default:
			}
			continue
		}

		// Idle, wait for something to do.
		select {
		case <-core.done:
			core.shutdown()
			return
		case packet := <-core.Master:
			if !core.processPacket(packet) {
				return
			}
		}
	}
}

// Stop a running core. Later calls only wait.
func (core *Core) Stop() {
	core.stop.Do(func() {
		slog.Info("Shutting down CPU")
		close(core.done)
	})
	done := make(chan struct{})
	go func() {
		core.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(time.Second):
		slog.Warn("Timed out waiting for CPU to finish.")
		return
	}
}

func (core *Core) shutdown() {
	core.setRunning(false)
	core.sys.Shutdown()
	core.timer.Shutdown()
}

func (core *Core) setRunning(run bool) {
	if run == core.running {
		return
	}
	core.running = run
	if run {
		core.timer.Start()
	} else {
		core.timer.Stop()
	}
}

// Send a packet and wait for it to be processed.
func (core *Core) send(packet master.Packet) error {
	reply := make(chan error, 1)
	packet.Reply = reply
	select {
	case core.Master <- packet:
	case <-core.done:
		return ErrStopped
	}
	select {
	case err := <-reply:
		return err
	case <-core.done:
		return ErrStopped
	}
}

// Start processors.
func (core *Core) SendStart() error {
	return core.send(master.Packet{Msg: master.Start})
}

// Stop processors.
func (core *Core) SendStop() error {
	return core.send(master.Packet{Msg: master.Stop})
}

// Run n rounds, returns the first fault.
func (core *Core) SendStep(n int) error {
	return core.send(master.Packet{Msg: master.Step, Count: n})
}

// Deadstart from words, nil for the configured program.
func (core *Core) SendDeadstart(words []uint64) error {
	return core.send(master.Packet{Msg: master.Deadstart, Data: words})
}

// Exec runs fn against the system between rounds.
func (core *Core) Exec(fn func(sys *system.System) error) error {
	return core.send(master.Packet{Msg: master.Exec, Fn: func() error {
		return fn(core.sys)
	}})
}

// Exit the core loop.
func (core *Core) SendShutdown() error {
	return core.send(master.Packet{Msg: master.Shutdown})
}

// Process a packet sent to system simulation, false at shutdown.
func (core *Core) processPacket(packet master.Packet) bool {
	switch packet.Msg {
	case master.TimeClock:
		core.sys.TimeClock(uint64(timer.Interval.Microseconds()))
	case master.Start:
		if !core.sys.Running() {
			_ = core.sys.Start()
		}
		core.setRunning(true)
		packet.Done(nil)
	case master.Stop:
		core.setRunning(false)
		packet.Done(nil)
	case master.Step:
		core.setRunning(false)
		if !core.sys.Running() {
			_ = core.sys.Start()
		}
		count := max(packet.Count, 1)
		_, err := core.sys.RunRounds(count)
		packet.Done(err)
	case master.Deadstart:
		err := core.sys.Deadstart(packet.Data)
		if err != nil {
			slog.Error(err.Error())
		} else {
			core.setRunning(true)
		}
		packet.Done(err)
	case master.Exec:
		var err error
		if packet.Fn != nil {
			err = packet.Fn()
		}
		packet.Done(err)
	case master.Shutdown:
		core.shutdown()
		packet.Done(nil)
		return false
	default:
		slog.Warn("unknown core message", "msg", packet.Msg)
		packet.Done(nil)
	}
	return true
}
