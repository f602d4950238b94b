/*
 * Cyber - Timed event list
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

// Package event keeps callbacks ordered by the number of system rounds
// until they fire. Each event holds its time relative to the one before
// it, so advancing only touches the head of the list.
//
// A list belongs to the goroutine that advances it.
package event

type Callback = func(iarg int)

type Event struct {
	time  int      // Rounds after previous event.
	owner any      // Device the event is registered to.
	cb    Callback // Function to callback.
	iarg  int      // Integer argument.
	prev  *Event
	next  *Event
}

type List struct {
	head *Event
	tail *Event
}

// New returns an empty list.
func New() *List {
	return &List{}
}

// Add an event to fire after time rounds. Zero fires now.
func (el *List) Add(owner any, cb Callback, time int, iarg int) {
	if time <= 0 {
		cb(iarg)
		return
	}

	ev := &Event{owner: owner, cb: cb, time: time, iarg: iarg}

	// If empty put on head
	if el.head == nil {
		el.head = ev
		el.tail = ev
		return
	}

	for evptr := el.head; evptr != nil; evptr = evptr.next {
		if ev.time < evptr.time {
			evptr.time -= ev.time
			ev.prev = evptr.prev
			ev.next = evptr
			evptr.prev = ev
			if ev.prev != nil {
				ev.prev.next = ev
			} else {
				el.head = ev
			}
			return
		}
		// Make new event relative to this one
		ev.time -= evptr.time
	}

	// Put it on tail of list
	ev.prev = el.tail
	el.tail.next = ev
	el.tail = ev
}

// Cancel the first event matching owner and iarg.
func (el *List) Cancel(owner any, iarg int) bool {
	for evptr := el.head; evptr != nil; evptr = evptr.next {
		if evptr.owner != owner || evptr.iarg != iarg {
			continue
		}
		if evptr.next != nil {
			evptr.next.time += evptr.time
			evptr.next.prev = evptr.prev
		} else {
			el.tail = evptr.prev
		}
		if evptr.prev != nil {
			evptr.prev.next = evptr.next
		} else {
			el.head = evptr.next
		}
		return true
	}
	return false
}

// Any reports whether events are waiting.
func (el *List) Any() bool {
	return el.head != nil
}

// Pending returns the number of events waiting.
func (el *List) Pending() int {
	n := 0
	for evptr := el.head; evptr != nil; evptr = evptr.next {
		n++
	}
	return n
}

// Advance time by t rounds, firing every event that comes due.
// Callbacks may add new events.
func (el *List) Advance(t int) {
	if el.head == nil {
		return
	}
	el.head.time -= t
	for el.head != nil && el.head.time <= 0 {
		ev := el.head
		el.head = ev.next
		if el.head != nil {
			el.head.prev = nil
			// Carry any overshoot to the next event.
			el.head.time += ev.time
		} else {
			el.tail = nil
		}
		ev.cb(ev.iarg)
	}
}
