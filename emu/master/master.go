/*
 * Cyber - Messages to the core loop
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

package master

// Messages sent to the core loop.
const (
	Start     = 1 + iota // Start processors running.
	Stop                 // Stop all processors.
	Step                 // Run Count rounds then stop.
	TimeClock            // Interval timer tick.
	Deadstart            // Load Data into PP0 and start it.
	Shutdown             // Exit the core loop.
	Exec                 // Run Fn on the core goroutine.
)

// Packet is one request to the core.
type Packet struct {
	Msg   int
	Count int          // Rounds for Step.
	Data  []uint64     // Words for Deadstart.
	Fn    func() error // Function for Exec.
	Reply chan<- error // Optional completion, buffered by the sender.
}

// Done reports err on the reply channel when one was given.
func (p Packet) Done(err error) {
	if p.Reply != nil {
		p.Reply <- err
	}
}
