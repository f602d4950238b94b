/*
 * Cyber - Debug configuration options
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

package debugconfig

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	config "github.com/rcornwell/cyber/config/configparser"
	"github.com/rcornwell/cyber/emu/system"
)

// One DEBUG line, applied once the system is built.
type setting struct {
	target  string // CPU, PP, CHANNEL or a processor id.
	channel int
	options []string
}

var (
	mu      sync.Mutex
	pending []setting
)

// register a device on initialize.
func init() {
	config.RegisterModel("DEBUG", config.TypeOptions, setDebug)
}

// Reset drops collected settings.
func Reset() {
	mu.Lock()
	pending = nil
	mu.Unlock()
}

// Flatten option names and their comma values.
func names(options []config.Option) []string {
	list := []string{}
	for _, opt := range options {
		list = append(list, strings.ToUpper(opt.Name))
		for _, value := range opt.Value {
			list = append(list, strings.ToUpper(*value))
		}
	}
	return list
}

// Record a DEBUG line.
func setDebug(devNum uint16, device string, options []config.Option) error {
	s := setting{target: strings.ToUpper(device)}
	switch {
	case devNum != config.NoAddr:
		// DEBUG 14 CMD is a channel.
		s.target = "CHANNEL"
		s.channel = int(devNum)
		s.options = names(options)

	case s.target == "CHANNEL":
		if len(options) < 1 {
			return errors.New("debug channel requires a number first")
		}
		if options[0].EqualOpt != "" || len(options[0].Value) != 0 {
			return errors.New("debug channel number can't have equals or values")
		}
		number, err := strconv.ParseUint(options[0].Name, 8, 6)
		if err != nil {
			return errors.New("channel number must be octal: " + options[0].Name)
		}
		s.channel = int(number)
		s.options = names(options[1:])

	case strings.HasPrefix(s.target, "PP"), strings.HasPrefix(s.target, "CP"):
		s.options = names(options)

	default:
		return errors.New("debug option invalid: " + device)
	}
	if len(s.options) == 0 {
		return fmt.Errorf("debug %s requires options", device)
	}
	mu.Lock()
	pending = append(pending, s)
	mu.Unlock()
	return nil
}

// Apply the collected settings to sys.
func Apply(sys *system.System) error {
	mu.Lock()
	list := append([]setting{}, pending...)
	mu.Unlock()

	for _, s := range list {
		var targets []*system.Unit
		switch s.target {
		case "CHANNEL":
			ch, err := sys.IOU.Lookup(s.channel)
			if err != nil {
				return err
			}
			for _, opt := range s.options {
				if err := ch.Debug(opt); err != nil {
					return err
				}
			}
			continue
		case "CPU":
			targets = sys.CPs
		case "PP":
			targets = sys.PPs
		default:
			u, err := sys.Unit(s.target)
			if err != nil {
				return err
			}
			targets = []*system.Unit{u}
		}
		for _, u := range targets {
			for _, opt := range s.options {
				if err := u.SetDebug(opt); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
