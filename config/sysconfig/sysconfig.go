/*
 * Cyber - System configuration options
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

// Package sysconfig collects the machine description from the
// configuration file into a system.Config.
//
//	SYSTEM 170|962
//	MEMORY 256K
//	PPS 10
//	CHANNELS 10
//	CPUS 1
//	PARALLEL
//	CHANNEL 14 RTC|LOOPBACK
//	DEADSTART "file"
package sysconfig

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	config "github.com/rcornwell/cyber/config/configparser"
	"github.com/rcornwell/cyber/emu/system"
	"github.com/rcornwell/cyber/emu/word"
	"github.com/rcornwell/cyber/util/octal"
)

var (
	mu          sync.Mutex
	pending     = system.Default()
	channelsSet bool
	deadstart   string
)

// register options on initialize.
func init() {
	config.RegisterOption("SYSTEM", setModel)
	config.RegisterOption("MEMORY", setMemory)
	config.RegisterOption("PPS", setPPs)
	config.RegisterOption("CHANNELS", setChannels)
	config.RegisterOption("CPUS", setCPUs)
	config.RegisterSwitch("PARALLEL", setParallel)
	config.RegisterModel("CHANNEL", config.TypeModel, setChannel)
	config.RegisterFile("DEADSTART", setDeadstart)
}

// Reset back to the default machine.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	pending = system.Default()
	channelsSet = false
	deadstart = ""
}

// Config returns the machine described so far. The deadstart file is
// read here, once the model and so the word width are known.
func Config() (system.Config, error) {
	mu.Lock()
	defer mu.Unlock()
	cfg := pending
	cfg.Devices = map[int]string{}
	for n, dev := range pending.Devices {
		cfg.Devices[n] = dev
	}
	if !channelsSet {
		cfg.Channels = cfg.PPs
	}
	if deadstart != "" {
		file, err := os.Open(deadstart)
		if err != nil {
			return cfg, fmt.Errorf("unable to open deadstart file: %w", err)
		}
		defer file.Close()
		w := word.W12
		if cfg.Model == system.Model962 {
			w = word.W16
		}
		cfg.Deadstart, err = octal.ReadWords(file, w)
		if err != nil {
			return cfg, fmt.Errorf("deadstart file %s: %w", deadstart, err)
		}
	}
	return cfg, nil
}

// Size is decimal with an optional K or M suffix.
func parseSize(value string) (int, error) {
	mult := 1
	switch {
	case strings.HasSuffix(strings.ToUpper(value), "K"):
		mult = 1024
		value = value[:len(value)-1]
	case strings.HasSuffix(strings.ToUpper(value), "M"):
		mult = 1024 * 1024
		value = value[:len(value)-1]
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	return n * mult, nil
}

func parseCount(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %s", name, value)
	}
	return n, nil
}

func setModel(_ uint16, value string, _ []config.Option) error {
	switch value {
	case system.Model170, system.Model962:
	default:
		return fmt.Errorf("system must be 170 or 962: %s", value)
	}
	mu.Lock()
	pending.Model = value
	mu.Unlock()
	return nil
}

func setMemory(_ uint16, value string, _ []config.Option) error {
	n, err := parseSize(value)
	if err != nil {
		return err
	}
	mu.Lock()
	pending.MemoryWords = n
	mu.Unlock()
	return nil
}

func setPPs(_ uint16, value string, _ []config.Option) error {
	n, err := parseCount("PPS", value)
	if err != nil {
		return err
	}
	mu.Lock()
	pending.PPs = n
	mu.Unlock()
	return nil
}

func setChannels(_ uint16, value string, _ []config.Option) error {
	n, err := parseCount("CHANNELS", value)
	if err != nil {
		return err
	}
	mu.Lock()
	pending.Channels = n
	channelsSet = true
	mu.Unlock()
	return nil
}

func setCPUs(_ uint16, value string, _ []config.Option) error {
	n, err := parseCount("CPUS", value)
	if err != nil {
		return err
	}
	mu.Lock()
	pending.CPs = n
	mu.Unlock()
	return nil
}

func setParallel(_ uint16, _ string, _ []config.Option) error {
	mu.Lock()
	pending.Parallel = true
	mu.Unlock()
	return nil
}

func setChannel(number uint16, _ string, options []config.Option) error {
	if len(options) != 1 || options[0].EqualOpt != "" || len(options[0].Value) != 0 {
		return errors.New("channel requires one device name")
	}
	dev := strings.ToUpper(options[0].Name)
	switch dev {
	case system.DeviceRTC, system.DeviceLoopback:
	default:
		return fmt.Errorf("channel %o unknown device: %s", number, options[0].Name)
	}
	mu.Lock()
	pending.Devices[int(number)] = dev
	mu.Unlock()
	return nil
}

func setDeadstart(_ uint16, fileName string, _ []config.Option) error {
	mu.Lock()
	defer mu.Unlock()
	if deadstart != "" {
		return fmt.Errorf("can't have more then one deadstart file, previous: %s", deadstart)
	}
	deadstart = fileName
	return nil
}
