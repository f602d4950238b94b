/*
 * Cyber - Main emulator entry
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

package main

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	reader "github.com/rcornwell/cyber/command/reader"
	config "github.com/rcornwell/cyber/config/configparser"
	"github.com/rcornwell/cyber/config/debugconfig"
	"github.com/rcornwell/cyber/config/sysconfig"
	core "github.com/rcornwell/cyber/emu/core"
	master "github.com/rcornwell/cyber/emu/master"
	"github.com/rcornwell/cyber/emu/system"
	logger "github.com/rcornwell/cyber/util/logger"
)

var Logger *slog.Logger

func main() {
	optConfig := getopt.StringLong("config", 'c', "cyber.cfg", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Log debug to console")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		var err error
		file, err = os.Create(*optLogFile)
		if err != nil {
			slog.Error("unable to create log file", "file", *optLogFile, "error", err)
			os.Exit(1)
		}
		defer file.Close()
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, *optDebug))
	slog.SetDefault(Logger)

	Logger.Info("Cyber Started")

	_, err := os.Stat(*optConfig)
	if os.IsNotExist(err) {
		Logger.Error("Configuration file can't be found", "file", *optConfig)
		os.Exit(1)
	}

	err = config.LoadConfigFile(*optConfig)
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}

	cfg, err := sysconfig.Config()
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}
	sys, err := system.New(cfg)
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}
	if err := debugconfig.Apply(sys); err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}
	Logger.Info("System configured", "model", cfg.Model, "pps", cfg.PPs, "cpus", cfg.CPs,
		"memory", cfg.MemoryWords)

	masterChannel := make(chan master.Packet)

	// Create new routine to run the processors.
	cpu := core.New(sys, masterChannel)

	// Start main emulator.
	go cpu.Start()

	if cfg.Deadstart != nil {
		if err := cpu.SendDeadstart(nil); err != nil {
			Logger.Error(err.Error())
		}
	}

	msg := make(chan string, 1)
	go func() {
		reader.ConsoleReader(cpu)
		msg <- ""
	}()

	// Wait on shutdown option
	<-msg

	cpu.Stop()
	Logger.Info("Emulator stopped.")
}
