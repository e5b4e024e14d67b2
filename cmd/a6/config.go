// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package main

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config contains the settings used to connect to the modem.
type Config struct {
	Device      string        `yaml:"device"`
	Baud        int           `yaml:"baud"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
	Timeout     time.Duration `yaml:"timeout"`
	SMSTimeout  time.Duration `yaml:"sms_timeout"`
	Storage     string        `yaml:"storage"`
	PowerPin    string        `yaml:"power_pin"`
	Begin       bool          `yaml:"begin"`
	Verbose     bool          `yaml:"verbose"`
}

func defaultConfig() Config {
	return Config{
		Baud:        115200,
		ReadTimeout: 100 * time.Millisecond,
		Timeout:     2 * time.Second,
		SMSTimeout:  10 * time.Second,
		Storage:     "ME",
	}
}

// loadConfig overlays the settings in the YAML file at path onto cfg.
func loadConfig(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return errors.Wrapf(err, "parse config %s", path)
	}
	return nil
}

// addFlags binds the persistent flags to fields of cfg.
func addFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.Device, "device", "d", cfg.Device, "path to modem device")
	fs.IntVarP(&cfg.Baud, "baud", "b", cfg.Baud, "baud rate")
	fs.DurationVar(&cfg.ReadTimeout, "read-timeout", cfg.ReadTimeout, "serial read timeout")
	fs.DurationVarP(&cfg.Timeout, "timeout", "t", cfg.Timeout, "command timeout period")
	fs.DurationVar(&cfg.SMSTimeout, "sms-timeout", cfg.SMSTimeout, "period to wait for an SMS to be sent")
	fs.StringVar(&cfg.Storage, "storage", cfg.Storage, "SMS storage, ME or SM")
	fs.StringVarP(&cfg.PowerPin, "power-pin", "p", cfg.PowerPin, "GPIO line switching modem power")
	fs.BoolVar(&cfg.Begin, "begin", cfg.Begin, "initialise the modem before the command")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "log modem interactions")
}

// overlay copies the flags explicitly set in fs from flags to cfg.
func overlay(cfg *Config, flags Config, fs *pflag.FlagSet) {
	set := func(name string, f func()) {
		if fs.Changed(name) {
			f()
		}
	}
	set("device", func() { cfg.Device = flags.Device })
	set("baud", func() { cfg.Baud = flags.Baud })
	set("read-timeout", func() { cfg.ReadTimeout = flags.ReadTimeout })
	set("timeout", func() { cfg.Timeout = flags.Timeout })
	set("sms-timeout", func() { cfg.SMSTimeout = flags.SMSTimeout })
	set("storage", func() { cfg.Storage = flags.Storage })
	set("power-pin", func() { cfg.PowerPin = flags.PowerPin })
	set("begin", func() { cfg.Begin = flags.Begin })
	set("verbose", func() { cfg.Verbose = flags.Verbose })
}
