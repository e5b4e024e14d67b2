// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/warthog618/a6/a6"
	"github.com/warthog618/a6/at"
	"github.com/warthog618/a6/gpio"
	"github.com/warthog618/a6/serial"
	"github.com/warthog618/a6/trace"
)

type app struct {
	cfg     Config
	flags   Config
	cfgPath string
}

func newRootCmd() *cobra.Command {
	ap := &app{cfg: defaultConfig(), flags: defaultConfig()}
	root := &cobra.Command{
		Use:           "a6",
		Short:         "a6 drives an A6 GSM/GPRS modem",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ap.configure(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&ap.cfgPath, "config", "c", "", "YAML config file")
	addFlags(root.PersistentFlags(), &ap.flags)
	root.AddCommand(
		newBeginCmd(ap),
		newInfoCmd(ap),
		newClockCmd(ap),
		newSignalCmd(ap),
		newCallCmd(ap),
		newSMSCmd(ap),
		newVolumeCmd(ap),
		newSpeakerCmd(ap),
		newPowerCmd(ap),
	)
	return root
}

// configure builds the config from the defaults, then the config file, then
// any flags explicitly set on the command line.
func (ap *app) configure(cmd *cobra.Command) error {
	ap.cfg = defaultConfig()
	if ap.cfgPath != "" {
		if err := loadConfig(ap.cfgPath, &ap.cfg); err != nil {
			return err
		}
	}
	overlay(&ap.cfg, ap.flags, cmd.Flags())
	return nil
}

// run returns a cobra RunE that connects to the modem and passes it to f.
func (ap *app) run(f func(cmd *cobra.Command, args []string, m *a6.A6) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg := ap.cfg
		options := []serial.Option{
			serial.WithBaud(cfg.Baud),
			serial.WithReadTimeout(cfg.ReadTimeout),
		}
		if cfg.Device != "" {
			options = append(options, serial.WithPort(cfg.Device))
		}
		p, err := serial.New(options...)
		if err != nil {
			return err
		}
		defer p.Close()
		var d at.Device = p
		mopts := []a6.Option{
			a6.WithTimeout(cfg.Timeout),
			a6.WithSMSTimeout(cfg.SMSTimeout),
			a6.WithSMSStorage(cfg.Storage),
			a6.WithATOptions(at.WithReadTimeout(cfg.ReadTimeout)),
		}
		if cfg.Verbose {
			l := log.New(os.Stderr, "", log.LstdFlags)
			d = trace.New(p, trace.WithLogger(l))
			mopts = append(mopts, a6.WithLogger(l))
		}
		if cfg.PowerPin != "" {
			pin, err := gpio.Open(cfg.PowerPin)
			if err != nil {
				return err
			}
			mopts = append(mopts, a6.WithPowerPin(pin))
		}
		m := a6.New(d, mopts...)
		if cfg.Begin {
			if err := m.BlockUntilReady(cfg.Baud); err != nil {
				return err
			}
		}
		return f(cmd, args, m)
	}
}
