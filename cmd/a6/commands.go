// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/warthog618/a6/a6"
	"github.com/warthog618/a6/at"
	"github.com/warthog618/a6/info"
)

func newBeginCmd(ap *app) *cobra.Command {
	return &cobra.Command{
		Use:   "begin",
		Short: "Initialise the modem, waiting until it responds",
		Args:  cobra.NoArgs,
		RunE: ap.run(func(cmd *cobra.Command, args []string, m *a6.A6) error {
			if err := m.BlockUntilReady(ap.cfg.Baud); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ready")
			return nil
		}),
	}
}

// infoCmds are the queries issued by the info command.
var infoCmds = []string{
	"ATI",
	"AT+GCAP",
	"AT+CGMI",
	"AT+CGMM",
	"AT+CGMR",
	"AT+CGSN",
	"AT+CIMI",
	"AT+CPIN?",
	"AT+CREG?",
	"AT+CSQ",
	"AT+CSCA?",
	"AT+CSCS?",
	"AT+CPMS?",
	"AT+CMGF?",
	"AT+CNMI?",
	"AT+CLIP?",
	"AT+CLVL?",
	"AT+CCLK?",
}

func newInfoCmd(ap *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display information about the modem and its configuration",
		Args:  cobra.NoArgs,
		RunE: ap.run(func(cmd *cobra.Command, args []string, m *a6.A6) error {
			w := cmd.OutOrStdout()
			for _, c := range infoCmds {
				s, reply := m.Command(c, "OK", "ERROR", ap.cfg.Timeout, 1)
				fmt.Fprintln(w, c)
				if s != at.OK {
					fmt.Fprintf(w, " %s\n", s)
					continue
				}
				for _, l := range replyLines(reply, infoPrefix(c)) {
					fmt.Fprintf(w, " %s\n", l)
				}
			}
			return nil
		}),
	}
}

// infoPrefix returns the info prefix of replies to the command,
// e.g. "+CSQ" for "AT+CSQ" and "+CCLK" for "AT+CCLK?".
func infoPrefix(cmd string) string {
	p := strings.TrimPrefix(cmd, "AT")
	if idx := strings.IndexAny(p, "?="); idx != -1 {
		p = p[:idx]
	}
	if !strings.HasPrefix(p, "+") {
		return ""
	}
	return p
}

// replyLines splits a reply into lines, dropping blanks and the final OK,
// and removing the info prefix, if any, from each line.
func replyLines(reply, prefix string) []string {
	var lines []string
	for _, l := range strings.FieldsFunc(reply, func(r rune) bool { return r == '\r' || r == '\n' }) {
		l = strings.TrimSpace(l)
		if l == "" || l == "OK" {
			continue
		}
		if prefix != "" && info.HasPrefix(l, prefix) {
			l = info.TrimPrefix(l, prefix)
		}
		lines = append(lines, l)
	}
	return lines
}

func newClockCmd(ap *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clock",
		Short: "Display the modem real time clock",
		Args:  cobra.NoArgs,
		RunE: ap.run(func(cmd *cobra.Command, args []string, m *a6.A6) error {
			ts, err := m.RealTimeClock()
			if err != nil {
				return err
			}
			t, err := a6.ParseClock(ts)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), ts)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Format(time.RFC3339))
			return nil
		}),
	}
}

func newSignalCmd(ap *app) *cobra.Command {
	return &cobra.Command{
		Use:   "signal",
		Short: "Display the signal strength as a percentage",
		Args:  cobra.NoArgs,
		RunE: ap.run(func(cmd *cobra.Command, args []string, m *a6.A6) error {
			s, err := m.SignalStrength()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d%%\n", s)
			return nil
		}),
	}
}

func newCallCmd(ap *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "call",
		Short: "Control voice calls",
	}
	c.AddCommand(
		&cobra.Command{
			Use:   "dial <number>",
			Short: "Dial a number",
			Args:  cobra.ExactArgs(1),
			RunE: ap.run(func(cmd *cobra.Command, args []string, m *a6.A6) error {
				return m.Dial(args[0])
			}),
		},
		&cobra.Command{
			Use:   "redial",
			Short: "Redial the last number dialed",
			Args:  cobra.NoArgs,
			RunE: ap.run(func(cmd *cobra.Command, args []string, m *a6.A6) error {
				return m.Redial()
			}),
		},
		&cobra.Command{
			Use:   "answer",
			Short: "Answer an incoming call",
			Args:  cobra.NoArgs,
			RunE: ap.run(func(cmd *cobra.Command, args []string, m *a6.A6) error {
				return m.Answer()
			}),
		},
		&cobra.Command{
			Use:   "hangup",
			Short: "End the current call",
			Args:  cobra.NoArgs,
			RunE: ap.run(func(cmd *cobra.Command, args []string, m *a6.A6) error {
				return m.HangUp()
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Display the state of the current call",
			Args:  cobra.NoArgs,
			RunE: ap.run(func(cmd *cobra.Command, args []string, m *a6.A6) error {
				ci, err := m.CallStatus()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", ci)
				return nil
			}),
		},
	)
	return c
}

func newVolumeCmd(ap *app) *cobra.Command {
	return &cobra.Command{
		Use:   "volume <level>",
		Short: "Set the speaker volume, from 5 to 8",
		Args:  cobra.ExactArgs(1),
		RunE: ap.run(func(cmd *cobra.Command, args []string, m *a6.A6) error {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Wrap(err, "level")
			}
			return m.SetVol(v)
		}),
	}
}

func newSpeakerCmd(ap *app) *cobra.Command {
	return &cobra.Command{
		Use:   "speaker <on|off>",
		Short: "Select the loudspeaker, rather than the headset, for audio",
		Args:  cobra.ExactArgs(1),
		RunE: ap.run(func(cmd *cobra.Command, args []string, m *a6.A6) error {
			v, err := parseSwitch(args[0])
			if err != nil {
				return err
			}
			return m.EnableSpeaker(v)
		}),
	}
}

// parseSwitch converts on/off style arguments to 1/0.
func parseSwitch(s string) (int, error) {
	switch strings.ToLower(s) {
	case "on", "1", "true":
		return 1, nil
	case "off", "0", "false":
		return 0, nil
	}
	return 0, errors.Errorf("invalid switch: %q", s)
}

func newPowerCmd(ap *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "power",
		Short: "Switch modem power using the power pin",
	}
	c.AddCommand(
		&cobra.Command{
			Use:   "on",
			Short: "Switch the modem on",
			Args:  cobra.NoArgs,
			RunE: ap.run(func(cmd *cobra.Command, args []string, m *a6.A6) error {
				return m.PowerOn()
			}),
		},
		&cobra.Command{
			Use:   "off",
			Short: "Switch the modem off",
			Args:  cobra.NoArgs,
			RunE: ap.run(func(cmd *cobra.Command, args []string, m *a6.A6) error {
				return m.PowerOff()
			}),
		},
		&cobra.Command{
			Use:   "cycle",
			Short: "Switch the modem off and on, and wait for it to start",
			Args:  cobra.NoArgs,
			RunE: ap.run(func(cmd *cobra.Command, args []string, m *a6.A6) error {
				return m.PowerCycle()
			}),
		},
	)
	return c
}
