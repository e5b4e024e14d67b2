// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package main

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/warthog618/a6/a6"
)

func newSMSCmd(ap *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "sms",
		Short: "Send and manage SMS messages",
	}
	c.AddCommand(
		newSMSSendCmd(ap),
		newSMSListCmd(ap),
		newSMSReadCmd(ap),
		newSMSDeleteCmd(ap),
		newSMSWaitCmd(ap),
	)
	return c
}

func newSMSSendCmd(ap *app) *cobra.Command {
	var ucs2 bool
	c := &cobra.Command{
		Use:   "send <number> <message>...",
		Short: "Send a message to a number, in international format",
		Args:  cobra.MinimumNArgs(2),
		RunE: ap.run(func(cmd *cobra.Command, args []string, m *a6.A6) error {
			msg := strings.Join(args[1:], " ")
			if ucs2 {
				msg = a6.EncodeUCS2(msg)
			}
			return m.SendSMS(args[0], msg)
		}),
	}
	c.Flags().BoolVarP(&ucs2, "ucs2", "u", false, "hex encode the message as UCS2")
	return c
}

// charset returns the character set used to decode read messages.
func charset(ucs2 bool) string {
	if ucs2 {
		return "UCS2"
	}
	return "GSM"
}

func newSMSListCmd(ap *app) *cobra.Command {
	var ucs2 bool
	var status string
	var limit int
	c := &cobra.Command{
		Use:   "list",
		Short: "List stored messages",
		Args:  cobra.NoArgs,
		RunE: ap.run(func(cmd *cobra.Command, args []string, m *a6.A6) error {
			locs := a6.NewLocations(limit)
			if _, err := m.SMSLocsOfType(locs, status); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, idx := range locs.Indices() {
				sms, err := m.ReadSMS(idx)
				if err != nil {
					fmt.Fprintf(w, "%d: %s\n", idx, err)
					continue
				}
				printSMS(w, idx, sms, charset(ucs2))
			}
			return nil
		}),
	}
	c.Flags().BoolVarP(&ucs2, "ucs2", "u", false, "decode messages as hex coded UCS2")
	c.Flags().StringVarP(&status, "status", "s", "ALL", "status of messages to list, e.g. \"REC UNREAD\"")
	c.Flags().IntVarP(&limit, "max", "n", 30, "maximum number of messages to list")
	return c
}

func newSMSReadCmd(ap *app) *cobra.Command {
	var ucs2 bool
	c := &cobra.Command{
		Use:   "read <index>",
		Short: "Display the message at a storage location",
		Args:  cobra.ExactArgs(1),
		RunE: ap.run(func(cmd *cobra.Command, args []string, m *a6.A6) error {
			idx, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			sms, err := m.ReadSMS(idx)
			if err != nil {
				return err
			}
			printSMS(cmd.OutOrStdout(), idx, sms, charset(ucs2))
			return nil
		}),
	}
	c.Flags().BoolVarP(&ucs2, "ucs2", "u", false, "decode the message as hex coded UCS2")
	return c
}

func newSMSDeleteCmd(ap *app) *cobra.Command {
	var flag int
	c := &cobra.Command{
		Use:   "delete <index>",
		Short: "Delete the message at a storage location",
		Args:  cobra.ExactArgs(1),
		RunE: ap.run(func(cmd *cobra.Command, args []string, m *a6.A6) error {
			idx, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("flag") {
				return m.DeleteSMSWithFlag(idx, flag)
			}
			return m.DeleteSMS(idx)
		}),
	}
	c.Flags().IntVarP(&flag, "flag", "f", 0, "+CMGD delete flag, e.g. 4 to delete all")
	return c
}

func newSMSWaitCmd(ap *app) *cobra.Command {
	var period, poll time.Duration
	var keep, ucs2 bool
	c := &cobra.Command{
		Use:   "wait",
		Short: "Wait for messages to arrive and display them",
		Args:  cobra.NoArgs,
		RunE: ap.run(func(cmd *cobra.Command, args []string, m *a6.A6) error {
			w := cmd.OutOrStdout()
			done := time.After(period)
			sq := time.NewTicker(time.Minute)
			defer sq.Stop()
			pt := time.NewTicker(poll)
			defer pt.Stop()
			locs := a6.NewLocations(30)
			for {
				select {
				case <-done:
					log.Println("exiting...")
					return nil
				case <-sq.C:
					pollSignalStrength(m)
				case <-pt.C:
					if err := waitForSMSs(w, m, locs, keep, charset(ucs2)); err != nil {
						return err
					}
				}
			}
		}),
	}
	c.Flags().DurationVar(&period, "period", 10*time.Minute, "period to wait")
	c.Flags().DurationVar(&poll, "poll", 5*time.Second, "period between checks for new messages")
	c.Flags().BoolVarP(&keep, "keep", "k", false, "keep messages after displaying them")
	c.Flags().BoolVarP(&ucs2, "ucs2", "u", false, "decode messages as hex coded UCS2")
	return c
}

// pollSignalStrength logs the signal strength.
func pollSignalStrength(m *a6.A6) {
	s, err := m.SignalStrength()
	if err != nil {
		log.Println(err)
		return
	}
	log.Printf("Signal strength: %d%%\n", s)
}

// waitForSMSs displays, and optionally deletes, any unread messages.
func waitForSMSs(w io.Writer, m *a6.A6, locs *a6.Locations, keep bool, cs string) error {
	if _, err := m.UnreadSMSLocs(locs); err != nil {
		return err
	}
	for _, idx := range locs.Indices() {
		sms, err := m.ReadSMS(idx)
		if err != nil {
			log.Printf("read %d: %v\n", idx, err)
			continue
		}
		printSMS(w, idx, sms, cs)
		if keep {
			continue
		}
		if err := m.DeleteSMS(idx); err != nil {
			log.Printf("delete %d: %v\n", idx, err)
		}
	}
	return nil
}

func parseIndex(s string) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil || idx < 0 {
		return 0, errors.Errorf("invalid index: %q", s)
	}
	return idx, nil
}

func printSMS(w io.Writer, idx int, sms a6.SMS, cs string) {
	fmt.Fprintf(w, "%d: %s %s %s\n %s\n", idx, sms.Status, sms.Number, sms.Date, sms.Text(cs))
}
