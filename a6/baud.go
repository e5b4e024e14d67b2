// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package a6

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/warthog618/a6/at"
)

// Rates are the baud rates tried when autodetecting the rate of the modem.
var Rates = []int{9600, 115200}

// ErrNoRate indicates the modem did not respond at any of the candidate
// baud rates.
var ErrNoRate = errors.New("couldn't detect the rate")

// DetectRate determines the baud rate the modem is currently using.
//
// The link is left at the detected rate. Each probe waits for the command
// timeout set by WithTimeout.
func (a *A6) DetectRate() (int, error) {
	l := a.Logger()
	l.Printf("Autodetecting connection rate...")
	for _, rate := range Rates {
		if err := a.Transport().Reinitialize(rate); err != nil {
			l.Printf("Switching to rate %d failed: %v", rate, err)
			continue
		}
		l.Printf("Trying rate %d...", rate)
		a.sleep(100 * time.Millisecond)
		if s, _ := a.Command("\rAT", "OK", "+CME", a.timeout, 2); s == at.OK {
			return rate, nil
		}
	}
	l.Printf("Couldn't detect the rate.")
	return 0, ErrNoRate
}

// SetRate switches the modem, and the link, to the baud rate.
//
// The switch relies on the modem acknowledging the change - it is not
// verified.
func (a *A6) SetRate(baud int) error {
	if _, err := a.DetectRate(); err != nil {
		return err
	}
	l := a.Logger()
	l.Printf("Setting baud rate on the module...")
	a.command(fmt.Sprintf("AT+IPR=%d", baud), "OK", "+IPR=", 3)
	l.Printf("Switching to the new rate...")
	if err := a.Transport().Reinitialize(baud); err != nil {
		return errors.Wrapf(err, "switch to rate %d", baud)
	}
	l.Printf("Rate set.")
	return nil
}
