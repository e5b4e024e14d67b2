// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package a6

import (
	"time"

	"github.com/pkg/errors"
)

// Pin is a digital output switching power to the modem.
//
// The pin is expected to drive a MOSFET in the modem supply, not the POWER
// pin of the modem itself.
type Pin interface {
	High() error
	Low() error
}

// ErrNoPowerPin indicates a power operation was attempted without a power
// pin.
var ErrNoPowerPin = errors.New("no power pin")

// PowerOn switches the modem power on.
func (a *A6) PowerOn() error {
	if a.pin == nil {
		return ErrNoPowerPin
	}
	return a.pin.High()
}

// PowerOff switches the modem power completely off.
func (a *A6) PowerOff() error {
	if a.pin == nil {
		return ErrNoPowerPin
	}
	return a.pin.Low()
}

// PowerCycle reboots the modem by switching the power off and on again, then
// waits for it to start up.
//
// Nothing confirms the modem has actually rebooted.
func (a *A6) PowerCycle() error {
	l := a.Logger()
	l.Printf("Power-cycling module...")
	if err := a.PowerOff(); err != nil {
		return err
	}
	a.sleep(2 * time.Second)
	if err := a.PowerOn(); err != nil {
		return err
	}
	l.Printf("Done, waiting for the module to initialize...")
	a.sleep(20 * time.Second)
	l.Printf("Done.")
	return a.Transport().Flush()
}
