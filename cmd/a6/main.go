// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

// a6 drives an A6 GSM/GPRS modem attached to a serial port.
//
// This serves as an example of how to use the driver, as well as providing
// a tool to check the modem and its configuration from the command line.
package main

import (
	"fmt"
	"os"
)

var version = "undefined"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
