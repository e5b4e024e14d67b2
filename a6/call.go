// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package a6

import (
	"fmt"
	"strings"

	"github.com/warthog618/a6/info"
)

// CallInfo describes the state of a call, as reported by +CLCC.
type CallInfo struct {
	Index      int
	Direction  int
	State      int
	Mode       int
	Multiparty int
	Number     string
	Type       int
}

// Dial places a voice call to the number.
func (a *A6) Dial(number string) error {
	a.Logger().Printf("Dialing number...")
	return a.command(fmt.Sprintf("ATD%s;", number), "OK", "", 2)
}

// Redial calls the last number dialed.
func (a *A6) Redial() error {
	a.Logger().Printf("Redialing last number...")
	return a.command("AT+DLST", "OK", "CONNECT", 2)
}

// Answer answers an incoming call.
func (a *A6) Answer() error {
	return a.command("ATA", "OK", "", 2)
}

// HangUp ends the current call.
func (a *A6) HangUp() error {
	return a.command("ATH", "OK", "", 2)
}

// CallStatus returns the state of the current call.
//
// The CallInfo is zeroed if there is no active call.
func (a *A6) CallStatus() (CallInfo, error) {
	s, reply := a.Command("AT+CLCC", "OK", "+CLCC", a.timeout, 2)
	return parseCallInfo(reply), s.Err()
}

// parseCallInfo parses the first +CLCC line in the reply.
//
// Fields are parsed in order up to the first that can't be parsed, leaving
// the remainder zeroed.
func parseCallInfo(reply string) CallInfo {
	ci := CallInfo{}
	i, ok := info.Find(reply, "+CLCC")
	if !ok {
		return ci
	}
	fields := strings.SplitN(info.Line(i), ",", 6)
	for n, v := range []*int{&ci.Index, &ci.Direction, &ci.State, &ci.Mode, &ci.Multiparty} {
		if n >= len(fields) {
			return ci
		}
		if *v, ok = info.Int(fields[n]); !ok {
			return ci
		}
	}
	if len(fields) < 6 {
		return ci
	}
	// "number",type
	rest := strings.TrimPrefix(strings.TrimLeft(fields[5], " "), `"`)
	ci.Number = trimQuote(rest)
	if idx := strings.LastIndexByte(rest, ','); idx != -1 {
		ci.Type, _ = info.Int(rest[idx+1:])
	}
	return ci
}

// trimQuote removes the closing quote, and anything following it, from a
// number.
func trimQuote(number string) string {
	if idx := strings.IndexByte(number, '"'); idx != -1 {
		return number[:idx]
	}
	return number
}
