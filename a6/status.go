// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package a6

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/warthog618/a6/info"
)

// SignalStrength returns the strength of the GSM signal as a percentage.
//
// Zero is returned if the strength is unknown.
func (a *A6) SignalStrength() (int, error) {
	s, reply := a.Command("AT+CSQ", "OK", "+CSQ", a.timeout, 2)
	return parseSignalStrength(reply), s.Err()
}

// parseSignalStrength scales the rssi in a +CSQ reply from 0..31 to 0..100.
func parseSignalStrength(reply string) int {
	i, ok := info.Find(reply, "+CSQ")
	if !ok {
		return 0
	}
	rssi, ok := info.Int(i)
	if !ok || rssi < 0 || rssi > 31 {
		// 99 is not known or not detectable
		return 0
	}
	return rssi * 100 / 31
}

// RealTimeClock returns the time reported by the modem, in the form
// yy/MM/dd,hh:mm:ss+zz.
func (a *A6) RealTimeClock() (string, error) {
	s, reply := a.Command("AT+CCLK?", "OK", "", a.timeout, 1)
	return parseClock(reply), s.Err()
}

// parseClock returns the quoted timestamp from a +CCLK reply.
func parseClock(reply string) string {
	const marker = `+CCLK: "`
	idx := strings.Index(reply, marker)
	if idx == -1 {
		return ""
	}
	ts := reply[idx+len(marker):]
	end := strings.IndexByte(ts, '"')
	if end == -1 {
		return ""
	}
	return ts[:end]
}

// ParseClock converts a timestamp returned by RealTimeClock to a time.
//
// The timestamp is of the form yy/MM/dd,hh:mm:ss followed by an optional
// signed zone offset in quarter hours.
func ParseClock(ts string) (time.Time, error) {
	const layout = "06/01/02,15:04:05"
	if len(ts) < len(layout) {
		return time.Time{}, errors.Errorf("timestamp too short: %q", ts)
	}
	loc := time.UTC
	if zone := ts[len(layout):]; zone != "" {
		q, ok := info.Int(strings.TrimPrefix(zone, "+"))
		if !ok || (zone[0] != '+' && zone[0] != '-') {
			return time.Time{}, errors.Errorf("invalid zone: %q", zone)
		}
		loc = time.FixedZone("", q*15*60)
	}
	t, err := time.ParseInLocation(layout, ts[:len(layout)], loc)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse timestamp %q", ts)
	}
	return t, nil
}
