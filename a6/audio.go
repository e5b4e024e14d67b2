// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package a6

import "fmt"

// SetVol sets the speaker volume.
//
// The level is clamped to the range 5 to 8.
func (a *A6) SetVol(level int) error {
	level = clamp(level, 5, 8)
	return a.command(fmt.Sprintf("AT+CLVL=%d", level), "OK", "", 2)
}

// EnableSpeaker routes audio through the speaker (1) or the headset (0).
//
// Other values are clamped to that range.
func (a *A6) EnableSpeaker(enable int) error {
	enable = clamp(enable, 0, 1)
	return a.command(fmt.Sprintf("AT+SNFS=%d", enable), "OK", "", 2)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
