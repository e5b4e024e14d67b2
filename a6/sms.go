// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package a6

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/warthog618/a6/at"
	"github.com/warthog618/a6/info"
)

// MaxSMSLength is the longest message that can be sent by SendSMS.
const MaxSMSLength = 159

const (
	ctrlZ = "\x1a"

	// tokens terminating a list or read
	listEnd    = "\xff\r\nOK\r\n"
	listEndAlt = "\r\nOK\r\n"
)

// SMS is a text message stored on the modem.
type SMS struct {
	// Index is the location of the message in storage.
	// Only reported when listing messages.
	Index   int
	Status  string
	Number  string
	Date    string
	Message string
}

// Locations is a bounded list of SMS storage locations.
type Locations struct {
	idx []int
}

// NewLocations creates a Locations that holds up to capacity locations.
func NewLocations(capacity int) *Locations {
	if capacity < 0 {
		capacity = 0
	}
	return &Locations{idx: make([]int, 0, capacity)}
}

// Len returns the number of locations held.
func (l *Locations) Len() int {
	return len(l.idx)
}

// Cap returns the maximum number of locations that can be held.
func (l *Locations) Cap() int {
	return cap(l.idx)
}

// Indices returns the locations held.
func (l *Locations) Indices() []int {
	return append([]int{}, l.idx...)
}

// Reset empties the list.
func (l *Locations) Reset() {
	l.idx = l.idx[:0]
}

// add appends the location, returning false if the list is full.
func (l *Locations) add(i int) bool {
	if len(l.idx) >= cap(l.idx) {
		return false
	}
	l.idx = append(l.idx, i)
	return true
}

// SendSMS sends a text message to the number.
//
// Messages longer than MaxSMSLength characters are rejected with
// at.ErrNotOK without anything being sent to the modem.
func (a *A6) SendSMS(number, text string) error {
	if utf8.RuneCountInString(text) > MaxSMSLength {
		return at.ErrNotOK
	}
	a.Logger().Printf("Sending SMS to %s...", number)
	if err := a.command(fmt.Sprintf(`AT+CMGS="%s"`, number), ">", "", 2); err != nil {
		return err
	}
	a.sleep(100 * time.Millisecond)
	if err := a.Transport().WriteString(text + ctrlZ); err != nil {
		return errors.Wrap(err, "write SMS")
	}
	s, _ := a.WaitFor("+CMGS", "OK", a.smsTimeout)
	return s.Err()
}

// UnreadSMSLocs fills locs with the locations of unread messages.
func (a *A6) UnreadSMSLocs(locs *Locations) (int, error) {
	return a.SMSLocsOfType(locs, "REC UNREAD")
}

// SMSLocs fills locs with the locations of all messages.
func (a *A6) SMSLocs(locs *Locations) (int, error) {
	return a.SMSLocsOfType(locs, "ALL")
}

// SMSLocsOfType fills locs with the locations of messages with the status,
// such as "REC UNREAD" or "ALL".
//
// Any locations beyond the capacity of locs are ignored.
// Returns the number of locations found.
func (a *A6) SMSLocsOfType(locs *Locations, status string) (int, error) {
	s, reply := a.Command(fmt.Sprintf(`AT+CMGL="%s"`, status), listEnd, listEndAlt, a.timeout, 2)
	parseSMSLocs(reply, locs)
	return locs.Len(), s.Err()
}

// parseSMSLocs extracts the index of each +CMGL record in the reply.
func parseSMSLocs(reply string, locs *Locations) {
	locs.Reset()
	for _, i := range info.FindAll(reply, "+CMGL", -1) {
		idx, ok := info.Int(i)
		if !ok {
			continue
		}
		if !locs.add(idx) {
			return
		}
	}
}

// ReadSMS returns the message at the storage location.
func (a *A6) ReadSMS(index int) (SMS, error) {
	s, reply := a.Command(fmt.Sprintf("AT+CMGR=%d", index), listEnd, listEndAlt, a.timeout, 2)
	return parseSMS(reply), s.Err()
}

// parseSMS parses the first +CMGR or +CMGL record in the reply.
func parseSMS(reply string) SMS {
	sms := SMS{}
	rec, ok := info.Find(reply, "+CMGR")
	listed := false
	if !ok {
		if rec, ok = info.Find(reply, "+CMGL"); !ok {
			return sms
		}
		listed = true
	}
	header := info.Line(rec)
	fields := info.Fields(header)
	if listed {
		sms.Index, _ = info.Int(fields[0])
		fields = fields[1:]
	}
	// status, number, alpha, date
	field := func(n int) string {
		if n < len(fields) {
			return fields[n]
		}
		return ""
	}
	sms.Status = field(0)
	sms.Number = field(1)
	sms.Date = field(3)
	body := strings.TrimPrefix(rec[len(header):], "\r")
	body = strings.TrimPrefix(body, "\n")
	end := len(body)
	for _, term := range []string{"\r\n+CMG", "\xff", listEndAlt} {
		if idx := strings.Index(body, term); idx != -1 && idx < end {
			end = idx
		}
	}
	sms.Message = strings.TrimRight(body[:end], "\r\n")
	return sms
}

// DeleteSMS deletes the message at the storage location.
func (a *A6) DeleteSMS(index int) error {
	return a.command(fmt.Sprintf("AT+CMGD=%d", index), "OK", "", 2)
}

// DeleteSMSWithFlag deletes messages using the +CMGD delete flag.
//
// e.g. a flag of 4 deletes all messages in storage.
func (a *A6) DeleteSMSWithFlag(index, flag int) error {
	return a.command(fmt.Sprintf("AT+CMGD=%d,%d", index, flag), "OK", "", 2)
}

// SetSMSCharset sets the character set used for SMS text, such as "GSM" or
// "UCS2".
func (a *A6) SetSMSCharset(charset string) error {
	return a.command(fmt.Sprintf(`AT+CSCS="%s"`, charset), "OK", "", 2)
}
