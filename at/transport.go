// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package at

import (
	"io"
	"time"
)

// Device is the byte stream the modem is attached to.
//
// Read is expected to return once the read timeout expires, with whatever
// data has arrived by then - possibly none.
type Device interface {
	io.ReadWriter

	// Flush discards any input pending on the device.
	Flush() error

	// SetReadTimeout sets the maximum time a Read waits for data.
	SetReadTimeout(d time.Duration) error

	// SetBaud reinitializes the device at the given baud rate.
	SetBaud(baud int) error
}

// nul is the value NULs received from the modem are remapped to, so that
// they can be matched against and are not mistaken for the end of a string.
const nul = 0xff

// Transport adapts a Device to the text oriented reads and writes used by
// the command engine.
type Transport struct {
	dev Device
	buf []byte
}

// NewTransport creates a Transport on the device.
func NewTransport(d Device) *Transport {
	return &Transport{dev: d, buf: make([]byte, 256)}
}

// ConfigureTimeout sets the read timeout of the underlying device.
func (t *Transport) ConfigureTimeout(d time.Duration) error {
	return t.dev.SetReadTimeout(d)
}

// Write writes raw bytes to the device.
func (t *Transport) Write(p []byte) error {
	_, err := t.dev.Write(p)
	return err
}

// WriteString writes a string to the device.
func (t *Transport) WriteString(s string) error {
	return t.Write([]byte(s))
}

// AvailableText returns whatever text the device currently has available,
// which may be empty.
//
// Any NULs are replaced by 0xff.
// An error is only returned if the device has failed - running out of data
// is not an error.
func (t *Transport) AvailableText() (string, error) {
	n, err := t.dev.Read(t.buf)
	if err == io.EOF {
		err = nil
	}
	if n <= 0 {
		return "", err
	}
	b := make([]byte, n)
	copy(b, t.buf[:n])
	for i, c := range b {
		if c == 0 {
			b[i] = nul
		}
	}
	return string(b), err
}

// Reinitialize restarts the device at the given baud rate.
func (t *Transport) Reinitialize(baud int) error {
	return t.dev.SetBaud(baud)
}

// Flush discards any pending input.
func (t *Transport) Flush() error {
	return t.dev.Flush()
}
