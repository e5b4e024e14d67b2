// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package a6

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
	"github.com/warthog618/sms/encoding/ucs2"
)

// EncodeUCS2 converts text to the hex coded form used for SMS text while the
// UCS2 character set is selected.
func EncodeUCS2(text string) string {
	return strings.ToUpper(hex.EncodeToString(ucs2.Encode([]rune(text))))
}

// DecodeUCS2 converts hex coded UCS2 text, as returned by the modem while
// the UCS2 character set is selected, to a string.
func DecodeUCS2(s string) (string, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return "", errors.Wrap(err, "decode hex")
	}
	r, err := ucs2.Decode(b)
	if err != nil {
		return "", errors.Wrap(err, "decode ucs2")
	}
	return string(r), nil
}

// Text returns the message text, decoding it according to the character set
// the modem was using when the message was read, as set by SetSMSCharset.
//
// Only "UCS2" is decoded. The message is returned unaltered for other
// character sets, or if it is not valid hex coded UCS2.
func (s SMS) Text(charset string) string {
	if !strings.EqualFold(charset, "UCS2") {
		return s.Message
	}
	t, err := DecodeUCS2(s.Message)
	if err != nil {
		return s.Message
	}
	return t
}
