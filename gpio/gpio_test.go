// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package gpio_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/a6/a6"
	"github.com/warthog618/a6/gpio"
	pgpio "periph.io/x/conn/v3/gpio"
)

var _ a6.Pin = (*gpio.Pin)(nil)

type mockOutput struct {
	levels []pgpio.Level
	err    error
}

func (m *mockOutput) Out(l pgpio.Level) error {
	if m.err != nil {
		return m.err
	}
	m.levels = append(m.levels, l)
	return nil
}

func TestPin(t *testing.T) {
	out := &mockOutput{}
	p := gpio.New(out)
	require.NotNil(t, p)
	assert.Nil(t, p.High())
	assert.Nil(t, p.Low())
	assert.Nil(t, p.High())
	assert.Equal(t, []pgpio.Level{pgpio.High, pgpio.Low, pgpio.High}, out.levels)
}

func TestPinError(t *testing.T) {
	out := &mockOutput{err: errors.New("no such line")}
	p := gpio.New(out)
	err := p.High()
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "no such line")
	assert.NotNil(t, p.Low())
	assert.Empty(t, out.levels)
}

func TestOpenUnknown(t *testing.T) {
	p, err := gpio.Open("nosuchpin")
	assert.NotNil(t, err)
	assert.Nil(t, p)
}
