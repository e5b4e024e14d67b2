// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/a6/a6"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "a6.yaml")
	require.Nil(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
device: /dev/ttyS1
baud: 9600
timeout: 500ms
storage: SM
power_pin: GPIO17
verbose: true
`)
	cfg := defaultConfig()
	require.Nil(t, loadConfig(path, &cfg))
	expected := defaultConfig()
	expected.Device = "/dev/ttyS1"
	expected.Baud = 9600
	expected.Timeout = 500 * time.Millisecond
	expected.Storage = "SM"
	expected.PowerPin = "GPIO17"
	expected.Verbose = true
	assert.Equal(t, expected, cfg)
}

func TestLoadConfigError(t *testing.T) {
	cfg := defaultConfig()
	err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"), &cfg)
	assert.NotNil(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	path := writeConfig(t, "baud: [fast\n")
	err = loadConfig(path, &cfg)
	assert.NotNil(t, err)
}

func TestOverlay(t *testing.T) {
	patterns := []struct {
		name     string
		args     []string
		expected func(*Config)
	}{
		{
			"none",
			nil,
			func(*Config) {},
		},
		{
			"baud",
			[]string{"-b", "115200"},
			func(c *Config) { c.Baud = 115200 },
		},
		{
			"device",
			[]string{"--device", "/dev/ttyUSB1", "-v=false"},
			func(c *Config) { c.Device = "/dev/ttyUSB1"; c.Verbose = false },
		},
		{
			"timeouts",
			[]string{"-t", "3s", "--sms-timeout", "20s", "--read-timeout", "50ms"},
			func(c *Config) {
				c.Timeout = 3 * time.Second
				c.SMSTimeout = 20 * time.Second
				c.ReadTimeout = 50 * time.Millisecond
			},
		},
		{
			"pin",
			[]string{"-p", "GPIO4", "--begin", "--storage", "ME"},
			func(c *Config) { c.PowerPin = "GPIO4"; c.Begin = true; c.Storage = "ME" },
		},
	}
	path := writeConfig(t, "device: /dev/ttyS1\nbaud: 9600\nverbose: true\nstorage: SM\n")
	for _, p := range patterns {
		f := func(t *testing.T) {
			flags := defaultConfig()
			fs := pflag.NewFlagSet(p.name, pflag.ContinueOnError)
			addFlags(fs, &flags)
			require.Nil(t, fs.Parse(p.args))
			cfg := defaultConfig()
			require.Nil(t, loadConfig(path, &cfg))
			expected := cfg
			p.expected(&expected)
			overlay(&cfg, flags, fs)
			assert.Equal(t, expected, cfg)
		}
		t.Run(p.name, f)
	}
}

func TestRootCmd(t *testing.T) {
	root := newRootCmd()
	for _, path := range [][]string{
		{"begin"},
		{"info"},
		{"clock"},
		{"signal"},
		{"call", "dial"},
		{"call", "redial"},
		{"call", "answer"},
		{"call", "hangup"},
		{"call", "status"},
		{"sms", "send"},
		{"sms", "list"},
		{"sms", "read"},
		{"sms", "delete"},
		{"sms", "wait"},
		{"volume"},
		{"speaker"},
		{"power", "on"},
		{"power", "off"},
		{"power", "cycle"},
	} {
		c, _, err := root.Find(path)
		assert.Nil(t, err, path)
		require.NotNil(t, c, path)
		assert.Equal(t, path[len(path)-1], c.Name())
	}
}

func TestRootCmdBadConfig(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "signal"})
	err := root.Execute()
	assert.NotNil(t, err)
}

func TestReplyLines(t *testing.T) {
	assert.Nil(t, replyLines("\r\nOK\r\n", ""))
	assert.Equal(t, []string{"20,0"}, replyLines("\r\n+CSQ: 20,0\r\n\r\nOK\r\n", "+CSQ"))
	assert.Equal(t, []string{"+CSQ: 20,0"}, replyLines("\r\n+CSQ: 20,0\r\n\r\nOK\r\n", ""))
	assert.Equal(t, []string{"+CREG: 1,1"}, replyLines("\r\n+CREG: 1,1\r\nOK", "+CSQ"))
	assert.Equal(t, []string{"A6", "V03.03"}, replyLines("A6\r\n V03.03 \r\nOK", ""))
}

func TestInfoPrefix(t *testing.T) {
	assert.Equal(t, "+CSQ", infoPrefix("AT+CSQ"))
	assert.Equal(t, "+CCLK", infoPrefix("AT+CCLK?"))
	assert.Equal(t, "+CMGF", infoPrefix("AT+CMGF=1"))
	assert.Equal(t, "", infoPrefix("ATI"))
}

func TestPrintSMS(t *testing.T) {
	patterns := []struct {
		name    string
		msg     string
		charset string
		out     string
	}{
		{"digits", "2024", "GSM", "4: REC READ +61123 21/03/01\n 2024\n"},
		{"hex like", "cafe", "GSM", "4: REC READ +61123 21/03/01\n cafe\n"},
		{"ucs2", "00680069", "UCS2", "4: REC READ +61123 21/03/01\n hi\n"},
	}
	for _, p := range patterns {
		f := func(t *testing.T) {
			var b bytes.Buffer
			sms := a6.SMS{Status: "REC READ", Number: "+61123", Date: "21/03/01", Message: p.msg}
			printSMS(&b, 4, sms, p.charset)
			assert.Equal(t, p.out, b.String())
		}
		t.Run(p.name, f)
	}
	assert.Equal(t, "GSM", charset(false))
	assert.Equal(t, "UCS2", charset(true))
}

func TestParseSwitch(t *testing.T) {
	patterns := []struct {
		in    string
		out   int
		isErr bool
	}{
		{"on", 1, false},
		{"ON", 1, false},
		{"1", 1, false},
		{"true", 1, false},
		{"off", 0, false},
		{"0", 0, false},
		{"false", 0, false},
		{"maybe", 0, true},
	}
	for _, p := range patterns {
		v, err := parseSwitch(p.in)
		assert.Equal(t, p.out, v, p.in)
		assert.Equal(t, p.isErr, err != nil, p.in)
	}
}

func TestParseIndex(t *testing.T) {
	idx, err := parseIndex("12")
	assert.Nil(t, err)
	assert.Equal(t, 12, idx)
	_, err = parseIndex("-1")
	assert.NotNil(t, err)
	_, err = parseIndex("x")
	assert.NotNil(t, err)
}
