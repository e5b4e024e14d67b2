package serial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	cfg := Config{}
	WithPort("/dev/ttyS0")(&cfg)
	WithBaud(9600)(&cfg)
	WithReadTimeout(time.Second)(&cfg)
	assert.Equal(t, Config{port: "/dev/ttyS0", baud: 9600, readTimeout: time.Second}, cfg)
}

func TestNew(t *testing.T) {
	// bogus path
	m, err := New(WithPort("bogusmodem"), WithBaud(115200))
	assert.NotNil(t, err)
	assert.Nil(t, m)
}

func TestClosed(t *testing.T) {
	p := &Port{cfg: defaultConfig}
	n, err := p.Read(make([]byte, 10))
	assert.Equal(t, 0, n)
	assert.Equal(t, ErrClosed, err)
	_, err = p.Write([]byte("AT\r"))
	assert.Equal(t, ErrClosed, err)
	assert.Equal(t, ErrClosed, p.Flush())
	assert.Nil(t, p.Close())
}

func TestReconfigure(t *testing.T) {
	p := &Port{cfg: Config{port: "bogusmodem", baud: 115200}}
	err := p.SetBaud(9600)
	require.NotNil(t, err)
	assert.Equal(t, 9600, p.Baud())
	err = p.SetReadTimeout(time.Second)
	assert.NotNil(t, err)
	assert.Equal(t, time.Second, p.cfg.readTimeout)
}
