package bridge

import (
	"sync"
	"testing"

	irc "github.com/qaisjp/go-ircevent"
	"github.com/stretchr/testify/assert"
)

func TestSetDebugModeConcurrent(t *testing.T) {
	b := &Bridge{
		Config:      &Config{},
		ircListener: &ircListener{Connection: irc.IRC("bridge", "bridge")},
	}

	var wg sync.WaitGroup
	for n := 0; n < 8; n++ {
		wg.Add(1)
		go func(debug bool) {
			defer wg.Done()
			b.SetDebugMode(debug)
			b.Debug()
		}(n%2 == 0)
	}
	wg.Wait()

	b.SetDebugMode(true)
	assert.True(t, b.Debug())
	assert.True(t, b.ircListener.Debug)
	assert.True(t, b.ircListener.VerboseCallbackHandler)

	b.SetDebugMode(false)
	assert.False(t, b.Debug())
	assert.False(t, b.ircListener.Debug)
}
