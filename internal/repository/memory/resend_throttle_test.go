package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResendThrottle(t *testing.T) {
	t.Run("second send within cooldown is blocked", func(t *testing.T) {
		throttle := NewResendThrottle(time.Minute)

		assert.True(t, throttle.Allow("a@b.com"))
		assert.False(t, throttle.Allow("a@b.com"))
	})

	t.Run("addresses are throttled independently", func(t *testing.T) {
		throttle := NewResendThrottle(time.Minute)

		assert.True(t, throttle.Allow("a@b.com"))
		assert.True(t, throttle.Allow("c@d.com"))
	})

	t.Run("reset clears the window", func(t *testing.T) {
		throttle := NewResendThrottle(time.Minute)

		assert.True(t, throttle.Allow("a@b.com"))
		throttle.Reset("a@b.com")
		assert.True(t, throttle.Allow("a@b.com"))
	})

	t.Run("cooldown expires", func(t *testing.T) {
		throttle := NewResendThrottle(20 * time.Millisecond)

		assert.True(t, throttle.Allow("a@b.com"))
		time.Sleep(40 * time.Millisecond)
		assert.True(t, throttle.Allow("a@b.com"))
	})
}
