package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// ResendThrottle enforces a short in-process cooldown between verification
// emails for the same address, so the "resend" button cannot hammer SMTP.
type ResendThrottle struct {
	cache    *cache.Cache
	cooldown time.Duration
}

func NewResendThrottle(cooldown time.Duration) *ResendThrottle {
	c := cache.New(cooldown, 10*time.Minute)
	return &ResendThrottle{
		cache:    c,
		cooldown: cooldown,
	}
}

// Allow reports whether a code may be sent to the email now, and if so
// starts the cooldown window.
func (t *ResendThrottle) Allow(email string) bool {
	if _, found := t.cache.Get(email); found {
		return false
	}
	t.cache.Set(email, struct{}{}, t.cooldown)
	return true
}

func (t *ResendThrottle) Reset(email string) {
	t.cache.Delete(email)
}
