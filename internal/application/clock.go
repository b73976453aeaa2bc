package application

import "time"

// Clock supaya waktu bisa di-inject saat test; analysis rows dan audit
// entries dua-duanya pakai ini.
type Clock interface {
	Now() time.Time
}

// SystemClock adalah default untuk production
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
