package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFake_AdvanceFiresDueTimersInOrder(t *testing.T) {
	fc := NewFake(time.Unix(0, 0))
	var order []string

	fc.AfterFunc(300*time.Millisecond, func() { order = append(order, "b") })
	fc.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	fc.AfterFunc(time.Second, func() { order = append(order, "c") })

	fc.Advance(500 * time.Millisecond)

	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 1, fc.Pending())
	assert.Equal(t, time.Unix(0, 0).Add(500*time.Millisecond), fc.Now())
}

func TestFake_StopPreventsFiring(t *testing.T) {
	fc := NewFake(time.Unix(0, 0))
	called := false

	timer := fc.AfterFunc(time.Second, func() { called = true })
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	fc.Advance(2 * time.Second)

	assert.False(t, called)
	assert.Equal(t, 0, fc.Pending())
}

func TestFake_StopAfterFireReturnsFalse(t *testing.T) {
	fc := NewFake(time.Unix(0, 0))
	timer := fc.AfterFunc(time.Millisecond, func() {})

	fc.Advance(time.Millisecond)

	assert.False(t, timer.Stop())
}

func TestFake_CallbackSchedulesWithinWindow(t *testing.T) {
	fc := NewFake(time.Unix(0, 0))
	count := 0

	fc.AfterFunc(100*time.Millisecond, func() {
		count++
		fc.AfterFunc(100*time.Millisecond, func() { count++ })
	})

	fc.Advance(250 * time.Millisecond)

	assert.Equal(t, 2, count)
}
