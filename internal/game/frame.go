package game

import "time"

// FrameContext carries the timing of one loop iteration to every phase.
type FrameContext struct {
	Index int           // 1-based frame number
	Start time.Time     // when the frame began
	Delta time.Duration // time since the previous frame began, clamped
}

// Seconds returns Delta in seconds.
func (fc FrameContext) Seconds() float64 {
	return fc.Delta.Seconds()
}

// FPS returns the frame rate implied by Delta; +Inf on the first frame.
func (fc FrameContext) FPS() float64 {
	s := fc.Seconds()
	if s <= 0 {
		return posInf
	}
	return 1 / s
}

// Clock is the loop's time source.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// nextFrame builds the context of the frame starting at now.
func nextFrame(prev FrameContext, now time.Time, maxDelta time.Duration) FrameContext {
	fc := FrameContext{Index: prev.Index + 1, Start: now}
	if prev.Index > 0 {
		fc.Delta = now.Sub(prev.Start)
		if fc.Delta < 0 {
			fc.Delta = 0
		}
		if maxDelta > 0 && fc.Delta > maxDelta {
			fc.Delta = maxDelta
		}
	}
	return fc
}
