package power

import "github.com/sweeney/ayaled/internal/logic"

// FakeBattery is a test double that returns scripted readings.
type FakeBattery struct {
	// Samples contains scripted readings. Each call to Read consumes the
	// next one; the last is repeated once exhausted.
	Samples []logic.Reading

	index int

	// ReadError, if set, is returned alongside a zero reading.
	ReadError error
}

// NewFakeBattery creates a FakeBattery with the given samples.
func NewFakeBattery(samples ...logic.Reading) *FakeBattery {
	return &FakeBattery{Samples: samples}
}

// Read returns the next scripted sample.
func (f *FakeBattery) Read() (logic.Reading, error) {
	if f.ReadError != nil {
		return logic.Reading{Status: logic.StatusOther}, f.ReadError
	}
	if len(f.Samples) == 0 {
		return logic.Reading{Status: logic.StatusOther}, nil
	}
	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return s, nil
}

// FakeBrightness returns a fixed ratio.
type FakeBrightness float64

// Ratio returns the fixed ratio.
func (f FakeBrightness) Ratio() float64 {
	return float64(f)
}
