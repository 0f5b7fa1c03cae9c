package level

import (
	"math"
	"sync"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b, tol float64) bool {
	if math.IsInf(a, -1) && math.IsInf(b, -1) {
		return true
	}

	return math.Abs(a-b) <= tol
}

// generateSine creates exactly numCycles full cycles of a sine.
func generateSine(amplitude, freq, sampleRate float64, numCycles int) []float64 {
	samplesPerCycle := int(sampleRate / freq)
	out := make([]float64, samplesPerCycle*numCycles)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
	}

	return out
}

func TestCalculateDC(t *testing.T) {
	signal := []float32{0.5, 0.5, 0.5, 0.5}
	s := Calculate(signal)

	if s.Length != 4 {
		t.Errorf("Length: got %d, want 4", s.Length)
	}
	if !almostEqual(s.DC, 0.5, tolerance) || !almostEqual(s.RMS, 0.5, tolerance) || !almostEqual(s.Peak, 0.5, tolerance) {
		t.Errorf("got DC=%g RMS=%g Peak=%g, want 0.5 each", s.DC, s.RMS, s.Peak)
	}
	if !almostEqual(s.CrestFactor, 1, tolerance) {
		t.Errorf("CrestFactor: got %g, want 1", s.CrestFactor)
	}
	if s.ZeroCrossings != 0 {
		t.Errorf("ZeroCrossings: got %d, want 0", s.ZeroCrossings)
	}
}

func TestCalculateSine(t *testing.T) {
	signal := generateSine(1, 1000, 48000, 10)
	s := Calculate(signal)

	if !almostEqual(s.RMS, 1/math.Sqrt2, 1e-9) {
		t.Errorf("RMS: got %g, want %g", s.RMS, 1/math.Sqrt2)
	}
	if !almostEqual(s.DC, 0, 1e-12) {
		t.Errorf("DC: got %g, want 0", s.DC)
	}
	if !almostEqual(s.CrestFactor, math.Sqrt2, 1e-6) {
		t.Errorf("CrestFactor: got %g, want sqrt(2)", s.CrestFactor)
	}
	if math.Abs(s.CrestFactordB-3.0103) > 0.5 {
		t.Errorf("CrestFactordB: got %g, want ~3.01", s.CrestFactordB)
	}
}

func TestCalculateSquareClip(t *testing.T) {
	// A fully clipped square has crest factor 1.
	s := Calculate([]float64{0.5, -0.5, 0.5, -0.5})

	if !almostEqual(s.CrestFactor, 1, tolerance) {
		t.Errorf("CrestFactor: got %g, want 1", s.CrestFactor)
	}
	if s.ZeroCrossings != 3 {
		t.Errorf("ZeroCrossings: got %d, want 3", s.ZeroCrossings)
	}
}

func TestCalculateEmptyAndSilence(t *testing.T) {
	s := Calculate([]float32(nil))
	if s.Length != 0 || !math.IsInf(s.PeakdB, -1) || !math.IsInf(s.RMSdB, -1) {
		t.Errorf("empty stats = %+v", s)
	}

	s = Calculate(make([]float64, 16))
	if s.CrestFactor != 0 || !math.IsInf(s.PeakdB, -1) {
		t.Errorf("silence stats = %+v", s)
	}
}

func TestHelpersMatchCalculate(t *testing.T) {
	signal := generateSine(0.7, 500, 48000, 3)
	s := Calculate(signal)

	if !almostEqual(RMS(signal), s.RMS, tolerance) {
		t.Errorf("RMS() = %g, Calculate RMS = %g", RMS(signal), s.RMS)
	}
	if !almostEqual(Peak(signal), s.Peak, tolerance) {
		t.Errorf("Peak() = %g, Calculate Peak = %g", Peak(signal), s.Peak)
	}
	if RMS([]float32{}) != 0 || Peak([]float32{}) != 0 {
		t.Error("empty helpers should return 0")
	}
}

func TestRatioToDB(t *testing.T) {
	if !math.IsInf(RatioToDB(0), -1) || !math.IsInf(RatioToDB(-1), -1) {
		t.Fatal("non-positive ratio should map to -Inf")
	}
	if got := RatioToDB(10); math.Abs(got-20) > 0.5 {
		t.Fatalf("RatioToDB(10) = %g, want ~20", got)
	}
	if got := AmpToDB(-0.5); math.Abs(got+6.0206) > 0.5 {
		t.Fatalf("AmpToDB(-0.5) = %g, want ~-6.02", got)
	}
}

func TestMeterMatchesCalculate(t *testing.T) {
	signal := []float32{0.1, -0.4, 0.3, 0.9, -0.2, 0.0, -0.7, 0.5}

	m := NewMeter()
	m.Update(signal[:3])
	m.Update(signal[3:])

	want := Calculate(signal)
	got := m.Take()

	if got.Length != want.Length || got.ZeroCrossings != want.ZeroCrossings {
		t.Fatalf("meter = %+v, want %+v", got, want)
	}
	if !almostEqual(got.RMS, want.RMS, tolerance) || !almostEqual(got.DC, want.DC, tolerance) || got.Peak != want.Peak {
		t.Fatalf("meter = %+v, want %+v", got, want)
	}
}

func TestMeterTakeStartsNewWindow(t *testing.T) {
	m := NewMeter()
	m.Update([]float32{1, -1})

	if s := m.Take(); s.Peak != 1 {
		t.Fatalf("Take() peak = %g, want 1", s.Peak)
	}

	m.Update([]float32{0.25})
	if s := m.Take(); s.Length != 1 || s.Peak != 0.25 {
		t.Fatalf("after Take: %+v", s)
	}

	m.Update([]float32{0.5})
	m.Reset()
	if s := m.Take(); s.Length != 0 {
		t.Fatalf("after Reset: %+v", s)
	}
}

func TestMeterConcurrent(t *testing.T) {
	m := NewMeter()
	block := make([]float32, 64)
	for i := range block {
		block[i] = float32(i%3) - 1
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for range 500 {
			m.Update(block)
		}
	}()

	go func() {
		defer wg.Done()
		for range 500 {
			_ = m.Take()
		}
	}()

	wg.Wait()
}
