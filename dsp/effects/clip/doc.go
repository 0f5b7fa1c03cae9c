// Package clip implements a hard clipper and a hard clipper with linear
// fold-back as per-sample transfer functions, plus a block engine that
// drives them from a lock-free parameter store.
//
// Two engine kinds exist:
//   - KindSimple: symmetric hard clip with parameters threshold and gain.
//     The effective clip point is threshold/3.
//   - KindFolding: asymmetric hard clip (threshold, lower_threshold) whose
//     overshoot is fed back with weight fold, then scaled by gain.
//
// The engine reads a parameter snapshot once per block and applies the same
// memoryless transform to every sample of every channel. Processing never
// locks or allocates, so it is safe on a real-time audio callback while
// another goroutine changes parameters.
package clip
