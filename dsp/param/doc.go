// Package param provides a fixed, ordered set of lock-free float32
// parameters for real-time processors.
//
// Every parameter lives in its own atomic cell, so the audio thread can read
// values while a control thread writes them without locks. There is no
// atomicity across parameters: a reader may see a new threshold together
// with an old gain within one block.
//
// Writes clamp to the parameter's floor and ceiling instead of failing, and
// every index-addressed accessor has a defined result for indices outside
// the set (zero value, empty string, or no-op).
package param
