// SPDX-License-Identifier: EPL-2.0

// Package pipeline orchestrates one processing run: validate the decoded
// input, clone it, optionally shift its pitch, optionally remove vocals, and
// encode the result as a 16-bit PCM WAV Artifact.
//
// A Pipeline allows a single run at a time. Stages execute sequentially on
// the caller's goroutine and progress callbacks fire synchronously before
// Process returns. Runs cannot be cancelled.
//
// Pitch-shift failures are not fatal: the run continues with the unshifted
// signal. Invalid input and encoding failures end the run with an
// *InvalidInputError or *EncodeError; UserMessage renders either as a short
// sentence.
//
// Session adds the load/process/download/reset cycle of an interactive
// front-end on top of a Pipeline and a decoder registry.
package pipeline
