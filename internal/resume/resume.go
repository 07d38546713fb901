// Package resume detects system resume from the kernel log.
package resume

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	"github.com/euank/go-kmsg-parser/kmsgparser"
)

// Marker is logged by the kernel when a suspend cycle ends.
const Marker = "PM: suspend exit"

// ErrStreamClosed is returned by Run when the kernel log stream ends.
var ErrStreamClosed = errors.New("kernel log stream closed")

// Flag is set on resume and consumed by the polling loop.
type Flag struct {
	b atomic.Bool
}

// Set marks that a resume happened.
func (f *Flag) Set() {
	f.b.Store(true)
}

// Consume reports whether a resume happened since the last call and clears
// the flag.
func (f *Flag) Consume() bool {
	return f.b.Swap(false)
}

// Watch sets flag for each message containing Marker. It returns when msgs
// is closed.
func Watch(msgs <-chan kmsgparser.Message, flag *Flag) {
	for m := range msgs {
		if strings.Contains(m.Message, Marker) {
			log.Printf("resume: detected %q (seq %d)", Marker, m.SequenceNumber)
			flag.Set()
		}
	}
}

// Run watches /dev/kmsg for new records until the stream ends. It blocks for
// the life of the process.
func Run(flag *Flag) error {
	p, err := kmsgparser.NewParser()
	if err != nil {
		return fmt.Errorf("open kernel log: %w", err)
	}
	return run(p, flag)
}

func run(p kmsgparser.Parser, flag *Flag) error {
	defer p.Close()
	p.SetLogger(logger{})
	// Only records written after startup matter.
	if err := p.SeekEnd(); err != nil {
		return fmt.Errorf("seek kernel log: %w", err)
	}
	Watch(p.Parse(), flag)
	return ErrStreamClosed
}

// logger routes parser diagnostics to the standard logger.
type logger struct{}

func (logger) Infof(format string, args ...interface{}) {
	log.Printf("resume: "+format, args...)
}

func (logger) Warningf(format string, args ...interface{}) {
	log.Printf("resume: warning: "+format, args...)
}

func (logger) Errorf(format string, args ...interface{}) {
	log.Printf("resume: error: "+format, args...)
}
