// Package signal turns SIGINT and SIGTERM into context cancellation for the
// taskbook CLI.
//
// Import rules:
//   - CAN import: std lib only
//   - MUST NOT import: internal packages
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
)

// ExitInterrupted is the conventional exit status after SIGINT.
const ExitInterrupted = 130

// Interrupt cancels its context on the first SIGINT or SIGTERM and records
// that it happened. A second signal is left to the default handler, so a
// stuck prompt can still be killed with another Ctrl+C.
type Interrupt struct {
	ctx    context.Context //nolint:containedctx // the handler owns this context's lifetime
	cancel context.CancelFunc
	sigs   chan os.Signal
	done   chan struct{}
	fired  atomic.Bool

	stopOnce sync.Once
}

// Watch starts listening for interrupts. Call Stop when done.
func Watch(parent context.Context) *Interrupt {
	ctx, cancel := context.WithCancel(parent)
	i := &Interrupt{
		ctx:    ctx,
		cancel: cancel,
		sigs:   make(chan os.Signal, 1),
		done:   make(chan struct{}),
	}
	signal.Notify(i.sigs, syscall.SIGINT, syscall.SIGTERM)
	go i.wait()
	return i
}

// Context is canceled on interrupt or Stop.
func (i *Interrupt) Context() context.Context {
	return i.ctx
}

// Fired reports whether an interrupt was received.
func (i *Interrupt) Fired() bool {
	return i.fired.Load()
}

// Stop releases the signal subscription and cancels the context. Safe to call
// more than once.
func (i *Interrupt) Stop() {
	i.stopOnce.Do(func() {
		signal.Stop(i.sigs)
		close(i.done)
		i.cancel()
	})
}

func (i *Interrupt) wait() {
	select {
	case <-i.sigs:
		i.trigger()
	case <-i.done:
	}
}

// trigger records the interrupt, cancels the context and hands further
// signals back to the runtime.
func (i *Interrupt) trigger() {
	if i.fired.CompareAndSwap(false, true) {
		signal.Stop(i.sigs)
		i.cancel()
	}
}
