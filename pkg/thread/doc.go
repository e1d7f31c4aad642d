// Package thread provides the execution thread used by pool workers.
//
// A Thread is one goroutine plus the bookkeeping a pool needs to manage it:
// a name, a started flag, a done channel and an interrupt status.
//
// # Interrupts
//
//	              Interrupt()
//	ctx(live) ───────────────────▶ ctx(cancelled), interrupted=true
//	    ▲                                   │
//	    │        ClearInterrupt()           │
//	    └───────────────────────────────────┘
//	         fresh ctx, interrupted=false
//
// Blocking code running on the thread passes Context() to queue and channel
// operations, so an interrupt unblocks it. Interrupts are cooperative: work
// that never looks at its context keeps running.
//
// # Factories
//
// Factory is the thread-creation policy plugged into an executor. The
// default factory names threads "pool-N-thread-M"; NamedFactory uses a
// caller supplied prefix. A factory may return nil to refuse creation.
package thread
