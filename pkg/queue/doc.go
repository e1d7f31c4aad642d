// Package queue provides the blocking FIFO queues that feed pool workers.
//
// # Contract
//
// Producers call Offer, which never blocks and reports whether the element
// was accepted. Consumers call Take (wait forever) or PollTimeout (wait up to
// a bound); both return an InterruptedError when their context is cancelled.
//
// # Implementations
//
//	┌─────────────┬──────────┬──────────────────────────────────────────┐
//	│ Type        │ Capacity │ Offer succeeds when                      │
//	├─────────────┼──────────┼──────────────────────────────────────────┤
//	│ FIFO        │ n > 0    │ fewer than n elements are queued         │
//	│ FIFO        │ 0        │ always (unbounded)                       │
//	│ Synchronous │ none     │ a consumer is blocked in Take/PollTimeout│
//	└─────────────┴──────────┴──────────────────────────────────────────┘
//
// FIFO keeps its elements in a mutex guarded slice. Waiting consumers
// share a one slot notEmpty channel; a consumer that dequeues and leaves
// elements behind re-arms it so wake-ups are never lost.
//
// Remove compares by identity. Elements whose dynamic type is not
// comparable, such as plain funcs, can never be removed individually.
package queue
