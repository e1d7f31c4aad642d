// Package errors defines the error taxonomy shared by the executor, the
// future tasks and the admin surface.
//
// # Categories
//
//	┌────────────────────────┬──────────────────────────────────────────────┐
//	│ Type                   │ Raised when                                  │
//	├────────────────────────┼──────────────────────────────────────────────┤
//	│ RejectedExecutionError │ admission impossible (shut down / saturated) │
//	│ ExecutionError         │ Get on a task whose callable failed          │
//	│ CancellationError      │ Get on a cancelled task                      │
//	│ TimeoutError           │ timed Get / invoke deadline elapsed          │
//	│ InterruptedError       │ caller context cancelled while blocked       │
//	│ PanicError             │ a task or hook panicked (value + stack)      │
//	│ IllegalArgumentError   │ invalid pool sizing / keep-alive             │
//	│ IllegalStateError      │ thread started twice                         │
//	└────────────────────────┴──────────────────────────────────────────────┘
//
// Every type has a constructor (NewXxxError) returning error and a predicate
// (IsXxxError) that walks the wrap chain with errors.As:
//
//	v, err := task.Get(ctx)
//	if errors.IsExecutionError(err) {
//	    cause := stderrors.Unwrap(err)
//	}
package errors
