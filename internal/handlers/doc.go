// Package handlers implements the HTTP API layer for taskpool.
//
// Handlers delegate to the services layer and only deal with request
// validation, response formatting and HTTP semantics.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Request validation                                           │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Services Layer                             │
//	│  PoolService │ LoadService                                      │
//	└─────────────────────────────────────────────────────────────────┘
//
// The Handler implements v1.ServerInterface and is registered with:
//
//	v1.RegisterHandlers(router, handler)
//
// # API Endpoints
//
// Pool Endpoints (pool.go):
//
//	┌────────┬────────────────┬──────────────────────────────────────────┐
//	│ Method │ Endpoint       │ Description                              │
//	├────────┼────────────────┼──────────────────────────────────────────┤
//	│ GET    │ /pool          │ Pool status (phase, sizes, counters)     │
//	│ PATCH  │ /pool          │ Resize, change keep-alive and time-out   │
//	│ POST   │ /pool/purge    │ Drop cancelled tasks from the queue      │
//	│ POST   │ /pool/shutdown │ Shut down, ?now=true drains the queue    │
//	└────────┴────────────────┴──────────────────────────────────────────┘
//
// Task Endpoints (tasks.go):
//
//	┌────────┬────────────────┬──────────────────────────────────────────┐
//	│ Method │ Endpoint       │ Description                              │
//	├────────┼────────────────┼──────────────────────────────────────────┤
//	│ POST   │ /tasks         │ Submit a batch of synthetic tasks        │
//	│ GET    │ /tasks/{batch} │ Progress of a submitted batch            │
//	└────────┴────────────────┴──────────────────────────────────────────┘
//
// # Pool Handler
//
// PATCH /pool - every field is optional, at least one is required:
//
//	{
//	    "corePoolSize": 8,
//	    "maximumPoolSize": 16,
//	    "keepAlive": "30s",
//	    "allowCoreThreadTimeOut": true
//	}
//
// Errors:
//   - 400 Bad Request: malformed body, bad duration, empty update, or a
//     setting the pool refuses (for example core above maximum)
//
// POST /pool/shutdown - responds 202 with the phase reached and the number of
// drained tasks:
//
//	{ "phase": "Stop", "drained": 12 }
//
// # Tasks Handler
//
// POST /tasks:
//
//	{ "count": 100, "duration": "250ms", "failEvery": 10 }
//
// Response: 202 Accepted
//
//	{ "batch": "5f0c...", "accepted": 100, "rejected": 0 }
//
// Errors:
//   - 400 Bad Request: count missing or out of range, bad duration
//   - 409 Conflict: the pool is shut down
//
// GET /tasks/{batch} returns pending, succeeded, failed and cancelled counts.
//
// Errors:
//   - 400 Bad Request: batch is not a uuid
//   - 404 Not Found: unknown or forgotten batch
//
// # Error Handling
//
// Every error response has the same shape:
//
//	{ "error": "error message" }
//
// HTTP Status Code Mapping:
//
//	┌─────────────────────────────┬────────┬──────────────────────────────┐
//	│ Error Type                  │ Status │ When                         │
//	├─────────────────────────────┼────────┼──────────────────────────────┤
//	│ Validation error            │ 400    │ Malformed body or params     │
//	│ IllegalArgumentError        │ 400    │ Pool refused a setting       │
//	│ Unknown batch               │ 404    │ Batch not tracked            │
//	│ IllegalStateError           │ 409    │ Pool already shut down       │
//	│ Internal error              │ 500    │ Unexpected service errors    │
//	└─────────────────────────────┴────────┴──────────────────────────────┘
package handlers
