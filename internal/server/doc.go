// Package server provides the admin HTTP server of taskpool.
//
// # Architecture Overview
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                         HTTP Server                           │
//	├───────────────────────────────────────────────────────────────┤
//	│  Production Mode ("prod")        Development Mode ("dev")     │
//	│  ┌─────────────────────┐         ┌─────────────────────┐      │
//	│  │ HTTP :8000          │         │ HTTP :8000          │      │
//	│  │ Gin release mode    │         │ Gin debug mode      │      │
//	│  └─────────────────────┘         └─────────────────────┘      │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Middleware Stack                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  ginzap.Ginzap (request logging, "http" logger)         │  │
//	│  │  ginzap.RecoveryWithZap (panic recovery with stack)     │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	├───────────────────────────────────────────────────────────────┤
//	│  Router (/api/v1)                 /metrics (optional)         │
//	│  ┌──────────────────────────┐     ┌────────────────────────┐  │
//	│  │ Handlers (via callback)  │     │ promhttp.HandlerFor    │  │
//	│  └──────────────────────────┘     └────────────────────────┘  │
//	└───────────────────────────────────────────────────────────────┘
//
// Unknown routes answer 404 with a JSON error body.
//
// # Server Lifecycle
//
//	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
//	    v1.RegisterHandlers(router, handler)
//	}, server.WithMetrics(registry))
//	if err != nil {
//	    return err
//	}
//
//	go func() {
//	    if err := srv.Start(ctx); err != nil {
//	        zap.S().Errorw("server error", "error", err)
//	    }
//	}()
//
//	<-ctx.Done()
//	srv.Stop(shutdownCtx)
//
// Start returns nil after a graceful Stop. Stop waits for in-flight requests
// until its context expires.
package server
