// Package ws implements the WebSocket hub for the dependency-health service.
//
// Hub manages a set of connected clients and broadcasts summaries of the
// currently retained analysis reports to all of them on a configurable
// interval (default 5s in production).
//
// New(store, interval) creates a Hub.
// Hub.Run(ctx) starts the broadcast ticker — blocks until ctx is cancelled,
// then closes all active connections.
// Hub.ServeHTTP upgrades an HTTP connection to WebSocket, sends the current
// report list immediately on connect, then streams updates on each tick.
//
// Message format sent to clients:
//
//	{
//	  "event": "reports",
//	  "data":  {
//	    "reports":      [ /* same schema as GET /api/v1/reports */ ],
//	    "generated_at": "2026-01-02T15:04:05Z"
//	  }
//	}
//
// The upgrader accepts all origins. Apply CORS restrictions at the reverse
// proxy level. WebSocket endpoint is mounted at /ws/stream by the server.
package ws
