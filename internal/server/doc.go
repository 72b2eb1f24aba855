// Package server wires configuration, the command registry, middleware and
// transports into a runnable HTTP server.
//
// Middleware order, outermost first: recovery, request id, request log,
// tracing, metrics, CORS, rate limit, compression.
//
// Example Usage:
//
//	srv, err := server.NewServer(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	defer srv.Close()
//	return srv.Run(ctx)
package server
