// Package middleware provides HTTP middleware for the dev stub server.
//
// Middleware components are plain func(http.Handler) http.Handler values
// composed with Chain:
//
//	handler := middleware.Chain(mux,
//		middleware.Recovery,
//		middleware.RequestID,
//		middleware.Logger,
//		middleware.CORS(origins),
//		middleware.Compress,
//	)
//
// RequestID stores the request id in the context; handlers retrieve it with
// GetRequestID(ctx).
package middleware
