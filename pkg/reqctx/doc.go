// Package reqctx is the single home for request-scoped data: authentication
// claims, per-request metadata, and trace context. All context keys are
// unexported; access goes through the typed helpers so handlers, middleware,
// and services never collide on raw context values.
//
// Middleware sets RequestMeta for every request. Claims are present only when
// a valid token accompanied the request. TraceInfo is set when tracing is
// enabled.
package reqctx
