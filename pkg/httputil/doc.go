// Package httputil provides HTTP utilities for standardized request/response handling.
//
// # Response Helpers
//
//	httputil.WriteSuccess(w, data)
//	httputil.WriteCreated(w, resource)
//	httputil.WriteStoreError(w, err) // maps storage errors to status codes
//
// # Request Parsing
//
//	var req api.Article
//	if !httputil.ParseJSONOrError(w, r, &req) {
//		return // Error response already written
//	}
//	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
//
// # Related Packages
//
//   - pkg/middleware: Authentication, request ID, and logging middleware
package httputil
