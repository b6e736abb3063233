package router

import (
	"net/http"
)

// middlewareRecoverer is the last line of defence for panics raised by
// middleware. Handler panics are turned into errors by Router.call.
//
//nolint:contextcheck // recovery must not depend on the request context
func middlewareRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			//nolint:err113,errorlint // this must compare directly
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			logPanic(r.Context(), rvr)
			writeJSON(w, internalErrorResponse, http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
