package api

import (
	"log"
	"net/http"
	"runtime/debug"
)

// recoverer is the catch-all for handler panics. The caller only ever sees
// a generic 500 body; the panic value is logged server-side, with the stack
// included outside production.
func recoverer(production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.Printf("[api] panic serving %s %s: %v", r.Method, r.URL.Path, rec)
					if !production {
						log.Printf("[api] stack:\n%s", debug.Stack())
					}
					writeError(w, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
