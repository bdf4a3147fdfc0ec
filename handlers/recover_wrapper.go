package handlers

import (
	"log"
	"net/http"
	"runtime"

	"vinyasaclub/utils"
)

// RecoverWrapper wraps an http.HandlerFunc with panic recovery
func RecoverWrapper(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				stack := make([]byte, 8*1024)
				stack = stack[:runtime.Stack(stack, false)]
				log.Printf("panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, stack)
				utils.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}()

		handler(w, r)
	}
}
