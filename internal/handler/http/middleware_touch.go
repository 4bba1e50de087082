package http

import "net/http"

// withTouch counts every request as user activity for the inactivity lock.
func (h *Handler) withTouch(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.services.Lock.Touch()
		next.ServeHTTP(w, r)
	})
}
