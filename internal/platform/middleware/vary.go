package middleware

import "net/http"

// Vary adds Accept to the Vary header, since responses are negotiated between JSON and CBOR.
// Origin is added by the CORS middleware.
func Vary() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Accept")
			next.ServeHTTP(w, r)
		})
	}
}
