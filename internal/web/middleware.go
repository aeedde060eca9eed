package web

import (
	"mime"
	"net/http"
	"strings"
)

// methodParam names the query or form field that overrides a POST's method.
const methodParam = "_method"

// MethodOverride lets HTML forms issue PUT, PATCH and DELETE by posting
// with _method in the query string or the urlencoded body.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			m := r.URL.Query().Get(methodParam)
			if m == "" && isURLEncoded(r) {
				m = r.PostFormValue(methodParam)
			}

			switch strings.ToUpper(m) {
			case http.MethodPut, http.MethodPatch, http.MethodDelete:
				r.Method = strings.ToUpper(m)
			}
		}
		next.ServeHTTP(w, r)
	})
}

func isURLEncoded(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/x-www-form-urlencoded"
}
