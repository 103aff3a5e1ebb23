package controllers

import (
	"net/http"

	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

const (
	corsAllowOrigin  = "*"
	corsAllowHeaders = "authorization, x-client-info, apikey, content-type"
	corsAllowMethods = "POST, OPTIONS"
)

// CORS adds the browser headers to every response and answers preflight requests
// directly with 200 "ok".
func CORS() khttp.FilterFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", corsAllowOrigin)
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("ok"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Preflight is registered for OPTIONS routes so the router matches them; the CORS
// filter answers before it runs.
func Preflight(ctx khttp.Context) error {
	return ctx.String(http.StatusOK, "ok")
}
