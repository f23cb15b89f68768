package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

func logRequest(req *http.Request, status int, duration time.Duration) {
	log.Infof("%s -- %s -- %s -- %d -- %s", req.RemoteAddr, req.Method, req.URL.Path, status, duration)
}

// logAndReturnError writes a plain-text error response and logs consoleStr, or the
// response text when consoleStr is empty.
func logAndReturnError(w http.ResponseWriter, httpResponseStr string, code int, consoleStr ...string) {
	if len(consoleStr) > 0 {
		log.Errorln(consoleStr[0])
	} else {
		log.Errorln(httpResponseStr)
	}
	http.Error(w, httpResponseStr, code)
}

// requestLogger logs every request once it has been served.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		logRequest(r, status, time.Since(start))
	})
}
