package main

import (
	"io"
	"net/http"
	"strings"
)

type proxyResponseWriter struct {
	w http.ResponseWriter
}

func (w *proxyResponseWriter) WriteOK(mimeType string, reader io.Reader) {
	w.w.Header().Set("Content-Type", mimeType)
	w.w.WriteHeader(http.StatusOK)
	io.Copy(w.w, reader)
}

func (w *proxyResponseWriter) WriteError(code int, message string) {
	w.w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.w.WriteHeader(code)
	io.Copy(w.w, strings.NewReader(message))
}

// WriteErrorWithFallback answers with code and the unprocessed source as the
// body. The failure reason goes to the X-Imload-Error header.
func (w *proxyResponseWriter) WriteErrorWithFallback(code int, message string, fallbackImageReader io.ReadCloser) {
	defer fallbackImageReader.Close()

	w.w.Header().Set("X-Imload-Error", message)
	w.w.WriteHeader(code)
	io.Copy(w.w, fallbackImageReader)
}
