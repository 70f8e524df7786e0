package web

import (
	"log"
	"net/http"
	"time"

	huma "github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/sant0-9/cvgen/internal/profile"
)

// Defaults fill in request fields the user did not choose
type Defaults struct {
	Model       string
	Temperature float64
}

// NewHandler builds the router: the HTML form at / and the JSON API
// under /v1.
func NewHandler(gen *profile.Generator, d Defaults) (http.Handler, huma.API, error) {
	router := http.NewServeMux()

	config := huma.DefaultConfig("CV Profile Generator API", "1.0.0")
	api := humago.New(router, config)

	if err := RegisterProfileRoutes(api, gen, d); err != nil {
		return nil, nil, err
	}

	form, err := newFormHandler(gen, d)
	if err != nil {
		return nil, nil, err
	}
	router.HandleFunc("GET /{$}", form.show)
	router.HandleFunc("POST /{$}", form.submit)

	return logRequests(router), api, nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[Web] %s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}
