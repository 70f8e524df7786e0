package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func postForm(h http.Handler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestFormShow(t *testing.T) {
	h := newTestHandler(t, &upstream{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "CV Profile Generator")
	assert.Contains(t, body, `value="Software Engineer" maxlength="30"`)
	for _, n := range []string{"1", "2", "3", "4"} {
		assert.Contains(t, body, `name="highlight`+n+`"`)
		assert.Contains(t, body, "Highlight #"+n+" (experience / skill / ambition / etc.)")
	}
	assert.Contains(t, body, `maxlength="60"`)
	assert.Contains(t, body, `<option value="jumbo" selected>`)
	assert.Contains(t, body, "Generate")
}

func TestFormSubmit(t *testing.T) {
	u := &upstream{body: `{"completions":[{"data":{"text":" I am a <logical> engineer. "}}]}`}
	h := newTestHandler(t, u)

	w := postForm(h, url.Values{
		"role":       {"Software Engineer"},
		"highlight1": {"Logical mind"},
		"highlight3": {"Eager to learn"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "I am a &lt;logical&gt; engineer.")
	assert.Contains(t, body, `value="Logical mind"`)
	assert.Contains(t, body, `value="Eager to learn"`)

	assert.Equal(t, 1, u.hits)
	assert.Equal(t, "/j1-jumbo/complete", u.path)
	assert.Equal(t, 0.5, u.req["temperature"])
	prompt, _ := u.req["prompt"].(string)
	assert.True(t, strings.HasSuffix(prompt, "features:\n1. Logical mind\n3. Eager to learn\n\nProfile:"))
}

func TestFormSubmitEmptyProfile(t *testing.T) {
	u := &upstream{body: `{"completions":[{"data":{"text":"  "}}]}`}
	h := newTestHandler(t, u)

	w := postForm(h, url.Values{"role": {"Chef"}})

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `id="profile"`)
	assert.Contains(t, body, "(the model returned an empty profile)")
	assert.NotContains(t, body, `class="box error"`)
}

func TestFormSubmitSelectedModel(t *testing.T) {
	u := &upstream{body: `{"completions":[{"data":{"text":"ok"}}]}`}
	h := newTestHandler(t, u)

	w := postForm(h, url.Values{"role": {"Chef"}, "model": {"large"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/j1-large/complete", u.path)
	assert.Contains(t, w.Body.String(), `<option value="large" selected>`)
}

func TestFormSubmitErrors(t *testing.T) {
	tests := []struct {
		name       string
		upstream   *upstream
		values     url.Values
		wantStatus int
		wantText   string
		wantHits   int
	}{
		{
			name:       "upstream failure",
			upstream:   &upstream{status: http.StatusInternalServerError},
			values:     url.Values{"role": {"Chef"}},
			wantStatus: http.StatusBadGateway,
			wantText:   "Request Failed: the completion API answered with status 500",
			wantHits:   1,
		},
		{
			name:       "malformed response",
			upstream:   &upstream{body: `{}`},
			values:     url.Values{"role": {"Chef"}},
			wantStatus: http.StatusBadGateway,
			wantText:   "Malformed Response",
			wantHits:   1,
		},
		{
			name:       "invalid model",
			upstream:   &upstream{},
			values:     url.Values{"role": {"Chef"}, "model": {"banana"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantText:   "Invalid model",
		},
		{
			name:       "role too long",
			upstream:   &upstream{},
			values:     url.Values{"role": {strings.Repeat("x", 31)}},
			wantStatus: http.StatusUnprocessableEntity,
			wantText:   "Invalid input: role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postForm(newTestHandler(t, tt.upstream), tt.values)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), `class="box error"`)
			assert.Contains(t, w.Body.String(), tt.wantText)
			assert.Equal(t, tt.wantHits, tt.upstream.hits)
		})
	}
}

func TestUnknownPath(t *testing.T) {
	h := newTestHandler(t, &upstream{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
