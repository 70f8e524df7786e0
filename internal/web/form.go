package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/sant0-9/cvgen/internal/config"
	"github.com/sant0-9/cvgen/internal/profile"
	"github.com/sant0-9/cvgen/internal/prompts"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	defaultRole  = "Software Engineer"
	maxFormBytes = 16 << 10
)

type formField struct {
	Name      string
	Label     string
	Value     string
	MaxLength int
}

type pageData struct {
	Role       formField
	Highlights []formField
	Models     []config.ModelInfo
	Model      string
	Profile    string
	Error      string
	RequestID  string
}

type formHandler struct {
	gen      *profile.Generator
	defaults Defaults
	page     *template.Template
}

func newFormHandler(gen *profile.Generator, d Defaults) (*formHandler, error) {
	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse form template: %w", err)
	}
	return &formHandler{gen: gen, defaults: d, page: page}, nil
}

func (h *formHandler) newPage() *pageData {
	data := &pageData{
		Role: formField{
			Name:      "role",
			Label:     "Role",
			Value:     defaultRole,
			MaxLength: profile.MaxRoleLength,
		},
		Models: config.Models,
		Model:  h.defaults.Model,
	}
	for n := 0; n < prompts.MaxHighlights; n++ {
		data.Highlights = append(data.Highlights, formField{
			Name:      fmt.Sprintf("highlight%d", n+1),
			Label:     fmt.Sprintf("Highlight #%d (experience / skill / ambition / etc.)", n+1),
			MaxLength: profile.MaxHighlightLength,
		})
	}
	return data
}

func (h *formHandler) show(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, h.newPage())
}

func (h *formHandler) submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	data := h.newPage()
	data.Role.Value = r.PostFormValue(data.Role.Name)
	highlights := make([]string, len(data.Highlights))
	for i := range data.Highlights {
		data.Highlights[i].Value = r.PostFormValue(data.Highlights[i].Name)
		highlights[i] = data.Highlights[i].Value
	}
	if m := r.PostFormValue("model"); m != "" {
		data.Model = m
	}

	res, err := h.gen.Generate(r.Context(), profile.Request{
		Role:        data.Role.Value,
		Highlights:  highlights,
		Model:       data.Model,
		Temperature: h.defaults.Temperature,
	})
	if err != nil {
		data.Error = userMessage(err)
		h.render(w, statusFor(err), data)
		return
	}

	data.Profile = res.Profile
	data.RequestID = res.RequestID
	h.render(w, http.StatusOK, data)
}

func (h *formHandler) render(w http.ResponseWriter, status int, data *pageData) {
	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		log.Printf("[Web] render form: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
