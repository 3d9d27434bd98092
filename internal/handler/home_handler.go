package handler

import (
	"html/template"
	"net/http"
)

type HomeHandler struct {
	tmpl *template.Template
}

func NewHomeHandler(tmplDir string) *HomeHandler {
	return &HomeHandler{tmpl: parseTemplate(tmplDir, "home.html")}
}

func (h *HomeHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	h.tmpl.Execute(w, pageData(w, r))
}
