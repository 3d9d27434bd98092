package handler

import (
	"html/template"
	"net/http"
	"strings"

	"schooladmin/internal/entity"
	"schooladmin/internal/middleware"
	"schooladmin/internal/session"
)

type SubjectHandler struct {
	schoolStore SchoolStore
	listTmpl    *template.Template
	addTmpl     *template.Template
}

func NewSubjectHandler(schoolStore SchoolStore, tmplDir string) *SubjectHandler {
	return &SubjectHandler{
		schoolStore: schoolStore,
		listTmpl:    parseTemplate(tmplDir, "subjects.html"),
		addTmpl:     parseTemplate(tmplDir, "add_subject.html"),
	}
}

// ListSubjects - учитель видит предметы своего директора
func (h *SubjectHandler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.Identity(r)

	subjects := make([]entity.Subject, 0)

	sc, ok, err := scopeFor(h.schoolStore, ident)
	if err != nil {
		serverError(w, err)
		return
	}
	if ok {
		subjects, err = h.schoolStore.ListSubjects(sc.PrincipalID)
		if err != nil {
			serverError(w, err)
			return
		}
	}

	data := pageData(w, r)
	data["Subjects"] = subjects
	h.listTmpl.Execute(w, data)
}

func (h *SubjectHandler) AddSubjectPage(w http.ResponseWriter, r *http.Request) {
	h.addTmpl.Execute(w, pageData(w, r))
}

func (h *SubjectHandler) AddSubject(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.Identity(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Ошибка обработки формы", http.StatusBadRequest)
		return
	}

	form := subjectForm{Name: strings.TrimSpace(r.FormValue("name"))}

	if err := validate.Struct(form); err != nil {
		session.Flash(w, r, "danger", "Название предмета обязательно.")
		http.Redirect(w, r, "/add_subject", http.StatusSeeOther)
		return
	}

	if _, err := h.schoolStore.CreateSubject(ident.UserID, form.Name); err != nil {
		serverError(w, err)
		return
	}

	session.Flash(w, r, "success", "Предмет добавлен.")
	http.Redirect(w, r, "/subjects", http.StatusSeeOther)
}

func (h *SubjectHandler) DeleteSubject(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.Identity(r)

	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := h.schoolStore.DeleteSubject(id, ident.UserID); err != nil {
		serverError(w, err)
		return
	}

	session.Flash(w, r, "success", "Предмет удален.")
	http.Redirect(w, r, "/subjects", http.StatusSeeOther)
}
