package handler

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"schooladmin/internal/entity"
	"schooladmin/internal/middleware"
	"schooladmin/internal/session"
)

type TeacherHandler struct {
	schoolStore SchoolStore
	listTmpl    *template.Template
	addTmpl     *template.Template
	editTmpl    *template.Template
}

func NewTeacherHandler(schoolStore SchoolStore, tmplDir string) *TeacherHandler {
	return &TeacherHandler{
		schoolStore: schoolStore,
		listTmpl:    parseTemplate(tmplDir, "teachers.html"),
		addTmpl:     parseTemplate(tmplDir, "add_teacher.html"),
		editTmpl:    parseTemplate(tmplDir, "edit_teacher.html"),
	}
}

// ListTeachers - реестр видит только директор, остальным пустой список
func (h *TeacherHandler) ListTeachers(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.Identity(r)

	teachers := make([]entity.Teacher, 0)

	if ident.Role == entity.RolePrincipal {
		var err error
		teachers, err = h.schoolStore.ListTeachers(ident.UserID)
		if err != nil {
			serverError(w, err)
			return
		}
	}

	data := pageData(w, r)
	data["Teachers"] = teachers
	h.listTmpl.Execute(w, data)
}

func (h *TeacherHandler) AddTeacherPage(w http.ResponseWriter, r *http.Request) {
	h.addTmpl.Execute(w, pageData(w, r))
}

func (h *TeacherHandler) AddTeacher(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.Identity(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Ошибка обработки формы", http.StatusBadRequest)
		return
	}

	form := teacherForm{
		Name:  strings.TrimSpace(r.FormValue("name")),
		Email: strings.TrimSpace(r.FormValue("email")),
		Phone: strings.TrimSpace(r.FormValue("phone")),
	}

	if err := validate.Struct(form); err != nil {
		session.Flash(w, r, "danger", "Имя учителя обязательно.")
		http.Redirect(w, r, "/add_teacher", http.StatusSeeOther)
		return
	}

	_, err := h.schoolStore.CreateTeacher(ident.UserID, form.Name, form.Email, form.Phone)
	if err != nil {
		serverError(w, err)
		return
	}

	session.Flash(w, r, "success", "Учитель добавлен.")
	http.Redirect(w, r, "/teachers", http.StatusSeeOther)
}

func (h *TeacherHandler) EditTeacherPage(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.Identity(r)

	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	teacher, err := h.schoolStore.GetTeacher(id, ident.UserID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			session.Flash(w, r, "danger", "Учитель не найден.")
			http.Redirect(w, r, "/teachers", http.StatusSeeOther)
			return
		}
		serverError(w, err)
		return
	}

	data := pageData(w, r)
	data["Teacher"] = teacher
	h.editTmpl.Execute(w, data)
}

func (h *TeacherHandler) EditTeacher(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.Identity(r)

	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Ошибка обработки формы", http.StatusBadRequest)
		return
	}

	form := teacherForm{
		Name:  strings.TrimSpace(r.FormValue("name")),
		Email: strings.TrimSpace(r.FormValue("email")),
		Phone: strings.TrimSpace(r.FormValue("phone")),
	}

	if err := validate.Struct(form); err != nil {
		session.Flash(w, r, "danger", "Имя учителя обязательно.")
		http.Redirect(w, r, fmt.Sprintf("/edit_teacher/%d", id), http.StatusSeeOther)
		return
	}

	if err := h.schoolStore.UpdateTeacher(id, ident.UserID, form.Name, form.Email, form.Phone); err != nil {
		serverError(w, err)
		return
	}

	session.Flash(w, r, "success", "Данные учителя обновлены.")
	http.Redirect(w, r, "/teachers", http.StatusSeeOther)
}

func (h *TeacherHandler) DeleteTeacher(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.Identity(r)

	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := h.schoolStore.DeleteTeacher(id, ident.UserID); err != nil {
		serverError(w, err)
		return
	}

	session.Flash(w, r, "success", "Учитель удален.")
	http.Redirect(w, r, "/teachers", http.StatusSeeOther)
}
