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

type StudentHandler struct {
	schoolStore SchoolStore
	listTmpl    *template.Template
	addTmpl     *template.Template
	editTmpl    *template.Template
}

func NewStudentHandler(schoolStore SchoolStore, tmplDir string) *StudentHandler {
	return &StudentHandler{
		schoolStore: schoolStore,
		listTmpl:    parseTemplate(tmplDir, "students.html"),
		addTmpl:     parseTemplate(tmplDir, "add_student.html"),
		editTmpl:    parseTemplate(tmplDir, "edit_student.html"),
	}
}

// ListStudents - директор видит всех своих учеников, учитель только
// закрепленных за ним
func (h *StudentHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.Identity(r)

	students := make([]entity.StudentWithTeacher, 0)

	sc, ok, err := scopeFor(h.schoolStore, ident)
	if err != nil {
		serverError(w, err)
		return
	}
	if ok {
		if sc.TeacherID != nil {
			students, err = h.schoolStore.ListStudentsByTeacher(sc.PrincipalID, *sc.TeacherID)
		} else {
			students, err = h.schoolStore.ListStudents(sc.PrincipalID)
		}
		if err != nil {
			serverError(w, err)
			return
		}
	}

	data := pageData(w, r)
	data["Students"] = students
	h.listTmpl.Execute(w, data)
}

func (h *StudentHandler) AddStudentPage(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.Identity(r)

	teachers, err := h.schoolStore.ListTeachersByName(ident.UserID)
	if err != nil {
		serverError(w, err)
		return
	}

	data := pageData(w, r)
	data["Teachers"] = teachers
	h.addTmpl.Execute(w, data)
}

func (h *StudentHandler) AddStudent(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.Identity(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Ошибка обработки формы", http.StatusBadRequest)
		return
	}

	form := studentForm{
		Name:  strings.TrimSpace(r.FormValue("name")),
		Grade: strings.TrimSpace(r.FormValue("grade")),
	}

	if err := validate.Struct(form); err != nil {
		session.Flash(w, r, "danger", "Имя ученика обязательно.")
		http.Redirect(w, r, "/add_student", http.StatusSeeOther)
		return
	}

	// teacher_id сохраняем как пришел: форма предлагает только
	// учителей этого директора
	_, err := h.schoolStore.CreateStudent(ident.UserID, form.Name, form.Grade, formTeacherID(r.FormValue("teacher_id")))
	if err != nil {
		serverError(w, err)
		return
	}

	session.Flash(w, r, "success", "Ученик добавлен.")
	http.Redirect(w, r, "/students", http.StatusSeeOther)
}

func (h *StudentHandler) EditStudentPage(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.Identity(r)

	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	student, err := h.schoolStore.GetStudent(id, ident.UserID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			session.Flash(w, r, "danger", "Ученик не найден.")
			http.Redirect(w, r, "/students", http.StatusSeeOther)
			return
		}
		serverError(w, err)
		return
	}

	teachers, err := h.schoolStore.ListTeachersByName(ident.UserID)
	if err != nil {
		serverError(w, err)
		return
	}

	data := pageData(w, r)
	data["Student"] = student
	data["Teachers"] = teachers
	h.editTmpl.Execute(w, data)
}

func (h *StudentHandler) EditStudent(w http.ResponseWriter, r *http.Request) {
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

	form := studentForm{
		Name:  strings.TrimSpace(r.FormValue("name")),
		Grade: strings.TrimSpace(r.FormValue("grade")),
	}

	if err := validate.Struct(form); err != nil {
		session.Flash(w, r, "danger", "Имя ученика обязательно.")
		http.Redirect(w, r, fmt.Sprintf("/edit_student/%d", id), http.StatusSeeOther)
		return
	}

	// Чужой id затронет ноль строк, для вызывающего это неотличимо
	// от успеха
	err := h.schoolStore.UpdateStudent(id, ident.UserID, form.Name, form.Grade, formTeacherID(r.FormValue("teacher_id")))
	if err != nil {
		serverError(w, err)
		return
	}

	session.Flash(w, r, "success", "Данные ученика обновлены.")
	http.Redirect(w, r, "/students", http.StatusSeeOther)
}

func (h *StudentHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.Identity(r)

	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := h.schoolStore.DeleteStudent(id, ident.UserID); err != nil {
		serverError(w, err)
		return
	}

	session.Flash(w, r, "success", "Ученик удален.")
	http.Redirect(w, r, "/students", http.StatusSeeOther)
}
