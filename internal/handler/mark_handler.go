package handler

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"schooladmin/internal/entity"
	"schooladmin/internal/middleware"
	"schooladmin/internal/session"
)

type MarkHandler struct {
	schoolStore SchoolStore
	listTmpl    *template.Template
	addTmpl     *template.Template
	perStudTmpl *template.Template
}

func NewMarkHandler(schoolStore SchoolStore, tmplDir string) *MarkHandler {
	return &MarkHandler{
		schoolStore: schoolStore,
		listTmpl:    parseTemplate(tmplDir, "marks.html"),
		addTmpl:     parseTemplate(tmplDir, "add_marks.html"),
		perStudTmpl: parseTemplate(tmplDir, "student_marks.html"),
	}
}

func (h *MarkHandler) ListMarks(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.Identity(r)

	marks := make([]entity.MarkWithNames, 0)

	sc, ok, err := scopeFor(h.schoolStore, ident)
	if err != nil {
		serverError(w, err)
		return
	}
	if ok {
		marks, err = h.schoolStore.ListMarks(sc.PrincipalID)
		if err != nil {
			serverError(w, err)
			return
		}
	}

	data := pageData(w, r)
	data["Marks"] = marks
	h.listTmpl.Execute(w, data)
}

func (h *MarkHandler) AddMarksPage(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.Identity(r)

	students, err := h.schoolStore.ListStudentsByName(ident.UserID)
	if err != nil {
		serverError(w, err)
		return
	}
	subjects, err := h.schoolStore.ListSubjectsByName(ident.UserID)
	if err != nil {
		serverError(w, err)
		return
	}

	data := pageData(w, r)
	data["Students"] = students
	data["Subjects"] = subjects
	h.addTmpl.Execute(w, data)
}

// AddMarks разбирает поля marks_<id предмета>: пустые пропускает,
// нечисловые пишет нулем. Вставки идут по одной, без транзакции.
func (h *MarkHandler) AddMarks(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.Identity(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Ошибка обработки формы", http.StatusBadRequest)
		return
	}

	studentID, err := strconv.Atoi(r.FormValue("student_id"))
	if err != nil || studentID <= 0 {
		session.Flash(w, r, "danger", "Выберите ученика.")
		http.Redirect(w, r, "/add_marks", http.StatusSeeOther)
		return
	}

	subjects, err := h.schoolStore.ListSubjectsByName(ident.UserID)
	if err != nil {
		serverError(w, err)
		return
	}

	entries := make([]entity.MarkEntry, 0, len(subjects))
	for _, subject := range subjects {
		value, keep := parseMarkValue(r.FormValue(fmt.Sprintf("marks_%d", subject.ID)))
		if !keep {
			continue
		}
		entries = append(entries, entity.MarkEntry{SubjectID: subject.ID, Value: value})
	}

	if err := h.schoolStore.AddMarks(ident.UserID, studentID, entries); err != nil {
		serverError(w, err)
		return
	}

	session.Flash(w, r, "success", "Оценки сохранены.")
	http.Redirect(w, r, "/marks", http.StatusSeeOther)
}

// StudentMarks - оценки одного ученика, от новых к старым
func (h *MarkHandler) StudentMarks(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.Identity(r)

	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	sc, scopeOk, err := scopeFor(h.schoolStore, ident)
	if err != nil {
		serverError(w, err)
		return
	}
	if !scopeOk {
		session.Flash(w, r, "danger", "Ученик не найден.")
		http.Redirect(w, r, "/students", http.StatusSeeOther)
		return
	}

	student, err := h.schoolStore.GetStudent(id, sc.PrincipalID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			session.Flash(w, r, "danger", "Ученик не найден.")
			http.Redirect(w, r, "/students", http.StatusSeeOther)
			return
		}
		serverError(w, err)
		return
	}

	marks, err := h.schoolStore.ListStudentMarks(sc.PrincipalID, id)
	if err != nil {
		serverError(w, err)
		return
	}

	data := pageData(w, r)
	data["Student"] = student
	data["Marks"] = marks
	h.perStudTmpl.Execute(w, data)
}
