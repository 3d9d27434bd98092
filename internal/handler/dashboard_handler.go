package handler

import (
	"html/template"
	"net/http"

	"schooladmin/internal/entity"
	"schooladmin/internal/middleware"
)

type DashboardHandler struct {
	schoolStore   SchoolStore
	principalTmpl *template.Template
	teacherTmpl   *template.Template
}

func NewDashboardHandler(schoolStore SchoolStore, tmplDir string) *DashboardHandler {
	return &DashboardHandler{
		schoolStore:   schoolStore,
		principalTmpl: parseTemplate(tmplDir, "principal_dashboard.html"),
		teacherTmpl:   parseTemplate(tmplDir, "teacher_dashboard.html"),
	}
}

// PrincipalDashboard - четыре счетчика, каждый своим запросом.
// Под параллельной записью цифры могут разъехаться, для сводки это
// допустимо.
func (h *DashboardHandler) PrincipalDashboard(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.Identity(r)

	counts, err := h.schoolStore.CountSummary(ident.UserID)
	if err != nil {
		serverError(w, err)
		return
	}

	data := pageData(w, r)
	data["Counts"] = counts
	h.principalTmpl.Execute(w, data)
}

// TeacherDashboard показывает учеников, закрепленных за учителем.
// Без записи в реестре - пустой список.
func (h *DashboardHandler) TeacherDashboard(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.Identity(r)

	students := make([]entity.StudentWithTeacher, 0)

	sc, ok, err := scopeFor(h.schoolStore, ident)
	if err != nil {
		serverError(w, err)
		return
	}
	if ok && sc.TeacherID != nil {
		students, err = h.schoolStore.ListStudentsByTeacher(sc.PrincipalID, *sc.TeacherID)
		if err != nil {
			serverError(w, err)
			return
		}
	}

	data := pageData(w, r)
	data["Students"] = students
	h.teacherTmpl.Execute(w, data)
}
