package handler

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"schooladmin/internal/entity"
	"schooladmin/internal/middleware"
	"schooladmin/internal/session"
)

var tmplFuncs = template.FuncMap{
	// Разыменование teacher_id в селекте учителя
	"deref": func(p *int) int {
		if p == nil {
			return 0
		}
		return *p
	},
}

func parseTemplate(tmplDir string, names ...string) *template.Template {
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(tmplDir, name)
	}
	return template.Must(template.New(names[0]).Funcs(tmplFuncs).ParseFiles(paths...))
}

// pageData - общие поля плюс уведомления, которые гаснут после показа
func pageData(w http.ResponseWriter, r *http.Request) map[string]interface{} {
	data := map[string]interface{}{
		"Notices": session.Flashes(w, r),
	}
	if ident, ok := middleware.Identity(r); ok {
		data["User"] = ident
	}
	return data
}

// scope - действующий principal_id запроса и, для учителя,
// id его записи в реестре
type scope struct {
	PrincipalID int
	TeacherID   *int
}

// scopeFor определяет границы данных для личности.
// Директор работает со своими данными. Учитель привязывается к записи
// реестра по email, запись несет id владельца-директора; если записи
// нет - пустая выдача, а не ошибка.
func scopeFor(store SchoolStore, ident entity.Identity) (scope, bool, error) {
	if ident.Role == entity.RolePrincipal {
		return scope{PrincipalID: ident.UserID}, true, nil
	}

	teacher, err := store.TeacherByEmail(ident.Email)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return scope{}, false, nil
		}
		return scope{}, false, err
	}

	id := teacher.ID
	return scope{PrincipalID: teacher.PrincipalID, TeacherID: &id}, true, nil
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// serverError - сбои БД не роняют процесс, отвечаем 503
func serverError(w http.ResponseWriter, err error) {
	log.Println("Ошибка обработки запроса:", err)
	http.Error(w, "Сервис временно недоступен", http.StatusServiceUnavailable)
}
