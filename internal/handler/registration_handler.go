package handler

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"schooladmin/internal/entity"
	"schooladmin/internal/session"
)

type RegistrationHandler struct {
	userStore UserStore
	tmpl      *template.Template
}

func NewRegistrationHandler(userStore UserStore, tmplDir string) *RegistrationHandler {
	return &RegistrationHandler{
		userStore: userStore,
		tmpl:      parseTemplate(tmplDir, "register.html"),
	}
}

func (h *RegistrationHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.tmpl.Execute(w, pageData(w, r))
}

func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Ошибка обработки формы", http.StatusBadRequest)
		return
	}

	form := registerForm{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: strings.TrimSpace(r.FormValue("password")),
		Role:     r.FormValue("role"),
	}
	// Форма без роли регистрирует директора
	if form.Role == "" {
		form.Role = string(entity.RolePrincipal)
	}

	role, ok := entity.ParseRole(form.Role)
	if !ok {
		session.Flash(w, r, "danger", "Неизвестная роль.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	if err := validate.Struct(form); err != nil {
		session.Flash(w, r, "danger", "Все поля обязательны.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	_, err := h.userStore.Register(form.Name, form.Email, form.Password, role)
	if err != nil {
		if errors.Is(err, entity.ErrDuplicateEmail) {
			session.Flash(w, r, "danger", "Этот email уже зарегистрирован.")
			http.Redirect(w, r, "/register", http.StatusSeeOther)
			return
		}
		serverError(w, err)
		return
	}

	session.Flash(w, r, "success", "Регистрация успешна. Войдите в систему.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
