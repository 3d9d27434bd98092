package handler

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"schooladmin/internal/entity"
	"schooladmin/internal/session"
)

type LoginHandler struct {
	userStore UserStore
	tmpl      *template.Template
}

func NewLoginHandler(userStore UserStore, tmplDir string) *LoginHandler {
	return &LoginHandler{
		userStore: userStore,
		tmpl:      parseTemplate(tmplDir, "login.html"),
	}
}

func (h *LoginHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	// Вошедшего уводим сразу на его дашборд
	if ident, ok := session.CurrentIdentity(r); ok {
		http.Redirect(w, r, dashboardFor(ident.Role), http.StatusSeeOther)
		return
	}

	h.tmpl.Execute(w, pageData(w, r))
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Ошибка обработки формы", http.StatusBadRequest)
		return
	}

	form := loginForm{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: strings.TrimSpace(r.FormValue("password")),
	}

	if err := validate.Struct(form); err != nil {
		session.Flash(w, r, "danger", "Неверный email или пароль.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := h.userStore.Authenticate(form.Email, form.Password)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidCredentials) {
			session.Flash(w, r, "danger", "Неверный email или пароль.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		serverError(w, err)
		return
	}

	if err := session.SignIn(w, r, user); err != nil {
		serverError(w, err)
		return
	}

	session.Flash(w, r, "success", "Добро пожаловать, "+user.Name)
	http.Redirect(w, r, dashboardFor(user.Role), http.StatusSeeOther)
}

// Logout сбрасывает сессию, повторный выход безвреден
func (h *LoginHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session.SignOut(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func dashboardFor(role entity.Role) string {
	if role == entity.RoleTeacher {
		return "/teacher_dashboard"
	}
	return "/principal_dashboard"
}
