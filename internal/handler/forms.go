package handler

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type registerForm struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	Role     string `validate:"required"`
}

type loginForm struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

type studentForm struct {
	Name  string `validate:"required"`
	Grade string
}

// email записи реестра - произвольная строка, формат не проверяем:
// по нему же учитель потом привязывается к своей учетной записи
type teacherForm struct {
	Name  string `validate:"required"`
	Email string
	Phone string
}

type subjectForm struct {
	Name string `validate:"required"`
}

// formTeacherID - пустое значение селекта означает "без учителя"
func formTeacherID(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

// parseMarkValue разбирает поле оценки из формы.
// Пустое поле пропускается, нечисловое значение сохраняется нулем.
func parseMarkValue(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true
	}
	return value, true
}
