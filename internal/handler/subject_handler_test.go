package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectsTeacherSeesPrincipals(t *testing.T) {
	school := newFakeSchoolStore()
	school.CreateTeacher(1, "Борис", "bob@x.com", "")
	school.CreateSubject(1, "Математика")
	school.CreateSubject(2, "История")

	h := NewSubjectHandler(school, testTmplDir)

	// учитель видит предметы своего директора, чужие - нет
	w := getAs(t, h.ListSubjects, "/subjects", teacherIdentity(10, "Борис", "bob@x.com"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Математика")
	assert.NotContains(t, w.Body.String(), "История")
}

func TestAddSubjectValidation(t *testing.T) {
	school := newFakeSchoolStore()
	h := NewSubjectHandler(school, testTmplDir)
	p1 := principalIdentity(1, "Алиса", "alice@x.com")

	w := postFormAs(t, h.AddSubject, "/add_subject", url.Values{"name": {""}}, p1)
	assert.Equal(t, "/add_subject", w.Header().Get("Location"))
	assert.Empty(t, school.subjects)

	w = postFormAs(t, h.AddSubject, "/add_subject", url.Values{"name": {"Математика"}}, p1)
	assert.Equal(t, "/subjects", w.Header().Get("Location"))
	require.Len(t, school.subjects, 1)
	assert.Equal(t, 1, school.subjects[0].PrincipalID)
}

// Удаление чужого предмета ничего не трогает и не падает
func TestDeleteForeignSubject(t *testing.T) {
	school := newFakeSchoolStore()
	school.CreateSubject(1, "Математика")

	h := NewSubjectHandler(school, testTmplDir)

	r := httptest.NewRequest(http.MethodPost, "/delete_subject/1", nil)
	r.SetPathValue("id", "1")
	w := httptest.NewRecorder()
	h.DeleteSubject(w, asIdentity(principalIdentity(2, "Вера", "vera@y.com"), r))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Len(t, school.subjects, 1)
}
