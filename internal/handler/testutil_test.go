package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"

	"schooladmin/internal/entity"
	"schooladmin/internal/middleware"
)

const testTmplDir = "../templates"

// fakeUserStore - учетные записи в памяти, пароли в открытом виде
// (хэширование здесь не проверяется)
type fakeUserStore struct {
	nextID int
	users  map[string]entity.User
	pwds   map[string]string
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users: make(map[string]entity.User),
		pwds:  make(map[string]string),
	}
}

func (s *fakeUserStore) Register(name, email, password string, role entity.Role) (entity.User, error) {
	if _, ok := s.users[email]; ok {
		return entity.User{}, entity.ErrDuplicateEmail
	}

	s.nextID++
	user := entity.User{ID: s.nextID, Name: name, Email: email, Role: role}
	s.users[email] = user
	s.pwds[email] = password
	return user, nil
}

func (s *fakeUserStore) Authenticate(email, password string) (entity.User, error) {
	user, ok := s.users[email]
	if !ok || s.pwds[email] != password {
		return entity.User{}, entity.ErrInvalidCredentials
	}
	return user, nil
}

// fakeSchoolStore повторяет границы principal_id так же, как SQL-слой
type fakeSchoolStore struct {
	nextID   int
	teachers []entity.Teacher
	students []entity.Student
	subjects []entity.Subject
	marks    []entity.Mark
}

func newFakeSchoolStore() *fakeSchoolStore {
	return &fakeSchoolStore{}
}

func (s *fakeSchoolStore) id() int {
	s.nextID++
	return s.nextID
}

func (s *fakeSchoolStore) teacherName(id *int) string {
	if id == nil {
		return ""
	}
	for _, t := range s.teachers {
		if t.ID == *id {
			return t.Name
		}
	}
	return ""
}

func (s *fakeSchoolStore) ListStudents(principalID int) ([]entity.StudentWithTeacher, error) {
	out := make([]entity.StudentWithTeacher, 0)
	for i := len(s.students) - 1; i >= 0; i-- {
		st := s.students[i]
		if st.PrincipalID != principalID {
			continue
		}
		out = append(out, entity.StudentWithTeacher{Student: st, TeacherName: s.teacherName(st.TeacherID)})
	}
	return out, nil
}

func (s *fakeSchoolStore) ListStudentsByName(principalID int) ([]entity.StudentWithTeacher, error) {
	out, _ := s.ListStudents(principalID)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *fakeSchoolStore) ListStudentsByTeacher(principalID, teacherID int) ([]entity.StudentWithTeacher, error) {
	out := make([]entity.StudentWithTeacher, 0)
	for i := len(s.students) - 1; i >= 0; i-- {
		st := s.students[i]
		if st.PrincipalID != principalID || st.TeacherID == nil || *st.TeacherID != teacherID {
			continue
		}
		out = append(out, entity.StudentWithTeacher{Student: st, TeacherName: s.teacherName(st.TeacherID)})
	}
	return out, nil
}

func (s *fakeSchoolStore) GetStudent(id, principalID int) (entity.Student, error) {
	for _, st := range s.students {
		if st.ID == id && st.PrincipalID == principalID {
			return st, nil
		}
	}
	return entity.Student{}, entity.ErrNotFound
}

func (s *fakeSchoolStore) CreateStudent(principalID int, name, grade string, teacherID *int) (int, error) {
	st := entity.Student{ID: s.id(), PrincipalID: principalID, Name: name, Grade: grade, TeacherID: teacherID}
	s.students = append(s.students, st)
	return st.ID, nil
}

func (s *fakeSchoolStore) UpdateStudent(id, principalID int, name, grade string, teacherID *int) error {
	for i, st := range s.students {
		if st.ID == id && st.PrincipalID == principalID {
			s.students[i].Name = name
			s.students[i].Grade = grade
			s.students[i].TeacherID = teacherID
		}
	}
	// чужой id - ноль затронутых строк, не ошибка
	return nil
}

func (s *fakeSchoolStore) DeleteStudent(id, principalID int) error {
	kept := s.students[:0]
	for _, st := range s.students {
		if st.ID != id || st.PrincipalID != principalID {
			kept = append(kept, st)
		}
	}
	s.students = kept
	return nil
}

func (s *fakeSchoolStore) ListTeachers(principalID int) ([]entity.Teacher, error) {
	out := make([]entity.Teacher, 0)
	for i := len(s.teachers) - 1; i >= 0; i-- {
		if s.teachers[i].PrincipalID == principalID {
			out = append(out, s.teachers[i])
		}
	}
	return out, nil
}

func (s *fakeSchoolStore) ListTeachersByName(principalID int) ([]entity.Teacher, error) {
	return s.ListTeachers(principalID)
}

func (s *fakeSchoolStore) GetTeacher(id, principalID int) (entity.Teacher, error) {
	for _, t := range s.teachers {
		if t.ID == id && t.PrincipalID == principalID {
			return t, nil
		}
	}
	return entity.Teacher{}, entity.ErrNotFound
}

func (s *fakeSchoolStore) TeacherByEmail(email string) (entity.Teacher, error) {
	for i := len(s.teachers) - 1; i >= 0; i-- {
		if s.teachers[i].Email == email {
			return s.teachers[i], nil
		}
	}
	return entity.Teacher{}, entity.ErrNotFound
}

func (s *fakeSchoolStore) CreateTeacher(principalID int, name, email, phone string) (int, error) {
	t := entity.Teacher{ID: s.id(), PrincipalID: principalID, Name: name, Email: email, Phone: phone}
	s.teachers = append(s.teachers, t)
	return t.ID, nil
}

func (s *fakeSchoolStore) UpdateTeacher(id, principalID int, name, email, phone string) error {
	for i, t := range s.teachers {
		if t.ID == id && t.PrincipalID == principalID {
			s.teachers[i].Name = name
			s.teachers[i].Email = email
			s.teachers[i].Phone = phone
		}
	}
	return nil
}

func (s *fakeSchoolStore) DeleteTeacher(id, principalID int) error {
	kept := s.teachers[:0]
	for _, t := range s.teachers {
		if t.ID != id || t.PrincipalID != principalID {
			kept = append(kept, t)
		}
	}
	s.teachers = kept
	return nil
}

func (s *fakeSchoolStore) ListSubjects(principalID int) ([]entity.Subject, error) {
	out := make([]entity.Subject, 0)
	for i := len(s.subjects) - 1; i >= 0; i-- {
		if s.subjects[i].PrincipalID == principalID {
			out = append(out, s.subjects[i])
		}
	}
	return out, nil
}

func (s *fakeSchoolStore) ListSubjectsByName(principalID int) ([]entity.Subject, error) {
	out := make([]entity.Subject, 0)
	for _, sub := range s.subjects {
		if sub.PrincipalID == principalID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *fakeSchoolStore) CreateSubject(principalID int, name string) (int, error) {
	sub := entity.Subject{ID: s.id(), PrincipalID: principalID, Name: name}
	s.subjects = append(s.subjects, sub)
	return sub.ID, nil
}

func (s *fakeSchoolStore) DeleteSubject(id, principalID int) error {
	kept := s.subjects[:0]
	for _, sub := range s.subjects {
		if sub.ID != id || sub.PrincipalID != principalID {
			kept = append(kept, sub)
		}
	}
	s.subjects = kept
	return nil
}

func (s *fakeSchoolStore) AddMarks(principalID, studentID int, entries []entity.MarkEntry) error {
	for _, e := range entries {
		s.marks = append(s.marks, entity.Mark{
			ID:          s.id(),
			PrincipalID: principalID,
			StudentID:   studentID,
			SubjectID:   e.SubjectID,
			Marks:       e.Value,
		})
	}
	return nil
}

func (s *fakeSchoolStore) ListMarks(principalID int) ([]entity.MarkWithNames, error) {
	out := make([]entity.MarkWithNames, 0)
	for i := len(s.marks) - 1; i >= 0; i-- {
		m := s.marks[i]
		if m.PrincipalID != principalID {
			continue
		}
		out = append(out, entity.MarkWithNames{ID: m.ID, Marks: m.Marks, StudentID: m.StudentID})
	}
	return out, nil
}

func (s *fakeSchoolStore) ListStudentMarks(principalID, studentID int) ([]entity.StudentMark, error) {
	out := make([]entity.StudentMark, 0)
	for i := len(s.marks) - 1; i >= 0; i-- {
		m := s.marks[i]
		if m.PrincipalID == principalID && m.StudentID == studentID {
			out = append(out, entity.StudentMark{ID: m.ID, Marks: m.Marks})
		}
	}
	return out, nil
}

func (s *fakeSchoolStore) CountSummary(principalID int) (entity.DashboardCounts, error) {
	var c entity.DashboardCounts
	for _, st := range s.students {
		if st.PrincipalID == principalID {
			c.Students++
		}
	}
	for _, t := range s.teachers {
		if t.PrincipalID == principalID {
			c.Teachers++
		}
	}
	for _, sub := range s.subjects {
		if sub.PrincipalID == principalID {
			c.Subjects++
		}
	}
	for _, m := range s.marks {
		if m.PrincipalID == principalID {
			c.Marks++
		}
	}
	return c, nil
}

var (
	_ UserStore   = (*fakeUserStore)(nil)
	_ SchoolStore = (*fakeSchoolStore)(nil)
)

// ---------- общие помощники ----------

func itoa(n int) string {
	return strconv.Itoa(n)
}

func asIdentity(ident entity.Identity, r *http.Request) *http.Request {
	return middleware.WithIdentity(r, ident)
}

func principalIdentity(id int, name, email string) entity.Identity {
	return entity.Identity{UserID: id, Name: name, Email: email, Role: entity.RolePrincipal}
}

func teacherIdentity(id int, name, email string) entity.Identity {
	return entity.Identity{UserID: id, Name: name, Email: email, Role: entity.RoleTeacher}
}

func getAs(t *testing.T, h http.HandlerFunc, path string, ident entity.Identity) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h(w, asIdentity(ident, r))
	return w
}

func postFormAs(t *testing.T, h http.HandlerFunc, path string, form url.Values, ident entity.Identity) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h(w, asIdentity(ident, r))
	return w
}
