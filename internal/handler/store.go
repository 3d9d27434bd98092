package handler

import "schooladmin/internal/entity"

// UserStore - учетные записи и вход в систему
type UserStore interface {
	Register(name, email, password string, role entity.Role) (entity.User, error)
	Authenticate(email, password string) (entity.User, error)
}

// SchoolStore - данные школы, все операции в границах principal_id
type SchoolStore interface {
	ListStudents(principalID int) ([]entity.StudentWithTeacher, error)
	ListStudentsByName(principalID int) ([]entity.StudentWithTeacher, error)
	ListStudentsByTeacher(principalID, teacherID int) ([]entity.StudentWithTeacher, error)
	GetStudent(id, principalID int) (entity.Student, error)
	CreateStudent(principalID int, name, grade string, teacherID *int) (int, error)
	UpdateStudent(id, principalID int, name, grade string, teacherID *int) error
	DeleteStudent(id, principalID int) error

	ListTeachers(principalID int) ([]entity.Teacher, error)
	ListTeachersByName(principalID int) ([]entity.Teacher, error)
	GetTeacher(id, principalID int) (entity.Teacher, error)
	TeacherByEmail(email string) (entity.Teacher, error)
	CreateTeacher(principalID int, name, email, phone string) (int, error)
	UpdateTeacher(id, principalID int, name, email, phone string) error
	DeleteTeacher(id, principalID int) error

	ListSubjects(principalID int) ([]entity.Subject, error)
	ListSubjectsByName(principalID int) ([]entity.Subject, error)
	CreateSubject(principalID int, name string) (int, error)
	DeleteSubject(id, principalID int) error

	AddMarks(principalID, studentID int, entries []entity.MarkEntry) error
	ListMarks(principalID int) ([]entity.MarkWithNames, error)
	ListStudentMarks(principalID, studentID int) ([]entity.StudentMark, error)

	CountSummary(principalID int) (entity.DashboardCounts, error)
}
