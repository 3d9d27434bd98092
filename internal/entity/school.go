package entity

import "time"

// Teacher - запись реестра учителей, принадлежит директору.
// С учетной записью User связана только совпадением email.
type Teacher struct {
	ID          int    `json:"id"`
	PrincipalID int    `json:"principal_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

type Student struct {
	ID          int    `json:"id"`
	PrincipalID int    `json:"principal_id"`
	Name        string `json:"name"`
	Grade       string `json:"grade"`
	TeacherID   *int   `json:"teacher_id,omitempty"`
}

// StudentWithTeacher - строка списка учеников с именем учителя (LEFT JOIN)
type StudentWithTeacher struct {
	Student
	TeacherName string `json:"teacher_name"`
}

type Subject struct {
	ID          int    `json:"id"`
	PrincipalID int    `json:"principal_id"`
	Name        string `json:"name"`
}

type Mark struct {
	ID          int       `json:"id"`
	PrincipalID int       `json:"principal_id"`
	StudentID   int       `json:"student_id"`
	SubjectID   int       `json:"subject_id"`
	Marks       int       `json:"marks"`
	CreatedAt   time.Time `json:"created_at"`
}

// MarkWithNames - строка общего списка оценок
type MarkWithNames struct {
	ID          int    `json:"id"`
	Marks       int    `json:"marks"`
	StudentID   int    `json:"student_id"`
	StudentName string `json:"student_name"`
	SubjectName string `json:"subject_name"`
}

// StudentMark - оценка одного ученика по предмету
type StudentMark struct {
	ID          int       `json:"id"`
	Marks       int       `json:"marks"`
	SubjectName string    `json:"subject_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// MarkEntry - пара предмет/значение для массового добавления оценок
type MarkEntry struct {
	SubjectID int
	Value     int
}

type DashboardCounts struct {
	Students int `json:"students"`
	Teachers int `json:"teachers"`
	Subjects int `json:"subjects"`
	Marks    int `json:"marks"`
}
