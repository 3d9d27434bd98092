package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"schooladmin/internal/entity"
)

// SchoolRepository - CRUD по учителям, ученикам, предметам и оценкам.
// Каждый запрос фильтруется по principal_id, это единственный механизм
// изоляции данных между директорами.
type SchoolRepository struct {
	db *sql.DB
}

func NewSchoolRepository(db *sql.DB) *SchoolRepository {
	return &SchoolRepository{db: db}
}

// ---------- Ученики ----------

func (r *SchoolRepository) ListStudents(principalID int) ([]entity.StudentWithTeacher, error) {
	return r.queryStudents(`
		SELECT s.id, s.principal_id, s.name, s.grade, s.teacher_id, COALESCE(t.name, '')
		FROM students s
		LEFT JOIN teachers t ON s.teacher_id = t.id
		WHERE s.principal_id = $1
		ORDER BY s.id DESC
	`, principalID)
}

// ListStudentsByTeacher - ученики, закрепленные за конкретным учителем
func (r *SchoolRepository) ListStudentsByTeacher(principalID, teacherID int) ([]entity.StudentWithTeacher, error) {
	return r.queryStudents(`
		SELECT s.id, s.principal_id, s.name, s.grade, s.teacher_id, COALESCE(t.name, '')
		FROM students s
		LEFT JOIN teachers t ON s.teacher_id = t.id
		WHERE s.principal_id = $1 AND s.teacher_id = $2
		ORDER BY s.id DESC
	`, principalID, teacherID)
}

// ListStudentsByName - для выпадающего списка в форме оценок
func (r *SchoolRepository) ListStudentsByName(principalID int) ([]entity.StudentWithTeacher, error) {
	return r.queryStudents(`
		SELECT s.id, s.principal_id, s.name, s.grade, s.teacher_id, COALESCE(t.name, '')
		FROM students s
		LEFT JOIN teachers t ON s.teacher_id = t.id
		WHERE s.principal_id = $1
		ORDER BY s.name
	`, principalID)
}

func (r *SchoolRepository) queryStudents(query string, args ...interface{}) ([]entity.StudentWithTeacher, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения учеников: %w", err)
	}
	defer rows.Close()

	students := make([]entity.StudentWithTeacher, 0)
	for rows.Next() {
		var s entity.StudentWithTeacher
		var teacherID sql.NullInt64
		if err := rows.Scan(&s.ID, &s.PrincipalID, &s.Name, &s.Grade, &teacherID, &s.TeacherName); err != nil {
			return nil, err
		}
		if teacherID.Valid {
			id := int(teacherID.Int64)
			s.TeacherID = &id
		}
		students = append(students, s)
	}

	return students, rows.Err()
}

func (r *SchoolRepository) GetStudent(id, principalID int) (entity.Student, error) {
	var s entity.Student
	var teacherID sql.NullInt64

	err := r.db.QueryRow(`
		SELECT id, principal_id, name, grade, teacher_id
		FROM students
		WHERE id = $1 AND principal_id = $2
	`, id, principalID).Scan(&s.ID, &s.PrincipalID, &s.Name, &s.Grade, &teacherID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s, entity.ErrNotFound
		}
		return s, fmt.Errorf("ошибка получения ученика: %w", err)
	}

	if teacherID.Valid {
		tid := int(teacherID.Int64)
		s.TeacherID = &tid
	}

	return s, nil
}

func (r *SchoolRepository) CreateStudent(principalID int, name, grade string, teacherID *int) (int, error) {
	var id int
	err := r.db.QueryRow(`
		INSERT INTO students (principal_id, name, grade, teacher_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, principalID, name, grade, nullableID(teacherID)).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка добавления ученика: %w", err)
	}
	return id, nil
}

// UpdateStudent обновляет запись в границах principal_id.
// Чужой либо несуществующий id затрагивает ноль строк, это не ошибка.
func (r *SchoolRepository) UpdateStudent(id, principalID int, name, grade string, teacherID *int) error {
	_, err := r.db.Exec(`
		UPDATE students
		SET name = $1, grade = $2, teacher_id = $3
		WHERE id = $4 AND principal_id = $5
	`, name, grade, nullableID(teacherID), id, principalID)

	if err != nil {
		return fmt.Errorf("ошибка обновления ученика: %w", err)
	}
	return nil
}

func (r *SchoolRepository) DeleteStudent(id, principalID int) error {
	_, err := r.db.Exec(`
		DELETE FROM students WHERE id = $1 AND principal_id = $2
	`, id, principalID)

	if err != nil {
		return fmt.Errorf("ошибка удаления ученика: %w", err)
	}
	return nil
}

// ---------- Учителя ----------

func (r *SchoolRepository) ListTeachers(principalID int) ([]entity.Teacher, error) {
	rows, err := r.db.Query(`
		SELECT id, principal_id, name, email, phone
		FROM teachers
		WHERE principal_id = $1
		ORDER BY id DESC
	`, principalID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения учителей: %w", err)
	}
	defer rows.Close()

	teachers := make([]entity.Teacher, 0)
	for rows.Next() {
		var t entity.Teacher
		if err := rows.Scan(&t.ID, &t.PrincipalID, &t.Name, &t.Email, &t.Phone); err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}

	return teachers, rows.Err()
}

// ListTeachersByName - для выпадающих списков в формах учеников
func (r *SchoolRepository) ListTeachersByName(principalID int) ([]entity.Teacher, error) {
	rows, err := r.db.Query(`
		SELECT id, principal_id, name, email, phone
		FROM teachers
		WHERE principal_id = $1
		ORDER BY name
	`, principalID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения учителей: %w", err)
	}
	defer rows.Close()

	teachers := make([]entity.Teacher, 0)
	for rows.Next() {
		var t entity.Teacher
		if err := rows.Scan(&t.ID, &t.PrincipalID, &t.Name, &t.Email, &t.Phone); err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}

	return teachers, rows.Err()
}

func (r *SchoolRepository) GetTeacher(id, principalID int) (entity.Teacher, error) {
	var t entity.Teacher

	err := r.db.QueryRow(`
		SELECT id, principal_id, name, email, phone
		FROM teachers
		WHERE id = $1 AND principal_id = $2
	`, id, principalID).Scan(&t.ID, &t.PrincipalID, &t.Name, &t.Email, &t.Phone)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return t, entity.ErrNotFound
		}
		return t, fmt.Errorf("ошибка получения учителя: %w", err)
	}

	return t, nil
}

// TeacherByEmail находит запись реестра по email учетной записи.
// Email в реестре не уникален, при нескольких совпадениях берем последнюю.
func (r *SchoolRepository) TeacherByEmail(email string) (entity.Teacher, error) {
	var t entity.Teacher

	err := r.db.QueryRow(`
		SELECT id, principal_id, name, email, phone
		FROM teachers
		WHERE email = $1
		ORDER BY id DESC
		LIMIT 1
	`, email).Scan(&t.ID, &t.PrincipalID, &t.Name, &t.Email, &t.Phone)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return t, entity.ErrNotFound
		}
		return t, fmt.Errorf("ошибка поиска учителя по email: %w", err)
	}

	return t, nil
}

func (r *SchoolRepository) CreateTeacher(principalID int, name, email, phone string) (int, error) {
	var id int
	err := r.db.QueryRow(`
		INSERT INTO teachers (principal_id, name, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, principalID, name, email, phone).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка добавления учителя: %w", err)
	}
	return id, nil
}

func (r *SchoolRepository) UpdateTeacher(id, principalID int, name, email, phone string) error {
	_, err := r.db.Exec(`
		UPDATE teachers
		SET name = $1, email = $2, phone = $3
		WHERE id = $4 AND principal_id = $5
	`, name, email, phone, id, principalID)

	if err != nil {
		return fmt.Errorf("ошибка обновления учителя: %w", err)
	}
	return nil
}

func (r *SchoolRepository) DeleteTeacher(id, principalID int) error {
	_, err := r.db.Exec(`
		DELETE FROM teachers WHERE id = $1 AND principal_id = $2
	`, id, principalID)

	if err != nil {
		return fmt.Errorf("ошибка удаления учителя: %w", err)
	}
	return nil
}

// ---------- Предметы ----------

func (r *SchoolRepository) ListSubjects(principalID int) ([]entity.Subject, error) {
	return r.querySubjects(`
		SELECT id, principal_id, name
		FROM subjects
		WHERE principal_id = $1
		ORDER BY id DESC
	`, principalID)
}

// ListSubjectsByName - для формы выставления оценок
func (r *SchoolRepository) ListSubjectsByName(principalID int) ([]entity.Subject, error) {
	return r.querySubjects(`
		SELECT id, principal_id, name
		FROM subjects
		WHERE principal_id = $1
		ORDER BY name
	`, principalID)
}

func (r *SchoolRepository) querySubjects(query string, args ...interface{}) ([]entity.Subject, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения предметов: %w", err)
	}
	defer rows.Close()

	subjects := make([]entity.Subject, 0)
	for rows.Next() {
		var s entity.Subject
		if err := rows.Scan(&s.ID, &s.PrincipalID, &s.Name); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}

	return subjects, rows.Err()
}

func (r *SchoolRepository) CreateSubject(principalID int, name string) (int, error) {
	var id int
	err := r.db.QueryRow(`
		INSERT INTO subjects (principal_id, name)
		VALUES ($1, $2)
		RETURNING id
	`, principalID, name).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка добавления предмета: %w", err)
	}
	return id, nil
}

func (r *SchoolRepository) DeleteSubject(id, principalID int) error {
	_, err := r.db.Exec(`
		DELETE FROM subjects WHERE id = $1 AND principal_id = $2
	`, id, principalID)

	if err != nil {
		return fmt.Errorf("ошибка удаления предмета: %w", err)
	}
	return nil
}

// ---------- Оценки ----------

// AddMarks делает по одному INSERT на запись, без транзакции.
// При сбое на середине уже вставленные строки остаются.
func (r *SchoolRepository) AddMarks(principalID, studentID int, entries []entity.MarkEntry) error {
	for _, e := range entries {
		_, err := r.db.Exec(`
			INSERT INTO marks (principal_id, student_id, subject_id, marks, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, principalID, studentID, e.SubjectID, e.Value, time.Now())

		if err != nil {
			return fmt.Errorf("ошибка сохранения оценки: %w", err)
		}
	}
	return nil
}

func (r *SchoolRepository) ListMarks(principalID int) ([]entity.MarkWithNames, error) {
	rows, err := r.db.Query(`
		SELECT m.id, m.marks, m.student_id, s.name, sub.name
		FROM marks m
		JOIN students s ON m.student_id = s.id
		JOIN subjects sub ON m.subject_id = sub.id
		WHERE m.principal_id = $1
		ORDER BY m.id DESC
	`, principalID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения оценок: %w", err)
	}
	defer rows.Close()

	marks := make([]entity.MarkWithNames, 0)
	for rows.Next() {
		var m entity.MarkWithNames
		if err := rows.Scan(&m.ID, &m.Marks, &m.StudentID, &m.StudentName, &m.SubjectName); err != nil {
			return nil, err
		}
		marks = append(marks, m)
	}

	return marks, rows.Err()
}

func (r *SchoolRepository) ListStudentMarks(principalID, studentID int) ([]entity.StudentMark, error) {
	rows, err := r.db.Query(`
		SELECT m.id, m.marks, sub.name, m.created_at
		FROM marks m
		JOIN subjects sub ON m.subject_id = sub.id
		WHERE m.student_id = $1 AND m.principal_id = $2
		ORDER BY m.created_at DESC
	`, studentID, principalID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения оценок ученика: %w", err)
	}
	defer rows.Close()

	marks := make([]entity.StudentMark, 0)
	for rows.Next() {
		var m entity.StudentMark
		if err := rows.Scan(&m.ID, &m.Marks, &m.SubjectName, &m.CreatedAt); err != nil {
			return nil, err
		}
		marks = append(marks, m)
	}

	return marks, rows.Err()
}

// ---------- Сводка ----------

// CountSummary - четыре независимых COUNT без транзакции, сводка
// для дашборда и только для него
func (r *SchoolRepository) CountSummary(principalID int) (entity.DashboardCounts, error) {
	var c entity.DashboardCounts

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM students WHERE principal_id = $1", &c.Students},
		{"SELECT COUNT(*) FROM teachers WHERE principal_id = $1", &c.Teachers},
		{"SELECT COUNT(*) FROM subjects WHERE principal_id = $1", &c.Subjects},
		{"SELECT COUNT(*) FROM marks WHERE principal_id = $1", &c.Marks},
	}

	for _, cnt := range counts {
		if err := r.db.QueryRow(cnt.query, principalID).Scan(cnt.dest); err != nil {
			return c, fmt.Errorf("ошибка подсчета: %w", err)
		}
	}

	return c, nil
}

func nullableID(id *int) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*id), Valid: true}
}
