package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"schooladmin/internal/database"
	"schooladmin/internal/entity"
	"schooladmin/internal/handler"
	"schooladmin/internal/middleware"
	"schooladmin/internal/repository"
)

func main() {
	// .env нужен только для локальной разработки
	_ = godotenv.Load()

	db, err := database.Open()
	if err != nil {
		log.Fatalf("Ошибка инициализации БД: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("%v", err)
	}

	tmplDir := os.Getenv("TEMPLATES_DIR")
	if tmplDir == "" {
		tmplDir = "internal/templates"
	}

	userRepo := repository.NewUserRepository(db)
	schoolRepo := repository.NewSchoolRepository(db)

	homeHandler := handler.NewHomeHandler(tmplDir)
	registrationHandler := handler.NewRegistrationHandler(userRepo, tmplDir)
	loginHandler := handler.NewLoginHandler(userRepo, tmplDir)
	dashboardHandler := handler.NewDashboardHandler(schoolRepo, tmplDir)
	studentHandler := handler.NewStudentHandler(schoolRepo, tmplDir)
	teacherHandler := handler.NewTeacherHandler(schoolRepo, tmplDir)
	subjectHandler := handler.NewSubjectHandler(schoolRepo, tmplDir)
	markHandler := handler.NewMarkHandler(schoolRepo, tmplDir)

	auth := middleware.RequireAuth
	principal := middleware.RequireRole(entity.RolePrincipal,
		"Войдите как директор.", "/login")
	teacher := middleware.RequireRole(entity.RoleTeacher,
		"Войдите как учитель.", "/login")
	principalStudents := middleware.RequireRole(entity.RolePrincipal,
		"Только директор управляет учениками.", "/students")
	principalTeachers := middleware.RequireRole(entity.RolePrincipal,
		"Только директор управляет учителями.", "/teachers")
	principalSubjects := middleware.RequireRole(entity.RolePrincipal,
		"Только директор управляет предметами.", "/subjects")
	principalMarks := middleware.RequireRole(entity.RolePrincipal,
		"Только директор выставляет оценки.", "/marks")

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", homeHandler.HomePage)
	mux.HandleFunc("GET /register", registrationHandler.RegisterPage)
	mux.HandleFunc("POST /register", registrationHandler.Register)
	mux.HandleFunc("GET /login", loginHandler.LoginPage)
	mux.HandleFunc("POST /login", loginHandler.Login)
	mux.HandleFunc("GET /logout", loginHandler.Logout)

	mux.Handle("GET /principal_dashboard", principal(http.HandlerFunc(dashboardHandler.PrincipalDashboard)))
	mux.Handle("GET /teacher_dashboard", teacher(http.HandlerFunc(dashboardHandler.TeacherDashboard)))

	mux.Handle("GET /students", auth(http.HandlerFunc(studentHandler.ListStudents)))
	mux.Handle("GET /add_student", principalStudents(http.HandlerFunc(studentHandler.AddStudentPage)))
	mux.Handle("POST /add_student", principalStudents(http.HandlerFunc(studentHandler.AddStudent)))
	mux.Handle("GET /edit_student/{id}", principalStudents(http.HandlerFunc(studentHandler.EditStudentPage)))
	mux.Handle("POST /edit_student/{id}", principalStudents(http.HandlerFunc(studentHandler.EditStudent)))
	mux.Handle("POST /delete_student/{id}", principalStudents(http.HandlerFunc(studentHandler.DeleteStudent)))

	mux.Handle("GET /teachers", auth(http.HandlerFunc(teacherHandler.ListTeachers)))
	mux.Handle("GET /add_teacher", principalTeachers(http.HandlerFunc(teacherHandler.AddTeacherPage)))
	mux.Handle("POST /add_teacher", principalTeachers(http.HandlerFunc(teacherHandler.AddTeacher)))
	mux.Handle("GET /edit_teacher/{id}", principalTeachers(http.HandlerFunc(teacherHandler.EditTeacherPage)))
	mux.Handle("POST /edit_teacher/{id}", principalTeachers(http.HandlerFunc(teacherHandler.EditTeacher)))
	mux.Handle("POST /delete_teacher/{id}", principalTeachers(http.HandlerFunc(teacherHandler.DeleteTeacher)))

	mux.Handle("GET /subjects", auth(http.HandlerFunc(subjectHandler.ListSubjects)))
	mux.Handle("GET /add_subject", principalSubjects(http.HandlerFunc(subjectHandler.AddSubjectPage)))
	mux.Handle("POST /add_subject", principalSubjects(http.HandlerFunc(subjectHandler.AddSubject)))
	mux.Handle("POST /delete_subject/{id}", principalSubjects(http.HandlerFunc(subjectHandler.DeleteSubject)))

	mux.Handle("GET /marks", auth(http.HandlerFunc(markHandler.ListMarks)))
	mux.Handle("GET /add_marks", principalMarks(http.HandlerFunc(markHandler.AddMarksPage)))
	mux.Handle("POST /add_marks", principalMarks(http.HandlerFunc(markHandler.AddMarks)))
	mux.Handle("GET /student_marks/{id}", auth(http.HandlerFunc(markHandler.StudentMarks)))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Сервер запущен на порту", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
