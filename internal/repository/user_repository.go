package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"schooladmin/internal/entity"
)

const uniqueViolation = "23505"

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Register создает пользователя, пароль хранится только как bcrypt-хэш.
// Уникальность email обеспечивает констрейнт в БД.
func (r *UserRepository) Register(name, email, password string, role entity.Role) (entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return entity.User{}, fmt.Errorf("ошибка хэширования пароля: %w", err)
	}

	user := entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}

	err = r.db.QueryRow(`
		INSERT INTO users (name, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, name, email, string(hash), string(role), time.Now()).Scan(&user.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return entity.User{}, entity.ErrDuplicateEmail
		}
		return entity.User{}, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	return user, nil
}

// Authenticate возвращает одну и ту же ошибку и для неизвестного email,
// и для неверного пароля
func (r *UserRepository) Authenticate(email, password string) (entity.User, error) {
	var user entity.User
	var role string

	err := r.db.QueryRow(`
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		WHERE email = $1
	`, email).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &role, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.User{}, entity.ErrInvalidCredentials
		}
		return entity.User{}, fmt.Errorf("ошибка поиска пользователя: %w", err)
	}

	user.Role = entity.Role(role)

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return entity.User{}, entity.ErrInvalidCredentials
	}

	return user, nil
}
