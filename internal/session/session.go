package session

import (
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"schooladmin/internal/entity"
)

const cookieName = "app-session"

var (
	storeOnce sync.Once
	cookies   *sessions.CookieStore
)

// store создается при первом обращении, а не при инициализации пакета:
// к этому моменту main уже успел загрузить .env с SESSION_SECRET
func store() *sessions.CookieStore {
	storeOnce.Do(func() {
		cookies = newStore()
	})
	return cookies
}

func newStore() *sessions.CookieStore {
	secret := []byte(os.Getenv("SESSION_SECRET"))
	if len(secret) == 0 {
		// Без SESSION_SECRET сессии не переживут перезапуск
		secret = securecookie.GenerateRandomKey(32)
	}

	s := sessions.NewCookieStore(secret)
	s.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return s
}

// SignIn записывает личность пользователя в cookie-сессию
func SignIn(w http.ResponseWriter, r *http.Request, user entity.User) error {
	s, _ := store().Get(r, cookieName)
	s.Values["user_id"] = user.ID
	s.Values["name"] = user.Name
	s.Values["email"] = user.Email
	s.Values["role"] = string(user.Role)
	return s.Save(r, w)
}

// CurrentIdentity читает личность из сессии, второй результат false
// если сессии нет или она неполная
func CurrentIdentity(r *http.Request) (entity.Identity, bool) {
	s, err := store().Get(r, cookieName)
	if err != nil {
		return entity.Identity{}, false
	}

	userID, idOk := s.Values["user_id"].(int)
	roleStr, roleOk := s.Values["role"].(string)
	if !idOk || userID == 0 || !roleOk {
		return entity.Identity{}, false
	}

	role, ok := entity.ParseRole(roleStr)
	if !ok {
		return entity.Identity{}, false
	}

	name, _ := s.Values["name"].(string)
	email, _ := s.Values["email"].(string)

	return entity.Identity{
		UserID: userID,
		Name:   name,
		Email:  email,
		Role:   role,
	}, true
}

// SignOut сбрасывает сессию, повторный вызов безвреден
func SignOut(w http.ResponseWriter, r *http.Request) {
	s, _ := store().Get(r, cookieName)
	s.Options.MaxAge = -1
	s.Save(r, w)
}

// Flash добавляет одноразовое уведомление, level - "success" либо "danger"
func Flash(w http.ResponseWriter, r *http.Request, level, message string) {
	s, _ := store().Get(r, cookieName)
	s.AddFlash(level + "|" + message)
	s.Save(r, w)
}

type Notice struct {
	Level   string
	Message string
}

// Flashes забирает накопленные уведомления и сразу их гасит
func Flashes(w http.ResponseWriter, r *http.Request) []Notice {
	s, _ := store().Get(r, cookieName)

	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	s.Save(r, w)

	notices := make([]Notice, 0, len(raw))
	for _, f := range raw {
		msg, ok := f.(string)
		if !ok {
			continue
		}
		level, text := "success", msg
		for i := 0; i < len(msg); i++ {
			if msg[i] == '|' {
				level, text = msg[:i], msg[i+1:]
				break
			}
		}
		notices = append(notices, Notice{Level: level, Message: text})
	}

	return notices
}
