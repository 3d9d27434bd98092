package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooladmin/internal/entity"
)

// SESSION_SECRET попадает в окружение только после старта процесса
// (godotenv в main), поэтому стор обязан читать его при первом
// обращении, а не при инициализации пакета. Проверяем: cookie,
// выданная нашим стором, декодируется сторонним стором с тем же
// ключом. Тест должен идти первым - он и фиксирует ключ.
func TestSecretReadAfterStartup(t *testing.T) {
	const secret = "late-loaded-secret-0123456789"
	t.Setenv("SESSION_SECRET", secret)

	user := entity.User{ID: 7, Name: "Алиса", Email: "alice@x.com", Role: entity.RolePrincipal}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	require.NoError(t, SignIn(w, r, user))

	next := httptest.NewRequest(http.MethodGet, "/students", nil)
	for _, c := range w.Result().Cookies() {
		next.AddCookie(c)
	}

	reference := sessions.NewCookieStore([]byte(secret))
	s, err := reference.Get(next, cookieName)
	require.NoError(t, err)
	assert.Equal(t, 7, s.Values["user_id"])
	assert.Equal(t, "alice@x.com", s.Values["email"])
}

func TestSignInRoundtrip(t *testing.T) {
	user := entity.User{ID: 3, Name: "Борис", Email: "bob@x.com", Role: entity.RoleTeacher}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	require.NoError(t, SignIn(w, r, user))

	next := httptest.NewRequest(http.MethodGet, "/students", nil)
	for _, c := range w.Result().Cookies() {
		next.AddCookie(c)
	}

	ident, ok := CurrentIdentity(next)
	require.True(t, ok)
	assert.Equal(t, 3, ident.UserID)
	assert.Equal(t, entity.RoleTeacher, ident.Role)
}

func TestCurrentIdentityAnonymous(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/students", nil)

	_, ok := CurrentIdentity(r)
	assert.False(t, ok)
}
