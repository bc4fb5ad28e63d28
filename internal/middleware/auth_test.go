package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/foc-sab/ctrlroom/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const testSecret = "middleware-test-secret"

type memUserRepo struct {
	users map[uuid.UUID]*model.User
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) EmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	for _, user := range r.users {
		if user.Email == email && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) FindAll(ctx context.Context) ([]*model.User, error) {
	var all []*model.User
	for _, user := range r.users {
		all = append(all, user)
	}
	return all, nil
}

func (r *memUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

type memTokenRepo struct {
	tokens map[uuid.UUID]bool
}

func (r *memTokenRepo) Create(ctx context.Context, token *model.AuthToken) error {
	r.tokens[token.ID] = true
	return nil
}

func (r *memTokenRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.tokens[id], nil
}

func (r *memTokenRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.tokens, id)
	return nil
}

func (r *memTokenRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func signToken(t *testing.T, userID, tokenID uuid.UUID, secret string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ID:        tokenID.String(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

type fixture struct {
	router *gin.Engine
	users  *memUserRepo
	tokens *memTokenRepo
}

func newFixture() *fixture {
	gin.SetMode(gin.TestMode)
	users := &memUserRepo{users: make(map[uuid.UUID]*model.User)}
	tokens := &memTokenRepo{tokens: make(map[uuid.UUID]bool)}
	m := NewAuthMiddleware(users, tokens, testSecret)

	r := gin.New()
	r.GET("/protected", m.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	r.GET("/admin", m.RequireAuth(), m.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return &fixture{router: r, users: users, tokens: tokens}
}

func (f *fixture) addUser(role string) (*model.User, string) {
	user := &model.User{ID: uuid.New(), Email: role + "@example.test", Role: role}
	f.users.users[user.ID] = user
	tokenID := uuid.New()
	f.tokens.tokens[tokenID] = true
	return user, tokenID.String()
}

func (f *fixture) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestRequireAuthAcceptsLiveToken(t *testing.T) {
	f := newFixture()
	user, tokenID := f.addUser(model.RoleStudent)
	token := signToken(t, user.ID, uuid.MustParse(tokenID), testSecret)

	w := f.get("/protected", token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	f := newFixture()
	w := f.get("/protected", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuthRejectsBadSignature(t *testing.T) {
	f := newFixture()
	user, tokenID := f.addUser(model.RoleStudent)
	token := signToken(t, user.ID, uuid.MustParse(tokenID), "some-other-secret")

	w := f.get("/protected", token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuthRejectsRevokedToken(t *testing.T) {
	f := newFixture()
	user, tokenID := f.addUser(model.RoleStudent)
	token := signToken(t, user.ID, uuid.MustParse(tokenID), testSecret)

	// Revoke, then retry with the same still-unexpired JWT.
	delete(f.tokens.tokens, uuid.MustParse(tokenID))
	w := f.get("/protected", token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 after revocation", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	f := newFixture()

	student, studentTokenID := f.addUser(model.RoleStudent)
	studentToken := signToken(t, student.ID, uuid.MustParse(studentTokenID), testSecret)
	if w := f.get("/admin", studentToken); w.Code != http.StatusForbidden {
		t.Errorf("student status = %d, want 403", w.Code)
	}

	admin, adminTokenID := f.addUser(model.RoleAdmin)
	adminToken := signToken(t, admin.ID, uuid.MustParse(adminTokenID), testSecret)
	if w := f.get("/admin", adminToken); w.Code != http.StatusOK {
		t.Errorf("admin status = %d, want 200", w.Code)
	}
}
