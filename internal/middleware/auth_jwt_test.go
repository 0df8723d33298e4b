package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketplace/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func validClaims(userID int64, role string) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(15 * time.Minute).Unix(),
	}
}

// ミドルウェア単体で叩く
func invoke(authz string) (*httptest.ResponseRecorder, echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := AuthJWT(config.Config{JWTSecret: testSecret})
	var passed echo.Context
	err := mw(func(c echo.Context) error {
		passed = c
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, passed, err
}

func TestAuthJWT_ValidToken_SetsContext(t *testing.T) {
	token := signToken(t, testSecret, validClaims(7, "USER"))

	rec, passed, err := invoke("Bearer " + token)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, passed)
	assert.Equal(t, int64(7), passed.Get(CtxUserIDKey))
	assert.Equal(t, "USER", passed.Get(CtxUserRoleKey))
}

func TestAuthJWT_MissingHeader_Unauthorized(t *testing.T) {
	rec, passed, err := invoke("")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, passed)
}

func TestAuthJWT_WrongScheme_Unauthorized(t *testing.T) {
	rec, passed, err := invoke("Basic abcdef")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, passed)
}

func TestAuthJWT_WrongSecret_Unauthorized(t *testing.T) {
	token := signToken(t, "other-secret", validClaims(7, "USER"))

	rec, passed, err := invoke("Bearer " + token)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, passed)
}

func TestAuthJWT_ExpiredToken_Unauthorized(t *testing.T) {
	claims := validClaims(7, "USER")
	claims["exp"] = time.Now().Add(-1 * time.Minute).Unix()
	token := signToken(t, testSecret, claims)

	rec, passed, err := invoke("Bearer " + token)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, passed)
}

func TestAuthJWT_MissingRole_Unauthorized(t *testing.T) {
	claims := validClaims(7, "USER")
	delete(claims, "role")
	token := signToken(t, testSecret, claims)

	rec, _, err := invoke("Bearer " + token)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoleGuard(t *testing.T) {
	cases := []struct {
		name     string
		role     interface{}
		wantCode int
	}{
		{name: "ADMINは通る", role: "ADMIN", wantCode: http.StatusOK},
		{name: "USERは403", role: "USER", wantCode: http.StatusForbidden},
		{name: "role未設定は401", role: nil, wantCode: http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tc.role != nil {
				c.Set(CtxUserRoleKey, tc.role)
			}

			err := AdminRoleGuard()(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})(c)

			assert.NoError(t, err)
			assert.Equal(t, tc.wantCode, rec.Code)
		})
	}
}
