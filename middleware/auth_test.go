package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func performRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireTokenMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", RequireToken(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := performRequest(r, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireTokenMalformedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", RequireToken(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, header := range []string{"Bearer", "Basic abc", "Bearer "} {
		w := performRequest(r, header)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, w.Code)
		}
	}
}

func TestRequireTokenStashesToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var got string
	r := gin.New()
	r.GET("/", RequireToken(), func(c *gin.Context) {
		got = AccessToken(c)
		c.Status(http.StatusOK)
	})

	w := performRequest(r, "Bearer abc.def.ghi")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got != "abc.def.ghi" {
		t.Fatalf("expected token stashed, got %q", got)
	}
}

func TestOptionalTokenAllowsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var got string
	r := gin.New()
	r.GET("/", OptionalToken(), func(c *gin.Context) {
		got = AccessToken(c)
		c.Status(http.StatusOK)
	})

	w := performRequest(r, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 without a token, got %d", w.Code)
	}
	if got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}
}
