package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "cashplan/internal/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestLogging(t *testing.T) {
	t.Run("sets a request ID header", func(t *testing.T) {
		r := gin.New()
		r.Use(RequestLogging())
		r.GET("/api/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/health", nil))

		id := rec.Header().Get("X-Request-ID")
		if id == "" {
			t.Fatal("expected X-Request-ID header to be set")
		}
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("expected X-Request-ID to be a UUID, got %q", id)
		}
	})
}

func TestErrorHandler(t *testing.T) {
	t.Run("maps AppError to its status and code", func(t *testing.T) {
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/debts/missing", func(c *gin.Context) {
			_ = c.Error(apperrors.ErrDebtNotFound)
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/debts/missing", nil))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if body := rec.Body.String(); !containsCode(body, "DEBT_NOT_FOUND") {
			t.Errorf("expected DEBT_NOT_FOUND in body, got %s", body)
		}
	})

	t.Run("hides unexpected errors behind a generic response", func(t *testing.T) {
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/boom", func(c *gin.Context) {
			_ = c.Error(errors.New("database on fire"))
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/boom", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if body := rec.Body.String(); !containsCode(body, "INTERNAL_ERROR") {
			t.Errorf("expected INTERNAL_ERROR in body, got %s", body)
		}
	})

	t.Run("does nothing without errors", func(t *testing.T) {
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/ok", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/ok", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func containsCode(body, code string) bool {
	return strings.Contains(body, `"code":"`+code+`"`)
}
