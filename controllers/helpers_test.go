package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/zuri-studios/zuri-api/config"
	"github.com/zuri-studios/zuri-api/middleware"
)

// setupTestDB opens an in-memory database, migrates the given models, and
// installs it as the active connection.
func setupTestDB(t *testing.T, dst ...interface{}) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	if len(dst) > 0 {
		require.NoError(t, db.AutoMigrate(dst...))
	}
	config.SetDB(db)
	return db
}

// stubVerifier accepts the fixed token "test-token" as the given user.
func stubVerifier(subject, email string) middleware.TokenVerifier {
	return func(ctx context.Context, token string) (*validator.ValidatedClaims, error) {
		if token != "test-token" {
			return nil, errors.New("invalid token")
		}
		return &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{
				Issuer:  "https://auth.test.zuristudios.com/",
				Subject: subject,
			},
			CustomClaims: &middleware.CustomClaims{Email: email},
		}, nil
	}
}

// performJSON sends a JSON request through the router.
func performJSON(router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// multipartBody builds a multipart request body with optional fields and
// named file parts.
func multipartBody(t *testing.T, fields map[string]string, fileField string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	for filename, content := range files {
		part, err := writer.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

// performMultipart sends a multipart request through the router.
func performMultipart(router *gin.Engine, method, path string, body *bytes.Buffer, contentType string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeEnvelope unmarshals the standard response envelope.
func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

// errorCode digs the error code out of a failure envelope.
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	response := decodeEnvelope(t, w)
	errObj, ok := response["error"].(map[string]interface{})
	require.True(t, ok, "Expected an error envelope, got %s", w.Body.String())
	code, _ := errObj["code"].(string)
	return code
}

// authHeaders carries the stub bearer token.
func authHeaders() map[string]string {
	return map[string]string{"Authorization": "Bearer test-token"}
}
