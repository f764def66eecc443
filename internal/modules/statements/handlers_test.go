package statements

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finobai/finobai/pkg/logger"
)

func multipartUpload(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/statements", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadAcceptsStatementWithinLimit(t *testing.T) {
	svc, _ := setupTestService(t)
	h := NewHandlers(svc, logger.New(logger.Config{Level: "error"}))

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartUpload(t, "mayis.csv", []byte(sampleCSV)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "mayis.csv")
}

func TestUploadRejectsOversizeBody(t *testing.T) {
	svc, _ := setupTestService(t)
	h := NewHandlers(svc, logger.New(logger.Config{Level: "error"}))

	oversize := []byte(strings.Repeat("a", 6<<20)) // past the 5MB cap

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartUpload(t, "big.csv", oversize))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
