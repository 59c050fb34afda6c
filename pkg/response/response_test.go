package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/student-report-api/internal/models"
	appErrors "github.com/noah-isme/student-report-api/pkg/errors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestJSONWithPagination(t *testing.T) {
	c, w := newContext()
	JSON(c, http.StatusOK, "data successfully retrieved", []string{"a"}, models.NewPagination(1, 15, 1), map[string]interface{}{"cache_hit": false})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"message":"data successfully retrieved","data":["a"],"pagination":{"page":1,"page_size":15,"total_count":1,"last_page":1},"meta":{"cache_hit":false}}`, w.Body.String())
}

func TestMessage(t *testing.T) {
	c, w := newContext()
	Message(c, http.StatusOK, "report successfully created")
	assert.JSONEq(t, `{"message":"report successfully created"}`, w.Body.String())
}

func TestError(t *testing.T) {
	c, w := newContext()
	Error(c, appErrors.Validation(map[string][]string{"student_id": {"The student id field is required."}}))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"message":"validation error","code":"VALIDATION_ERROR","errors":{"student_id":["The student id field is required."]}}`, w.Body.String())

	c, w = newContext()
	Error(c, errors.New("database exploded"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"internal server error","code":"INTERNAL_ERROR"}`, w.Body.String())
}

func TestAttachment(t *testing.T) {
	c, w := newContext()
	Attachment(c, "reports.csv", "text/csv", []byte("Date\n"))
	assert.Equal(t, `attachment; filename="reports.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "Date\n", w.Body.String())
}
