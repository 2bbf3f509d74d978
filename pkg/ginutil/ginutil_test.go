package ginutil

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, target string, params gin.Params) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	c.Params = params
	return c
}

func TestQueryInt(t *testing.T) {
	c := testContext(t, "/posts?page=3&limit=abc", nil)

	assert.Equal(t, 3, QueryInt(c, "page", 1))
	assert.Equal(t, 20, QueryInt(c, "limit", 20))
	assert.Equal(t, 1, QueryInt(c, "missing", 1))
}

func TestParamInt64(t *testing.T) {
	c := testContext(t, "/posts/42", gin.Params{{Key: "id", Value: "42"}})
	id, err := ParamInt64(c, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	c = testContext(t, "/posts/abc", gin.Params{{Key: "id", Value: "abc"}})
	_, err = ParamInt64(c, "id")
	assert.ErrorContains(t, err, "param id is not a number")
}
