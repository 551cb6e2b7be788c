package binder

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bodyParams struct {
	Title string  `json:"title" mod:"trim" validate:"required,max=9"`
	Price float64 `json:"price" validate:"required,gt=0"`
}

type queryParams struct {
	Page     *int `query:"page" default:"1" validate:"required,min=1"`
	PageSize *int `query:"page_size" default:"10" validate:"required,min=1,max=100"`
}

type pathParams struct {
	BookID int `param:"book_id" validate:"required,gt=0"`
}

var (
	goodJSON             = `{"title":" world ","price":9.9}`
	unknownFieldsErrJSON = `{"title":"world","price":9.9,"foo":"bar"}`
	typeErrJSON          = `{"title":123,"price":9.9}`
	validationErrJSON    = `{"title":"0123456789","price":9.9}`
	priceErrJSON         = `{"title":"world","price":0}`
)

func TestBindBody(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)

	t.Run("only allows application/json", func(tt *testing.T) {
		c := newContext(goodJSON, echo.MIMEApplicationXML)
		p := bodyParams{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "Unsupported Media Type")
	})

	t.Run("disallows unknown fields", func(tt *testing.T) {
		c := newContext(unknownFieldsErrJSON, echo.MIMEApplicationJSON)
		p := bodyParams{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `Unknown Parameter "foo"`)
	})

	t.Run("returns a good message for type errors", func(tt *testing.T) {
		c := newContext(typeErrJSON, echo.MIMEApplicationJSON)
		p := bodyParams{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `"title" should be of type string`)
	})

	t.Run("use mod tag to modify params", func(tt *testing.T) {
		c := newContext(goodJSON, echo.MIMEApplicationJSON)
		p := bodyParams{}
		err := b.Bind(&p, c)
		require.NoError(tt, err)
		assert.Equal(tt, "world", p.Title)
	})

	t.Run("use validate tag to validate params", func(tt *testing.T) {
		c := newContext(validationErrJSON, echo.MIMEApplicationJSON)
		p := bodyParams{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "length must be less than or equal to 9 characters")
	})

	t.Run("enforces numeric bounds", func(tt *testing.T) {
		c := newContext(priceErrJSON, echo.MIMEApplicationJSON)
		p := bodyParams{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `"price" is required`)
	})

	t.Run("rejects empty bodies on write methods", func(tt *testing.T) {
		c := newContext("", echo.MIMEApplicationJSON)
		p := bodyParams{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "Request body can't be empty.")
	})
}

func TestBindSlicePayload(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)

	t.Run("validates each element", func(tt *testing.T) {
		c := newContext(`[{"title":"one","price":1.5},{"title":"two","price":0}]`, echo.MIMEApplicationJSON)
		p := []bodyParams{}
		err := b.Bind(&p, c)
		require.Error(tt, err)
		assert.Contains(tt, err.Error(), `"price" is required`)
	})

	t.Run("modifies each element", func(tt *testing.T) {
		c := newContext(`[{"title":" one ","price":1.5},{"title":" two ","price":2.5}]`, echo.MIMEApplicationJSON)
		p := []bodyParams{}
		err := b.Bind(&p, c)
		require.NoError(tt, err)
		require.Len(tt, p, 2)
		assert.Equal(tt, "one", p[0].Title)
		assert.Equal(tt, "two", p[1].Title)
	})
}

func TestBindQuery(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)

	t.Run("fills defaults for absent params", func(tt *testing.T) {
		c := newGetContext("/book/page")
		p := queryParams{}
		err := b.Bind(&p, c)
		require.NoError(tt, err)
		require.NotNil(tt, p.Page)
		require.NotNil(tt, p.PageSize)
		assert.Equal(tt, 1, *p.Page)
		assert.Equal(tt, 10, *p.PageSize)
	})

	t.Run("rejects out-of-range params", func(tt *testing.T) {
		c := newGetContext("/book/page?page=0")
		p := queryParams{}
		err := b.Bind(&p, c)
		require.Error(tt, err)
		assert.Contains(tt, err.Error(), `"page" must be greater than or equal to 1`)
	})

	t.Run("rejects unknown params", func(tt *testing.T) {
		c := newGetContext("/book/page?pages=2")
		p := queryParams{}
		err := b.Bind(&p, c)
		require.Error(tt, err)
		assert.Contains(tt, err.Error(), `Unknown Parameter "pages"`)
	})

	t.Run("rejects type mismatches", func(tt *testing.T) {
		c := newGetContext("/book/page?page=abc")
		p := queryParams{}
		err := b.Bind(&p, c)
		require.Error(tt, err)
		assert.Contains(tt, err.Error(), `"page" should be of type`)
	})
}

func TestBindPathParams(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)

	bind := func(value string) (pathParams, error) {
		c := newGetContext("/book/by-id/" + value)
		c.SetPath("/book/by-id/:book_id")
		c.SetParamNames("book_id")
		c.SetParamValues(value)
		p := pathParams{}
		err := b.Bind(&p, c)
		return p, err
	}

	t.Run("binds a valid param", func(tt *testing.T) {
		p, err := bind("42")
		require.NoError(tt, err)
		assert.Equal(tt, 42, p.BookID)
	})

	t.Run("rejects non-numeric params", func(tt *testing.T) {
		_, err := bind("abc")
		require.Error(tt, err)
		assert.Contains(tt, err.Error(), `"book_id" should be of type`)
	})

	t.Run("rejects params outside declared bounds", func(tt *testing.T) {
		_, err := bind("0")
		require.Error(tt, err)
		assert.Contains(tt, err.Error(), `"book_id" must be greater than 0`)
	})
}

func newContext(payload, mime string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, mime)
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr)
}

func newGetContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr)
}
