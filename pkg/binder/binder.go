package binder

import (
	"net/http"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/mold/v4"
	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/inkwellapp/inkwell/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/segmentio/encoding/json"
)

var unknownFieldsRE = regexp.MustCompile(`^json: unknown field "(.*)"$`)

// Binder is a custom struct that implements the Echo Binder interface. It
// decodes JSON bodies, query strings, and route params into a struct, uses
// mold to clean up the values, and validator to validate them. Constraint
// violations are rejected before the handler ever runs.
type Binder struct {
	queryDecoder *schema.Decoder
	paramDecoder *schema.Decoder
	conform      *mold.Transformer
	validate     *validator.Validate
}

// New initializes a new Binder instance. Validation error messages refer to
// fields by their json tag so clients see the wire name of the offending
// parameter.
func New() (*Binder, error) {
	queryDecoder := schema.NewDecoder()
	queryDecoder.SetAliasTag("query")
	paramDecoder := schema.NewDecoder()
	paramDecoder.SetAliasTag("param")
	paramDecoder.IgnoreUnknownKeys(true)
	conform := modifiers.New()
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"param", "query", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "" || name == "-" {
				continue
			}
			return name
		}
		return ""
	})

	return &Binder{queryDecoder, paramDecoder, conform, validate}, nil
}

// Bind binds, modifies, and validates payloads against the given struct or
// slice of structs.
func (b *Binder) Bind(i interface{}, c echo.Context) error {
	req := c.Request()
	log := logger.FromEchoContext(c)

	disallowEmptyBody := true
	if disallow, ok := c.Get("disallow_empty_body").(bool); ok {
		disallowEmptyBody = disallow
	}

	if req.ContentLength > 0 {
		// request has a body
		ctype := req.Header.Get(echo.HeaderContentType)
		if !strings.HasPrefix(ctype, echo.MIMEApplicationJSON) {
			return errcodes.UnsupportedMediaType()
		}

		dec := json.NewDecoder(req.Body)
		dec.DisallowUnknownFields()
		defer req.Body.Close()
		if err := dec.Decode(i); err != nil {
			// return better error message when there are unknown fields
			if matches := unknownFieldsRE.FindAllStringSubmatch(err.Error(), -1); len(matches) > 0 && len(matches[0]) > 1 {
				return errcodes.UnknownParameter(matches[0][1])
			}

			// return better error message on type errors
			if err, ok := err.(*json.UnmarshalTypeError); ok {
				msg := formatUnmarshalTypeError(err)
				return errcodes.ValidationTypeError(msg)
			}

			log.Err(err).Error("unknown json decode error")

			return errcodes.MalformedPayload()
		}
	} else {
		// request doesn't have a body
		switch {
		case req.Method == http.MethodGet || req.Method == http.MethodDelete:
			if err := b.decodeQuery(i, c.QueryParams()); err != nil {
				return err
			}
		case disallowEmptyBody:
			return errcodes.EmptyRequestBody()
		default:
			// bodyless write endpoints carry their input in the query string
			if err := b.decodeQuery(i, c.QueryParams()); err != nil {
				return err
			}
		}
	}

	if err := b.decodeParams(i, c); err != nil {
		return err
	}

	return b.check(req, i)
}

// check runs the mold modifiers, fills defaults, and validates. Slices are
// handled element by element since mold and validator only accept structs.
func (b *Binder) check(req *http.Request, i interface{}) error {
	v := reflect.ValueOf(i)
	if v.Kind() == reflect.Ptr && v.Elem().Kind() == reflect.Slice {
		slice := v.Elem()
		for idx := 0; idx < slice.Len(); idx++ {
			elem := slice.Index(idx).Addr().Interface()
			if err := b.checkStruct(req, elem); err != nil {
				return err
			}
		}
		return nil
	}

	return b.checkStruct(req, i)
}

func (b *Binder) checkStruct(req *http.Request, i interface{}) error {
	if err := b.conform.Struct(req.Context(), i); err != nil {
		return errors.WithStack(err)
	}

	if err := defaults.Set(i); err != nil {
		return errors.WithStack(err)
	}

	if err := b.validate.Struct(i); err != nil {
		errs := err.(validator.ValidationErrors)
		msg := formatValidationError(errs[0])
		return errcodes.ValidationError(msg)
	}
	return nil
}

// decodeParams binds route params (e.g. :book_id) into fields carrying a
// `param` tag, so path parameters go through the same constraint checks as
// everything else.
func (b *Binder) decodeParams(i interface{}, c echo.Context) error {
	names := c.ParamNames()
	if len(names) == 0 {
		return nil
	}
	if reflect.Indirect(reflect.ValueOf(i)).Kind() != reflect.Struct {
		return nil
	}

	values := url.Values{}
	for idx, name := range names {
		values.Set(name, c.ParamValues()[idx])
	}

	if err := b.paramDecoder.Decode(i, values); err != nil {
		return b.translateSchemaError(err)
	}
	return nil
}

func (b *Binder) decodeQuery(i interface{}, params url.Values) error {
	if err := b.queryDecoder.Decode(i, params); err != nil {
		return b.translateSchemaError(err)
	}
	return nil
}

func (b *Binder) translateSchemaError(err error) error {
	if errs, ok := err.(schema.MultiError); ok {
		var err error
		for _, err = range errs {
			break
		}

		if err, ok := err.(schema.ConversionError); ok {
			msg := formatSchemaConversionError(err)
			return errcodes.ValidationTypeError(msg)
		}
		if err, ok := err.(schema.UnknownKeyError); ok {
			return errcodes.UnknownParameter(err.Key)
		}

		return errors.WithStack(err)
	}
	return errors.WithStack(err)
}
