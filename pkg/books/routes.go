package books

import (
	"github.com/inkwellapp/inkwell/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers all book routes under /book.
func RegisterRoutes(e *echo.Echo, db *bun.DB, cfg *config.Config) {
	bookService := NewService(db, cfg.DatabaseQueryTimeout)

	h := &handler{
		bookService: bookService,
	}

	// The bulk update carries its input in the query string, so an empty body
	// has to be allowed on that route.
	allowEmptyBody := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("disallow_empty_body", false)
			return next(c)
		}
	}

	g := e.Group("/book")

	g.GET("/all", h.listAll)
	g.GET("/by-id/:book_id", h.retrieve)
	g.GET("/by-single-condition/:min_price", h.listByMinPrice)
	g.GET("/by-multi-conditions/:book_id/:min_price", h.listByIDAndPrice)
	g.GET("/by-condition-single/:book_name", h.searchByName)
	g.GET("/order-by/:sort_field", h.listSorted)
	g.GET("/page", h.listPaginated)
	g.POST("/create", h.create)
	g.POST("/create/batch", h.createBatch)
	g.PUT("/update/batch", h.updateByPublisher, allowEmptyBody)
	g.PUT("/update/:book_id", h.update)
	g.DELETE("/delete/batch", h.deleteUnderPrice)
	g.DELETE("/delete/:book_id", h.deleteBook)
}
