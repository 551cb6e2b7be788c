package books

import (
	"fmt"
	"math"

	"github.com/inkwellapp/inkwell/pkg/errcodes"
	"github.com/inkwellapp/inkwell/pkg/models"
	"github.com/inkwellapp/inkwell/pkg/respond"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	bookService *Service
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	params := BookIDParams{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &params.BookID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return respond.OK(c, fmt.Sprintf("Found book %d.", book.ID), book)
}

func (h *handler) listAll(c echo.Context) error {
	ctx := c.Request().Context()

	books, err := h.bookService.ListBooks(ctx, ListBooksOptions{})
	if err != nil {
		return errors.WithStack(err)
	}

	return respond.OK(c, fmt.Sprintf("Found %d books.", len(books)), books)
}

func (h *handler) listByMinPrice(c echo.Context) error {
	ctx := c.Request().Context()

	params := MinPriceParams{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	books, err := h.bookService.ListBooks(ctx, ListBooksOptions{
		MinPrice: &params.MinPrice,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	msg := fmt.Sprintf("Found %d books priced at least %.2f.", len(books), params.MinPrice)
	return respond.OK(c, msg, books)
}

func (h *handler) listByIDAndPrice(c echo.Context) error {
	ctx := c.Request().Context()

	params := MultiConditionParams{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	books, err := h.bookService.ListBooks(ctx, ListBooksOptions{
		IDAfter:    &params.BookID,
		PriceAbove: &params.MinPrice,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	msg := fmt.Sprintf("Found %d books with id > %d and price > %.2f.", len(books), params.BookID, params.MinPrice)
	return respond.OK(c, msg, books)
}

func (h *handler) searchByName(c echo.Context) error {
	ctx := c.Request().Context()

	params := SearchByNameParams{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		NameContains: &params.BookName,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	msg := fmt.Sprintf("Found book %d matching %q.", book.ID, params.BookName)
	return respond.OK(c, msg, book)
}

func (h *handler) listSorted(c echo.Context) error {
	ctx := c.Request().Context()

	params := OrderByParams{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	if params.SortField != OrderByID && params.SortField != OrderByPrice {
		return errcodes.UnsupportedOption("sort_field", params.SortField)
	}

	books, err := h.bookService.ListBooks(ctx, ListBooksOptions{
		OrderBy:    params.SortField,
		Descending: params.IsDesc,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	direction := "ascending"
	if params.IsDesc {
		direction = "descending"
	}
	msg := fmt.Sprintf("Found %d books ordered by %s %s.", len(books), params.SortField, direction)
	return respond.OK(c, msg, books)
}

type bookPage struct {
	Books      []*models.Book `json:"books"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
}

func (h *handler) listPaginated(c echo.Context) error {
	ctx := c.Request().Context()

	params := PageQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	page := *params.Page
	pageSize := *params.PageSize
	offset := (page - 1) * pageSize

	books, total, err := h.bookService.ListBooksWithTotal(ctx, ListBooksOptions{
		Limit:  &pageSize,
		Offset: &offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	resp := bookPage{
		Books:      books,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
		Page:       page,
		PageSize:   pageSize,
	}

	msg := fmt.Sprintf("Page %d of %d (%d books total).", page, resp.TotalPages, total)
	return respond.OK(c, msg, resp)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book := &models.Book{
		Name:      params.Name,
		Author:    params.Author,
		Price:     params.Price,
		Publisher: params.Publisher,
	}

	if err := h.bookService.CreateBook(ctx, book); err != nil {
		return errors.WithStack(err)
	}

	return respond.Created(c, fmt.Sprintf("Created book %d.", book.ID), book)
}

func (h *handler) createBatch(c echo.Context) error {
	ctx := c.Request().Context()

	params := []CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}
	if len(params) == 0 {
		return errcodes.ValidationError("Request must include at least one book.")
	}

	books := make([]*models.Book, len(params))
	for i, p := range params {
		books[i] = &models.Book{
			Name:      p.Name,
			Author:    p.Author,
			Price:     p.Price,
			Publisher: p.Publisher,
		}
	}

	if err := h.bookService.CreateBooks(ctx, books); err != nil {
		return errors.WithStack(err)
	}

	return respond.Created(c, fmt.Sprintf("Created %d books.", len(books)), books)
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	params := UpdateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &params.BookID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	columns := []string{}
	if params.Name != nil {
		book.Name = *params.Name
		columns = append(columns, "bookname")
	}
	if params.Author != nil {
		book.Author = *params.Author
		columns = append(columns, "author")
	}
	if params.Price != nil {
		book.Price = *params.Price
		columns = append(columns, "price")
	}
	if params.Publisher != nil {
		book.Publisher = *params.Publisher
		columns = append(columns, "publisher")
	}

	if len(columns) == 0 {
		return respond.OK(c, fmt.Sprintf("Book %d unchanged.", book.ID), book)
	}

	err = h.bookService.UpdateBook(ctx, book, UpdateBookOptions{Columns: columns})
	if err != nil {
		return errors.WithStack(err)
	}

	book, err = h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &params.BookID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return respond.OK(c, fmt.Sprintf("Updated book %d.", book.ID), book)
}

func (h *handler) updateByPublisher(c echo.Context) error {
	ctx := c.Request().Context()

	params := BulkPriceUpdateQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	count, err := h.bookService.UpdatePriceByPublisher(ctx, params.Publisher, params.NewPrice)
	if err != nil {
		return errors.WithStack(err)
	}

	msg := fmt.Sprintf("Updated %d books published by %s to price %.2f.", count, params.Publisher, params.NewPrice)
	return respond.OK(c, msg, count)
}

func (h *handler) deleteBook(c echo.Context) error {
	ctx := c.Request().Context()

	params := BookIDParams{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// Confirm the book exists so a missing id surfaces as a 404.
	if _, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{ID: &params.BookID}); err != nil {
		return errors.WithStack(err)
	}

	if err := h.bookService.DeleteBook(ctx, params.BookID); err != nil {
		return errors.WithStack(err)
	}

	return respond.OK[any](c, fmt.Sprintf("Deleted book %d.", params.BookID), nil)
}

func (h *handler) deleteUnderPrice(c echo.Context) error {
	ctx := c.Request().Context()

	params := BulkDeleteQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	count, err := h.bookService.DeleteBooksUnderPrice(ctx, params.PriceCeiling)
	if err != nil {
		return errors.WithStack(err)
	}

	msg := fmt.Sprintf("Deleted %d books priced below %.2f.", count, params.PriceCeiling)
	return respond.OK(c, msg, count)
}
