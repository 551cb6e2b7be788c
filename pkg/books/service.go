package books

import (
	"context"
	"database/sql"
	"time"

	"github.com/inkwellapp/inkwell/pkg/database"
	"github.com/inkwellapp/inkwell/pkg/errcodes"
	"github.com/inkwellapp/inkwell/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Sortable columns for ListBooksOptions.OrderBy. Anything else is rejected at
// the handler with an unsupported_option error.
const (
	OrderByID    = "id"
	OrderByPrice = "price"
)

type RetrieveBookOptions struct {
	ID *int
	// NameContains matches the first book whose name contains the fragment
	// (case-sensitive), lowest id first.
	NameContains *string
}

type ListBooksOptions struct {
	// MinPrice keeps books with price >= MinPrice.
	MinPrice *float64
	// IDAfter and PriceAbove are both strict bounds and are ANDed together
	// with any other filters.
	IDAfter    *int
	PriceAbove *float64
	OrderBy    string
	Descending bool
	Limit      *int
	Offset     *int

	includeTotal bool
}

type UpdateBookOptions struct {
	Columns []string
}

type Service struct {
	db           *bun.DB
	queryTimeout time.Duration
}

func NewService(db *bun.DB, queryTimeout time.Duration) *Service {
	return &Service{db, queryTimeout}
}

func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	ctx, cancel := database.WithQueryTimeout(ctx, svc.queryTimeout)
	defer cancel()

	book := &models.Book{}

	q := svc.db.
		NewSelect().
		Model(book)

	if opts.ID != nil {
		q = q.Where("b.id = ?", *opts.ID)
	}
	if opts.NameContains != nil {
		// instr keeps the match case-sensitive; LIKE wouldn't be.
		q = q.Where("instr(b.bookname, ?) > 0", *opts.NameContains).
			Order("b.id ASC").
			Limit(1)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	return book, nil
}

func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) ([]*models.Book, error) {
	books, _, err := svc.listBooksWithTotal(ctx, opts)
	return books, errors.WithStack(err)
}

func (svc *Service) ListBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	opts.includeTotal = true
	return svc.listBooksWithTotal(ctx, opts)
}

func (svc *Service) listBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	ctx, cancel := database.WithQueryTimeout(ctx, svc.queryTimeout)
	defer cancel()

	var books []*models.Book
	var total int
	var err error

	order := "b.id"
	if opts.OrderBy == OrderByPrice {
		order = "b.price"
	}
	if opts.Descending {
		order += " DESC"
	} else {
		order += " ASC"
	}

	q := svc.db.
		NewSelect().
		Model(&books).
		Order(order)

	if opts.MinPrice != nil {
		q = q.Where("b.price >= ?", *opts.MinPrice)
	}
	if opts.IDAfter != nil {
		q = q.Where("b.id > ?", *opts.IDAfter)
	}
	if opts.PriceAbove != nil {
		q = q.Where("b.price > ?", *opts.PriceAbove)
	}
	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return books, total, nil
}

func (svc *Service) CreateBook(ctx context.Context, book *models.Book) error {
	ctx, cancel := database.WithQueryTimeout(ctx, svc.queryTimeout)
	defer cancel()

	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = book.CreatedAt

	_, err := svc.db.
		NewInsert().
		Model(book).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

// CreateBooks inserts all rows in one transaction, so either every book is
// persisted or none are. Generated ids and timestamps are read back into the
// given slice in input order.
func (svc *Service) CreateBooks(ctx context.Context, books []*models.Book) error {
	if len(books) == 0 {
		return nil
	}

	ctx, cancel := database.WithQueryTimeout(ctx, svc.queryTimeout)
	defer cancel()

	now := time.Now()
	for _, book := range books {
		if book.CreatedAt.IsZero() {
			book.CreatedAt = now
		}
		book.UpdatedAt = book.CreatedAt
	}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.
			NewInsert().
			Model(&books).
			Returning("*").
			Exec(ctx)
		return errors.WithStack(err)
	})
	return errors.WithStack(err)
}

func (svc *Service) UpdateBook(ctx context.Context, book *models.Book, opts UpdateBookOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	ctx, cancel := database.WithQueryTimeout(ctx, svc.queryTimeout)
	defer cancel()

	book.UpdatedAt = time.Now()
	columns := append(opts.Columns, "update_time")

	_, err := svc.db.
		NewUpdate().
		Model(book).
		Column(columns...).
		WherePK().
		Exec(ctx)
	return errors.WithStack(err)
}

// UpdatePriceByPublisher sets the price on every book from the given
// publisher in a single bulk statement and returns the number of rows
// touched. Zero rows is a valid outcome, not an error.
func (svc *Service) UpdatePriceByPublisher(ctx context.Context, publisher string, newPrice float64) (int, error) {
	ctx, cancel := database.WithQueryTimeout(ctx, svc.queryTimeout)
	defer cancel()

	result, err := svc.db.
		NewUpdate().
		Model((*models.Book)(nil)).
		Set("price = ?", newPrice).
		Set("update_time = ?", time.Now()).
		Where("publisher = ?", publisher).
		Exec(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	n, _ := result.RowsAffected()
	return int(n), nil
}

func (svc *Service) DeleteBook(ctx context.Context, bookID int) error {
	ctx, cancel := database.WithQueryTimeout(ctx, svc.queryTimeout)
	defer cancel()

	_, err := svc.db.
		NewDelete().
		Model((*models.Book)(nil)).
		Where("id = ?", bookID).
		Exec(ctx)
	return errors.WithStack(err)
}

// DeleteBooksUnderPrice removes every book priced strictly below the ceiling
// in one bulk statement and returns the number of rows removed.
func (svc *Service) DeleteBooksUnderPrice(ctx context.Context, priceCeiling float64) (int, error) {
	ctx, cancel := database.WithQueryTimeout(ctx, svc.queryTimeout)
	defer cancel()

	result, err := svc.db.
		NewDelete().
		Model((*models.Book)(nil)).
		Where("price < ?", priceCeiling).
		Exec(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	n, _ := result.RowsAffected()
	return int(n), nil
}
