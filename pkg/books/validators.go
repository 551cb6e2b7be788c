package books

type BookIDParams struct {
	BookID int `param:"book_id" json:"-" validate:"required,gt=0"`
}

type MinPriceParams struct {
	MinPrice float64 `param:"min_price" json:"-" validate:"min=0"`
}

type MultiConditionParams struct {
	BookID   int     `param:"book_id" json:"-" validate:"min=0"`
	MinPrice float64 `param:"min_price" json:"-" validate:"min=0"`
}

type SearchByNameParams struct {
	BookName string `param:"book_name" json:"-" mod:"trim" validate:"required,min=1,max=255"`
}

type OrderByParams struct {
	SortField string `param:"sort_field" json:"-" validate:"required"`
	IsDesc    bool   `query:"is_desc" json:"is_desc,omitempty"`
}

type PageQuery struct {
	Page     *int `query:"page" json:"page,omitempty" default:"1" validate:"required,min=1"`
	PageSize *int `query:"page_size" json:"page_size,omitempty" default:"10" validate:"required,min=1,max=100"`
}

type CreateBookPayload struct {
	Name      string  `json:"bookname" mod:"trim" validate:"required,min=1,max=255"`
	Author    string  `json:"author" mod:"trim" validate:"required,min=1,max=255"`
	Price     float64 `json:"price" validate:"required,gt=0"`
	Publisher string  `json:"publisher" mod:"trim" validate:"required,min=1,max=255"`
}

// UpdateBookPayload carries a pointer per field so "not supplied" is
// distinguishable from "set to the zero value"; only non-nil fields are
// written back.
type UpdateBookPayload struct {
	BookID    int      `param:"book_id" json:"-" validate:"required,gt=0"`
	Name      *string  `json:"bookname,omitempty" mod:"trim" validate:"omitempty,min=1,max=255"`
	Author    *string  `json:"author,omitempty" mod:"trim" validate:"omitempty,min=1,max=255"`
	Price     *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Publisher *string  `json:"publisher,omitempty" mod:"trim" validate:"omitempty,min=1,max=255"`
}

type BulkPriceUpdateQuery struct {
	Publisher string  `query:"publisher" json:"-" mod:"trim" validate:"required,min=1,max=255"`
	NewPrice  float64 `query:"new_price" json:"-" validate:"required,gt=0"`
}

type BulkDeleteQuery struct {
	PriceCeiling float64 `query:"min_price" json:"-" validate:"required,gt=0"`
}
