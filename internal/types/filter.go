package types

import (
	"github.com/samber/lo"
)

const (
	FILTER_DEFAULT_LIMIT = 50
	FILTER_DEFAULT_SORT  = "created_at"
	FILTER_DEFAULT_ORDER = "desc"

	OrderDesc = "desc"
	OrderAsc  = "asc"
)

// BaseFilter defines common filtering capabilities
type BaseFilter interface {
	GetLimit() int
	GetOffset() int
	GetSort() string
	GetOrder() string
	Validate() error
	IsUnlimited() bool
}

// QueryFilter represents a generic query filter with optional fields
type QueryFilter struct {
	Limit  *int    `json:"limit,omitempty" form:"limit" validate:"omitempty,min=1,max=1000"`
	Offset *int    `json:"offset,omitempty" form:"offset" validate:"omitempty,min=0"`
	Sort   *string `json:"sort,omitempty" form:"sort" validate:"omitempty,oneof=created_at updated_at date number"`
	Order  *string `json:"order,omitempty" form:"order" validate:"omitempty,oneof=asc desc"`
}

// NewDefaultQueryFilter defines default values for query filters
func NewDefaultQueryFilter() *QueryFilter {
	return &QueryFilter{
		Limit:  lo.ToPtr(FILTER_DEFAULT_LIMIT),
		Offset: lo.ToPtr(0),
		Sort:   lo.ToPtr(FILTER_DEFAULT_SORT),
		Order:  lo.ToPtr(FILTER_DEFAULT_ORDER),
	}
}

// NewNoLimitQueryFilter returns a filter that disables pagination
func NewNoLimitQueryFilter() *QueryFilter {
	return &QueryFilter{
		Sort:  lo.ToPtr(FILTER_DEFAULT_SORT),
		Order: lo.ToPtr(FILTER_DEFAULT_ORDER),
	}
}

func (f *QueryFilter) GetLimit() int {
	if f == nil || f.Limit == nil {
		return FILTER_DEFAULT_LIMIT
	}
	return *f.Limit
}

func (f *QueryFilter) GetOffset() int {
	if f == nil || f.Offset == nil {
		return 0
	}
	return *f.Offset
}

func (f *QueryFilter) GetSort() string {
	if f == nil || f.Sort == nil {
		return FILTER_DEFAULT_SORT
	}
	return *f.Sort
}

func (f *QueryFilter) GetOrder() string {
	if f == nil || f.Order == nil {
		return FILTER_DEFAULT_ORDER
	}
	return *f.Order
}

// IsUnlimited returns true when no limit has been requested
func (f *QueryFilter) IsUnlimited() bool {
	return f == nil || f.Limit == nil
}

func (f *QueryFilter) Validate() error {
	if f == nil {
		return nil
	}
	return validateStruct(f)
}

// DocumentFilter narrows document listings to an owner or a guest address
type DocumentFilter struct {
	*QueryFilter
	OwnerID  string       `json:"owner_id,omitempty" form:"-"`
	GuestIP  string       `json:"guest_ip,omitempty" form:"-"`
	Type     DocumentType `json:"type,omitempty" form:"type"`
	LocalIDs []string     `json:"local_ids,omitempty" form:"-"`
}

// NewDocumentFilter returns a document filter with default pagination
func NewDocumentFilter() *DocumentFilter {
	return &DocumentFilter{QueryFilter: NewDefaultQueryFilter()}
}

func (f *DocumentFilter) Validate() error {
	if f == nil {
		return nil
	}
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	if f.Type != "" {
		if err := f.Type.Validate(); err != nil {
			return err
		}
	}
	return nil
}
