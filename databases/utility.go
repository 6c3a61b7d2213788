package databases

import "go.mongodb.org/mongo-driver/mongo/options"

// page size bounds applied to every list call
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type mongoPaginate struct {
	limit int64
	page  int64
}

// newMongoPaginate clamps page to >= 1 and limit to (0, MaxPageSize]
func newMongoPaginate(limit, page int) *mongoPaginate {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return &mongoPaginate{
		limit: int64(limit),
		page:  int64(page),
	}
}

func (mp *mongoPaginate) getPaginatedOpts() *options.FindOptions {
	l := mp.limit
	skip := mp.page*mp.limit - mp.limit
	fOpt := options.FindOptions{Limit: &l, Skip: &skip}

	return &fOpt
}
