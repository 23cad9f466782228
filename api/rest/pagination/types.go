package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// a window into a list endpoint's results
type Params struct {
	Limit  int
	Offset int
}

// describes the returned window so clients can page on
type Meta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

func NewMeta(params Params, total int) Meta {
	return Meta{
		Total:   total,
		Limit:   params.Limit,
		Offset:  params.Offset,
		HasMore: params.Offset+params.Limit < total,
	}
}

// clamps limit into [1, maxLimit] (0 means defaultLimit) and offset to >= 0
func DefaultParams(limit, offset, defaultLimit, maxLimit int) Params {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Params{
		Limit:  limit,
		Offset: offset,
	}
}

// reads ?limit= and ?offset=, ignoring values that are not numbers
func FromQuery(c *gin.Context, defaultLimit, maxLimit int) Params {
	limit, _ := strconv.Atoi(c.Query("limit"))   //nolint:errcheck // unparsable means default
	offset, _ := strconv.Atoi(c.Query("offset")) //nolint:errcheck // unparsable means zero

	return DefaultParams(limit, offset, defaultLimit, maxLimit)
}
