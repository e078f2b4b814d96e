package api

import (
	"strconv"

	"github.com/Domenick1991/skyjourney/internal/catalog"
	"github.com/gin-gonic/gin"
)

// getPagination reads page and limit from the query string. Missing or
// invalid values fall back to the first page of ten.
func getPagination(c *gin.Context) catalog.Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return catalog.NormalizePage(page, limit)
}

// listQuery holds the search and sort parameters shared by list endpoints.
// Toggle names a field the user clicked; it flips Sort/Dir like a column
// header.
type listQuery struct {
	Q        string   `form:"q"`
	MinPrice *float64 `form:"min_price"`
	MaxPrice *float64 `form:"max_price"`
	Stops    *int     `form:"stops" binding:"omitempty,min=0"`
	Sort     string   `form:"sort"`
	Dir      string   `form:"dir"`
	Toggle   string   `form:"toggle"`
}

func (q listQuery) filter() catalog.Filter {
	return catalog.Filter{
		Query:    q.Q,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		Stops:    q.Stops,
	}
}

func (q listQuery) order() (catalog.Order, error) {
	dir, err := catalog.ParseDirection(q.Dir)
	if err != nil {
		return catalog.Order{}, err
	}
	o := catalog.Order{Field: q.Sort, Direction: dir}
	if q.Toggle != "" {
		o = o.Toggle(q.Toggle)
	}
	return o, nil
}
