// Package httpresp carries the JSON envelopes shared by the advisor-facing
// list endpoints.
package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListEnvelope wraps a collection with its size so dashboard clients never
// have to distinguish a missing array from an empty one.
type ListEnvelope[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func List[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}

	c.JSON(http.StatusOK, ListEnvelope[T]{
		Data:  items,
		Total: len(items),
	})
}
