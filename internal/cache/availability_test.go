package cache

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestListingKey_GroupsByAdvisor(t *testing.T) {
	prefix := fmt.Sprintf("availability:%d:", 7)

	// Every link of the advisor lives under the same prefix, so one
	// invalidation sweep covers sibling links, dated and undated listings
	// alike.
	assert.True(t, strings.HasPrefix(ListingKey(7, "slug-aaaaa", ""), prefix))
	assert.True(t, strings.HasPrefix(ListingKey(7, "slug-bbbbb", "2026-01-05"), prefix))

	assert.False(t, strings.HasPrefix(ListingKey(8, "slug-aaaaa", ""), prefix))
}

func TestListingKey_Distinct(t *testing.T) {
	a := ListingKey(7, "slug-aaaaa", "")
	b := ListingKey(7, "slug-aaaaa", "2026-01-05")
	c := ListingKey(7, "slug-bbbbb", "")

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, b, c)
}

func TestAvailabilityCache_NilClientIsNoop(t *testing.T) {
	ctx := context.Background()
	c := NewAvailabilityCache(nil, 30*time.Second)

	var out struct{ X int }
	assert.False(t, c.Get(ctx, "k", &out))

	c.Set(ctx, "k", map[string]int{"x": 1})
	c.InvalidateAdvisor(ctx, 7)

	assert.False(t, c.Get(ctx, "k", &out))
}
