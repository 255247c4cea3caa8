package mongostore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/techmart/storefront/internal/domain/product"
)

func TestBuildFilter(t *testing.T) {
	t.Run("empty query matches everything", func(t *testing.T) {
		assert.Empty(t, buildFilter(product.Query{}))
	})

	t.Run("category is case-insensitive substring", func(t *testing.T) {
		filter := buildFilter(product.Query{Category: "mobile"})

		re, ok := filter["category"].(primitive.Regex)
		require.True(t, ok)
		assert.Equal(t, "mobile", re.Pattern)
		assert.Equal(t, "i", re.Options)
	})

	t.Run("search ORs name description category", func(t *testing.T) {
		filter := buildFilter(product.Query{Search: "galaxy"})

		or, ok := filter["$or"].(bson.A)
		require.True(t, ok)
		require.Len(t, or, 3)

		fields := make([]string, 0, 3)
		for _, clause := range or {
			m := clause.(bson.M)
			for field, v := range m {
				fields = append(fields, field)
				re := v.(primitive.Regex)
				assert.Equal(t, "galaxy", re.Pattern)
				assert.Equal(t, "i", re.Options)
			}
		}
		assert.ElementsMatch(t, []string{"name", "description", "category"}, fields)
	})

	t.Run("regex metacharacters are quoted", func(t *testing.T) {
		filter := buildFilter(product.Query{Search: "a.b*"})

		or := filter["$or"].(bson.A)
		re := or[0].(bson.M)["name"].(primitive.Regex)
		assert.Equal(t, `a\.b\*`, re.Pattern)
	})

	t.Run("category and search combine", func(t *testing.T) {
		filter := buildFilter(product.Query{Category: "Laptop", Search: "xps"})
		assert.Contains(t, filter, "category")
		assert.Contains(t, filter, "$or")
	})
}

func TestBuildSort(t *testing.T) {
	tests := []struct {
		key   string
		field string
		dir   int
	}{
		{product.SortPriceLow, "price", 1},
		{product.SortPriceHigh, "price", -1},
		{product.SortRating, "rating", -1},
		{product.SortNewest, "created_at", -1},
		{"", "created_at", -1},
		{"bogus", "created_at", -1},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			sort := buildSort(tt.key)
			require.Len(t, sort, 1)
			assert.Equal(t, tt.field, sort[0].Key)
			assert.Equal(t, tt.dir, sort[0].Value)
		})
	}
}
