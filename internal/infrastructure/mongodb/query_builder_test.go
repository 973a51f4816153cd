package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The stages perform no I/O, so they are exercised directly against the
// builder's internal state without a running database.

func TestFilter_SpecialClauses(t *testing.T) {
	qb := NewQueryBuilder(nil, map[string]string{
		"discount": "true",
		"genre":    "a,b",
		"minPrice": "10",
		"maxPrice": "50",
		"page":     "2",
		"limit":    "5",
	})
	qb.Filter().Paginate()

	assert.Equal(t, bson.M{"$gt": 0}, qb.filter["discount"])
	assert.Equal(t, bson.M{"$in": []string{"a", "b"}}, qb.filter["genre"])
	assert.Equal(t, bson.M{"$gte": 10.0, "$lte": 50.0}, qb.filter["price"])

	// None of the control keys may survive as literal equality filters.
	for _, key := range []string{"minPrice", "maxPrice", "page", "limit"} {
		_, present := qb.filter[key]
		assert.False(t, present, "%s must not appear as an equality filter", key)
	}

	assert.Equal(t, int64(5), qb.skip, "page 2 with limit 5 skips 5")
	assert.Equal(t, int64(5), qb.limit)
}

func TestFilter_DiscountKeyRemovedEvenWhenNotTrue(t *testing.T) {
	qb := NewQueryBuilder(nil, map[string]string{"discount": "false"})
	qb.Filter()

	_, present := qb.filter["discount"]
	assert.False(t, present, "discount is stripped regardless of its value")
}

func TestFilter_SingleGenreStaysLiteral(t *testing.T) {
	qb := NewQueryBuilder(nil, map[string]string{"genre": "fantasy"})
	qb.Filter()

	assert.Equal(t, "fantasy", qb.filter["genre"])
}

func TestFilter_OperatorGrammar(t *testing.T) {
	qb := NewQueryBuilder(nil, map[string]string{
		"price[gt]":  "100",
		"rating[in]": "3,4,5",
		"author[ne]": "unknown",
	})
	qb.Filter()

	assert.Equal(t, bson.M{"$gt": int64(100)}, qb.filter["price"])
	assert.Equal(t, bson.M{"$in": bson.A{int64(3), int64(4), int64(5)}}, qb.filter["rating"])
	assert.Equal(t, bson.M{"$ne": "unknown"}, qb.filter["author"])
}

func TestFilter_UnknownOperatorIsLiteralKey(t *testing.T) {
	qb := NewQueryBuilder(nil, map[string]string{"price[between]": "1,2"})
	qb.Filter()

	assert.Equal(t, "1,2", qb.filter["price[between]"])
}

func TestFilter_SpecialClauseWinsOverGenericPath(t *testing.T) {
	qb := NewQueryBuilder(nil, map[string]string{
		"discount":     "true",
		"discount[lt]": "5",
	})
	qb.Filter()

	// The special clause is merged last and owns the field.
	assert.Equal(t, bson.M{"$gt": 0}, qb.filter["discount"])
}

func TestFilter_FeaturedCoercion(t *testing.T) {
	qb := NewQueryBuilder(nil, map[string]string{"featured": "true"})
	qb.Filter()
	assert.Equal(t, true, qb.filter["featured"])

	qb = NewQueryBuilder(nil, map[string]string{"featured": "false"})
	qb.Filter()
	assert.Equal(t, false, qb.filter["featured"])

	qb = NewQueryBuilder(nil, map[string]string{"featured": "maybe"})
	qb.Filter()
	assert.Equal(t, "maybe", qb.filter["featured"])
}

func TestSearch_BuildsCaseInsensitiveOr(t *testing.T) {
	qb := NewQueryBuilder(nil, map[string]string{"searchTerm": "tolkien"})
	qb.Search("title", "author")

	or, ok := qb.filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)
	assert.Equal(t, bson.M{"title": primitive.Regex{Pattern: "tolkien", Options: "i"}}, or[0])
	assert.Equal(t, bson.M{"author": primitive.Regex{Pattern: "tolkien", Options: "i"}}, or[1])
}

func TestSearch_EmptyTermIsNoOp(t *testing.T) {
	qb := NewQueryBuilder(nil, map[string]string{})
	qb.Search("title", "author")

	assert.Empty(t, qb.filter)
}

func TestSort_DefaultIsNewestFirst(t *testing.T) {
	qb := NewQueryBuilder(nil, map[string]string{})
	qb.Sort()

	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, qb.sort)
}

func TestSort_DiscountedPrice(t *testing.T) {
	// Ascending: favor higher discount, then lower price.
	qb := NewQueryBuilder(nil, map[string]string{"sort": "discountedPrice"})
	qb.Sort()
	assert.Equal(t, bson.D{{Key: "discount", Value: -1}, {Key: "price", Value: 1}}, qb.sort)

	// Descending marker inverts both.
	qb = NewQueryBuilder(nil, map[string]string{"sort": "discountedPrice.desc"})
	qb.Sort()
	assert.Equal(t, bson.D{{Key: "discount", Value: 1}, {Key: "price", Value: -1}}, qb.sort)
}

func TestSort_FieldDirectionPair(t *testing.T) {
	qb := NewQueryBuilder(nil, map[string]string{"sort": "price,desc"})
	qb.Sort()
	assert.Equal(t, bson.D{{Key: "price", Value: -1}}, qb.sort)

	qb = NewQueryBuilder(nil, map[string]string{"sort": "price,up"})
	qb.Sort()
	assert.Equal(t, bson.D{{Key: "price", Value: 1}}, qb.sort, "anything but desc sorts ascending")
}

func TestSort_Passthrough(t *testing.T) {
	qb := NewQueryBuilder(nil, map[string]string{"sort": "title"})
	qb.Sort()
	assert.Equal(t, bson.D{{Key: "title", Value: 1}}, qb.sort)

	qb = NewQueryBuilder(nil, map[string]string{"sort": "-title"})
	qb.Sort()
	assert.Equal(t, bson.D{{Key: "title", Value: -1}}, qb.sort)
}

func TestPaginate_Defaults(t *testing.T) {
	qb := NewQueryBuilder(nil, map[string]string{})
	qb.Paginate()
	assert.Equal(t, int64(0), qb.skip)
	assert.Equal(t, int64(10), qb.limit)

	qb = NewQueryBuilder(nil, map[string]string{"page": "abc", "limit": "-3"})
	qb.Paginate()
	assert.Equal(t, int64(0), qb.skip, "invalid input falls back to defaults")
	assert.Equal(t, int64(10), qb.limit)
}

func TestFields_DefaultExcludesVersionKey(t *testing.T) {
	qb := NewQueryBuilder(nil, map[string]string{})
	qb.Fields()
	assert.Equal(t, bson.D{{Key: "__v", Value: 0}}, qb.projection)
}

func TestFields_InclusionAndExclusion(t *testing.T) {
	qb := NewQueryBuilder(nil, map[string]string{"fields": "title,author"})
	qb.Fields()
	assert.Equal(t, bson.D{{Key: "title", Value: 1}, {Key: "author", Value: 1}}, qb.projection)

	qb = NewQueryBuilder(nil, map[string]string{"fields": "-password,-__v"})
	qb.Fields()
	assert.Equal(t, bson.D{{Key: "password", Value: 0}, {Key: "__v", Value: 0}}, qb.projection)
}

func TestListMeta_TotalPageCeiling(t *testing.T) {
	meta := newListMeta(1, 10, 0)
	assert.Equal(t, int64(0), meta.TotalPage, "empty collection has zero pages")

	meta = newListMeta(1, 10, 21)
	assert.Equal(t, int64(3), meta.TotalPage)

	meta = newListMeta(2, 10, 20)
	assert.Equal(t, int64(2), meta.TotalPage)
	assert.Equal(t, int64(20), meta.Total)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 10, meta.Limit)
}

func TestStages_AreOrderIndependent(t *testing.T) {
	params := map[string]string{"searchTerm": "go", "discount": "true", "sort": "price,desc", "limit": "5"}

	a := NewQueryBuilder(nil, params).Search("title").Filter().Sort().Paginate().Fields()
	b := NewQueryBuilder(nil, params).Fields().Paginate().Sort().Filter().Search("title")

	assert.Equal(t, a.filter, b.filter)
	assert.Equal(t, a.sort, b.sort)
	assert.Equal(t, a.skip, b.skip)
	assert.Equal(t, a.limit, b.limit)
	assert.Equal(t, a.projection, b.projection)
}
