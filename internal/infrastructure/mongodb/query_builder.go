package mongodb

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sazzadh/bookshop-api/internal/domain/repository"
)

// Control keys that parameterize derived clauses instead of filtering
// directly.
var reservedParams = map[string]struct{}{
	"searchTerm": {},
	"sort":       {},
	"page":       {},
	"limit":      {},
	"fields":     {},
}

// Comparison operators accepted in `field[op]=value` parameters.
var filterOperators = map[string]struct{}{
	"gt": {}, "gte": {}, "lt": {}, "lte": {}, "eq": {}, "ne": {}, "in": {},
}

const (
	defaultPage  = 1
	defaultLimit = 10
)

// QueryBuilder translates a raw HTTP parameter map into a composed
// filter/sort/pagination/projection query against a collection. Stages are
// chainable, safe to call in any order or to skip, and mutate only the
// builder; no stage touches the database except CountTotal and Find.
type QueryBuilder struct {
	coll       *mongo.Collection
	params     map[string]string
	filter     bson.M
	sort       bson.D
	skip       int64
	limit      int64
	projection bson.D
}

// NewQueryBuilder wraps a collection and the request's query parameters.
func NewQueryBuilder(coll *mongo.Collection, params map[string]string) *QueryBuilder {
	if params == nil {
		params = map[string]string{}
	}
	return &QueryBuilder{
		coll:   coll,
		params: params,
		filter: bson.M{},
	}
}

// Search adds an OR of case-insensitive regex matches across the given
// fields when a searchTerm parameter is present. Absent or empty searchTerm
// is a no-op.
func (qb *QueryBuilder) Search(fields ...string) *QueryBuilder {
	term := qb.params["searchTerm"]
	if term == "" {
		return qb
	}
	or := make(bson.A, 0, len(fields))
	for _, field := range fields {
		or = append(or, bson.M{field: primitive.Regex{Pattern: term, Options: "i"}})
	}
	qb.filter["$or"] = or
	return qb
}

// Filter builds the filter document from every non-reserved parameter.
// discount/genre/minPrice/maxPrice are extracted into dedicated clauses
// before generic filtering and therefore cannot be overridden through the
// generic path; featured is coerced to a boolean; remaining parameters are
// either plain equality filters or `field[op]=value` comparisons with op in
// {gt, gte, lt, lte, eq, ne, in}.
func (qb *QueryBuilder) Filter() *QueryBuilder {
	generic := map[string]string{}
	for k, v := range qb.params {
		if _, reserved := reservedParams[k]; !reserved {
			generic[k] = v
		}
	}

	special := bson.M{}

	// discount=true restricts to positively discounted records; the raw key
	// never reaches the generic path, whatever its value.
	if raw, ok := generic["discount"]; ok {
		if raw == "true" {
			special["discount"] = bson.M{"$gt": 0}
		}
		delete(generic, "discount")
	}

	// A comma-separated genre becomes a membership test.
	if raw, ok := generic["genre"]; ok && strings.Contains(raw, ",") {
		genres := strings.Split(raw, ",")
		special["genre"] = bson.M{"$in": genres}
		delete(generic, "genre")
	}

	// minPrice/maxPrice form a single range clause on price.
	_, hasMin := generic["minPrice"]
	_, hasMax := generic["maxPrice"]
	if hasMin || hasMax {
		price := bson.M{}
		if raw, ok := generic["minPrice"]; ok {
			if n, err := strconv.ParseFloat(raw, 64); err == nil {
				price["$gte"] = n
			}
			delete(generic, "minPrice")
		}
		if raw, ok := generic["maxPrice"]; ok {
			if n, err := strconv.ParseFloat(raw, 64); err == nil {
				price["$lte"] = n
			}
			delete(generic, "maxPrice")
		}
		special["price"] = price
	}

	// featured stays in the generic path but is coerced so equality
	// semantics are consistent for both boolean spellings.
	if raw, ok := generic["featured"]; ok {
		if raw == "true" || raw == "false" {
			qb.filter["featured"] = raw == "true"
			delete(generic, "featured")
		}
	}

	for key, value := range generic {
		if field, op, ok := splitOperatorKey(key); ok {
			clause, _ := qb.filter[field].(bson.M)
			if clause == nil {
				clause = bson.M{}
			}
			if op == "in" {
				members := bson.A{}
				for _, part := range strings.Split(value, ",") {
					members = append(members, coerceScalar(part))
				}
				clause["$in"] = members
			} else {
				clause["$"+op] = coerceScalar(value)
			}
			qb.filter[field] = clause
			continue
		}
		qb.filter[key] = value
	}

	// Special clauses are merged last so they always win.
	for k, v := range special {
		qb.filter[k] = v
	}
	return qb
}

// Sort derives the sort order from the sort parameter. Absent sort means
// newest first. A value starting with discountedPrice orders by "best
// discounted price": ascending favors higher discount then lower price,
// descending the inverse. A `field,direction` pair sorts by that field;
// any other value sorts by the named field, descending when prefixed
// with '-'.
func (qb *QueryBuilder) Sort() *QueryBuilder {
	raw := qb.params["sort"]
	switch {
	case raw == "":
		qb.sort = bson.D{{Key: "createdAt", Value: -1}}
	case strings.HasPrefix(raw, "discountedPrice"):
		if strings.Contains(raw, "desc") {
			qb.sort = bson.D{{Key: "discount", Value: 1}, {Key: "price", Value: -1}}
		} else {
			qb.sort = bson.D{{Key: "discount", Value: -1}, {Key: "price", Value: 1}}
		}
	case strings.Contains(raw, ","):
		parts := strings.SplitN(raw, ",", 2)
		order := 1
		if parts[1] == "desc" {
			order = -1
		}
		qb.sort = bson.D{{Key: parts[0], Value: order}}
	case strings.HasPrefix(raw, "-"):
		qb.sort = bson.D{{Key: strings.TrimPrefix(raw, "-"), Value: -1}}
	default:
		qb.sort = bson.D{{Key: raw, Value: 1}}
	}
	return qb
}

// Paginate computes skip/limit from the page and limit parameters,
// defaulting to page 1 and limit 10 on absent, non-numeric or non-positive
// input.
func (qb *QueryBuilder) Paginate() *QueryBuilder {
	page := positiveInt(qb.params["page"], defaultPage)
	limit := positiveInt(qb.params["limit"], defaultLimit)
	qb.skip = int64((page - 1) * limit)
	qb.limit = int64(limit)
	return qb
}

// Fields converts the comma-separated fields parameter into a projection;
// a '-' prefix excludes a field. Absent fields excludes only the internal
// version key.
func (qb *QueryBuilder) Fields() *QueryBuilder {
	raw := qb.params["fields"]
	if raw == "" {
		qb.projection = bson.D{{Key: "__v", Value: 0}}
		return qb
	}
	projection := bson.D{}
	for _, field := range strings.Split(raw, ",") {
		if strings.HasPrefix(field, "-") {
			projection = append(projection, bson.E{Key: strings.TrimPrefix(field, "-"), Value: 0})
		} else {
			projection = append(projection, bson.E{Key: field, Value: 1})
		}
	}
	qb.projection = projection
	return qb
}

// Find executes the composed query and decodes every matching document into
// results (a pointer to a slice).
func (qb *QueryBuilder) Find(ctx context.Context, results interface{}) error {
	opts := options.Find()
	if qb.sort != nil {
		opts.SetSort(qb.sort)
	}
	if qb.limit > 0 {
		opts.SetSkip(qb.skip)
		opts.SetLimit(qb.limit)
	}
	if qb.projection != nil {
		opts.SetProjection(qb.projection)
	}
	cursor, err := qb.coll.Find(ctx, qb.filter, opts)
	if err != nil {
		return fmt.Errorf("query builder find: %w", err)
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, results); err != nil {
		return fmt.Errorf("query builder decode: %w", err)
	}
	return nil
}

// CountTotal counts the documents matching the filter built so far
// (independent of sort, pagination and projection) and derives page
// metadata with totalPage = ceil(total/limit).
func (qb *QueryBuilder) CountTotal(ctx context.Context) (*repository.ListMeta, error) {
	total, err := qb.coll.CountDocuments(ctx, qb.filter)
	if err != nil {
		return nil, fmt.Errorf("query builder count: %w", err)
	}
	page := positiveInt(qb.params["page"], defaultPage)
	limit := positiveInt(qb.params["limit"], defaultLimit)
	return newListMeta(page, limit, total), nil
}

func newListMeta(page, limit int, total int64) *repository.ListMeta {
	return &repository.ListMeta{
		Page:      page,
		Limit:     limit,
		Total:     total,
		TotalPage: (total + int64(limit) - 1) / int64(limit),
	}
}

// splitOperatorKey recognizes keys of the form `field[op]` with op drawn
// from the closed operator set.
func splitOperatorKey(key string) (field, op string, ok bool) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return "", "", false
	}
	field = key[:open]
	op = key[open+1 : len(key)-1]
	if _, valid := filterOperators[op]; !valid {
		return "", "", false
	}
	return field, op, true
}

// coerceScalar maps an operator operand to a typed value: integers and
// floats compare numerically, true/false as booleans, anything else as the
// literal string.
func coerceScalar(s string) interface{} {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if s == "true" || s == "false" {
		return s == "true"
	}
	return s
}

func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
