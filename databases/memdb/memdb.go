// Package memdb is an in-memory databases.DatabaseHelper for tests. It understands the
// subset of the query language the repositories use: equality, $in, $ne, $or and range
// filters, sort/skip/limit, and $set, $inc and $setOnInsert updates with upsert.
package memdb

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/druktrails/bhutan-tourism-api/databases"
)

// Database holds collections keyed by name, created on first use
type Database struct {
	mu          sync.Mutex
	collections map[string]*Collection
}

// New returns an empty database
func New() *Database {
	return &Database{collections: map[string]*Collection{}}
}

// Collection returns the named collection
func (d *Database) Collection(name string) databases.CollectionHelper {
	return d.collection(name)
}

func (d *Database) collection(name string) *Collection {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.collections[name]
	if !ok {
		c = &Collection{}
		d.collections[name] = c
	}
	return c
}

// Docs returns a copy of the raw documents of a collection in insertion order
func (d *Database) Docs(name string) []bson.M {
	c := d.collection(name)
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]bson.M, len(c.docs))
	copy(out, c.docs)
	return out
}

// Collection is a slice of documents guarded by a lock
type Collection struct {
	mu   sync.RWMutex
	docs []bson.M
}

// FindOne returns the first document matching filter in sort order
func (c *Collection) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) databases.SingleResultHelper {
	f, err := toDoc(filter)
	if err != nil {
		return &singleResult{err: err}
	}
	var sortSpec interface{}
	for _, o := range opts {
		if o != nil && o.Sort != nil {
			sortSpec = o.Sort
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	matched := c.match(f)
	if len(matched) == 0 {
		return &singleResult{err: mongo.ErrNoDocuments}
	}
	sortDocs(matched, sortSpec)
	return &singleResult{doc: matched[0]}
}

// Find returns the matching documents after sort, skip and limit
func (c *Collection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (databases.CursorHelper, error) {
	f, err := toDoc(filter)
	if err != nil {
		return nil, err
	}
	var (
		sortSpec    interface{}
		skip, limit int64
	)
	for _, o := range opts {
		if o == nil {
			continue
		}
		if o.Sort != nil {
			sortSpec = o.Sort
		}
		if o.Skip != nil {
			skip = *o.Skip
		}
		if o.Limit != nil {
			limit = *o.Limit
		}
	}

	c.mu.RLock()
	matched := c.match(f)
	c.mu.RUnlock()

	sortDocs(matched, sortSpec)
	if skip >= int64(len(matched)) {
		matched = nil
	} else if skip > 0 {
		matched = matched[skip:]
	}
	if limit > 0 && int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return &cursor{docs: matched}, nil
}

// CountDocuments counts the documents matching filter
func (c *Collection) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	f, err := toDoc(filter)
	if err != nil {
		return 0, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int64(len(c.match(f))), nil
}

// InsertOne stores document, generating an ObjectID when _id is missing
func (c *Collection) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (databases.InsertOneResultHelper, error) {
	doc, err := toDoc(document)
	if err != nil {
		return nil, err
	}
	if id, ok := doc["_id"]; !ok || id == nil || id == primitive.NilObjectID {
		doc["_id"] = primitive.NewObjectID()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, existing := range c.docs {
		if compare(existing["_id"], doc["_id"]) == 0 {
			return nil, mongo.WriteException{WriteErrors: mongo.WriteErrors{{
				Code:    11000,
				Message: fmt.Sprintf("E11000 duplicate key error: _id %v", doc["_id"]),
			}}}
		}
	}
	c.docs = append(c.docs, doc)
	return insertResult{id: doc["_id"]}, nil
}

// UpdateOne applies update to the first matching document, or inserts one when the
// upsert option is set and nothing matches
func (c *Collection) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	f, err := toDoc(filter)
	if err != nil {
		return nil, err
	}
	u, err := toDoc(update)
	if err != nil {
		return nil, err
	}
	upsert := false
	for _, o := range opts {
		if o != nil && o.Upsert != nil && *o.Upsert {
			upsert = true
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, doc := range c.docs {
		if !matches(doc, f) {
			continue
		}
		if err := applyUpdate(doc, u, false); err != nil {
			return nil, err
		}
		c.docs[i] = doc
		return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}
	if !upsert {
		return &mongo.UpdateResult{}, nil
	}

	doc := bson.M{}
	for k, v := range f {
		if strings.HasPrefix(k, "$") || isOperatorDoc(v) {
			continue
		}
		setPath(doc, k, v)
	}
	if err := applyUpdate(doc, u, true); err != nil {
		return nil, err
	}
	if _, ok := doc["_id"]; !ok {
		doc["_id"] = primitive.NewObjectID()
	}
	c.docs = append(c.docs, doc)
	return &mongo.UpdateResult{UpsertedCount: 1, UpsertedID: doc["_id"]}, nil
}

// DeleteOne removes the first matching document
func (c *Collection) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	f, err := toDoc(filter)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, doc := range c.docs {
		if matches(doc, f) {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return &mongo.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &mongo.DeleteResult{}, nil
}

// match must be called with the read lock held
func (c *Collection) match(filter bson.M) []bson.M {
	var out []bson.M
	for _, doc := range c.docs {
		if matches(doc, filter) {
			out = append(out, doc)
		}
	}
	return out
}

type singleResult struct {
	doc bson.M
	err error
}

func (s *singleResult) Decode(v interface{}) error {
	if s.err != nil {
		return s.err
	}
	return decode(s.doc, v)
}

type insertResult struct {
	id interface{}
}

func (r insertResult) InsertedID() interface{} {
	return r.id
}

type cursor struct {
	docs []bson.M
}

// All decodes every document into results, which must point to a slice
func (c *cursor) All(ctx context.Context, results interface{}) error {
	rv := reflect.ValueOf(results)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Slice {
		return errors.New("memdb: results argument must be a pointer to a slice")
	}
	sliceVal := rv.Elem()
	elemType := sliceVal.Type().Elem()
	out := reflect.MakeSlice(sliceVal.Type(), 0, len(c.docs))
	for _, doc := range c.docs {
		elem := reflect.New(elemType)
		if err := decode(doc, elem.Interface()); err != nil {
			return err
		}
		out = reflect.Append(out, elem.Elem())
	}
	sliceVal.Set(out)
	return nil
}

func (c *cursor) Close(ctx context.Context) error {
	return nil
}

// toDoc round-trips v through BSON so custom types collapse to BSON primitives
func toDoc(v interface{}) (bson.M, error) {
	if v == nil {
		return bson.M{}, nil
	}
	b, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("memdb: marshal: %w", err)
	}
	doc := bson.M{}
	if err := bson.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("memdb: unmarshal: %w", err)
	}
	return doc, nil
}

func decode(doc bson.M, v interface{}) error {
	b, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(b, v)
}

func matches(doc bson.M, filter bson.M) bool {
	for key, cond := range filter {
		if key == "$or" {
			if !matchesAny(doc, cond) {
				return false
			}
			continue
		}
		val, present := getPath(doc, key)
		if ops, ok := asDoc(cond); ok && isOperatorDoc(cond) {
			if !matchOperators(val, present, ops) {
				return false
			}
			continue
		}
		if !present || !equals(val, cond) {
			return false
		}
	}
	return true
}

func matchesAny(doc bson.M, cond interface{}) bool {
	arr, ok := cond.(primitive.A)
	if !ok {
		return false
	}
	for _, c := range arr {
		if sub, ok := asDoc(c); ok && matches(doc, sub) {
			return true
		}
	}
	return false
}

func matchOperators(val interface{}, present bool, ops bson.M) bool {
	for op, arg := range ops {
		switch op {
		case "$in":
			arr, _ := arg.(primitive.A)
			found := false
			for _, a := range arr {
				if present && equals(val, a) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case "$ne":
			if present && equals(val, arg) {
				return false
			}
		case "$exists":
			want, _ := arg.(bool)
			if present != want {
				return false
			}
		case "$lt", "$lte", "$gt", "$gte":
			if !present || val == nil || !sameBracket(val, arg) {
				return false
			}
			c := compare(val, arg)
			ok := map[string]bool{"$lt": c < 0, "$lte": c <= 0, "$gt": c > 0, "$gte": c >= 0}[op]
			if !ok {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// equals follows Mongo's array semantics: a scalar condition matches any element
func equals(val, cond interface{}) bool {
	if arr, ok := val.(primitive.A); ok {
		if _, condIsArr := cond.(primitive.A); !condIsArr {
			for _, el := range arr {
				if compare(el, cond) == 0 {
					return true
				}
			}
			return false
		}
	}
	return compare(val, cond) == 0
}

func isOperatorDoc(v interface{}) bool {
	d, ok := asDoc(v)
	if !ok || len(d) == 0 {
		return false
	}
	for k := range d {
		if !strings.HasPrefix(k, "$") {
			return false
		}
	}
	return true
}

func asDoc(v interface{}) (bson.M, bool) {
	switch d := v.(type) {
	case bson.M:
		return d, true
	case bson.D:
		return d.Map(), true
	}
	return nil, false
}

func getPath(doc bson.M, path string) (interface{}, bool) {
	parts := strings.Split(path, ".")
	var cur interface{} = doc
	for _, p := range parts {
		d, ok := asDoc(cur)
		if !ok {
			return nil, false
		}
		cur, ok = d[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func setPath(doc bson.M, path string, v interface{}) {
	parts := strings.Split(path, ".")
	cur := doc
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(bson.M)
		if !ok {
			next = bson.M{}
			cur[p] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = v
}

func applyUpdate(doc bson.M, update bson.M, inserting bool) error {
	for op, arg := range update {
		fields, ok := asDoc(arg)
		if !ok {
			return fmt.Errorf("memdb: update operator %s needs a document", op)
		}
		switch op {
		case "$set":
			for k, v := range fields {
				setPath(doc, k, v)
			}
		case "$setOnInsert":
			if inserting {
				for k, v := range fields {
					setPath(doc, k, v)
				}
			}
		case "$inc":
			for k, v := range fields {
				cur, _ := getPath(doc, k)
				sum, err := add(cur, v)
				if err != nil {
					return err
				}
				setPath(doc, k, sum)
			}
		case "$unset":
			for k := range fields {
				delete(doc, k)
			}
		default:
			return fmt.Errorf("memdb: unsupported update operator %s", op)
		}
	}
	return nil
}

func add(cur, inc interface{}) (interface{}, error) {
	if cur == nil {
		cur = int32(0)
	}
	ci, cInt := toInt(cur)
	ii, iInt := toInt(inc)
	if cInt && iInt {
		return ci + ii, nil
	}
	cf, ok1 := toFloat(cur)
	inf, ok2 := toFloat(inc)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("memdb: cannot $inc non-numeric value %v", cur)
	}
	return cf + inf, nil
}

func toInt(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}

func toFloat(v interface{}) (float64, bool) {
	if i, ok := toInt(v); ok {
		return float64(i), true
	}
	if f, ok := v.(float64); ok {
		return f, true
	}
	return 0, false
}

func sortDocs(docs []bson.M, spec interface{}) {
	var keys bson.D
	switch s := spec.(type) {
	case bson.D:
		keys = s
	case bson.M:
		for k, v := range s {
			keys = append(keys, bson.E{Key: k, Value: v})
		}
	default:
		return
	}
	sort.SliceStable(docs, func(i, j int) bool {
		for _, k := range keys {
			dir := 1
			if n, ok := toInt(k.Value); ok && n < 0 {
				dir = -1
			}
			a, _ := getPath(docs[i], k.Key)
			b, _ := getPath(docs[j], k.Key)
			if c := compare(a, b); c != 0 {
				return c*dir < 0
			}
		}
		return false
	})
}

// sameBracket reports whether range operators apply to a and b, which Mongo only
// does within one type bracket
func sameBracket(a, b interface{}) bool {
	if _, ok := toFloat(a); ok {
		_, ok := toFloat(b)
		return ok
	}
	return reflect.TypeOf(a) == reflect.TypeOf(b)
}

// compare orders missing/nil first, then numbers, strings, booleans, dates and ids
func compare(a, b interface{}) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			}
			return 1
		}
	case primitive.DateTime:
		if bv, ok := b.(primitive.DateTime); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case primitive.ObjectID:
		if bv, ok := b.(primitive.ObjectID); ok {
			return strings.Compare(av.Hex(), bv.Hex())
		}
	}
	if reflect.DeepEqual(a, b) {
		return 0
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
