package postgresengine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/queryable-go/queryable"
	"github.com/AntonStoeckl/queryable-go/queryable/postgresengine/internal/adapters"
)

const (
	pathSeparator  = "."
	implicitMarker = "__"
)

// columnPlan describes how one result column is scanned and turned into a QueryResult.
type columnPlan struct {
	name   string
	path   []string
	kind   queryable.ScalarKind
	isJSON    bool
	isNumeric bool // scanned as text, converted to float64 only without loss
	isAny     bool // unknown database type, scanned generically
}

// rowPlan holds the column plans of a result set.
type rowPlan struct {
	columns []columnPlan
	dotted  bool
}

func newRowPlan(columns []adapters.Column) rowPlan {
	plan := rowPlan{columns: make([]columnPlan, 0, len(columns))}

	for _, column := range columns {
		cp := columnPlan{
			name: column.Name,
			path: strings.Split(column.Name, pathSeparator),
		}

		if len(cp.path) > 1 {
			plan.dotted = true
		}

		switch column.TypeName {
		case "TEXT", "VARCHAR", "BPCHAR", "CHAR", "NAME", "CITEXT":
			cp.kind = queryable.KindString
		case "INT2":
			cp.kind = queryable.KindInt16
		case "INT4":
			cp.kind = queryable.KindInt32
		case "INT8":
			cp.kind = queryable.KindInt64
		case "FLOAT4", "FLOAT8":
			cp.kind = queryable.KindFloat64
		case "NUMERIC":
			cp.kind = queryable.KindFloat64
			cp.isNumeric = true
		case "BOOL":
			cp.kind = queryable.KindBool
		case "UUID":
			cp.kind = queryable.KindUUID
		case "TIMESTAMP", "TIMESTAMPTZ", "DATE":
			cp.kind = queryable.KindDateTime
		case "JSON", "JSONB":
			cp.isJSON = true
		default:
			cp.isAny = true
		}

		plan.columns = append(plan.columns, cp)
	}

	return plan
}

// destinations allocates one nullable scan target per column.
func (p rowPlan) destinations() []any {
	dests := make([]any, len(p.columns))

	for i, cp := range p.columns {
		switch {
		case cp.isJSON:
			dests[i] = new([]byte) // a nil slice is NULL
		case cp.isAny:
			dests[i] = new(any)
		case cp.isNumeric:
			dests[i] = new(*string)
		default:
			switch cp.kind {
			case queryable.KindInt16:
				dests[i] = new(*int16)
			case queryable.KindInt32:
				dests[i] = new(*int32)
			case queryable.KindInt64:
				dests[i] = new(*int64)
			case queryable.KindFloat64:
				dests[i] = new(*float64)
			case queryable.KindBool:
				dests[i] = new(*bool)
			case queryable.KindDateTime:
				dests[i] = new(*time.Time)
			default: // str and uuid are both scanned as text
				dests[i] = new(*string)
			}
		}
	}

	return dests
}

// shape turns scanned destinations into a QueryResult:
//   - a single json column becomes JSON
//   - a single other column becomes a Scalar
//   - several columns, dotted column names, or asObject become an Object
//
// A nil result means the row holds no value (a single NULL column).
func (p rowPlan) shape(dests []any, asObject bool) (queryable.QueryResult, error) {
	values := make([]queryable.QueryResult, len(p.columns))

	for i, cp := range p.columns {
		value, err := cp.toResult(dests[i])
		if err != nil {
			return nil, err
		}

		values[i] = value
	}

	if len(p.columns) == 1 && !p.dotted && !asObject {
		return values[0], nil
	}

	return p.toObject(values)
}

func (cp columnPlan) toResult(dest any) (queryable.QueryResult, error) {
	switch d := dest.(type) {
	case **string:
		if *d == nil {
			return nil, nil
		}

		if cp.isNumeric {
			number, err := numericToFloat(**d)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", cp.name, err)
			}

			return queryable.Float64(number), nil
		}

		if cp.kind == queryable.KindUUID {
			id, err := uuid.Parse(**d)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", cp.name, err)
			}

			return queryable.UUID(id), nil
		}

		return queryable.Str(**d), nil

	case **int16:
		if *d == nil {
			return nil, nil
		}
		return queryable.Int16(**d), nil

	case **int32:
		if *d == nil {
			return nil, nil
		}
		return queryable.Int32(**d), nil

	case **int64:
		if *d == nil {
			return nil, nil
		}
		return queryable.Int64(**d), nil

	case **float64:
		if *d == nil {
			return nil, nil
		}
		return queryable.Float64(**d), nil

	case **bool:
		if *d == nil {
			return nil, nil
		}
		return queryable.Bool(**d), nil

	case **time.Time:
		if *d == nil {
			return nil, nil
		}
		return queryable.DateTime(**d), nil

	case *[]byte:
		if *d == nil {
			return nil, nil
		}

		doc, err := queryable.BuildJSON(*d)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", cp.name, err)
		}

		return doc, nil

	case *any:
		return anyToResult(*d), nil

	default:
		return nil, fmt.Errorf("column %s: unsupported scan destination %T", cp.name, dest)
	}
}

// numericToFloat converts the text of a NUMERIC value.
// It fails if the decimal does not survive the conversion, e.g. 12345678901234567890 or 0.30000000000000001.
func numericToFloat(text string) (float64, error) {
	number, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(number) || math.IsInf(number, 0) {
		return number, nil
	}

	if strconv.FormatFloat(number, 'f', -1, 64) != trimFractionZeros(text) {
		return 0, fmt.Errorf("numeric %s does not fit into float64 without loss", text)
	}

	return number, nil
}

// trimFractionZeros turns "9.80" into "9.8" and "100.00" into "100".
func trimFractionZeros(text string) string {
	if !strings.Contains(text, ".") {
		return text
	}

	text = strings.TrimRight(text, "0")

	return strings.TrimSuffix(text, ".")
}

// anyToResult converts a generically scanned driver value.
func anyToResult(value any) queryable.QueryResult {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return queryable.Str(v)
	case []byte:
		return queryable.Str(string(v))
	case int16:
		return queryable.Int16(v)
	case int32:
		return queryable.Int32(v)
	case int64:
		return queryable.Int64(v)
	case float64:
		return queryable.Float64(v)
	case bool:
		return queryable.Bool(v)
	case time.Time:
		return queryable.DateTime(v)
	case [16]byte:
		return queryable.UUID(v)
	default:
		return queryable.Str(fmt.Sprint(v))
	}
}

// objectNode collects the fields of one (possibly nested) object while walking dotted column paths.
type objectNode struct {
	names    []string
	leaves   map[string]queryable.QueryResult
	children map[string]*objectNode
}

func newObjectNode() *objectNode {
	return &objectNode{
		leaves:   make(map[string]queryable.QueryResult),
		children: make(map[string]*objectNode),
	}
}

// toObject fails if a name is used for a value and for a nested object, e.g. "author" and "author.id".
func (p rowPlan) toObject(values []queryable.QueryResult) (queryable.Object, error) {
	root := newObjectNode()

	for i, cp := range p.columns {
		node := root

		for _, part := range cp.path[:len(cp.path)-1] {
			if _, isLeaf := node.leaves[part]; isLeaf {
				return queryable.Object{}, fmt.Errorf("column %s: %s is a value and a nested object", cp.name, part)
			}

			child, ok := node.children[part]
			if !ok {
				child = newObjectNode()
				node.children[part] = child
				node.names = append(node.names, part)
			}

			node = child
		}

		leaf := cp.path[len(cp.path)-1]
		if _, isChild := node.children[leaf]; isChild {
			return queryable.Object{}, fmt.Errorf("column %s: %s is a value and a nested object", cp.name, leaf)
		}

		if _, exists := node.leaves[leaf]; !exists {
			node.names = append(node.names, leaf)
		}

		node.leaves[leaf] = values[i]
	}

	object, _ := root.build()

	return object, nil
}

// build returns the object and whether any of its fields holds a value.
func (n *objectNode) build() (queryable.Object, bool) {
	fields := make([]queryable.Field, 0, len(n.names))
	hasValue := false

	for _, name := range n.names {
		if child, ok := n.children[name]; ok {
			linked, linkHasValue := child.build()

			field := queryable.F(name, nil)
			if linkHasValue {
				field = queryable.F(name, linked)
				hasValue = true
			}

			fields = append(fields, field)

			continue
		}

		value := n.leaves[name]
		if value != nil {
			hasValue = true
		}

		fields = append(fields, queryable.Field{
			Name:     name,
			Value:    value,
			Implicit: isImplicitName(name),
		})
	}

	return queryable.NewObject(fields...), hasValue
}

func isImplicitName(name string) bool {
	return len(name) > 2*len(implicitMarker) &&
		strings.HasPrefix(name, implicitMarker) &&
		strings.HasSuffix(name, implicitMarker)
}
