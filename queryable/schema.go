package queryable

import (
	"errors"
	"fmt"
)

// FieldDecl declares one field of a Schema: either a scalar of some kind or a link to a nested Schema.
type FieldDecl struct {
	name     string
	kind     ScalarKind
	link     *Schema
	optional bool
}

// Required declares a required scalar field.
func Required(name string, kind ScalarKind) FieldDecl {
	return FieldDecl{name: name, kind: kind}
}

// Optional declares an optional scalar field.
func Optional(name string, kind ScalarKind) FieldDecl {
	return FieldDecl{name: name, kind: kind, optional: true}
}

// RequiredLink declares a required link to a nested object.
func RequiredLink(name string, target Schema) FieldDecl {
	return FieldDecl{name: name, link: &target}
}

// OptionalLink declares an optional link to a nested object.
func OptionalLink(name string, target Schema) FieldDecl {
	return FieldDecl{name: name, link: &target, optional: true}
}

// Name returns the field name, matched exactly against result field names.
func (d FieldDecl) Name() string {
	return d.name
}

// IsOptional reports whether the field may be absent.
func (d FieldDecl) IsOptional() bool {
	return d.optional
}

// IsLink reports whether the field is a link to a nested object.
func (d FieldDecl) IsLink() bool {
	return d.link != nil
}

// Kind returns the scalar kind of a non-link field.
func (d FieldDecl) Kind() ScalarKind {
	return d.kind
}

// Target returns the nested schema of a link field.
func (d FieldDecl) Target() (Schema, bool) {
	if d.link == nil {
		return Schema{}, false
	}

	return *d.link, true
}

// typeName is the declared type as shown in error messages.
func (d FieldDecl) typeName() string {
	if d.link != nil {
		return "object " + d.link.name
	}

	return "scalar " + d.kind.String()
}

// Schema is a static declaration of a target type: its name and its ordered fields.
type Schema struct {
	name   string
	fields []FieldDecl
}

// BuildSchema is a factory method for Schema.
//
// It returns ErrInvalidSchema if the name is empty, a field name is empty, or a field name is declared twice.
func BuildSchema(name string, fields ...FieldDecl) (Schema, error) {
	if name == "" {
		return Schema{}, errors.Join(ErrInvalidSchema, errors.New("schema name must not be empty"))
	}

	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if field.name == "" {
			return Schema{}, errors.Join(ErrInvalidSchema, fmt.Errorf("schema %s: field name must not be empty", name))
		}

		if _, ok := seen[field.name]; ok {
			return Schema{}, errors.Join(ErrInvalidSchema, fmt.Errorf("schema %s: duplicate field %q", name, field.name))
		}

		seen[field.name] = struct{}{}
	}

	return Schema{name: name, fields: fields}, nil
}

// MustBuildSchema is like BuildSchema but panics on an invalid declaration.
// It is meant for package-level schema variables.
func MustBuildSchema(name string, fields ...FieldDecl) Schema {
	schema, err := BuildSchema(name, fields...)
	if err != nil {
		panic(err)
	}

	return schema
}

// Name returns the schema name.
func (s Schema) Name() string {
	return s.name
}

// Fields returns the field declarations in declaration order.
func (s Schema) Fields() []FieldDecl {
	return s.fields
}

// Field returns the declaration with exactly the given name.
func (s Schema) Field(name string) (FieldDecl, bool) {
	for _, field := range s.fields {
		if field.name == name {
			return field, true
		}
	}

	return FieldDecl{}, false
}
