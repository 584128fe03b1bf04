package core

// IsAStruct is a free-standing shape that is not backed by a table.
type IsAStruct struct {
	Name   string
	Number int16
	IsCool bool
}
