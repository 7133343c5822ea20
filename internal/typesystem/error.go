package typesystem

import "fmt"

// RecursiveTypeError indicates an occurs-check failure: a variable
// would have to appear inside its own binding.
type RecursiveTypeError struct {
	Var TVar
	In  Type
}

func (e *RecursiveTypeError) Error() string {
	return "recursive type"
}

// MismatchError indicates that two types have no most-general unifier.
type MismatchError struct {
	Expected Type
	Got      Type
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Got)
}

func errMismatch(expected, got Type) error {
	return &MismatchError{Expected: expected, Got: got}
}

// UnknownAttributeError indicates a row binding with no corresponding
// attribute on the declaration it is being sealed against.
type UnknownAttributeError struct {
	Attr   string
	Struct string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("attribute %q does not exist on struct %q", e.Attr, e.Struct)
}

// UndeclaredStructError indicates a reference to a struct name absent
// from the global struct table.
type UndeclaredStructError struct {
	Name string
}

func (e *UndeclaredStructError) Error() string {
	return fmt.Sprintf("undeclared struct %q", e.Name)
}
