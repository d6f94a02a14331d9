package lazyhlo

import (
	"cmp"
	"strings"

	"github.com/pkg/errors"
)

// OpKind identifies the operation performed by a node: a namespace and a name, rendered as "namespace::name".
//
// It is a comparable value type and can be used as a map key.
type OpKind struct {
	Namespace, Name string
}

// NewOpKind returns the OpKind for the given namespace and name.
func NewOpKind(namespace, name string) OpKind {
	return OpKind{Namespace: namespace, Name: name}
}

// ParseOpKind parses an OpKind in the "namespace::name" format.
func ParseOpKind(s string) (OpKind, error) {
	namespace, name, found := strings.Cut(s, "::")
	if !found || namespace == "" || name == "" || strings.Contains(name, "::") {
		return OpKind{}, errors.Errorf("invalid op kind %q, expected the format \"namespace::name\"", s)
	}
	return OpKind{Namespace: namespace, Name: name}, nil
}

// String implements fmt.Stringer.
func (k OpKind) String() string {
	return k.Namespace + "::" + k.Name
}

// Compare orders op kinds by namespace, then by name. It returns -1, 0 or +1.
func (k OpKind) Compare(other OpKind) int {
	if c := cmp.Compare(k.Namespace, other.Namespace); c != 0 {
		return c
	}
	return cmp.Compare(k.Name, other.Name)
}
