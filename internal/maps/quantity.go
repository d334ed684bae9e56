package maps

import (
	"fmt"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/nwbschema"
)

// Cardinality is the slot-level meaning of a quantity marker.
type Cardinality struct {
	Required    bool
	Multivalued bool
}

var quantities = map[nwbschema.Quantity]Cardinality{
	nwbschema.QuantityZeroOrMany: {Required: false, Multivalued: true},
	nwbschema.QuantityOneOrMany:  {Required: true, Multivalued: true},
	nwbschema.QuantityOptional:   {Required: false, Multivalued: false},
	nwbschema.QuantityOne:        {Required: true, Multivalued: false},
}

// Quantity maps a quantity marker to its cardinality.
func Quantity(q nwbschema.Quantity) (Cardinality, error) {
	c, ok := quantities[q]
	if !ok {
		return Cardinality{}, fmt.Errorf("unsupported quantity %q", string(q))
	}

	return c, nil
}
