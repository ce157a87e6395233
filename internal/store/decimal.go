// internal/store/decimal.go
package store

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// Decimal is a monetary amount read from a document. Amounts written by
// other drivers arrive as decimal128, strings or integers as well as
// doubles; all of them decode. Amounts are always written as doubles.
type Decimal float64

func (d Decimal) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bsontype.Double, bsoncore.AppendDouble(nil, float64(d)), nil
}

func (d *Decimal) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	value := bsoncore.Value{Type: t, Data: data}

	switch t {
	case bsontype.Null, bsontype.Undefined:
		*d = 0
		return nil
	case bsontype.Double:
		if f, ok := value.DoubleOK(); ok {
			*d = Decimal(f)
			return nil
		}
	case bsontype.Int32:
		if i, ok := value.Int32OK(); ok {
			*d = Decimal(i)
			return nil
		}
	case bsontype.Int64:
		if i, ok := value.Int64OK(); ok {
			*d = Decimal(i)
			return nil
		}
	case bsontype.Decimal128:
		if dec, ok := value.Decimal128OK(); ok {
			return d.parse(dec.String())
		}
	case bsontype.String:
		if s, ok := value.StringValueOK(); ok {
			return d.parse(s)
		}
	default:
		return fmt.Errorf("cannot decode %s into a decimal amount", t)
	}

	return fmt.Errorf("malformed %s amount", t)
}

func (d *Decimal) parse(raw string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid decimal amount %q", raw)
	}
	*d = Decimal(f)
	return nil
}
