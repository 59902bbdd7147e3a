package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// looseInt decodes any BSON number and treats other values, such as the
// empty strings found in imported data, as zero. It encodes as a plain int.
type looseInt int

func (i *looseInt) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Int32:
		*i = looseInt(raw.Int32())
	case bsontype.Int64:
		*i = looseInt(raw.Int64())
	case bsontype.Double:
		*i = looseInt(raw.Double())
	default:
		*i = 0
	}
	return nil
}

// looseFloat is the float64 counterpart of looseInt.
type looseFloat float64

func (f *looseFloat) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Int32:
		*f = looseFloat(raw.Int32())
	case bsontype.Int64:
		*f = looseFloat(raw.Int64())
	case bsontype.Double:
		*f = looseFloat(raw.Double())
	default:
		*f = 0
	}
	return nil
}
