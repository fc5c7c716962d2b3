package docstore

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesyncbridge/apiserver/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestDecimalStoredAsDecimal128(t *testing.T) {
	product := types.Product{
		ID:          "p1",
		ProductType: "hoodie",
		Price:       decimal.RequireFromString("65.10"),
		Sizes:       []string{"M"},
	}

	raw, err := bson.MarshalWithRegistry(Registry(), product)
	require.NoError(t, err)

	price := bson.Raw(raw).Lookup("price")
	assert.Equal(t, bsontype.Decimal128, price.Type)

	var decoded types.Product
	require.NoError(t, bson.UnmarshalWithRegistry(Registry(), raw, &decoded))
	assert.True(t, decoded.Price.Equal(product.Price), decoded.Price.String())
	assert.Nil(t, decoded.ImageURL)
}

func TestDecimalDecodesLegacyNumbers(t *testing.T) {
	for name, value := range map[string]any{
		"double": 35.5,
		"int32":  int32(30),
		"int64":  int64(65),
		"string": "12.25",
	} {
		raw, err := bson.Marshal(bson.D{{Key: "price", Value: value}})
		require.NoError(t, err, name)

		var out struct {
			Price decimal.Decimal `bson:"price"`
		}
		require.NoError(t, bson.UnmarshalWithRegistry(Registry(), raw, &out), name)
		assert.False(t, out.Price.IsZero(), name)
	}

	raw, err := bson.Marshal(bson.D{{Key: "price", Value: true}})
	require.NoError(t, err)
	var out struct {
		Price decimal.Decimal `bson:"price"`
	}
	assert.Error(t, bson.UnmarshalWithRegistry(Registry(), raw, &out))
}

func TestDuplicateKeyClassification(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{
		Code:    11000,
		Message: `E11000 duplicate key error collection: syncbridge.guardians index: uniq_guardians_scroll_id dup key: { scroll_id: "SB-0001" }`,
	}}}

	assert.True(t, isDuplicateKeyErr(dup))
	assert.True(t, violatedIndex(dup, guardianScrollIDIndex))
	assert.False(t, violatedIndex(dup, guardianEmailIndex))
	assert.False(t, isDuplicateKeyErr(errors.New("connection reset")))
	assert.False(t, isDuplicateKeyErr(nil))
}
