package catalogfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

const sample = `{
  "products": [
    {"id": "P1", "sku": "CAM-01", "name": "Camisa", "min_stock": 5},
    {"id": "P2", "sku": "CAL-01", "name": "Calça d'Água", "active": false}
  ],
  "locations": [
    {"id": "L1", "name": "Loja Centro", "sellable": true},
    {"id": "L2", "name": "Depósito"}
  ],
  "users": [{"id": "U1", "name": "Ana", "email": "ana@example.com"}]
}`

type recorder struct {
	products  []entity.Product
	locations []entity.Location
	users     []entity.User
}

func (r *recorder) PutProduct(p entity.Product)   { r.products = append(r.products, p) }
func (r *recorder) PutLocation(l entity.Location) { r.locations = append(r.locations, l) }
func (r *recorder) PutUser(u entity.User)         { r.users = append(r.users, u) }

func TestDecode_YApplyTo(t *testing.T) {
	c, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)

	var r recorder
	c.ApplyTo(&r)

	require.Len(t, r.products, 2)
	assert.Equal(t, 5, r.products[0].MinStock)
	assert.True(t, r.products[0].Active, "active por defecto")
	assert.False(t, r.products[1].Active)
	require.Len(t, r.locations, 2)
	assert.True(t, r.locations[0].Sellable)
	assert.False(t, r.locations[1].Sellable)
	require.Len(t, r.users, 1)
	assert.Equal(t, "ana@example.com", r.users[0].Email)
}

func TestDecode_Invalidos(t *testing.T) {
	cases := map[string]string{
		"json roto":          `{"products": [`,
		"producto sin id":    `{"products": [{"sku": "X", "name": "X"}]}`,
		"sku duplicado":      `{"products": [{"id": "P1", "sku": "X", "name": "A"}, {"id": "P2", "sku": "X", "name": "B"}]}`,
		"id duplicado":       `{"locations": [{"id": "L1", "name": "A"}, {"id": "L1", "name": "B"}]}`,
		"min_stock negativo": `{"products": [{"id": "P1", "sku": "X", "name": "A", "min_stock": -1}]}`,
		"usuario sin nombre": `{"users": [{"id": "U1"}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(raw))
			assert.Error(t, err)
		})
	}
}

func TestWriteSQL(t *testing.T) {
	c, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, c.WriteSQL(&b))
	sql := b.String()

	assert.Contains(t, sql, "INSERT INTO products (id, sku, name, min_stock, active) VALUES")
	assert.Contains(t, sql, "('P1', 'CAM-01', 'Camisa', 5, true),")
	assert.Contains(t, sql, "('P2', 'CAL-01', 'Calça d''Água', 0, false)\n")
	assert.Contains(t, sql, "('L1', 'Loja Centro', true, true),")
	assert.Contains(t, sql, "('U1', 'Ana', 'ana@example.com', true)\n")
	assert.Equal(t, 3, strings.Count(sql, "ON CONFLICT (id) DO UPDATE"))
}
