package sqlbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Placeholders(t *testing.T) {
	pg, err := New(DriverPostgres)
	require.NoError(t, err)
	query, _, err := pg.Select("id").From("pending").Where("id = ?", 1).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM pending WHERE id = $1", query)

	lite, err := New(DriverSQLite)
	require.NoError(t, err)
	query, _, err = lite.Select("id").From("pending").Where("id = ?", 1).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM pending WHERE id = ?", query)

	_, err = New("oracle")
	assert.Error(t, err)
}

func TestUpsert(t *testing.T) {
	b, err := New(DriverSQLite)
	require.NoError(t, err)

	query, args, err := Upsert(
		b.Insert("customers").Columns("customer_id", "name").Values(1, "Ali"),
		"customer_id", "name",
	).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO customers (customer_id,name) VALUES (?,?) ON CONFLICT (customer_id) DO UPDATE SET name = excluded.name",
		query)
	assert.Equal(t, []interface{}{1, "Ali"}, args)

	query, _, err = Upsert(b.Insert("blocked_slots").Columns("slot_key").Values("k"), "slot_key").ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "ON CONFLICT (slot_key) DO NOTHING")
}
