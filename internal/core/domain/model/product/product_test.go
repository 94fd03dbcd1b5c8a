package product_test

import (
	"testing"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/product"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testProduct(t *testing.T, tvaRate string) *product.Product {
	t.Helper()
	p, err := product.NewProduct(kernel.NewUUID(), "Beurre doux", "REF-042", "kg", d("4.50"), d(tvaRate))
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("creates an active visible product", func(t *testing.T) {
		p := testProduct(t, "5.5")

		assert.True(t, p.IsActive())
		assert.False(t, p.IsHidden())
		assert.True(t, p.IsOrderable())
	})

	t.Run("rejects missing name", func(t *testing.T) {
		_, err := product.NewProduct(kernel.NewUUID(), "", "REF-042", "kg", d("4.50"), d("5.5"))
		require.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := product.NewProduct(kernel.NewUUID(), "Beurre doux", "REF-042", "kg", d("-1"), d("5.5"))
		require.Error(t, err)
	})

	t.Run("zero value product fails validation", func(t *testing.T) {
		var p product.Product
		require.ErrorIs(t, p.Validate(), product.ErrProductIsNotConstructed)
	})
}

func TestProduct_EffectiveTVARate(t *testing.T) {
	t.Run("unset rate falls back to the default reduced rate", func(t *testing.T) {
		p := testProduct(t, "0")
		assert.True(t, p.EffectiveTVARate().Equal(product.DefaultTVARate))
	})

	t.Run("explicit rate wins", func(t *testing.T) {
		p := testProduct(t, "20")
		assert.True(t, p.EffectiveTVARate().Equal(d("20")))
	})
}

func TestProduct_Visibility(t *testing.T) {
	p := testProduct(t, "5.5")

	p.Hide()
	assert.False(t, p.IsOrderable())

	p.Show()
	assert.True(t, p.IsOrderable())

	p.Deactivate()
	assert.False(t, p.IsOrderable())

	p.Activate()
	assert.True(t, p.IsOrderable())
}

func TestProduct_Suppliers(t *testing.T) {
	t.Run("primary supplier is the first assigned link", func(t *testing.T) {
		p := testProduct(t, "5.5")
		first := kernel.NewUUID()
		second := kernel.NewUUID()

		linkA, err := product.NewSupplierLink(first, nil)
		require.NoError(t, err)
		linkB, err := product.NewSupplierLink(second, nil)
		require.NoError(t, err)

		require.NoError(t, p.AssignSupplier(linkA))
		require.NoError(t, p.AssignSupplier(linkB))

		primary, ok := p.PrimarySupplier()
		require.True(t, ok)
		assert.True(t, primary.SupplierID().IsEqual(first))
	})

	t.Run("no supplier assigned", func(t *testing.T) {
		p := testProduct(t, "5.5")
		_, ok := p.PrimarySupplier()
		assert.False(t, ok)
	})

	t.Run("rejects double assignment", func(t *testing.T) {
		p := testProduct(t, "5.5")
		supplierID := kernel.NewUUID()

		link, err := product.NewSupplierLink(supplierID, nil)
		require.NoError(t, err)

		require.NoError(t, p.AssignSupplier(link))
		require.ErrorIs(t, p.AssignSupplier(link), product.ErrSupplierAlreadyAssigned)
	})

	t.Run("supplier specific price overrides catalog price", func(t *testing.T) {
		p := testProduct(t, "5.5")
		supplierID := kernel.NewUUID()
		negotiated := d("3.99")

		link, err := product.NewSupplierLink(supplierID, &negotiated)
		require.NoError(t, err)
		require.NoError(t, p.AssignSupplier(link))

		assert.True(t, p.SupplierUnitPrice(supplierID).Equal(negotiated))
		assert.True(t, p.SupplierUnitPrice(kernel.NewUUID()).Equal(d("4.50")))
	})
}
