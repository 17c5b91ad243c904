package service

import (
	"testing"
	"time"

	"tobacco/internal/model"
	"tobacco/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsService_Revenue(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatisticsService(repository.NewInvoiceRepository(db))

	salesman := seedUser(t, db, "salesman", "secret", model.AuthoritySalesman)
	product := seedProduct(t, db, "red pack", 10000)

	done := seedInvoice(t, db, salesman, "done order", model.StatusDone)
	require.NoError(t, db.Create(&model.InvoiceItem{
		InvoiceID: done.ID, ProductID: product.ID, UnitPrice: 10000, Quantity: 3,
	}).Error)
	require.NoError(t, db.Create(&model.InvoiceItem{
		InvoiceID: done.ID, ProductID: product.ID, UnitPrice: 2500, Quantity: 2,
	}).Error)
	// Deleted items are excluded from the aggregate.
	require.NoError(t, db.Create(&model.InvoiceItem{
		InvoiceID: done.ID, ProductID: product.ID, UnitPrice: 9999, Quantity: 1, Deleted: true,
	}).Error)

	// Open invoices never count, whatever their items are worth.
	open := seedInvoice(t, db, salesman, "open order", model.StatusCreated)
	require.NoError(t, db.Create(&model.InvoiceItem{
		InvoiceID: open.ID, ProductID: product.ID, UnitPrice: 10000, Quantity: 100,
	}).Error)

	window := RevenueFilter{
		From: time.Now().Add(-time.Hour),
		To:   time.Now().Add(time.Hour),
	}

	t.Run("sums snapshotted prices of DONE invoices", func(t *testing.T) {
		resp, err := svc.Revenue(testCtx, window)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.InvoiceCount)
		assert.Equal(t, 2, resp.ItemCount)
		assert.Equal(t, "35000", resp.TotalRevenue)
	})

	t.Run("empty window reports zero", func(t *testing.T) {
		resp, err := svc.Revenue(testCtx, RevenueFilter{
			From: time.Now().Add(-48 * time.Hour),
			To:   time.Now().Add(-24 * time.Hour),
		})
		require.NoError(t, err)
		assert.Equal(t, 0, resp.InvoiceCount)
		assert.Equal(t, "0", resp.TotalRevenue)
	})
}
