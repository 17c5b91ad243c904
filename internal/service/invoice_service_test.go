package service

import (
	"fmt"
	"testing"

	"tobacco/internal/model"
	"tobacco/internal/repository"
	"tobacco/pkg/apperror"
	"tobacco/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceService_Create(t *testing.T) {
	db := newTestDB(t)
	svc := NewInvoiceService(
		repository.NewInvoiceRepository(db),
		repository.NewProductRepository(db),
		repository.NewTransactionManager(db),
		nil,
	)

	salesman := seedUser(t, db, "salesman", "secret", model.AuthoritySalesman)
	accountant := seedUser(t, db, "accountant", "secret", model.AuthorityAccountant)

	t.Run("salesman creates invoice in CREATED status", func(t *testing.T) {
		resp, err := svc.Create(testCtx, salesman, CreateInvoiceRequest{DisplayDescription: "march order"})
		require.NoError(t, err)
		assert.Equal(t, string(model.StatusCreated), resp.Status)
		assert.Equal(t, salesman.ID, resp.AuthorID)
		assert.False(t, resp.Deleted)
	})

	t.Run("non-salesman is rejected", func(t *testing.T) {
		_, err := svc.Create(testCtx, accountant, CreateInvoiceRequest{DisplayDescription: "march order"})
		require.Error(t, err)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	})

	t.Run("blank description is rejected", func(t *testing.T) {
		_, err := svc.Create(testCtx, salesman, CreateInvoiceRequest{DisplayDescription: "   "})
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})
}

func TestInvoiceService_AddComment(t *testing.T) {
	db := newTestDB(t)
	invoiceRepo := repository.NewInvoiceRepository(db)
	svc := NewInvoiceService(
		invoiceRepo,
		repository.NewProductRepository(db),
		repository.NewTransactionManager(db),
		nil,
	)

	salesman := seedUser(t, db, "salesman", "secret", model.AuthoritySalesman)
	outsider := seedUser(t, db, "outsider", "secret", model.AuthoritySalesman)
	invoice := seedInvoice(t, db, salesman, "march order", model.StatusCreated)

	t.Run("comment and status commit together", func(t *testing.T) {
		resp, err := svc.AddComment(testCtx, salesman, invoice.ID, AddCommentRequest{
			Comment:     "please approve",
			StatusAfter: string(model.StatusWaitForSalesManagerApproval),
		})
		require.NoError(t, err)
		assert.Equal(t, string(model.StatusCreated), resp.StatusBefore)
		assert.Equal(t, string(model.StatusWaitForSalesManagerApproval), resp.StatusAfter)
		assert.Equal(t, salesman.ID, resp.UserID)

		reloaded, err := invoiceRepo.GetByID(testCtx, invoice.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusWaitForSalesManagerApproval, reloaded.Status)
	})

	t.Run("second comment records the new status as before", func(t *testing.T) {
		resp, err := svc.AddComment(testCtx, salesman, invoice.ID, AddCommentRequest{
			Comment:     "withdrawn",
			StatusAfter: string(model.StatusAborted),
		})
		require.NoError(t, err)
		assert.Equal(t, string(model.StatusWaitForSalesManagerApproval), resp.StatusBefore)
		assert.Equal(t, string(model.StatusAborted), resp.StatusAfter)
	})

	t.Run("unknown status is rejected before any write", func(t *testing.T) {
		_, err := svc.AddComment(testCtx, salesman, invoice.ID, AddCommentRequest{
			Comment:     "?",
			StatusAfter: "SHIPPED",
		})
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("unrelated salesman is rejected", func(t *testing.T) {
		_, err := svc.AddComment(testCtx, outsider, invoice.ID, AddCommentRequest{
			Comment:     "let me in",
			StatusAfter: string(model.StatusDone),
		})
		require.Error(t, err)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	})

	t.Run("missing invoice yields not found", func(t *testing.T) {
		_, err := svc.AddComment(testCtx, salesman, 99999, AddCommentRequest{
			Comment:     "ghost",
			StatusAfter: string(model.StatusDone),
		})
		require.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestInvoiceService_AddItem(t *testing.T) {
	db := newTestDB(t)
	productRepo := repository.NewProductRepository(db)
	svc := NewInvoiceService(
		repository.NewInvoiceRepository(db),
		productRepo,
		repository.NewTransactionManager(db),
		nil,
	)

	salesman := seedUser(t, db, "salesman", "secret", model.AuthoritySalesman)
	manager := seedUser(t, db, "manager", "secret", model.AuthoritySaleManager)
	product := seedProduct(t, db, "red pack", 10000)
	invoice := seedInvoice(t, db, salesman, "march order", model.StatusCreated)

	t.Run("item snapshots the current product price", func(t *testing.T) {
		item, err := svc.AddItem(testCtx, salesman, invoice.ID, AddItemRequest{ProductID: product.ID, Quantity: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(10000), item.UnitPrice)
		assert.Equal(t, int64(3), item.Quantity)

		// A later price change must not leak into the recorded item.
		product.CurrentPrice = 20000
		require.NoError(t, productRepo.Update(testCtx, product))
	})

	t.Run("price change does not rewrite existing items", func(t *testing.T) {
		page, err := svc.ListItems(testCtx, salesman, invoice.ID, pagination.Normalize(0, 20))
		require.NoError(t, err)
		require.Len(t, page.Elements, 1)
		assert.Equal(t, int64(10000), page.Elements[0].UnitPrice)
	})

	t.Run("only the author may add items", func(t *testing.T) {
		_, err := svc.AddItem(testCtx, manager, invoice.ID, AddItemRequest{ProductID: product.ID, Quantity: 1})
		require.Error(t, err)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	})

	t.Run("deleted product is unavailable", func(t *testing.T) {
		product.Deleted = true
		require.NoError(t, productRepo.Update(testCtx, product))
		_, err := svc.AddItem(testCtx, salesman, invoice.ID, AddItemRequest{ProductID: product.ID, Quantity: 1})
		require.Error(t, err)
		assert.Equal(t, apperror.KindInvalidState, apperror.KindOf(err))
		product.Deleted = false
		require.NoError(t, productRepo.Update(testCtx, product))
	})

	t.Run("negative quantity is rejected", func(t *testing.T) {
		_, err := svc.AddItem(testCtx, salesman, invoice.ID, AddItemRequest{ProductID: product.ID, Quantity: -1})
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("items are frozen once the invoice leaves CREATED", func(t *testing.T) {
		_, err := svc.AddComment(testCtx, salesman, invoice.ID, AddCommentRequest{
			Comment:     "submit",
			StatusAfter: string(model.StatusWaitForSalesManagerApproval),
		})
		require.NoError(t, err)

		_, err = svc.AddItem(testCtx, salesman, invoice.ID, AddItemRequest{ProductID: product.ID, Quantity: 1})
		require.Error(t, err)
		assert.Equal(t, apperror.KindInvalidState, apperror.KindOf(err))
	})
}

func TestInvoiceService_UpdateDescription(t *testing.T) {
	db := newTestDB(t)
	svc := NewInvoiceService(
		repository.NewInvoiceRepository(db),
		repository.NewProductRepository(db),
		repository.NewTransactionManager(db),
		nil,
	)

	salesman := seedUser(t, db, "salesman", "secret", model.AuthoritySalesman)
	admin := seedUser(t, db, "admin", "secret", model.AuthoritySuperAdmin)
	invoice := seedInvoice(t, db, salesman, "march order", model.StatusCreated)
	doneInvoice := seedInvoice(t, db, salesman, "old order", model.StatusDone)

	t.Run("author edits the description", func(t *testing.T) {
		desc := "april order"
		resp, err := svc.UpdateDescription(testCtx, salesman, invoice.ID, UpdateInvoiceRequest{DisplayDescription: &desc})
		require.NoError(t, err)
		assert.Equal(t, "april order", resp.DisplayDescription)
	})

	t.Run("admin is not the author", func(t *testing.T) {
		desc := "hijack"
		_, err := svc.UpdateDescription(testCtx, admin, invoice.ID, UpdateInvoiceRequest{DisplayDescription: &desc})
		require.Error(t, err)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	})

	t.Run("terminal invoice is immutable", func(t *testing.T) {
		desc := "too late"
		_, err := svc.UpdateDescription(testCtx, salesman, doneInvoice.ID, UpdateInvoiceRequest{DisplayDescription: &desc})
		require.Error(t, err)
		assert.Equal(t, apperror.KindInvalidState, apperror.KindOf(err))
	})
}

func TestInvoiceService_ListScope(t *testing.T) {
	db := newTestDB(t)
	svc := NewInvoiceService(
		repository.NewInvoiceRepository(db),
		repository.NewProductRepository(db),
		repository.NewTransactionManager(db),
		nil,
	)

	salesman1 := seedUser(t, db, "salesman1", "secret", model.AuthoritySalesman)
	salesman2 := seedUser(t, db, "salesman2", "secret", model.AuthoritySalesman)
	manager := seedUser(t, db, "manager", "secret", model.AuthoritySaleManager)
	accountant := seedUser(t, db, "accountant", "secret", model.AuthorityAccountant)
	clerk := seedUser(t, db, "clerk", "secret")
	seedGroup(t, db, "north", salesman1, manager)

	seedInvoice(t, db, salesman1, "one", model.StatusCreated)
	seedInvoice(t, db, salesman1, "two", model.StatusCreated)
	seedInvoice(t, db, salesman2, "three", model.StatusCreated)

	list := func(t *testing.T, actor *model.User) []InvoiceResponse {
		page, err := svc.List(testCtx, actor, repository.InvoiceListFilter{}, pagination.Normalize(0, 20))
		require.NoError(t, err)
		return page.Elements
	}

	t.Run("salesman sees only own invoices", func(t *testing.T) {
		assert.Len(t, list(t, salesman1), 2)
		assert.Len(t, list(t, salesman2), 1)
	})

	t.Run("manager sees group members' invoices", func(t *testing.T) {
		elements := list(t, reloadUser(t, db, manager.ID))
		require.Len(t, elements, 2)
		for _, invoice := range elements {
			assert.Equal(t, salesman1.ID, invoice.AuthorID)
		}
	})

	t.Run("accountant sees everything", func(t *testing.T) {
		assert.Len(t, list(t, accountant), 3)
	})

	t.Run("user without authorities sees nothing", func(t *testing.T) {
		assert.Empty(t, list(t, clerk))
	})

	t.Run("unknown status filter is rejected", func(t *testing.T) {
		bogus := "SHIPPED"
		_, err := svc.List(testCtx, accountant, repository.InvoiceListFilter{Status: &bogus}, pagination.Normalize(0, 20))
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})
}

func TestInvoiceService_ListPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewInvoiceService(
		repository.NewInvoiceRepository(db),
		repository.NewProductRepository(db),
		repository.NewTransactionManager(db),
		nil,
	)

	salesman := seedUser(t, db, "salesman", "secret", model.AuthoritySalesman)
	for i := 0; i < 45; i++ {
		seedInvoice(t, db, salesman, fmt.Sprintf("order %d", i), model.StatusCreated)
	}

	page, err := svc.List(testCtx, salesman, repository.InvoiceListFilter{}, pagination.Normalize(2, 20))
	require.NoError(t, err)
	assert.Len(t, page.Elements, 5)
	assert.Equal(t, 3, page.NumOfPage)
	assert.Equal(t, 2, page.PageNumber)
	assert.Equal(t, 20, page.PageSize)
}

func TestInvoiceService_DeleteHidesFromListings(t *testing.T) {
	db := newTestDB(t)
	svc := NewInvoiceService(
		repository.NewInvoiceRepository(db),
		repository.NewProductRepository(db),
		repository.NewTransactionManager(db),
		nil,
	)

	salesman := seedUser(t, db, "salesman", "secret", model.AuthoritySalesman)
	invoice := seedInvoice(t, db, salesman, "march order", model.StatusCreated)

	require.NoError(t, svc.Delete(testCtx, invoice.ID))

	page, err := svc.List(testCtx, salesman, repository.InvoiceListFilter{}, pagination.Normalize(0, 20))
	require.NoError(t, err)
	assert.Empty(t, page.Elements)

	// Still readable by id after the soft delete.
	resp, err := svc.Get(testCtx, salesman, invoice.ID)
	require.NoError(t, err)
	assert.True(t, resp.Deleted)

	deleted := true
	page, err = svc.List(testCtx, salesman, repository.InvoiceListFilter{Deleted: &deleted}, pagination.Normalize(0, 20))
	require.NoError(t, err)
	assert.Len(t, page.Elements, 1)
}
