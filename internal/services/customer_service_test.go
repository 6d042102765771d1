package services

import (
	"context"
	"testing"

	"github.com/omnireach/crm-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memOrderRepo struct {
	orders []*models.Order
}

func (r *memOrderRepo) Create(_ context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	r.orders = append(r.orders, order)
	return nil
}

func (r *memOrderRepo) FindByCustomerID(_ context.Context, customerID primitive.ObjectID) ([]*models.Order, error) {
	out := []*models.Order{}
	for _, o := range r.orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

type memDataRecordRepo struct {
	records []*models.DataRecord
}

func (r *memDataRecordRepo) InsertMany(_ context.Context, records []*models.DataRecord) error {
	r.records = append(r.records, records...)
	return nil
}

func (r *memDataRecordRepo) FindAll(_ context.Context) ([]*models.DataRecord, error) {
	return r.records, nil
}

type memDataSourceRepo struct {
	sources []*models.DataSource
}

func (r *memDataSourceRepo) FindAll(_ context.Context) ([]*models.DataSource, error) {
	return r.sources, nil
}

func (r *memDataSourceRepo) Create(_ context.Context, source *models.DataSource) error {
	r.sources = append(r.sources, source)
	return nil
}

func newTestCustomerService() (*CustomerService, *memCustomerRepo, *memOrderRepo) {
	customerRepo := &memCustomerRepo{}
	orderRepo := &memOrderRepo{}
	svc := NewCustomerService(customerRepo, orderRepo, &memDataRecordRepo{}, &memDataSourceRepo{})
	return svc, customerRepo, orderRepo
}

func TestIngestCustomerUpsertsByEmail(t *testing.T) {
	svc, customerRepo, _ := newTestCustomerService()
	ctx := context.Background()

	first, created, err := svc.IngestCustomer(ctx, &models.Customer{Email: "mohit@example.com", Name: "Mohit"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, first.ID.IsZero())

	// Re-ingesting the same email returns the existing record untouched.
	second, created, err := svc.IngestCustomer(ctx, &models.Customer{Email: "mohit@example.com", Name: "Different Name"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Mohit", second.Name)
	assert.Len(t, customerRepo.customers, 1)
}

func TestIngestOrderRequiresCustomer(t *testing.T) {
	svc, _, orderRepo := newTestCustomerService()
	ctx := context.Background()

	customer, _, err := svc.IngestCustomer(ctx, &models.Customer{Email: "mohit@example.com", Name: "Mohit"})
	require.NoError(t, err)

	order := &models.Order{CustomerID: customer.ID, OrderID: "ORD-1", Amount: 499.0}
	require.NoError(t, svc.IngestOrder(ctx, order))
	assert.Len(t, orderRepo.orders, 1)

	err = svc.IngestOrder(ctx, &models.Order{CustomerID: primitive.NewObjectID(), OrderID: "ORD-2"})
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	orders, err := svc.GetOrdersByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestIngestDataRecords(t *testing.T) {
	svc, _, _ := newTestCustomerService()
	ctx := context.Background()

	records := []*models.DataRecord{
		{Email: "a@example.com", Name: "A"},
		{Email: "b@example.com", Name: "B"},
	}
	require.NoError(t, svc.IngestDataRecords(ctx, records))

	stored, err := svc.GetDataRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestGetCustomerCount(t *testing.T) {
	svc, _, _ := newTestCustomerService()
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, _, err := svc.IngestCustomer(ctx, &models.Customer{Email: email, Name: "X"})
		require.NoError(t, err)
	}

	count, err := svc.GetCustomerCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
