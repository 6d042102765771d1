package services

import (
	"context"
	"errors"

	"github.com/omnireach/crm-backend/internal/models"
	"github.com/omnireach/crm-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CustomerService handles customer, order and raw data record ingestion
type CustomerService struct {
	customerRepo repositories.CustomerRepository
	orderRepo    repositories.OrderRepository
	recordRepo   repositories.DataRecordRepository
	sourceRepo   repositories.DataSourceRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	customerRepo repositories.CustomerRepository,
	orderRepo repositories.OrderRepository,
	recordRepo repositories.DataRecordRepository,
	sourceRepo repositories.DataSourceRepository,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		recordRepo:   recordRepo,
		sourceRepo:   sourceRepo,
	}
}

// IngestCustomer upserts a customer by email: an existing record is
// returned untouched, matching the original ingestion behavior
func (s *CustomerService) IngestCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, bool, error) {
	existing, err := s.customerRepo.FindByEmail(ctx, customer.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, err
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, false, err
	}
	return customer, true, nil
}

// GetCustomers lists all customers
func (s *CustomerService) GetCustomers(ctx context.Context) ([]*models.Customer, error) {
	return s.customerRepo.FindAll(ctx)
}

// GetCustomerCount counts all customers
func (s *CustomerService) GetCustomerCount(ctx context.Context) (int64, error) {
	return s.customerRepo.Count(ctx)
}

// IngestOrder records an order against an existing customer
func (s *CustomerService) IngestOrder(ctx context.Context, order *models.Order) error {
	_, err := s.customerRepo.FindByID(ctx, order.CustomerID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrCustomerNotFound
	}
	if err != nil {
		return err
	}
	return s.orderRepo.Create(ctx, order)
}

// GetOrdersByCustomer lists a customer's orders
func (s *CustomerService) GetOrdersByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]*models.Order, error) {
	return s.orderRepo.FindByCustomerID(ctx, customerID)
}

// IngestDataRecords bulk-inserts raw records
func (s *CustomerService) IngestDataRecords(ctx context.Context, records []*models.DataRecord) error {
	return s.recordRepo.InsertMany(ctx, records)
}

// GetDataRecords lists all raw records
func (s *CustomerService) GetDataRecords(ctx context.Context) ([]*models.DataRecord, error) {
	return s.recordRepo.FindAll(ctx)
}

// GetDataSources lists the registered ingestion sources
func (s *CustomerService) GetDataSources(ctx context.Context) ([]*models.DataSource, error) {
	return s.sourceRepo.FindAll(ctx)
}
