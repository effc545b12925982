package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"crescer-uniformes/metrics"
	"crescer-uniformes/models"
	"crescer-uniformes/parser"
	"crescer-uniformes/repository"
	"crescer-uniformes/utils"
)

// minLookupPhoneDigits is the shortest phone worth matching against existing customers
const minLookupPhoneDigits = 9

// Customer resolution paths
const (
	ResolvedByPhone   = "phone"
	ResolvedByName    = "name"
	ResolvedByCreated = "created"
)

// ReviewService turns reviewed staging rows into customers, orders and order items
// Implements ReviewServiceInterface
type ReviewService struct {
	stagingRepo  repository.StagingOrderRepositoryInterface
	customerRepo repository.CustomerRepositoryInterface
	orderRepo    repository.OrderRepositoryInterface
	metrics      *metrics.Registry
	now          func() time.Time
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	stagingRepo repository.StagingOrderRepositoryInterface,
	customerRepo repository.CustomerRepositoryInterface,
	orderRepo repository.OrderRepositoryInterface,
	m *metrics.Registry,
) *ReviewService {
	return &ReviewService{
		stagingRepo:  stagingRepo,
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		metrics:      m,
		now:          time.Now,
	}
}

// Ensure ReviewService implements ReviewServiceInterface
var _ ReviewServiceInterface = (*ReviewService)(nil)

// WarnInvalidPhone flags a phone libphonenumber does not accept for the region
const WarnInvalidPhone = "phone is not a valid number for region "

// ListPending returns the review queue, oldest first
func (s *ReviewService) ListPending(ctx context.Context) ([]models.StagingOrder, error) {
	orders, err := s.stagingRepo.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		flagPhone(&orders[i])
	}
	return orders, nil
}

// flagPhone warns about phones that will not identify the customer reliably.
// The row is kept as is; the reviewer decides.
func flagPhone(o *models.StagingOrder) {
	if o.Phone != "" && !utils.ValidatePhoneNumber(o.Phone) {
		o.Warnings = append(o.Warnings, WarnInvalidPhone+utils.CountryCode)
	}
}

// Update validates and saves a reviewer's corrections to a pending row
func (s *ReviewService) Update(ctx context.Context, id string, req *models.UpdateStagingOrderRequest) (*models.StagingOrder, error) {
	if err := normalizeEdits(req); err != nil {
		return nil, err
	}
	order, err := s.stagingRepo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	flagPhone(order)
	return order, nil
}

// normalizeEdits cleans up reviewer input in place and validates it
func normalizeEdits(req *models.UpdateStagingOrderRequest) error {
	req.School = strings.ToUpper(strings.TrimSpace(req.School))
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.Phone = parser.DigitsOnly(req.Phone)
	if req.PaymentStatus == "" {
		req.PaymentStatus = string(models.PaymentPending)
	}

	if err := utils.Validator().Struct(req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	switch models.PaymentStatus(req.PaymentStatus) {
	case models.PaymentPending, models.PaymentPartial, models.PaymentPaidInFull:
	default:
		return fmt.Errorf("%w: unknown payment status %q", ErrInvalidRequest, req.PaymentStatus)
	}
	return nil
}

// Approve materializes a pending staging row.
// Each step runs on its own; a failure leaves the row pending so the reviewer
// can retry, and records written by earlier steps are kept.
func (s *ReviewService) Approve(ctx context.Context, id string, edits *models.UpdateStagingOrderRequest) (*models.ApprovalResult, error) {
	log := logrus.WithField("stagingOrderId", id)
	log.Info("📦 Approve: Approving imported order")

	if edits != nil {
		if _, err := s.Update(ctx, id, edits); err != nil {
			log.Errorf("❌ Approve: Error saving edits: %v", err)
			return nil, err
		}
	}

	staging, err := s.stagingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if staging.Status != models.ImportPending {
		return nil, fmt.Errorf("%w (status=%s)", repository.ErrStagingOrderNotPending, staging.Status)
	}

	customer, resolvedBy, err := s.resolveCustomer(ctx, staging)
	if err != nil {
		log.Errorf("❌ Approve: Error resolving customer: %v", err)
		return nil, fmt.Errorf("failed to resolve customer: %w", err)
	}
	s.metrics.RecordResolution(resolvedBy)
	log.Infof("👤 Approve: customer_id=%s resolved by %s", customer.ID, resolvedBy)

	paymentStatus := staging.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.PaymentPending
	}

	order, err := s.orderRepo.Create(ctx, &models.CreateOrderRequest{
		CustomerID:     customer.ID,
		School:         staging.School,
		PurchaseDate:   s.now().Format("2006-01-02"),
		PaymentStatus:  string(paymentStatus),
		DeliveryStatus: models.DeliveryPending,
		TotalAmount:    decimal.Zero,
		AmountPaid:     decimal.Zero,
	})
	if err != nil {
		log.Errorf("❌ Approve: Error creating order: %v", err)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	items := make([]models.OrderItem, 0, len(staging.ParsedItems))
	for _, parsed := range staging.ParsedItems {
		items = append(items, models.OrderItem{
			ProductName:       parsed.Product,
			Size:              parsed.Size,
			Quantity:          parsed.Quantity,
			UnitPrice:         decimal.Zero,
			QuantityDelivered: 0,
		})
	}
	itemCount, err := s.orderRepo.InsertItems(ctx, order.ID, items)
	if err != nil {
		log.Errorf("❌ Approve: Error inserting items for order_id=%s: %v", order.ID, err)
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err := s.stagingRepo.SetStatus(ctx, id, models.ImportApproved); err != nil {
		log.Errorf("❌ Approve: Error closing imported order: %v", err)
		return nil, fmt.Errorf("failed to mark imported order approved: %w", err)
	}
	s.metrics.RecordOutcome(string(models.ImportApproved))

	log.WithField("orderId", order.ID).Infof("✅ Approve: Created order with %d items", itemCount)
	return &models.ApprovalResult{
		StagingOrderID:  id,
		CustomerID:      customer.ID,
		CustomerCreated: resolvedBy == ResolvedByCreated,
		ResolvedBy:      resolvedBy,
		OrderID:         order.ID,
		ItemCount:       itemCount,
	}, nil
}

// resolveCustomer finds the customer for a staging row: by phone, then by
// name, otherwise a new customer is created from the staged fields
func (s *ReviewService) resolveCustomer(ctx context.Context, staging *models.StagingOrder) (*models.Customer, string, error) {
	phone := parser.DigitsOnly(staging.Phone)
	if len(phone) >= minLookupPhoneDigits {
		customer, err := s.customerRepo.FindByPhone(ctx, phone)
		if err != nil {
			return nil, "", err
		}
		if customer != nil {
			return customer, ResolvedByPhone, nil
		}
	}

	name := strings.TrimSpace(staging.CustomerName)
	if name == "" {
		name = models.UnknownCustomer
	}
	customer, err := s.customerRepo.FindByName(ctx, name)
	if err != nil {
		return nil, "", err
	}
	if customer != nil {
		return customer, ResolvedByName, nil
	}

	customer, err = s.customerRepo.Create(ctx, &models.CreateCustomerRequest{
		Name:   name,
		Phone:  phone,
		School: staging.School,
	})
	if err != nil {
		return nil, "", err
	}
	return customer, ResolvedByCreated, nil
}

// Ignore closes a pending row without creating anything.
// confirmed must be true; the reviewer has to acknowledge the action.
func (s *ReviewService) Ignore(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	if err := s.stagingRepo.SetStatus(ctx, id, models.ImportIgnored); err != nil {
		logrus.WithField("stagingOrderId", id).Errorf("❌ Ignore: Error ignoring imported order: %v", err)
		return err
	}
	s.metrics.RecordOutcome(string(models.ImportIgnored))

	logrus.WithField("stagingOrderId", id).Info("🗑️  Ignore: Imported order ignored")
	return nil
}
