package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"crescer-uniformes/models"
	"crescer-uniformes/repository"
)

type fakeStagingRepo struct {
	orders      map[string]*models.StagingOrder
	inserted    []models.StagingOrder
	insertErr   error
	insertLimit int // rows accepted before insertErr, when set
	updates     []string
	statusCalls []models.ImportStatus
}

func newFakeStagingRepo(orders ...models.StagingOrder) *fakeStagingRepo {
	r := &fakeStagingRepo{orders: map[string]*models.StagingOrder{}}
	for i := range orders {
		o := orders[i]
		if o.Status == "" {
			o.Status = models.ImportPending
		}
		r.orders[o.ID] = &o
	}
	return r
}

func (r *fakeStagingRepo) BulkInsert(_ context.Context, orders []models.StagingOrder) (int, error) {
	if r.insertErr != nil {
		r.inserted = append(r.inserted, orders[:r.insertLimit]...)
		return r.insertLimit, r.insertErr
	}
	r.inserted = append(r.inserted, orders...)
	return len(orders), nil
}

func (r *fakeStagingRepo) ListPending(context.Context) ([]models.StagingOrder, error) {
	var out []models.StagingOrder
	for _, o := range r.orders {
		if o.Status == models.ImportPending {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeStagingRepo) GetByID(_ context.Context, id string) (*models.StagingOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrStagingOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (r *fakeStagingRepo) Update(_ context.Context, id string, req *models.UpdateStagingOrderRequest) (*models.StagingOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrStagingOrderNotFound
	}
	if o.Status != models.ImportPending {
		return nil, repository.ErrStagingOrderNotPending
	}
	r.updates = append(r.updates, id)
	o.School = req.School
	o.CustomerName = req.CustomerName
	o.Phone = req.Phone
	o.PaymentStatus = models.PaymentStatus(req.PaymentStatus)
	o.ParsedItems = req.ParsedItems
	copied := *o
	return &copied, nil
}

func (r *fakeStagingRepo) SetStatus(_ context.Context, id string, status models.ImportStatus) error {
	o, ok := r.orders[id]
	if !ok {
		return repository.ErrStagingOrderNotFound
	}
	if o.Status != models.ImportPending {
		return repository.ErrStagingOrderNotPending
	}
	r.statusCalls = append(r.statusCalls, status)
	o.Status = status
	return nil
}

type fakeCustomerRepo struct {
	customers   []models.Customer
	phoneLookup []string
	nameLookup  []string
	created     []models.CreateCustomerRequest
}

func (r *fakeCustomerRepo) FindByPhone(_ context.Context, phone string) (*models.Customer, error) {
	r.phoneLookup = append(r.phoneLookup, phone)
	for i := range r.customers {
		if r.customers[i].Phone == phone {
			return &r.customers[i], nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) FindByName(_ context.Context, name string) (*models.Customer, error) {
	r.nameLookup = append(r.nameLookup, name)
	for i := range r.customers {
		if strings.EqualFold(r.customers[i].Name, name) {
			return &r.customers[i], nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Create(_ context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	r.created = append(r.created, *req)
	c := models.Customer{
		ID:     fmt.Sprintf("new-customer-%d", len(r.created)),
		Name:   req.Name,
		Phone:  req.Phone,
		School: req.School,
	}
	r.customers = append(r.customers, c)
	return &c, nil
}

type fakeOrderRepo struct {
	created    []models.CreateOrderRequest
	items      map[string][]models.OrderItem
	itemsErr   error
	payments   []decimal.Decimal
	deliveries [][]models.DeliveryUpdate
	priced     []*models.UpdateOrderRequest
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{items: map[string][]models.OrderItem{}}
}

func (r *fakeOrderRepo) Create(_ context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	r.created = append(r.created, *req)
	return &models.Order{
		ID:             fmt.Sprintf("order-%d", len(r.created)),
		CustomerID:     req.CustomerID,
		School:         req.School,
		PurchaseDate:   req.PurchaseDate,
		PaymentStatus:  req.PaymentStatus,
		DeliveryStatus: req.DeliveryStatus,
		TotalAmount:    req.TotalAmount,
		AmountPaid:     req.AmountPaid,
	}, nil
}

func (r *fakeOrderRepo) InsertItems(_ context.Context, orderID string, items []models.OrderItem) (int, error) {
	if r.itemsErr != nil {
		return 0, r.itemsErr
	}
	r.items[orderID] = append(r.items[orderID], items...)
	return len(items), nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*models.OrderResponse, error) {
	return nil, repository.ErrOrderNotFound
}

func (r *fakeOrderRepo) RegisterPayment(_ context.Context, id string, amount decimal.Decimal) (*models.Order, error) {
	r.payments = append(r.payments, amount)
	total := decimal.NewFromInt(100)
	paid := decimal.Zero
	for _, p := range r.payments {
		paid = paid.Add(p)
	}
	return &models.Order{
		ID:            id,
		TotalAmount:   total,
		AmountPaid:    paid,
		PaymentStatus: string(models.PaymentLabelFor(total, paid)),
	}, nil
}

func (r *fakeOrderRepo) UpdateDeliveries(_ context.Context, id string, updates []models.DeliveryUpdate) (*models.OrderResponse, error) {
	r.deliveries = append(r.deliveries, updates)
	return &models.OrderResponse{Order: models.Order{ID: id, DeliveryStatus: models.DeliveryPartial}}, nil
}

func (r *fakeOrderRepo) UpdateOrder(_ context.Context, id string, req *models.UpdateOrderRequest) (*models.OrderResponse, error) {
	r.priced = append(r.priced, req)
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, u := range req.Items {
		items = append(items, models.OrderItem{ID: u.ItemID, OrderID: id, Quantity: 1, UnitPrice: u.UnitPrice})
	}
	total := models.OrderTotal(items)
	return &models.OrderResponse{
		Order: models.Order{
			ID:            id,
			TotalAmount:   total,
			PaymentStatus: string(models.PaymentLabelFor(total, decimal.Zero)),
		},
		Items: items,
	}, nil
}

type fakeDrive struct {
	text  string
	err   error
	calls []string
}

func (d *fakeDrive) DownloadText(_ context.Context, fileID string) (string, error) {
	d.calls = append(d.calls, fileID)
	return d.text, d.err
}
