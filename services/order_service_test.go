package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Devprashant05/Paanshala-sub000/models"
)

type fakeCarts struct {
	cart    *models.Cart
	deleted bool
	findErr error
}

func (f *fakeCarts) FindByUser(ctx context.Context, userId primitive.ObjectID) (*models.Cart, error) {
	return f.cart, f.findErr
}

func (f *fakeCarts) DeleteByUser(ctx context.Context, userId primitive.ObjectID) error {
	f.deleted = true
	f.cart = nil
	return nil
}

type fakeAddresses struct {
	m map[primitive.ObjectID]*models.Address
}

func (f *fakeAddresses) FindByIdForUser(ctx context.Context, id, userId primitive.ObjectID) (*models.Address, error) {
	return f.m[id], nil
}

type fakeOrders struct {
	inserted   []*models.Order
	invoiceUrl string
	statusSet  string
	insertErr  error
}

func (f *fakeOrders) Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error) {
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	id := primitive.NewObjectID()
	cp := *order
	cp.Id = id
	f.inserted = append(f.inserted, &cp)
	return id, nil
}

func (f *fakeOrders) FindById(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	for _, o := range f.inserted {
		if o.Id == id {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrders) SetInvoiceUrl(ctx context.Context, id primitive.ObjectID, url string) error {
	f.invoiceUrl = url
	return nil
}

func (f *fakeOrders) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	f.statusSet = status
	return nil
}

type fakeSequences struct {
	n    int64
	year string
}

func (f *fakeSequences) NextOrderSequence(ctx context.Context, year string) (int64, error) {
	f.year = year
	f.n++
	return f.n, nil
}

type fakeUsages struct {
	consumed int
}

func (f *fakeUsages) ConsumeUsage(ctx context.Context, couponId, userId primitive.ObjectID) error {
	f.consumed++
	return nil
}

type fakeUsers struct {
	user *models.User
}

func (f *fakeUsers) FindById(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return f.user, nil
}

type fakeGateway struct {
	verifyOK  bool
	createErr error
	created   []int64
}

func (f *fakeGateway) CreateOrder(amountMinorUnits int64, currency, receipt string) (*PaymentIntent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, amountMinorUnits)
	return &PaymentIntent{ProviderOrderId: "order_fake", Amount: amountMinorUnits, Currency: currency}, nil
}

func (f *fakeGateway) VerifySignature(providerOrderId, providerPaymentId, signature string) bool {
	return f.verifyOK
}

type fakeInvoices struct {
	path string
	err  error
}

func (f *fakeInvoices) GenerateInvoice(order *models.Order) (string, error) {
	return f.path, f.err
}

type fakeStorage struct {
	url string
	err error
}

func (f *fakeStorage) UploadDocument(ctx context.Context, localPath, publicId string) (string, error) {
	return f.url, f.err
}

type fakeMailer struct {
	sent        int
	attachments []string
	err         error
}

func (f *fakeMailer) Send(to, subject, htmlBody string, attachments []string) error {
	if f.err != nil {
		return f.err
	}
	f.sent++
	f.attachments = attachments
	return nil
}

func testCart(userId primitive.ObjectID) *models.Cart {
	cart := &models.Cart{
		UserId: userId,
		Items: []models.CartItem{
			{ProductId: primitive.NewObjectID(), Name: "Silver Paan Tray", Image: "tray.jpg", Quantity: 1, UnitPrice: 150, TotalPrice: 150},
			{ProductId: primitive.NewObjectID(), Name: "Betel Leaf Box", Size: "L", Quantity: 2, UnitPrice: 150, TotalPrice: 300},
		},
	}
	Reprice(cart)
	return cart
}

type fixture struct {
	svc       *OrderService
	carts     *fakeCarts
	addresses *fakeAddresses
	orders    *fakeOrders
	sequences *fakeSequences
	usages    *fakeUsages
	gateway   *fakeGateway
	invoices  *fakeInvoices
	storage   *fakeStorage
	mailer    *fakeMailer
	userId    primitive.ObjectID
	billing   primitive.ObjectID
	shipping  primitive.ObjectID
}

func newFixture() *fixture {
	userId := primitive.NewObjectID()
	billing := primitive.NewObjectID()
	shipping := primitive.NewObjectID()

	f := &fixture{
		carts: &fakeCarts{cart: testCart(userId)},
		addresses: &fakeAddresses{m: map[primitive.ObjectID]*models.Address{
			billing:  {Id: billing, UserId: userId, FullName: "Asha Rao", City: "Pune", State: "MH", ZipCode: "411001", StreetAddress: "12 MG Road", Phone: "9000000001"},
			shipping: {Id: shipping, UserId: userId, FullName: "Asha Rao", City: "Mumbai", State: "MH", ZipCode: "400001", StreetAddress: "8 Marine Drive", Phone: "9000000001"},
		}},
		orders:    &fakeOrders{},
		sequences: &fakeSequences{},
		usages:    &fakeUsages{},
		gateway:   &fakeGateway{verifyOK: true},
		invoices:  &fakeInvoices{path: "/tmp/does-not-exist-invoice.pdf"},
		storage:   &fakeStorage{url: "https://cdn.example.com/invoices/i.pdf"},
		mailer:    &fakeMailer{},
		userId:    userId,
		billing:   billing,
		shipping:  shipping,
	}
	f.svc = &OrderService{
		Carts:     f.carts,
		Addresses: f.addresses,
		Orders:    f.orders,
		Sequences: f.sequences,
		Usages:    f.usages,
		Users:     &fakeUsers{user: &models.User{Id: userId, Name: "Asha Rao", Email: "asha@example.com"}},
		Gateway:   f.gateway,
		Invoices:  f.invoices,
		Storage:   f.storage,
		Mailer:    f.mailer,
	}
	return f
}

func (f *fixture) placeOrderRequest() PlaceOrderRequest {
	return PlaceOrderRequest{
		ProviderOrderId:   "order_1",
		ProviderPaymentId: "pay_1",
		Signature:         "sig",
		BillingAddressId:  f.billing,
		ShippingAddressId: f.shipping,
	}
}

func TestCreatePaymentIntent(t *testing.T) {
	f := newFixture()

	intent, err := f.svc.CreatePaymentIntent(context.Background(), f.userId)
	if err != nil {
		t.Fatalf("CreatePaymentIntent: %v", err)
	}
	if intent.Amount != 45000 {
		t.Fatalf("amount = %d paise, want 45000", intent.Amount)
	}
	if intent.Currency != "INR" {
		t.Fatalf("currency = %s, want INR", intent.Currency)
	}

	f.carts.cart = nil
	if _, err := f.svc.CreatePaymentIntent(context.Background(), f.userId); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("missing cart: got %v, want ErrEmptyCart", err)
	}

	f.carts.cart = &models.Cart{UserId: f.userId, Items: []models.CartItem{}}
	if _, err := f.svc.CreatePaymentIntent(context.Background(), f.userId); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("empty cart: got %v, want ErrEmptyCart", err)
	}

	zero := testCart(f.userId)
	zero.Coupon = &models.AppliedCoupon{Code: "FREE", Discount: 450}
	Reprice(zero)
	f.carts.cart = zero
	if _, err := f.svc.CreatePaymentIntent(context.Background(), f.userId); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero total: got %v, want ErrInvalidAmount", err)
	}
}

func TestCreatePaymentIntentProviderFailure(t *testing.T) {
	f := newFixture()
	f.gateway.createErr = errors.New("provider unavailable")

	if _, err := f.svc.CreatePaymentIntent(context.Background(), f.userId); err == nil {
		t.Fatal("provider failure should surface")
	}
}

func TestPlaceOrderHappyPath(t *testing.T) {
	f := newFixture()

	order, warnings, err := f.svc.PlaceOrder(context.Background(), f.userId, f.placeOrderRequest())
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	year := time.Now().Format("06")
	wantNumber := fmt.Sprintf("PAAN-%s-01", year)
	if order.OrderNumber != wantNumber {
		t.Fatalf("order number = %s, want %s", order.OrderNumber, wantNumber)
	}
	if order.Status != models.OrderStatusPaid {
		t.Fatalf("status = %s, want PAID", order.Status)
	}
	if order.Payment.Status != models.PaymentStatusPaid {
		t.Fatalf("payment status = %s, want PAID", order.Payment.Status)
	}
	if order.Subtotal != 450 || order.Total != 450 {
		t.Fatalf("totals = %v/%v, want 450/450", order.Subtotal, order.Total)
	}
	if len(order.Items) != 2 || order.Items[0].Name != "Silver Paan Tray" {
		t.Fatalf("items not snapshotted: %+v", order.Items)
	}
	if order.ShippingAddress.City != "Mumbai" || order.BillingAddress.City != "Pune" {
		t.Fatalf("address snapshots wrong: %+v / %+v", order.BillingAddress, order.ShippingAddress)
	}
	if order.InvoiceUrl != "https://cdn.example.com/invoices/i.pdf" {
		t.Fatalf("invoice url = %q", order.InvoiceUrl)
	}
	if !f.carts.deleted {
		t.Fatal("cart should be deleted after a successful order")
	}
	if f.mailer.sent != 1 {
		t.Fatalf("mail sent %d times, want 1", f.mailer.sent)
	}
	if len(f.mailer.attachments) != 1 {
		t.Fatalf("mail attachments = %v, want the invoice", f.mailer.attachments)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
}

func TestPlaceOrderSequenceIncrements(t *testing.T) {
	f := newFixture()
	year := time.Now().Format("06")

	for i := 1; i <= 11; i++ {
		f.carts.cart = testCart(f.userId)
		order, _, err := f.svc.PlaceOrder(context.Background(), f.userId, f.placeOrderRequest())
		if err != nil {
			t.Fatalf("order %d: %v", i, err)
		}
		want := fmt.Sprintf("PAAN-%s-%02d", year, i)
		if order.OrderNumber != want {
			t.Fatalf("order %d number = %s, want %s", i, order.OrderNumber, want)
		}
		if order.OrderSequence != int64(i) {
			t.Fatalf("order %d sequence = %d", i, order.OrderSequence)
		}
	}
	if f.sequences.year != year {
		t.Fatalf("sequence scoped to %q, want %q", f.sequences.year, year)
	}
}

func TestPlaceOrderBadSignature(t *testing.T) {
	f := newFixture()
	f.gateway.verifyOK = false

	_, _, err := f.svc.PlaceOrder(context.Background(), f.userId, f.placeOrderRequest())
	if !errors.Is(err, ErrPaymentVerificationFailed) {
		t.Fatalf("got %v, want ErrPaymentVerificationFailed", err)
	}
	if len(f.orders.inserted) != 0 {
		t.Fatal("no order may be created on signature mismatch")
	}
	if f.carts.deleted {
		t.Fatal("cart must not be touched on signature mismatch")
	}
}

func TestPlaceOrderMissingAddressAborts(t *testing.T) {
	f := newFixture()
	delete(f.addresses.m, f.shipping)

	_, _, err := f.svc.PlaceOrder(context.Background(), f.userId, f.placeOrderRequest())
	if !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("got %v, want ErrInvalidAddress", err)
	}
	if len(f.orders.inserted) != 0 {
		t.Fatal("no order may be created when the shipping address is missing")
	}
	if f.carts.deleted {
		t.Fatal("cart must not be cleared when materialization aborts")
	}
	if f.mailer.sent != 0 {
		t.Fatal("no side effects may run when materialization aborts")
	}
}

func TestPlaceOrderEmptyCartAborts(t *testing.T) {
	f := newFixture()
	f.carts.cart = nil

	_, _, err := f.svc.PlaceOrder(context.Background(), f.userId, f.placeOrderRequest())
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("got %v, want ErrEmptyCart", err)
	}
	if len(f.orders.inserted) != 0 {
		t.Fatal("no order may be created from a missing cart")
	}
}

func TestPlaceOrderInvoiceFailureIsIsolated(t *testing.T) {
	f := newFixture()
	f.invoices.err = errors.New("pdf renderer broke")

	order, warnings, err := f.svc.PlaceOrder(context.Background(), f.userId, f.placeOrderRequest())
	if err != nil {
		t.Fatalf("invoice failure must not fail the order: %v", err)
	}
	if order.Status != models.OrderStatusPaid {
		t.Fatalf("status = %s, want PAID", order.Status)
	}
	if order.OrderNumber == "" || order.Id.IsZero() {
		t.Fatal("order must be fully materialized despite invoice failure")
	}
	if order.InvoiceUrl != "" {
		t.Fatalf("invoice url = %q, want empty", order.InvoiceUrl)
	}
	if !f.carts.deleted {
		t.Fatal("cart must still be cleared")
	}
	if f.mailer.sent != 1 {
		t.Fatal("confirmation mail must still be attempted")
	}
	if len(f.mailer.attachments) != 0 {
		t.Fatal("mail must go out without an attachment")
	}
	if len(warnings) == 0 {
		t.Fatal("invoice failure should be reported as a warning")
	}
}

func TestPlaceOrderMailFailureIsIsolated(t *testing.T) {
	f := newFixture()
	f.mailer.err = errors.New("smtp refused")

	order, warnings, err := f.svc.PlaceOrder(context.Background(), f.userId, f.placeOrderRequest())
	if err != nil {
		t.Fatalf("mail failure must not fail the order: %v", err)
	}
	if order.Status != models.OrderStatusPaid {
		t.Fatalf("status = %s, want PAID", order.Status)
	}
	if !f.carts.deleted {
		t.Fatal("cart must still be cleared")
	}
	if len(warnings) == 0 {
		t.Fatal("mail failure should be reported as a warning")
	}
}

func TestPlaceOrderConsumesCouponUsage(t *testing.T) {
	f := newFixture()
	cart := testCart(f.userId)
	cart.Coupon = &models.AppliedCoupon{CouponId: primitive.NewObjectID(), Code: "SAVE50", Discount: 50}
	Reprice(cart)
	f.carts.cart = cart

	order, _, err := f.svc.PlaceOrder(context.Background(), f.userId, f.placeOrderRequest())
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if order.CouponCode != "SAVE50" {
		t.Fatalf("coupon code = %q, want SAVE50", order.CouponCode)
	}
	if order.Discount != 50 || order.Total != 400 {
		t.Fatalf("totals = %v/%v, want 50/400", order.Discount, order.Total)
	}
	if f.usages.consumed != 1 {
		t.Fatalf("coupon usage consumed %d times, want 1", f.usages.consumed)
	}
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture()
	order, _, err := f.svc.PlaceOrder(context.Background(), f.userId, f.placeOrderRequest())
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	updated, err := f.svc.UpdateStatus(context.Background(), order.Id, models.OrderStatusProcessing)
	if err != nil {
		t.Fatalf("PAID -> PROCESSING: %v", err)
	}
	if updated.Status != models.OrderStatusProcessing {
		t.Fatalf("status = %s, want PROCESSING", updated.Status)
	}
	if f.orders.statusSet != models.OrderStatusProcessing {
		t.Fatal("status update not persisted")
	}

	f.orders.statusSet = ""
	_, err = f.svc.UpdateStatus(context.Background(), order.Id, models.OrderStatusDelivered)
	var transitionErr *InvalidTransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("PROCESSING -> DELIVERED: got %v, want *InvalidTransitionError", err)
	}
	if f.orders.statusSet != "" {
		t.Fatal("order must be left unmodified on an invalid transition")
	}

	_, err = f.svc.UpdateStatus(context.Background(), primitive.NewObjectID(), models.OrderStatusProcessing)
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("missing order: got %v, want ErrOrderNotFound", err)
	}
}
