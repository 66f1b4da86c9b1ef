package services_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/akil18/cop-shop-server-side/app/models"
	"github.com/akil18/cop-shop-server-side/app/repositories"
	"github.com/akil18/cop-shop-server-side/app/services"
	"github.com/akil18/cop-shop-server-side/pkg/apperr"
	"github.com/akil18/cop-shop-server-side/pkg/auth"
	"github.com/akil18/cop-shop-server-side/pkg/payment"
	"github.com/akil18/cop-shop-server-side/pkg/store"
	"github.com/akil18/cop-shop-server-side/pkg/testkit"
)

type fixture struct {
	gw       *store.Memory
	products *repositories.ProductRepository
	orders   *repositories.OrderRepository
	checkout *services.CheckoutService
	proc     *testkit.Processor
}

func newFixture() *fixture {
	gw := store.NewMemory()
	f := &fixture{
		gw:       gw,
		products: repositories.NewProductRepository(gw),
		orders:   repositories.NewOrderRepository(gw),
		proc:     testkit.NewProcessor(),
	}
	f.checkout = services.NewCheckoutService(gw, repositories.NewPaymentRepository(gw), f.orders, f.products, f.proc)
	return f
}

func (f *fixture) seed(t *testing.T) (orderID, productID primitive.ObjectID) {
	t.Helper()
	ctx := context.Background()
	pr, err := f.products.Create(ctx, models.Product{Title: "Pixel", Advertise: true})
	require.NoError(t, err)
	or, err := f.orders.Create(ctx, models.Order{BuyerEmail: "b@shop.test", Title: "Pixel"})
	require.NoError(t, err)
	return or.InsertedID.(primitive.ObjectID), pr.InsertedID.(primitive.ObjectID)
}

func TestSettleUpdatesOrderAndProduct(t *testing.T) {
	f := newFixture()
	orderID, productID := f.seed(t)
	ctx := context.Background()

	res, err := f.checkout.Settle(ctx, models.Payment{OrderID: orderID.Hex(), ProductID: productID.Hex(), PaymentID: "pi_1"})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.Equal(t, 1, f.gw.Len(store.Payments))

	o, err := f.orders.Find(ctx, orderID)
	require.NoError(t, err)
	assert.True(t, o.Paid)
	assert.Equal(t, "pi_1", o.PaymentID)

	p, err := f.products.Find(ctx, productID)
	require.NoError(t, err)
	assert.True(t, p.Sold)
	assert.False(t, p.Advertise)
}

func TestSettleRollsBackOnMissingProduct(t *testing.T) {
	f := newFixture()
	orderID, _ := f.seed(t)
	ctx := context.Background()

	_, err := f.checkout.Settle(ctx, models.Payment{OrderID: orderID.Hex(), ProductID: primitive.NewObjectID().Hex(), PaymentID: "pi_1"})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	assert.Equal(t, 0, f.gw.Len(store.Payments))
	o, err := f.orders.Find(ctx, orderID)
	require.NoError(t, err)
	assert.False(t, o.Paid)
}

func TestSettleRejectsBadIDs(t *testing.T) {
	f := newFixture()

	_, err := f.checkout.Settle(context.Background(), models.Payment{OrderID: "nope", ProductID: primitive.NewObjectID().Hex()})
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))

	_, err = f.checkout.Settle(context.Background(), models.Payment{OrderID: primitive.NewObjectID().Hex()})
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))
	assert.Equal(t, 0, f.gw.Len(store.Payments))
}

func TestCreateIntent(t *testing.T) {
	f := newFixture()
	f.proc.On("CreateIntent", mock.Anything, int64(1999), payment.CurrencyUSD).
		Return(payment.Intent{ID: "pi_1", ClientSecret: "pi_1_secret"}, nil).Once()

	secret, err := f.checkout.CreateIntent(context.Background(), 19.99)
	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret", secret)

	for _, price := range []float64{0, -1, math.NaN(), math.Inf(1), 1e20} {
		_, err = f.checkout.CreateIntent(context.Background(), price)
		assert.True(t, apperr.IsKind(err, apperr.KindBadRequest), "%v", price)
	}
	f.proc.AssertExpectations(t)
	f.proc.AssertNumberOfCalls(t, "CreateIntent", 1)
}

func TestCreateIntentErrorKinds(t *testing.T) {
	cases := []struct {
		err  error
		kind apperr.Kind
	}{
		{payment.ErrUnavailable, apperr.KindUnavailable},
		{errors.New("card_declined"), apperr.KindBadGateway},
		{payment.ErrInvalidAmount, apperr.KindBadRequest},
	}
	for _, tc := range cases {
		f := newFixture()
		f.proc.Fail(tc.err)

		_, err := f.checkout.CreateIntent(context.Background(), 10)
		assert.True(t, apperr.IsKind(err, tc.kind), tc.err.Error())
	}
}

func TestPlaceOrderRejectsDuplicate(t *testing.T) {
	gw := store.NewMemory()
	svc := services.NewOrderService(repositories.NewOrderRepository(gw))
	o := models.Order{BuyerEmail: "b@shop.test", Title: "Pixel"}

	_, err := svc.Place(context.Background(), o)
	require.NoError(t, err)

	_, err = svc.Place(context.Background(), o)
	assert.ErrorIs(t, err, services.ErrOrderExists)
	assert.Equal(t, 1, gw.Len(store.Orders))

	_, err = svc.Place(context.Background(), models.Order{BuyerEmail: "b@shop.test", Title: "Other"})
	assert.NoError(t, err)
}

func TestIssueToken(t *testing.T) {
	gw := store.NewMemory()
	users := repositories.NewUserRepository(gw)
	_, err := users.Create(context.Background(), models.User{Email: "b@shop.test", Role: models.RoleBuyer})
	require.NoError(t, err)

	signer, err := auth.NewSigner("secret", time.Hour)
	require.NoError(t, err)
	svc := services.NewAuthService(users, signer)

	token, err := svc.IssueToken(context.Background(), "b@shop.test")
	require.NoError(t, err)
	claims, err := signer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "b@shop.test", claims.Email)

	_, err = svc.IssueToken(context.Background(), "ghost@shop.test")
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	_, err = svc.IssueToken(context.Background(), "")
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}
