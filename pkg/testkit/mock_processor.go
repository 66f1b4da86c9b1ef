package testkit

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/akil18/cop-shop-server-side/pkg/payment"
)

// Processor is a testify mock of payment.Processor.
//
//	proc := testkit.NewProcessor()
//	proc.On("CreateIntent", mock.Anything, int64(1250), payment.CurrencyUSD).
//	    Return(payment.Intent{ClientSecret: "pi_1_secret"}, nil).Once()
//	...
//	proc.AssertExpectations(t)
type Processor struct {
	mock.Mock
}

var _ payment.Processor = (*Processor)(nil)

func NewProcessor() *Processor { return &Processor{} }

func (p *Processor) CreateIntent(ctx context.Context, amount int64, currency string) (payment.Intent, error) {
	args := p.Called(ctx, amount, currency)
	intent, _ := args.Get(0).(payment.Intent)
	return intent, args.Error(1)
}

// Succeed makes every call return an intent whose secret is secret.
func (p *Processor) Succeed(secret string) *mock.Call {
	return p.On("CreateIntent", mock.Anything, mock.AnythingOfType("int64"), mock.AnythingOfType("string")).
		Return(payment.Intent{ID: "pi_test", ClientSecret: secret}, nil)
}

// Fail makes every call return err.
func (p *Processor) Fail(err error) *mock.Call {
	return p.On("CreateIntent", mock.Anything, mock.AnythingOfType("int64"), mock.AnythingOfType("string")).
		Return(payment.Intent{}, err)
}
