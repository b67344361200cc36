package simulator

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/quickshop/storefront/internal/domain/payment"
)

// PaymentSimulator implements payment.Processor with a uniform random
// decision. The success rate is configurable so the historical 10% decline
// probability is a default, not a constant baked into call sites.
type PaymentSimulator struct {
	mu          sync.Mutex
	random      *rand.Rand
	successRate float64
}

// DefaultSuccessRate mirrors the storefront's historical 10% decline chance.
const DefaultSuccessRate = 0.9

func New(successRate float64) (*PaymentSimulator, error) {
	if successRate < 0 || successRate > 1 {
		return nil, fmt.Errorf("payment simulator: success rate %v out of [0,1]", successRate)
	}
	return &PaymentSimulator{
		random:      rand.New(rand.NewSource(time.Now().UnixNano())),
		successRate: successRate,
	}, nil
}

// NewSeeded is used by tests that need a reproducible decision sequence.
func NewSeeded(successRate float64, seed int64) (*PaymentSimulator, error) {
	s, err := New(successRate)
	if err != nil {
		return nil, err
	}
	s.random = rand.New(rand.NewSource(seed))
	return s, nil
}

func (s *PaymentSimulator) Decide(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.random.Float64() < s.successRate, nil
}

func (s *PaymentSimulator) SuccessRate() float64 { return s.successRate }

var _ payment.Processor = (*PaymentSimulator)(nil)
