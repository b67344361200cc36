package payment

import "context"

// Processor decides whether a payment attempt is accepted. A decline is an
// expected business outcome, not an error; err is reserved for transport or
// gateway faults so a real gateway client can slot in behind this port.
type Processor interface {
	Decide(ctx context.Context) (approved bool, err error)
}
