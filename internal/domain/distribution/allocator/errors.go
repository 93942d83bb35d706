package allocator

import "fmt"

// OverAllocationError reports a plan that asks for more than the stock on hand.
type OverAllocationError struct {
	Available int
	Requested int
}

func (e *OverAllocationError) Error() string {
	return fmt.Sprintf("distribution plan exceeds available quantity: available %d, requested %d", e.Available, e.Requested)
}
