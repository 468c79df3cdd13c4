package checkout

import (
	"fmt"
	"time"
)

// NewReference generates a display-only order reference from the current
// timestamp: prefix plus the last eight digits of epoch milliseconds. Not
// collision-resistant and not used as a durable lookup key beyond the
// retained-confirmation cache.
func NewReference(prefix string) string {
	millis := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}
	return fmt.Sprintf("%s-%s", prefix, millis)
}
