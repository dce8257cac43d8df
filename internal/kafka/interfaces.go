package kafka

import (
	"finance-ledger/internal/events"
)

var (
	_ events.Publisher = (*ProducerImpl)(nil)
	_ events.Consumer  = (*ConsumerImpl)(nil)
)
