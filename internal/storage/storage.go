package storage

import "launchpool/internal/model"

// Journal defines a sink for committed pool events.
type Journal interface {
	PutEventBatch(events []model.PoolEvent) error
}
