package service

import (
	"errors"
	"math/rand/v2"
	"sync/atomic"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"

	"gorm.io/gorm"
)

var ErrOrderIDSpaceExhausted = errors.New("no free order identifier left")

const defaultOrderIDAttempts = 32

// OrderIDGenerator hands out "ORD" + 6 digit identifiers not yet used by any shipment.
// It tries random candidates a bounded number of times, then falls back to one
// pass over the taken identifiers starting at a moving counter offset.
type OrderIDGenerator struct {
	maxAttempts int
	intn        func(n int) int
	counter     atomic.Uint64
}

func NewOrderIDGenerator(maxAttempts int) *OrderIDGenerator {
	if maxAttempts <= 0 {
		maxAttempts = defaultOrderIDAttempts
	}
	return &OrderIDGenerator{maxAttempts: maxAttempts, intn: rand.IntN}
}

// Next runs inside the caller's transaction; every attempt is a read.
func (g *OrderIDGenerator) Next(tx *gorm.DB, repo repository.ShipmentRepository) (string, error) {
	for i := 0; i < g.maxAttempts; i++ {
		candidate := model.FormatOrderID(g.intn(model.OrderIDSpace))
		exists, err := repo.OrderIDExists(tx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return g.scan(tx, repo)
}

func (g *OrderIDGenerator) scan(tx *gorm.DB, repo repository.ShipmentRepository) (string, error) {
	taken, err := repo.OrderIDs(tx)
	if err != nil {
		return "", err
	}
	used := make(map[string]struct{}, len(taken))
	for _, id := range taken {
		used[id] = struct{}{}
	}

	start := (g.counter.Add(1) + uint64(g.intn(model.OrderIDSpace))) % model.OrderIDSpace
	for i := uint64(0); i < model.OrderIDSpace; i++ {
		candidate := model.FormatOrderID(int((start + i) % model.OrderIDSpace))
		if _, ok := used[candidate]; !ok {
			return candidate, nil
		}
	}
	return "", ErrOrderIDSpaceExhausted
}
