// Package board turns the stored orders into what the order board shows.
package board

import (
	"github.com/wellywell/orderboard/internal/classify"
	"github.com/wellywell/orderboard/internal/types"
)

const DefaultHistoryLimit = 10

type Card struct {
	types.Order
	Category classify.Category `json:"category"`
}

type Board struct {
	Pending []Card        `json:"pending"`
	History []types.Order `json:"history"`
}

// Build expects orders in insertion order. Pending cards come out
// most-recent-first, history holds the last historyLimit done orders,
// also most-recent-first.
func Build(orders []types.Order, historyLimit int) Board {
	b := Board{
		Pending: []Card{},
		History: []types.Order{},
	}

	for i := len(orders) - 1; i >= 0; i-- {
		o := orders[i]
		switch o.Status {
		case types.PendingStatus:
			b.Pending = append(b.Pending, Card{Order: o, Category: classify.Classify(o.Text)})
		case types.DoneStatus:
			if len(b.History) < historyLimit {
				b.History = append(b.History, o)
			}
		}
	}
	return b
}
