package board

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wellywell/orderboard/internal/classify"
	"github.com/wellywell/orderboard/internal/types"
)

func order(id string, status types.Status, text string) types.Order {
	return types.Order{ID: id, Name: "Sara", Room: "Reception", Text: text, Status: status}
}

func TestBuild(t *testing.T) {

	testCases := []struct {
		name            string
		orders          []types.Order
		limit           int
		expectedPending []string
		expectedHistory []string
	}{
		{name: "empty", orders: nil, limit: 10, expectedPending: []string{}, expectedHistory: []string{}},
		{
			name: "pending most recent first",
			orders: []types.Order{
				order("1", types.PendingStatus, "tea"),
				order("2", types.DoneStatus, "tea"),
				order("3", types.PendingStatus, "tea"),
			},
			limit:           10,
			expectedPending: []string{"3", "1"},
			expectedHistory: []string{"2"},
		},
		{
			name: "only done",
			orders: []types.Order{
				order("1", types.DoneStatus, "tea"),
				order("2", types.DoneStatus, "tea"),
			},
			limit:           10,
			expectedPending: []string{},
			expectedHistory: []string{"2", "1"},
		},
		{
			name: "history limit",
			orders: []types.Order{
				order("1", types.DoneStatus, "tea"),
				order("2", types.DoneStatus, "tea"),
				order("3", types.DoneStatus, "tea"),
			},
			limit:           2,
			expectedPending: []string{},
			expectedHistory: []string{"3", "2"},
		},
		{
			name:            "zero history",
			orders:          []types.Order{order("1", types.DoneStatus, "tea")},
			limit:           0,
			expectedPending: []string{},
			expectedHistory: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := Build(tc.orders, tc.limit)

			pending := []string{}
			for _, c := range b.Pending {
				assert.Equal(t, types.PendingStatus, c.Status)
				pending = append(pending, c.ID)
			}
			history := []string{}
			for _, o := range b.History {
				assert.Equal(t, types.DoneStatus, o.Status)
				history = append(history, o.ID)
			}
			assert.Equal(t, tc.expectedPending, pending)
			assert.Equal(t, tc.expectedHistory, history)
		})
	}
}

func TestBuildClassifiesPending(t *testing.T) {
	b := Build([]types.Order{order("1", types.PendingStatus, "قهوة لاتيه")}, DefaultHistoryLimit)

	assert.Len(t, b.Pending, 1)
	assert.Equal(t, classify.Coffee, b.Pending[0].Category)
}

func TestBuildLastTenHistory(t *testing.T) {
	var orders []types.Order
	for i := 0; i < 15; i++ {
		orders = append(orders, order(fmt.Sprint(i), types.DoneStatus, "water"))
	}
	b := Build(orders, DefaultHistoryLimit)

	assert.Len(t, b.History, 10)
	assert.Equal(t, "14", b.History[0].ID)
	assert.Equal(t, "5", b.History[9].ID)
}
