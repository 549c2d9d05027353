package handlers

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	logger "github.com/sirupsen/logrus"
	"github.com/wellywell/orderboard/internal/board"
	"github.com/wellywell/orderboard/internal/metrics"
	"github.com/wellywell/orderboard/internal/types"
)

type Storage interface {
	AddOrder(ctx context.Context, o types.NewOrder) (*types.Order, error)
	ListOrders(ctx context.Context) ([]types.Order, error)
	MarkDone(ctx context.Context, id string) (*types.Order, error)
	UpsertUser(ctx context.Context, u types.User) (*types.User, error)
}

type Animations interface {
	Lookup(ctx context.Context, name string) ([]byte, bool)
}

type Options struct {
	Rooms           []string
	RefreshInterval time.Duration
	HistoryLimit    int
}

type HandlerSet struct {
	secret               []byte
	cookieExpiresSeconds int
	storage              Storage
	animations           Animations
	options              Options
	pages                *template.Template
}

const maxBodyBytes = 16 << 10

var (
	ErrCouldNotParseBody = errors.New("could not parse body")
	ErrBodyTooLarge      = errors.New("body too large")
)

//go:embed templates/*.html
var templates embed.FS

func NewHandlerSet(secret []byte, cookieExpiresSecs int, storage Storage, animations Animations, opts Options) *HandlerSet {
	return &HandlerSet{
		secret:               secret,
		cookieExpiresSeconds: cookieExpiresSecs,
		storage:              storage,
		animations:           animations,
		options:              opts,
		pages:                template.Must(template.ParseFS(templates, "templates/*.html")),
	}
}

// loadBoard reads the store for display. With degrade set, any read
// failure is logged and turned into an empty board plus a warning, so the
// page keeps rendering.
func (h *HandlerSet) loadBoard(ctx context.Context, degrade bool) (board.Board, bool, error) {
	orders, err := h.storage.ListOrders(ctx)
	if err != nil {
		metrics.StorageErrorsTotal.WithLabelValues("list").Inc()
		var corrupt *types.CorruptFileError
		if errors.As(err, &corrupt) {
			logger.Errorf("Order table is corrupt, showing empty board: %s", err)
		} else {
			logger.Errorf("Could not read orders: %s", err)
		}
		if !degrade {
			return board.Board{}, false, err
		}
		return board.Build(nil, h.options.HistoryLimit), true, nil
	}
	b := board.Build(orders, h.options.HistoryLimit)
	metrics.PendingOrders.Set(float64(len(b.Pending)))
	return b, false, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	response, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Could not serialize result",
			http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(response)
	if err != nil {
		logger.Error(err)
	}
}
