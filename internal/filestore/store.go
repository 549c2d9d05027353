// Package filestore keeps orders and users in flat CSV tables.
package filestore

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
	"github.com/wellywell/orderboard/internal/types"
)

const legacyTimeLayout = "03:04 PM"

var (
	OrderColumns       = []string{"ID", "Time", "Name", "Room", "Order", "Status"}
	UserColumns        = []string{"Name", "Job", "Gender", "JoinDate"}
	legacyOrderColumns = []string{"Time", "Name", "Room", "Order", "Status"}

	bom = []byte("\ufeff")
)

// Store serializes every read-modify-write behind one mutex and replaces
// files by rename, so a reader never sees a half-written table.
type Store struct {
	ordersPath string
	usersPath  string

	mu sync.Mutex

	timeNow func() time.Time
	newID   func() string
}

func NewStore(ordersPath, usersPath string) *Store {
	return &Store{
		ordersPath: ordersPath,
		usersPath:  usersPath,
		timeNow:    time.Now,
		newID:      uuid.NewString,
	}
}

func (s *Store) AddOrder(ctx context.Context, o types.NewOrder) (*types.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.readOrders()
	if err != nil {
		return nil, err
	}

	order := types.Order{
		ID:        s.newID(),
		CreatedAt: s.timeNow(),
		Name:      o.Name,
		Room:      o.Room,
		Text:      o.Text,
		Status:    types.PendingStatus,
	}
	orders = append(orders, order)

	if err := s.writeOrders(orders); err != nil {
		return nil, fmt.Errorf("failed to add order: %w", err)
	}
	return &order, nil
}

// ListOrders returns orders in insertion order. A missing file yields no
// orders and no error; a corrupt one yields no orders and a
// *types.CorruptFileError.
func (s *Store) ListOrders(ctx context.Context) ([]types.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.readOrders()
	if err != nil {
		return []types.Order{}, err
	}
	return orders, nil
}

func (s *Store) MarkDone(ctx context.Context, id string) (*types.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.readOrders()
	if err != nil {
		return nil, err
	}

	i := slices.IndexFunc(orders, func(o types.Order) bool { return o.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", types.ErrOrderNotFound, id)
	}
	if orders[i].Status == types.DoneStatus {
		return nil, fmt.Errorf("%w: %s", types.ErrOrderAlreadyDone, id)
	}
	orders[i].Status = types.DoneStatus

	if err := s.writeOrders(orders); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	order := orders[i]
	return &order, nil
}

func (s *Store) UpsertUser(ctx context.Context, u types.User) (*types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readUsers()
	if err != nil {
		return nil, err
	}

	i := slices.IndexFunc(users, func(existing types.User) bool { return existing.Name == u.Name })
	if i >= 0 {
		users[i].Job = u.Job
		users[i].Gender = u.Gender
	} else {
		u.JoinDate = s.timeNow().Format(types.JoinDateLayout)
		users = append(users, u)
		i = len(users) - 1
	}

	if err := s.writeUsers(users); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	user := users[i]
	return &user, nil
}

func (s *Store) readOrders() ([]types.Order, error) {
	records, err := readTable(s.ordersPath)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []types.Order{}, nil
	}

	header, rows := records[0], records[1:]
	if slices.Equal(header, legacyOrderColumns) {
		return s.upgradeLegacyOrders(rows)
	}
	if !slices.Equal(header, OrderColumns) {
		return nil, s.corrupt(s.ordersPath, fmt.Errorf("unexpected header %v", header))
	}

	orders := make([]types.Order, 0, len(rows))
	for n, row := range rows {
		createdAt, err := time.Parse(time.RFC3339, row[1])
		if err != nil {
			return nil, s.corrupt(s.ordersPath, fmt.Errorf("row %d: %w", n+1, err))
		}
		status := types.Status(row[5])
		if !status.Valid() {
			return nil, s.corrupt(s.ordersPath, fmt.Errorf("row %d: unknown status %q", n+1, row[5]))
		}
		orders = append(orders, types.Order{
			ID:        row[0],
			CreatedAt: createdAt,
			Name:      row[2],
			Room:      row[3],
			Text:      row[4],
			Status:    status,
		})
	}
	return orders, nil
}

// upgradeLegacyOrders converts a table written without an ID column and
// rewrites it, so the generated IDs stay stable across reads.
func (s *Store) upgradeLegacyOrders(rows [][]string) ([]types.Order, error) {
	orders := make([]types.Order, 0, len(rows))
	for n, row := range rows {
		createdAt, err := time.Parse(time.RFC3339, row[0])
		if err != nil {
			createdAt, err = s.parseLegacyTime(row[0])
		}
		if err != nil {
			return nil, s.corrupt(s.ordersPath, fmt.Errorf("row %d: %w", n+1, err))
		}
		status := types.Status(row[4])
		if !status.Valid() {
			return nil, s.corrupt(s.ordersPath, fmt.Errorf("row %d: unknown status %q", n+1, row[4]))
		}
		orders = append(orders, types.Order{
			ID:        s.newID(),
			CreatedAt: createdAt,
			Name:      row[1],
			Room:      row[2],
			Text:      row[3],
			Status:    status,
		})
	}
	if err := s.writeOrders(orders); err != nil {
		return nil, fmt.Errorf("failed to upgrade %s: %w", s.ordersPath, err)
	}
	logger.Infof("Upgraded %d orders in %s to the current format", len(orders), s.ordersPath)
	return orders, nil
}

// parseLegacyTime reads a bare local wall-clock time and dates it today,
// since legacy rows never carried a date.
func (s *Store) parseLegacyTime(value string) (time.Time, error) {
	clock, err := time.ParseInLocation(legacyTimeLayout, value, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	today := s.timeNow().In(time.Local)
	return time.Date(today.Year(), today.Month(), today.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local), nil
}

func (s *Store) writeOrders(orders []types.Order) error {
	records := make([][]string, 0, len(orders)+1)
	records = append(records, OrderColumns)
	for _, o := range orders {
		records = append(records, []string{
			o.ID,
			o.CreatedAt.Format(time.RFC3339),
			o.Name,
			o.Room,
			o.Text,
			string(o.Status),
		})
	}
	return writeTable(s.ordersPath, records)
}

func (s *Store) readUsers() ([]types.User, error) {
	records, err := readTable(s.usersPath)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []types.User{}, nil
	}
	if !slices.Equal(records[0], UserColumns) {
		return nil, s.corrupt(s.usersPath, fmt.Errorf("unexpected header %v", records[0]))
	}

	users := make([]types.User, 0, len(records)-1)
	for _, row := range records[1:] {
		users = append(users, types.User{Name: row[0], Job: row[1], Gender: row[2], JoinDate: row[3]})
	}
	return users, nil
}

func (s *Store) writeUsers(users []types.User) error {
	records := make([][]string, 0, len(users)+1)
	records = append(records, UserColumns)
	for _, u := range users {
		records = append(records, []string{u.Name, u.Job, u.Gender, u.JoinDate})
	}
	return writeTable(s.usersPath, records)
}

func (s *Store) corrupt(path string, err error) error {
	return fmt.Errorf("%w", &types.CorruptFileError{Path: path, Err: err})
}

// readTable returns nil records, not an error, when the file does not exist.
func readTable(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	data = bytes.TrimPrefix(data, bom)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w", &types.CorruptFileError{Path: path, Err: err})
	}
	return records, nil
}

func writeTable(path string, records [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := encodeTable(tmp, records); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func encodeTable(w io.Writer, records [][]string) error {
	if _, err := w.Write(bom); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return cw.Error()
}
