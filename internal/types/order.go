package types

import "time"

type Status string

const (
	PendingStatus Status = "Pending"
	DoneStatus    Status = "Done"
)

func (s Status) Valid() bool {
	return s == PendingStatus || s == DoneStatus
}

type Order struct {
	ID        string    `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"time"`
	Name      string    `db:"name" json:"name"`
	Room      string    `db:"room" json:"room"`
	Text      string    `db:"order_text" json:"order"`
	Status    Status    `db:"status" json:"status"`
}

// NewOrder is what a submitter provides; the store fills in the rest.
type NewOrder struct {
	Name string
	Room string
	Text string
}

type User struct {
	Name     string `db:"name" json:"name"`
	Job      string `db:"job" json:"job"`
	Gender   string `db:"gender" json:"gender"`
	JoinDate string `db:"join_date" json:"join_date"`
}

const JoinDateLayout = "2006-01-02"
