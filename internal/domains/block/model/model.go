package model

import (
	"courtbook/internal/schedule"
	"courtbook/shared/model"
	"slices"
	"time"

	"github.com/lib/pq"
)

const (
	TableName  = "blocks"
	EntityName = "block"

	FieldID           = "id"
	FieldCourtNumbers = "court_numbers"
	FieldBlockDate    = "block_date"
	FieldStartHour    = "start_hour"
	FieldEndHour      = "end_hour"
	FieldReasonID     = "reason_id"
	FieldSubReason    = "sub_reason"
	FieldTemporary    = "temporary"
	FieldRemovedAt    = "removed_at"
	FieldRemovedBy    = "removed_by"
)

// Block restricts courts for [StartHour, EndHour) of BlockDate. A temporary block suspends
// the reservations it covers, any other block cancels them.
type Block struct {
	ID           string        `db:"id"`
	CourtNumbers pq.Int64Array `db:"court_numbers"`
	BlockDate    time.Time     `db:"block_date"`
	StartHour    int           `db:"start_hour"`
	EndHour      int           `db:"end_hour"`
	ReasonID     string        `db:"reason_id"`
	SubReason    *string       `db:"sub_reason"`
	Temporary    bool          `db:"temporary"`
	RemovedAt    *time.Time    `db:"removed_at"`
	RemovedBy    *string       `db:"removed_by"`
	model.Metadata
}

func (b Block) Courts() []int {
	courts := make([]int, len(b.CourtNumbers))
	for i, court := range b.CourtNumbers {
		courts[i] = int(court)
	}

	return courts
}

func (b Block) IsRemoved() bool {
	return b.RemovedAt != nil
}

// Covers reports whether slot lies inside the block's courts and hours.
func (b Block) Covers(slot schedule.Slot) bool {
	return slices.Contains(b.CourtNumbers, int64(slot.Court)) &&
		b.BlockDate.Year() == slot.Date.Year() &&
		b.BlockDate.Month() == slot.Date.Month() &&
		b.BlockDate.Day() == slot.Date.Day() &&
		slot.Hour >= b.StartHour &&
		slot.Hour < b.EndHour
}

func (b Block) SubReasonText() string {
	if b.SubReason == nil {
		return ""
	}

	return *b.SubReason
}
