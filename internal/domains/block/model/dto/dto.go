package dto

import (
	"courtbook/internal/domains/block/model"
	"courtbook/internal/schedule"
	"courtbook/shared"
	"courtbook/shared/constant"
	gDto "courtbook/shared/dto"
	"courtbook/shared/failure"
	gModel "courtbook/shared/model"
	"courtbook/shared/timezone"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateBlockRequest struct {
	Courts    []int  `json:"courts"     validate:"required,min=1,dive,min=1"`
	Date      string `json:"date"       validate:"required,date"`
	StartTime string `json:"start_time" validate:"required,hourly"`
	EndTime   string `json:"end_time"   validate:"required,hourly"`
	ReasonID  string `json:"reason_id"  validate:"required,uuid"`
	SubReason string `json:"sub_reason" validate:"omitempty,max=255"`
	Temporary bool   `json:"temporary"`
}

// Range is the parsed, validated extent of a block.
type Range struct {
	Courts    []int
	Date      time.Time
	StartHour int
	EndHour   int
}

// ParseRange validates courts and hours against the club's policy. The end time is
// exclusive and may be the close of the last slot.
func ParseRange(courts []int, date, startTime, endTime string, policy schedule.Policy) (Range, error) {
	day, err := timezone.ParseDate(date)
	if err != nil {
		return Range{}, failure.BadRequest(err) //nolint:wrapcheck
	}

	startHour, err := timezone.ParseHour(startTime)
	if err != nil {
		return Range{}, failure.BadRequest(err) //nolint:wrapcheck
	}

	endHour, err := timezone.ParseHour(endTime)
	if err != nil {
		return Range{}, failure.BadRequest(err) //nolint:wrapcheck
	}

	if endHour <= startHour {
		return Range{}, failure.BadRequestFromString("end_time must be after start_time") //nolint:wrapcheck
	}

	if startHour < policy.FirstSlotHour || endHour > policy.LastSlotHour+1 {
		return Range{}, failure.BadRequestFromString(fmt.Sprintf( //nolint:wrapcheck
			"block must lie between %02d:00 and %02d:00", policy.FirstSlotHour, policy.LastSlotHour+1))
	}

	sorted := slices.Clone(courts)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	for _, court := range sorted {
		if err := schedule.NewSlot(court, day, startHour).Validate(policy); err != nil {
			return Range{}, err
		}
	}

	return Range{Courts: sorted, Date: day, StartHour: startHour, EndHour: endHour}, nil
}

func (c *CreateBlockRequest) Range(policy schedule.Policy) (Range, error) {
	return ParseRange(c.Courts, c.Date, c.StartTime, c.EndTime, policy)
}

func (c *CreateBlockRequest) ToModel(blockRange Range, user string) model.Block {
	var subReason *string
	if c.SubReason != "" {
		subReason = &c.SubReason
	}

	return model.Block{
		ID:           uuid.NewString(),
		CourtNumbers: toInt64Array(blockRange.Courts),
		BlockDate:    blockRange.Date,
		StartHour:    blockRange.StartHour,
		EndHour:      blockRange.EndHour,
		ReasonID:     c.ReasonID,
		SubReason:    subReason,
		Temporary:    c.Temporary,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdateBlockRequest edits an active block. Omitted fields keep their current value; the
// temporary flag cannot change once reservations have been handled under it.
type UpdateBlockRequest struct {
	Courts    []int   `json:"courts"     validate:"omitempty,min=1,dive,min=1"`
	Date      string  `json:"date"       validate:"omitempty,date"`
	StartTime string  `json:"start_time" validate:"omitempty,hourly"`
	EndTime   string  `json:"end_time"   validate:"omitempty,hourly"`
	ReasonID  string  `json:"reason_id"  validate:"omitempty,uuid"`
	SubReason *string `json:"sub_reason" validate:"omitempty,max=255"`
}

// Range merges the request over the current block and validates the result.
func (u *UpdateBlockRequest) Range(current model.Block, policy schedule.Policy) (Range, error) {
	courts := current.Courts()
	if len(u.Courts) > 0 {
		courts = u.Courts
	}

	date := current.BlockDate.Format(timezone.DateLayout)
	if u.Date != "" {
		date = u.Date
	}

	startTime := fmt.Sprintf("%02d:00", current.StartHour)
	if u.StartTime != "" {
		startTime = u.StartTime
	}

	endTime := fmt.Sprintf("%02d:00", current.EndHour)
	if u.EndTime != "" {
		endTime = u.EndTime
	}

	return ParseRange(courts, date, startTime, endTime, policy)
}

func (u *UpdateBlockRequest) ToFields(blockRange Range, user string) map[string]any {
	fields := map[string]any{
		model.FieldCourtNumbers:  toInt64Array(blockRange.Courts),
		model.FieldBlockDate:     blockRange.Date.Format(timezone.DateLayout),
		model.FieldStartHour:     blockRange.StartHour,
		model.FieldEndHour:       blockRange.EndHour,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if u.ReasonID != "" {
		fields[model.FieldReasonID] = u.ReasonID
	}

	if u.SubReason != nil {
		fields[model.FieldSubReason] = *u.SubReason
	}

	return fields
}

func toInt64Array(courts []int) pq.Int64Array {
	array := make(pq.Int64Array, len(courts))
	for i, court := range courts {
		array[i] = int64(court)
	}

	return array
}

type BlockResponse struct {
	ID        string  `json:"id"`
	Courts    []int   `json:"courts"`
	Date      string  `json:"date"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	ReasonID  string  `json:"reason_id"`
	SubReason *string `json:"sub_reason,omitempty"`
	Temporary bool    `json:"temporary"`
	Removed   bool    `json:"removed"`
	RemovedBy *string `json:"removed_by,omitempty"`
	gDto.Metadata
}

func (b *BlockResponse) FromModel(model model.Block) {
	b.ID = model.ID
	b.Courts = model.Courts()
	b.Date = model.BlockDate.Format(timezone.DateLayout)
	b.StartTime = fmt.Sprintf("%02d:00", model.StartHour)
	b.EndTime = fmt.Sprintf("%02d:00", model.EndHour)
	b.ReasonID = model.ReasonID
	b.SubReason = model.SubReason
	b.Temporary = model.Temporary
	b.Removed = model.IsRemoved()
	b.RemovedBy = model.RemovedBy
	b.Metadata.FromModel(model.Metadata)
}

type GetBlocksResponse struct {
	Blocks    []BlockResponse `json:"blocks"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (b *GetBlocksResponse) FromModels(models []model.Block, totalData, limit int) {
	b.TotalData = totalData
	b.TotalPage = shared.CalculateTotalPage(totalData, limit)

	b.Blocks = make([]BlockResponse, len(models))
	for i, mod := range models {
		b.Blocks[i].FromModel(mod)
	}
}

// BlockReport lists the reservations an operation on a block touched, by outcome.
// Elapsed holds suspended reservations whose slot ended before the block was lifted;
// they keep their suspension and nobody is notified.
type BlockReport struct {
	Block          BlockResponse `json:"block"`
	Suspended      []string      `json:"suspended"`
	Cancelled      []string      `json:"cancelled"`
	Restored       []string      `json:"restored"`
	StillSuspended []string      `json:"still_suspended"`
	Elapsed        []string      `json:"elapsed"`
}

func NewBlockReport(block model.Block) BlockReport {
	report := BlockReport{
		Suspended:      []string{},
		Cancelled:      []string{},
		Restored:       []string{},
		StillSuspended: []string{},
		Elapsed:        []string{},
	}
	report.Block.FromModel(block)

	return report
}
