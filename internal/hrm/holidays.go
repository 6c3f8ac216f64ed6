package hrm

import (
	"context"
	"errors"
	"strings"

	"github.com/hrmslite/hrms/internal/apperr"
	"github.com/hrmslite/hrms/internal/envelope"
)

type HolidayService struct {
	store HolidayStore
}

func NewHolidayService(store HolidayStore) *HolidayService {
	return &HolidayService{store: store}
}

// List filters by year (matching rows without a year too) and date range.
func (s *HolidayService) List(ctx context.Context, f HolidayFilter, page envelope.Page) ([]Holiday, int, error) {
	if err := checkRange(f.From, f.To); err != nil {
		return nil, 0, err
	}
	return s.store.ListHolidays(ctx, f, page)
}

func (s *HolidayService) Get(ctx context.Context, id int64) (Holiday, error) {
	h, err := s.store.GetHoliday(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return Holiday{}, apperr.NotFound("Holiday not found", "holiday_id")
	}
	return h, err
}

// Create derives year from date when it is omitted.
func (s *HolidayService) Create(ctx context.Context, in HolidayInput) (Holiday, error) {
	h := Holiday{
		Name:        strings.TrimSpace(in.Name),
		Date:        in.Date,
		Year:        in.Year,
		Description: in.Description,
	}
	if h.Name == "" {
		return Holiday{}, apperr.FieldInvalid("name", "must not be empty")
	}
	if h.Year == nil {
		y := h.Date.Year()
		h.Year = &y
	}
	return s.store.CreateHoliday(ctx, h)
}

func (s *HolidayService) Update(ctx context.Context, id int64, upd HolidayUpdate) (Holiday, error) {
	h, err := s.Get(ctx, id)
	if err != nil {
		return Holiday{}, err
	}
	if upd.Name.Present {
		name := strings.TrimSpace(upd.Name.Value)
		if upd.Name.Null || name == "" {
			return Holiday{}, apperr.FieldInvalid("name", "must not be empty")
		}
		h.Name = name
	}
	if upd.Date.Present {
		if upd.Date.Null {
			return Holiday{}, apperr.FieldInvalid("date", "must not be null")
		}
		h.Date = upd.Date.Value
	}
	upd.Year.Apply(&h.Year)
	upd.Description.Apply(&h.Description)
	return s.store.UpdateHoliday(ctx, h)
}

func (s *HolidayService) Delete(ctx context.Context, id int64) error {
	err := s.store.DeleteHoliday(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.NotFound("Holiday not found", "holiday_id")
	}
	return err
}
