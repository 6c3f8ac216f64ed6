package pg

import (
	"context"

	"github.com/hrmslite/hrms/internal/envelope"
	"github.com/hrmslite/hrms/internal/hrm"
)

const holidayColumns = `id, name, date, year, description`

func (s *Store) ListHolidays(ctx context.Context, f hrm.HolidayFilter, page envelope.Page) ([]hrm.Holiday, int, error) {
	var where filter
	if f.Year != nil {
		where.add("(year = ? or year is null)", *f.Year)
	}
	if f.From != nil {
		where.add("date >= ?", *f.From)
	}
	if f.To != nil {
		where.add("date <= ?", *f.To)
	}
	rows := []hrm.Holiday{}
	total, err := s.selectPage(ctx, &rows,
		`select `+holidayColumns+` from holidays`,
		`select count(*) from holidays`,
		"date, id", where, page)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *Store) RangeHolidays(ctx context.Context, from, to hrm.Date) ([]hrm.Holiday, error) {
	rows := []hrm.Holiday{}
	query := `select ` + holidayColumns + ` from holidays where date >= $1 and date <= $2 order by date, id`
	if err := s.db.SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) GetHoliday(ctx context.Context, id int64) (hrm.Holiday, error) {
	var h hrm.Holiday
	if err := s.db.GetContext(ctx, &h, `select `+holidayColumns+` from holidays where id = $1`, id); err != nil {
		return hrm.Holiday{}, mapReadError(err)
	}
	return h, nil
}

func (s *Store) CreateHoliday(ctx context.Context, h hrm.Holiday) (hrm.Holiday, error) {
	var out hrm.Holiday
	err := s.db.GetContext(ctx, &out, `
		insert into holidays (name, date, year, description)
		values ($1, $2, $3, $4)
		returning `+holidayColumns,
		h.Name, h.Date, h.Year, h.Description)
	if err != nil {
		return hrm.Holiday{}, mapWriteError(err)
	}
	return out, nil
}

func (s *Store) UpdateHoliday(ctx context.Context, h hrm.Holiday) (hrm.Holiday, error) {
	var out hrm.Holiday
	err := s.db.GetContext(ctx, &out, `
		update holidays set name = $1, date = $2, year = $3, description = $4
		where id = $5
		returning `+holidayColumns,
		h.Name, h.Date, h.Year, h.Description, h.ID)
	if err != nil {
		return hrm.Holiday{}, mapWriteError(err)
	}
	return out, nil
}

func (s *Store) DeleteHoliday(ctx context.Context, id int64) error {
	return s.execAffected(ctx, `delete from holidays where id = ?`, id)
}
