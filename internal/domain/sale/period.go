package sale

import (
	"strings"
	"time"

	apperrors "github.com/xiebiao/tienda/pkg/errors"
)

const (
	monthLayout = "2006-01"
	dayLayout   = "2006-01-02"
)

// Period 统计区间(UTC半开区间 [Start, End))
type Period struct {
	Start time.Time
	End   time.Time
	Label string // 原始输入,如2024-03或2024-03-15
}

// Contains 判断时间点是否落在区间内
func (p Period) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(p.Start) && t.Before(p.End)
}

// ParseMonth 解析月份(YYYY-MM)
func ParseMonth(token string) (Period, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Period{}, ErrMonthRequired
	}
	start, err := time.ParseInLocation(monthLayout, token, time.UTC)
	if err != nil {
		return Period{}, ErrInvalidMonth.WithCause(err)
	}
	return Period{Start: start, End: start.AddDate(0, 1, 0), Label: token}, nil
}

// ParseDay 解析日期(YYYY-MM-DD)
func ParseDay(token string) (Period, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Period{}, ErrDayRequired
	}
	start, err := time.ParseInLocation(dayLayout, token, time.UTC)
	if err != nil {
		return Period{}, ErrInvalidDay.WithCause(err)
	}
	return Period{Start: start, End: start.AddDate(0, 0, 1), Label: token}, nil
}

// 统计区间错误
var (
	ErrMonthRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "Mes no proporcionado")
	ErrDayRequired   = apperrors.New(apperrors.ErrCodeInvalidParams, "Día no proporcionado")
	ErrInvalidMonth  = apperrors.New(apperrors.ErrCodeInvalidParams, "Formato de mes inválido, use AAAA-MM")
	ErrInvalidDay    = apperrors.New(apperrors.ErrCodeInvalidParams, "Formato de día inválido, use AAAA-MM-DD")
)
