package deadline_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/citops/promisetrack/pkg/domain/types"
	"github.com/citops/promisetrack/pkg/service/deadline"
)

func TestFromText(t *testing.T) {
	today := time.Date(2025, 9, 15, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		text string
		want string
	}{
		{
			name: "explicit date",
			text: "Работы будут выполнены до 30.09.2025г.",
			want: "30.09.25",
		},
		{
			name: "relative weeks",
			text: "По практике, данный процесс занимает в течение 2 недель",
			want: "29.09.25",
		},
		{
			name: "relative days",
			text: "Устраним в течении 10 дней",
			want: "25.09.25",
		},
		{
			name: "business days approximated to two weeks",
			text: "Ответ будет дан в течение 10 рабочих дней",
			want: "29.09.25",
		},
		{
			name: "end of month",
			text: "Работы завершим до конца месяца",
			want: "30.09.25",
		},
		{
			name: "end of year",
			text: "Ремонт запланирован до конца года",
			want: "31.12.25",
		},
		{
			name: "quarter with year",
			text: "Выполнение запланировано на 4 квартал 2025",
			want: "31.12.25",
		},
		{
			name: "quarter without year uses current year",
			text: "Включено в план работ на 4 квартал",
			want: "31.12.25",
		},
		{
			name: "month name with year",
			text: "Работы будут выполнены в октябре 2025",
			want: "31.10.25",
		},
		{
			name: "month name resolves to last day",
			text: "Планируется в сентябре 2025",
			want: "30.09.25",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := deadline.FromText(tc.text, today)
			gt.Value(t, d.Kind()).Equal(types.DeadlineDate)
			gt.Value(t, d.Encode()).Equal(tc.want)
		})
	}
}

func TestFromTextNoDeadline(t *testing.T) {
	today := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)

	for _, text := range []string{
		"Обратитесь в управляющую компанию",
		"Необходимо решение общего собрания",
		"Проверка выполнена",
		"",
	} {
		d := deadline.FromText(text, today)
		gt.Value(t, d.Kind()).Equal(types.DeadlineNotSet)
	}
}

func TestFromTextTooFar(t *testing.T) {
	today := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)

	// A bare year resolves to December 31 of that year, which is beyond
	// the one-year horizon here.
	d := deadline.FromText("Замена окна запланирована на 2026 год", today)
	gt.Value(t, d.Kind()).Equal(types.DeadlineTooFar)

	d = deadline.FromText("Работы будут выполнены до 01.10.2027г.", today)
	gt.Value(t, d.Kind()).Equal(types.DeadlineTooFar)
}

func TestFromTextHorizonBoundary(t *testing.T) {
	today := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	// 365 days out is acceptable, 366 is not
	d := deadline.FromText("до 01.01.2026", today)
	gt.Value(t, d.Kind()).Equal(types.DeadlineDate)
	gt.Value(t, d.Encode()).Equal("01.01.26")

	d = deadline.FromText("до 02.01.2026", today)
	gt.Value(t, d.Kind()).Equal(types.DeadlineTooFar)
}

func TestFromTextRejectsImpossibleDate(t *testing.T) {
	today := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)

	d := deadline.FromText("до 31.02.2025", today)
	gt.Value(t, d.Kind()).Equal(types.DeadlineNotSet)
}
