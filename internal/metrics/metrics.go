package metrics

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	logins            metric.Int64Counter
	registrations     metric.Int64Counter
	studentsViewed    metric.Int64Counter
	studentsListViews metric.Int64Counter
	summaryViews      metric.Int64Counter
	paymentsInitiated metric.Int64Counter
	paymentsFailed    metric.Int64Counter
}

func New(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.logins, err = meter.Int64Counter(
		"lunchpay.auth.logins",
		metric.WithDescription("Total number of successful guardian logins"),
		metric.WithUnit("{login}"),
	)
	if err != nil {
		return nil, err
	}

	m.registrations, err = meter.Int64Counter(
		"lunchpay.auth.registrations",
		metric.WithDescription("Total number of guardian accounts registered"),
		metric.WithUnit("{account}"),
	)
	if err != nil {
		return nil, err
	}

	m.studentsViewed, err = meter.Int64Counter(
		"lunchpay.students.viewed",
		metric.WithDescription("Total number of single-student views"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.studentsListViews, err = meter.Int64Counter(
		"lunchpay.students.list_viewed",
		metric.WithDescription("Total number of times the student roster was viewed"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.summaryViews, err = meter.Int64Counter(
		"lunchpay.summary.viewed",
		metric.WithDescription("Total number of dashboard summary views"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.paymentsInitiated, err = meter.Int64Counter(
		"lunchpay.payments.initiated",
		metric.WithDescription("Total number of quick payments handed to the gateway"),
		metric.WithUnit("{payment}"),
	)
	if err != nil {
		return nil, err
	}

	m.paymentsFailed, err = meter.Int64Counter(
		"lunchpay.payments.failed",
		metric.WithDescription("Total number of quick payments that failed or timed out"),
		metric.WithUnit("{payment}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) RecordLogin(ctx context.Context) {
	if m != nil && m.logins != nil {
		m.logins.Add(ctx, 1)
	}
}

func (m *Metrics) RecordRegistration(ctx context.Context) {
	if m != nil && m.registrations != nil {
		m.registrations.Add(ctx, 1)
	}
}

func (m *Metrics) RecordStudentViewed(ctx context.Context) {
	if m != nil && m.studentsViewed != nil {
		m.studentsViewed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordStudentsListViewed(ctx context.Context) {
	if m != nil && m.studentsListViews != nil {
		m.studentsListViews.Add(ctx, 1)
	}
}

func (m *Metrics) RecordSummaryViewed(ctx context.Context) {
	if m != nil && m.summaryViews != nil {
		m.summaryViews.Add(ctx, 1)
	}
}

func (m *Metrics) RecordPaymentInitiated(ctx context.Context) {
	if m != nil && m.paymentsInitiated != nil {
		m.paymentsInitiated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordPaymentFailed(ctx context.Context) {
	if m != nil && m.paymentsFailed != nil {
		m.paymentsFailed.Add(ctx, 1)
	}
}

// NewMock creates a no-op Metrics instance for testing
// The returned Metrics will safely ignore all Record* calls
func NewMock() *Metrics {
	return &Metrics{}
}
