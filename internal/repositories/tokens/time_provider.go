package tokens

import "time"

//go:generate mockgen -destination=mocks/mock_time_provider.go -package=mocks -source=time_provider.go

type TimeProvider interface {
	Now() time.Time
}

type RealTimeProvider struct{}

func (r *RealTimeProvider) Now() time.Time {
	return time.Now()
}
