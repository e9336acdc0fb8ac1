package characters

import "time"

//go:generate mockgen -destination=mocks/mock_time_provider.go -package=mocks github.com/wyrmforge/charbuild/internal/repositories/characters TimeProvider

type TimeProvider interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}
