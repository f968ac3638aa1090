package reports

import "context"

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) PeriodSummary(ctx context.Context, periodID string) (PeriodSummary, error) {
	return s.Store.PeriodSummary(ctx, periodID)
}

func (s *Service) RegisterRows(ctx context.Context, periodID string) ([]RegisterRow, error) {
	return s.Store.RegisterRows(ctx, periodID)
}
