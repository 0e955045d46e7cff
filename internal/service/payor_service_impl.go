package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/fundalloc/internal/domain"
	"github.com/alexanderramin/fundalloc/internal/repository"
)

type payorService struct {
	repo     repository.PayorRepo
	observer UseCaseObserver
}

func NewPayorService(repo repository.PayorRepo, observers ...UseCaseObserver) PayorService {
	return &payorService{repo: repo, observer: useCaseObserverOrNoop(observers)}
}

func (s *payorService) Create(ctx context.Context, p *domain.Payor) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "create-payor",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"batch": p.Key().String()},
		})
	}()

	p.Fund = domain.RoundCents(p.Fund)
	if err := p.Validate(); err != nil {
		return err
	}
	return s.repo.Create(ctx, p)
}

func (s *payorService) Get(ctx context.Context, key domain.BatchKey) (*domain.Payor, error) {
	return s.repo.Get(ctx, key)
}

func (s *payorService) List(ctx context.Context, bid int64) ([]repository.PayorSummary, error) {
	return s.repo.ListSummaries(ctx, bid)
}

func (s *payorService) SetFund(ctx context.Context, key domain.BatchKey, raw string) (p *domain.Payor, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"batch": key.String()}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "set-fund",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	fund, err := domain.ParseAmount(raw)
	if err != nil {
		return nil, err
	}
	if fund.IsNegative() {
		return nil, fmt.Errorf("fund %s must not be negative", fund.StringFixed(domain.CentPlaces))
	}
	if err := s.repo.UpdateFund(ctx, key, fund); err != nil {
		return nil, err
	}
	fields["fund"] = fund.StringFixed(domain.CentPlaces)
	return s.repo.Get(ctx, key)
}
