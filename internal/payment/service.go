package payment

import (
	"context"
	"log"
)

// EventPublisher emits payment lifecycle events. Implementations must be
// safe for concurrent use; a nil publisher disables event emission.
type EventPublisher interface {
	PaymentCreated(ctx context.Context, p Response) error
	PaymentUpdated(ctx context.Context, p Response) error
	PaymentDeleted(ctx context.Context, id int64) error
}

// Service orchestrates validation, rounding, and persistence. It never
// caches records; every read crosses the repository.
type Service struct {
	repo   Repository
	pub    EventPublisher
	logger *log.Logger
}

func NewService(repo Repository, pub EventPublisher, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{repo: repo, pub: pub, logger: logger}
}

// Create validates the input, rounds the total to two decimals, and
// persists. Nothing is written when validation fails.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Response, error) {
	p := New(in)
	if err := ValidateNew(p); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, Round2(p.Total), p.RecordType, p.Status)
	if err != nil {
		return nil, err
	}

	resp := created.Response()
	s.publish("payment created", func() error {
		return s.pub.PaymentCreated(ctx, resp)
	})
	return &resp, nil
}

// CreateBatch creates each payment sequentially. A failing item is logged
// and skipped; the batch never fails as a whole, and the result holds the
// successful projections in input order.
func (s *Service) CreateBatch(ctx context.Context, inputs []CreateInput) []Response {
	results := make([]Response, 0, len(inputs))
	for i, in := range inputs {
		resp, err := s.Create(ctx, in)
		if err != nil {
			s.logger.Printf("batch create: item %d skipped: %v", i, err)
			continue
		}
		results = append(results, *resp)
	}
	return results
}

// Get returns the projection for id, or (nil, nil) when absent.
func (s *Service) Get(ctx context.Context, id int64) (*Response, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	resp := p.Response()
	return &resp, nil
}

// List returns all projections, newest first.
func (s *Service) List(ctx context.Context) ([]Response, error) {
	payments, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]Response, 0, len(payments))
	for _, p := range payments {
		results = append(results, p.Response())
	}
	return results, nil
}

// Update validates only the fields present, rounds the total when set, and
// delegates. Returns (nil, nil) when the id does not exist.
func (s *Service) Update(ctx context.Context, id int64, fields UpdateFields) (*Response, error) {
	if err := ValidateUpdate(fields); err != nil {
		return nil, err
	}
	if fields.Total != nil {
		rounded := Round2(*fields.Total)
		fields.Total = &rounded
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil || updated == nil {
		return nil, err
	}

	resp := updated.Response()
	if !fields.Empty() {
		s.publish("payment updated", func() error {
			return s.pub.PaymentUpdated(ctx, resp)
		})
	}
	return &resp, nil
}

// Delete removes the payment and reports whether a row was removed.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil || !deleted {
		return false, err
	}
	s.publish("payment deleted", func() error {
		return s.pub.PaymentDeleted(ctx, id)
	})
	return true, nil
}

// publish runs fn when a publisher is configured. The write has already
// committed, so publish failures are logged and swallowed.
func (s *Service) publish(what string, fn func() error) {
	if s.pub == nil {
		return
	}
	if err := fn(); err != nil {
		s.logger.Printf("publish %s event: %v", what, err)
	}
}
