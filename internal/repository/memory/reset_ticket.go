package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studybuddy/studybuddy-server/internal/model"
)

var _ model.ResetTicketStore = (*ResetTicketRepository)(nil)

// ResetTicketRepository keeps reset tickets in process memory. Expired
// tickets are treated as absent and dropped lazily.
type ResetTicketRepository struct {
	mu      sync.Mutex
	tickets map[uuid.UUID]model.ResetTicket
	now     func() time.Time
}

func NewResetTicketRepository() *ResetTicketRepository {
	return &ResetTicketRepository{
		tickets: make(map[uuid.UUID]model.ResetTicket),
		now:     time.Now,
	}
}

func (r *ResetTicketRepository) Create(ctx context.Context, ticket model.ResetTicket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweep()
	r.tickets[ticket.ID] = ticket
	return nil
}

func (r *ResetTicketRepository) GetByID(ctx context.Context, id uuid.UUID) (model.ResetTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return model.ResetTicket{}, model.ErrTicketNotFound
	}
	if ticket.Expired(r.now()) {
		delete(r.tickets, id)
		return model.ResetTicket{}, model.ErrTicketNotFound
	}
	return ticket, nil
}

func (r *ResetTicketRepository) Update(ctx context.Context, ticket model.ResetTicket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.tickets[ticket.ID]
	if !ok || current.Expired(r.now()) {
		delete(r.tickets, ticket.ID)
		return model.ErrTicketNotFound
	}
	r.tickets[ticket.ID] = ticket
	return nil
}

func (r *ResetTicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tickets, id)
	return nil
}

func (r *ResetTicketRepository) sweep() {
	now := r.now()
	for id, t := range r.tickets {
		if t.Expired(now) {
			delete(r.tickets, id)
		}
	}
}
