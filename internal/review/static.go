package review

import (
	"context"
	"sync"
	"time"

	"github.com/MikeMC777/stylehub-storefront/internal/mockdata"
)

// StaticRepo keeps reviews in memory, seeded from the embedded dataset.
type StaticRepo struct {
	mu      sync.RWMutex
	reviews []Review
	nextID  int
	now     func() time.Time

	Delay time.Duration
}

func NewStaticRepo(delay time.Duration) (*StaticRepo, error) {
	rs, err := DecodeRecords(mockdata.Reviews)
	if err != nil {
		return nil, err
	}
	return NewStaticRepoFrom(rs, delay), nil
}

func NewStaticRepoFrom(rs []Review, delay time.Duration) *StaticRepo {
	r := &StaticRepo{reviews: append([]Review(nil), rs...), now: time.Now, Delay: delay, nextID: 1}
	for _, rv := range rs {
		if rv.ID >= r.nextID {
			r.nextID = rv.ID + 1
		}
	}
	return r
}

func (r *StaticRepo) All(ctx context.Context) ([]Review, error) {
	if err := mockdata.Delay(ctx, r.Delay); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Review{}, r.reviews...), nil
}

func (r *StaticRepo) GetByID(ctx context.Context, id int) (*Review, error) {
	if err := mockdata.Delay(ctx, r.Delay); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.index(id); i >= 0 {
		rv := r.reviews[i]
		return &rv, nil
	}
	return nil, ErrNotFound
}

func (r *StaticRepo) ByProduct(ctx context.Context, productID int) ([]Review, error) {
	if err := mockdata.Delay(ctx, r.Delay); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Review{}
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *StaticRepo) Create(ctx context.Context, n NewReview) (*Review, error) {
	n, err := n.check()
	if err != nil {
		return nil, err
	}
	if err := mockdata.Delay(ctx, r.Delay); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rv := Review{
		ID:         r.nextID,
		ProductID:  n.ProductID,
		UserName:   n.UserName,
		UserAvatar: n.UserAvatar,
		Rating:     n.Rating,
		Comment:    n.Comment,
		CreatedAt:  r.now().UTC(),
	}
	r.nextID++
	r.reviews = append(r.reviews, rv)
	return &rv, nil
}

func (r *StaticRepo) MarkHelpful(ctx context.Context, id int) (*Review, error) {
	if err := mockdata.Delay(ctx, r.Delay); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	r.reviews[i].HelpfulVotes++
	rv := r.reviews[i]
	return &rv, nil
}

// Delete removes a review. Only the static dataset supports it.
func (r *StaticRepo) Delete(ctx context.Context, id int) error {
	if err := mockdata.Delay(ctx, r.Delay); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return ErrNotFound
	}
	r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
	return nil
}

func (r *StaticRepo) index(id int) int {
	for i, rv := range r.reviews {
		if rv.ID == id {
			return i
		}
	}
	return -1
}
