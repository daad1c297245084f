package club

import (
	"context"
	"errors"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/barber-club/internal/domain/club"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/models"
)

type memClubRepo struct {
	mu sync.Mutex

	shop     models.Barbershop
	products map[uint]models.BarberProduct
	plans    map[uint]*models.ClubPlan
	subs     map[uint]*models.Subscription
	clients  []models.Client
	usage    []models.UsageRecord
	nextID   uint
}

func newMemClubRepo() *memClubRepo {
	return &memClubRepo{
		shop:     models.Barbershop{ID: 1, Slug: "navalha", Name: "Navalha", Timezone: "America/Sao_Paulo"},
		products: map[uint]models.BarberProduct{100: {ID: 100, BarbershopID: 1, Name: "Corte", DurationMin: 30}},
		plans:    map[uint]*models.ClubPlan{},
		subs:     map[uint]*models.Subscription{},
		nextID:   1,
	}
}

func (r *memClubRepo) id() uint {
	id := r.nextID
	r.nextID++
	return id
}

func (r *memClubRepo) CreatePlan(_ context.Context, p *models.ClubPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.id()
	for i := range p.Items {
		p.Items[i].PlanID = p.ID
	}
	cp := *p
	r.plans[p.ID] = &cp
	return nil
}

func (r *memClubRepo) UpdatePlan(_ context.Context, p *models.ClubPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.plans[p.ID] = &cp
	return nil
}

func (r *memClubRepo) ReplacePlanItems(_ context.Context, planID uint, items []models.PlanItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[planID].Items = append([]models.PlanItem(nil), items...)
	return nil
}

func (r *memClubRepo) GetPlan(_ context.Context, barbershopID, planID uint) (*models.ClubPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[planID]
	if !ok || p.BarbershopID != barbershopID {
		return nil, httperr.NotFound("plan_not_found")
	}
	cp := *p
	return &cp, nil
}

func (r *memClubRepo) ListPlans(_ context.Context, barbershopID uint) ([]models.ClubPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ClubPlan
	for _, p := range r.plans {
		if p.BarbershopID == barbershopID {
			out = append(out, *p)
		}
	}
	return out, nil
}

// ListPublishedPlans deliberately ignores is_active to prove the use case filters too.
func (r *memClubRepo) ListPublishedPlans(_ context.Context, barbershopID uint) ([]models.ClubPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ClubPlan
	for _, p := range r.plans {
		if p.BarbershopID == barbershopID && p.IsPublished {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memClubRepo) GetActiveSubscription(_ context.Context, barbershopID, clientID uint) (*models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subs {
		if s.BarbershopID == barbershopID && s.ClientID == clientID && s.Status == string(domain.StatusActive) {
			cp := *s
			cp.Plan = *r.plans[s.PlanID]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memClubRepo) GetSubscription(_ context.Context, barbershopID, subscriptionID uint) (*models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subs[subscriptionID]
	if !ok || s.BarbershopID != barbershopID {
		return nil, httperr.NotFound("subscription_not_found")
	}
	cp := *s
	return &cp, nil
}

func (r *memClubRepo) GetSubscriptionByGatewayRef(_ context.Context, ref string) (*models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subs {
		if s.GatewayRef == ref {
			cp := *s
			return &cp, nil
		}
	}
	return nil, httperr.NotFound("subscription_not_found")
}

func (r *memClubRepo) ListSubscriptions(_ context.Context, barbershopID uint, status string) ([]models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Subscription
	for _, s := range r.subs {
		if s.BarbershopID == barbershopID && (status == "" || s.Status == status) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memClubRepo) CreateSubscription(_ context.Context, s *models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.id()
	cp := *s
	r.subs[s.ID] = &cp
	return nil
}

func (r *memClubRepo) UpdateSubscription(_ context.Context, s *models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	cp.Plan = models.ClubPlan{}
	r.subs[s.ID] = &cp
	return nil
}

func (r *memClubRepo) CountUsageSince(_ context.Context, subscriptionID, productID uint, since time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.usage {
		if u.SubscriptionID == subscriptionID && u.BarberProductID == productID && !u.UsedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *memClubRepo) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	if id != r.shop.ID {
		return nil, httperr.NotFound("barbershop_not_found")
	}
	shop := r.shop
	return &shop, nil
}

func (r *memClubRepo) GetBarbershopBySlug(_ context.Context, slug string) (*models.Barbershop, error) {
	if slug != r.shop.Slug {
		return nil, httperr.NotFound("barbershop_not_found")
	}
	shop := r.shop
	return &shop, nil
}

func (r *memClubRepo) GetOrCreateClient(_ context.Context, barbershopID uint, name, phone, email string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.BarbershopID == barbershopID && c.Phone == phone {
			return &c, nil
		}
	}
	c := models.Client{ID: uint(len(r.clients) + 1), BarbershopID: barbershopID, Name: name, Phone: phone, Email: email}
	r.clients = append(r.clients, c)
	return &c, nil
}

func (r *memClubRepo) GetProduct(_ context.Context, barbershopID, productID uint) (*models.BarberProduct, error) {
	p, ok := r.products[productID]
	if !ok || p.BarbershopID != barbershopID {
		return nil, httperr.NotFound("product_not_found")
	}
	return &p, nil
}

type fakeGateway struct {
	status    string
	fail      bool
	cancelled []string
}

func (g *fakeGateway) Subscribe(_ context.Context, req domain.SubscribeRequest) (*domain.Checkout, error) {
	if g.fail {
		return nil, errors.New("gateway timeout")
	}
	return &domain.Checkout{GatewayRef: "pre-1", URL: "https://pay.example/checkout/pre-1", Status: "pending"}, nil
}

func (g *fakeGateway) Cancel(_ context.Context, ref string) error {
	if g.fail {
		return errors.New("gateway timeout")
	}
	g.cancelled = append(g.cancelled, ref)
	return nil
}

func (g *fakeGateway) Lookup(context.Context, string) (string, error) {
	if g.fail {
		return "", errors.New("gateway timeout")
	}
	return g.status, nil
}
