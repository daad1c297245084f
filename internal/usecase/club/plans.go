package club

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-club/internal/audit"
	domain "github.com/BruksfildServices01/barber-club/internal/domain/club"
	"github.com/BruksfildServices01/barber-club/internal/models"
)

type PlanItemInput struct {
	ProductID     uint `json:"barber_product_id" binding:"required"`
	QuantityLimit *int `json:"quantity_limit"`
}

type PlanInput struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Interval    string          `json:"interval"`
	IsActive    *bool           `json:"is_active"`
	Items       []PlanItemInput `json:"items"`
}

type Plans struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewPlans(repo domain.Repository, audit *audit.Dispatcher) *Plans {
	return &Plans{repo: repo, audit: audit}
}

// Create stores a draft; it is not sold until Publish.
func (uc *Plans) Create(
	ctx context.Context,
	barbershopID uint,
	actorID uint,
	in PlanInput,
) (*models.ClubPlan, error) {

	plan := &models.ClubPlan{
		BarbershopID: barbershopID,
		IsActive:     true,
		IsPublished:  false,
	}
	if err := uc.apply(ctx, plan, in); err != nil {
		return nil, err
	}

	if err := uc.repo.CreatePlan(ctx, plan); err != nil {
		return nil, err
	}

	uc.dispatch(barbershopID, actorID, "club_plan_created", plan.ID)
	return plan, nil
}

func (uc *Plans) Update(
	ctx context.Context,
	barbershopID uint,
	actorID uint,
	planID uint,
	in PlanInput,
) (*models.ClubPlan, error) {

	plan, err := uc.repo.GetPlan(ctx, barbershopID, planID)
	if err != nil {
		return nil, err
	}

	if err := uc.apply(ctx, plan, in); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdatePlan(ctx, plan); err != nil {
		return nil, err
	}
	if err := uc.repo.ReplacePlanItems(ctx, plan.ID, plan.Items); err != nil {
		return nil, err
	}

	uc.dispatch(barbershopID, actorID, "club_plan_updated", plan.ID)
	return plan, nil
}

func (uc *Plans) SetPublished(
	ctx context.Context,
	barbershopID uint,
	actorID uint,
	planID uint,
	published bool,
) (*models.ClubPlan, error) {

	plan, err := uc.repo.GetPlan(ctx, barbershopID, planID)
	if err != nil {
		return nil, err
	}

	plan.IsPublished = published
	if err := uc.repo.UpdatePlan(ctx, plan); err != nil {
		return nil, err
	}

	action := "club_plan_unpublished"
	if published {
		action = "club_plan_published"
	}
	uc.dispatch(barbershopID, actorID, action, plan.ID)

	return plan, nil
}

func (uc *Plans) List(ctx context.Context, barbershopID uint) ([]models.ClubPlan, error) {
	return uc.repo.ListPlans(ctx, barbershopID)
}

func (uc *Plans) Get(ctx context.Context, barbershopID, planID uint) (*models.ClubPlan, error) {
	return uc.repo.GetPlan(ctx, barbershopID, planID)
}

func (uc *Plans) apply(ctx context.Context, plan *models.ClubPlan, in PlanInput) error {
	plan.Name = in.Name
	plan.Description = in.Description
	plan.Price = in.Price
	plan.Interval = in.Interval
	if in.IsActive != nil {
		plan.IsActive = *in.IsActive
	}

	plan.Items = make([]models.PlanItem, 0, len(in.Items))
	for _, it := range in.Items {
		plan.Items = append(plan.Items, models.PlanItem{
			PlanID:          plan.ID,
			BarberProductID: it.ProductID,
			QuantityLimit:   it.QuantityLimit,
		})
	}

	if err := domain.ValidatePlan(plan); err != nil {
		return err
	}

	for _, it := range plan.Items {
		if _, err := uc.repo.GetProduct(ctx, plan.BarbershopID, it.BarberProductID); err != nil {
			return err
		}
	}
	return nil
}

func (uc *Plans) dispatch(barbershopID, actorID uint, action string, planID uint) {
	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &actorID,
		Action:       action,
		Entity:       "club_plan",
		EntityID:     &planID,
	})
}
