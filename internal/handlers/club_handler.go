package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	clubdomain "github.com/BruksfildServices01/barber-club/internal/domain/club"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/httpresp"
	"github.com/BruksfildServices01/barber-club/internal/usecase/club"
)

// ======================================================
// HANDLER
// ======================================================

type ClubHandler struct {
	plans      *club.Plans
	list       *club.ListSubscriptions
	subscribe  *club.Subscribe
	cancel     *club.CancelSubscription
	membership *club.Membership
	log        *zap.Logger
}

func NewClubHandler(
	plans *club.Plans,
	list *club.ListSubscriptions,
	subscribe *club.Subscribe,
	cancel *club.CancelSubscription,
	membership *club.Membership,
	log *zap.Logger,
) *ClubHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ClubHandler{
		plans:      plans,
		list:       list,
		subscribe:  subscribe,
		cancel:     cancel,
		membership: membership,
		log:        log,
	}
}

type PublishPlanRequest struct {
	Published *bool `json:"published" binding:"required"`
}

type EnrolRequest struct {
	PlanID      uint   `json:"plan_id" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	// Origin "manual" records a plan paid at the counter; "gateway" sends a checkout link.
	Origin string `json:"origin"`
}

// ======================================================
// PLANS
// ======================================================

func (h *ClubHandler) ListPlans(c *gin.Context) {
	plans, err := h.plans.List(c.Request.Context(), currentShop(c))
	if err != nil {
		respond(c, h.log, err, "failed_to_list_plans")
		return
	}
	httpresp.List(c, plans)
}

func (h *ClubHandler) GetPlan(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	plan, err := h.plans.Get(c.Request.Context(), currentShop(c), id)
	if err != nil {
		respond(c, h.log, err, "failed_to_get_plan")
		return
	}
	httpresp.OK(c, plan)
}

func (h *ClubHandler) CreatePlan(c *gin.Context) {
	var req club.PlanInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	plan, err := h.plans.Create(c.Request.Context(), currentShop(c), currentUser(c), req)
	if err != nil {
		respond(c, h.log, err, "failed_to_create_plan")
		return
	}
	httpresp.Created(c, plan)
}

func (h *ClubHandler) UpdatePlan(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req club.PlanInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	plan, err := h.plans.Update(c.Request.Context(), currentShop(c), currentUser(c), id, req)
	if err != nil {
		respond(c, h.log, err, "failed_to_update_plan")
		return
	}
	httpresp.OK(c, plan)
}

func (h *ClubHandler) PublishPlan(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req PublishPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	plan, err := h.plans.SetPublished(c.Request.Context(), currentShop(c), currentUser(c), id, *req.Published)
	if err != nil {
		respond(c, h.log, err, "failed_to_publish_plan")
		return
	}
	httpresp.OK(c, plan)
}

// ======================================================
// SUBSCRIPTIONS
// ======================================================

func (h *ClubHandler) ListSubscriptions(c *gin.Context) {
	subs, err := h.list.Execute(c.Request.Context(), currentShop(c), c.Query("status"))
	if err != nil {
		respond(c, h.log, err, "failed_to_list_subscriptions")
		return
	}
	httpresp.List(c, subs)
}

func (h *ClubHandler) Enrol(c *gin.Context) {
	var req EnrolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	actorID := currentUser(c)
	origin := req.Origin
	if origin == "" {
		origin = clubdomain.OriginManual
	}

	sub, err := h.subscribe.Execute(c.Request.Context(), club.SubscribeInput{
		BarbershopID: currentShop(c),
		PlanID:       req.PlanID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		ActorID:      &actorID,
		Origin:       origin,
	})
	if err != nil {
		respond(c, h.log, err, "failed_to_subscribe")
		return
	}
	httpresp.Created(c, sub)
}

func (h *ClubHandler) CancelSubscription(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	sub, err := h.cancel.Execute(c.Request.Context(), currentShop(c), currentUser(c), id)
	if err != nil {
		respond(c, h.log, err, "failed_to_cancel_subscription")
		return
	}
	httpresp.OK(c, sub)
}

// Membership answers whether a client's plan covers a service right now.
func (h *ClubHandler) Membership(c *gin.Context) {
	clientID, ok := paramID(c, "id")
	if !ok {
		return
	}
	productID, ok := queryUint(c, "product_id")
	if !ok {
		return
	}

	sub, credit, err := h.membership.Check(c.Request.Context(), currentShop(c), clientID, productID)
	if err != nil {
		respond(c, h.log, err, "failed_to_check_membership")
		return
	}
	if sub == nil {
		httpresp.OK(c, gin.H{"member": false})
		return
	}

	httpresp.OK(c, gin.H{
		"member":       true,
		"subscription": sub,
		"credit":       credit,
	})
}
