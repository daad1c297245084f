package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-club/internal/domain/appointment"
	clubdomain "github.com/BruksfildServices01/barber-club/internal/domain/club"
	"github.com/BruksfildServices01/barber-club/internal/dto"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/httpresp"
	"github.com/BruksfildServices01/barber-club/internal/models"
	"github.com/BruksfildServices01/barber-club/internal/usecase/appointment"
	"github.com/BruksfildServices01/barber-club/internal/usecase/club"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db           *gorm.DB
	availability *appointment.GetAvailability
	create       *appointment.CreateAppointment
	storefront   *club.Storefront
	subscribe    *club.Subscribe
	log          *zap.Logger

	// shops caches slug lookups; edits to a shop show up after shopCacheTTL.
	shops *cache.Cache
}

const shopCacheTTL = time.Minute

func NewPublicHandler(
	db *gorm.DB,
	availability *appointment.GetAvailability,
	create *appointment.CreateAppointment,
	storefront *club.Storefront,
	subscribe *club.Subscribe,
	log *zap.Logger,
) *PublicHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PublicHandler{
		db:           db,
		availability: availability,
		create:       create,
		storefront:   storefront,
		subscribe:    subscribe,
		log:          log,
		shops:        cache.New(shopCacheTTL, 10*shopCacheTTL),
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	BarberID    uint   `json:"barber_id"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ProductID   uint   `json:"product_id" binding:"required"`
	Date        string `json:"date" binding:"required,ymd"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required,hhmm"`
	Notes       string `json:"notes"`
}

type PublicSubscribeRequest struct {
	PlanID      uint   `json:"plan_id" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email" binding:"required,email"`
}

type publicProductDTO struct {
	models.BarberProduct
	Icon domain.IconDescriptor `json:"icon"`
}

////////////////////////////////////////////////////////
// PRODUCTS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListProducts(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).
		Where("barbershop_id = ? AND active = true", shop.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var products []models.BarberProduct
	if err := q.Order("id ASC").Find(&products).Error; err != nil {
		httperr.Internal(c, "failed_to_list_products", "Erro ao listar produtos.")
		return
	}

	out := make([]publicProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, publicProductDTO{BarberProduct: p, Icon: domain.Icon(p.IconKey)})
	}

	c.JSON(http.StatusOK, gin.H{
		"barbershop": shop,
		"products":   out,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	date, ok := parseDay(c.Query("date"))
	if !ok {
		httperr.BadRequest(c, "invalid_date_or_time", "Data inválida.")
		return
	}
	productID, ok := queryUint(c, "product_id")
	if !ok {
		return
	}
	barberID, ok := queryUint(c, "barber_id")
	if !ok {
		return
	}
	if barberID == 0 {
		if barberID, ok = h.defaultBarber(c, shop.ID); !ok {
			return
		}
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarbershopID: shop.ID,
		BarberID:     barberID,
		ProductID:    productID,
		Date:         date,
		Public:       true,
	})
	if err != nil {
		respond(c, h.log, err, "availability_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  c.Query("date"),
		"slots": dto.AvailableOnly(dto.Slots(slots)),
	})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	barberID := req.BarberID
	if barberID == 0 {
		if barberID, ok = h.defaultBarber(c, shop.ID); !ok {
			return
		}
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		BarbershopID: shop.ID,
		BarberID:     barberID,
		Public:       true,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		ProductID:    req.ProductID,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
	})
	if err != nil {
		respond(c, h.log, err, "failed_to_create_appointment")
		return
	}

	httpresp.Created(c, ap)
}

////////////////////////////////////////////////////////
// CLUB
////////////////////////////////////////////////////////

func (h *PublicHandler) Plans(c *gin.Context) {
	shop, plans, err := h.storefront.Execute(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respond(c, h.log, err, "failed_to_list_plans")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barbershop": shop,
		"plans":      plans,
	})
}

func (h *PublicHandler) Subscribe(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var req PublicSubscribeRequest
	if !bindJSON(c, &req) {
		return
	}

	sub, err := h.subscribe.Execute(c.Request.Context(), club.SubscribeInput{
		BarbershopID: shop.ID,
		PlanID:       req.PlanID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		Origin:       clubdomain.OriginGateway,
	})
	if err != nil {
		respond(c, h.log, err, "failed_to_subscribe")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"subscription_id": sub.ID,
		"status":          sub.Status,
		"checkout_url":    sub.CheckoutURL,
	})
}

// defaultBarber picks the shop owner when the visitor did not choose a professional.
func (h *PublicHandler) defaultBarber(c *gin.Context, barbershopID uint) (uint, bool) {
	var barber models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("barbershop_id = ? AND role = ?", barbershopID, models.RoleOwner).
		Order("id ASC").
		First(&barber).Error; err != nil {
		httperr.NotFoundResponse(c, "barber_not_found", "Profissional não encontrado.")
		return 0, false
	}
	return barber.ID, true
}

func (h *PublicHandler) shopBySlug(c *gin.Context) (*models.Barbershop, bool) {
	slug := c.Param("slug")
	if v, ok := h.shops.Get(slug); ok {
		shop := v.(models.Barbershop)
		return &shop, true
	}

	var shop models.Barbershop
	if err := h.db.WithContext(c.Request.Context()).
		Where("slug = ?", slug).
		First(&shop).Error; err != nil {
		httperr.NotFoundResponse(c, "barbershop_not_found", "Barbearia não encontrada.")
		return nil, false
	}

	h.shops.SetDefault(slug, shop)
	return &shop, true
}
