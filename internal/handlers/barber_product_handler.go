package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-club/internal/audit"
	domain "github.com/BruksfildServices01/barber-club/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/httpresp"
	"github.com/BruksfildServices01/barber-club/internal/models"
)

// ImageUploader stores a picture and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, barbershopID uint, kind string, r io.Reader) (string, error)
}

type BarberProductHandler struct {
	db     *gorm.DB
	images ImageUploader
	audit  *audit.Dispatcher
	log    *zap.Logger
}

func NewBarberProductHandler(db *gorm.DB, images ImageUploader, audit *audit.Dispatcher, log *zap.Logger) *BarberProductHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &BarberProductHandler{db: db, images: images, audit: audit, log: log}
}

// --------- Requests ---------

type CreateBarberProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	DurationMin int             `json:"duration_min" binding:"required,min=1"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	IsPackage   bool            `json:"is_package"`
	IconKey     string          `json:"icon_key"`
}

type UpdateBarberProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	DurationMin *int             `json:"duration_min,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Active      *bool            `json:"active,omitempty"`
	Category    *string          `json:"category,omitempty"`
	IsPackage   *bool            `json:"is_package,omitempty"`
	IconKey     *string          `json:"icon_key,omitempty"`
}

func validIcon(key string) bool {
	return key == "" || domain.IsKnownIcon(key)
}

// --------- Handlers ---------

func (h *BarberProductHandler) List(c *gin.Context) {
	barbershopID := currentShop(c)

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active")) // "true", "false" ou vazio
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Where("barbershop_id = ?", barbershopID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	switch activeStr {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var products []models.BarberProduct
	if err := q.Order("id ASC").Find(&products).Error; err != nil {
		httperr.Internal(c, "failed_to_list_products", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *BarberProductHandler) Create(c *gin.Context) {
	barbershopID := currentShop(c)

	var req CreateBarberProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	if req.Price.IsNegative() {
		httperr.BadRequest(c, "invalid_amount", "Valor inválido.")
		return
	}
	if !validIcon(req.IconKey) {
		httperr.BadRequest(c, "invalid_icon", "Ícone inválido.")
		return
	}

	product := models.BarberProduct{
		BarbershopID: barbershopID,
		Name:         req.Name,
		Description:  req.Description,
		DurationMin:  req.DurationMin,
		Price:        req.Price.Round(2),
		IsPackage:    req.IsPackage,
		Active:       true,
		Category:     strings.ToLower(req.Category),
		IconKey:      req.IconKey,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_create_product", "Erro ao criar serviço.")
		return
	}

	userID := currentUser(c)
	h.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Action:       "product_created",
		Entity:       "barber_product",
		EntityID:     &product.ID,
	})

	httpresp.Created(c, product)
}

func (h *BarberProductHandler) load(c *gin.Context) (*models.BarberProduct, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}

	var product models.BarberProduct
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND barbershop_id = ?", id, currentShop(c)).
		First(&product).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFoundResponse(c, "product_not_found", "Serviço não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_product", "Erro ao buscar serviço.")
		return nil, false
	}
	return &product, true
}

func (h *BarberProductHandler) Update(c *gin.Context) {
	product, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateBarberProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 {
			httperr.BadRequest(c, "invalid_duration", "Duração inválida.")
			return
		}
		product.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			httperr.BadRequest(c, "invalid_amount", "Valor inválido.")
			return
		}
		product.Price = req.Price.Round(2)
	}
	if req.Active != nil {
		product.Active = *req.Active
	}
	if req.Category != nil {
		product.Category = strings.ToLower(*req.Category)
	}
	if req.IsPackage != nil {
		product.IsPackage = *req.IsPackage
	}
	if req.IconKey != nil {
		if !validIcon(*req.IconKey) {
			httperr.BadRequest(c, "invalid_icon", "Ícone inválido.")
			return
		}
		product.IconKey = *req.IconKey
	}

	if err := h.db.WithContext(c.Request.Context()).Save(product).Error; err != nil {
		httperr.Internal(c, "failed_to_update_product", "Erro ao salvar serviço.")
		return
	}

	c.JSON(http.StatusOK, product)
}

// UploadImage takes a multipart "image" field and stores it as WebP.
func (h *BarberProductHandler) UploadImage(c *gin.Context) {
	product, ok := h.load(c)
	if !ok {
		return
	}

	url, ok := uploadFormImage(c, h.images, h.log, product.BarbershopID, "products")
	if !ok {
		return
	}

	product.ImageURL = url
	if err := h.db.WithContext(c.Request.Context()).
		Model(product).
		Update("image_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_product", "Erro ao salvar serviço.")
		return
	}

	c.JSON(http.StatusOK, product)
}

func uploadFormImage(c *gin.Context, images ImageUploader, log *zap.Logger, barbershopID uint, kind string) (string, bool) {
	fh, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida.")
		return "", false
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida.")
		return "", false
	}
	defer f.Close()

	url, err := images.Upload(c.Request.Context(), barbershopID, kind, f)
	if err != nil {
		respond(c, log, err, "failed_to_upload_image")
		return "", false
	}
	return url, true
}
