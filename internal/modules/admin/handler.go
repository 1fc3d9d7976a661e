package admin

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"secrethouse/internal/pkg/jwt"
	"secrethouse/internal/pkg/response"
	"secrethouse/internal/pricing"
	"secrethouse/internal/sweeper"
)

// Handler serves the management surface: login, hot reload of the pricing
// configuration and the integrity report.
type Handler struct {
	db           *gorm.DB
	tokens       *jwt.Service
	passwordHash string
	catalog      *pricing.Catalog
	rules        *pricing.RuleIndex
	ratesPath    string
}

func NewHandler(db *gorm.DB, tokens *jwt.Service, passwordHash string, catalog *pricing.Catalog, rules *pricing.RuleIndex, ratesPath string) *Handler {
	return &Handler{
		db:           db,
		tokens:       tokens,
		passwordHash: passwordHash,
		catalog:      catalog,
		rules:        rules,
		ratesPath:    ratesPath,
	}
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// RegisterRoutes mounts the login endpoint; everything else goes behind the
// admin guard via RegisterProtectedRoutes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/admin/login", h.login)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/admin/reload", h.reload)
	rg.GET("/admin/integrity", h.integrity)
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.passwordHash), []byte(req.Password)); err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials")
		return
	}

	token, err := h.tokens.GenerateToken("admin")
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": token})
}

// reload re-reads the rates file. Both the catalog and the date-rule index
// come from the same file; either reload failing leaves the previous
// snapshots serving.
func (h *Handler) reload(c *gin.Context) {
	if err := h.catalog.Reload(h.ratesPath); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "RELOAD_FAILED", err.Error())
		return
	}
	if err := h.rules.Reload(h.ratesPath); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "RELOAD_FAILED", err.Error())
		return
	}

	log.Printf("pricing_reloaded path=%s tariffs=%d rules=%d", h.ratesPath, len(h.catalog.Tariffs()), len(h.rules.Rules()))
	response.Success(c, http.StatusOK, gin.H{
		"tariffs": len(h.catalog.Tariffs()),
		"rules":   len(h.rules.Rules()),
	})
}

func (h *Handler) integrity(c *gin.Context) {
	report, err := sweeper.Scan(h.db)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"clean":  report.Clean(),
		"report": report,
	})
}
