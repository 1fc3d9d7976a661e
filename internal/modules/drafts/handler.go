package drafts

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"secrethouse/internal/domain"
	"secrethouse/internal/pkg/response"
	"secrethouse/internal/pricing"
	"secrethouse/internal/session"
)

// Handler exposes the conversation drafts to the bot front-end. The flow
// engine upserts the draft as the dialogue advances and asks for a price
// preview before confirmation.
type Handler struct {
	store  *session.Store
	engine *pricing.Engine
}

func NewHandler(store *session.Store, engine *pricing.Engine) *Handler {
	return &Handler{store: store, engine: engine}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/drafts/:chat_id", h.get)
	rg.PUT("/drafts/:chat_id", h.put)
	rg.DELETE("/drafts/:chat_id", h.clear)
	rg.GET("/drafts/:chat_id/quote", h.quote)
}

func (h *Handler) get(c *gin.Context) {
	chatID, ok := pathChatID(c)
	if !ok {
		return
	}
	draft, found := h.store.Get(chatID)
	if !found {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "no draft for chat")
		return
	}
	response.Success(c, http.StatusOK, draft)
}

func (h *Handler) put(c *gin.Context) {
	chatID, ok := pathChatID(c)
	if !ok {
		return
	}

	var draft domain.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	h.store.Put(chatID, &draft)
	response.Success(c, http.StatusOK, draft)
}

func (h *Handler) clear(c *gin.Context) {
	chatID, ok := pathChatID(c)
	if !ok {
		return
	}
	h.store.Clear(chatID)
	response.Success(c, http.StatusOK, gin.H{"chat_id": chatID})
}

// quote prices the draft as it stands, so the dialogue can show a running
// total before anything is persisted.
func (h *Handler) quote(c *gin.Context) {
	chatID, ok := pathChatID(c)
	if !ok {
		return
	}
	draft, found := h.store.Get(chatID)
	if !found {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "no draft for chat")
		return
	}

	q, err := h.engine.CalculatePrice(pricing.RequestFromDraft(draft))
	if err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "PRICING_FAILED", err.Error())
		return
	}
	response.Success(c, http.StatusOK, q)
}

func pathChatID(c *gin.Context) (int64, bool) {
	chatID, err := strconv.ParseInt(c.Param("chat_id"), 10, 64)
	if err != nil || chatID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid chat id")
		return 0, false
	}
	return chatID, true
}
