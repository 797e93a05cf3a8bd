package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	app "shop_api/internal/application/order"
	domain "shop_api/internal/domain/order"
	"shop_api/pkg/logger"
)

type OrderHandler struct {
	svc *app.Service
	log logger.Logger
}

func NewOrderHandler(svc *app.Service, log logger.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, log: log}
}

// orderView is the wire shape of an order in responses.
type orderView struct {
	Buyer      string     `json:"buyer"`
	Address    string     `json:"address"`
	Date       time.Time  `json:"date"`
	Dispatched bool       `json:"dispatched"`
	ID         int64      `json:"id"`
	Lines      []lineView `json:"lines"`
}

type lineView struct {
	Product string      `json:"product"`
	Title   string      `json:"title,omitempty"`
	Price   json.Number `json:"price"`
	Qty     int         `json:"qty"`
}

func toOrderView(o *domain.Order) orderView {
	view := orderView{
		Buyer:      o.Buyer,
		Address:    o.Address,
		Date:       o.CreatedAt,
		Dispatched: o.Dispatched,
		ID:         o.ID,
		Lines:      make([]lineView, 0, len(o.Lines)),
	}
	for _, l := range o.Lines {
		view.Lines = append(view.Lines, lineView{
			Product: l.ProductID,
			Title:   l.ProductTitle,
			Price:   json.Number(l.Price.StringFixed(2)),
			Qty:     l.Quantity,
		})
	}
	return view
}

// PlaceOrder accepts an order submission and runs the placement
// pipeline. On success the response carries the normalized order with
// its new id and a Content-Location pointing at the order resource.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var sub domain.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order: " + err.Error()})
		return
	}

	o, err := h.svc.PlaceOrder(c.Request.Context(), &sub)
	if err != nil {
		h.respondError(c, err)
		return
	}

	orderURL := fmt.Sprintf("/api/orders/%d/", o.ID)
	c.Header("Content-Location", orderURL)
	c.Header("Location", orderURL)
	c.JSON(http.StatusCreated, gin.H{"order": toOrderView(o)})
}

// GetOrder returns the reconstructed view of a stored order.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such order: " + raw})
		return
	}

	o, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no such order: " + raw})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": toOrderView(o)})
}

// respondError maps pipeline errors onto status codes. Storage detail is
// logged server-side only, the client sees a generic message.
func (h *OrderHandler) respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, domain.ErrPricesChanged):
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrPricesChanged.Error()})
	case errors.Is(err, domain.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrOrderNotFound.Error()})
	default:
		h.log.Error("database error", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
	}
}
