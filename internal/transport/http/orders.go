package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/Gunvolt24/pos_orders/internal/domain"
	"github.com/Gunvolt24/pos_orders/pkg/httpx"
	"github.com/Gunvolt24/pos_orders/pkg/validate"
	"github.com/gin-gonic/gin"
)

// maxListLimit: верхняя граница limit для списка заказов.
const maxListLimit = 500

// requestContext: контекст запроса с handlerTimeout (если задан).
func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.handlerTimeout > 0 {
		return context.WithTimeout(c.Request.Context(), h.handlerTimeout)
	}
	return context.WithCancel(c.Request.Context())
}

// decodeBody: JSON из тела; пустое тело даёт нулевое значение.
// Возвращает HTTP-статус и сообщение для клиента при ошибке.
func decodeBody(c *gin.Context, dst any) (int, string, bool) {
	err := json.NewDecoder(c.Request.Body).Decode(dst)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return 0, "", true
	case httpx.IsBodyTooLarge(err):
		return http.StatusRequestEntityTooLarge, "Request body too large", false
	default:
		return http.StatusBadRequest, "Invalid JSON body", false
	}
}

func (h *Handler) createOrder(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var req domain.CreateOrderRequest
	if code, msg, ok := decodeBody(c, &req); !ok {
		c.JSON(code, failure(msg))
		return
	}

	order, err := h.service.CreateOrder(ctx, &req)
	if err != nil {
		if errors.Is(err, validate.ErrInvalidOrder) {
			c.JSON(http.StatusBadRequest, failure(validate.Message(err)))
			return
		}
		h.log.Errorf(ctx, "CreateOrder failed err=%v", err)
		c.JSON(http.StatusInternalServerError, createOrderResponse{
			Success:   false,
			Timestamp: domain.FormatTimestamp(time.Now()),
			Message:   msgInternal,
		})
		return
	}

	c.JSON(http.StatusCreated, createOrderResponse{
		Success:   true,
		OrderID:   order.ID,
		Timestamp: order.Timestamp,
		Message:   "Order created successfully",
	})
}

func (h *Handler) listOrders(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var filter domain.OrderFilter

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, err := validate.ParseStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, failure(validate.Message(err)))
			return
		}
		filter.Status = status
	}
	if raw := strings.TrimSpace(c.Query("dateRange")); raw != "" {
		dr, err := validate.ParseDateRange(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, failure(validate.Message(err)))
			return
		}
		filter.DateRange = dr
	}
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.Limit, filter.Offset = httpx.ParseLimitOffset(c, maxListLimit)

	orders, stats, err := h.service.ListOrders(ctx, filter)
	if err != nil {
		h.log.Errorf(ctx, "ListOrders failed filter=%+v err=%v", filter, err)
		c.JSON(http.StatusInternalServerError, failure(msgInternal))
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	c.JSON(http.StatusOK, listOrdersResponse{
		Success: true,
		Orders:  orders,
		Count:   len(orders),
		Stats:   stats,
		Filters: listFilters{
			Status:    string(filter.Status),
			Search:    filter.Search,
			DateRange: string(filter.DateRange),
			Limit:     filter.Limit,
			Offset:    filter.Offset,
		},
	})
}

func (h *Handler) getOrderByID(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id := c.Param("id")
	order, err := h.service.GetOrder(ctx, id)
	if err != nil {
		h.log.Errorf(ctx, "GetOrder failed id=%s err=%v", id, err)
		c.JSON(http.StatusInternalServerError, failure(msgInternal))
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, failure("Order not found"))
		return
	}
	c.JSON(http.StatusOK, orderResponse{Success: true, Order: order})
}

func (h *Handler) updateStatus(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var body updateStatusRequest
	if code, msg, ok := decodeBody(c, &body); !ok && code == http.StatusRequestEntityTooLarge {
		c.JSON(code, failure(msg))
		return
	}
	// тело без корректного status (в т.ч. битый JSON): та же 400, что и неизвестный статус
	status, err := validate.ParseStatus(strings.TrimSpace(body.Status))
	if err != nil {
		c.JSON(http.StatusBadRequest, failure(validate.Message(err)))
		return
	}

	id := c.Param("id")
	err = h.service.UpdateStatus(ctx, id, status)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, messageResponse{Success: true, Message: fmt.Sprintf("Order status updated to %s", status)})
	case errors.Is(err, domain.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, failure("Order not found"))
	case errors.Is(err, validate.ErrInvalidOrder):
		c.JSON(http.StatusBadRequest, failure(validate.Message(err)))
	default:
		h.log.Errorf(ctx, "UpdateStatus failed id=%s err=%v", id, err)
		c.JSON(http.StatusInternalServerError, failure(msgInternal))
	}
}

func (h *Handler) deleteOrder(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id := c.Param("id")
	err := h.service.DeleteOrder(ctx, id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Order deleted successfully"})
	case errors.Is(err, domain.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, failure("Order not found"))
	default:
		h.log.Errorf(ctx, "DeleteOrder failed id=%s err=%v", id, err)
		c.JSON(http.StatusInternalServerError, failure(msgInternal))
	}
}

func (h *Handler) stats(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	st, err := h.service.Stats(ctx)
	if err != nil {
		h.log.Errorf(ctx, "Stats failed err=%v", err)
		c.JSON(http.StatusInternalServerError, failure(msgInternal))
		return
	}
	c.JSON(http.StatusOK, statsResponse{Success: true, Stats: st})
}

func (h *Handler) backup(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	path, err := h.service.Backup(ctx)
	if err != nil {
		h.log.Errorf(ctx, "Backup failed err=%v", err)
		c.JSON(http.StatusInternalServerError, failure(msgInternal))
		return
	}
	// путь на сервере клиенту не отдаём: только имя файла в каталоге данных
	c.JSON(http.StatusCreated, backupResponse{Success: true, File: filepath.Base(path)})
}
