package restapi

import (
	"net/http"
	"strconv"

	"mixin_wallet/internal/app/port"
	"mixin_wallet/internal/domain/entity"
	"mixin_wallet/internal/infrastructure/bridge"
	"mixin_wallet/internal/pkg/memo"

	"github.com/gin-gonic/gin"
)

// Headers a web view sets to describe its host objects.
const (
	HeaderWebkitHandler = "X-Mixin-Webkit-Handler"
	HeaderContext       = "X-Mixin-Context"
	HeaderContextGetter = "X-Mixin-Context-Getter"
)

// URIResponse wraps a deep link for the companion wallet.
type URIResponse struct {
	URI string `json:"uri"`
}

// ShareRequest is the body of POST /share.
type ShareRequest struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IconURL     string `json:"icon_url"`
}

// BridgeResponse reports the detected host bridge.
type BridgeResponse struct {
	Bridge string `json:"bridge"`
}

// SpotMemoResponse is a decoded spot payment memo.
type SpotMemoResponse struct {
	Limit    bool   `json:"limit"`
	Buy      bool   `json:"buy"`
	Symbol   string `json:"symbol"`
	Price    string `json:"price"`
	Exchange string `json:"exchange"`
}

// PaymentHandler serves payment, share and bridge endpoints.
type PaymentHandler struct {
	payments port.PaymentService
	logger   port.Logger
}

func NewPaymentHandler(payments port.PaymentService, l port.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, logger: l}
}

func (h *PaymentHandler) SpotPayHandler(c *gin.Context) {
	var order entity.SpotOrder
	if err := c.ShouldBindJSON(&order); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	uri, err := h.payments.SpotPay(c.Request.Context(), order)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, URIResponse{URI: uri})
}

func (h *PaymentHandler) PayHandler(c *gin.Context) {
	var req entity.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	uri, err := h.payments.Pay(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, URIResponse{URI: uri})
}

func (h *PaymentHandler) ShareHandler(c *gin.Context) {
	var req ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	uri, err := h.payments.Share(c.Request.Context(), req.URL, req.Title, req.Description, req.IconURL)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, URIResponse{URI: uri})
}

// BridgeHandler detects the host bridge from the user agent and the host headers.
func (h *PaymentHandler) BridgeHandler(c *gin.Context) {
	env := entity.HostEnvironment{
		UserAgent:            c.Request.UserAgent(),
		WebkitMessageHandler: headerFlag(c, HeaderWebkitHandler),
		GlobalContext:        headerFlag(c, HeaderContext),
		GlobalContextGetter:  headerFlag(c, HeaderContextGetter),
	}
	c.JSON(http.StatusOK, BridgeResponse{Bridge: bridge.Detect(env).String()})
}

func headerFlag(c *gin.Context, name string) bool {
	v, err := strconv.ParseBool(c.GetHeader(name))
	return err == nil && v
}

// DecodeMemoHandler explains the spot intent carried by a payment memo.
func (h *PaymentHandler) DecodeMemoHandler(c *gin.Context) {
	intent, err := memo.DecodeSpot(c.Param("memo"))
	if err != nil {
		h.logger.Debug("Rejected memo", "error", err)
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, SpotMemoResponse{
		Limit:    intent.Limit,
		Buy:      intent.Buy,
		Symbol:   intent.Symbol,
		Price:    intent.Price,
		Exchange: intent.Exchange,
	})
}
