package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"storefront-service/internal/cart"
	"storefront-service/internal/catalog"
	"storefront-service/internal/checkout"
	"storefront-service/internal/content"
	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// sessionCookie identifies the shopper's device. The cart persists under this
// id across visits; there is no authentication.
const (
	sessionCookie       = "storefront_session"
	sessionCookieMaxAge = 365 * 24 * 60 * 60
)

// Handler contains HTTP handlers
type Handler struct {
	catalog  *catalog.Catalog
	carts    *cart.Service
	checkout *checkout.Service
	library  *content.Library
}

// NewHandler creates a new HTTP handler
func NewHandler(cat *catalog.Catalog, carts *cart.Service, co *checkout.Service, library *content.Library) *Handler {
	return &Handler{
		catalog:  cat,
		carts:    carts,
		checkout: co,
		library:  library,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", h.listProducts)
		v1.GET("/products/:id", h.getProduct)
		v1.GET("/categories", h.listCategories)

		v1.GET("/cart", h.getCart)
		v1.POST("/cart/items", h.addCartItem)
		v1.PATCH("/cart/items/:id", h.updateCartItem)
		v1.DELETE("/cart/items/:id", h.removeCartItem)
		v1.DELETE("/cart", h.clearCart)

		v1.POST("/checkout", h.beginCheckout)
		v1.GET("/checkout", h.getCheckout)
		v1.PUT("/checkout/shipping", h.checkoutShipping)
		v1.PUT("/checkout/payment", h.checkoutPayment)
		v1.POST("/checkout/back", h.checkoutBack)
		v1.POST("/checkout/submit", h.checkoutSubmit)
		v1.GET("/orders/:ref/handoff", h.orderHandoff)

		v1.GET("/biography", h.getBiography)
		v1.GET("/tours", h.listTours)
		v1.GET("/tours/states", h.listTourStates)
		v1.GET("/news", h.listNews)
		v1.GET("/news/:slug", h.getNewsArticle)
		v1.GET("/albums", h.listAlbums)
		v1.GET("/songs", h.listSongs)
		v1.GET("/videos", h.listVideos)
	}
}

// sessionID reads the session cookie, minting one on first contact.
func sessionID(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	id := uuid.New().String()
	c.SetCookie(sessionCookie, id, sessionCookieMaxAge, "/", "", false, true)
	return id
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// listProducts handles the filtered, sorted catalog listing
func (h *Handler) listProducts(c *gin.Context) {
	minPrice, _ := strconv.ParseInt(c.DefaultQuery("min_price", "0"), 10, 64)
	maxPrice, _ := strconv.ParseInt(c.DefaultQuery("max_price", "0"), 10, 64)

	filter := catalog.Filter{
		Query:      c.Query("q"),
		Categories: c.QueryArray("category"),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Quick:      catalog.QuickFilter(c.DefaultQuery("filter", string(catalog.QuickAll))),
		Sort:       catalog.SortKey(c.DefaultQuery("sort", string(catalog.SortFeatured))),
	}

	start := time.Now()
	products := filter.Apply(h.catalog.Products())
	util.CatalogFilterLatency.Observe(time.Since(start).Seconds())

	boundsMin, boundsMax := h.catalog.PriceBounds()
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
		"price_bounds": gin.H{
			"min": boundsMin,
			"max": boundsMax,
		},
	})
}

// getProduct handles product detail lookup
func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.catalog.ProductByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}
	c.JSON(http.StatusOK, product)
}

// listCategories returns the store category tabs
func (h *Handler) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.catalog.Categories()})
}

func (h *Handler) cartState(c *gin.Context, session string) gin.H {
	basket := h.carts.Get(c.Request.Context(), session)
	return gin.H{
		"lines":       basket.Lines(),
		"total_items": basket.TotalItemCount(),
		"total_price": basket.TotalPrice(),
	}
}

// getCart returns the session's cart with derived totals
func (h *Handler) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartState(c, sessionID(c)))
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// addCartItem adds a catalog product to the cart. Out-of-stock products are
// rejected here; the cart store itself enforces no stock ceiling.
func (h *Handler) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	product, err := h.catalog.ProductByID(req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if !product.InStock {
		c.JSON(http.StatusConflict, gin.H{"error": "Product is out of stock"})
		return
	}

	session := sessionID(c)
	if err := h.carts.AddItem(c.Request.Context(), session, product, req.Quantity); err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item"})
		return
	}

	c.JSON(http.StatusOK, h.cartState(c, session))
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// updateCartItem sets a line's quantity; zero or below removes the line
func (h *Handler) updateCartItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	session := sessionID(c)
	h.carts.SetQuantity(c.Request.Context(), session, c.Param("id"), req.Quantity)
	c.JSON(http.StatusOK, h.cartState(c, session))
}

// removeCartItem removes a line; removing an absent line succeeds
func (h *Handler) removeCartItem(c *gin.Context) {
	session := sessionID(c)
	h.carts.RemoveItem(c.Request.Context(), session, c.Param("id"))
	c.JSON(http.StatusOK, h.cartState(c, session))
}

// clearCart empties the cart
func (h *Handler) clearCart(c *gin.Context) {
	session := sessionID(c)
	h.carts.Clear(c.Request.Context(), session)
	c.JSON(http.StatusOK, h.cartState(c, session))
}

// beginCheckout starts the checkout flow for the session's cart
func (h *Handler) beginCheckout(c *gin.Context) {
	sess, err := h.checkout.Begin(c.Request.Context(), sessionID(c))
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			c.JSON(http.StatusConflict, gin.H{"error": "Cart is empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start checkout"})
		return
	}
	c.JSON(http.StatusCreated, sess)
}

// getCheckout returns the current checkout state
func (h *Handler) getCheckout(c *gin.Context) {
	sess, err := h.checkout.Current(sessionID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No checkout in progress"})
		return
	}
	c.JSON(http.StatusOK, sess)
}

// checkoutShipping submits the shipping step
func (h *Handler) checkoutShipping(c *gin.Context) {
	var info models.ShippingInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	sess, err := h.checkout.SubmitShipping(c.Request.Context(), sessionID(c), info)
	if err != nil {
		var vErr *checkout.ShippingValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Invalid shipping info",
				"fields": vErr.Fields,
			})
		case errors.Is(err, checkout.ErrNoSession):
			c.JSON(http.StatusNotFound, gin.H{"error": "No checkout in progress"})
		case errors.Is(err, checkout.ErrWrongStep):
			c.JSON(http.StatusConflict, gin.H{"error": "Not at the shipping step"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit shipping info"})
		}
		return
	}
	c.JSON(http.StatusOK, sess)
}

type paymentRequest struct {
	Method string `json:"method" binding:"required"`
}

// checkoutPayment records the payment method
func (h *Handler) checkoutPayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	sess, err := h.checkout.SelectPayment(c.Request.Context(), sessionID(c), req.Method)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrUnsupportedPayment):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported payment method"})
		case errors.Is(err, checkout.ErrNoSession):
			c.JSON(http.StatusNotFound, gin.H{"error": "No checkout in progress"})
		case errors.Is(err, checkout.ErrWrongStep):
			c.JSON(http.StatusConflict, gin.H{"error": "Not at the payment step"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to select payment method"})
		}
		return
	}
	c.JSON(http.StatusOK, sess)
}

// checkoutBack steps one step backwards
func (h *Handler) checkoutBack(c *gin.Context) {
	sess, err := h.checkout.Back(sessionID(c))
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrNoSession):
			c.JSON(http.StatusNotFound, gin.H{"error": "No checkout in progress"})
		default:
			c.JSON(http.StatusConflict, gin.H{"error": "Cannot step back from current step"})
		}
		return
	}
	c.JSON(http.StatusOK, sess)
}

type submitRequest struct {
	AcceptTerms bool `json:"accept_terms"`
}

// checkoutSubmit completes the flow and returns the confirmation with the
// messaging handoff link
func (h *Handler) checkoutSubmit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	confirmation, err := h.checkout.Submit(c.Request.Context(), sessionID(c), req.AcceptTerms)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrTermsNotAccepted):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Terms must be accepted"})
		case errors.Is(err, checkout.ErrNoSession):
			c.JSON(http.StatusNotFound, gin.H{"error": "No checkout in progress"})
		case errors.Is(err, checkout.ErrWrongStep):
			c.JSON(http.StatusConflict, gin.H{"error": "Not at the review step"})
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusConflict, gin.H{"error": "Cart is empty"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit order"})
		}
		return
	}
	c.JSON(http.StatusCreated, confirmation)
}

// orderHandoff re-fetches the messaging handoff link for a submitted order
func (h *Handler) orderHandoff(c *gin.Context) {
	confirmation, err := h.checkout.Handoff(c.Request.Context(), c.Param("ref"))
	if err != nil {
		if errors.Is(err, checkout.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
		return
	}
	c.JSON(http.StatusOK, confirmation)
}

// getBiography returns the artist bio
func (h *Handler) getBiography(c *gin.Context) {
	c.JSON(http.StatusOK, h.library.Biography())
}

// listTours returns the filtered tour calendar
func (h *Handler) listTours(c *gin.Context) {
	filter := content.TourFilter{
		Status: c.Query("status"),
		Query:  c.Query("q"),
		States: c.QueryArray("state"),
		Sort:   c.DefaultQuery("sort", content.TourSortDateAsc),
	}
	tours := h.library.Tours(filter)
	c.JSON(http.StatusOK, gin.H{
		"tours": tours,
		"count": len(tours),
	})
}

// listTourStates returns the distinct states on the calendar
func (h *Handler) listTourStates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"states": h.library.TourStates()})
}

// listNews returns all articles, newest first
func (h *Handler) listNews(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"articles": h.library.NewsArticles()})
}

// getNewsArticle returns one article by slug
func (h *Handler) getNewsArticle(c *gin.Context) {
	article, err := h.library.NewsBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	c.JSON(http.StatusOK, article)
}

// listAlbums returns the discography
func (h *Handler) listAlbums(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"albums": h.library.Albums()})
}

// listSongs returns all tracks
func (h *Handler) listSongs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"songs": h.library.Songs()})
}

// listVideos returns the video gallery, optionally featured only
func (h *Handler) listVideos(c *gin.Context) {
	if c.Query("featured") == "true" {
		c.JSON(http.StatusOK, gin.H{"videos": h.library.FeaturedVideos()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": h.library.Videos()})
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
