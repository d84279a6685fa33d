package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jafarshop/storefront/internal/cache"
	"github.com/jafarshop/storefront/internal/cart"
	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/notify"
	"github.com/jafarshop/storefront/internal/service"
	"github.com/jafarshop/storefront/internal/shipping"
	"github.com/jafarshop/storefront/internal/storefront"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const shirtJSON = `{"id":"i1","productId":"p1","quantity":%d,"selectedOptions":{"size":"%s"},
	"product":{"id":"p1","name":"قميص","price":150,"stock":5,"productType":"shirt",
	"dynamicOptions":[{"optionName":"size","optionType":"select","required":true,"options":["S","M","L"]}]}}`

// fakeStorefront is the REST backend the page server talks to
type fakeStorefront struct {
	mu         sync.Mutex
	quantity   int
	size       string
	present    bool
	failRemove bool
	categories []string
}

func (f *fakeStorefront) handler() http.Handler {
	r := gin.New()
	r.GET("/api/user/:user/cart", func(c *gin.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if !f.present {
			c.Data(http.StatusOK, "application/json", []byte(`[]`))
			return
		}
		body := fmt.Sprintf(shirtJSON, f.quantity, f.size)
		c.Data(http.StatusOK, "application/json", []byte("["+body+"]"))
	})
	r.PUT("/api/user/:user/cart/update-options", func(c *gin.Context) {
		var req storefront.UpdateOptionsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.size = req.SelectedOptions["size"]
		f.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	r.PUT("/api/user/:user/cart/:item", func(c *gin.Context) {
		var body struct {
			Quantity int `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.quantity = body.Quantity
		f.mu.Unlock()
		c.Status(http.StatusNoContent)
	})
	r.DELETE("/api/user/:user/cart/:item", func(c *gin.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failRemove {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "تعذر الحذف"})
			return
		}
		f.present = false
		c.Status(http.StatusNoContent)
	})
	r.DELETE("/api/user/:user/cart", func(c *gin.Context) {
		f.mu.Lock()
		f.present = false
		f.mu.Unlock()
		c.Status(http.StatusNoContent)
	})
	r.POST("/api/categories", func(c *gin.Context) {
		name := c.PostForm("name")
		f.mu.Lock()
		f.categories = append(f.categories, name)
		f.mu.Unlock()
		c.JSON(http.StatusCreated, gin.H{"id": "c1", "name": name})
	})
	r.GET("/api/orders/:id", func(c *gin.Context) {
		if c.Param("id") != "o1" {
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}
		c.Data(http.StatusOK, "application/json", []byte(`{"id":"o1","status":"confirmed",
			"items":[{"productId":"p1","name":"قميص","price":150,"quantity":2}],"createdAt":"2026-10-01T10:00:00Z"}`))
	})
	return r
}

func (f *fakeStorefront) failRemovals() {
	f.mu.Lock()
	f.failRemove = true
	f.mu.Unlock()
}

func (f *fakeStorefront) selectedSize() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.size
}

func (f *fakeStorefront) cartQuantity() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.quantity
}

func (f *fakeStorefront) createdCategories() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.categories...)
}

type testServer struct {
	router  *gin.Engine
	backend *fakeStorefront
	carts   *cart.Registry
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	backend := &fakeStorefront{quantity: 2, size: "M", present: true}
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	hash, err := bcrypt.GenerateFromPassword([]byte("admin-key"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		Environment: "test",
		API:         config.APIConfig{BaseURL: srv.URL, Timeout: 5 * time.Second},
		Admin:       config.AdminConfig{KeyHash: string(hash)},
		Banner:      config.BannerConfig{Enabled: true, Title: "عروض الموسم", Link: "/products"},
	}

	logger := zap.NewNop()
	client := storefront.NewClient(cfg.API, logger)
	notifier := notify.Contextual(notify.NewZapNotifier(logger))
	carts := cart.NewRegistry(client, cache.NewMemory(), notifier, logger)
	t.Cleanup(carts.Close)

	router := NewRouter(cfg, Services{
		Carts:      carts,
		Shipping:   shipping.Default,
		Categories: service.NewCategoryService(client, notifier, logger),
		Orders:     service.NewOrderService(client, shipping.Default, logger),
		Banner:     service.NewBannerService(cfg.Banner, shipping.Default),
	}, logger)

	return &testServer{router: router, backend: backend, carts: carts}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, user string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w, out
}

func toastMessages(body map[string]interface{}) []string {
	raw, _ := body["notifications"].([]interface{})
	out := make([]string, 0, len(raw))
	for _, n := range raw {
		if m, ok := n.(map[string]interface{}); ok {
			out = append(out, m["message"].(string))
		}
	}
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w, body := s.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestGetCart_RequiresSession(t *testing.T) {
	s := newTestServer(t)
	w, body := s.do(t, http.MethodGet, "/v1/cart", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, []string{"يرجى تسجيل الدخول أولاً"}, toastMessages(body))
}

func TestGetCart(t *testing.T) {
	s := newTestServer(t)
	w, body := s.do(t, http.MethodGet, "/v1/cart", nil, "u1")
	require.Equal(t, http.StatusOK, w.Code)

	view := body["cart"].(map[string]interface{})
	assert.Equal(t, float64(2), view["totalItems"])
	assert.Equal(t, "300", view["totalPrice"])
	assert.Equal(t, true, view["canCheckout"])
	assert.Len(t, view["lines"], 1)
	assert.Equal(t, 1, s.carts.Len())
}

func TestUpdateQuantity(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/v1/cart", nil, "u1")

	w, body := s.do(t, http.MethodPut, "/v1/cart/items/i1", gin.H{"quantity": 3}, "u1")
	require.Equal(t, http.StatusOK, w.Code, body)
	assert.Equal(t, float64(3), body["cart"].(map[string]interface{})["totalItems"])
	assert.Len(t, toastMessages(body), 1)

	w, body = s.do(t, http.MethodPut, "/v1/cart/items/i1", gin.H{"quantity": 9}, "u1")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Len(t, toastMessages(body), 1)

	w, _ = s.do(t, http.MethodPut, "/v1/cart/items/i1", gin.H{}, "u1")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCartMutations_WithoutPriorRead(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(t, http.MethodPut, "/v1/cart/items/i1", gin.H{"quantity": 3}, "u1")
	require.Equal(t, http.StatusOK, w.Code, body)
	assert.Equal(t, 3, s.backend.cartQuantity())
	assert.Equal(t, float64(3), body["cart"].(map[string]interface{})["totalItems"])

	w, body = s.do(t, http.MethodPut, "/v1/cart/options", gin.H{
		"productId":       "p1",
		"selectedOptions": gin.H{"size": "L"},
	}, "u2")
	require.Equal(t, http.StatusOK, w.Code, body)
	assert.Equal(t, "L", s.backend.selectedSize())

	w, _ = s.do(t, http.MethodPut, "/v1/cart/items/i9", gin.H{"quantity": 1}, "u3")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveItem_NeedsConfirmation(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/v1/cart", nil, "u1")

	w, body := s.do(t, http.MethodDelete, "/v1/cart/items/i1", nil, "u1")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NotEmpty(t, body["confirmationRequired"])

	w, body = s.do(t, http.MethodDelete, "/v1/cart/items/i1?confirm=true", nil, "u1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["cart"].(map[string]interface{})["empty"])
}

func TestRemoveItem_FailureRestores(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/v1/cart", nil, "u1")
	s.backend.failRemovals()

	w, body := s.do(t, http.MethodDelete, "/v1/cart/items/i1?confirm=true", nil, "u1")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, []string{"تعذر الحذف"}, toastMessages(body))
	assert.Len(t, body["cart"].(map[string]interface{})["lines"], 1)
}

func TestClearCart(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/v1/cart", nil, "u1")

	w, body := s.do(t, http.MethodDelete, "/v1/cart?confirm=true", nil, "u1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), body["cart"].(map[string]interface{})["totalItems"])
}

func TestUpdateOptions(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/v1/cart", nil, "u1")

	w, body := s.do(t, http.MethodPut, "/v1/cart/options", gin.H{
		"productId":       "p1",
		"selectedOptions": gin.H{"size": ""},
	}, "u1")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, []interface{}{"المقاس"}, body["missingFields"])
	assert.Equal(t, []string{"يرجى إكمال الحقول المطلوبة: المقاس"}, toastMessages(body))

	w, _ = s.do(t, http.MethodPut, "/v1/cart/options", gin.H{
		"productId":       "p1",
		"selectedOptions": gin.H{"size": "L"},
		"attachments":     gin.H{"text": "هدية", "images": []gin.H{{"name": "card.png"}}},
	}, "u1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "L", s.backend.selectedSize())

	w, body = s.do(t, http.MethodGet, "/v1/cart/options/p1", nil, "u1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"size": "L"}, body["selectedOptions"])
}

func TestShippingQuote(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(t, http.MethodGet, "/v1/shipping/quote?subtotal=499", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", body["amountNeededForFree"])
	assert.Equal(t, "549", body["summary"].(map[string]interface{})["total"])

	w, _ = s.do(t, http.MethodGet, "/v1/shipping/quote?subtotal=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBanner(t *testing.T) {
	s := newTestServer(t)
	w, body := s.do(t, http.MethodGet, "/v1/banner?subtotal=600", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "عروض الموسم", body["title"])
	assert.Equal(t, "🎉 مبروك! حصلت على شحن مجاني", body["shippingMessage"])
}

func TestOrderConfirmation(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(t, http.MethodGet, "/v1/orders/o1/confirmation", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "300", body["subtotal"])
	assert.Equal(t, "50", body["shipping"])
	assert.Equal(t, "350", body["total"])
	assert.Equal(t, "تم التأكيد", body["statusLabel"])

	w, _ = s.do(t, http.MethodGet, "/v1/orders/o404/confirmation", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateCategory(t *testing.T) {
	s := newTestServer(t)

	post := func(name, key string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		mw.WriteField("name", name)
		mw.WriteField("description", "وصف")
		part, _ := mw.CreateFormFile("image", "cover.jpg")
		part.Write([]byte("JPEG"))
		mw.Close()

		req := httptest.NewRequest(http.MethodPost, "/v1/admin/categories", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		if key != "" {
			req.Header.Set("Authorization", "Bearer "+key)
		}
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, post("عبايات", "").Code)
	assert.Equal(t, http.StatusUnauthorized, post("عبايات", "wrong").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, post(" ", "admin-key").Code)

	w := post("عبايات", "admin-key")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, []string{"عبايات"}, s.backend.createdCategories())
}
