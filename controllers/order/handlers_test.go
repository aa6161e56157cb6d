package orderControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.GET("/orders/:orderID", GetOrderByIDHandler(db, testConfig()))
	return r
}

func doGet(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetOrderByIDOrRef(t *testing.T) {
	db := setupTestDB(t)
	checkout, _ := seedCheckout(t, db, "u1", 100, 10, 2)
	order, err := CreateOrderFromCheckout(db, testConfig(), "u1", checkout.ID, "")
	require.NoError(t, err)
	r := newTestRouter(db, "u1")

	// Numeric id lookup.
	w := doGet(t, r, fmt.Sprintf("/orders/%d", order.ID))
	require.Equal(t, http.StatusOK, w.Code)
	var byID struct {
		Order struct {
			ID       uint   `json:"id"`
			OrderRef string `json:"order_ref"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &byID))
	require.Equal(t, order.ID, byID.Order.ID)
	require.Equal(t, order.OrderRef, byID.Order.OrderRef)

	// Non-numeric refs hit the order_ref column, never the id column.
	w = doGet(t, r, "/orders/"+order.OrderRef)
	require.Equal(t, http.StatusOK, w.Code)
	var byRef struct {
		Order struct {
			ID uint `json:"id"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &byRef))
	require.Equal(t, order.ID, byRef.Order.ID)

	// Unknown ref is a 404, not a query error.
	w = doGet(t, r, "/orders/no-such-ref")
	require.Equal(t, http.StatusNotFound, w.Code)

	// Another user's order stays invisible.
	other := newTestRouter(db, "someone-else")
	w = doGet(t, other, fmt.Sprintf("/orders/%d", order.ID))
	require.Equal(t, http.StatusNotFound, w.Code)
}
