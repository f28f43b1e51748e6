package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceRowResp struct {
	ID         uint    `json:"id"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	Category   string  `json:"category"`
	CategoryID uint    `json:"category_id"`
}

func TestInitServices(t *testing.T) {
	r, _ := setupServer(t)
	admin := loginAdmin(t, r)

	w := doRequest(t, r, http.MethodPost, "/api/init/services", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Count int `json:"count"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, 8, resp.Count)

	// Second run refuses.
	w = doRequest(t, r, http.MethodPost, "/api/init/services", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var conflict struct {
		ErrorCode string `json:"error_code"`
	}
	decodeBody(t, w, &conflict)
	assert.Equal(t, "services_exist", conflict.ErrorCode)

	// The catalog is publicly listable with category names joined in.
	list := doRequest(t, r, http.MethodGet, "/api/services", "", nil)
	require.Equal(t, http.StatusOK, list.Code)

	var rows []serviceRowResp
	decodeBody(t, list, &rows)
	require.Len(t, rows, 8)
	assert.Equal(t, "Откачка септиков", rows[0].Title)
	assert.Equal(t, "Частный сектор", rows[0].Category)
}

func TestInitServicesRequiresAdmin(t *testing.T) {
	r, _ := setupServer(t)

	w := doRequest(t, r, http.MethodPost, "/api/init/services", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	guest := loginGuest(t, r)
	w = doRequest(t, r, http.MethodPost, "/api/init/services", guest, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	employee := loginEmployee(t, r)
	w = doRequest(t, r, http.MethodPost, "/api/init/services", employee, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRestoreServices(t *testing.T) {
	r, _ := setupServer(t)
	admin := loginAdmin(t, r)

	w := doRequest(t, r, http.MethodPost, "/api/restore-services", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// With services present the restore reports how many are in the way.
	w = doRequest(t, r, http.MethodPost, "/api/restore-services", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		ErrorCode string `json:"error_code"`
		Count     int64  `json:"count"`
	}
	decodeBody(t, w, &body)
	assert.Equal(t, "services_exist", body.ErrorCode)
	assert.Equal(t, int64(8), body.Count)
}

func TestCreateAndUpdateService(t *testing.T) {
	r, _ := setupServer(t)
	employee := loginEmployee(t, r)

	create := gin.H{
		"title":       "Вывоз ила",
		"description": "Вывоз и утилизация осадка",
		"price":       4200,
		"duration":    "2 часа",
		"category_id": 3,
	}

	w := doRequest(t, r, http.MethodPost, "/api/services", employee, create)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID    uint    `json:"id"`
		Price float64 `json:"price"`
	}
	decodeBody(t, w, &created)
	assert.Equal(t, float64(4200), created.Price)

	t.Run("missing fields", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/api/services", employee, gin.H{
			"title": "Без цены",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("update", func(t *testing.T) {
		update := gin.H{
			"title":       "Вывоз ила",
			"description": "Вывоз и утилизация осадка",
			"price":       4500,
			"duration":    "2-3 часа",
			"category_id": 3,
		}
		w := doRequest(t, r, http.MethodPut, "/api/services/1", employee, update)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated struct {
			Price    float64 `json:"price"`
			Duration string  `json:"duration"`
		}
		decodeBody(t, w, &updated)
		assert.Equal(t, float64(4500), updated.Price)
		assert.Equal(t, "2-3 часа", updated.Duration)
	})

	t.Run("update unknown", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPut, "/api/services/999", employee, create)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("guest forbidden", func(t *testing.T) {
		guest := loginGuest(t, r)
		w := doRequest(t, r, http.MethodPost, "/api/services", guest, create)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestDeleteService(t *testing.T) {
	r, _ := setupServer(t)
	admin := loginAdmin(t, r)
	seedCatalog(t, r, admin)

	guest := loginGuest(t, r)
	createOrder(t, r, guest, 1, futureTime(24))
	createOrder(t, r, guest, 1, futureTime(48))

	// Referenced services refuse to go and report the order count.
	w := doRequest(t, r, http.MethodDelete, "/api/services/1", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var conflict struct {
		ErrorCode string `json:"error_code"`
		Count     int64  `json:"count"`
	}
	decodeBody(t, w, &conflict)
	assert.Equal(t, "service_in_use", conflict.ErrorCode)
	assert.Equal(t, int64(2), conflict.Count)

	// An unreferenced service deletes cleanly.
	w = doRequest(t, r, http.MethodDelete, "/api/services/2", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, r, http.MethodDelete, "/api/services/2", admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	t.Run("employee forbidden", func(t *testing.T) {
		employee := loginEmployee(t, r)
		w := doRequest(t, r, http.MethodDelete, "/api/services/3", employee, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestListCategories(t *testing.T) {
	r, _ := setupServer(t)

	w := doRequest(t, r, http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var categories []struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	decodeBody(t, w, &categories)
	require.Len(t, categories, 6)

	// Alphabetical listing.
	for i := 1; i < len(categories); i++ {
		assert.LessOrEqual(t, categories[i-1].Name, categories[i].Name)
	}
}
