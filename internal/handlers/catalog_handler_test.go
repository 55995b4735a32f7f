package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/coachtrack/internal/catalog"
)

func catalogRouter(t *testing.T) *gin.Engine {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v0/product/3017620422003.json":
			_, _ = w.Write([]byte(`{"status":1,"product":{"product_name":"Hazelnut spread","nutriments":{"energy-kcal_100g":539}}}`))
		case "/api/v0/product/0000.json":
			_, _ = w.Write([]byte(`{"status":0}`))
		case "/muscles":
			_, _ = w.Write([]byte(`["chest","back"]`))
		case "/muscles/chest/exercises":
			_, _ = w.Write([]byte(`[{"name":"Bench press"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(upstream.Close)

	client := upstream.Client()
	svc := catalog.NewService(
		catalog.NewEdamamClient("id", "key", upstream.URL+"/parser", upstream.URL+"/nutrients", client),
		catalog.NewOpenFoodFactsClient(upstream.URL, client),
		catalog.NewExercisesClient(upstream.URL, client),
		catalog.Options{},
	)

	h := NewCatalogHandler(svc)
	r := gin.New()
	r.GET("/foods/scan/:barcode", h.ScanProduct)
	r.GET("/foods/:code/nutrients", h.FoodNutrients)
	r.GET("/exercises/muscles", h.Muscles)
	r.GET("/exercises/muscles/:muscle", h.MuscleExercises)
	return r
}

func TestScanProduct(t *testing.T) {
	r := catalogRouter(t)

	w := do(r, http.MethodGet, "/foods/scan/3017620422003", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Hazelnut spread", body["name"])
	assert.Equal(t, 539.0, body["energy"])

	w = do(r, http.MethodGet, "/foods/scan/0000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "food_not_found", decode(t, w)["error_code"])
}

func TestFoodNutrients_InvalidQuantity(t *testing.T) {
	r := catalogRouter(t)

	for _, q := range []string{"abc", "0", "-5"} {
		w := do(r, http.MethodGet, "/foods/food_apple/nutrients?quantity="+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
		assert.Equal(t, "invalid_quantity", decode(t, w)["error_code"], q)
	}
}

func TestMuscleExercises(t *testing.T) {
	r := catalogRouter(t)

	w := do(r, http.MethodGet, "/exercises/muscles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["chest","back"]`, w.Body.String())

	w = do(r, http.MethodGet, "/exercises/muscles/chest", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"name":"Bench press"}]`, w.Body.String())

	w = do(r, http.MethodGet, "/exercises/muscles/tail", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "muscle_not_found", decode(t, w)["error_code"])
}
