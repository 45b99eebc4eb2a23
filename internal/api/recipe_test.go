package api

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRecipe(t *testing.T, router *gin.Engine, token string, body map[string]interface{}) map[string]interface{} {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/v1/recipes", postJSON(t, body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 201, w.Code, w.Body.String())

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response["recipe"].(map[string]interface{})
}

func chickenRecipeBody(ingredientID string) map[string]interface{} {
	return map[string]interface{}{
		"name":        "Grilled Chicken",
		"description": "Simple grilled chicken",
		"servings":    1,
		"ingredients": []map[string]interface{}{
			{"ingredient_id": ingredientID, "quantity": 100, "unit": "g"},
		},
		"steps": []map[string]interface{}{
			{"step_number": 1, "instruction": "Season the chicken", "duration": 5},
			{"step_number": 2, "instruction": "Grill until done", "duration": 12},
		},
	}
}

func TestCreateRecipeComputesPerServingMacros(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	ingredient := createIngredient(t, router, token, map[string]interface{}{
		"name":               "Chicken Breast",
		"macros_per_serving": map[string]interface{}{"protein": 20, "carbs": 0, "fat": 2, "fiber": 0, "sugar": 0},
	})

	recipe := createRecipe(t, router, token, chickenRecipeBody(ingredient["id"].(string)))

	macros := recipe["macros_per_serving"].(map[string]interface{})
	assert.Equal(t, 98.0, macros["calories"]) // 20*4 + 2*9
	assert.Equal(t, 20.0, macros["protein"])
	assert.Equal(t, 2.0, macros["fat"])

	steps := recipe["steps"].([]interface{})
	require.Len(t, steps, 2)
	first := steps[0].(map[string]interface{})
	assert.Equal(t, 1.0, first["step_number"])
	assert.Equal(t, "Season the chicken", first["instruction"])
}

func TestCreateRecipeRenumbersSteps(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	ingredient := createIngredient(t, router, token, map[string]interface{}{
		"name":               "Chicken Breast",
		"macros_per_serving": map[string]interface{}{"protein": 20, "carbs": 0, "fat": 2, "fiber": 0, "sugar": 0},
	})

	body := chickenRecipeBody(ingredient["id"].(string))
	// Gaps from removed rows must collapse to a contiguous 1-based order.
	body["steps"] = []map[string]interface{}{
		{"step_number": 4, "instruction": "Serve"},
		{"step_number": 2, "instruction": "Grill until done"},
	}

	recipe := createRecipe(t, router, token, body)
	steps := recipe["steps"].([]interface{})
	require.Len(t, steps, 2)
	assert.Equal(t, "Grill until done", steps[0].(map[string]interface{})["instruction"])
	assert.Equal(t, 1.0, steps[0].(map[string]interface{})["step_number"])
	assert.Equal(t, 2.0, steps[1].(map[string]interface{})["step_number"])
}

func TestCreateRecipeRejectsInvalid(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	for name, body := range map[string]map[string]interface{}{
		"zero servings": {
			"name":     "Bad",
			"servings": 0,
		},
		"empty instruction": {
			"name":     "Bad",
			"servings": 1,
			"steps":    []map[string]interface{}{{"step_number": 1, "instruction": "   "}},
		},
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/recipes", postJSON(t, body))
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, 400, w.Code)
		})
	}
}

func TestGetRecipeOwnerOnlyWhilePrivate(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, aliceToken := CreateTestUser(t, testDB, "alice@example.com")
	_, bobToken := CreateTestUser(t, testDB, "bob@example.com")

	ingredient := createIngredient(t, router, aliceToken, map[string]interface{}{
		"name":               "Chicken Breast",
		"macros_per_serving": map[string]interface{}{"protein": 20, "carbs": 0, "fat": 2, "fiber": 0, "sugar": 0},
	})
	recipe := createRecipe(t, router, aliceToken, chickenRecipeBody(ingredient["id"].(string)))
	id := recipe["id"].(string)

	req := httptest.NewRequest("GET", "/api/v1/recipes/"+id, nil)
	req.Header.Set("Authorization", "Bearer "+aliceToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)

	req = httptest.NewRequest("GET", "/api/v1/recipes/"+id, nil)
	req.Header.Set("Authorization", "Bearer "+bobToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 404, w.Code)
}

func TestVisibilityAndPublicList(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	ingredient := createIngredient(t, router, token, map[string]interface{}{
		"name":               "Chicken Breast",
		"macros_per_serving": map[string]interface{}{"protein": 20, "carbs": 0, "fat": 2, "fiber": 0, "sugar": 0},
	})
	recipe := createRecipe(t, router, token, chickenRecipeBody(ingredient["id"].(string)))
	id := recipe["id"].(string)

	// Nothing public yet.
	req := httptest.NewRequest("GET", "/api/v1/recipes/public", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Empty(t, response["recipes"])

	// Publish.
	req = httptest.NewRequest("PATCH", "/api/v1/recipes/"+id+"/visibility", postJSON(t, map[string]interface{}{"is_public": true}))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)

	// Public list needs no token and includes computed macros.
	req = httptest.NewRequest("GET", "/api/v1/recipes/public", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	recipes := response["recipes"].([]interface{})
	require.Len(t, recipes, 1)
	macros := recipes[0].(map[string]interface{})["macros_per_serving"].(map[string]interface{})
	assert.Equal(t, 98.0, macros["calories"])
}

func TestIncrementViews(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	ingredient := createIngredient(t, router, token, map[string]interface{}{
		"name":               "Chicken Breast",
		"macros_per_serving": map[string]interface{}{"protein": 20, "carbs": 0, "fat": 2, "fiber": 0, "sugar": 0},
	})
	recipe := createRecipe(t, router, token, chickenRecipeBody(ingredient["id"].(string)))
	id := recipe["id"].(string)

	// Private recipes do not count views.
	req := httptest.NewRequest("POST", fmt.Sprintf("/api/v1/recipes/%s/views", id), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 403, w.Code)

	req = httptest.NewRequest("PATCH", "/api/v1/recipes/"+id+"/visibility", postJSON(t, map[string]interface{}{"is_public": true}))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	for want := 1; want <= 3; want++ {
		req = httptest.NewRequest("POST", fmt.Sprintf("/api/v1/recipes/%s/views", id), nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, 200, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(want), response["views"])
	}
}

func TestIncrementViewsUnknownRecipe(t *testing.T) {
	router, _ := SetupTestRouter(t)

	req := httptest.NewRequest("POST", "/api/v1/recipes/6b1e6a0e-7f44-4e2b-9a57-0d6f7b1a2c3d/views", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
}

func TestDeleteRecipe(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	ingredient := createIngredient(t, router, token, map[string]interface{}{
		"name":               "Chicken Breast",
		"macros_per_serving": map[string]interface{}{"protein": 20, "carbs": 0, "fat": 2, "fiber": 0, "sugar": 0},
	})
	recipe := createRecipe(t, router, token, chickenRecipeBody(ingredient["id"].(string)))
	id := recipe["id"].(string)

	req := httptest.NewRequest("DELETE", "/api/v1/recipes/"+id, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)

	req = httptest.NewRequest("GET", "/api/v1/recipes/"+id, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 404, w.Code)
}

func TestIngredientDeletionCascadesToRecipes(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	_, token := CreateTestUserAndToken(t, testDB)

	ingredient := createIngredient(t, router, token, map[string]interface{}{
		"name":               "Chicken Breast",
		"macros_per_serving": map[string]interface{}{"protein": 20, "carbs": 0, "fat": 2, "fiber": 0, "sugar": 0},
	})
	recipe := createRecipe(t, router, token, chickenRecipeBody(ingredient["id"].(string)))
	id := recipe["id"].(string)

	req := httptest.NewRequest("DELETE", "/api/v1/ingredients/"+ingredient["id"].(string), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	// The recipe survives with the usage removed; with no contributing
	// usage left the aggregate reports no calories at all.
	req = httptest.NewRequest("GET", "/api/v1/recipes/"+id, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	got := response["recipe"].(map[string]interface{})
	assert.Empty(t, got["ingredients"])
	macros := got["macros_per_serving"].(map[string]interface{})
	_, hasCalories := macros["calories"]
	assert.False(t, hasCalories)
	assert.Equal(t, 0.0, macros["protein"])
}
