package routes_test

import (
	"net/http"
	"testing"

	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileUpdate(t *testing.T) {
	srv := newServer(t)
	token := testutil.Token(t, testutil.CreateUser(t, "asha@example.com"))

	w, env := testutil.DoJSON(t, srv, http.MethodPut, "/api/users/profile", token, map[string]any{
		"displayName": "  Asha Rao ",
		"phoneNumber": "+91 98765 43210",
	})
	require.Equal(t, http.StatusOK, w.Code, env.Message)

	var user models.User
	env.Decode(t, &user)
	assert.Equal(t, "Asha Rao", user.DisplayName)
	require.NotNil(t, user.PhoneNumber)
	assert.Equal(t, "+91 98765 43210", *user.PhoneNumber)

	w, _ = testutil.DoJSON(t, srv, http.MethodPut, "/api/users/profile", token, map[string]any{"displayName": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = testutil.DoJSON(t, srv, http.MethodPut, "/api/users/profile", token, map[string]any{"phoneNumber": "call me"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid phone number", env.Message)
}

func addAddress(t *testing.T, srv http.Handler, token string, city string, isDefault bool) models.User {
	t.Helper()
	body := shippingAddress()
	body["city"] = city
	body["isDefault"] = isDefault

	w, env := testutil.DoJSON(t, srv, http.MethodPost, "/api/users/addresses", token, body)
	require.Equal(t, http.StatusCreated, w.Code, env.Message)

	var user models.User
	env.Decode(t, &user)
	return user
}

func defaultCity(u models.User) string {
	for _, a := range u.Addresses {
		if a.IsDefault {
			return a.City
		}
	}
	return ""
}

func countDefaults(u models.User) int {
	n := 0
	for _, a := range u.Addresses {
		if a.IsDefault {
			n++
		}
	}
	return n
}

func TestAddressDefaults(t *testing.T) {
	srv := newServer(t)
	token := testutil.Token(t, testutil.CreateUser(t, "asha@example.com"))

	// The first address is always the default.
	user := addAddress(t, srv, token, "Bengaluru", false)
	require.Len(t, user.Addresses, 1)
	assert.Equal(t, "Bengaluru", defaultCity(user))
	assert.Equal(t, "India", user.Addresses[0].Country)

	user = addAddress(t, srv, token, "Mysuru", false)
	assert.Equal(t, "Bengaluru", defaultCity(user))

	user = addAddress(t, srv, token, "Chennai", true)
	assert.Equal(t, "Chennai", defaultCity(user))
	assert.Equal(t, 1, countDefaults(user))

	var mysuru models.Address
	for _, a := range user.Addresses {
		if a.City == "Mysuru" {
			mysuru = a
		}
	}
	w, env := testutil.DoJSON(t, srv, http.MethodPut, "/api/users/addresses/"+mysuru.ID.String(), token,
		map[string]any{"isDefault": true, "pincode": "570001"})
	require.Equal(t, http.StatusOK, w.Code)
	env.Decode(t, &user)
	assert.Equal(t, "Mysuru", defaultCity(user))
	assert.Equal(t, 1, countDefaults(user))

	// Unsetting the default directly is ignored.
	w, env = testutil.DoJSON(t, srv, http.MethodPut, "/api/users/addresses/"+mysuru.ID.String(), token,
		map[string]any{"isDefault": false})
	require.Equal(t, http.StatusOK, w.Code)
	env.Decode(t, &user)
	assert.Equal(t, "Mysuru", defaultCity(user))

	// Deleting the default promotes another address.
	w, env = testutil.DoJSON(t, srv, http.MethodDelete, "/api/users/addresses/"+mysuru.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env.Decode(t, &user)
	require.Len(t, user.Addresses, 2)
	assert.Equal(t, 1, countDefaults(user))

	w, _ = testutil.DoJSON(t, srv, http.MethodDelete, "/api/users/addresses/"+mysuru.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddressBelongsToOwner(t *testing.T) {
	srv := newServer(t)
	asha := testutil.Token(t, testutil.CreateUser(t, "asha@example.com"))
	ravi := testutil.Token(t, testutil.CreateUser(t, "ravi@example.com"))

	user := addAddress(t, srv, asha, "Bengaluru", true)
	path := "/api/users/addresses/" + user.Addresses[0].ID.String()

	w, _ := testutil.DoJSON(t, srv, http.MethodPut, path, ravi, map[string]any{"city": "Pune"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = testutil.DoJSON(t, srv, http.MethodDelete, path, ravi, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = testutil.DoJSON(t, srv, http.MethodPost, "/api/users/addresses", asha, map[string]any{"name": "No City"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddressRejectsBlankRequiredFields(t *testing.T) {
	srv := newServer(t)
	token := testutil.Token(t, testutil.CreateUser(t, "asha@example.com"))

	for _, field := range []string{"name", "phone", "addressLine1", "city", "state", "pincode"} {
		body := shippingAddress()
		body[field] = "   "
		w, env := testutil.DoJSON(t, srv, http.MethodPost, "/api/users/addresses", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, field)
		assert.Equal(t, field+" cannot be blank", env.Message)
	}

	user := addAddress(t, srv, token, "Bengaluru", true)
	path := "/api/users/addresses/" + user.Addresses[0].ID.String()

	w, _ := testutil.DoJSON(t, srv, http.MethodPut, path, token, map[string]any{"name": " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = testutil.DoJSON(t, srv, http.MethodPut, path, token, map[string]any{"city": "\t"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Optional fields may still be cleared.
	w, env := testutil.DoJSON(t, srv, http.MethodPut, path, token, map[string]any{"addressLine2": "  "})
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	env.Decode(t, &user)
	assert.Equal(t, "Asha Rao", user.Addresses[0].Name)
	assert.Equal(t, "Bengaluru", user.Addresses[0].City)
}

func TestWishlist(t *testing.T) {
	srv := newServer(t)
	token := testutil.Token(t, testutil.CreateUser(t, "asha@example.com"))
	soap := testutil.CreateProduct(t, "Neem Soap")
	oil := testutil.CreateProduct(t, "Hair Oil", testutil.Category("oil"))

	for _, p := range []*models.Product{soap, oil, soap} {
		w, env := testutil.DoJSON(t, srv, http.MethodPost, "/api/users/wishlist", token, map[string]any{"productId": p.ID})
		require.Equal(t, http.StatusOK, w.Code, env.Message)
	}

	w, env := testutil.DoJSON(t, srv, http.MethodGet, "/api/users/wishlist", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var products []models.Product
	env.Decode(t, &products)
	assert.Len(t, products, 2)

	w, env = testutil.DoJSON(t, srv, http.MethodDelete, "/api/users/wishlist/"+soap.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env.Decode(t, &products)
	require.Len(t, products, 1)
	assert.Equal(t, oil.ID, products[0].ID)

	w, _ = testutil.DoJSON(t, srv, http.MethodPost, "/api/users/wishlist", token, map[string]any{"productId": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
