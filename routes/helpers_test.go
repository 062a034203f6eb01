package routes_test

import (
	"net/http"
	"testing"

	"github.com/herbsera/herbsera-backend/routes"
	"github.com/herbsera/herbsera-backend/testutil"
	"go.uber.org/zap"
)

func newServer(t *testing.T) http.Handler {
	t.Helper()
	testutil.Setup(t)
	return routes.SetupRouter(zap.NewNop())
}

func shippingAddress() map[string]any {
	return map[string]any{
		"name":         "Asha Rao",
		"phone":        "9876543210",
		"addressLine1": "12 MG Road",
		"city":         "Bengaluru",
		"state":        "Karnataka",
		"pincode":      "560001",
	}
}
