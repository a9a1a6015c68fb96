package servers_test

import (
	"encoding/json"
	"testing"

	"orders/internal/generated/servers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestGetSwagger(t *testing.T) {
	doc, err := servers.GetSwagger()
	require.NoError(t, err)

	for _, path := range []string{
		"/health",
		"/api/orders",
		"/api/orders/health",
		"/api/orders/{orderId}",
		"/api/orders/{orderId}/status",
		"/api/orders/{orderId}/simulate-progression",
		"/api/orders/bulk-status-update",
		"/api/orders/bulk-status-transition",
	} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}

	statuses := doc.Components.Schemas["OrderStatus"].Value.Enum
	assert.Len(t, statuses, 7)
}

func TestSwaggerDocIsRegistered(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
}
