package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerRegistered(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Host     string                    `json:"host"`
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	require.Equal(t, "Basic API", doc.Info.Title)
	require.Equal(t, "localhost:3000", doc.Host)
	// 路徑含 /api 前綴，與 echo 註冊的路由一致
	require.Equal(t, "/", doc.BasePath)
	require.NotContains(t, doc.Paths, "/users")

	require.Contains(t, doc.Paths, "/health")
	require.Contains(t, doc.Paths["/api/users"], "get")
	require.Contains(t, doc.Paths["/api/users"], "post")
	for _, m := range []string{"get", "put", "patch", "delete"} {
		require.Contains(t, doc.Paths["/api/users/{id}"], m)
	}
}
