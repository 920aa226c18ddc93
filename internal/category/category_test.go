package category

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/stylehub-storefront/internal/mockdata"
	"github.com/MikeMC777/stylehub-storefront/internal/records"
)

func TestRepositories(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tbl, err := records.NewTable(Table, mockdata.Categories)
	require.NoError(t, err)
	e := gin.New()
	records.Register(e, records.Credentials{}, tbl)
	srv := httptest.NewServer(e)
	defer srv.Close()

	static, err := NewStaticRepo(0)
	require.NoError(t, err)
	impls := map[string]Repository{
		"static":  static,
		"records": NewRecordsRepo(records.NewClient(srv.URL, "p", "k", 2*time.Second)),
	}
	for name, repo := range impls {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			all, err := repo.All(ctx)
			require.NoError(t, err)
			require.Len(t, all, 5)
			assert.Equal(t, "Women", all[0].Name)
			assert.Equal(t, []string{"dresses", "tops", "ethnic"}, all[0].Tags)

			c, err := repo.GetByID(ctx, 5)
			require.NoError(t, err)
			assert.Equal(t, "Home & Living", c.Name)

			_, err = repo.GetByID(ctx, 50)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}
