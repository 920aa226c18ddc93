package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/stylehub-storefront/internal/category"
	"github.com/MikeMC777/stylehub-storefront/internal/config"
	"github.com/MikeMC777/stylehub-storefront/internal/httpx"
	"github.com/MikeMC777/stylehub-storefront/internal/mockdata"
	"github.com/MikeMC777/stylehub-storefront/internal/product"
	"github.com/MikeMC777/stylehub-storefront/internal/records"
	"github.com/MikeMC777/stylehub-storefront/internal/review"
)

// loadTables serves the embedded dataset as the product, review and category tables.
func loadTables() ([]*records.Table, error) {
	sources := []struct {
		name string
		raw  []byte
	}{
		{product.Table, mockdata.Products},
		{review.Table, mockdata.Reviews},
		{category.Table, mockdata.Categories},
	}
	out := make([]*records.Table, 0, len(sources))
	for _, s := range sources {
		t, err := records.NewTable(s.name, s.raw)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func newRouter(creds records.Credentials, tables ...*records.Table) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	records.Register(r, creds, tables...)
	return r
}

func main() {
	cfg := config.Load()

	tables, err := loadTables()
	if err != nil {
		log.Fatalf("records-service: %v", err)
	}
	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr: cfg.RecordsAddr,
		Handler: newRouter(records.Credentials{
			ProjectID: cfg.RecordsProjectID,
			PublicKey: cfg.RecordsPublicKey,
		}, tables...),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("records-service listening on %s", cfg.RecordsAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("records-service: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
