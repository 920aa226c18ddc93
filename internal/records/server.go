package records

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/stylehub-storefront/internal/apperr"
)

// Credentials guard a served project. Empty values accept any caller.
type Credentials struct {
	ProjectID string
	PublicKey string
}

// Register mounts the records API for tables under /v1.
func Register(r gin.IRouter, creds Credentials, tables ...*Table) {
	byName := map[string]*Table{}
	for _, t := range tables {
		byName[t.Name()] = t
	}
	g := r.Group("/v1", authorize(creds))
	g.POST("/:table/fetch", withTable(byName, fetchHandler))
	g.GET("/:table/:id", withTable(byName, getHandler))
	g.POST("/:table", withTable(byName, writeHandler((*Table).Create)))
	g.PUT("/:table", withTable(byName, writeHandler((*Table).Update)))
}

func authorize(creds Credentials) gin.HandlerFunc {
	return func(c *gin.Context) {
		if (creds.ProjectID != "" && c.GetHeader("X-Project-ID") != creds.ProjectID) ||
			(creds.PublicKey != "" && c.GetHeader("X-Public-Key") != creds.PublicKey) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Message: "invalid project credentials"})
			return
		}
		c.Next()
	}
}

func withTable(tables map[string]*Table, h func(*gin.Context, *Table)) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := tables[c.Param("table")]
		if !ok {
			c.JSON(http.StatusNotFound, Response{Message: "unknown table " + c.Param("table")})
			return
		}
		h(c, t)
	}
}

func fetchHandler(c *gin.Context, t *Table) {
	var q Query
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&q); err != nil {
			c.JSON(http.StatusBadRequest, Response{Message: "invalid query: " + err.Error()})
			return
		}
	}
	data, err := json.Marshal(t.Fetch(q))
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func getHandler(c *gin.Context, t *Table) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Message: "invalid id"})
		return
	}
	rec, err := t.Get(id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, Response{Message: t.Name() + " not found"})
		return
	}
	data, _ := json.Marshal(rec)
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func writeHandler(op func(*Table, map[string]any) (map[string]any, error)) func(*gin.Context, *Table) {
	return func(c *gin.Context, t *Table) {
		var req struct {
			Records []map[string]any `json:"records"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Records) == 0 {
			c.JSON(http.StatusBadRequest, Response{Message: "records are required"})
			return
		}
		res := Response{Success: true, Results: make([]Result, 0, len(req.Records))}
		for _, rec := range req.Records {
			stored, err := op(t, rec)
			if err != nil {
				res.Results = append(res.Results, Result{Message: err.Error(), Errors: fieldErrors(err)})
				continue
			}
			data, _ := json.Marshal(stored)
			res.Results = append(res.Results, Result{Success: true, Data: data})
		}
		c.JSON(http.StatusOK, res)
	}
}

func fieldErrors(err error) []FieldError {
	switch {
	case errors.Is(err, ErrNotFound):
		return []FieldError{{FieldLabel: "Id", Message: "no such record"}}
	case apperr.Is(err, apperr.Validation):
		return []FieldError{{FieldLabel: "Id", Message: err.Error()}}
	}
	return nil
}
