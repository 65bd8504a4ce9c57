package handler

import (
	"errors"
	"net/http"

	"github.com/apiscamp/apiscamp/go-services/internal/person"
	"github.com/apiscamp/apiscamp/go-services/internal/person/service"
	"github.com/gin-gonic/gin"
)

type personRequest struct {
	Name          string   `json:"name" binding:"required"`
	Age           int      `json:"age"`
	FavoriteFoods []string `json:"favoriteFoods"`
}

func (r personRequest) toPerson() person.Person {
	return person.Person{Name: r.Name, Age: r.Age, FavoriteFoods: r.FavoriteFoods}
}

// writeError maps façade errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	if errors.Is(err, person.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// RegisterPeopleRoutes mounts the person façade under /api/people.
func RegisterPeopleRoutes(r gin.IRouter, svc *service.Service) {
	g := r.Group("/api/people")

	g.POST("", func(c *gin.Context) {
		var req personRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		p := req.toPerson()
		out, err := svc.Create(c.Request.Context(), &p)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	})

	g.POST("/bulk", func(c *gin.Context) {
		var req []personRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if len(req) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "at least one person is required"})
			return
		}
		people := make([]person.Person, 0, len(req))
		for _, pr := range req {
			if pr.Name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
				return
			}
			people = append(people, pr.toPerson())
		}
		out, err := svc.CreateManyPeople(c.Request.Context(), people)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	})

	g.GET("", func(c *gin.Context) {
		out, err := svc.FindPeopleByName(c.Request.Context(), c.Query("name"))
		if err != nil {
			writeError(c, err)
			return
		}
		if out == nil {
			out = []*person.Person{}
		}
		c.JSON(http.StatusOK, out)
	})

	g.DELETE("", func(c *gin.Context) {
		name := c.Query("name")
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name query parameter is required"})
			return
		}
		out, err := svc.RemoveManyPeople(c.Request.Context(), name)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	g.GET("/food/:food", func(c *gin.Context) {
		out, err := svc.FindOneByFood(c.Request.Context(), c.Param("food"))
		if err != nil {
			writeError(c, err)
			return
		}
		if out == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no person likes " + c.Param("food")})
			return
		}
		c.JSON(http.StatusOK, out)
	})

	g.GET("/query", func(c *gin.Context) {
		food := c.DefaultQuery("food", "burrito")
		out, err := svc.QueryChain(c.Request.Context(), food)
		if err != nil {
			writeError(c, err)
			return
		}
		if out == nil {
			out = []person.PersonSummary{}
		}
		c.JSON(http.StatusOK, out)
	})

	g.GET("/:id", func(c *gin.Context) {
		out, err := svc.FindPersonByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		if out == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, out)
	})

	g.POST("/:id/foods", func(c *gin.Context) {
		out, err := svc.FindEditThenSave(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	g.PATCH("/by-filter/:value", func(c *gin.Context) {
		req := struct {
			Age *int `json:"age"`
		}{}
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
		age := person.AgeToSet
		if req.Age != nil {
			age = *req.Age
		}
		out, err := svc.FindAndUpdate(c.Request.Context(), c.Param("value"), age)
		if err != nil {
			writeError(c, err)
			return
		}
		// null when nothing matched
		c.JSON(http.StatusOK, out)
	})

	g.DELETE("/:id", func(c *gin.Context) {
		out, err := svc.RemoveByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
}
