package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	db "github.com/Shaloh69/autohub-be/internal/db/sqlc"
	"github.com/gin-gonic/gin"
)

//	@Summary		List all car brands
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{array}	db.Brand
//	@Router			/brands [get]
func (server *Server) listBrands(c *gin.Context) {
	brands, err := server.dbStore.ListBrands(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, brands)
}

//	@Summary		List the models of a brand
//	@Tags			catalog
//	@Produce		json
//	@Param			id	path	int	true	"Brand ID"
//	@Success		200	{array}	db.CarModel
//	@Router			/brands/{id}/models [get]
func (server *Server) listBrandModels(c *gin.Context) {
	brandID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid brand ID format")))
		return
	}

	if _, err = server.dbStore.GetBrandByID(c.Request.Context(), brandID); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			err = fmt.Errorf("brand ID %d not found", brandID)
			c.JSON(http.StatusNotFound, errorResponse(err))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	models, err := server.dbStore.ListCarModelsByBrand(c.Request.Context(), brandID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, models)
}

//	@Summary		List all listing categories
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{array}	db.Category
//	@Router			/categories [get]
func (server *Server) listCategories(c *gin.Context) {
	categories, err := server.dbStore.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, categories)
}
