package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Shaloh69/autohub-be/internal/search"
	"github.com/Shaloh69/autohub-be/internal/validator"
	"github.com/gin-gonic/gin"
)

type searchListingsResponse struct {
	Listings   interface{} `json:"listings"`
	Total      int64       `json:"total"`
	Page       int32       `json:"page"`
	PageSize   int32       `json:"page_size"`
	TotalPages int32       `json:"total_pages"`
}

//	@Summary		Search listings
//	@Description	Multi-criteria search over publicly visible listings: brand/model/category membership, price/year/mileage ranges, vehicle attributes, location, free text, and radius search around a coordinate. Results carry distance_km when a location is supplied.
//	@Tags			listings
//	@Produce		json
//	@Param			q			query	string	false	"Free-text query over title, description, brand and model"
//	@Param			brand_ids	query	string	false	"Comma-separated brand IDs"
//	@Param			model_ids	query	string	false	"Comma-separated model IDs"
//	@Param			min_price	query	int		false	"Minimum price in centavos"
//	@Param			max_price	query	int		false	"Maximum price in centavos"
//	@Param			lat			query	number	false	"Latitude of the search center"
//	@Param			lng			query	number	false	"Longitude of the search center"
//	@Param			radius_km	query	number	false	"Search radius in kilometers"
//	@Param			sort_by		query	string	false	"Sort key"	Enums(price,year,mileage,created_at,distance)
//	@Param			sort_dir	query	string	false	"Sort direction"	Enums(asc,desc)
//	@Param			page		query	int		false	"Page number (1-based)"
//	@Param			page_size	query	int		false	"Page size, capped at 50"
//	@Success		200			{object}	searchListingsResponse
//	@Router			/listings/search [get]
func (server *Server) searchListings(c *gin.Context) {
	filter, violations := parseSearchFilter(c)
	if len(violations) > 0 {
		c.JSON(http.StatusBadRequest, failedValidationError(violations))
		return
	}

	filter.Normalize()

	result, err := server.dbStore.SearchListings(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, searchListingsResponse{
		Listings:   result.Listings,
		Total:      result.Total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: int32(filter.TotalPages(result.Total)),
	})
}

func parseSearchFilter(c *gin.Context) (*search.Filter, []*FieldViolation) {
	var violations []*FieldViolation
	f := &search.Filter{Query: c.Query("q")}

	f.BrandIDs = parseIDList(c, "brand_ids", &violations)
	f.ModelIDs = parseIDList(c, "model_ids", &violations)
	f.CategoryIDs = parseIDList(c, "category_ids", &violations)

	f.MinPrice = parseInt64Query(c, "min_price", &violations)
	f.MaxPrice = parseInt64Query(c, "max_price", &violations)
	f.MinYear = parseInt32Query(c, "min_year", &violations)
	f.MaxYear = parseInt32Query(c, "max_year", &violations)
	f.MaxMileage = parseInt32Query(c, "max_mileage", &violations)

	f.FuelTypes = parseStringList(c, "fuel_types")
	f.Transmissions = parseStringList(c, "transmissions")
	f.Conditions = parseStringList(c, "conditions")

	if v := c.Query("city"); v != "" {
		f.City = &v
	}
	if v := c.Query("province"); v != "" {
		f.Province = &v
	}
	if v := c.Query("region"); v != "" {
		f.Region = &v
	}

	f.Latitude = parseFloatQuery(c, "lat", &violations)
	f.Longitude = parseFloatQuery(c, "lng", &violations)
	f.RadiusKm = parseFloatQuery(c, "radius_km", &violations)

	if f.Latitude != nil && f.Longitude != nil {
		if err := validator.ValidateCoordinates(*f.Latitude, *f.Longitude); err != nil {
			violations = append(violations, fieldViolation("lat", err))
		}
	}
	if f.RadiusKm != nil {
		if err := validator.ValidateRadius(*f.RadiusKm); err != nil {
			violations = append(violations, fieldViolation("radius_km", err))
		}
	}

	f.SortBy = c.Query("sort_by")
	f.SortDir = c.Query("sort_dir")

	if page := parseInt32Query(c, "page", &violations); page != nil {
		f.Page = *page
	}
	if size := parseInt32Query(c, "page_size", &violations); size != nil {
		f.PageSize = *size
	}

	return f, violations
}

func parseIDList(c *gin.Context, key string, violations *[]*FieldViolation) []int64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			*violations = append(*violations, fieldViolation(key, err))
			return nil
		}
		ids = append(ids, id)
	}
	return ids
}

func parseStringList(c *gin.Context, key string) []string {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func parseInt64Query(c *gin.Context, key string, violations *[]*FieldViolation) *int64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		*violations = append(*violations, fieldViolation(key, err))
		return nil
	}
	return &v
}

func parseInt32Query(c *gin.Context, key string, violations *[]*FieldViolation) *int32 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		*violations = append(*violations, fieldViolation(key, err))
		return nil
	}
	v32 := int32(v)
	return &v32
}

func parseFloatQuery(c *gin.Context, key string, violations *[]*FieldViolation) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*violations = append(*violations, fieldViolation(key, err))
		return nil
	}
	return &v
}
