package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// pubDateLayout is the wire format of the datetime-local form input
const pubDateLayout = "2006-01-02T15:04"

func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Invalid "+name)
	}
	return uint(id), nil
}

func pageParam(c echo.Context) int {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	return page
}

// postURL is the canonical detail page address of a post
func postURL(id uint) string {
	return "/posts/" + strconv.FormatUint(uint64(id), 10)
}

// optionalID maps a zero form value to a null foreign key
func optionalID(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}
