package routes

import (
	"github.com/labstack/echo/v4"

	"ogef/internal/controllers"
)

func runApiRouter(api *echo.Group, apiCtrl *controllers.ApiController) {
	api.GET("/communes/:code", apiCtrl.ListDistricts)
	api.GET("/gefs", apiCtrl.ListOffices)
	api.GET("/gef/:numero", apiCtrl.GetOffice)
}
