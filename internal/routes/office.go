package routes

import (
	"github.com/labstack/echo/v4"

	"ogef/internal/controllers"
)

func runOfficeRouter(group *echo.Group, officeCtrl *controllers.OfficeController) {
	group.GET("/add", officeCtrl.ShowAddForm)
	group.POST("/add", officeCtrl.CreateOffice)
	group.GET("/edit/:numero", officeCtrl.ShowEditForm)
	group.POST("/update/:numero", officeCtrl.UpdateOffice)
	group.POST("/delete/:numero", officeCtrl.DeleteOffice)
	group.GET("/filter", officeCtrl.FilterOffices)
	group.GET("/filter/export", officeCtrl.ExportOffices)
}
