package core

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func inventoryManagementView(r *PageRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		r.Render(c, http.StatusOK, "inventory/management", gin.H{"Title": "Inventory Management"})
	}
}

func addClassificationView(r *PageRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		r.Render(c, http.StatusOK, "inventory/add-classification", gin.H{"Title": "Add Classification", "Name": ""})
	}
}

func processAddClassification(r *PageRenderer, inventory InventoryRepository, cache *ClassificationCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		form := ClassificationForm{Name: c.PostForm("classification_name")}

		redisplay := func(status int, errs []FieldError) {
			r.Render(c, status, "inventory/add-classification", gin.H{
				"Title":  "Add Classification",
				"Errors": errs,
				"Name":   form.Name,
			})
		}

		if errs := form.Validate(); len(errs) > 0 {
			redisplay(http.StatusBadRequest, errs)
			return
		}

		if _, err := inventory.CreateClassification(c.Request.Context(), form.Name); err != nil {
			if errors.Is(err, ErrDuplicateClassification) {
				redisplay(http.StatusBadRequest, []FieldError{{Field: "classification_name", Message: "That classification already exists."}})
				return
			}
			serverError(c, r, err)
			return
		}

		cache.Invalidate(c.Request.Context())
		Flash(c, FlashSuccess, fmt.Sprintf("The %s classification was added.", form.Name))
		c.Redirect(http.StatusFound, "/inv/")
	}
}

func addInventoryView(r *PageRenderer, cache *ClassificationCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		classifications, err := cache.Classifications(c.Request.Context())
		if err != nil {
			serverError(c, r, err)
			return
		}
		r.Render(c, http.StatusOK, "inventory/add-inventory", gin.H{
			"Title":                    "Add Vehicle",
			"Classifications":          classifications,
			"SelectedClassificationID": int64(0),
			"Form":                     VehicleForm{},
		})
	}
}

func processAddInventory(r *PageRenderer, inventory InventoryRepository, cache *ClassificationCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		form := VehicleForm{
			ClassificationID: c.PostForm("classification_id"),
			Make:             c.PostForm("inv_make"),
			Model:            c.PostForm("inv_model"),
			Year:             c.PostForm("inv_year"),
			Description:      c.PostForm("inv_description"),
			Price:            c.PostForm("inv_price"),
			Miles:            c.PostForm("inv_miles"),
			Color:            c.PostForm("inv_color"),
		}

		redisplay := func(status int, errs []FieldError) {
			classifications, err := cache.Classifications(c.Request.Context())
			if err != nil {
				serverError(c, r, err)
				return
			}
			selected, _ := strconv.ParseInt(form.ClassificationID, 10, 64)
			r.Render(c, status, "inventory/add-inventory", gin.H{
				"Title":                    "Add Vehicle",
				"Errors":                   errs,
				"Classifications":          classifications,
				"SelectedClassificationID": selected,
				"Form":                     form,
			})
		}

		vehicle, errs := form.Validate()
		if len(errs) > 0 {
			redisplay(http.StatusBadRequest, errs)
			return
		}

		if _, err := inventory.CreateVehicle(c.Request.Context(), vehicle); err != nil {
			serverError(c, r, err)
			return
		}

		cache.Invalidate(c.Request.Context())
		Flash(c, FlashSuccess, fmt.Sprintf("The %s %s was added to inventory.", vehicle.Make, vehicle.Model))
		c.Redirect(http.StatusFound, "/inv/")
	}
}

func classificationView(r *PageRenderer, inventory InventoryRepository, cache *ClassificationCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("classificationId"), 10, 64)
		if err != nil {
			r.RenderError(c, http.StatusNotFound, "That classification could not be found.")
			return
		}

		title := "Vehicles"
		if classifications, err := cache.Classifications(c.Request.Context()); err == nil {
			for _, cl := range classifications {
				if cl.ID == id {
					title = cl.Name + " vehicles"
					break
				}
			}
		}

		vehicles, err := inventory.VehiclesByClassification(c.Request.Context(), id)
		if err != nil {
			serverError(c, r, err)
			return
		}

		r.Render(c, http.StatusOK, "inventory/classification", gin.H{
			"Title":                  title,
			"Vehicles":               vehicles,
			"ActiveClassificationID": id,
		})
	}
}

func vehicleDetailView(r *PageRenderer, inventory InventoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("invId"), 10, 64)
		if err != nil {
			r.RenderError(c, http.StatusNotFound, "That vehicle could not be found.")
			return
		}

		vehicle, err := inventory.VehicleByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, ErrVehicleNotFound) {
				r.RenderError(c, http.StatusNotFound, "That vehicle could not be found.")
				return
			}
			serverError(c, r, err)
			return
		}

		r.Render(c, http.StatusOK, "inventory/detail", gin.H{
			"Title":                  fmt.Sprintf("%d %s %s", vehicle.Year, vehicle.Make, vehicle.Model),
			"Vehicle":                vehicle,
			"ActiveClassificationID": vehicle.ClassificationID,
		})
	}
}
