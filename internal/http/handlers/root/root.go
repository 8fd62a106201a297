// Package root отвечает приветствием на корневой маршрут API.
package root

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/questly/internal/http/response"
)

const welcome = "Questly Career Guidance API"

// ServeHTTP godoc
// @Summary Приветствие
// @Tags Service
// @Produce  json
// @Success 200 {object} response.Response "message"
// @Router / [get]
func ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": welcome,
	}))
}
