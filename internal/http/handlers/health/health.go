// Package health реализует HTTP-обработчик проверки живости сервиса.
package health

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/creator-ratecard/internal/http/response"
)

// Handler обрабатывает запросы проверки живости.
type Handler struct{}

// New создает новый экземпляр Handler.
func New() *Handler {
	return &Handler{}
}

// ServeHTTP godoc
// @Summary Проверка живости сервиса
// @Tags Service
// @Produce  json
// @Success 200 {object} response.Response "Сервис жив"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OKWithData("alive"))
}
