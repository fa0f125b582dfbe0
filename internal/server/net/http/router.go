// Package http реализует маршрутизацию HTTP-слоя сервера учётных записей.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - логирование выполнения HTTP-запросов;
//   - ограничение размера тела запроса.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/server/api"
	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/server/middleware"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер регистрирует:
//   - middleware логирования для всех запросов;
//   - /users: создание, обновление и чтение пользователя;
//   - /healthz и /swagger/*.
//
// maxBodyBytes ограничивает тело запросов к /users (0 — без ограничения).
func NewRouter(h *api.Handler, maxBodyBytes int64) http.Handler {
	r := chi.NewRouter()
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/healthz", h.Health)

	r.Route("/users", func(r chi.Router) {
		if maxBodyBytes > 0 {
			r.Use(chimw.RequestSize(maxBodyBytes))
		}

		r.Post("/", h.CreateUser)
		r.Get("/{id}", h.GetUser)
		r.Put("/{id}", h.UpdateUser) // частичное обновление, смена пароля только с oldPassword
	})

	return r
}
