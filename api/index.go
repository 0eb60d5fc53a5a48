package handler

import (
	"courtbook/config"
	"courtbook/di"
	"courtbook/shared/logger"
	"net/http"
	"sync"
)

var (
	app  http.Handler
	once sync.Once
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.Configure(cfg)

		app = di.InitializeService().Adaptor()
	})

	app.ServeHTTP(w, r)
}
