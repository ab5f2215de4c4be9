package router

import (
	_ "embed"
	"net/http"

	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed docs/doc.json
var swaggerDoc []byte

var swaggerUI = httpSwagger.Handler(httpSwagger.URL("/doc/doc.json"))

// @title			Evacuation Route Service API
// @version		1.0
// @description	Hazard-aware evacuation routing over a road network with flood zones.
// @BasePath		/api
func swaggerHandler(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if p.ByName("any") == "/doc.json" {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(swaggerDoc)
		return
	}
	swaggerUI.ServeHTTP(w, r)
}
