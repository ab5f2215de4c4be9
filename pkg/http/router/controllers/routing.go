package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/evacroute/pkg"
	"github.com/lintang-b-s/evacroute/pkg/geo"
	helper "github.com/lintang-b-s/evacroute/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/evacroute/pkg/util"
	"go.uber.org/zap"
)

var (
	coordinatePattern = regexp.MustCompile(`^\s*-?\d+(\.\d+)?\s*,\s*-?\d+(\.\d+)?\s*$`)

	errInvalidCoordinateFormat = errors.New("Invalid coordinate format. Expected: 'lat,lon' (e.g., '52.2297,21.0122')")
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
	validate       *validator.Validate
	trans          ut.Translator
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &routingAPI{
		routingService: routingService,
		log:            log,
		validate:       validate,
		trans:          trans,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/evac/route", api.evacuationRoute)
}

// evacuationRoute
//
//	@Summary		Calculate a safe evacuation route
//	@Description	Shortest route between two coordinates that avoids active flood zones. Hazardous roads are used only when no safe path exists.
//	@Tags			evacuation
//	@Param			start	query	string	true	"start coordinate as lat,lon"	example(52.2297,21.0122)
//	@Param			end		query	string	true	"end coordinate as lat,lon"		example(52.2400,21.0300)
//	@Produce		application/json
//	@Router			/evac/route [get]
//	@Success		200	{object}	geojson.Feature
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Failure		500	{object}	errorResponse
//	@Failure		503	{object}	errorResponse
func (api *routingAPI) evacuationRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	query := r.URL.Query()

	start, err := api.parseCoordinate("start", query.Get("start"))
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	end, err := api.parseCoordinate("end", query.Get("end"))
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	api.log.Info("evacuation route request",
		zap.Float64("start_lat", start.GetLat()), zap.Float64("start_lon", start.GetLon()),
		zap.Float64("end_lat", end.GetLat()), zap.Float64("end_lon", end.GetLon()))

	route, err := api.routingService.CalculateRoute(r.Context(), start, end)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, NewRouteFeature(route), nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// parseCoordinate turns "lat,lon" into a Coordinate rounded to six decimals.
func (api *routingAPI) parseCoordinate(name, raw string) (geo.Coordinate, error) {
	if strings.TrimSpace(raw) == "" {
		return geo.Coordinate{}, fmt.Errorf("%s parameter is required", name)
	}
	if !coordinatePattern.MatchString(raw) {
		return geo.Coordinate{}, errInvalidCoordinateFormat
	}

	parts := strings.SplitN(raw, ",", 2)
	lat, err := util.StringToFloat64(parts[0])
	if err != nil {
		return geo.Coordinate{}, errInvalidCoordinateFormat
	}
	lon, err := util.StringToFloat64(parts[1])
	if err != nil {
		return geo.Coordinate{}, errInvalidCoordinateFormat
	}

	request := coordinateRequest{
		Lat: util.RoundFloat(lat, pkg.COORDINATE_PRECISION),
		Lon: util.RoundFloat(lon, pkg.COORDINATE_PRECISION),
	}
	if err := api.validate.Struct(request); err != nil {
		vv := translateError(err, api.trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		return geo.Coordinate{}, fmt.Errorf("%s: %s", name, strings.Join(vvString, "; "))
	}

	coord, err := geo.NewCoordinate(request.Lat, request.Lon)
	if err != nil {
		return geo.Coordinate{}, util.WrapErrorf(err, util.ErrBadParamInput, "%s: %v", name, err)
	}
	return coord, nil
}
