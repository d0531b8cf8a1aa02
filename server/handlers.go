package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/theoremus-urban-solutions/campusmap/campus"
	"github.com/theoremus-urban-solutions/campusmap/stops"
	"github.com/theoremus-urban-solutions/campusmap/utils"
)

type healthResponse struct {
	Status    string       `json:"status"`
	Timestamp string       `json:"timestamp"`
	StartedAt string       `json:"started_at"`
	Data      campus.Stats `json:"data"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: utils.Iso8601Now(),
		StartedAt: utils.Iso8601FromUnixSeconds(s.startedAt),
		Data:      s.svc.Stats(),
	})
}

func (s *Server) handleListBuildings(c *gin.Context) {
	c.JSON(http.StatusOK, s.svc.ListBuildings())
}

func (s *Server) handleSearchBuildings(c *gin.Context) {
	caseSensitive, err := parseFlag("case_sensitive", c.Query("case_sensitive"), s.cfg.Search.CaseSensitive)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, s.svc.FindBuildingsByNameSubstring(c.Query("q"), caseSensitive))
}

func (s *Server) handleGetBuilding(c *gin.Context) {
	id, err := parseBuildingID(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return
	}
	b, ok := s.svc.GetBuilding(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No such building: " + c.Param("id")})
		return
	}
	c.JSON(http.StatusOK, b)
}

func (s *Server) handleListStops(c *gin.Context) {
	c.JSON(http.StatusOK, s.svc.ListStops())
}

func (s *Server) handleNearestStops(c *gin.Context) {
	lat, err := parseCoordinate("lat", c.Query("lat"), 90)
	if err != nil {
		badRequest(c, err)
		return
	}
	lon, err := parseCoordinate("lon", c.Query("lon"), 180)
	if err != nil {
		badRequest(c, err)
		return
	}
	withPredictions, err := parseFlag("predictions", c.Query("predictions"), false)
	if err != nil {
		badRequest(c, err)
		return
	}
	if withPredictions {
		c.JSON(http.StatusOK, s.svc.NearestStopsWithPredictions(c.Request.Context(), lat, lon))
		return
	}
	c.JSON(http.StatusOK, s.svc.NearestStops(lat, lon))
}

func (s *Server) handleStopPredictions(c *gin.Context) {
	ps, err := s.svc.StopPredictions(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, campus.ErrStopNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No such stop: " + c.Param("id")})
	case err != nil:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, ps)
	}
}

func (s *Server) handleListRoutes(c *gin.Context) {
	c.JSON(http.StatusOK, s.svc.Routes())
}

type geometryResponse struct {
	RouteID  string                   `json:"route_id"`
	Geometry map[string][]stops.Point `json:"geometry"`
}

func (s *Server) handleRouteGeometry(c *gin.Context) {
	geo, ok := s.svc.RouteGeometry(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No such route: " + c.Param("id")})
		return
	}
	c.JSON(http.StatusOK, geometryResponse{RouteID: c.Param("id"), Geometry: geo})
}

func (s *Server) handleRouteBuses(c *gin.Context) {
	vs, err := s.svc.RouteBuses(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, campus.ErrRouteNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No such route: " + c.Param("id")})
	case err != nil:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, vs)
	}
}

func (s *Server) handleLiveBuses(c *gin.Context) {
	vs, err := s.svc.LiveBuses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, vs)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
