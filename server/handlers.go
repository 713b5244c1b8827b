package server

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"laptop-dashboard/charts"
	"laptop-dashboard/models"
	"laptop-dashboard/services"
)

func (s *Server) handleExplore(c *gin.Context) {
	sel, err := parseSelection(c, s.ds)
	if err != nil {
		view := exploreControls(s.ds, sel)
		view.Error = err.Error()
		c.HTML(http.StatusBadRequest, "explore.html", view)
		return
	}

	view, err := BuildExploreView(s.ds, sel)
	if err != nil {
		view.Error = err.Error()
		c.HTML(s.statusFor(err), "explore.html", view)
		return
	}
	c.HTML(http.StatusOK, "explore.html", view)
}

func (s *Server) handleVisualizations(c *gin.Context) {
	screen, err := parseScreenRange(c, s.ds)
	if err == nil {
		var view VisualizationsView
		view, err = BuildVisualizationsView(s.ds, screen, s.insights, s.bins)
		if err == nil {
			c.HTML(http.StatusOK, "visualizations.html", view)
			return
		}
	}

	view := VisualizationsView{ScreenBounds: s.ds.ScreenBounds(), Screen: s.ds.ScreenBounds(), Error: err.Error()}
	if screen != nil {
		view.Screen = *screen
	}
	c.HTML(s.statusFor(err), "visualizations.html", view)
}

// handleChart renders one aggregate as a PNG. The explore-view filters and
// screen_min/screen_max apply; condition=new restricts the count, histogram
// and year charts to new listings.
func (s *Server) handleChart(c *gin.Context) {
	report, err := s.report(c)
	if err != nil {
		c.String(s.statusFor(err), "%s", err.Error())
		return
	}

	var buf bytes.Buffer
	switch c.Param("name") {
	case ChartRamCount:
		err = charts.RenderRamCount(&buf, report.RamCounts)
	case ChartHistogram:
		err = charts.RenderPriceHistogram(&buf, report.PriceHistogram)
	case ChartRamMeanPrice:
		err = charts.RenderRamMeanPrice(&buf, report.MeanPriceByRam)
	case ChartYearMean:
		err = charts.RenderYearMeanPrice(&buf, report.MeanPriceByYear)
	default:
		c.String(http.StatusNotFound, "unknown chart %q", c.Param("name"))
		return
	}

	if errors.Is(err, charts.ErrNoData) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		s.logger.Error("[http] chart %s: %v", c.Param("name"), err)
		c.String(http.StatusInternalServerError, "chart rendering failed")
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) handleAPIListings(c *gin.Context) {
	sel, err := parseSelection(c, s.ds)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rows, err := services.Filter(s.ds, sel)
	if err != nil {
		c.JSON(s.statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(rows), "listings": rows})
}

func (s *Server) handleAPIInsights(c *gin.Context) {
	report, err := s.report(c)
	if err != nil {
		c.JSON(s.statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "listings": s.ds.Len()})
}

// report filters the dataset by the request's selection and aggregates the
// result from scratch.
func (s *Server) report(c *gin.Context) (*models.InsightReport, error) {
	sel, err := parseSelection(c, s.ds)
	if err != nil {
		return nil, err
	}
	screen, err := parseScreenRange(c, s.ds)
	if err != nil {
		return nil, err
	}
	rows, err := services.Filter(s.ds, sel)
	if err != nil {
		return nil, err
	}
	return s.insights.Generate(rows, services.InsightOptions{
		Bins:    s.bins,
		Screen:  screen,
		NewOnly: c.Query("condition") == "new",
	})
}

func (s *Server) statusFor(err error) int {
	if isUserError(err) {
		return http.StatusBadRequest
	}
	s.logger.Error("[http] %v", err)
	return http.StatusInternalServerError
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
