// Package server is the reference stock_data backend: the five REST routes
// the viewer speaks, an in-memory repository, and a TTL cache on the list
// response.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Al-Faravi/Stock-Viewer/internal/models"
)

type Server struct {
	R      *gin.Engine
	Repo   *repository
	Cache  *listCache
	Logger *zap.Logger
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewServer wires the router, repository, cache, and middleware.
func NewServer(logger *zap.Logger, corsOrigin string, cacheTTL time.Duration) (*Server, error) {
	g := gin.New()

	// Request logging
	g.Use(func(cn *gin.Context) {
		start := time.Now()
		cn.Next()
		logger.Info("http_request",
			zap.String("method", cn.Request.Method),
			zap.String("path", cn.Request.URL.Path),
			zap.Int("status", cn.Writer.Status()),
			zap.String("ip", cn.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		)
	})

	g.Use(gin.Recovery())

	// CORS
	g.Use(func(cn *gin.Context) {
		origin := cn.GetHeader("Origin")
		cn.Writer.Header().Set("Vary", "Origin")
		cn.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		cn.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		cn.Writer.Header().Set("Access-Control-Max-Age", "86400")
		if corsOrigin == "*" {
			cn.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else if origin != "" && origin == corsOrigin {
			cn.Writer.Header().Set("Access-Control-Allow-Origin", corsOrigin)
		}
		if cn.Request.Method == http.MethodOptions {
			cn.AbortWithStatus(http.StatusNoContent)
			return
		}
		cn.Next()
	})

	cache, err := newListCache(cacheTTL)
	if err != nil {
		return nil, err
	}

	s := &Server{R: g, Repo: newRepository(), Cache: cache, Logger: logger}

	g.GET("/", func(cn *gin.Context) {
		cn.JSON(http.StatusOK, gin.H{"message": "Welcome to Stock Viewer API!"})
	})
	g.GET("/health", func(cn *gin.Context) { cn.JSON(http.StatusOK, gin.H{"ok": true}) })
	g.GET("/api/stock_data", s.listStockData)
	g.POST("/api/stock_data", s.createStockData)
	g.GET("/api/stock_data/:trade_code/:date", s.getStockEntry)
	g.PUT("/api/stock_data/:trade_code/:date", s.updateStockData)
	g.DELETE("/api/stock_data/:trade_code/:date", s.deleteStockData)
	g.POST("/api/add_stock_data_from_json", s.importStockData)

	return s, nil
}

// --- Helpers ---

func (s *Server) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, apiError{Code: "bad_request", Message: msg})
}

func (s *Server) notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, apiError{Code: "not_found", Message: "stock entry not found"})
}

func (s *Server) conflict(c *gin.Context) {
	c.JSON(http.StatusConflict, apiError{Code: "conflict", Message: "stock entry already exists"})
}

func pathKey(c *gin.Context) models.RecordKey {
	return models.RecordKey{TradeCode: c.Param("trade_code"), Date: c.Param("date")}
}

// --- Handlers ---

func (s *Server) listStockData(c *gin.Context) {
	if rows, ok := s.Cache.Get(); ok && rows != nil {
		c.JSON(http.StatusOK, rows)
		return
	}
	rows := s.Repo.List()
	if rows == nil {
		rows = []models.StockRecord{}
	}
	s.Cache.Set(rows)
	c.JSON(http.StatusOK, rows)
}

func (s *Server) getStockEntry(c *gin.Context) {
	key := pathKey(c)
	if err := key.Validate(); err != nil {
		s.badRequest(c, err.Error())
		return
	}
	rec, ok := s.Repo.Get(key)
	if !ok {
		s.notFound(c)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) createStockData(c *gin.Context) {
	var rec models.StockRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		s.badRequest(c, "invalid JSON format")
		return
	}
	if err := rec.Key().Validate(); err != nil {
		s.badRequest(c, err.Error())
		return
	}
	if err := s.Repo.Insert(rec); err != nil {
		s.conflict(c)
		return
	}
	s.Cache.Invalidate()
	c.JSON(http.StatusCreated, rec)
}

func (s *Server) updateStockData(c *gin.Context) {
	key := pathKey(c)
	if err := key.Validate(); err != nil {
		s.badRequest(c, err.Error())
		return
	}
	var rec models.StockRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		s.badRequest(c, "invalid JSON format")
		return
	}
	// Key fields left blank inherit the addressed record's key.
	if rec.TradeCode == "" {
		rec.TradeCode = key.TradeCode
	}
	if rec.Date == "" {
		rec.Date = key.Date
	}
	if err := rec.Key().Validate(); err != nil {
		s.badRequest(c, err.Error())
		return
	}
	if err := s.Repo.Update(key, rec); err != nil {
		if errors.Is(err, ErrNotFound) {
			s.notFound(c)
			return
		}
		s.conflict(c)
		return
	}
	s.Cache.Invalidate()
	c.JSON(http.StatusOK, rec)
}

func (s *Server) deleteStockData(c *gin.Context) {
	key := pathKey(c)
	if err := key.Validate(); err != nil {
		s.badRequest(c, err.Error())
		return
	}
	if err := s.Repo.Delete(key); err != nil {
		s.notFound(c)
		return
	}
	s.Cache.Invalidate()
	c.JSON(http.StatusOK, gin.H{"message": "Stock data deleted successfully!"})
}

func (s *Server) importStockData(c *gin.Context) {
	path := c.Query("file")
	if path == "" {
		path = "stock_market_data.json"
	}
	added, err := s.SeedFromFile(path)
	if err != nil {
		s.Logger.Error("seed_failed", zap.String("file", path), zap.Error(err))
		s.badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Stock data from JSON added successfully!", "added": added})
}
